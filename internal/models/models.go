package models

// All returns every model managed by the schema, in migration order
func All() []interface{} {
	return []interface{}{
		&MealPlan{},
		&ShoppingList{},
		&Ingredient{},
		&Recipe{},
	}
}
