package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/shopping"
)

// Recipe is a user's saved recipe. Meals reference it by ID.
type Recipe struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"userId"`
	Name        string            `gorm:"size:200;not null" json:"name"`
	Servings    int               `gorm:"not null" json:"servings"`
	Ingredients RecipeIngredients `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// RecipeIngredient is one line of a recipe, optionally linked to the catalog
type RecipeIngredient struct {
	IngredientID *uuid.UUID `json:"ingredientId,omitempty"`
	Name         string     `json:"name"`
	Quantity     float64    `json:"quantity"`
	Unit         string     `json:"unit"`
}

// MealIngredients returns the recipe's lines in the shape meals store
func (r *Recipe) MealIngredients() []shopping.MealIngredient {
	out := make([]shopping.MealIngredient, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		out = append(out, shopping.MealIngredient{Name: ing.Name, Quantity: ing.Quantity, Unit: ing.Unit})
	}
	return out
}

// Ingredient is an entry in the catalog shared by all users
type Ingredient struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:200;not null;index" json:"name"`
	Quantity  float64   `gorm:"not null" json:"quantity"`
	Unit      string    `gorm:"size:50;not null;default:''" json:"unit"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
