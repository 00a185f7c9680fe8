package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/shopping"
)

// PlanDays stores the days of a meal plan in a JSONB column
type PlanDays []shopping.DayPlan

// Value implements the driver.Valuer interface
func (d PlanDays) Value() (driver.Value, error) {
	if len(d) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal plan days: %w", err)
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface. Ingredient entries decode
// through shopping.NormalizeIngredient, so legacy rows come back strict.
func (d *PlanDays) Scan(value interface{}) error {
	if value == nil {
		*d = PlanDays{}
		return nil
	}
	return scanJSON(value, d)
}

// ListItems stores shopping list items in a JSONB column
type ListItems []shopping.Item

// Index returns the position of the item with the given ID, or -1
func (l ListItems) Index(id string) int {
	for i := range l {
		if l[i].ID == id {
			return i
		}
	}
	return -1
}

// Value implements the driver.Valuer interface
func (l ListItems) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal list items: %w", err)
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (l *ListItems) Scan(value interface{}) error {
	if value == nil {
		*l = ListItems{}
		return nil
	}
	return scanJSON(value, l)
}

// RecipeIngredients stores the lines of a recipe in a JSONB column
type RecipeIngredients []RecipeIngredient

// Value implements the driver.Valuer interface
func (r RecipeIngredients) Value() (driver.Value, error) {
	if len(r) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal recipe ingredients: %w", err)
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (r *RecipeIngredients) Scan(value interface{}) error {
	if value == nil {
		*r = RecipeIngredients{}
		return nil
	}
	return scanJSON(value, r)
}

func scanJSON(value interface{}, dest interface{}) error {
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported JSONB value type %T", value)
	}
	return json.Unmarshal(bytes, dest)
}
