// Package shopping turns weekly meal plans into a consolidated shopping list
// and reconciles it against the list a user already has.
package shopping

import (
	"encoding/json"
	"fmt"
)

// Category separates main ingredients from seasonings.
type Category string

const (
	CategoryFood      Category = "food"
	CategorySeasoning Category = "seasoning"
)

// Source records where a shopping list item came from.
type Source string

const (
	SourcePlan   Source = "plan"
	SourceManual Source = "manual"
)

// MealIngredient is a single ingredient or seasoning line on a meal.
type MealIngredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// UnmarshalJSON accepts the loose shapes found in stored plans (bare strings,
// string quantities, missing fields) and coerces them through NormalizeIngredient.
func (m *MealIngredient) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode ingredient: %w", err)
	}
	*m = NormalizeIngredient(raw)
	return nil
}

// Meal is one scheduled meal on a day of the plan.
type Meal struct {
	ID          string           `json:"id"`
	RecipeID    *string          `json:"recipeId,omitempty"`
	Name        string           `json:"name"`
	Time        string           `json:"time"`
	Servings    int              `json:"servings"`
	Ingredients []MealIngredient `json:"ingredients"`
	Seasonings  []MealIngredient `json:"seasonings,omitempty"`
}

// DayPlan holds the meals for one weekday.
type DayPlan struct {
	Day   string `json:"day"`
	Meals []Meal `json:"meals"`
}

// WeeklyMealPlan is a user's plan for the week starting on WeekStart (a Monday).
type WeeklyMealPlan struct {
	WeekStart string    `json:"weekStart"`
	Days      []DayPlan `json:"days"`
}

// ConsolidatedIngredient is the summed total for one plan key across a set of plans.
type ConsolidatedIngredient struct {
	DisplayName string   `json:"displayName"`
	Quantity    float64  `json:"quantity"`
	Unit        string   `json:"unit"`
	PlanKey     string   `json:"planKey"`
	Category    Category `json:"category"`
}

// Item is a persisted shopping list entry.
type Item struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Quantity float64  `json:"quantity"`
	Unit     string   `json:"unit"`
	Source   Source   `json:"source"`
	Checked  bool     `json:"checked"`
	PlanKey  string   `json:"planKey,omitempty"`
	Category Category `json:"category"`
}
