package types

import (
	"strings"

	"github.com/google/uuid"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/shopping"
)

// IngredientRequest is one ingredient line in a meal request
type IngredientRequest struct {
	Name     string   `json:"name" binding:"required,max=200"`
	Quantity *float64 `json:"quantity" binding:"omitempty,min=0"`
	Unit     string   `json:"unit" binding:"max=50"`
}

// MealRequest represents a meal in the body of POST /meals
type MealRequest struct {
	RecipeID    *string             `json:"recipeId"`
	Name        string              `json:"name" binding:"required,max=200"`
	Time        string              `json:"time" binding:"required,mealtime"`
	Servings    int                 `json:"servings" binding:"required,min=1,max=100"`
	Ingredients []IngredientRequest `json:"ingredients" binding:"max=50,dive"`
	Seasonings  []IngredientRequest `json:"seasonings" binding:"max=50,dive"`
}

// CreateMealRequest represents the request body for adding a meal to a week
type CreateMealRequest struct {
	WeekStart string      `json:"weekStart" binding:"required"`
	Day       string      `json:"day" binding:"required,weekday"`
	Meal      MealRequest `json:"meal" binding:"required"`
}

// MealUpdates holds the optional fields of a meal update
type MealUpdates struct {
	Name        *string              `json:"name" binding:"omitempty,max=200"`
	Time        *string              `json:"time" binding:"omitempty,mealtime"`
	Servings    *int                 `json:"servings" binding:"omitempty,min=1,max=100"`
	Ingredients *[]IngredientRequest `json:"ingredients" binding:"omitempty,max=50,dive"`
	Seasonings  *[]IngredientRequest `json:"seasonings" binding:"omitempty,max=50,dive"`
}

// UpdateMealRequest represents the request body for PATCH /meals/:id
type UpdateMealRequest struct {
	Day     string      `json:"day" binding:"required,weekday"`
	MealID  string      `json:"mealId" binding:"required"`
	Updates MealUpdates `json:"updates"`
}

// DeleteMealRequest represents the request body for DELETE /meals/:id
type DeleteMealRequest struct {
	Day    string `json:"day" binding:"required,weekday"`
	MealID string `json:"mealId" binding:"required"`
}

// AddItemRequest represents the request body for adding a manual shopping list item
type AddItemRequest struct {
	Name     string   `json:"name" binding:"required,max=200"`
	Quantity *float64 `json:"quantity" binding:"omitempty,min=0"`
	Unit     string   `json:"unit" binding:"max=50"`
}

// UpdateItemRequest represents the request body for PATCH /shopping-list/:itemId
type UpdateItemRequest struct {
	Checked  *bool    `json:"checked"`
	Name     *string  `json:"name" binding:"omitempty,max=200"`
	Quantity *float64 `json:"quantity" binding:"omitempty,min=0"`
	Unit     *string  `json:"unit" binding:"omitempty,max=50"`
}

// EditsContent reports whether the update touches anything other than the checked flag
func (r *UpdateItemRequest) EditsContent() bool {
	return r.Name != nil || r.Quantity != nil || r.Unit != nil
}

// ToIngredients converts request lines into meal ingredients, trimming
// names and units. A missing quantity defaults to 1.
func ToIngredients(reqs []IngredientRequest) []shopping.MealIngredient {
	out := make([]shopping.MealIngredient, 0, len(reqs))
	for _, r := range reqs {
		qty := 1.0
		if r.Quantity != nil {
			qty = *r.Quantity
		}
		out = append(out, shopping.MealIngredient{
			Name:     strings.TrimSpace(r.Name),
			Quantity: qty,
			Unit:     strings.TrimSpace(r.Unit),
		})
	}
	return out
}

// RecipeIngredientRequest is one line of a recipe. IngredientID links it to
// the ingredient catalog.
type RecipeIngredientRequest struct {
	IngredientID *uuid.UUID `json:"ingredientId"`
	Name         string     `json:"name" binding:"required,max=200"`
	Quantity     *float64   `json:"quantity" binding:"omitempty,min=0"`
	Unit         string     `json:"unit" binding:"max=50"`
}

// RecipeRequest represents the request body for POST /recipes
type RecipeRequest struct {
	Name        string                    `json:"name" binding:"required,max=200"`
	Servings    int                       `json:"servings" binding:"required,min=1,max=100"`
	Ingredients []RecipeIngredientRequest `json:"ingredients" binding:"max=50,dive"`
}

// RecipeUpdates represents the request body for PATCH /recipes/:id
type RecipeUpdates struct {
	Name        *string                    `json:"name" binding:"omitempty,max=200"`
	Servings    *int                       `json:"servings" binding:"omitempty,min=1,max=100"`
	Ingredients *[]RecipeIngredientRequest `json:"ingredients" binding:"omitempty,max=50,dive"`
}

// CatalogIngredientRequest represents the request body for POST /ingredients
type CatalogIngredientRequest struct {
	Name     string   `json:"name" binding:"required,max=200"`
	Quantity *float64 `json:"quantity" binding:"omitempty,min=0"`
	Unit     string   `json:"unit" binding:"max=50"`
}

// CatalogIngredientUpdates represents the request body for PATCH /ingredients/:id
type CatalogIngredientUpdates struct {
	Name     *string  `json:"name" binding:"omitempty,max=200"`
	Quantity *float64 `json:"quantity" binding:"omitempty,min=0"`
	Unit     *string  `json:"unit" binding:"omitempty,max=50"`
}
