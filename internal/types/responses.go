package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/shopping"
)

// MealPlanResponse is the JSON shape of a weekly plan. ID is null for a
// week that has no stored plan yet.
type MealPlanResponse struct {
	ID        *uuid.UUID         `json:"id"`
	WeekStart string             `json:"weekStart"`
	Days      []shopping.DayPlan `json:"days"`
	CreatedAt *time.Time         `json:"createdAt,omitempty"`
	UpdatedAt *time.Time         `json:"updatedAt,omitempty"`
}

// ShoppingListResponse is the body returned by GET /shopping-list
type ShoppingListResponse struct {
	Items []shopping.Item `json:"items"`
}

// ExportResponse is the body returned by POST /shopping-list/export
type ExportResponse struct {
	URL       string `json:"url"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expiresIn"`
}
