package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/calendar"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/models"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/shopping"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/types"
)

// ITokenService defines the interface for bearer token operations
type ITokenService interface {
	ValidateToken(token string) (*types.TokenClaims, error)
	GenerateToken(userID uuid.UUID, username string) (string, error)
}

// IMealPlanService defines the interface for weekly meal plan operations
type IMealPlanService interface {
	GetWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*models.MealPlan, error)
	ListPlans(ctx context.Context, userID uuid.UUID) ([]models.MealPlan, error)
	GetPlan(ctx context.Context, userID, planID uuid.UUID) (*models.MealPlan, error)
	AddMeal(ctx context.Context, userID uuid.UUID, weekStart time.Time, day string, meal shopping.Meal) (*models.MealPlan, error)
	UpdateMeal(ctx context.Context, userID, planID uuid.UUID, day, mealID string, updates *types.MealUpdates) (*models.MealPlan, error)
	RemoveMeal(ctx context.Context, userID, planID uuid.UUID, day, mealID string) (*models.MealPlan, error)
	PlansForWeeks(ctx context.Context, userID uuid.UUID, weekStarts []time.Time) ([]models.MealPlan, error)
}

// IShoppingListService defines the interface for shopping list operations
type IShoppingListService interface {
	Sync(ctx context.Context, userID uuid.UUID, weeks calendar.Weeks) ([]shopping.Item, error)
	Items(ctx context.Context, userID uuid.UUID) ([]shopping.Item, error)
	AddItem(ctx context.Context, userID uuid.UUID, req *types.AddItemRequest) (*shopping.Item, error)
	UpdateItem(ctx context.Context, userID uuid.UUID, itemID string, req *types.UpdateItemRequest) (*shopping.Item, error)
	DeleteItem(ctx context.Context, userID uuid.UUID, itemID string) error
	Export(ctx context.Context, userID uuid.UUID) (*types.ExportResponse, error)
}

// IRecipeService defines the interface for a user's recipes
type IRecipeService interface {
	CreateRecipe(ctx context.Context, userID uuid.UUID, req *types.RecipeRequest) (*models.Recipe, error)
	GetRecipe(ctx context.Context, userID, id uuid.UUID) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, userID, id uuid.UUID, updates *types.RecipeUpdates) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, userID, id uuid.UUID) error
	ListRecipes(ctx context.Context, userID uuid.UUID, query string) ([]models.Recipe, error)
}

// IIngredientService defines the interface for the shared ingredient catalog
type IIngredientService interface {
	CreateIngredient(ctx context.Context, req *types.CatalogIngredientRequest) (*models.Ingredient, error)
	GetIngredient(ctx context.Context, id uuid.UUID) (*models.Ingredient, error)
	UpdateIngredient(ctx context.Context, id uuid.UUID, updates *types.CatalogIngredientUpdates) (*models.Ingredient, error)
	DeleteIngredient(ctx context.Context, id uuid.UUID) error
	ListIngredients(ctx context.Context, query string) ([]models.Ingredient, error)
}

// PlanSource is the read side of meal plans the shopping list consolidates
type PlanSource interface {
	PlansForWeeks(ctx context.Context, userID uuid.UUID, weekStarts []time.Time) ([]models.MealPlan, error)
}

// ObjectStore uploads exported lists and hands out temporary download links
type ObjectStore interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) error
	GeneratePresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error)
}
