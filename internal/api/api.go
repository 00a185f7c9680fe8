package api

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/middleware"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/service"
)

// Services are the dependencies of the /api/v1 routes
type Services struct {
	Tokens       service.ITokenService
	MealPlans    service.IMealPlanService
	ShoppingList service.IShoppingListService
	Recipes      service.IRecipeService
	Ingredients  service.IIngredientService
	// SyncLimiter throttles shopping list rebuilds. Nil disables it.
	SyncLimiter *middleware.RateLimiter
}

// SetupAPI registers the versioned API on router
func SetupAPI(router *gin.Engine, svc Services) error {
	if err := RegisterValidators(); err != nil {
		return err
	}

	v1 := router.Group("/api/v1")
	{
		NewMealPlanHandler(svc.MealPlans, svc.Tokens).RegisterRoutes(v1)
		NewShoppingListHandler(svc.ShoppingList, svc.Tokens, svc.SyncLimiter).RegisterRoutes(v1)
		NewRecipeHandler(svc.Recipes, svc.Tokens).RegisterRoutes(v1)
		NewIngredientHandler(svc.Ingredients, svc.Tokens).RegisterRoutes(v1)
	}
	return nil
}
