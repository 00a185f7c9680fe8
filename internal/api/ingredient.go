package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/middleware"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/service"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/types"
)

// IngredientHandler serves the shared ingredient catalog. Any signed-in
// user can read and edit it.
type IngredientHandler struct {
	ingredientService service.IIngredientService
	tokens            middleware.TokenValidator
}

func NewIngredientHandler(ingredientService service.IIngredientService, tokens middleware.TokenValidator) *IngredientHandler {
	return &IngredientHandler{
		ingredientService: ingredientService,
		tokens:            tokens,
	}
}

func (h *IngredientHandler) RegisterRoutes(router *gin.RouterGroup) {
	ingredients := router.Group("/ingredients")
	ingredients.Use(middleware.AuthMiddleware(h.tokens))
	{
		ingredients.GET("", h.ListIngredients)
		ingredients.POST("", h.CreateIngredient)
		ingredients.GET("/:id", h.GetIngredient)
		ingredients.PATCH("/:id", h.UpdateIngredient)
		ingredients.DELETE("/:id", h.DeleteIngredient)
	}
}

func (h *IngredientHandler) ListIngredients(c *gin.Context) {
	ingredients, err := h.ingredientService.ListIngredients(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err, "Failed to fetch ingredients")
		return
	}
	c.JSON(http.StatusOK, ingredients)
}

func (h *IngredientHandler) GetIngredient(c *gin.Context) {
	id, ok := ingredientIDParam(c)
	if !ok {
		return
	}
	ingredient, err := h.ingredientService.GetIngredient(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to fetch ingredient")
		return
	}
	c.JSON(http.StatusOK, ingredient)
}

func (h *IngredientHandler) CreateIngredient(c *gin.Context) {
	var req types.CatalogIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	ingredient, err := h.ingredientService.CreateIngredient(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create ingredient")
		return
	}
	c.JSON(http.StatusCreated, ingredient)
}

func (h *IngredientHandler) UpdateIngredient(c *gin.Context) {
	id, ok := ingredientIDParam(c)
	if !ok {
		return
	}
	var updates types.CatalogIngredientUpdates
	if err := c.ShouldBindJSON(&updates); err != nil {
		respondBindError(c, err)
		return
	}
	ingredient, err := h.ingredientService.UpdateIngredient(c.Request.Context(), id, &updates)
	if err != nil {
		respondError(c, err, "Failed to update ingredient")
		return
	}
	c.JSON(http.StatusOK, ingredient)
}

func (h *IngredientHandler) DeleteIngredient(c *gin.Context) {
	id, ok := ingredientIDParam(c)
	if !ok {
		return
	}
	if err := h.ingredientService.DeleteIngredient(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete ingredient")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Deleted",
		"id":      id,
	})
}

func ingredientIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient id"})
		return uuid.Nil, false
	}
	return id, true
}
