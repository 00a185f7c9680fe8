package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/calendar"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/middleware"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/models"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/service"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/shopping"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/types"
)

// MealPlanHandler serves the weekly meal plan endpoints
type MealPlanHandler struct {
	mealPlanService service.IMealPlanService
	tokens          middleware.TokenValidator
}

func NewMealPlanHandler(mealPlanService service.IMealPlanService, tokens middleware.TokenValidator) *MealPlanHandler {
	return &MealPlanHandler{
		mealPlanService: mealPlanService,
		tokens:          tokens,
	}
}

func (h *MealPlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	meals := router.Group("/meals")
	meals.Use(middleware.AuthMiddleware(h.tokens))
	{
		meals.GET("", h.GetMealPlans)
		meals.POST("", h.AddMeal)
		meals.GET("/:id", h.GetMealPlan)
		meals.PATCH("/:id", h.UpdateMeal)
		meals.DELETE("/:id", h.RemoveMeal)
	}
}

// GetMealPlans returns the plan for ?weekStart, or every plan newest first.
// A week without a stored plan comes back with seven empty days and a null id.
func (h *MealPlanHandler) GetMealPlans(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if raw := c.Query("weekStart"); raw != "" {
		weekStart, err := calendar.ParseWeekStart(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid weekStart date"})
			return
		}
		plan, err := h.mealPlanService.GetWeek(c.Request.Context(), userID, calendar.WeekStart(weekStart, 0))
		if err != nil {
			respondError(c, err, "failed to get meal plan")
			return
		}
		c.JSON(http.StatusOK, toPlanResponse(plan))
		return
	}

	plans, err := h.mealPlanService.ListPlans(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to list meal plans")
		return
	}
	resp := make([]types.MealPlanResponse, 0, len(plans))
	for i := range plans {
		resp = append(resp, toPlanResponse(&plans[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MealPlanHandler) AddMeal(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req types.CreateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	weekStart, err := calendar.ParseWeekStart(req.WeekStart)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid weekStart date"})
		return
	}

	plan, err := h.mealPlanService.AddMeal(c.Request.Context(), userID, calendar.WeekStart(weekStart, 0), req.Day, toMeal(req.Meal))
	if err != nil {
		respondError(c, err, "failed to add meal")
		return
	}
	c.JSON(http.StatusCreated, toPlanResponse(plan))
}

func (h *MealPlanHandler) GetMealPlan(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	planID, ok := planIDParam(c)
	if !ok {
		return
	}

	plan, err := h.mealPlanService.GetPlan(c.Request.Context(), userID, planID)
	if err != nil {
		respondError(c, err, "failed to get meal plan")
		return
	}
	c.JSON(http.StatusOK, toPlanResponse(plan))
}

func (h *MealPlanHandler) UpdateMeal(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	planID, ok := planIDParam(c)
	if !ok {
		return
	}

	var req types.UpdateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	plan, err := h.mealPlanService.UpdateMeal(c.Request.Context(), userID, planID, req.Day, req.MealID, &req.Updates)
	if err != nil {
		respondError(c, err, "failed to update meal")
		return
	}
	c.JSON(http.StatusOK, toPlanResponse(plan))
}

func (h *MealPlanHandler) RemoveMeal(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	planID, ok := planIDParam(c)
	if !ok {
		return
	}

	var req types.DeleteMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	plan, err := h.mealPlanService.RemoveMeal(c.Request.Context(), userID, planID, req.Day, req.MealID)
	if err != nil {
		respondError(c, err, "failed to remove meal")
		return
	}
	c.JSON(http.StatusOK, toPlanResponse(plan))
}

func planIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal plan ID"})
		return uuid.Nil, false
	}
	return id, true
}

func toMeal(req types.MealRequest) shopping.Meal {
	meal := shopping.Meal{
		RecipeID:    req.RecipeID,
		Name:        req.Name,
		Time:        req.Time,
		Servings:    req.Servings,
		Ingredients: types.ToIngredients(req.Ingredients),
	}
	if len(req.Seasonings) > 0 {
		meal.Seasonings = types.ToIngredients(req.Seasonings)
	}
	return meal
}

func toPlanResponse(plan *models.MealPlan) types.MealPlanResponse {
	resp := types.MealPlanResponse{
		WeekStart: plan.WeekStart,
		Days:      []shopping.DayPlan(plan.Days),
	}
	if plan.ID != uuid.Nil {
		id, created, updated := plan.ID, plan.CreatedAt, plan.UpdatedAt
		resp.ID = &id
		resp.CreatedAt = &created
		resp.UpdatedAt = &updated
	}
	return resp
}
