package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/calendar"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/middleware"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/service"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/shopping"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/types"
)

// ShoppingListHandler serves the shopping list endpoints
type ShoppingListHandler struct {
	shoppingListService service.IShoppingListService
	tokens              middleware.TokenValidator
	syncLimiter         *middleware.RateLimiter
}

// NewShoppingListHandler creates the handler. syncLimiter may be nil.
func NewShoppingListHandler(shoppingListService service.IShoppingListService, tokens middleware.TokenValidator, syncLimiter *middleware.RateLimiter) *ShoppingListHandler {
	return &ShoppingListHandler{
		shoppingListService: shoppingListService,
		tokens:              tokens,
		syncLimiter:         syncLimiter,
	}
}

func (h *ShoppingListHandler) RegisterRoutes(router *gin.RouterGroup) {
	list := router.Group("/shopping-list")
	list.Use(middleware.AuthMiddleware(h.tokens))
	{
		if h.syncLimiter != nil {
			list.GET("", h.syncLimiter.RateLimitMiddleware(), h.GetShoppingList)
		} else {
			list.GET("", h.GetShoppingList)
		}
		list.POST("", h.AddItem)
		list.POST("/export", h.Export)
		list.PATCH("/:itemId", h.UpdateItem)
		list.DELETE("/:itemId", h.DeleteItem)
	}
}

// GetShoppingList rebuilds the plan items from the selected weeks and returns
// the list. ?sync=false returns the stored list untouched.
func (h *ShoppingListHandler) GetShoppingList(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var (
		items []shopping.Item
		err   error
	)
	if c.Query("sync") == "false" {
		items, err = h.shoppingListService.Items(c.Request.Context(), userID)
	} else {
		weeks, perr := calendar.ParseWeeks(c.Query("weeks"))
		if perr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "weeks must be one of this, next, both"})
			return
		}
		items, err = h.shoppingListService.Sync(c.Request.Context(), userID, weeks)
	}
	if err != nil {
		respondError(c, err, "failed to load shopping list")
		return
	}
	if items == nil {
		items = []shopping.Item{}
	}
	c.JSON(http.StatusOK, types.ShoppingListResponse{Items: items})
}

func (h *ShoppingListHandler) AddItem(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req types.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := h.shoppingListService.AddItem(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, "failed to add item")
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *ShoppingListHandler) UpdateItem(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req types.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := h.shoppingListService.UpdateItem(c.Request.Context(), userID, c.Param("itemId"), &req)
	if err != nil {
		respondError(c, err, "failed to update item")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ShoppingListHandler) DeleteItem(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.shoppingListService.DeleteItem(c.Request.Context(), userID, c.Param("itemId")); err != nil {
		respondError(c, err, "failed to delete item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Export uploads the list as plain text and returns a temporary download link
func (h *ShoppingListHandler) Export(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	resp, err := h.shoppingListService.Export(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to export shopping list")
		return
	}
	c.JSON(http.StatusOK, resp)
}
