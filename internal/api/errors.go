package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/calendar"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/middleware"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/service"
)

// statusFor maps service errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidDay),
		errors.Is(err, service.ErrInvalidWeekStart),
		errors.Is(err, calendar.ErrInvalidWeeks):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrTokenExpired):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrPlanItemReadOnly),
		errors.Is(err, service.ErrPlanItemNotDeletable):
		return http.StatusForbidden
	case errors.Is(err, service.ErrPlanNotFound),
		errors.Is(err, service.ErrDayNotFound),
		errors.Is(err, service.ErrMealNotFound),
		errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrRecipeNotFound),
		errors.Is(err, service.ErrIngredientNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConcurrentUpdate):
		return http.StatusConflict
	case errors.Is(err, service.ErrLockTimeout),
		errors.Is(err, service.ErrExportUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as {"error": ...}. Unexpected errors are hidden
// behind fallback and attached to the context for the request logger.
func respondError(c *gin.Context, err error, fallback string) {
	_ = c.Error(err)
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": fallback})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func respondBindError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
}

func requireUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
	return userID, ok
}
