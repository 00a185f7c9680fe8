package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/calendar"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/service"
)

func TestHealthCheck(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	HealthCheck(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestReadinessCheck(t *testing.T) {
	r := gin.New()
	healthy := true
	r.GET("/ready", ReadinessCheck(func(context.Context) error {
		if healthy {
			return nil
		}
		return errors.New("dial tcp: refused")
	}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	healthy = false
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "refused")
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{service.ErrInvalidInput, http.StatusBadRequest},
		{service.ErrInvalidDay, http.StatusBadRequest},
		{calendar.ErrInvalidWeeks, http.StatusBadRequest},
		{service.ErrTokenExpired, http.StatusUnauthorized},
		{service.ErrPlanItemReadOnly, http.StatusForbidden},
		{service.ErrPlanItemNotDeletable, http.StatusForbidden},
		{service.ErrDayNotFound, http.StatusNotFound},
		{service.ErrItemNotFound, http.StatusNotFound},
		{service.ErrConcurrentUpdate, http.StatusConflict},
		{service.ErrExportUnavailable, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.status, statusFor(tt.err))
			assert.Equal(t, tt.status, statusFor(errors.Join(errors.New("wrapped"), tt.err)))
		})
	}
}
