package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/calendar"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/middleware"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/service"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/shopping"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/types"
)

var sampleItems = []shopping.Item{
	{ID: "a", Name: "Rice", Quantity: 3, Unit: "cups", Source: shopping.SourcePlan, PlanKey: "rice|cup", Category: shopping.CategoryFood},
	{ID: "b", Name: "paper towels", Quantity: 1, Source: shopping.SourceManual, Checked: true, Category: shopping.CategoryFood},
}

func TestGetShoppingListSyncs(t *testing.T) {
	tests := []struct {
		query string
		weeks calendar.Weeks
	}{
		{"", calendar.ThisWeek},
		{"?weeks=this", calendar.ThisWeek},
		{"?weeks=next", calendar.NextWeek},
		{"?weeks=both", calendar.BothWeeks},
	}

	for _, tt := range tests {
		t.Run(string(tt.weeks)+tt.query, func(t *testing.T) {
			ta := setupTestAPI(t, nil)
			ta.shopping.On("Sync", mock.Anything, ta.userID, tt.weeks).Return(sampleItems, nil)

			w := ta.PerformRequest(t, http.MethodGet, "/api/v1/shopping-list"+tt.query, nil)
			require.Equal(t, http.StatusOK, w.Code)

			var resp types.ShoppingListResponse
			decodeBody(t, w, &resp)
			assert.Equal(t, sampleItems, resp.Items)
			ta.shopping.AssertExpectations(t)
		})
	}
}

func TestGetShoppingListInvalidWeeks(t *testing.T) {
	ta := setupTestAPI(t, nil)

	w := ta.PerformRequest(t, http.MethodGet, "/api/v1/shopping-list?weeks=last", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	ta.shopping.AssertNotCalled(t, "Sync", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetShoppingListWithoutSync(t *testing.T) {
	ta := setupTestAPI(t, nil)
	ta.shopping.On("Items", mock.Anything, ta.userID).Return(nil, nil)

	w := ta.PerformRequest(t, http.MethodGet, "/api/v1/shopping-list?sync=false", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[]}`, w.Body.String())
	ta.shopping.AssertNotCalled(t, "Sync", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetShoppingListErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"concurrent update", service.ErrConcurrentUpdate, http.StatusConflict},
		{"lock timeout", service.ErrLockTimeout, http.StatusServiceUnavailable},
		{"unexpected", errors.New("disk full"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := setupTestAPI(t, nil)
			ta.shopping.On("Sync", mock.Anything, ta.userID, calendar.ThisWeek).Return(nil, tt.err)

			w := ta.PerformRequest(t, http.MethodGet, "/api/v1/shopping-list", nil)
			assert.Equal(t, tt.status, w.Code)
			assert.NotContains(t, w.Body.String(), "disk full")
		})
	}
}

func TestGetShoppingListRateLimited(t *testing.T) {
	ta := setupTestAPI(t, middleware.NewSyncRateLimiter(nil, 1))
	ta.shopping.On("Sync", mock.Anything, ta.userID, calendar.ThisWeek).Return(sampleItems, nil)
	ta.shopping.On("AddItem", mock.Anything, ta.userID, mock.Anything).Return(&sampleItems[1], nil)

	w := ta.PerformRequest(t, http.MethodGet, "/api/v1/shopping-list", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ta.PerformRequest(t, http.MethodGet, "/api/v1/shopping-list", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	ta.shopping.AssertNumberOfCalls(t, "Sync", 1)

	// Only the rebuild is throttled.
	w = ta.PerformRequest(t, http.MethodPost, "/api/v1/shopping-list", map[string]interface{}{"name": "eggs"})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestAddShoppingListItem(t *testing.T) {
	ta := setupTestAPI(t, nil)
	created := &shopping.Item{ID: "n1", Name: "Eggs", Quantity: 12, Source: shopping.SourceManual, Category: shopping.CategoryFood}
	isEggs := mock.MatchedBy(func(r *types.AddItemRequest) bool {
		return r.Name == "Eggs" && r.Quantity != nil && *r.Quantity == 12
	})
	ta.shopping.On("AddItem", mock.Anything, ta.userID, isEggs).Return(created, nil)

	w := ta.PerformRequest(t, http.MethodPost, "/api/v1/shopping-list", map[string]interface{}{"name": "Eggs", "quantity": 12})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var item shopping.Item
	decodeBody(t, w, &item)
	assert.Equal(t, *created, item)

	w = ta.PerformRequest(t, http.MethodPost, "/api/v1/shopping-list", map[string]interface{}{"quantity": 2})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ta.PerformRequest(t, http.MethodPost, "/api/v1/shopping-list", map[string]interface{}{"name": "milk", "quantity": -2})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	ta.shopping.AssertNumberOfCalls(t, "AddItem", 1)
}

func TestUpdateShoppingListItem(t *testing.T) {
	ta := setupTestAPI(t, nil)
	checked := sampleItems[0]
	checked.Checked = true

	ta.shopping.On("UpdateItem", mock.Anything, ta.userID, "a", mock.MatchedBy(func(r *types.UpdateItemRequest) bool {
		return r.Checked != nil && *r.Checked && !r.EditsContent()
	})).Return(&checked, nil)
	ta.shopping.On("UpdateItem", mock.Anything, ta.userID, "a", mock.MatchedBy(func(r *types.UpdateItemRequest) bool {
		return r.EditsContent()
	})).Return(nil, service.ErrPlanItemReadOnly)
	ta.shopping.On("UpdateItem", mock.Anything, ta.userID, "zzz", mock.Anything).Return(nil, service.ErrItemNotFound)

	w := ta.PerformRequest(t, http.MethodPatch, "/api/v1/shopping-list/a", map[string]interface{}{"checked": true})
	require.Equal(t, http.StatusOK, w.Code)
	var item shopping.Item
	decodeBody(t, w, &item)
	assert.True(t, item.Checked)

	w = ta.PerformRequest(t, http.MethodPatch, "/api/v1/shopping-list/a", map[string]interface{}{"name": "brown rice"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "meal plan")

	w = ta.PerformRequest(t, http.MethodPatch, "/api/v1/shopping-list/zzz", map[string]interface{}{"checked": false})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteShoppingListItem(t *testing.T) {
	ta := setupTestAPI(t, nil)
	ta.shopping.On("DeleteItem", mock.Anything, ta.userID, "b").Return(nil)
	ta.shopping.On("DeleteItem", mock.Anything, ta.userID, "a").Return(service.ErrPlanItemNotDeletable)

	w := ta.PerformRequest(t, http.MethodDelete, "/api/v1/shopping-list/b", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	w = ta.PerformRequest(t, http.MethodDelete, "/api/v1/shopping-list/a", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestExportShoppingList(t *testing.T) {
	ta := setupTestAPI(t, nil)
	ta.shopping.On("Export", mock.Anything, ta.userID).Return(&types.ExportResponse{
		URL:       "https://bucket.s3.amazonaws.com/shopping-lists/x.txt?X-Amz-Expires=900",
		Key:       "shopping-lists/x.txt",
		ExpiresIn: 900,
	}, nil).Once()
	ta.shopping.On("Export", mock.Anything, ta.userID).Return(nil, service.ErrExportUnavailable).Once()

	w := ta.PerformRequest(t, http.MethodPost, "/api/v1/shopping-list/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp types.ExportResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "shopping-lists/x.txt", resp.Key)
	assert.Equal(t, 900, resp.ExpiresIn)

	w = ta.PerformRequest(t, http.MethodPost, "/api/v1/shopping-list/export", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
