package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/calendar"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/middleware"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/models"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/shopping"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/types"
)

const testToken = "valid-token"

var errInvalidTestToken = errors.New("invalid token")

func init() {
	gin.SetMode(gin.TestMode)
}

// MockTokenService implements service.ITokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}

func (m *MockTokenService) GenerateToken(userID uuid.UUID, username string) (string, error) {
	args := m.Called(userID, username)
	return args.String(0), args.Error(1)
}

// MockMealPlanService implements service.IMealPlanService
type MockMealPlanService struct {
	mock.Mock
}

func (m *MockMealPlanService) GetWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*models.MealPlan, error) {
	args := m.Called(ctx, userID, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MealPlan), args.Error(1)
}

func (m *MockMealPlanService) ListPlans(ctx context.Context, userID uuid.UUID) ([]models.MealPlan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MealPlan), args.Error(1)
}

func (m *MockMealPlanService) GetPlan(ctx context.Context, userID, planID uuid.UUID) (*models.MealPlan, error) {
	args := m.Called(ctx, userID, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MealPlan), args.Error(1)
}

func (m *MockMealPlanService) AddMeal(ctx context.Context, userID uuid.UUID, weekStart time.Time, day string, meal shopping.Meal) (*models.MealPlan, error) {
	args := m.Called(ctx, userID, weekStart, day, meal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MealPlan), args.Error(1)
}

func (m *MockMealPlanService) UpdateMeal(ctx context.Context, userID, planID uuid.UUID, day, mealID string, updates *types.MealUpdates) (*models.MealPlan, error) {
	args := m.Called(ctx, userID, planID, day, mealID, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MealPlan), args.Error(1)
}

func (m *MockMealPlanService) RemoveMeal(ctx context.Context, userID, planID uuid.UUID, day, mealID string) (*models.MealPlan, error) {
	args := m.Called(ctx, userID, planID, day, mealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MealPlan), args.Error(1)
}

func (m *MockMealPlanService) PlansForWeeks(ctx context.Context, userID uuid.UUID, weekStarts []time.Time) ([]models.MealPlan, error) {
	args := m.Called(ctx, userID, weekStarts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MealPlan), args.Error(1)
}

// MockShoppingListService implements service.IShoppingListService
type MockShoppingListService struct {
	mock.Mock
}

func (m *MockShoppingListService) Sync(ctx context.Context, userID uuid.UUID, weeks calendar.Weeks) ([]shopping.Item, error) {
	args := m.Called(ctx, userID, weeks)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shopping.Item), args.Error(1)
}

func (m *MockShoppingListService) Items(ctx context.Context, userID uuid.UUID) ([]shopping.Item, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shopping.Item), args.Error(1)
}

func (m *MockShoppingListService) AddItem(ctx context.Context, userID uuid.UUID, req *types.AddItemRequest) (*shopping.Item, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shopping.Item), args.Error(1)
}

func (m *MockShoppingListService) UpdateItem(ctx context.Context, userID uuid.UUID, itemID string, req *types.UpdateItemRequest) (*shopping.Item, error) {
	args := m.Called(ctx, userID, itemID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shopping.Item), args.Error(1)
}

func (m *MockShoppingListService) DeleteItem(ctx context.Context, userID uuid.UUID, itemID string) error {
	args := m.Called(ctx, userID, itemID)
	return args.Error(0)
}

func (m *MockShoppingListService) Export(ctx context.Context, userID uuid.UUID) (*types.ExportResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ExportResponse), args.Error(1)
}

// MockRecipeService implements service.IRecipeService
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) CreateRecipe(ctx context.Context, userID uuid.UUID, req *types.RecipeRequest) (*models.Recipe, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRecipeService) GetRecipe(ctx context.Context, userID, id uuid.UUID) (*models.Recipe, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRecipeService) UpdateRecipe(ctx context.Context, userID, id uuid.UUID, updates *types.RecipeUpdates) (*models.Recipe, error) {
	args := m.Called(ctx, userID, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRecipeService) DeleteRecipe(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockRecipeService) ListRecipes(ctx context.Context, userID uuid.UUID, query string) ([]models.Recipe, error) {
	args := m.Called(ctx, userID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Recipe), args.Error(1)
}

// MockIngredientService implements service.IIngredientService
type MockIngredientService struct {
	mock.Mock
}

func (m *MockIngredientService) CreateIngredient(ctx context.Context, req *types.CatalogIngredientRequest) (*models.Ingredient, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ingredient), args.Error(1)
}

func (m *MockIngredientService) GetIngredient(ctx context.Context, id uuid.UUID) (*models.Ingredient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ingredient), args.Error(1)
}

func (m *MockIngredientService) UpdateIngredient(ctx context.Context, id uuid.UUID, updates *types.CatalogIngredientUpdates) (*models.Ingredient, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ingredient), args.Error(1)
}

func (m *MockIngredientService) DeleteIngredient(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockIngredientService) ListIngredients(ctx context.Context, query string) ([]models.Ingredient, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Ingredient), args.Error(1)
}

type testAPI struct {
	router      *gin.Engine
	userID      uuid.UUID
	plans       *MockMealPlanService
	shopping    *MockShoppingListService
	recipes     *MockRecipeService
	ingredients *MockIngredientService
}

func setupTestAPI(t *testing.T, limiter *middleware.RateLimiter) *testAPI {
	t.Helper()

	userID := uuid.New()
	tokens := new(MockTokenService)
	tokens.On("ValidateToken", testToken).Return(&types.TokenClaims{UserID: userID, Username: "tester"}, nil)
	tokens.On("ValidateToken", mock.Anything).Return(nil, errInvalidTestToken)

	ta := &testAPI{
		router:      gin.New(),
		userID:      userID,
		plans:       new(MockMealPlanService),
		shopping:    new(MockShoppingListService),
		recipes:     new(MockRecipeService),
		ingredients: new(MockIngredientService),
	}
	require.NoError(t, SetupAPI(ta.router, Services{
		Tokens:       tokens,
		MealPlans:    ta.plans,
		ShoppingList: ta.shopping,
		Recipes:      ta.recipes,
		Ingredients:  ta.ingredients,
		SyncLimiter:  limiter,
	}))
	return ta
}

// PerformRequest sends an authenticated request. body is encoded as JSON when non-nil.
func (ta *testAPI) PerformRequest(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	return performRequest(t, ta.router, method, path, body, testToken)
}

func performRequest(t *testing.T, router http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}
