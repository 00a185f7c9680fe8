package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/models"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/types"
)

// RecipeService handles recipe operations. Recipes are private to their owner.
type RecipeService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// Ensure RecipeService implements IRecipeService
var _ IRecipeService = (*RecipeService)(nil)

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, logger *zap.Logger) *RecipeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecipeService{
		db:     db,
		logger: logger,
	}
}

// CreateRecipe stores a new recipe for the user
func (s *RecipeService) CreateRecipe(ctx context.Context, userID uuid.UUID, req *types.RecipeRequest) (*models.Recipe, error) {
	ingredients, err := s.recipeIngredients(ctx, req.Ingredients)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        strings.TrimSpace(req.Name),
		Servings:    req.Servings,
		Ingredients: ingredients,
	}
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}

	s.logger.Debug("Created recipe", zap.String("recipe_id", recipe.ID.String()), zap.String("user_id", userID.String()))
	return recipe, nil
}

// GetRecipe retrieves a recipe owned by the user
func (s *RecipeService) GetRecipe(ctx context.Context, userID, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).First(&recipe, "id = ? AND user_id = ?", id, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return &recipe, nil
}

// UpdateRecipe applies the given fields to a recipe owned by the user
func (s *RecipeService) UpdateRecipe(ctx context.Context, userID, id uuid.UUID, updates *types.RecipeUpdates) (*models.Recipe, error) {
	recipe, err := s.GetRecipe(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if updates.Name != nil {
		recipe.Name = strings.TrimSpace(*updates.Name)
	}
	if updates.Servings != nil {
		recipe.Servings = *updates.Servings
	}
	if updates.Ingredients != nil {
		ingredients, err := s.recipeIngredients(ctx, *updates.Ingredients)
		if err != nil {
			return nil, err
		}
		recipe.Ingredients = ingredients
	}

	if err := s.db.WithContext(ctx).Save(recipe).Error; err != nil {
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}
	return recipe, nil
}

// DeleteRecipe deletes a recipe owned by the user. Meals that reference it
// keep their copied ingredients.
func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.Recipe{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete recipe: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecipeNotFound
	}
	return nil
}

// ListRecipes lists the user's recipes newest first. A non-empty query
// matches recipe names case-insensitively.
func (s *RecipeService) ListRecipes(ctx context.Context, userID uuid.UUID, query string) ([]models.Recipe, error) {
	recipes := []models.Recipe{}
	dbQuery := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if q := strings.TrimSpace(query); q != "" {
		dbQuery = dbQuery.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	if err := dbQuery.Order("created_at DESC").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// recipeIngredients converts request lines, checking that catalog links exist
func (s *RecipeService) recipeIngredients(ctx context.Context, reqs []types.RecipeIngredientRequest) (models.RecipeIngredients, error) {
	out := make(models.RecipeIngredients, 0, len(reqs))
	for _, r := range reqs {
		if r.IngredientID != nil {
			var count int64
			if err := s.db.WithContext(ctx).Model(&models.Ingredient{}).Where("id = ?", *r.IngredientID).Count(&count).Error; err != nil {
				return nil, fmt.Errorf("failed to look up ingredient: %w", err)
			}
			if count == 0 {
				return nil, fmt.Errorf("%w: unknown ingredient %s", ErrInvalidInput, *r.IngredientID)
			}
		}

		qty := 1.0
		if r.Quantity != nil {
			qty = *r.Quantity
		}
		out = append(out, models.RecipeIngredient{
			IngredientID: r.IngredientID,
			Name:         strings.TrimSpace(r.Name),
			Quantity:     qty,
			Unit:         strings.TrimSpace(r.Unit),
		})
	}
	return out, nil
}
