package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/models"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/types"
)

// IngredientService manages the shared ingredient catalog
type IngredientService struct {
	db *gorm.DB
}

var _ IIngredientService = (*IngredientService)(nil)

func NewIngredientService(db *gorm.DB) *IngredientService {
	return &IngredientService{db: db}
}

func (s *IngredientService) CreateIngredient(ctx context.Context, req *types.CatalogIngredientRequest) (*models.Ingredient, error) {
	ingredient := &models.Ingredient{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(req.Name),
		Quantity: 1,
		Unit:     strings.TrimSpace(req.Unit),
	}
	if req.Quantity != nil {
		ingredient.Quantity = *req.Quantity
	}
	if err := s.db.WithContext(ctx).Create(ingredient).Error; err != nil {
		return nil, fmt.Errorf("failed to create ingredient: %w", err)
	}
	return ingredient, nil
}

func (s *IngredientService) GetIngredient(ctx context.Context, id uuid.UUID) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := s.db.WithContext(ctx).First(&ingredient, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrIngredientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ingredient: %w", err)
	}
	return &ingredient, nil
}

func (s *IngredientService) UpdateIngredient(ctx context.Context, id uuid.UUID, updates *types.CatalogIngredientUpdates) (*models.Ingredient, error) {
	ingredient, err := s.GetIngredient(ctx, id)
	if err != nil {
		return nil, err
	}
	if updates.Name != nil {
		ingredient.Name = strings.TrimSpace(*updates.Name)
	}
	if updates.Quantity != nil {
		ingredient.Quantity = *updates.Quantity
	}
	if updates.Unit != nil {
		ingredient.Unit = strings.TrimSpace(*updates.Unit)
	}
	if err := s.db.WithContext(ctx).Save(ingredient).Error; err != nil {
		return nil, fmt.Errorf("failed to update ingredient: %w", err)
	}
	return ingredient, nil
}

func (s *IngredientService) DeleteIngredient(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.Ingredient{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete ingredient: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrIngredientNotFound
	}
	return nil
}

// ListIngredients returns the catalog ordered by name, optionally filtered
// by a case-insensitive name match
func (s *IngredientService) ListIngredients(ctx context.Context, query string) ([]models.Ingredient, error) {
	ingredients := []models.Ingredient{}
	dbQuery := s.db.WithContext(ctx)
	if q := strings.TrimSpace(query); q != "" {
		dbQuery = dbQuery.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	if err := dbQuery.Order("name ASC").Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	return ingredients, nil
}
