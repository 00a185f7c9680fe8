package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/calendar"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/models"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/shopping"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/types"
)

// MealPlanService handles weekly meal plan operations
type MealPlanService struct {
	db     *gorm.DB
	locker Locker
	logger *zap.Logger
}

// Ensure MealPlanService implements IMealPlanService
var _ IMealPlanService = (*MealPlanService)(nil)

// NewMealPlanService creates a new MealPlanService instance. A nil locker
// falls back to an in-process one.
func NewMealPlanService(db *gorm.DB, locker Locker, logger *zap.Logger) *MealPlanService {
	if locker == nil {
		locker = NewLocalLocker()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MealPlanService{
		db:     db,
		locker: locker,
		logger: logger,
	}
}

// GetWeek returns the stored plan for the week, or an unsaved empty plan
// with all seven days when the user has none yet.
func (s *MealPlanService) GetWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*models.MealPlan, error) {
	plan, err := s.findWeek(ctx, userID, calendar.FormatWeekStart(weekStart))
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return &models.MealPlan{
			UserID:    userID,
			WeekStart: calendar.FormatWeekStart(weekStart),
			Days:      emptyDays(),
		}, nil
	}
	return plan, nil
}

// ListPlans returns every plan of the user, newest week first
func (s *MealPlanService) ListPlans(ctx context.Context, userID uuid.UUID) ([]models.MealPlan, error) {
	var plans []models.MealPlan
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("week_start DESC").
		Find(&plans).Error; err != nil {
		return nil, fmt.Errorf("failed to list meal plans: %w", err)
	}
	return plans, nil
}

// GetPlan returns one plan owned by the user
func (s *MealPlanService) GetPlan(ctx context.Context, userID, planID uuid.UUID) (*models.MealPlan, error) {
	var plan models.MealPlan
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", planID, userID).
		First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get meal plan: %w", err)
	}
	return &plan, nil
}

// PlansForWeeks returns the user's stored plans for the given week starts
func (s *MealPlanService) PlansForWeeks(ctx context.Context, userID uuid.UUID, weekStarts []time.Time) ([]models.MealPlan, error) {
	if len(weekStarts) == 0 {
		return []models.MealPlan{}, nil
	}
	keys := make([]string, 0, len(weekStarts))
	for _, ws := range weekStarts {
		keys = append(keys, calendar.FormatWeekStart(ws))
	}

	var plans []models.MealPlan
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND week_start IN ?", userID, keys).
		Order("week_start ASC").
		Find(&plans).Error; err != nil {
		return nil, fmt.Errorf("failed to load meal plans: %w", err)
	}
	return plans, nil
}

// AddMeal appends a meal to a day, creating the week's plan on first use
func (s *MealPlanService) AddMeal(ctx context.Context, userID uuid.UUID, weekStart time.Time, day string, meal shopping.Meal) (*models.MealPlan, error) {
	if !calendar.IsWeekDay(day) {
		return nil, ErrInvalidDay
	}
	meal = prepareMeal(meal)
	if err := s.attachRecipe(ctx, userID, &meal); err != nil {
		return nil, err
	}
	week := calendar.FormatWeekStart(weekStart)

	unlock, err := s.locker.Lock(ctx, "mealplan:"+userID.String())
	if err != nil {
		return nil, err
	}
	defer unlock()

	plan, err := s.findWeek(ctx, userID, week)
	if err != nil {
		return nil, err
	}

	if plan == nil {
		plan = &models.MealPlan{
			ID:        uuid.New(),
			UserID:    userID,
			WeekStart: week,
			Days:      emptyDays(),
		}
		plan.Day(day).Meals = append(plan.Day(day).Meals, meal)
		if err := s.db.WithContext(ctx).Create(plan).Error; err != nil {
			return nil, fmt.Errorf("failed to create meal plan: %w", err)
		}
		s.logger.Info("Created meal plan",
			zap.String("user_id", userID.String()),
			zap.String("week_start", week))
		return plan, nil
	}

	if d := plan.Day(day); d != nil {
		d.Meals = append(d.Meals, meal)
	} else {
		plan.Days = append(plan.Days, shopping.DayPlan{Day: day, Meals: []shopping.Meal{meal}})
	}
	if err := s.db.WithContext(ctx).Save(plan).Error; err != nil {
		return nil, fmt.Errorf("failed to save meal plan: %w", err)
	}
	return plan, nil
}

// UpdateMeal applies the non-nil fields of updates to one meal
func (s *MealPlanService) UpdateMeal(ctx context.Context, userID, planID uuid.UUID, day, mealID string, updates *types.MealUpdates) (*models.MealPlan, error) {
	return s.mutateDay(ctx, userID, planID, day, func(d *shopping.DayPlan) error {
		for i := range d.Meals {
			if d.Meals[i].ID != mealID {
				continue
			}
			applyMealUpdates(&d.Meals[i], updates)
			return nil
		}
		return ErrMealNotFound
	})
}

// RemoveMeal deletes a meal from a day. Removing a meal that is already gone is not an error.
func (s *MealPlanService) RemoveMeal(ctx context.Context, userID, planID uuid.UUID, day, mealID string) (*models.MealPlan, error) {
	return s.mutateDay(ctx, userID, planID, day, func(d *shopping.DayPlan) error {
		kept := make([]shopping.Meal, 0, len(d.Meals))
		for _, m := range d.Meals {
			if m.ID != mealID {
				kept = append(kept, m)
			}
		}
		d.Meals = kept
		return nil
	})
}

func (s *MealPlanService) mutateDay(ctx context.Context, userID, planID uuid.UUID, day string, fn func(*shopping.DayPlan) error) (*models.MealPlan, error) {
	if !calendar.IsWeekDay(day) {
		return nil, ErrInvalidDay
	}

	unlock, err := s.locker.Lock(ctx, "mealplan:"+userID.String())
	if err != nil {
		return nil, err
	}
	defer unlock()

	plan, err := s.GetPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	d := plan.Day(day)
	if d == nil {
		return nil, ErrDayNotFound
	}
	if err := fn(d); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Save(plan).Error; err != nil {
		return nil, fmt.Errorf("failed to save meal plan: %w", err)
	}
	return plan, nil
}

func (s *MealPlanService) findWeek(ctx context.Context, userID uuid.UUID, week string) (*models.MealPlan, error) {
	var plan models.MealPlan
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND week_start = ?", userID, week).
		First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get meal plan: %w", err)
	}
	return &plan, nil
}

// attachRecipe checks that a referenced recipe belongs to the user and
// copies its ingredients into a meal that brings none of its own
func (s *MealPlanService) attachRecipe(ctx context.Context, userID uuid.UUID, meal *shopping.Meal) error {
	if meal.RecipeID == nil {
		return nil
	}
	if strings.TrimSpace(*meal.RecipeID) == "" {
		meal.RecipeID = nil
		return nil
	}
	recipeID, err := uuid.Parse(*meal.RecipeID)
	if err != nil {
		return fmt.Errorf("%w: invalid recipe id", ErrInvalidInput)
	}

	var recipe models.Recipe
	err = s.db.WithContext(ctx).First(&recipe, "id = ? AND user_id = ?", recipeID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRecipeNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load recipe: %w", err)
	}

	if len(meal.Ingredients) == 0 {
		meal.Ingredients = recipe.MealIngredients()
	}
	return nil
}

func emptyDays() models.PlanDays {
	days := make(models.PlanDays, 0, 7)
	for _, d := range calendar.WeekDays() {
		days = append(days, shopping.DayPlan{Day: d, Meals: []shopping.Meal{}})
	}
	return days
}

func prepareMeal(meal shopping.Meal) shopping.Meal {
	if meal.ID == "" {
		meal.ID = uuid.NewString()
	}
	meal.Name = strings.TrimSpace(meal.Name)
	if meal.Ingredients == nil {
		meal.Ingredients = []shopping.MealIngredient{}
	}
	return meal
}

func applyMealUpdates(meal *shopping.Meal, updates *types.MealUpdates) {
	if updates == nil {
		return
	}
	if updates.Name != nil {
		meal.Name = strings.TrimSpace(*updates.Name)
	}
	if updates.Time != nil {
		meal.Time = *updates.Time
	}
	if updates.Servings != nil {
		meal.Servings = *updates.Servings
	}
	if updates.Ingredients != nil {
		meal.Ingredients = types.ToIngredients(*updates.Ingredients)
	}
	if updates.Seasonings != nil {
		meal.Seasonings = types.ToIngredients(*updates.Seasonings)
	}
}
