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
	"github.com/pageza/alchemorsel-mealplan/backend/internal/metrics"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/models"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/shopping"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/types"
)

const defaultSaveAttempts = 3

// ShoppingListService keeps each user's shopping list in step with their meal plans
type ShoppingListService struct {
	db       *gorm.DB
	plans    PlanSource
	locker   Locker
	store    ObjectStore
	metrics  *metrics.Collector
	logger   *zap.Logger
	now      func() time.Time
	attempts int
}

// Ensure ShoppingListService implements IShoppingListService
var _ IShoppingListService = (*ShoppingListService)(nil)

// ShoppingListOption configures a ShoppingListService
type ShoppingListOption func(*ShoppingListService)

// WithLocker sets the per-user lock. Defaults to an in-process locker.
func WithLocker(l Locker) ShoppingListOption {
	return func(s *ShoppingListService) { s.locker = l }
}

// WithObjectStore enables Export
func WithObjectStore(store ObjectStore) ShoppingListOption {
	return func(s *ShoppingListService) { s.store = store }
}

// WithMetrics records sync and mutation metrics
func WithMetrics(m *metrics.Collector) ShoppingListOption {
	return func(s *ShoppingListService) { s.metrics = m }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) ShoppingListOption {
	return func(s *ShoppingListService) { s.logger = l }
}

// WithClock overrides the time source used to pick weeks and past days
func WithClock(now func() time.Time) ShoppingListOption {
	return func(s *ShoppingListService) { s.now = now }
}

// NewShoppingListService creates a new ShoppingListService instance
func NewShoppingListService(db *gorm.DB, plans PlanSource, opts ...ShoppingListOption) *ShoppingListService {
	s := &ShoppingListService{
		db:       db,
		plans:    plans,
		locker:   NewLocalLocker(),
		logger:   zap.NewNop(),
		now:      time.Now,
		attempts: defaultSaveAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sync rebuilds the plan-derived items from the selected weeks' meal plans,
// keeping checked state and manual items, and returns the saved list.
// Days of the current week that are already past are left out.
func (s *ShoppingListService) Sync(ctx context.Context, userID uuid.UUID, weeks calendar.Weeks) ([]shopping.Item, error) {
	start := time.Now()
	planItems := 0

	list, err := s.mutate(ctx, userID, func(current []shopping.Item) ([]shopping.Item, error) {
		now := s.now()
		plans, err := s.plans.PlansForWeeks(ctx, userID, weeks.Starts(now))
		if err != nil {
			return nil, err
		}

		weekly := make([]shopping.WeeklyMealPlan, 0, len(plans))
		for i := range plans {
			weekly = append(weekly, calendar.FilterFromToday(plans[i].Weekly(), now))
		}

		consolidated := shopping.Consolidate(weekly)
		planItems = len(consolidated)
		return shopping.Reconcile(consolidated, current), nil
	})
	s.metrics.ObserveSync(string(weeks), planItems, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Synced shopping list",
		zap.String("user_id", userID.String()),
		zap.String("weeks", string(weeks)),
		zap.Int("plan_items", planItems),
		zap.Int("total_items", len(list.Items)))
	return list.Items, nil
}

// Items returns the stored list without syncing it
func (s *ShoppingListService) Items(ctx context.Context, userID uuid.UUID) ([]shopping.Item, error) {
	list, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return list.Items, nil
}

// AddItem appends a manual item. A nil quantity defaults to 1.
func (s *ShoppingListService) AddItem(ctx context.Context, userID uuid.UUID, req *types.AddItemRequest) (*shopping.Item, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	unit := strings.TrimSpace(req.Unit)
	qty := 1.0
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	item := shopping.Item{
		ID:       uuid.NewString(),
		Name:     name,
		Quantity: qty,
		Unit:     unit,
		Source:   shopping.SourceManual,
		Checked:  false,
		PlanKey:  shopping.PlanKey(name, unit),
		Category: shopping.CategoryFood,
	}

	_, err := s.mutate(ctx, userID, func(current []shopping.Item) ([]shopping.Item, error) {
		return append(current, item), nil
	})
	if err != nil {
		return nil, err
	}
	s.metrics.ItemMutation("add")
	return &item, nil
}

// UpdateItem edits one item. Plan items only accept the checked flag.
func (s *ShoppingListService) UpdateItem(ctx context.Context, userID uuid.UUID, itemID string, req *types.UpdateItemRequest) (*shopping.Item, error) {
	var updated shopping.Item

	_, err := s.mutate(ctx, userID, func(current []shopping.Item) ([]shopping.Item, error) {
		idx := models.ListItems(current).Index(itemID)
		if idx < 0 {
			return nil, ErrItemNotFound
		}
		item := current[idx]
		if item.Source == shopping.SourcePlan && req.EditsContent() {
			return nil, ErrPlanItemReadOnly
		}

		if req.Checked != nil {
			item.Checked = *req.Checked
		}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
			}
			item.Name = name
		}
		if req.Quantity != nil {
			item.Quantity = *req.Quantity
		}
		if req.Unit != nil {
			item.Unit = strings.TrimSpace(*req.Unit)
		}
		if item.Source == shopping.SourceManual {
			item.PlanKey = shopping.PlanKey(item.Name, item.Unit)
		}

		current[idx] = item
		updated = item
		return current, nil
	})
	if err != nil {
		return nil, err
	}
	s.metrics.ItemMutation("update")
	return &updated, nil
}

// DeleteItem removes a manual item. Plan items can only be removed by editing the plan.
func (s *ShoppingListService) DeleteItem(ctx context.Context, userID uuid.UUID, itemID string) error {
	_, err := s.mutate(ctx, userID, func(current []shopping.Item) ([]shopping.Item, error) {
		idx := models.ListItems(current).Index(itemID)
		if idx < 0 {
			return nil, ErrItemNotFound
		}
		if current[idx].Source == shopping.SourcePlan {
			return nil, ErrPlanItemNotDeletable
		}
		return append(current[:idx], current[idx+1:]...), nil
	})
	if err != nil {
		return err
	}
	s.metrics.ItemMutation("delete")
	return nil
}

// mutate runs a read-modify-write on the user's list under the user's lock.
// fn receives a private copy of the current items. A save that loses the
// version check is retried from a fresh read.
func (s *ShoppingListService) mutate(ctx context.Context, userID uuid.UUID, fn func([]shopping.Item) ([]shopping.Item, error)) (*models.ShoppingList, error) {
	unlock, err := s.locker.Lock(ctx, "shopping_list:"+userID.String())
	if err != nil {
		return nil, err
	}
	defer unlock()

	for attempt := 1; attempt <= s.attempts; attempt++ {
		list, err := s.getOrCreate(ctx, userID)
		if err != nil {
			return nil, err
		}

		current := make([]shopping.Item, len(list.Items))
		copy(current, list.Items)
		next, err := fn(current)
		if err != nil {
			return nil, err
		}

		if itemsEqual(list.Items, next) {
			return list, nil
		}

		err = s.save(ctx, list, next)
		if err == nil {
			return list, nil
		}
		if !errors.Is(err, ErrConcurrentUpdate) {
			return nil, err
		}

		s.metrics.ConcurrentUpdate()
		s.logger.Warn("Shopping list changed during update, retrying",
			zap.String("user_id", userID.String()),
			zap.Int("attempt", attempt))
	}
	return nil, ErrConcurrentUpdate
}

func (s *ShoppingListService) getOrCreate(ctx context.Context, userID uuid.UUID) (*models.ShoppingList, error) {
	var list models.ShoppingList
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&list).Error
	if err == nil {
		return &list, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get shopping list: %w", err)
	}

	list = models.ShoppingList{
		ID:      uuid.New(),
		UserID:  userID,
		Items:   models.ListItems{},
		Version: 1,
	}
	if createErr := s.db.WithContext(ctx).Create(&list).Error; createErr != nil {
		// Another request may have created it first.
		var existing models.ShoppingList
		if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&existing).Error; err == nil {
			return &existing, nil
		}
		return nil, fmt.Errorf("failed to create shopping list: %w", createErr)
	}
	return &list, nil
}

// save writes items only if nobody saved the list since it was read
func (s *ShoppingListService) save(ctx context.Context, list *models.ShoppingList, items []shopping.Item) error {
	result := s.db.WithContext(ctx).
		Model(&models.ShoppingList{}).
		Where("id = ? AND version = ?", list.ID, list.Version).
		Updates(map[string]interface{}{
			"items":      models.ListItems(items),
			"version":    list.Version + 1,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to save shopping list: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrConcurrentUpdate
	}

	list.Items = items
	list.Version++
	return nil
}

func itemsEqual(a, b []shopping.Item) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
