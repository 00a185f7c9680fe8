package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/calendar"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/shopping"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/types"
)

const exportLinkTTL = 15 * time.Minute

// Export renders the stored list as text, uploads it and returns a temporary download link
func (s *ShoppingListService) Export(ctx context.Context, userID uuid.UUID) (resp *types.ExportResponse, err error) {
	defer func() { s.metrics.Export(err) }()

	if s.store == nil {
		return nil, ErrExportUnavailable
	}

	items, err := s.Items(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	title := "Shopping List (" + calendar.WeekLabel(calendar.WeekStart(now, 0)) + ")"
	body := shopping.RenderText(title, items)
	key := fmt.Sprintf("shopping-lists/%s/%s.txt", userID, now.Format("20060102T150405Z"))

	if err = s.store.Upload(ctx, key, []byte(body), "text/plain; charset=utf-8"); err != nil {
		return nil, fmt.Errorf("failed to upload shopping list: %w", err)
	}
	url, err := s.store.GeneratePresignedURL(ctx, key, exportLinkTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to presign shopping list: %w", err)
	}

	s.logger.Info("Exported shopping list",
		zap.String("user_id", userID.String()),
		zap.String("key", key),
		zap.Int("items", len(items)))

	return &types.ExportResponse{
		URL:       url,
		Key:       key,
		ExpiresIn: int(exportLinkTTL.Seconds()),
	}, nil
}
