package service

import (
	"fmt"
	"sort"
	"time"

	"codeswitch-review/internal/models"
	"codeswitch-review/internal/store"
)

// DefaultHistoryLimit caps history results when the caller gives no limit.
const DefaultHistoryLimit = 20

// HistoryService retrieves and revises a reviewer's past decisions.
type HistoryService struct {
	store store.Store
	now   func() time.Time
}

// NewHistoryService creates a new history service
func NewHistoryService(st store.Store) *HistoryService {
	return &HistoryService{store: st, now: time.Now}
}

// History returns the reviewer's decided items ordered by review
// timestamp, newest first, truncated to limit. Pulled items and items
// with no timestamp are excluded.
func (s *HistoryService) History(pool models.Pool, reviewer string, limit int) ([]models.ReviewItem, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	items, err := s.store.QueryByReviewer(pool, NormalizeReviewer(reviewer))
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}

	filtered := []models.ReviewItem{}
	for _, item := range items {
		if item.Pulled || item.ReviewedAt == nil {
			continue
		}
		filtered = append(filtered, item)
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].ReviewedAt.After(*filtered[j].ReviewedAt)
	})

	if len(filtered) > limit {
		filtered = filtered[:limit]
	}

	return filtered, nil
}

// ReviseEntry overwrites the reviewed text of an already-decided item.
// The item is forced to edit status and gets a fresh timestamp. This is
// the one path that may write an item more than once. Pending items are
// rejected so a revision can never produce a decided item without a
// reviewer.
func (s *HistoryService) ReviseEntry(pool models.Pool, id, newText string) error {
	if newText == "" {
		return ErrEmptyEditedText
	}

	item, err := findItem(s.store, pool, id)
	if err != nil {
		return fmt.Errorf("revise entry: %w", err)
	}
	if item == nil {
		return store.ErrNotFound
	}
	if item.Status == models.StatusPending {
		return ErrNotDecided
	}

	fields := map[string]any{
		store.FieldStatus:       string(models.StatusEdit),
		store.FieldReviewedText: newText,
		store.FieldReviewedAt:   s.now().UTC(),
	}

	if err := s.store.UpdateByID(pool, id, fields); err != nil {
		return fmt.Errorf("revise entry: %w", err)
	}

	return nil
}
