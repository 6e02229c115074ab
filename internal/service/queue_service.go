package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"codeswitch-review/internal/models"
	"codeswitch-review/internal/store"
)

var (
	ErrEmptyReviewer   = errors.New("reviewer name is empty")
	ErrEmptyEditedText = errors.New("edited text is empty")
	ErrNotDecided      = errors.New("item has not been decided")
)

// QueueService selects the next pending item and records reviewer
// decisions. It is the only writer of the pending-to-terminal transition.
type QueueService struct {
	store store.Store
	now   func() time.Time
}

// NewQueueService creates a new queue service
func NewQueueService(st store.Store) *QueueService {
	return &QueueService{store: st, now: time.Now}
}

// NextPending returns an arbitrary pending item from the pool, or nil
// when the pool has no pending items left. The item is not claimed:
// two concurrent sessions may be handed the same item and the later
// decision silently wins.
func (s *QueueService) NextPending(pool models.Pool) (*models.ReviewItem, error) {
	item, err := s.store.FindOneByStatus(pool, models.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("next pending: %w", err)
	}
	return item, nil
}

// SubmitDecision records a reviewer's decision for one item.
//
// Approve copies the candidate text into reviewed_text, Edit stores the
// reviewer's edited text, Reject stores no reviewed text. Every decision
// stores the normalized reviewer identity and a fresh timestamp. There is
// no optimistic-lock check: if another reviewer already decided the item,
// this write overwrites theirs.
func (s *QueueService) SubmitDecision(pool models.Pool, id string, decision models.Decision, reviewer, editedText string) error {
	normalized := NormalizeReviewer(reviewer)
	if normalized == "" {
		return ErrEmptyReviewer
	}

	item, err := findItem(s.store, pool, id)
	if err != nil {
		return err
	}
	if item == nil {
		return store.ErrNotFound
	}
	if item.Status.Terminal() {
		slog.Warn("Decision overwrites an already-decided item",
			"pool", pool, "id", id, "previous_status", item.Status, "reviewer", normalized)
	}

	fields := map[string]any{
		store.FieldStatus:     string(decision.Status()),
		store.FieldReviewer:   normalized,
		store.FieldReviewedAt: s.now().UTC(),
	}

	switch decision {
	case models.DecisionApprove:
		fields[store.FieldReviewedText] = item.CandidateText
	case models.DecisionEdit:
		if editedText == "" {
			return ErrEmptyEditedText
		}
		fields[store.FieldReviewedText] = editedText
	case models.DecisionReject:
		fields[store.FieldReviewedText] = nil
	default:
		return fmt.Errorf("unknown decision %q", decision)
	}

	if err := s.store.UpdateByID(pool, id, fields); err != nil {
		return fmt.Errorf("submit decision: %w", err)
	}

	return nil
}

// findItem scans the pool for one id. The store contract has no get-by-id
// query, so this reuses the full scan the analytics view already needs.
func findItem(st store.Store, pool models.Pool, id string) (*models.ReviewItem, error) {
	items, err := st.QueryAll(pool)
	if err != nil {
		return nil, fmt.Errorf("query pool: %w", err)
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, nil
}

// ItemByID returns one item by id, or nil when absent. Used by handlers
// to re-display an item and by the reject-attribution query path.
func (s *QueueService) ItemByID(pool models.Pool, id string) (*models.ReviewItem, error) {
	return findItem(s.store, pool, id)
}
