package service

import (
	"fmt"

	"codeswitch-review/internal/models"
	"codeswitch-review/internal/store"
)

// ProgressService computes per-reviewer completion counts.
type ProgressService struct {
	store store.Store
}

// NewProgressService creates a new progress service
func NewProgressService(st store.Store) *ProgressService {
	return &ProgressService{store: st}
}

// CompletedCount counts every item the reviewer has decided, regardless
// of the decision. Pulled items do not count. Matching is insensitive to
// case and surrounding whitespace in the input name.
func (s *ProgressService) CompletedCount(pool models.Pool, reviewer string) (int, error) {
	items, err := s.store.QueryByReviewer(pool, NormalizeReviewer(reviewer))
	if err != nil {
		return 0, fmt.Errorf("completed count: %w", err)
	}

	count := 0
	for _, item := range items {
		if item.Pulled {
			continue
		}
		count++
	}
	return count, nil
}

// AcceptedCount counts only approved and edited items, the stricter
// definition of reviewer progress where rejects do not score. Pulled
// items do not count here either.
func (s *ProgressService) AcceptedCount(pool models.Pool, reviewer string) (int, error) {
	items, err := s.store.QueryByReviewer(pool, NormalizeReviewer(reviewer))
	if err != nil {
		return 0, fmt.Errorf("accepted count: %w", err)
	}

	count := 0
	for _, item := range items {
		if item.Pulled {
			continue
		}
		if item.Status == models.StatusApprove || item.Status == models.StatusEdit {
			count++
		}
	}
	return count, nil
}

// Progress returns both counts for one reviewer in one pool.
func (s *ProgressService) Progress(pool models.Pool, reviewer string) (*models.Progress, error) {
	normalized := NormalizeReviewer(reviewer)

	completed, err := s.CompletedCount(pool, normalized)
	if err != nil {
		return nil, err
	}
	accepted, err := s.AcceptedCount(pool, normalized)
	if err != nil {
		return nil, err
	}

	return &models.Progress{
		Pool:      pool,
		Reviewer:  normalized,
		Completed: completed,
		Accepted:  accepted,
	}, nil
}
