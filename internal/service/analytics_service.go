package service

import (
	"fmt"
	"sort"
	"time"

	"codeswitch-review/internal/models"
	"codeswitch-review/internal/store"
)

// AnalyticsService computes the aggregate reviewer report for a pool.
type AnalyticsService struct {
	store store.Store
	now   func() time.Time
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(st store.Store) *AnalyticsService {
	return &AnalyticsService{store: st, now: time.Now}
}

// Aggregate groups all items in the pool by reviewer and status. Pulled
// items and rejected items are excluded entirely; items without a
// reviewer are bucketed under the unreviewed sentinel. Reviewers are
// ranked ascending by their approved+edited total.
func (s *AnalyticsService) Aggregate(pool models.Pool) (*models.AnalyticsReport, error) {
	items, err := s.store.QueryAll(pool)
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}

	byReviewer := make(map[string]map[models.Status]int)
	for _, item := range items {
		if item.Pulled || item.Status == models.StatusReject {
			continue
		}

		key := models.UnreviewedKey
		if item.Reviewer != nil && *item.Reviewer != "" {
			key = NormalizeReviewer(*item.Reviewer)
		}

		if byReviewer[key] == nil {
			byReviewer[key] = make(map[models.Status]int)
		}
		byReviewer[key][item.Status]++
	}

	report := &models.AnalyticsReport{
		Pool:        pool,
		Reviewers:   []models.ReviewerStats{},
		GeneratedAt: s.now().UTC(),
	}

	for name, counts := range byReviewer {
		if name == models.UnreviewedKey {
			for _, n := range counts {
				report.Unreviewed += n
			}
			continue
		}

		total := counts[models.StatusApprove] + counts[models.StatusEdit]
		report.Reviewers = append(report.Reviewers, models.ReviewerStats{
			Reviewer: name,
			Counts:   counts,
			Total:    total,
		})
		report.GrandTotal += total
	}

	// Ascending leaderboard; ties broken by name for a stable order.
	sort.Slice(report.Reviewers, func(i, j int) bool {
		if report.Reviewers[i].Total != report.Reviewers[j].Total {
			return report.Reviewers[i].Total < report.Reviewers[j].Total
		}
		return report.Reviewers[i].Reviewer < report.Reviewers[j].Reviewer
	})

	return report, nil
}
