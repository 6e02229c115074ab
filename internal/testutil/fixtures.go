package testutil

import (
	"time"

	"codeswitch-review/internal/models"
)

// PendingItem builds a pending review item for tests
func PendingItem(id, originalText, candidateText string) models.ReviewItem {
	return models.ReviewItem{
		ID:            id,
		OriginalText:  originalText,
		CandidateText: candidateText,
		CreatorName:   "fixture",
		Domain:        "test",
		Status:        models.StatusPending,
		CreatedAt:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// DecidedItem builds an already-decided item for tests
func DecidedItem(id, reviewer string, status models.Status, reviewedText string, reviewedAt time.Time) models.ReviewItem {
	item := PendingItem(id, "original "+id, "candidate "+id)
	item.Status = status
	item.Reviewer = &reviewer
	item.ReviewedAt = &reviewedAt
	if status == models.StatusApprove || status == models.StatusEdit {
		item.ReviewedText = &reviewedText
	}
	return item
}

// PulledItem builds a decided item flagged as pulled
func PulledItem(id, reviewer string, reviewedAt time.Time) models.ReviewItem {
	item := DecidedItem(id, reviewer, models.StatusApprove, "pulled text", reviewedAt)
	item.Pulled = true
	return item
}
