package service

import (
	"errors"
	"testing"
	"time"

	"codeswitch-review/internal/models"
	"codeswitch-review/internal/store"
	"codeswitch-review/internal/testutil"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNextPendingReturnsPendingItem(t *testing.T) {
	st := testutil.NewMemStore()
	st.Seed(models.PoolFirstStage,
		testutil.PendingItem("batch_0", "hello", "hallo there"),
		testutil.DecidedItem("batch_1", "alice", models.StatusApprove, "done", time.Now()),
	)
	svc := NewQueueService(st)

	item, err := svc.NextPending(models.PoolFirstStage)
	if err != nil {
		t.Fatalf("Failed to get next pending item: %v", err)
	}
	if item == nil {
		t.Fatal("Expected a pending item, got nil")
	}
	if item.ID != "batch_0" {
		t.Errorf("Expected batch_0, got %s", item.ID)
	}
	if item.Status != models.StatusPending {
		t.Errorf("Expected pending status, got %s", item.Status)
	}
}

func TestNextPendingEmptyPool(t *testing.T) {
	st := testutil.NewMemStore()
	svc := NewQueueService(st)

	item, err := svc.NextPending(models.PoolFirstStage)
	if err != nil {
		t.Fatalf("Empty pool should not error: %v", err)
	}
	if item != nil {
		t.Errorf("Expected nil for an empty pool, got %+v", item)
	}
}

func TestNextPendingPoolsAreIndependent(t *testing.T) {
	st := testutil.NewMemStore()
	st.Seed(models.PoolSecondStage, testutil.PendingItem("s_0", "orig", "cand"))
	svc := NewQueueService(st)

	item, err := svc.NextPending(models.PoolFirstStage)
	if err != nil {
		t.Fatalf("Failed to query first stage: %v", err)
	}
	if item != nil {
		t.Error("First stage should not see second stage items")
	}
}

func TestSubmitDecisionApproveCopiesCandidateText(t *testing.T) {
	st := testutil.NewMemStore()
	st.Seed(models.PoolFirstStage, testutil.PendingItem("batch_0", "hello", "hallo there"))
	svc := NewQueueService(st)
	svc.now = fixedClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	if err := svc.SubmitDecision(models.PoolFirstStage, "batch_0", models.DecisionApprove, " Alice ", ""); err != nil {
		t.Fatalf("Failed to submit approval: %v", err)
	}

	item, ok := st.Get(models.PoolFirstStage, "batch_0")
	if !ok {
		t.Fatal("Item disappeared from the store")
	}
	if item.Status != models.StatusApprove {
		t.Errorf("Expected approve status, got %s", item.Status)
	}
	if item.Reviewer == nil || *item.Reviewer != "alice" {
		t.Errorf("Expected normalized reviewer alice, got %v", item.Reviewer)
	}
	if item.ReviewedText == nil || *item.ReviewedText != "hallo there" {
		t.Errorf("Approve should copy the candidate text, got %v", item.ReviewedText)
	}
	if item.ReviewedAt == nil || !item.ReviewedAt.Equal(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected the decision timestamp, got %v", item.ReviewedAt)
	}
}

func TestSubmitDecisionEditStoresCorrectedText(t *testing.T) {
	st := testutil.NewMemStore()
	st.Seed(models.PoolFirstStage, testutil.PendingItem("batch_0", "hello", "hallo there"))
	svc := NewQueueService(st)

	if err := svc.SubmitDecision(models.PoolFirstStage, "batch_0", models.DecisionEdit, "bob", "corrected text"); err != nil {
		t.Fatalf("Failed to submit edit: %v", err)
	}

	item, _ := st.Get(models.PoolFirstStage, "batch_0")
	if item.Status != models.StatusEdit {
		t.Errorf("Expected edit status, got %s", item.Status)
	}
	if item.ReviewedText == nil || *item.ReviewedText != "corrected text" {
		t.Errorf("Expected the corrected text, got %v", item.ReviewedText)
	}
}

func TestSubmitDecisionEditRequiresText(t *testing.T) {
	st := testutil.NewMemStore()
	st.Seed(models.PoolFirstStage, testutil.PendingItem("batch_0", "hello", "hallo there"))
	svc := NewQueueService(st)

	err := svc.SubmitDecision(models.PoolFirstStage, "batch_0", models.DecisionEdit, "bob", "")
	if !errors.Is(err, ErrEmptyEditedText) {
		t.Errorf("Expected ErrEmptyEditedText, got %v", err)
	}

	item, _ := st.Get(models.PoolFirstStage, "batch_0")
	if item.Status != models.StatusPending {
		t.Errorf("Failed edit must not change the item, got status %s", item.Status)
	}
}

func TestSubmitDecisionRejectClearsReviewedText(t *testing.T) {
	st := testutil.NewMemStore()
	st.Seed(models.PoolFirstStage, testutil.PendingItem("batch_0", "hello", "hallo there"))
	svc := NewQueueService(st)

	if err := svc.SubmitDecision(models.PoolFirstStage, "batch_0", models.DecisionReject, "carol", ""); err != nil {
		t.Fatalf("Failed to submit rejection: %v", err)
	}

	item, _ := st.Get(models.PoolFirstStage, "batch_0")
	if item.Status != models.StatusReject {
		t.Errorf("Expected reject status, got %s", item.Status)
	}
	if item.ReviewedText != nil {
		t.Errorf("Reject should store no reviewed text, got %v", *item.ReviewedText)
	}
	if item.Reviewer == nil || *item.Reviewer != "carol" {
		t.Error("Rejection must still be attributed to the reviewer")
	}

	// Rejected items stay addressable by id
	got, err := svc.ItemByID(models.PoolFirstStage, "batch_0")
	if err != nil || got == nil {
		t.Fatalf("Rejected item should remain queryable, got %v, %v", got, err)
	}
}

func TestSubmitDecisionEmptyReviewer(t *testing.T) {
	st := testutil.NewMemStore()
	st.Seed(models.PoolFirstStage, testutil.PendingItem("batch_0", "hello", "hallo there"))
	svc := NewQueueService(st)

	for _, reviewer := range []string{"", "   ", "\t"} {
		err := svc.SubmitDecision(models.PoolFirstStage, "batch_0", models.DecisionApprove, reviewer, "")
		if !errors.Is(err, ErrEmptyReviewer) {
			t.Errorf("Reviewer %q: expected ErrEmptyReviewer, got %v", reviewer, err)
		}
	}
}

func TestSubmitDecisionUnknownItem(t *testing.T) {
	st := testutil.NewMemStore()
	svc := NewQueueService(st)

	err := svc.SubmitDecision(models.PoolFirstStage, "missing", models.DecisionApprove, "alice", "")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

// Two sessions may be handed the same pending item. The store has no
// optimistic lock, so the later submission silently overwrites the
// earlier one.
func TestSubmitDecisionLastWriteWins(t *testing.T) {
	st := testutil.NewMemStore()
	st.Seed(models.PoolFirstStage, testutil.PendingItem("batch_0", "hello", "hallo there"))
	svc := NewQueueService(st)

	first, err := svc.NextPending(models.PoolFirstStage)
	if err != nil || first == nil {
		t.Fatalf("Failed to fetch for session A: %v", err)
	}
	second, err := svc.NextPending(models.PoolFirstStage)
	if err != nil || second == nil {
		t.Fatalf("Failed to fetch for session B: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("Both sessions should see the same item, got %s and %s", first.ID, second.ID)
	}

	if err := svc.SubmitDecision(models.PoolFirstStage, first.ID, models.DecisionApprove, "alice", ""); err != nil {
		t.Fatalf("Session A decision failed: %v", err)
	}
	if err := svc.SubmitDecision(models.PoolFirstStage, second.ID, models.DecisionReject, "bob", ""); err != nil {
		t.Fatalf("Session B decision failed: %v", err)
	}

	item, _ := st.Get(models.PoolFirstStage, first.ID)
	if item.Status != models.StatusReject {
		t.Errorf("Later decision should win, got status %s", item.Status)
	}
	if item.Reviewer == nil || *item.Reviewer != "bob" {
		t.Errorf("Later reviewer should win, got %v", item.Reviewer)
	}
}

func TestItemByID(t *testing.T) {
	st := testutil.NewMemStore()
	st.Seed(models.PoolFirstStage, testutil.PendingItem("batch_0", "hello", "hallo there"))
	svc := NewQueueService(st)

	item, err := svc.ItemByID(models.PoolFirstStage, "batch_0")
	if err != nil {
		t.Fatalf("Failed to get item: %v", err)
	}
	if item == nil || item.ID != "batch_0" {
		t.Errorf("Expected batch_0, got %+v", item)
	}

	item, err = svc.ItemByID(models.PoolFirstStage, "missing")
	if err != nil {
		t.Fatalf("Missing item should not error: %v", err)
	}
	if item != nil {
		t.Errorf("Expected nil for a missing item, got %+v", item)
	}
}
