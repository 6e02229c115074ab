package service

import (
	"errors"
	"testing"
	"time"

	"codeswitch-review/internal/models"
	"codeswitch-review/internal/store"
	"codeswitch-review/internal/testutil"
)

func TestHistoryNewestFirst(t *testing.T) {
	st := testutil.NewMemStore()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	st.Seed(models.PoolFirstStage,
		testutil.DecidedItem("h_0", "alice", models.StatusApprove, "oldest", base),
		testutil.DecidedItem("h_1", "alice", models.StatusEdit, "middle", base.Add(time.Hour)),
		testutil.DecidedItem("h_2", "alice", models.StatusApprove, "newest", base.Add(2*time.Hour)),
	)
	svc := NewHistoryService(st)

	items, err := svc.History(models.PoolFirstStage, "alice", 0)
	if err != nil {
		t.Fatalf("Failed to get history: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(items))
	}
	for i, want := range []string{"h_2", "h_1", "h_0"} {
		if items[i].ID != want {
			t.Errorf("Position %d: expected %s, got %s", i, want, items[i].ID)
		}
	}
}

func TestHistoryLimit(t *testing.T) {
	st := testutil.NewMemStore()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	st.Seed(models.PoolFirstStage,
		testutil.DecidedItem("h_0", "alice", models.StatusApprove, "a", base),
		testutil.DecidedItem("h_1", "alice", models.StatusApprove, "b", base.Add(time.Hour)),
		testutil.DecidedItem("h_2", "alice", models.StatusApprove, "c", base.Add(2*time.Hour)),
	)
	svc := NewHistoryService(st)

	items, err := svc.History(models.PoolFirstStage, "alice", 2)
	if err != nil {
		t.Fatalf("Failed to get history: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(items))
	}
	if items[0].ID != "h_2" || items[1].ID != "h_1" {
		t.Errorf("Limit should keep the newest entries, got %s, %s", items[0].ID, items[1].ID)
	}
}

func TestHistoryExcludesPulledItems(t *testing.T) {
	st := testutil.NewMemStore()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	st.Seed(models.PoolFirstStage,
		testutil.DecidedItem("h_0", "alice", models.StatusApprove, "kept", base),
		testutil.PulledItem("h_1", "alice", base.Add(time.Hour)),
	)
	svc := NewHistoryService(st)

	items, err := svc.History(models.PoolFirstStage, "alice", 0)
	if err != nil {
		t.Fatalf("Failed to get history: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(items))
	}
	if items[0].ID != "h_0" {
		t.Errorf("Pulled item should be excluded, got %s", items[0].ID)
	}
}

func TestHistoryOnlyOwnDecisions(t *testing.T) {
	st := testutil.NewMemStore()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	st.Seed(models.PoolFirstStage,
		testutil.DecidedItem("h_0", "alice", models.StatusApprove, "hers", base),
		testutil.DecidedItem("h_1", "bob", models.StatusApprove, "his", base),
	)
	svc := NewHistoryService(st)

	items, err := svc.History(models.PoolFirstStage, "alice", 0)
	if err != nil {
		t.Fatalf("Failed to get history: %v", err)
	}
	if len(items) != 1 || items[0].ID != "h_0" {
		t.Errorf("History must be scoped to the reviewer, got %+v", items)
	}
}

func TestReviseEntryForcesEditStatus(t *testing.T) {
	st := testutil.NewMemStore()
	decidedAt := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	st.Seed(models.PoolFirstStage,
		testutil.DecidedItem("h_0", "alice", models.StatusApprove, "first pass", decidedAt))
	svc := NewHistoryService(st)
	svc.now = fixedClock(time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC))

	if err := svc.ReviseEntry(models.PoolFirstStage, "h_0", "second thoughts"); err != nil {
		t.Fatalf("Failed to revise entry: %v", err)
	}

	item, _ := st.Get(models.PoolFirstStage, "h_0")
	if item.Status != models.StatusEdit {
		t.Errorf("Revision should force edit status, got %s", item.Status)
	}
	if item.ReviewedText == nil || *item.ReviewedText != "second thoughts" {
		t.Errorf("Expected the revised text, got %v", item.ReviewedText)
	}
	if item.ReviewedAt == nil || !item.ReviewedAt.After(decidedAt) {
		t.Errorf("Revision should refresh the timestamp, got %v", item.ReviewedAt)
	}
}

func TestReviseEntryRequiresText(t *testing.T) {
	st := testutil.NewMemStore()
	st.Seed(models.PoolFirstStage,
		testutil.DecidedItem("h_0", "alice", models.StatusApprove, "text", time.Now()))
	svc := NewHistoryService(st)

	err := svc.ReviseEntry(models.PoolFirstStage, "h_0", "")
	if !errors.Is(err, ErrEmptyEditedText) {
		t.Errorf("Expected ErrEmptyEditedText, got %v", err)
	}
}

// A revision against a pending item must not go through: it would
// produce a decided item with no reviewer attached.
func TestReviseEntryRejectsPendingItem(t *testing.T) {
	st := testutil.NewMemStore()
	st.Seed(models.PoolFirstStage, testutil.PendingItem("h_0", "orig", "cand"))
	svc := NewHistoryService(st)

	err := svc.ReviseEntry(models.PoolFirstStage, "h_0", "text")
	if !errors.Is(err, ErrNotDecided) {
		t.Fatalf("Expected ErrNotDecided, got %v", err)
	}

	item, _ := st.Get(models.PoolFirstStage, "h_0")
	if item.Status != models.StatusPending {
		t.Errorf("Item should stay pending, got %s", item.Status)
	}
	if item.Reviewer != nil {
		t.Errorf("Item should stay unattributed, got reviewer %v", *item.Reviewer)
	}
	if item.ReviewedText != nil || item.ReviewedAt != nil {
		t.Errorf("Item should carry no review data, got text=%v at=%v", item.ReviewedText, item.ReviewedAt)
	}
}

func TestReviseEntryUnknownItem(t *testing.T) {
	st := testutil.NewMemStore()
	svc := NewHistoryService(st)

	err := svc.ReviseEntry(models.PoolFirstStage, "missing", "text")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
