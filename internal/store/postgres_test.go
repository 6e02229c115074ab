package store_test

import (
	"errors"
	"testing"
	"time"

	"codeswitch-review/internal/models"
	"codeswitch-review/internal/store"
	"codeswitch-review/internal/testutil"
)

func TestPostgresStoreRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping container test in short mode")
	}

	tc := testutil.SetupTestContainers(t)
	defer tc.Cleanup(t)

	st := store.NewPostgresStore(tc.DB)
	pool := models.PoolFirstStage

	item := models.ReviewItem{
		ID:            "pg_0",
		OriginalText:  "hello",
		CandidateText: "hallo there",
		CreatorName:   "generator-v2",
		Domain:        "banking",
		Status:        models.StatusPending,
		CreatedAt:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := st.Insert(pool, item); err != nil {
		t.Fatalf("Failed to insert item: %v", err)
	}

	// FindOneByStatus sees the pending item
	found, err := st.FindOneByStatus(pool, models.StatusPending)
	if err != nil {
		t.Fatalf("Failed to find pending item: %v", err)
	}
	if found == nil || found.ID != "pg_0" {
		t.Fatalf("Expected pg_0, got %+v", found)
	}
	if found.Reviewer != nil || found.ReviewedText != nil || found.ReviewedAt != nil {
		t.Error("A pending item must not carry review fields")
	}

	// UpdateByID records a decision
	reviewedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	err = st.UpdateByID(pool, "pg_0", map[string]any{
		store.FieldStatus:       string(models.StatusApprove),
		store.FieldReviewer:     "alice",
		store.FieldReviewedText: "hallo there",
		store.FieldReviewedAt:   reviewedAt,
	})
	if err != nil {
		t.Fatalf("Failed to update item: %v", err)
	}

	// No pending item remains
	found, err = st.FindOneByStatus(pool, models.StatusPending)
	if err != nil {
		t.Fatalf("Failed to query pending items: %v", err)
	}
	if found != nil {
		t.Errorf("Expected no pending items, got %+v", found)
	}

	// QueryByReviewer returns the decided item
	items, err := st.QueryByReviewer(pool, "alice")
	if err != nil {
		t.Fatalf("Failed to query by reviewer: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Expected 1 item for alice, got %d", len(items))
	}
	got := items[0]
	if got.Status != models.StatusApprove {
		t.Errorf("Expected approve status, got %s", got.Status)
	}
	if got.ReviewedText == nil || *got.ReviewedText != "hallo there" {
		t.Errorf("Unexpected reviewed text: %v", got.ReviewedText)
	}
	if got.ReviewedAt == nil || !got.ReviewedAt.UTC().Equal(reviewedAt) {
		t.Errorf("Unexpected reviewed at: %v", got.ReviewedAt)
	}
}

func TestPostgresStoreUpdateUnknownID(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping container test in short mode")
	}

	tc := testutil.SetupTestContainers(t)
	defer tc.Cleanup(t)

	st := store.NewPostgresStore(tc.DB)

	err := st.UpdateByID(models.PoolFirstStage, "missing", map[string]any{
		store.FieldStatus: string(models.StatusApprove),
	})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestPostgresStoreInsertOverwrites(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping container test in short mode")
	}

	tc := testutil.SetupTestContainers(t)
	defer tc.Cleanup(t)

	st := store.NewPostgresStore(tc.DB)
	pool := models.PoolSecondStage

	item := models.ReviewItem{
		ID:            "pg_1",
		OriginalText:  "unknown",
		CandidateText: "first version",
		CreatorName:   "gen",
		Domain:        "news",
		Status:        models.StatusPending,
		CreatedAt:     time.Now().UTC(),
	}
	if err := st.Insert(pool, item); err != nil {
		t.Fatalf("Failed to insert item: %v", err)
	}

	item.CandidateText = "second version"
	if err := st.Insert(pool, item); err != nil {
		t.Fatalf("Failed to re-insert item: %v", err)
	}

	items, err := st.QueryAll(pool)
	if err != nil {
		t.Fatalf("Failed to query pool: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Expected 1 item after the overwrite, got %d", len(items))
	}
	if items[0].CandidateText != "second version" {
		t.Errorf("Expected the overwritten text, got %q", items[0].CandidateText)
	}
}

func TestPostgresStorePoolsAreSeparate(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping container test in short mode")
	}

	tc := testutil.SetupTestContainers(t)
	defer tc.Cleanup(t)

	st := store.NewPostgresStore(tc.DB)

	item := models.ReviewItem{
		ID:            "pg_2",
		OriginalText:  "unknown",
		CandidateText: "text",
		CreatorName:   "gen",
		Domain:        "news",
		Status:        models.StatusPending,
		CreatedAt:     time.Now().UTC(),
	}
	if err := st.Insert(models.PoolFirstStage, item); err != nil {
		t.Fatalf("Failed to insert item: %v", err)
	}

	items, err := st.QueryAll(models.PoolSecondStage)
	if err != nil {
		t.Fatalf("Failed to query second stage: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Second stage should be empty, got %d items", len(items))
	}
}
