package service

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"codeswitch-review/internal/models"
	"codeswitch-review/internal/testutil"
)

func TestParseCSV(t *testing.T) {
	svc := NewIngestService(testutil.NewMemStore())

	rows, err := svc.ParseCSV(strings.NewReader("first text\nsecond text\nthird text\n"))
	if err != nil {
		t.Fatalf("Failed to parse CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}
	if rows[1][0] != "second text" {
		t.Errorf("Expected second text, got %q", rows[1][0])
	}
}

func TestValidateEmptyTable(t *testing.T) {
	svc := NewIngestService(testutil.NewMemStore())

	errs := svc.Validate(nil)
	if len(errs) != 1 {
		t.Fatalf("Expected 1 error, got %d", len(errs))
	}
	if errs[0].Row != -1 {
		t.Errorf("Table-level error should have row -1, got %d", errs[0].Row)
	}
}

func TestValidateReportsEachEmptyCell(t *testing.T) {
	svc := NewIngestService(testutil.NewMemStore())

	rows := [][]string{
		{"first text"},
		{""},
		{"third text"},
	}
	errs := svc.Validate(rows)
	if len(errs) != 1 {
		t.Fatalf("Expected exactly 1 error, got %d: %v", len(errs), errs)
	}
	if errs[0].Row != 1 || errs[0].Column != 0 {
		t.Errorf("Expected error at row 1 column 0, got row %d column %d", errs[0].Row, errs[0].Column)
	}
}

func TestValidateCleanTable(t *testing.T) {
	svc := NewIngestService(testutil.NewMemStore())

	errs := svc.Validate([][]string{{"a"}, {"b"}})
	if len(errs) != 0 {
		t.Errorf("Expected no errors, got %v", errs)
	}
}

func TestBuildItems(t *testing.T) {
	svc := NewIngestService(testutil.NewMemStore())

	rows := [][]string{{"first text"}, {"second text"}}
	items := svc.BuildItems(rows, "generator-v2", "banking", "batch7")

	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
	if items[0].ID != "batch7_0" || items[1].ID != "batch7_1" {
		t.Errorf("Unexpected ids: %s, %s", items[0].ID, items[1].ID)
	}
	if items[0].CandidateText != "first text" {
		t.Errorf("Expected candidate from the first column, got %q", items[0].CandidateText)
	}
	if items[0].OriginalText != OriginalTextSentinel {
		t.Errorf("Expected the original text sentinel, got %q", items[0].OriginalText)
	}
	if items[0].Status != models.StatusPending {
		t.Errorf("New items must be pending, got %s", items[0].Status)
	}
	if items[0].CreatorName != "generator-v2" || items[0].Domain != "banking" {
		t.Errorf("Creator and domain must be recorded, got %s, %s", items[0].CreatorName, items[0].Domain)
	}
}

func TestSnapshotFormat(t *testing.T) {
	svc := NewIngestService(testutil.NewMemStore())
	items := svc.BuildItems([][]string{{"first text"}}, "gen", "news", "b")

	var buf bytes.Buffer
	if err := svc.Snapshot(&buf, items); err != nil {
		t.Fatalf("Failed to write snapshot: %v", err)
	}

	got := strings.TrimSpace(buf.String())
	want := "first text,b_0,unknown,gen,news,pending,false"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestRunBlocksOnValidationErrors(t *testing.T) {
	st := testutil.NewMemStore()
	svc := NewIngestService(st)

	rows := [][]string{{"ok"}, {""}, {"also ok"}}
	report, valErrs, err := svc.Run(models.PoolFirstStage, rows, "gen", "news", "b", nil, nil)
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("Expected ErrValidationFailed, got %v", err)
	}
	if report != nil {
		t.Errorf("No report should be produced, got %+v", report)
	}
	if len(valErrs) != 1 {
		t.Errorf("Expected 1 validation error, got %d", len(valErrs))
	}

	// Nothing may reach the store
	items, _ := st.QueryAll(models.PoolFirstStage)
	if len(items) != 0 {
		t.Errorf("Validation failure must block every insert, found %d items", len(items))
	}
}

func TestRunCommitsAllRows(t *testing.T) {
	st := testutil.NewMemStore()
	svc := NewIngestService(st)

	var snapshot bytes.Buffer
	var progressCalls int
	progress := func(done, total int) {
		progressCalls++
		if total != 3 {
			t.Errorf("Expected total 3, got %d", total)
		}
		if done != progressCalls {
			t.Errorf("Expected done %d, got %d", progressCalls, done)
		}
	}

	rows := [][]string{{"a"}, {"b"}, {"c"}}
	report, valErrs, err := svc.Run(models.PoolFirstStage, rows, "gen", "news", "b", &snapshot, progress)
	if err != nil {
		t.Fatalf("Failed to run ingestion: %v", err)
	}
	if len(valErrs) != 0 {
		t.Errorf("Expected no validation errors, got %v", valErrs)
	}
	if report.Inserted != 3 || report.Total != 3 {
		t.Errorf("Expected 3 of 3 inserted, got %d of %d", report.Inserted, report.Total)
	}
	if report.IDPrefix != "b" {
		t.Errorf("Expected id prefix b, got %q", report.IDPrefix)
	}
	if report.RunID == "" {
		t.Error("Run id should be set")
	}
	if progressCalls != 3 {
		t.Errorf("Expected 3 progress calls, got %d", progressCalls)
	}
	if snapshot.Len() == 0 {
		t.Error("Snapshot should have been written")
	}

	items, _ := st.QueryAll(models.PoolFirstStage)
	if len(items) != 3 {
		t.Errorf("Expected 3 items in the store, got %d", len(items))
	}
}

// A commit is not atomic. A failure partway leaves earlier inserts in
// place and the report says how far it got.
func TestCommitPartialFailure(t *testing.T) {
	st := testutil.NewMemStore()
	st.FailInsertAt = 2
	svc := NewIngestService(st)

	items := svc.BuildItems([][]string{{"a"}, {"b"}, {"c"}}, "gen", "news", "b")
	report, err := svc.Commit(models.PoolFirstStage, items, nil)
	if err == nil {
		t.Fatal("Expected the commit to fail")
	}
	if report.Inserted != 1 {
		t.Errorf("Expected 1 inserted before the failure, got %d", report.Inserted)
	}

	stored, _ := st.QueryAll(models.PoolFirstStage)
	if len(stored) != 1 {
		t.Errorf("Expected 1 item left in the store, got %d", len(stored))
	}
}

// Re-running an ingestion with the same id prefix overwrites the earlier
// rows instead of duplicating them.
func TestRunIsIdempotentPerIDPrefix(t *testing.T) {
	st := testutil.NewMemStore()
	svc := NewIngestService(st)

	rows := [][]string{{"a"}, {"b"}}
	if _, _, err := svc.Run(models.PoolFirstStage, rows, "gen", "news", "b", nil, nil); err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	if _, _, err := svc.Run(models.PoolFirstStage, rows, "gen", "news", "b", nil, nil); err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	items, _ := st.QueryAll(models.PoolFirstStage)
	if len(items) != 2 {
		t.Errorf("Expected 2 items after the re-run, got %d", len(items))
	}
}
