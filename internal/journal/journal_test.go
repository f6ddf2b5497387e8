package journal_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"spool/internal/journal"
)

func openJournal(t *testing.T) *journal.Journal {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journal.db")
	j, err := journal.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestRunLifecycle(t *testing.T) {
	j := openJournal(t)
	ctx := context.Background()
	started := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	finished := started.Add(90 * time.Second)

	err := j.BeginRun(ctx, journal.Run{
		ID:        "run-1",
		Kind:      "segments",
		Model:     "gemini-2.5-flash",
		Worklist:  "/tmp/worklist.txt",
		Total:     3,
		StartedAt: started,
	})
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}

	err = j.RecordOutcome(ctx, journal.Outcome{
		RunID:      "run-1",
		ItemRef:    "https://example.com/a",
		ItemKey:    "a [x1].mp4",
		Status:     "persisted",
		Rows:       12,
		Gated:      1500 * time.Millisecond,
		FinishedAt: started.Add(30 * time.Second),
	})
	if err != nil {
		t.Fatalf("RecordOutcome: %v", err)
	}
	err = j.RecordOutcome(ctx, journal.Outcome{
		RunID:       "run-1",
		ItemRef:     "https://example.com/b",
		Status:      "failed",
		FailureKind: "parse-error",
		Detail:      "cannot reconcile 12 fields into 9",
		FinishedAt:  started.Add(60 * time.Second),
	})
	if err != nil {
		t.Fatalf("RecordOutcome failure: %v", err)
	}

	err = j.FinishRun(ctx, journal.Run{
		ID:         "run-1",
		Status:     journal.RunCompleted,
		Processed:  1,
		Skipped:    1,
		Failed:     1,
		FinishedAt: finished,
	})
	if err != nil {
		t.Fatalf("FinishRun: %v", err)
	}

	run, err := j.Run(ctx, "run-1")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if run.Status != journal.RunCompleted {
		t.Fatalf("status = %q", run.Status)
	}
	if run.Processed != 1 || run.Skipped != 1 || run.Failed != 1 || run.Total != 3 {
		t.Fatalf("counts = %+v", run)
	}
	if !run.StartedAt.Equal(started) || !run.FinishedAt.Equal(finished) {
		t.Fatalf("timestamps = %v / %v", run.StartedAt, run.FinishedAt)
	}

	outcomes, err := j.Outcomes(ctx, "run-1")
	if err != nil {
		t.Fatalf("Outcomes: %v", err)
	}
	if len(outcomes) != 2 {
		t.Fatalf("outcomes = %d, want 2", len(outcomes))
	}
	if outcomes[0].ItemKey != "a [x1].mp4" || outcomes[0].Rows != 12 {
		t.Fatalf("first outcome = %+v", outcomes[0])
	}
	if outcomes[0].Gated != 1500*time.Millisecond {
		t.Fatalf("gated = %v", outcomes[0].Gated)
	}
	if outcomes[0].Failed() {
		t.Fatal("persisted outcome reported as failed")
	}

	failures, err := j.Failures(ctx, "run-1")
	if err != nil {
		t.Fatalf("Failures: %v", err)
	}
	if len(failures) != 1 || failures[0].FailureKind != "parse-error" {
		t.Fatalf("failures = %+v", failures)
	}

	latest, err := j.LatestRunID(ctx)
	if err != nil {
		t.Fatalf("LatestRunID: %v", err)
	}
	if latest != "run-1" {
		t.Fatalf("latest = %q", latest)
	}
}

func TestRecentRunsNewestFirst(t *testing.T) {
	j := openJournal(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"run-a", "run-b", "run-c"} {
		err := j.BeginRun(ctx, journal.Run{
			ID:        id,
			Kind:      "script",
			Model:     "gemini-2.5-flash",
			Worklist:  "w.txt",
			StartedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("BeginRun %s: %v", id, err)
		}
	}

	runs, err := j.RecentRuns(ctx, 2)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "run-c" || runs[1].ID != "run-b" {
		t.Fatalf("runs = %+v", runs)
	}

	latest, err := j.LatestRunID(ctx)
	if err != nil {
		t.Fatalf("LatestRunID: %v", err)
	}
	if latest != "run-c" {
		t.Fatalf("latest = %q", latest)
	}
}

func TestRunNotFound(t *testing.T) {
	j := openJournal(t)
	if _, err := j.Run(context.Background(), "missing"); !errors.Is(err, journal.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLatestRunIDEmptyJournal(t *testing.T) {
	j := openJournal(t)
	latest, err := j.LatestRunID(context.Background())
	if err != nil {
		t.Fatalf("LatestRunID: %v", err)
	}
	if latest != "" {
		t.Fatalf("latest = %q, want empty", latest)
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	j, err := journal.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := j.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close raw db: %v", err)
	}

	if _, err := journal.Open(path); !errors.Is(err, journal.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}
