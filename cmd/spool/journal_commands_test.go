package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"spool/internal/journal"
	"spool/internal/testsupport"
)

func seedJournalRun(t *testing.T, jrnl *journal.Journal, id string, started time.Time) {
	t.Helper()
	ctx := context.Background()

	run := journal.Run{
		ID:        id,
		Kind:      "segments",
		Model:     "gemini-2.5-flash",
		Worklist:  "worklist.txt",
		Status:    journal.RunRunning,
		Total:     2,
		StartedAt: started,
	}
	if err := jrnl.BeginRun(ctx, run); err != nil {
		t.Fatalf("begin run: %v", err)
	}
	if err := jrnl.RecordOutcome(ctx, journal.Outcome{
		RunID:      id,
		ItemRef:    "https://example.com/reel/1",
		ItemKey:    "First Reel [abc123].mp4",
		Status:     "persisted",
		Rows:       3,
		FinishedAt: started.Add(30 * time.Second),
	}); err != nil {
		t.Fatalf("record outcome: %v", err)
	}
	if err := jrnl.RecordOutcome(ctx, journal.Outcome{
		RunID:       id,
		ItemRef:     "https://example.com/reel/2",
		Status:      "failed",
		FailureKind: "fetch-error",
		Detail:      "network unreachable",
		FinishedAt:  started.Add(45 * time.Second),
	}); err != nil {
		t.Fatalf("record outcome: %v", err)
	}

	run.Status = journal.RunCompleted
	run.Processed = 1
	run.Failed = 1
	run.FinishedAt = started.Add(time.Minute)
	if err := jrnl.FinishRun(ctx, run); err != nil {
		t.Fatalf("finish run: %v", err)
	}
}

func TestRunsCommandListsRecentRuns(t *testing.T) {
	configPath, cfg := setupCLIConfig(t)
	jrnl := testsupport.MustOpenJournal(t, cfg)
	seedJournalRun(t, jrnl, "11111111-2222-3333-4444-555555555555", time.Now().UTC().Add(-time.Hour))

	out, _, err := runCLI(t, []string{"runs"}, configPath)
	if err != nil {
		t.Fatalf("runs command: %v", err)
	}
	requireContains(t, out, "11111111-2222-3333-4444-555555555555")
	requireContains(t, out, "segments")
	requireContains(t, out, "completed")
	requireContains(t, out, "1m0s")
}

func TestRunsCommandEmptyJournal(t *testing.T) {
	configPath, _ := setupCLIConfig(t)
	out, _, err := runCLI(t, []string{"runs"}, configPath)
	if err != nil {
		t.Fatalf("runs command: %v", err)
	}
	requireContains(t, out, "No runs recorded yet.")
}

func TestReportCommandShowsLatestFailures(t *testing.T) {
	configPath, cfg := setupCLIConfig(t)
	jrnl := testsupport.MustOpenJournal(t, cfg)
	seedJournalRun(t, jrnl, "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee", time.Now().UTC().Add(-2*time.Hour))
	seedJournalRun(t, jrnl, "99999999-8888-7777-6666-555555555555", time.Now().UTC().Add(-time.Hour))

	out, _, err := runCLI(t, []string{"report"}, configPath)
	if err != nil {
		t.Fatalf("report command: %v", err)
	}
	requireContains(t, out, "99999999-8888-7777-6666-555555555555")
	requireContains(t, out, "fetch-error")
	requireContains(t, out, "network unreachable")
	requireContains(t, out, "https://example.com/reel/2")
}

func TestReportCommandExplicitRun(t *testing.T) {
	configPath, cfg := setupCLIConfig(t)
	jrnl := testsupport.MustOpenJournal(t, cfg)
	seedJournalRun(t, jrnl, "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee", time.Now().UTC().Add(-2*time.Hour))
	seedJournalRun(t, jrnl, "99999999-8888-7777-6666-555555555555", time.Now().UTC().Add(-time.Hour))

	out, _, err := runCLI(t, []string{"report", "--run", "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"}, configPath)
	if err != nil {
		t.Fatalf("report command: %v", err)
	}
	requireContains(t, out, "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")
}

func TestReportCommandUnknownRun(t *testing.T) {
	configPath, _ := setupCLIConfig(t)
	_, _, err := runCLI(t, []string{"report", "--run", "missing"}, configPath)
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestReportCommandEmptyJournal(t *testing.T) {
	configPath, _ := setupCLIConfig(t)
	out, _, err := runCLI(t, []string{"report"}, configPath)
	if err != nil {
		t.Fatalf("report command: %v", err)
	}
	requireContains(t, out, "No runs recorded yet.")
}
