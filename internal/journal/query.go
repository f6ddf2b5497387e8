package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound indicates the requested run does not exist.
var ErrNotFound = errors.New("run not found")

const runColumns = "id, kind, model, worklist, status, total, processed, skipped, failed, started_at, finished_at"

// RecentRuns returns up to limit runs, newest first.
func (j *Journal) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := j.db.QueryContext(ctx,
		"SELECT "+runColumns+" FROM runs ORDER BY started_at DESC, id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Run returns one run by id.
func (j *Journal) Run(ctx context.Context, id string) (Run, error) {
	row := j.db.QueryRowContext(ctx,
		"SELECT "+runColumns+" FROM runs WHERE id = ?", id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return run, err
}

// LatestRunID returns the id of the most recently started run, or empty when
// the journal holds none.
func (j *Journal) LatestRunID(ctx context.Context) (string, error) {
	var id string
	err := j.db.QueryRowContext(ctx,
		"SELECT id FROM runs ORDER BY started_at DESC, id DESC LIMIT 1").Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query latest run: %w", err)
	}
	return id, nil
}

// Outcomes returns every item outcome of a run in recorded order.
func (j *Journal) Outcomes(ctx context.Context, runID string) ([]Outcome, error) {
	return j.queryOutcomes(ctx,
		"SELECT run_id, item_ref, item_key, status, failure_kind, detail, rows_written, gated_ms, finished_at FROM outcomes WHERE run_id = ? ORDER BY id", runID)
}

// Failures returns only the outcomes that carry a failure kind.
func (j *Journal) Failures(ctx context.Context, runID string) ([]Outcome, error) {
	return j.queryOutcomes(ctx,
		"SELECT run_id, item_ref, item_key, status, failure_kind, detail, rows_written, gated_ms, finished_at FROM outcomes WHERE run_id = ? AND failure_kind != '' ORDER BY id", runID)
}

func (j *Journal) queryOutcomes(ctx context.Context, query, runID string) ([]Outcome, error) {
	rows, err := j.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []Outcome
	for rows.Next() {
		var (
			o       Outcome
			gatedMS int64
			at      string
		)
		if err := rows.Scan(&o.RunID, &o.ItemRef, &o.ItemKey, &o.Status, &o.FailureKind, &o.Detail, &o.Rows, &gatedMS, &at); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		o.Gated = time.Duration(gatedMS) * time.Millisecond
		o.FinishedAt = parseTime(at)
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run      Run
		started  string
		finished string
	)
	err := row.Scan(
		&run.ID, &run.Kind, &run.Model, &run.Worklist, &run.Status,
		&run.Total, &run.Processed, &run.Skipped, &run.Failed,
		&started, &finished,
	)
	if err != nil {
		return Run{}, err
	}
	run.StartedAt = parseTime(started)
	run.FinishedAt = parseTime(finished)
	return run, nil
}
