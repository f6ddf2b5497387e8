package journal

import (
	"context"
	"errors"
	"fmt"
)

// BeginRun inserts a run row in the running state.
func (j *Journal) BeginRun(ctx context.Context, run Run) error {
	if run.ID == "" {
		return errors.New("run id required")
	}
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO runs (id, kind, model, worklist, status, total, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Kind, run.Model, run.Worklist, RunRunning, run.Total, formatTime(run.StartedAt),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// FinishRun stamps the run with its final counts and status.
func (j *Journal) FinishRun(ctx context.Context, run Run) error {
	res, err := j.db.ExecContext(ctx, `
		UPDATE runs
		SET status = ?, processed = ?, skipped = ?, failed = ?, finished_at = ?
		WHERE id = ?`,
		run.Status, run.Processed, run.Skipped, run.Failed, formatTime(run.FinishedAt), run.ID,
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("run %s not found", run.ID)
	}
	return nil
}

// RecordOutcome appends one item outcome to the run's history.
func (j *Journal) RecordOutcome(ctx context.Context, outcome Outcome) error {
	if outcome.RunID == "" {
		return errors.New("run id required")
	}
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO outcomes (run_id, item_ref, item_key, status, failure_kind, detail, rows_written, gated_ms, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		outcome.RunID,
		outcome.ItemRef,
		outcome.ItemKey,
		outcome.Status,
		outcome.FailureKind,
		outcome.Detail,
		outcome.Rows,
		outcome.Gated.Milliseconds(),
		formatTime(outcome.FinishedAt),
	)
	if err != nil {
		return fmt.Errorf("insert outcome: %w", err)
	}
	return nil
}
