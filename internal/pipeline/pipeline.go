package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"spool/internal/config"
	"spool/internal/journal"
	"spool/internal/logging"
	"spool/internal/notifications"
	"spool/internal/ratelimit"
	"spool/internal/records"
	"spool/internal/services"
	"spool/internal/services/gemini"
	"spool/internal/services/ytdlp"
	"spool/internal/worklist"
)

// MediaFetcher resolves work-list references to canonical filenames and
// downloads their media. *ytdlp.Client satisfies it.
type MediaFetcher interface {
	ResolveName(ctx context.Context, ref string) (string, error)
	Download(ctx context.Context, ref, destDir, name string) (ytdlp.Result, error)
}

// Generator covers the generation-service surface the pipeline needs.
// *gemini.Client satisfies it.
type Generator interface {
	Upload(ctx context.Context, path string) (gemini.Handle, error)
	Status(ctx context.Context, handle gemini.Handle) (gemini.State, error)
	Generate(ctx context.Context, handle gemini.Handle, prompt string) (string, error)
	GenerateText(ctx context.Context, prompt, body string) (string, error)
	Delete(ctx context.Context, handle gemini.Handle) error
}

// Dataset is the persistence surface the pipeline appends to. *dataset.Store
// satisfies it.
type Dataset interface {
	Contains(key string) bool
	Append(recs []records.Record) error
	Count() int
}

// Limiter gates generation-service work. *ratelimit.Limiter satisfies it.
type Limiter interface {
	Acquire(ctx context.Context) (time.Duration, error)
}

// Recorder persists run history. *journal.Journal satisfies it. A nil
// Recorder disables history without affecting the run.
type Recorder interface {
	BeginRun(ctx context.Context, run journal.Run) error
	RecordOutcome(ctx context.Context, outcome journal.Outcome) error
	FinishRun(ctx context.Context, run journal.Run) error
}

// Deps carries the pipeline's collaborators. Fetcher, Generator, and Dataset
// are required; the rest default to working no-op or config-derived values.
type Deps struct {
	Fetcher   MediaFetcher
	Generator Generator
	Dataset   Dataset
	Journal   Recorder
	Notifier  notifications.Service
	Limiter   Limiter
	Logger    *slog.Logger
}

// Option adjusts pipeline behavior in ways only tests care about.
type Option func(*Pipeline)

// WithClock substitutes the time source used for durations and the
// processing deadline.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// WithSleep substitutes the wait used between processing polls.
func WithSleep(sleep func(context.Context, time.Duration) error) Option {
	return func(p *Pipeline) {
		if sleep != nil {
			p.sleep = sleep
		}
	}
}

// Pipeline processes a work list sequentially and reports one outcome per
// item. It is single-use per Run call but holds no per-run state itself.
type Pipeline struct {
	cfg      *config.Config
	schema   records.Schema
	fetcher  MediaFetcher
	gen      Generator
	dataset  Dataset
	journal  Recorder
	notifier notifications.Service
	limiter  Limiter
	logger   *slog.Logger
	now      func() time.Time
	sleep    func(context.Context, time.Duration) error
}

// New constructs a pipeline for the given schema. Optional dependencies are
// filled from the configuration.
func New(cfg *config.Config, schema records.Schema, deps Deps, opts ...Option) (*Pipeline, error) {
	if cfg == nil {
		return nil, fmt.Errorf("pipeline: configuration is required")
	}
	if deps.Fetcher == nil {
		return nil, fmt.Errorf("pipeline: media fetcher is required")
	}
	if deps.Generator == nil {
		return nil, fmt.Errorf("pipeline: generator is required")
	}
	if deps.Dataset == nil {
		return nil, fmt.Errorf("pipeline: dataset is required")
	}
	if deps.Notifier == nil {
		deps.Notifier = notifications.NewService(cfg)
	}
	if deps.Limiter == nil {
		deps.Limiter = ratelimit.New(cfg.Rate.RequestsPerWindow, time.Duration(cfg.Rate.WindowSeconds)*time.Second)
	}
	if deps.Logger == nil {
		deps.Logger = logging.NewNop()
	}
	p := &Pipeline{
		cfg:      cfg,
		schema:   schema,
		fetcher:  deps.Fetcher,
		gen:      deps.Generator,
		dataset:  deps.Dataset,
		journal:  deps.Journal,
		notifier: deps.Notifier,
		limiter:  deps.Limiter,
		logger:   logging.NewComponentLogger(deps.Logger, "pipeline"),
		now:      time.Now,
		sleep:    sleepWithContext,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Run processes every item on the configured work list and returns the run
// summary. Cancellation stops the run after the in-flight item and marks the
// summary aborted; the returned error then wraps the context error. Journal
// and notification problems are logged and never fail the run.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	items, err := worklist.Load(p.cfg.Worklist.Path)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "pipeline", "load worklist", "failed to load work list", err)
	}

	runID := uuid.NewString()
	summary := &Summary{
		RunID:     runID,
		Kind:      p.schema.Name,
		Model:     p.cfg.Gemini.Model,
		Worklist:  p.cfg.Worklist.Path,
		StartedAt: p.now(),
		Total:     len(items),
	}
	logger := p.logger.With(logging.String(logging.FieldRunID, runID))

	p.beginJournal(ctx, logger, summary)
	if err := p.notifier.RunStarted(ctx, summary.Kind, summary.Total); err != nil {
		logger.Warn("failed to send run-started notification", logging.Error(err))
	}
	logger.Info("run started",
		logging.String("kind", summary.Kind),
		logging.String("worklist", summary.Worklist),
		logging.Int("total", summary.Total))

	for i, item := range items {
		if ctx.Err() != nil {
			summary.Aborted = true
			break
		}
		outcome := p.processItem(ctx, logger, item, i+1, summary.Total)
		summary.record(outcome)
		p.journalOutcome(ctx, logger, runID, outcome)
		if outcome.State == StateAborted {
			summary.Aborted = true
			break
		}
	}
	summary.FinishedAt = p.now()

	// Final bookkeeping must survive the cancellation that aborted the run.
	finishCtx := context.WithoutCancel(ctx)
	p.finishJournal(finishCtx, logger, summary)
	p.notifyFinished(finishCtx, logger, summary, context.Cause(ctx))

	logger.Info("run finished",
		logging.Int("processed", summary.Processed),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
		logging.Bool("aborted", summary.Aborted),
		logging.Duration("duration", summary.Duration()))

	if summary.Aborted {
		return summary, fmt.Errorf("run aborted: %w", context.Cause(ctx))
	}
	return summary, nil
}

func (p *Pipeline) beginJournal(ctx context.Context, logger *slog.Logger, summary *Summary) {
	if p.journal == nil {
		return
	}
	run := journal.Run{
		ID:        summary.RunID,
		Kind:      summary.Kind,
		Model:     summary.Model,
		Worklist:  summary.Worklist,
		Status:    journal.RunRunning,
		Total:     summary.Total,
		StartedAt: summary.StartedAt,
	}
	if err := p.journal.BeginRun(ctx, run); err != nil {
		logger.Warn("failed to journal run start", logging.Error(err))
	}
}

func (p *Pipeline) journalOutcome(ctx context.Context, logger *slog.Logger, runID string, outcome ItemOutcome) {
	if p.journal == nil {
		return
	}
	entry := journal.Outcome{
		RunID:       runID,
		ItemRef:     outcome.Ref,
		ItemKey:     outcome.Key,
		Status:      string(outcome.State),
		FailureKind: string(outcome.Failure),
		Detail:      outcome.Detail,
		Rows:        outcome.Rows,
		Gated:       outcome.Gated,
		FinishedAt:  p.now(),
	}
	if err := p.journal.RecordOutcome(context.WithoutCancel(ctx), entry); err != nil {
		logger.Warn("failed to journal item outcome", logging.Error(err))
	}
}

func (p *Pipeline) finishJournal(ctx context.Context, logger *slog.Logger, summary *Summary) {
	if p.journal == nil {
		return
	}
	status := journal.RunCompleted
	if summary.Aborted {
		status = journal.RunFailed
	}
	run := journal.Run{
		ID:         summary.RunID,
		Status:     status,
		Total:      summary.Total,
		Processed:  summary.Processed,
		Skipped:    summary.Skipped,
		Failed:     summary.Failed,
		FinishedAt: summary.FinishedAt,
	}
	if err := p.journal.FinishRun(ctx, run); err != nil {
		logger.Warn("failed to journal run finish", logging.Error(err))
	}
}

func (p *Pipeline) notifyFinished(ctx context.Context, logger *slog.Logger, summary *Summary, cause error) {
	var err error
	if summary.Aborted {
		err = p.notifier.RunFailed(ctx, cause, "run aborted")
	} else {
		err = p.notifier.RunCompleted(ctx, summary.Processed, summary.Skipped, summary.Failed, summary.Duration())
	}
	if err != nil {
		logger.Warn("failed to send run-finished notification", logging.Error(err))
	}
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
