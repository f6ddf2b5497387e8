package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"spool/internal/logging"
	"spool/internal/parse"
	"spool/internal/records"
	"spool/internal/services"
	"spool/internal/services/gemini"
	"spool/internal/worklist"
)

// processItem walks one work-list item through the lifecycle and always
// returns an outcome. Cancellation of the parent context turns whatever step
// was in flight into an aborted outcome rather than a classified failure.
func (p *Pipeline) processItem(parent context.Context, logger *slog.Logger, item worklist.Item, index, total int) ItemOutcome {
	started := p.now()
	ctx := services.WithItemRef(parent, item.Ref)
	ctx = services.WithRequestID(ctx, uuid.NewString())

	outcome := ItemOutcome{Ref: item.Ref, State: StatePending}
	fail := func(log *slog.Logger, kind FailureKind, err error) ItemOutcome {
		outcome.Elapsed = p.now().Sub(started)
		if parent.Err() != nil {
			outcome.State = StateAborted
			outcome.Failure = FailureNone
			outcome.Detail = parent.Err().Error()
			log.Warn("item aborted", logging.Error(parent.Err()))
			return outcome
		}
		outcome.State = StateFailed
		outcome.Failure = kind
		outcome.Detail = err.Error()
		log.Error("item failed",
			logging.String("failure_kind", string(kind)),
			logging.Error(err))
		return outcome
	}

	log := logging.WithContext(ctx, logger).With(logging.String("progress", fmt.Sprintf("%d/%d", index, total)))
	log.Info("processing item")

	key, err := p.fetcher.ResolveName(services.WithStage(ctx, "resolve"), item.Ref)
	if err != nil {
		return fail(log, FailureFetchMetadata, err)
	}
	outcome.Key = key
	outcome.State = StateKeyResolved
	ctx = services.WithItemKey(ctx, key)
	log = logging.WithContext(ctx, logger).With(logging.String("progress", fmt.Sprintf("%d/%d", index, total)))
	log.Info("item key resolved")

	if p.dataset.Contains(key) {
		outcome.State = StateSkipped
		outcome.Elapsed = p.now().Sub(started)
		log.Info("item already in dataset, skipping")
		return outcome
	}

	waited, err := p.limiter.Acquire(ctx)
	if err != nil {
		return fail(log, FailureGenerationFailed, err)
	}
	outcome.Gated = waited
	if waited > 0 {
		outcome.State = StateRateGated
		log.Info("item held by rate limit", logging.Duration("waited", waited))
	}

	media, err := p.fetcher.Download(services.WithStage(ctx, "fetch"), item.Ref, p.cfg.Paths.MediaDir, key)
	if err != nil {
		return fail(log, FailureFetch, err)
	}
	outcome.State = StateFetched
	log.Info("media ready",
		logging.String("path", media.Path),
		logging.Bool("from_cache", media.FromCache))

	outcome.State = StateGenerating
	text, kind, err := p.generate(services.WithStage(ctx, "generate"), log, key, media.Path)
	if err != nil {
		return fail(log, kind, err)
	}

	recs, parseErrs := p.parseOutput(text, key)
	if len(parseErrs) > 0 {
		outcome.State = StateParsedErrors
		err := fmt.Errorf("%d of %d rows unusable: %w", len(parseErrs), len(recs)+len(parseErrs), errors.Join(parseErrs...))
		return fail(log, FailureParse, err)
	}
	if len(recs) == 0 {
		return fail(log, FailureParse, errors.New("output contained no data rows"))
	}
	outcome.State = StateParsedOK
	outcome.Rows = len(recs)

	if err := p.dataset.Append(recs); err != nil {
		return fail(log, FailureStorage, err)
	}
	outcome.State = StatePersisted
	outcome.Elapsed = p.now().Sub(started)
	log.Info("item persisted",
		logging.Int("rows", outcome.Rows),
		logging.Duration("elapsed", outcome.Elapsed))
	return outcome
}

// generate uploads the media, waits for remote processing, and runs the
// schema's analysis. The remote file is deleted on every path out, including
// failures and cancellation.
func (p *Pipeline) generate(ctx context.Context, log *slog.Logger, key, mediaPath string) (string, FailureKind, error) {
	handle, err := p.gen.Upload(ctx, mediaPath)
	if err != nil {
		return "", classifyGeneration(err), fmt.Errorf("upload media: %w", err)
	}
	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
		defer cancel()
		if err := p.gen.Delete(cleanupCtx, handle); err != nil {
			log.Warn("failed to delete remote file", logging.Error(err))
		}
	}()

	if kind, err := p.awaitProcessing(ctx, handle); err != nil {
		return "", kind, err
	}

	if p.schema.Name == records.KindScript {
		transcript, kind, err := p.transcript(ctx, log, key, handle)
		if err != nil {
			return "", kind, err
		}
		text, err := p.gen.GenerateText(ctx, ScriptAnalysisPrompt, transcript)
		if err != nil {
			return "", classifyGeneration(err), fmt.Errorf("script analysis: %w", err)
		}
		return text, FailureNone, nil
	}

	text, err := p.gen.Generate(ctx, handle, SegmentAnalysisPrompt)
	if err != nil {
		return "", classifyGeneration(err), fmt.Errorf("segment analysis: %w", err)
	}
	return text, FailureNone, nil
}

// awaitProcessing polls the remote file until it is ready, its processing
// fails, or the configured processing timeout elapses.
func (p *Pipeline) awaitProcessing(ctx context.Context, handle gemini.Handle) (FailureKind, error) {
	interval := time.Duration(p.cfg.Gemini.PollInterval) * time.Second
	if interval <= 0 {
		interval = time.Second
	}
	timeout := time.Duration(p.cfg.Gemini.ProcessingTimeout) * time.Second
	deadline := p.now().Add(timeout)
	for {
		state, err := p.gen.Status(ctx, handle)
		if err != nil {
			return classifyGeneration(err), fmt.Errorf("poll remote processing: %w", err)
		}
		switch state {
		case gemini.StateReady:
			return FailureNone, nil
		case gemini.StateFailed:
			return FailureGenerationFailed, errors.New("remote processing failed")
		}
		if !p.now().Before(deadline) {
			return FailureGenerationTimeout, fmt.Errorf("remote processing timed out after %s", timeout)
		}
		if err := p.sleep(ctx, interval); err != nil {
			return FailureGenerationFailed, fmt.Errorf("poll remote processing: %w", err)
		}
	}
}

// transcript returns the cached transcript for key when one exists, and
// otherwise transcribes the uploaded media and caches the result. Cache
// write failures cost a log line, not the item.
func (p *Pipeline) transcript(ctx context.Context, log *slog.Logger, key string, handle gemini.Handle) (string, FailureKind, error) {
	path := p.transcriptPath(key)
	if data, err := os.ReadFile(path); err == nil && strings.TrimSpace(string(data)) != "" {
		log.Info("transcript cache hit", logging.String("path", path))
		return string(data), FailureNone, nil
	}
	text, err := p.gen.Generate(ctx, handle, TranscribePrompt)
	if err != nil {
		return "", classifyGeneration(err), fmt.Errorf("transcribe media: %w", err)
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		log.Warn("failed to cache transcript", logging.Error(err))
	} else {
		log.Info("transcript cached", logging.String("path", path))
	}
	return text, FailureNone, nil
}

func (p *Pipeline) transcriptPath(key string) string {
	stem := strings.TrimSuffix(key, filepath.Ext(key))
	return filepath.Join(p.cfg.Paths.TranscriptDir, stem+"_transcript.txt")
}

// parseOutput repairs and validates the model's quasi-CSV response. Blank
// lines, code fences, and echoed header rows are ignored; every remaining
// line must materialize cleanly or the whole response is rejected by the
// caller. Line numbers in errors refer to the raw response.
func (p *Pipeline) parseOutput(text, key string) ([]records.Record, []error) {
	shape := p.schema.Line()
	var recs []records.Record
	var errs []error
	for i, raw := range strings.Split(parse.Normalize(text), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "```") {
			continue
		}
		fields := parse.Tokenize(line)
		if len(fields) == 0 || p.schema.IsHeaderRow(fields) {
			continue
		}
		reconciled, err := parse.Reconcile(fields, shape)
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", i+1, err))
			continue
		}
		rec, err := p.schema.Materialize(key, reconciled)
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", i+1, err))
			continue
		}
		recs = append(recs, rec)
	}
	return recs, errs
}

// classifyGeneration maps a generation-service error to a failure kind.
// Deadline errors are reported as timeouts so the report separates slow
// remote processing from genuine service failures.
func classifyGeneration(err error) FailureKind {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, services.ErrTimeout) {
		return FailureGenerationTimeout
	}
	return FailureGenerationFailed
}
