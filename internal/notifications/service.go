package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"spool/internal/config"
)

const userAgent = "Spool/0.1.0"

// Service defines the notification surface exposed to the pipeline.
type Service interface {
	RunStarted(ctx context.Context, kind string, total int) error
	RunCompleted(ctx context.Context, processed, skipped, failed int, duration time.Duration) error
	RunFailed(ctx context.Context, err error, contextLabel string) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) RunStarted(ctx context.Context, kind string, total int) error {
	kind = strings.TrimSpace(kind)
	if kind == "" {
		kind = "unknown"
	}
	data := payload{
		title:   "Spool - Run Started",
		message: fmt.Sprintf("Started %s run with %d items", kind, total),
		tags:    []string{"spool", "run", "started"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) RunCompleted(ctx context.Context, processed, skipped, failed int, duration time.Duration) error {
	duration = duration.Round(time.Second)
	if duration < 0 {
		duration = 0
	}
	durationText := duration.String()
	if duration == 0 {
		durationText = "0s"
	}

	var title, message string
	if failed == 0 {
		title = "Spool - Run Complete"
		message = fmt.Sprintf("✅ Run complete: %d processed, %d skipped in %s", processed, skipped, durationText)
	} else {
		title = "Spool - Run Complete (with errors)"
		message = fmt.Sprintf("Run complete: %d processed, %d skipped, %d failed in %s", processed, skipped, failed, durationText)
	}

	data := payload{
		title:   title,
		message: message,
		tags:    []string{"spool", "run", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) RunFailed(ctx context.Context, err error, contextLabel string) error {
	var builder strings.Builder
	builder.WriteString("❌ Run failed")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" during ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Spool - Run Failed",
		message:  builder.String(),
		tags:     []string{"spool", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) RunStarted(context.Context, string, int) error { return nil }
func (noopService) RunCompleted(context.Context, int, int, int, time.Duration) error {
	return nil
}
func (noopService) RunFailed(context.Context, error, string) error { return nil }
