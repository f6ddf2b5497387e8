package ytdlp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// nameTemplate is the yt-dlp output template every name and download uses.
// Runs must derive the same name for the same item, so the template never
// varies.
const nameTemplate = "%(title)s [%(id)s].%(ext)s"

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, onStdout, onStderr func(string)) error
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps yt-dlp CLI interactions.
type Client struct {
	binary          string
	resolveTimeout  time.Duration
	downloadTimeout time.Duration
	exec            Executor
}

// Result describes one download.
type Result struct {
	Path      string
	FromCache bool
}

// New constructs a yt-dlp client.
func New(binary string, resolveTimeoutSeconds, downloadTimeoutSeconds int, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("yt-dlp binary required")
	}
	client := &Client{
		binary:          binary,
		resolveTimeout:  time.Duration(resolveTimeoutSeconds) * time.Second,
		downloadTimeout: time.Duration(downloadTimeoutSeconds) * time.Second,
		exec:            commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// ResolveName asks yt-dlp for the output filename an item would download to,
// without downloading. The returned name is the item's derived key.
func (c *Client) ResolveName(ctx context.Context, ref string) (string, error) {
	if strings.TrimSpace(ref) == "" {
		return "", errors.New("item reference required")
	}

	runCtx := ctx
	if c.resolveTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.resolveTimeout)
		defer cancel()
	}

	args := []string{"--get-filename", "-o", nameTemplate, "--no-playlist", ref}

	var name string
	var stderr tail
	err := c.exec.Run(runCtx, c.binary, args, func(line string) {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			name = trimmed
		}
	}, stderr.add)
	if err != nil {
		return "", fmt.Errorf("yt-dlp resolve name: %w%s", err, stderr.suffix())
	}

	name = sanitizeFileName(name)
	if name == "" {
		return "", fmt.Errorf("yt-dlp returned no filename for %s", ref)
	}
	return name, nil
}

// Download fetches the item into destDir under the resolved name. A file
// already present at that path is reused without invoking yt-dlp.
func (c *Client) Download(ctx context.Context, ref, destDir, name string) (Result, error) {
	if destDir == "" {
		return Result{}, errors.New("destination directory required")
	}
	if name == "" {
		return Result{}, errors.New("resolved name required")
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create media directory: %w", err)
	}

	destPath := filepath.Join(destDir, name)
	if info, err := os.Stat(destPath); err == nil && info.Size() > 0 {
		return Result{Path: destPath, FromCache: true}, nil
	}

	runCtx := ctx
	if c.downloadTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.downloadTimeout)
		defer cancel()
	}

	args := []string{"--no-playlist", "--no-progress", "-o", destPath, ref}

	var stderr tail
	if err := c.exec.Run(runCtx, c.binary, args, nil, stderr.add); err != nil {
		return Result{}, fmt.Errorf("yt-dlp download: %w%s", err, stderr.suffix())
	}

	if _, err := os.Stat(destPath); errors.Is(err, os.ErrNotExist) {
		return Result{}, fmt.Errorf("yt-dlp produced no output file at %s", destPath)
	}
	return Result{Path: destPath}, nil
}

// tail keeps the last few diagnostic lines a tool printed, for error detail.
type tail struct {
	lines []string
}

const tailLines = 5

func (t *tail) add(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	t.lines = append(t.lines, line)
	if len(t.lines) > tailLines {
		t.lines = t.lines[len(t.lines)-tailLines:]
	}
}

func (t *tail) suffix() string {
	if len(t.lines) == 0 {
		return ""
	}
	return ": " + strings.Join(t.lines, "; ")
}

func sanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	replacer := strings.NewReplacer("/", "-", "\\", "-", "\x00", "")
	return strings.TrimSpace(replacer.Replace(name))
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string, onStdout, onStderr func(string)) error {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start command: %w", err)
	}

	var wg sync.WaitGroup
	var scanErr error
	var once sync.Once

	scan := func(r io.Reader, forward func(string)) {
		defer wg.Done()
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			if forward != nil {
				forward(scanner.Text())
			}
		}
		if err := scanner.Err(); err != nil {
			once.Do(func() {
				scanErr = err
			})
		}
	}

	wg.Add(2)
	go scan(stdout, onStdout)
	go scan(stderr, onStderr)

	wg.Wait()
	if scanErr != nil {
		_ = cmd.Process.Kill()
		return fmt.Errorf("scan output: %w", scanErr)
	}

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("wait command: %w", err)
	}
	return nil
}
