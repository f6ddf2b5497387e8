package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultModel = "gemini-2.5-flash"

// State describes a remote file's processing lifecycle.
type State int

const (
	StateProcessing State = iota
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "processing"
	}
}

// Handle identifies an uploaded remote file.
type Handle struct {
	Name string
	URI  string
	MIME string
}

// Config captures the runtime settings for the generation service.
type Config struct {
	APIKey                string
	Model                 string
	RequestTimeoutSeconds int
}

// Client wraps the genai SDK.
type Client struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
}

// NewClient constructs a generation client. Extra options are appended after
// the API key option, so tests can redirect the endpoint.
func NewClient(ctx context.Context, cfg Config, opts ...option.ClientOption) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key required")
	}
	modelName := strings.TrimSpace(cfg.Model)
	if modelName == "" {
		modelName = defaultModel
	}

	clientOpts := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	client, err := genai.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Client{
		client:  client,
		model:   client.GenerativeModel(modelName),
		timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
	}, nil
}

// Close releases the underlying SDK client.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Upload pushes the file at path to the file service and returns its handle.
// The remote file usually starts in the processing state; callers poll
// Status until it is ready.
func (c *Client) Upload(ctx context.Context, path string) (Handle, error) {
	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	file, err := c.client.UploadFileFromPath(reqCtx, path, nil)
	if err != nil {
		return Handle{}, fmt.Errorf("upload %s: %w", path, err)
	}
	return Handle{Name: file.Name, URI: file.URI, MIME: file.MIMEType}, nil
}

// Status refreshes the remote file's processing state.
func (c *Client) Status(ctx context.Context, handle Handle) (State, error) {
	if handle.Name == "" {
		return StateFailed, errors.New("file handle required")
	}
	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	file, err := c.client.GetFile(reqCtx, handle.Name)
	if err != nil {
		return StateFailed, fmt.Errorf("get file %s: %w", handle.Name, err)
	}
	return mapState(file.State), nil
}

// Generate prompts the model against an uploaded file.
func (c *Client) Generate(ctx context.Context, handle Handle, prompt string) (string, error) {
	if handle.URI == "" {
		return "", errors.New("file handle required")
	}
	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	resp, err := c.model.GenerateContent(reqCtx,
		genai.FileData{MIMEType: handle.MIME, URI: handle.URI},
		genai.Text(prompt),
	)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return extractText(resp)
}

// GenerateText prompts the model with plain text only.
func (c *Client) GenerateText(ctx context.Context, prompt, body string) (string, error) {
	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	parts := []genai.Part{genai.Text(prompt)}
	if strings.TrimSpace(body) != "" {
		parts = append(parts, genai.Text(body))
	}
	resp, err := c.model.GenerateContent(reqCtx, parts...)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return extractText(resp)
}

// Delete removes the remote file. Callers treat failures as log-only; the
// file service expires uploads on its own eventually.
func (c *Client) Delete(ctx context.Context, handle Handle) error {
	if handle.Name == "" {
		return nil
	}
	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	if err := c.client.DeleteFile(reqCtx, handle.Name); err != nil {
		return fmt.Errorf("delete file %s: %w", handle.Name, err)
	}
	return nil
}

func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return context.WithCancel(ctx)
}

func mapState(state genai.FileState) State {
	switch state {
	case genai.FileStateActive:
		return StateReady
	case genai.FileStateFailed:
		return StateFailed
	default:
		return StateProcessing
	}
}

// extractText flattens a response to the concatenation of its text parts.
// A response without any text is an error; the caller classifies it.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", errors.New("empty response")
	}
	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", errors.New("response contained no text")
	}
	return b.String(), nil
}
