// Package gemini provides a thin client over the Gemini text-generation API.
// This is part of the platform layer and contains no business logic.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"
)

// ErrMissingAPIKey is returned when no credential is configured. Callers
// translate it into a descriptive per-request configuration error.
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY is not configured")

// Config for the Gemini client.
type Config struct {
	APIKey     string
	Model      string
	Timeout    time.Duration
	MaxRetries int
}

// Request describes a single-shot completion call.
type Request struct {
	System      string
	Prompt      string
	Temperature float32
	// JSON forces application/json response formatting on the provider side.
	JSON      bool
	MaxTokens int32
}

// Client calls the Gemini API. The underlying SDK client is constructed on
// first use so a missing credential fails the request, not process startup.
type Client struct {
	config Config

	initOnce sync.Once
	client   *genai.Client
	initErr  error
}

// New creates a Gemini client. No network or credential validation happens
// here; see Generate.
func New(cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &Client{config: cfg}
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.config.Model
}

func (c *Client) init(ctx context.Context) error {
	c.initOnce.Do(func() {
		if c.config.APIKey == "" {
			c.initErr = ErrMissingAPIKey
			return
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:     c.config.APIKey,
			Backend:    genai.BackendGeminiAPI,
			HTTPClient: &http.Client{Timeout: c.config.Timeout},
		})
		if err != nil {
			c.initErr = fmt.Errorf("failed to create gemini client: %w", err)
			return
		}
		c.client = client
	})
	return c.initErr
}

// Generate runs a single completion and returns the raw response text.
// Transient failures are retried up to MaxRetries times.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	if err := c.init(ctx); err != nil {
		return "", err
	}

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(req.Temperature),
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = req.MaxTokens
	}
	if req.JSON {
		cfg.ResponseMIMEType = "application/json"
	}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	var lastErr error
	attempts := c.config.MaxRetries + 1
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}

		resp, err := c.client.Models.GenerateContent(ctx, c.config.Model, genai.Text(req.Prompt), cfg)
		if err != nil {
			lastErr = err
			continue
		}

		text := strings.TrimSpace(resp.Text())
		if text == "" {
			lastErr = errors.New("empty response from model")
			continue
		}
		return text, nil
	}

	return "", fmt.Errorf("gemini api error after %d attempts: %w", attempts, lastErr)
}
