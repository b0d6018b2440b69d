// Package llm wraps the Gemini text-generation client used for document
// field extraction. Responses are free-form text; callers treat them as
// untrusted input and run them through pkg/recovery.
package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// DefaultModel is used when the configuration names none.
const DefaultModel = "gemini-2.0-flash"

// Client issues blocking single-turn generation calls against the Gemini
// API. The caller-supplied context carries the request timeout.
type Client struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// NewClient constructs a Gemini client. An empty apiKey falls through to the
// SDK's ambient credential lookup so local development keeps working.
func NewClient(ctx context.Context, apiKey, model string, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if model == "" {
		model = DefaultModel
	}

	var cfg *genai.ClientConfig
	if apiKey != "" {
		cfg = &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}

	return &Client{client: client, model: model, logger: logger}, nil
}

// Generate sends one prompt and returns the raw response text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}

	text := resp.Text()
	c.logger.Debug("generation complete",
		zap.String("op", "llm.Generate"),
		zap.String("model", c.model),
		zap.Int("prompt_chars", len(prompt)),
		zap.Int("response_chars", len(text)),
	)
	return text, nil
}
