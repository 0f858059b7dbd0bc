package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"

	"github.com/mikeboe/verifact/pkg/clients"
)

// DefaultTemperature biases the model toward factual completions.
const DefaultTemperature float32 = 0.2

// ContentGenerator is the subset of *genai.Models used by the client.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Config holds the settings of a Client.
type Config struct {
	APIKey      string
	Model       string
	Temperature *float32 // nil selects DefaultTemperature
}

// Client sends a single question to Gemini with Google Search grounding and
// normalizes the answer. It keeps no state between calls.
type Client struct {
	model       string
	temperature float32
	generator   ContentGenerator
	now         func() time.Time
	Logger      *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithGenerator replaces the Gemini backend, mostly for tests.
func WithGenerator(g ContentGenerator) Option {
	return func(c *Client) { c.generator = g }
}

// WithClock sets the function used to timestamp results.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClient creates a Client. A missing API key is not an error here: the
// client starts anyway and every Analyze call fails with ErrMissingAPIKey.
func NewClient(ctx context.Context, cfg Config, opts ...Option) (*Client, error) {
	c := &Client{
		model:       string(clients.ResolveModel(cfg.Model)),
		temperature: DefaultTemperature,
		now:         time.Now,
		Logger:      slog.Default(),
	}
	if cfg.Temperature != nil {
		c.temperature = *cfg.Temperature
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.generator == nil && cfg.APIKey != "" {
		gc, err := clients.GoogleAi(ctx, cfg.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to init LLM: %w", err)
		}
		c.generator = gc.Models
	}

	return c, nil
}

// Model returns the model name queries are sent to.
func (c *Client) Model() string {
	return c.model
}

// Analyze runs one grounded query. Provider errors are returned unchanged.
func (c *Client) Analyze(ctx context.Context, query string) (*Result, error) {
	if c.generator == nil {
		return nil, ErrMissingAPIKey
	}

	temperature := c.temperature
	resp, err := c.generator.GenerateContent(ctx, c.model, genai.Text(query), &genai.GenerateContentConfig{
		Tools:       []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		Temperature: &temperature,
	})
	if err != nil {
		c.Logger.ErrorContext(ctx, "Gemini API error", "model", c.model, "error", err)
		return nil, err
	}

	if resp == nil {
		resp = &genai.GenerateContentResponse{}
	}

	text := resp.Text()
	if text == "" {
		text = NoAnswerText
	}

	var metadata *genai.GroundingMetadata
	if len(resp.Candidates) > 0 && resp.Candidates[0] != nil {
		metadata = resp.Candidates[0].GroundingMetadata
	}

	var sources []Source
	if metadata != nil {
		sources = BuildSources(metadata.GroundingChunks)
	} else {
		sources = []Source{}
	}

	c.Logger.InfoContext(ctx, "Grounded answer received", "model", c.model, "sources", len(sources), "text_len", len(text))

	return &Result{
		Text:              text,
		Sources:           sources,
		GroundingMetadata: metadata,
		Timestamp:         c.now(),
	}, nil
}
