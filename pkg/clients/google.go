package clients

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// ModelType is an enum for the available Google AI models.
type ModelType string

const (
	// DefaultModel is the default model to use if none is specified
	DefaultModel ModelType = "gemini-2.5-flash"
	ProModel     ModelType = "gemini-2.5-pro"
)

// ResolveModel maps a configured model name to a ModelType, falling back to
// DefaultModel for an empty name.
func ResolveModel(name string) ModelType {
	if name == "" {
		return DefaultModel
	}
	return ModelType(name)
}

// GoogleAi creates a Gemini API client. An empty apiKey is rejected: genai would
// otherwise silently pick a key up from the environment.
func GoogleAi(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key is required")
	}

	// See https://ai.google.dev/gemini-api/docs/models/gemini for possible models
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return client, nil
}
