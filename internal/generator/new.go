package generator

import (
	"context"

	"google.golang.org/genai"

	"github.com/minicolabs/minutes-flow/internal/config"
	"github.com/minicolabs/minutes-flow/internal/logger"
	"github.com/minicolabs/minutes-flow/internal/minutes"
)

type implGenerator struct {
	client *genai.Client
	model  string
	cfg    config.GeminiConfig
	logger logger.Logger
}

// New creates a Generator with an explicitly injected API key. The key is
// checked here, before any request is attempted; it is never read from
// ambient environment state by the client itself.
func New(ctx context.Context, apiKey string, cfg config.GeminiConfig, log logger.Logger) (Generator, error) {
	if apiKey == "" {
		return nil, minutes.NewError(minutes.ErrConfiguration, "credential missing: set the Gemini API key", nil)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, minutes.NewError(minutes.ErrConfiguration, "create Gemini client", err)
	}

	return &implGenerator{
		client: client,
		model:  cfg.Model,
		cfg:    cfg,
		logger: log,
	}, nil
}
