package llm

import (
	"context"
	"fmt"
	"strings"
)

// NewClient creates a raw LLM client based on the provided configuration.
// An empty provider selects Gemini.
func NewClient(ctx context.Context, cfg Config) (Client, error) {
	var (
		client Client
		err    error
	)

	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "gemini":
		var c *geminiClient
		c, err = newGeminiClient(ctx, cfg)
		client = c
	case "openai":
		var c *openAIClient
		c, err = newOpenAIClient(cfg)
		client = c
	case "anthropic":
		var c *anthropicClient
		c, err = newAnthropicClient(cfg)
		client = c
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}

	if err != nil {
		return nil, err
	}
	return client, nil
}
