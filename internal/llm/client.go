package llm

import (
	"context"
	"time"

	"github.com/Veraticus/timetable/internal/model"
)

// Client defines the interface for LLM providers.
type Client interface {
	ExtractSchedule(ctx context.Context, image model.Image) (ExtractionResponse, error)
}

// ExtractionResponse contains the model's raw answer for one image.
type ExtractionResponse struct {
	Text         string
	FinishReason string
	InputTokens  int
	OutputTokens int
}

// Config holds configuration for the LLM providers and the extractor.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	MaxRetries  int
	RetryDelay  time.Duration
	CacheTTL    time.Duration
	Timeout     time.Duration
	RateLimit   int
	Temperature float64
	MaxTokens   int
}

func (c Config) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return 60 * time.Second
}

func (c Config) temperature() float64 {
	if c.Temperature > 0 {
		return c.Temperature
	}
	return 0.1
}

func (c Config) maxTokens() int {
	if c.MaxTokens > 0 {
		return c.MaxTokens
	}
	return 4096
}
