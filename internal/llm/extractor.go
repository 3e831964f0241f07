package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Veraticus/timetable/internal/common"
	"github.com/Veraticus/timetable/internal/model"
	"github.com/Veraticus/timetable/internal/service"
)

// Extractor implements service.Extractor on top of a raw Client.
type Extractor struct {
	client      Client
	cache       *extractionCache
	logger      *slog.Logger
	rateLimiter *rateLimiter
	retryOpts   service.RetryOptions
}

var _ service.Extractor = (*Extractor)(nil)

// NewExtractor creates an extractor for the configured provider.
func NewExtractor(ctx context.Context, cfg Config, logger *slog.Logger) (*Extractor, error) {
	client, err := NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return NewExtractorWithClient(client, cfg, logger), nil
}

// NewExtractorWithClient wraps an existing client.
func NewExtractorWithClient(client Client, cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}

	retryOpts := common.DefaultRetryOptions()
	if cfg.MaxRetries > 0 {
		retryOpts.MaxAttempts = cfg.MaxRetries
	}
	if cfg.RetryDelay > 0 {
		retryOpts.InitialDelay = cfg.RetryDelay
	}

	return &Extractor{
		client:      client,
		cache:       newExtractionCache(cfg.CacheTTL),
		logger:      logger,
		retryOpts:   retryOpts,
		rateLimiter: newRateLimiter(cfg.RateLimit),
	}
}

// Extract asks the model for the timetable in image. A successful call always
// carries the raw text; Payload is nil when the text held no JSON.
func (e *Extractor) Extract(ctx context.Context, image model.Image) (model.Extraction, error) {
	if len(image.Data) == 0 {
		return model.Extraction{}, fmt.Errorf("%w: empty image", common.ErrUnsupportedImage)
	}

	key := imageKey(image)
	if cached, found := e.cache.get(key); found {
		e.logger.Debug("cache hit for image", "sha256", key[:12])
		return cached, nil
	}

	if err := e.rateLimiter.wait(ctx); err != nil {
		return model.Extraction{}, fmt.Errorf("rate limit error: %w", err)
	}

	var response ExtractionResponse
	start := time.Now()
	err := common.WithRetry(ctx, "schedule extraction", func() error {
		resp, err := e.client.ExtractSchedule(ctx, image)
		if err != nil {
			e.logger.Warn("extraction attempt failed",
				"error", err,
				"mime_type", image.MIMEType)
			return err
		}
		response = resp
		return nil
	}, e.retryOpts)
	if err != nil {
		return model.Extraction{}, fmt.Errorf("%w: %w", common.ErrExtractionFailed, err)
	}

	extraction := model.Extraction{RawText: response.Text}
	payload, err := ParseExtraction(response.Text)
	switch {
	case errors.Is(err, ErrNoJSON):
		e.logger.Warn("model answer held no schedule JSON",
			"finish_reason", response.FinishReason,
			"chars", len(response.Text))
	case err != nil:
		return model.Extraction{}, err
	default:
		extraction.Payload = payload
	}

	e.logger.Info("schedule extracted",
		"classes", len(extraction.Payload.Items()),
		"parsed", extraction.Parsed(),
		"input_tokens", response.InputTokens,
		"output_tokens", response.OutputTokens,
		"duration", time.Since(start))

	e.cache.set(key, extraction)
	return extraction, nil
}

// Close releases the underlying client when it holds resources.
func (e *Extractor) Close() error {
	if closer, ok := e.client.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
