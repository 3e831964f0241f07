package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/Veraticus/timetable/internal/model"
)

const defaultGeminiModel = "gemini-1.5-flash"

// geminiClient implements the Client interface using Google's Gemini API.
type geminiClient struct {
	client      *genai.Client
	modelID     string
	temperature float64
	maxTokens   int
	timeout     time.Duration
}

// newGeminiClient creates a new Gemini client.
func newGeminiClient(ctx context.Context, cfg Config) (*geminiClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("gemini API key is required")
	}

	modelID := strings.TrimSpace(cfg.Model)
	if modelID == "" {
		modelID = defaultGeminiModel
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(cfg.BaseURL))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiClient{
		client:      client,
		modelID:     modelID,
		temperature: cfg.temperature(),
		maxTokens:   cfg.maxTokens(),
		timeout:     cfg.timeout(),
	}, nil
}

// requestContext bounds a single Gemini call by the configured timeout.
func (c *geminiClient) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := c.timeout
	if timeout <= 0 {
		timeout = Config{}.timeout()
	}
	return context.WithTimeout(ctx, timeout)
}

// ExtractSchedule sends the prompt and the inline image to Gemini.
func (c *geminiClient) ExtractSchedule(ctx context.Context, image model.Image) (ExtractionResponse, error) {
	ctx, cancel := c.requestContext(ctx)
	defer cancel()

	gm := c.client.GenerativeModel(c.modelID)
	gm.SetTemperature(float32(c.temperature))
	gm.SetMaxOutputTokens(int32(c.maxTokens))
	gm.ResponseMIMEType = "application/json"

	resp, err := gm.GenerateContent(ctx,
		genai.Text(extractionPrompt),
		genai.Blob{MIMEType: image.MIMEType, Data: image.Data},
	)
	if err != nil {
		return ExtractionResponse{}, fmt.Errorf("gemini extraction failed: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return ExtractionResponse{}, errors.New("gemini returned no candidates")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return ExtractionResponse{}, errors.New("gemini returned empty content")
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}

	result := ExtractionResponse{
		Text:         strings.TrimSpace(text.String()),
		FinishReason: candidate.FinishReason.String(),
	}
	if resp.UsageMetadata != nil {
		result.InputTokens = int(resp.UsageMetadata.PromptTokenCount)
		result.OutputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}
	return result, nil
}

// Close releases resources held by the Gemini client.
func (c *geminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}
