package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/timetable/internal/common"
	"github.com/Veraticus/timetable/internal/model"
)

func TestNewOpenAIClient(t *testing.T) {
	tests := []struct {
		name      string
		wantModel string
		config    Config
		wantErr   bool
	}{
		{
			name:      "valid config",
			config:    Config{APIKey: "test-key"},
			wantModel: "gpt-4o-mini",
		},
		{
			name:    "missing API key",
			config:  Config{APIKey: ""},
			wantErr: true,
		},
		{
			name: "custom model and settings",
			config: Config{
				APIKey:      "test-key",
				Model:       "gpt-4o",
				Temperature: 0.5,
				MaxTokens:   200,
				BaseURL:     "http://localhost:8080/v1/",
			},
			wantModel: "gpt-4o",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := newOpenAIClient(tt.config)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantModel, client.model)
			assert.False(t, strings.HasSuffix(client.baseURL, "/"))
		})
	}
}

func TestOpenAIClient_ExtractSchedule(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"choices": [{
				"message": {"role": "assistant", "content": "{\"classes\":[{\"class_code\":\"CS101\"}]}"},
				"finish_reason": "stop"
			}],
			"usage": {"prompt_tokens": 900, "completion_tokens": 40}
		}`))
	}))
	defer server.Close()

	client, err := newOpenAIClient(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	resp, err := client.ExtractSchedule(context.Background(), model.Image{Data: []byte{0x89, 'P', 'N', 'G'}, MIMEType: "image/png"})
	require.NoError(t, err)
	assert.Equal(t, `{"classes":[{"class_code":"CS101"}]}`, resp.Text)
	assert.Equal(t, "stop", resp.FinishReason)
	assert.Equal(t, 900, resp.InputTokens)
	assert.Equal(t, 40, resp.OutputTokens)

	messages, ok := captured["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	user := messages[1].(map[string]any)
	parts := user["content"].([]any)
	require.Len(t, parts, 2)
	imagePart := parts[1].(map[string]any)
	url := imagePart["image_url"].(map[string]any)["url"].(string)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))
}

func TestOpenAIClient_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		wantRetryable bool
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, wantRetryable: true},
		{name: "server error", status: http.StatusBadGateway, wantRetryable: true},
		{name: "bad request", status: http.StatusBadRequest, wantRetryable: false},
		{name: "unauthorized", status: http.StatusUnauthorized, wantRetryable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"error":{"message":"nope"}}`))
			}))
			defer server.Close()

			client, err := newOpenAIClient(Config{APIKey: "test-key", BaseURL: server.URL})
			require.NoError(t, err)

			_, err = client.ExtractSchedule(context.Background(), model.Image{Data: []byte("x"), MIMEType: "image/png"})
			require.Error(t, err)
			assert.Equal(t, tt.wantRetryable, common.IsRetryable(err))
		})
	}
}

func TestOpenAIClient_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	client, err := newOpenAIClient(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.ExtractSchedule(context.Background(), model.Image{Data: []byte("x"), MIMEType: "image/png"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no completion choices")
}
