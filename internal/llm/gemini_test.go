package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiClient_RequestContextDeadline(t *testing.T) {
	tests := []struct {
		name    string
		timeout time.Duration
		want    time.Duration
	}{
		{name: "configured", timeout: 5 * time.Second, want: 5 * time.Second},
		{name: "default", timeout: 0, want: 60 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &geminiClient{timeout: tt.timeout}

			before := time.Now()
			ctx, cancel := c.requestContext(context.Background())
			defer cancel()

			deadline, ok := ctx.Deadline()
			require.True(t, ok)
			assert.WithinDuration(t, before.Add(tt.want), deadline, time.Second)
		})
	}
}

func TestGeminiClient_RequestContextKeepsEarlierDeadline(t *testing.T) {
	c := &geminiClient{timeout: time.Hour}

	parent, parentCancel := context.WithTimeout(context.Background(), time.Second)
	defer parentCancel()
	parentDeadline, _ := parent.Deadline()

	ctx, cancel := c.requestContext(parent)
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.Equal(t, parentDeadline, deadline)
}

func TestConfigTimeout(t *testing.T) {
	assert.Equal(t, 60*time.Second, Config{}.timeout())
	assert.Equal(t, 90*time.Second, Config{Timeout: 90 * time.Second}.timeout())
}
