package common

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/timetable/internal/service"
)

func TestUserError(t *testing.T) {
	base := errors.New("disk full")
	err := NewUserError("could not save schedule", base)

	assert.Equal(t, "could not save schedule: disk full", err.Error())
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "just a message", NewUserError("just a message", nil).Error())
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(fmt.Errorf("call: %w", ErrRateLimit)))
	assert.True(t, IsRetryable(context.DeadlineExceeded))
	assert.True(t, IsRetryable(&RetryableError{Err: errors.New("503"), Retryable: true}))
	assert.False(t, IsRetryable(&RetryableError{Err: errors.New("400"), Retryable: false}))
	assert.False(t, IsRetryable(errors.New("plain")))
}

func TestWithRetry(t *testing.T) {
	opts := service.RetryOptions{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}

	t.Run("succeeds after failures", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), "test", func() error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		}, opts)
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), "test", func() error {
			calls++
			return errors.New("always")
		}, opts)
		require.ErrorIs(t, err, ErrMaxRetries)
		assert.Equal(t, 3, calls)
	})

	t.Run("non retryable stops immediately", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), "test", func() error {
			calls++
			return &RetryableError{Err: errors.New("bad request"), Retryable: false}
		}, opts)
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("context canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := WithRetry(ctx, "test", func() error { return errors.New("fail") }, service.RetryOptions{
			MaxAttempts:  5,
			InitialDelay: time.Second,
		})
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)

	lvl, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)

	_, err = ParseLevel("loud")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSetupLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	require.NoError(t, setupLogger(&buf, slog.LevelInfo, "json"))
	LogInfo("slots merged", Fields{"count": 3})
	assert.Contains(t, buf.String(), `"msg":"slots merged"`)
	assert.Contains(t, buf.String(), `"count":3`)

	buf.Reset()
	LogError(errors.New("boom"), "apply failed", nil)
	assert.Contains(t, buf.String(), `"error":"boom"`)

	assert.ErrorIs(t, setupLogger(&buf, slog.LevelInfo, "xml"), ErrInvalidConfig)
}
