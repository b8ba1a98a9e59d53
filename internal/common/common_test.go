package common

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/Veraticus/pocket/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserError(t *testing.T) {
	inner := errors.New("disk full")
	err := NewUserError("Could not save your ledger", inner)

	assert.Equal(t, "Could not save your ledger: disk full", err.Error())
	assert.ErrorIs(t, err, inner)

	var userErr *UserError
	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, "Could not save your ledger", userErr.UserMessage)

	assert.Equal(t, "plain", NewUserError("plain", nil).Error())
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want bool
	}{
		{name: "persist failure", err: ErrPersistFailed, want: true},
		{name: "wrapped persist failure", err: errors.Join(errors.New("x"), ErrPersistFailed), want: true},
		{name: "deadline", err: context.DeadlineExceeded, want: true},
		{name: "canceled", err: context.Canceled, want: false},
		{name: "not found", err: ErrNotFound, want: false},
		{name: "explicit non-retryable", err: &RetryableError{Err: ErrPersistFailed, Retryable: false}, want: false},
		{name: "explicit retryable", err: &RetryableError{Err: errors.New("x"), Retryable: true}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestWithRetry(t *testing.T) {
	opts := service.RetryOptions{MaxAttempts: 2, InitialDelay: time.Millisecond}

	t.Run("succeeds on second attempt", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			if calls == 1 {
				return ErrPersistFailed
			}
			return nil
		}, opts)

		require.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			return ErrPersistFailed
		}, opts)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMaxRetries)
		assert.ErrorIs(t, err, ErrPersistFailed)
		assert.Equal(t, 2, calls)
	})

	t.Run("stops on non-retryable error", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			return &RetryableError{Err: errors.New("bad input"), Retryable: false}
		}, opts)

		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrMaxRetries)
		assert.Equal(t, 1, calls)
	})
}

func TestCompileSearch(t *testing.T) {
	re, err := CompileSearch("a+b", false, true)
	require.NoError(t, err)
	assert.True(t, re.MatchString("A+B"))
	assert.False(t, re.MatchString("aab"))

	re, err = CompileSearch("a+b", true, false)
	require.NoError(t, err)
	assert.True(t, re.MatchString("aab"))
	assert.False(t, re.MatchString("AAB"))

	_, err = CompileSearch("(", true, false)
	assert.Error(t, err)
}

func TestSetupLoggerTo(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	require.NoError(t, SetupLoggerTo(&buf, slog.LevelInfo, "json"))
	LogInfo("record added", Fields{"id": "rec_1"})
	LogDebug("hidden", nil)

	assert.Contains(t, buf.String(), `"msg":"record added"`)
	assert.Contains(t, buf.String(), `"id":"rec_1"`)
	assert.NotContains(t, buf.String(), "hidden")

	assert.ErrorIs(t, SetupLoggerTo(&buf, slog.LevelInfo, "xml"), ErrInvalidConfig)
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	_, err = ParseLevel("loud")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
