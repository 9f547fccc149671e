package common

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/Veraticus/waybill-match/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBusy = errors.New("database is locked")

func fastRetry() service.RetryOptions {
	return service.RetryOptions{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond}
}

func TestWithRetry(t *testing.T) {
	tests := []struct {
		err       func(attempt int) error
		wantErr   error
		name      string
		wantCalls int
	}{
		{
			name:      "succeeds first time",
			err:       func(int) error { return nil },
			wantCalls: 1,
		},
		{
			name: "recovers after busy",
			err: func(attempt int) error {
				if attempt < 2 {
					return &RetryableError{Err: errBusy, Retryable: true}
				}
				return nil
			},
			wantCalls: 2,
		},
		{
			name:      "permanent error is not retried",
			err:       func(int) error { return ErrInvalidConfig },
			wantErr:   ErrInvalidConfig,
			wantCalls: 1,
		},
		{
			name:      "gives up after max attempts",
			err:       func(int) error { return &RetryableError{Err: errBusy, Retryable: true} },
			wantErr:   ErrMaxRetries,
			wantCalls: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := WithRetry(context.Background(), func() error {
				calls++
				return tt.err(calls)
			}, fastRetry())

			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestWithRetry_WrapsCause(t *testing.T) {
	err := WithRetry(context.Background(), func() error {
		return &RetryableError{Err: errBusy, Retryable: true}
	}, fastRetry())
	assert.ErrorIs(t, err, errBusy)
}

func TestWithRetry_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := service.RetryOptions{MaxAttempts: 5, InitialDelay: time.Hour}
	err := WithRetry(ctx, func() error {
		return &RetryableError{Err: errBusy, Retryable: true}
	}, opts)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUserError(t *testing.T) {
	err := NewUserError("could not read sales workbook", ErrNoInput)
	assert.ErrorIs(t, err, ErrNoInput)
	assert.Equal(t, "could not read sales workbook: no input file", err.Error())
	assert.Equal(t, "could not read sales workbook", UserMessage(err))
	assert.Equal(t, "plain", UserMessage(errors.New("plain")))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "INFO", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetupLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	require.NoError(t, SetupLogger(&buf, slog.LevelInfo, FormatJSON))
	LogInfo("run finished", Fields{"rows": 3})
	LogDebug("hidden", nil)
	assert.Contains(t, buf.String(), `"msg":"run finished"`)
	assert.Contains(t, buf.String(), `"rows":3`)
	assert.NotContains(t, buf.String(), "hidden")

	assert.ErrorIs(t, SetupLogger(&buf, slog.LevelInfo, "xml"), ErrInvalidConfig)
}
