package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func alwaysRetryable(err error) bool { return true }
func neverRetryable(err error) bool  { return false }

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	res := Do(context.Background(), Policy{MaxAttempts: 2, Backoff: time.Millisecond}, alwaysRetryable, func(ctx context.Context) error {
		calls++
		return nil
	})
	assert.NoError(t, res.Err)
	assert.Equal(t, 1, res.Attempts)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesOnceThenSucceeds(t *testing.T) {
	calls := 0
	res := Do(context.Background(), Policy{MaxAttempts: 2, Backoff: time.Millisecond}, alwaysRetryable, func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return errors.New("transient")
		}
		return nil
	})
	assert.NoError(t, res.Err)
	assert.Equal(t, 2, res.Attempts)
}

func TestDo_StopsAtMaxAttempts(t *testing.T) {
	calls := 0
	res := Do(context.Background(), Policy{MaxAttempts: 2, Backoff: time.Millisecond}, alwaysRetryable, func(ctx context.Context) error {
		calls++
		return errors.New("still failing")
	})
	assert.Error(t, res.Err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, res.Attempts)
}

func TestDo_TerminalErrorStopsImmediately(t *testing.T) {
	calls := 0
	res := Do(context.Background(), Policy{MaxAttempts: 2, Backoff: time.Millisecond}, neverRetryable, func(ctx context.Context) error {
		calls++
		return errors.New("terminal")
	})
	assert.Error(t, res.Err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, res.Attempts)
}

func TestDo_ContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	res := Do(ctx, Policy{MaxAttempts: 3, Backoff: 50 * time.Millisecond}, alwaysRetryable, func(ctx context.Context) error {
		calls++
		if calls == 1 {
			cancel()
		}
		return errors.New("retryable")
	})
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, res.Err, context.Canceled)
}
