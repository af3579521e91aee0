// Package retry implements a bounded retry policy: at most MaxAttempts
// total attempts, a fixed delay between them, and a caller-supplied
// classifier deciding whether a given error is worth retrying at all.
package retry

import (
	"context"
	"time"
)

// Policy is configurable for tests and for the void/authorize call
// sites that share it.
type Policy struct {
	MaxAttempts int
	Backoff     time.Duration
}

// Default is the policy both the authorize and void call sites use:
// original attempt plus one retry, 1 second apart.
func Default() Policy {
	return Policy{MaxAttempts: 2, Backoff: time.Second}
}

// Classifier reports whether err is worth retrying. A nil err is never
// passed to it; Do only calls it when attempt() returns a non-nil error.
type Classifier func(err error) bool

// Result carries the outcome of the final attempt along with how many
// attempts were made, so callers can record retry_attempts on the
// Payment row even when every attempt failed.
type Result struct {
	Attempts int
	Err      error
}

// Do runs attempt up to p.MaxAttempts times, sleeping p.Backoff between
// attempts, stopping early on success or on a non-retryable error. ctx
// cancellation aborts the sleep between attempts.
func Do(ctx context.Context, p Policy, classify Classifier, attempt func(ctx context.Context) error) Result {
	var lastErr error
	for n := 1; n <= p.MaxAttempts; n++ {
		lastErr = attempt(ctx)
		if lastErr == nil {
			return Result{Attempts: n, Err: nil}
		}
		if !classify(lastErr) {
			return Result{Attempts: n, Err: lastErr}
		}
		if n == p.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return Result{Attempts: n, Err: ctx.Err()}
		case <-time.After(p.Backoff):
		}
	}
	return Result{Attempts: p.MaxAttempts, Err: lastErr}
}
