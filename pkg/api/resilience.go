package api

import (
	"context"
	"log/slog"
	"time"
)

// RetryPolicy controls how a Retry node re-runs its inner node.
// MaxAttempts includes the first attempt:
//
//	MaxAttempts = 1 => no retries (just the initial run)
//	MaxAttempts = 3 => initial run + up to 2 retries
//
// InitialBackoff is the delay before the first retry; it is not applied
// before the first attempt. If zero, retries happen immediately.
type RetryPolicy struct {
	MaxAttempts       int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	BackoffMultiplier float64
}

// Retry returns a node that runs inner with an attempt budget and no delay
// between attempts.
//
// Each attempt sees Attempt set to the 1-based attempt number. A bare node
// swallows its own handler's failures, so Retry matters for nodes that let a
// failure escape: a node without a FailureHook, a When node whose predicate
// fails, or a nested escalation. On success the result is returned
// immediately. When every attempt fails, Retry escalates an *ExhaustedError
// wrapping the final failure to the caller of Execute, one of the only two
// deliberate breaks in the silent-failure contract.
func Retry(maxAttempts int, inner Node) Node {
	return RetryWithPolicy(RetryPolicy{MaxAttempts: maxAttempts}, inner)
}

// RetryWithPolicy is Retry with backoff between attempts.
func RetryWithPolicy(policy RetryPolicy, inner Node) Node {
	return Named("retry", func(ctx context.Context, s State) (any, error) {
		e := ExecutorFromContext(ctx)

		maxAttempts := policy.MaxAttempts
		if maxAttempts <= 0 {
			maxAttempts = 1
		}
		backoff := policy.InitialBackoff
		multiplier := policy.BackoffMultiplier
		if multiplier <= 0 {
			multiplier = 2.0
		}

		var lastErr error
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			result, err := e.run(ctx, inner, s.WithAttempt(attempt))
			if err == nil {
				return result, nil
			}
			lastErr = err
			if attempt == maxAttempts {
				break
			}

			e.logger.WarnContext(ctx, "retry_attempt_failed",
				slog.String("node", inner.name),
				slog.Int("attempt", attempt),
				slog.Int("max_attempts", maxAttempts),
				slog.Any("error", err),
			)

			if backoff > 0 {
				delay := backoff
				if policy.MaxBackoff > 0 && delay > policy.MaxBackoff {
					delay = policy.MaxBackoff
				}
				select {
				case <-ctx.Done():
					return nil, Escalate(ctx.Err())
				case <-time.After(delay):
				}
				backoff = time.Duration(float64(backoff) * multiplier)
				if policy.MaxBackoff > 0 && backoff > policy.MaxBackoff {
					backoff = policy.MaxBackoff
				}
			}
		}
		return nil, &ExhaustedError{Attempts: maxAttempts, Err: lastErr}
	})
}

// Fallback returns a node that runs primary and, if a failure escapes it,
// runs fallback exactly once with the identical input state and yields its
// result. Primary is never re-run.
//
// A failure escaping the fallback node itself is escalated to the caller of
// Execute; there is no secondary fallback.
func Fallback(primary, fallback Node) Node {
	return Named("fallback", func(ctx context.Context, s State) (any, error) {
		e := ExecutorFromContext(ctx)
		result, err := e.run(ctx, primary, s)
		if err == nil {
			return result, nil
		}
		e.logger.DebugContext(ctx, "fallback_engaged",
			slog.String("primary", primary.name),
			slog.String("fallback", fallback.name),
			slog.Any("error", err),
		)
		result, err = e.run(ctx, fallback, s)
		if err != nil {
			return nil, Escalate(err)
		}
		return result, nil
	})
}
