package api

import (
	"context"
	"errors"
	"testing"
)

// A node with no failure hook lets its error escape, so Retry observes every
// failure; exhaustion surfaces as an ExhaustedError wrapping the last one.
func TestRetry_ExhaustionReturnsExhaustedError(t *testing.T) {
	boom := errors.New("boom")
	var runs int

	n := Retry(3, Named("always-fails", func(ctx context.Context, s State) (any, error) {
		runs++
		return nil, boom
	}))

	_, err := Execute(context.Background(), n, NewState())
	if err == nil {
		t.Fatalf("expected exhaustion to escalate")
	}
	if runs != 3 {
		t.Fatalf("expected exactly 3 attempts, got %d", runs)
	}

	ex, ok := IsExhausted(err)
	if !ok {
		t.Fatalf("expected *ExhaustedError, got %v", err)
	}
	if ex.Attempts != 3 {
		t.Fatalf("expected Attempts=3, got %d", ex.Attempts)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected the final failure to be wrapped, got %v", err)
	}
}

func TestRetry_AttemptNumbersAreOneBased(t *testing.T) {
	var attempts []int

	n := Retry(3, NewNode(func(ctx context.Context, s State) (any, error) {
		attempts = append(attempts, s.Attempt())
		return nil, errors.New("boom")
	}))

	if _, err := Execute(context.Background(), n, NewState()); err == nil {
		t.Fatalf("expected exhaustion")
	}
	want := []int{1, 2, 3}
	for i, a := range attempts {
		if a != want[i] {
			t.Fatalf("attempt %d saw Attempt()=%d, want %d", i, a, want[i])
		}
	}
}

func TestRetry_StopsOnFirstSuccess(t *testing.T) {
	var runs int

	n := Retry(5, NewNode(func(ctx context.Context, s State) (any, error) {
		runs++
		if runs < 3 {
			return nil, errors.New("not yet")
		}
		return "recovered", nil
	}))

	out, err := Execute(context.Background(), n, NewState())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "recovered" {
		t.Fatalf("expected %q, got %v", "recovered", out)
	}
	if runs != 3 {
		t.Fatalf("expected 3 runs, got %d", runs)
	}
}

// The fallback runs exactly once with the same input state the primary saw,
// and the primary is never re-run.
func TestFallback_EngagesOnceWithOriginalState(t *testing.T) {
	var primaryRuns, fallbackRuns int
	var fallbackSeen any

	primary := Named("primary", func(ctx context.Context, s State) (any, error) {
		primaryRuns++
		return nil, errors.New("primary down")
	})
	fallback := Named("fallback", func(ctx context.Context, s State) (any, error) {
		fallbackRuns++
		fallbackSeen, _ = s.Value("who")
		return "from fallback", nil
	})

	out, err := Execute(context.Background(), Fallback(primary, fallback), NewState().With("who", "caller"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "from fallback" {
		t.Fatalf("expected fallback result, got %v", out)
	}
	if primaryRuns != 1 || fallbackRuns != 1 {
		t.Fatalf("expected one run each, got primary=%d fallback=%d", primaryRuns, fallbackRuns)
	}
	if fallbackSeen != "caller" {
		t.Fatalf("fallback did not receive the original input state: %v", fallbackSeen)
	}
}

func TestFallback_PrimarySuccessSkipsFallback(t *testing.T) {
	var fallbackRuns int

	out, err := Execute(context.Background(), Fallback(
		constNode("primary", "primary ok"),
		Named("fallback", func(ctx context.Context, s State) (any, error) {
			fallbackRuns++
			return "fallback", nil
		}),
	), NewState())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "primary ok" {
		t.Fatalf("expected primary result, got %v", out)
	}
	if fallbackRuns != 0 {
		t.Fatalf("fallback ran despite primary success")
	}
}

// A failure escaping the fallback itself is the second escalation path.
func TestFallback_FallbackFailureEscalates(t *testing.T) {
	last := errors.New("fallback also down")

	n := Fallback(
		Named("primary", func(ctx context.Context, s State) (any, error) {
			return nil, errors.New("primary down")
		}),
		Named("fallback", func(ctx context.Context, s State) (any, error) {
			return nil, last
		}),
	)

	_, err := Execute(context.Background(), n, NewState())
	if err == nil {
		t.Fatalf("expected fallback failure to escalate")
	}
	if !errors.Is(err, last) {
		t.Fatalf("expected fallback error to surface, got %v", err)
	}
	if !IsEscalated(err) {
		t.Fatalf("expected an escalated error")
	}
}

// Retry around Fallback: exhaustion counts whole primary+fallback cycles.
func TestRetry_WrapsFallbackCycles(t *testing.T) {
	var primaryRuns, fallbackRuns int

	inner := Fallback(
		Named("primary", func(ctx context.Context, s State) (any, error) {
			primaryRuns++
			return nil, errors.New("primary down")
		}),
		Named("fallback", func(ctx context.Context, s State) (any, error) {
			fallbackRuns++
			return nil, errors.New("fallback down")
		}),
	)

	_, err := Execute(context.Background(), Retry(2, inner), NewState())
	if err == nil {
		t.Fatalf("expected escalation")
	}
	if primaryRuns != 2 || fallbackRuns != 2 {
		t.Fatalf("expected 2 cycles, got primary=%d fallback=%d", primaryRuns, fallbackRuns)
	}
	if _, ok := IsExhausted(err); !ok {
		t.Fatalf("expected exhaustion after retrying the fallback cycle, got %v", err)
	}
}
