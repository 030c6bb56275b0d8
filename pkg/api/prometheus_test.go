package api

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusObserver_CountsChains(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs := NewPrometheusObserver(reg)
	e := NewExecutorWithObserver(obs)
	ctx := context.Background()

	if _, err := e.Execute(ctx, constNode("ok", 1), NewState()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := e.Execute(ctx, Retry(1, NewNode(func(ctx context.Context, s State) (any, error) {
		return nil, errors.New("boom")
	})), NewState()); err == nil {
		t.Fatalf("expected escalation")
	}

	if got := testutil.ToFloat64(obs.chainsStarted); got != 2 {
		t.Fatalf("expected 2 chains started, got %v", got)
	}
	if got := testutil.ToFloat64(obs.chainsCompleted); got != 1 {
		t.Fatalf("expected 1 chain completed, got %v", got)
	}
	if got := testutil.ToFloat64(obs.chainsEscalated); got != 1 {
		t.Fatalf("expected 1 chain escalated, got %v", got)
	}
}

func TestPrometheusObserver_CountsNodeFailures(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs := NewPrometheusObserver(reg)
	e := NewExecutorWithObserver(obs)

	n := Named("flaky", func(ctx context.Context, s State) (any, error) {
		return nil, errors.New("boom")
	})
	if _, err := e.Execute(context.Background(), n, NewState()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := testutil.ToFloat64(obs.nodeFailures.WithLabelValues("flaky")); got != 1 {
		t.Fatalf("expected 1 failure for node flaky, got %v", got)
	}
}
