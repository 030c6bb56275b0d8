package catena

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/petrijr/catena/pkg/api"
)

// executionIDCapture records the IDs of executions it observes.
type executionIDCapture struct {
	NoopObserver

	mu  sync.Mutex
	ids []string
}

func (c *executionIDCapture) OnChainStart(_ context.Context, ex *api.Execution) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ids = append(c.ids, ex.ID)
}

// TestRuntime_RecordsHistory verifies that executing through a Runtime leaves
// a readable journal trail for the execution.
func TestRuntime_RecordsHistory(t *testing.T) {
	t.Parallel()

	capture := &executionIDCapture{}
	rt := NewRuntimeWithObserver(capture)
	defer rt.Stop()

	chain := NewChain().
		Step("greet", func(ctx context.Context, s State) (any, error) {
			return "hello", nil
		}).
		Step("decorate", func(ctx context.Context, s State) (any, error) {
			return s.PreviousResult().(string) + "!", nil
		}).
		Build()

	out, err := rt.Execute(context.Background(), chain, NewState())
	require.NoError(t, err)
	require.Equal(t, "hello!", out)
	require.Len(t, capture.ids, 1)

	events, err := rt.History(context.Background(), capture.ids[0])
	require.NoError(t, err)
	require.NotEmpty(t, events)

	require.Equal(t, EventChainStarted, events[0].Type)
	require.Equal(t, EventChainCompleted, events[len(events)-1].Type)

	var nodes []string
	for _, ev := range events {
		if ev.Type == EventNodeCompleted {
			nodes = append(nodes, ev.Node)
		}
	}
	require.Equal(t, []string{"greet", "decorate"}, nodes)
}

// TestRuntime_SchedulerSharesExecutor verifies that scheduled runs land in
// the same journal as synchronous ones.
func TestRuntime_SchedulerSharesExecutor(t *testing.T) {
	t.Parallel()

	capture := &executionIDCapture{}
	rt := NewRuntimeWithObserver(capture)
	defer rt.Stop()

	task := rt.Scheduler.Delay(context.Background(), Named("delayed", func(ctx context.Context, s State) (any, error) {
		return "fired", nil
	}), NewState(), 0)

	out, err := task.Join(context.Background())
	require.NoError(t, err)
	require.Equal(t, "fired", out)

	require.Len(t, capture.ids, 1)
	events, err := rt.History(context.Background(), capture.ids[0])
	require.NoError(t, err)
	require.NotEmpty(t, events)
}

// TestRuntime_StopIsIdempotent guards against double Stop in deferred
// cleanup paths.
func TestRuntime_StopIsIdempotent(t *testing.T) {
	t.Parallel()

	rt := NewRuntime()
	rt.Stop()

	done := make(chan struct{})
	go func() {
		rt.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("second Stop blocked")
	}
}
