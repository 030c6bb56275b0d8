package catena

import (
	"context"

	"github.com/petrijr/catena/pkg/api"
)

// NewNode wraps a handler in an anonymous node.
func NewNode(h Handler) Node {
	return api.NewNode(h)
}

// Named wraps a handler in a node with the given name, used in logs,
// observer callbacks and journal events.
func Named(name string, h Handler) Node {
	return api.Named(name, h)
}

// When runs thenNode only when pred holds.
func When(pred Predicate, thenNode Node) Node {
	return api.When(pred, thenNode)
}

// WhenElse runs thenNode when pred holds and elseNode otherwise.
func WhenElse(pred Predicate, thenNode, elseNode Node) Node {
	return api.WhenElse(pred, thenNode, elseNode)
}

// Repeat runs body sequentially the given number of times, threading state
// between passes.
func Repeat(times int, body Node) Node {
	return api.Repeat(times, body)
}

// Filter passes inner's result through only when pred accepts it.
func Filter(pred ResultPredicate, inner Node) Node {
	return api.Filter(pred, inner)
}

// Transform applies f to inner's result.
func Transform(f TransformFunc, inner Node) Node {
	return api.Transform(f, inner)
}

// Collect runs nodes sequentially and folds their ordered results.
func Collect(nodes []Node, collector Collector) Node {
	return api.Collect(nodes, collector)
}

// Parallel runs all branches concurrently and yields their results in
// declared order.
func Parallel(nodes ...Node) Node {
	return api.Parallel(nodes...)
}

// Retry re-runs inner up to maxAttempts times with no delay between attempts.
func Retry(maxAttempts int, inner Node) Node {
	return api.Retry(maxAttempts, inner)
}

// RetryWithPolicy is Retry with backoff between attempts.
func RetryWithPolicy(policy RetryPolicy, inner Node) Node {
	return api.RetryWithPolicy(policy, inner)
}

// Fallback runs fallback once if a failure escapes primary.
func Fallback(primary, fallback Node) Node {
	return api.Fallback(primary, fallback)
}

// Go runs fn asynchronously and returns its task handle.
func Go(ctx context.Context, fn func(ctx context.Context) (any, error)) *Task {
	return api.Go(ctx, fn)
}
