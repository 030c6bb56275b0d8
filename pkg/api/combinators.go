package api

import (
	"context"
	"fmt"
)

// Predicate guards a conditional branch. An error from a predicate is
// treated exactly like a handler error of the wrapping When node.
type Predicate func(ctx context.Context, s State) (bool, error)

// ResultPredicate decides whether a Filter node passes a result through.
type ResultPredicate func(result any) bool

// TransformFunc rewrites a node's result. It is applied unconditionally,
// including to a nil result.
type TransformFunc func(result any) (any, error)

// Collector folds an ordered sequence of results into a single value.
type Collector func(results []any) (any, error)

// When returns a node that runs thenNode when pred holds and otherwise
// yields nil.
func When(pred Predicate, thenNode Node) Node {
	return conditional(pred, thenNode, nil)
}

// WhenElse returns a node that runs thenNode when pred holds and elseNode
// otherwise.
func WhenElse(pred Predicate, thenNode, elseNode Node) Node {
	return conditional(pred, thenNode, &elseNode)
}

func conditional(pred Predicate, thenNode Node, elseNode *Node) Node {
	if pred == nil {
		panic("catena: when predicate must not be nil")
	}
	return Named("when", func(ctx context.Context, s State) (any, error) {
		ok, err := pred(ctx, s)
		if err != nil {
			return nil, err
		}
		e := ExecutorFromContext(ctx)
		if ok {
			return e.run(ctx, thenNode, s)
		}
		if elseNode != nil {
			return e.run(ctx, *elseNode, s)
		}
		return nil, nil
	})
}

// Repeat returns a node that runs body sequentially times times.
//
// Each pass sees Iteration set to the zero-based pass index, with the output
// state of the prior pass (not just its raw result) threaded into the next.
// Control flow is owned by the loop: a nil result or a swallowed failure in
// one pass does not halt the remaining passes. Repeat(0, body) yields the
// input state unchanged without invoking the handler.
//
// The node's result is the final threaded State.
func Repeat(times int, body Node) Node {
	if times < 0 {
		panic(fmt.Sprintf("catena: repeat count must not be negative, got %d", times))
	}
	return Named("repeat", func(ctx context.Context, s State) (any, error) {
		e := ExecutorFromContext(ctx)
		cur := s
		for i := 0; i < times; i++ {
			in := cur.WithIteration(i)
			r, err := e.run(ctx, body, in)
			if err != nil {
				if IsEscalated(err) {
					return nil, err
				}
				e.swallow(ctx, body.name, err)
				r = nil
			}
			next := in
			if ns, ok := r.(State); ok {
				next = ns
			}
			cur = next.WithPreviousResult(r)
		}
		return cur, nil
	})
}

// Filter returns a node that runs inner and passes its result through only
// when pred accepts it; otherwise it yields the nil stop sentinel, halting
// any enclosing Then chain.
func Filter(pred ResultPredicate, inner Node) Node {
	if pred == nil {
		panic("catena: filter predicate must not be nil")
	}
	return Named("filter", func(ctx context.Context, s State) (any, error) {
		r, err := ExecutorFromContext(ctx).run(ctx, inner, s)
		if err != nil {
			return nil, err
		}
		if pred(r) {
			return r, nil
		}
		return nil, nil
	})
}

// Transform returns a node that runs inner and applies f to its result.
// Unlike Filter, Transform never produces the stop sentinel on its own: f is
// applied even to a nil result, and whatever f returns is the node's result.
func Transform(f TransformFunc, inner Node) Node {
	if f == nil {
		panic("catena: transform function must not be nil")
	}
	return Named("transform", func(ctx context.Context, s State) (any, error) {
		r, err := ExecutorFromContext(ctx).run(ctx, inner, s)
		if err != nil {
			return nil, err
		}
		return f(r)
	})
}

// Collect returns a node that runs each of nodes strictly sequentially, each
// starting only after the previous fully completed, and applies collector to
// their ordered results.
//
// A swallowed failure in one node keeps its slot as nil; it does not abort
// the remaining nodes.
func Collect(nodes []Node, collector Collector) Node {
	if collector == nil {
		panic("catena: collector must not be nil")
	}
	return Named("collect", func(ctx context.Context, s State) (any, error) {
		e := ExecutorFromContext(ctx)
		results := make([]any, len(nodes))
		for i, n := range nodes {
			r, err := e.run(ctx, n, s)
			if err != nil {
				if IsEscalated(err) {
					return nil, err
				}
				e.swallow(ctx, n.name, err)
				r = nil
			}
			results[i] = r
		}
		return collector(results)
	})
}
