package catena

import "fmt"

// ChainBuilder provides a fluent API for composing chains:
//
//	chain := catena.NewChain().
//	    Step("fetch", fetchOrder).
//	    Step("charge", chargeCard).
//	    OnFailure(alertBilling).
//	    Step("notify", sendReceipt).
//	    Build()
//
//	result, err := catena.Execute(ctx, chain, catena.NewState())
type ChainBuilder struct {
	steps []Node
}

// NewChain creates an empty chain builder.
func NewChain() *ChainBuilder {
	return &ChainBuilder{steps: make([]Node, 0)}
}

// Step appends a named handler to the chain.
func (b *ChainBuilder) Step(name string, h Handler) *ChainBuilder {
	if name == "" {
		panic("catena: step name must not be empty")
	}
	if h == nil {
		panic(fmt.Sprintf("catena: step %q has nil handler", name))
	}
	b.steps = append(b.steps, Named(name, h))
	return b
}

// Node appends an already-built node, typically a combinator.
func (b *ChainBuilder) Node(n Node) *ChainBuilder {
	b.steps = append(b.steps, n)
	return b
}

// OnSuccess attaches a success hook to the most recent step.
func (b *ChainBuilder) OnSuccess(hook SuccessHook) *ChainBuilder {
	b.last("OnSuccess")
	i := len(b.steps) - 1
	b.steps[i] = b.steps[i].OnSuccess(hook)
	return b
}

// OnFailure attaches a failure hook to the most recent step. The hook
// consumes the step's failures; see FailureHook.
func (b *ChainBuilder) OnFailure(hook FailureHook) *ChainBuilder {
	b.last("OnFailure")
	i := len(b.steps) - 1
	b.steps[i] = b.steps[i].OnFailure(hook)
	return b
}

// If appends a conditional step that runs thenNode only when pred holds.
func (b *ChainBuilder) If(pred Predicate, thenNode Node) *ChainBuilder {
	return b.Node(When(pred, thenNode))
}

// IfElse appends a two-way conditional step.
func (b *ChainBuilder) IfElse(pred Predicate, thenNode, elseNode Node) *ChainBuilder {
	return b.Node(WhenElse(pred, thenNode, elseNode))
}

// Loop appends a step that runs body the given number of times.
func (b *ChainBuilder) Loop(times int, body Node) *ChainBuilder {
	return b.Node(Repeat(times, body))
}

// Parallel appends a step that runs all branches concurrently.
func (b *ChainBuilder) Parallel(branches ...Node) *ChainBuilder {
	return b.Node(Parallel(branches...))
}

// Retry appends a step that re-runs inner under the given policy.
func (b *ChainBuilder) Retry(policy RetryPolicy, inner Node) *ChainBuilder {
	return b.Node(RetryWithPolicy(policy, inner))
}

// Fallback appends a step that runs fallback when primary fails.
func (b *ChainBuilder) Fallback(primary, fallback Node) *ChainBuilder {
	return b.Node(Fallback(primary, fallback))
}

// Filter appends a step that passes inner's result through only when pred
// accepts it.
func (b *ChainBuilder) Filter(pred ResultPredicate, inner Node) *ChainBuilder {
	return b.Node(Filter(pred, inner))
}

// Transform appends a step that rewrites inner's result with f.
func (b *ChainBuilder) Transform(f TransformFunc, inner Node) *ChainBuilder {
	return b.Node(Transform(f, inner))
}

// Collect appends a step that runs nodes sequentially and folds their
// results.
func (b *ChainBuilder) Collect(nodes []Node, collector Collector) *ChainBuilder {
	return b.Node(Collect(nodes, collector))
}

// Build links the accumulated steps into a single chain. The builder can be
// reused afterwards; the returned chain is an independent persistent value.
func (b *ChainBuilder) Build() Node {
	if len(b.steps) == 0 {
		panic("catena: chain has no steps")
	}
	chain := b.steps[0]
	for _, n := range b.steps[1:] {
		chain = chain.Then(n)
	}
	return chain
}

func (b *ChainBuilder) last(method string) {
	if len(b.steps) == 0 {
		panic(fmt.Sprintf("catena: %s requires a preceding step", method))
	}
}
