package api

import (
	"context"
	"fmt"
)

// Handler is the unit of work carried by a Node.
//
// A nil result with a nil error is the "stop" sentinel: it halts a Then
// chain without being an error. A non-nil error is a failure; by default it
// is swallowed by the execution boundary (see Executor.Execute).
type Handler func(ctx context.Context, s State) (any, error)

// SuccessHook is a side effect fired after a node's handler succeeds.
// Its return value is deliberately absent; it cannot alter the result.
type SuccessHook func(ctx context.Context, result any, s State)

// FailureHook is a side effect fired when a node's handler fails.
// Attaching a FailureHook consumes the failure: the node then yields a nil
// result instead of letting the error escape to an enclosing Retry/Fallback.
type FailureHook func(ctx context.Context, err error, s State)

// Node is a composable unit of work: a handler, an optional continuation,
// and optional success/failure hooks.
//
// Nodes are persistent values. Then, OnSuccess, OnFailure and WithName all
// return new nodes and never alias or mutate the receiver, so a node can be
// reused as a sub-chain in multiple parents.
type Node struct {
	name      string
	handler   Handler
	next      *Node
	onSuccess SuccessHook
	onFailure FailureHook
}

// NewNode creates a node from a handler.
func NewNode(h Handler) Node {
	if h == nil {
		panic("catena: node handler must not be nil")
	}
	return Node{handler: h}
}

// Named creates a node with a name used in logs, events and metrics.
func Named(name string, h Handler) Node {
	if h == nil {
		panic(fmt.Sprintf("catena: node %q has nil handler", name))
	}
	return Node{name: name, handler: h}
}

// Name returns the node's name, which may be empty.
func (n Node) Name() string {
	return n.name
}

// WithName returns a copy of n with the given name.
func (n Node) WithName(name string) Node {
	n.name = name
	return n
}

// Then returns a copy of n whose chain is extended with next at the tail.
// The continuation runs only when the preceding node yields a non-nil
// result; a nil result halts the chain.
func (n Node) Then(next Node) Node {
	if n.next != nil {
		tail := n.next.Then(next)
		n.next = &tail
		return n
	}
	n.next = &next
	return n
}

// OnSuccess returns a copy of n with the given success hook.
func (n Node) OnSuccess(hook SuccessHook) Node {
	n.onSuccess = hook
	return n
}

// OnFailure returns a copy of n with the given failure hook.
// The hook observes the failure; it does not re-raise it.
func (n Node) OnFailure(hook FailureHook) Node {
	n.onFailure = hook
	return n
}
