package api

// State is the immutable value threaded through a chain execution.
//
// A State carries three reserved fields maintained by the engine: the loop
// iteration index (inside Repeat and scheduled runs), the retry attempt
// number (inside Retry), and the previous node's result (inside a Then
// chain). Everything else lives in an open key/value map for caller data.
//
// State values are never mutated in place: every With* method returns a new
// value, so a State can be handed to concurrent branches or reused across
// executions safely.
type State struct {
	iteration int
	attempt   int
	prev      any
	values    map[string]any
}

// NewState returns an empty State.
func NewState() State {
	return State{}
}

// Iteration returns the zero-based loop index set by Repeat and by scheduled
// periodic runs. It is 0 outside of a loop body.
func (s State) Iteration() int {
	return s.iteration
}

// Attempt returns the 1-based retry attempt set by Retry. It is 0 outside of
// a retry body.
func (s State) Attempt() int {
	return s.attempt
}

// PreviousResult returns the result of the prior node in a Then chain,
// or nil at the head of a chain.
func (s State) PreviousResult() any {
	return s.prev
}

// Value returns the caller-defined value stored under key.
func (s State) Value(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Values returns a copy of the caller-defined key/value map.
func (s State) Values() map[string]any {
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// With returns a copy of s with key set to value.
func (s State) With(key string, value any) State {
	out := s.cloneValues(1)
	out.values[key] = value
	return out
}

// WithValues returns a copy of s with every entry of kv set.
func (s State) WithValues(kv map[string]any) State {
	out := s.cloneValues(len(kv))
	for k, v := range kv {
		out.values[k] = v
	}
	return out
}

// WithIteration returns a copy of s with the iteration index set.
func (s State) WithIteration(i int) State {
	s.iteration = i
	return s
}

// WithAttempt returns a copy of s with the retry attempt set.
func (s State) WithAttempt(a int) State {
	s.attempt = a
	return s
}

// WithPreviousResult returns a copy of s with the previous result set.
func (s State) WithPreviousResult(r any) State {
	s.prev = r
	return s
}

// cloneValues copies s with a fresh values map sized for extra additions.
// The receiver's map is shared by earlier copies and must not be written to.
func (s State) cloneValues(extra int) State {
	values := make(map[string]any, len(s.values)+extra)
	for k, v := range s.values {
		values[k] = v
	}
	s.values = values
	return s
}
