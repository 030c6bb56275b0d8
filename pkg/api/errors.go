package api

import (
	"errors"
	"fmt"
)

var (
	// ErrTaskCancelled is reported by a Task that was cancelled before it
	// could complete.
	ErrTaskCancelled = errors.New("catena: task cancelled")

	// ErrJoinTimeout is returned by Task.JoinTimeout when the task does not
	// finish within the given duration.
	ErrJoinTimeout = errors.New("catena: task join timed out")
)

// escalated marks errors that break the default silent-failure contract and
// must be returned to the caller of Execute. Only retry exhaustion and an
// unhandled fallback failure produce them.
type escalated interface {
	escalated()
}

// IsEscalated reports whether err must surface to the caller of Execute
// instead of being swallowed.
func IsEscalated(err error) bool {
	var m escalated
	return errors.As(err, &m)
}

// escalatedError wraps an arbitrary error to mark it escalated while keeping
// the original visible to errors.Is/As.
type escalatedError struct {
	err error
}

func (e *escalatedError) Error() string { return e.err.Error() }
func (e *escalatedError) Unwrap() error { return e.err }
func (e *escalatedError) escalated()    {}

// Escalate marks err so the execution boundary propagates it instead of
// swallowing it. It is idempotent and returns nil for a nil err.
func Escalate(err error) error {
	if err == nil || IsEscalated(err) {
		return err
	}
	return &escalatedError{err: err}
}

// ExhaustedError is returned by a Retry node when every attempt failed.
// It wraps the final attempt's error.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("retry exhausted after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error { return e.Err }

func (e *ExhaustedError) escalated() {}

// IsExhausted returns the underlying ExhaustedError if err indicates a
// retry budget was exhausted.
func IsExhausted(err error) (*ExhaustedError, bool) {
	var ex *ExhaustedError
	if errors.As(err, &ex) {
		return ex, true
	}
	return nil, false
}

// PanicError wraps a recovered handler panic. Panics never cross a node or
// task boundary; they are converted to failures like any other error.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("handler panic: %v", e.Value)
}
