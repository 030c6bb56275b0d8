package api

import "testing"

func TestState_WithDoesNotMutateOriginal(t *testing.T) {
	base := NewState().With("user", "ada")

	derived := base.With("user", "grace").With("extra", 1)

	if v, _ := base.Value("user"); v != "ada" {
		t.Fatalf("base state mutated: user=%v", v)
	}
	if _, ok := base.Value("extra"); ok {
		t.Fatalf("base state gained a key set on the derived state")
	}
	if v, _ := derived.Value("user"); v != "grace" {
		t.Fatalf("derived state missing overwrite: user=%v", v)
	}
}

func TestState_ValuesReturnsCopy(t *testing.T) {
	s := NewState().With("k", "v")

	m := s.Values()
	m["k"] = "tampered"
	m["new"] = true

	if v, _ := s.Value("k"); v != "v" {
		t.Fatalf("mutating the Values() copy leaked into the state: k=%v", v)
	}
	if _, ok := s.Value("new"); ok {
		t.Fatalf("mutating the Values() copy added a key to the state")
	}
}

func TestState_CountersAndPreviousResult(t *testing.T) {
	s := NewState().
		WithIteration(3).
		WithAttempt(2).
		WithPreviousResult("done")

	if s.Iteration() != 3 {
		t.Fatalf("expected iteration 3, got %d", s.Iteration())
	}
	if s.Attempt() != 2 {
		t.Fatalf("expected attempt 2, got %d", s.Attempt())
	}
	if s.PreviousResult() != "done" {
		t.Fatalf("expected previous result %q, got %v", "done", s.PreviousResult())
	}

	// Counters are independent of the value map.
	if len(s.Values()) != 0 {
		t.Fatalf("expected empty value map, got %v", s.Values())
	}
}

func TestState_WithValuesMergesWithoutAliasing(t *testing.T) {
	src := map[string]any{"a": 1, "b": 2}
	s := NewState().WithValues(src)

	src["a"] = 99
	if v, _ := s.Value("a"); v != 1 {
		t.Fatalf("state aliases the caller's map: a=%v", v)
	}
	if v, _ := s.Value("b"); v != 2 {
		t.Fatalf("expected b=2, got %v", v)
	}
}
