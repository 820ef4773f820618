package mission

import (
	"bytes"
	"encoding/json"
	"testing"
)

// TestSolveDeterminism verifies that the solver produces byte-identical
// plans for the same input across many runs. This guards against map
// iteration order leaking into node layout, path selection, or matching.
func TestSolveDeterminism(t *testing.T) {
	const iterations = 100

	first, err := fixtureSolver().Solve()
	if err != nil {
		t.Fatalf("Failed to solve: %v", err)
	}
	baseline, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("Failed to marshal baseline: %v", err)
	}

	for i := 1; i < iterations; i++ {
		sol, err := fixtureSolver().Solve()
		if err != nil {
			t.Fatalf("Iteration %d: failed to solve: %v", i, err)
		}
		data, err := json.Marshal(sol)
		if err != nil {
			t.Fatalf("Iteration %d: failed to marshal: %v", i, err)
		}
		if !bytes.Equal(data, baseline) {
			t.Fatalf("Iteration %d: plan differs from baseline\ngot:  %s\nwant: %s", i, data, baseline)
		}
	}
}
