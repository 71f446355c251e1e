package sim

import (
	"errors"
	"testing"

	"github.com/san-kum/gaitsim/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Dt <= 0 {
		t.Error("DefaultConfig has invalid Dt")
	}
	if cfg.Duration <= 0 {
		t.Error("DefaultConfig has invalid Duration")
	}
	if cfg.Steps() != 10000 {
		t.Errorf("expected 10000 steps, got %d", cfg.Steps())
	}
}

func TestSimError(t *testing.T) {
	err := &SimError{Time: 1.5, Step: 150, Err: errors.New("test error")}
	expected := "step 150 (t=1.5000): test error"
	if err.Error() != expected {
		t.Errorf("SimError.Error() = %q, want %q", err.Error(), expected)
	}

	wrapped := &SimError{Err: dynamo.ErrInvalidState}
	if !errors.Is(wrapped, dynamo.ErrInvalidState) {
		t.Error("SimError does not unwrap")
	}
}

func TestResultColumn(t *testing.T) {
	r := &Result{}
	r.record(dynamo.Sample{Time: 0, Names: []string{"a", "b"}, Values: []float64{1, 2}})
	r.record(dynamo.Sample{Time: 0.1, Names: []string{"a", "b"}, Values: []float64{3, 4}})

	col, ok := r.Column("b")
	if !ok || len(col) != 2 || col[0] != 2 || col[1] != 4 {
		t.Errorf("Column(b) = %v, %v", col, ok)
	}
	if _, ok := r.Column("c"); ok {
		t.Error("Column returned a missing channel")
	}
	if r.Err() != nil {
		t.Error("unexpected error for a completed run")
	}

	r.Aborted = true
	r.AbortReason = "hinge Knee stop torque 50 above 10"
	if !errors.Is(r.Err(), dynamo.ErrAborted) {
		t.Errorf("Err() = %v", r.Err())
	}
}
