package sim

import (
	"fmt"

	"github.com/san-kum/gaitsim/internal/dynamo"
)

type Config struct {
	Dt       float64 `yaml:"dt" json:"dt"`
	Duration float64 `yaml:"duration" json:"duration"`

	// ValidateState stops the run when integration produces NaN or Inf.
	ValidateState bool `yaml:"validate_state" json:"validate_state"`
	// AbortOnLimits ends the run at the first exceeded joint limit.
	AbortOnLimits bool `yaml:"abort_on_limits" json:"abort_on_limits"`
}

// Steps is the number of fixed steps that cover Duration.
func (c Config) Steps() int {
	return int(c.Duration/c.Dt + 1e-9)
}

type Result struct {
	Times      []float64
	Channels   []string
	Samples    [][]float64
	Metrics    map[string]float64
	StepsTaken int

	Aborted     bool
	AbortReason string
}

// Column returns the named channel over the whole run.
func (r *Result) Column(name string) ([]float64, bool) {
	idx := -1
	for i, n := range r.Channels {
		if n == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	col := make([]float64, len(r.Samples))
	for i, row := range r.Samples {
		col[i] = row[idx]
	}
	return col, true
}

// Err reports an aborted run as dynamo.ErrAborted.
func (r *Result) Err() error {
	if !r.Aborted {
		return nil
	}
	t := 0.0
	if n := len(r.Times); n > 0 {
		t = r.Times[n-1]
	}
	return fmt.Errorf("%w at t=%.4f: %s", dynamo.ErrAborted, t, r.AbortReason)
}

func (r *Result) record(s dynamo.Sample) {
	if r.Channels == nil {
		r.Channels = s.Names
	}
	row := make([]float64, len(s.Values))
	copy(row, s.Values)
	r.Times = append(r.Times, s.Time)
	r.Samples = append(r.Samples, row)
}

type SimError struct {
	Time float64
	Step int
	Err  error
}

func (e *SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Err)
}

func (e *SimError) Unwrap() error { return e.Err }

func DefaultConfig() Config {
	return Config{
		Dt:            1e-4,
		Duration:      1.0,
		ValidateState: true,
		AbortOnLimits: true,
	}
}
