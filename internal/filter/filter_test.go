package filter

import (
	"errors"
	"math"
	"testing"
)

func TestMovingAverage(t *testing.T) {
	m, err := NewMovingAverage(4)
	if err != nil {
		t.Fatal(err)
	}

	m.AddSample(4)
	if m.Output() != 1 {
		t.Errorf("expected zero-filled mean 1, got %f", m.Output())
	}

	for _, x := range []float64{4, 4, 4} {
		m.AddSample(x)
	}
	if m.Output() != 4 {
		t.Errorf("expected mean 4, got %f", m.Output())
	}
	if !m.Filled() {
		t.Error("expected filled window")
	}

	m.AddSample(8)
	if m.Output() != 5 {
		t.Errorf("expected oldest sample to drop out, got %f", m.Output())
	}

	m.Reset()
	if m.Output() != 0 || m.Filled() {
		t.Errorf("expected cleared filter, got mean %f", m.Output())
	}
}

func TestMovingAverageWindowOne(t *testing.T) {
	m, _ := NewMovingAverage(1)
	for _, x := range []float64{3, -2, 7.5} {
		m.AddSample(x)
		if m.Output() != x {
			t.Errorf("expected %f, got %f", x, m.Output())
		}
	}
}

func TestMovingAverageInvalidWindow(t *testing.T) {
	if _, err := NewMovingAverage(0); !errors.Is(err, ErrWindow) {
		t.Errorf("expected ErrWindow, got %v", err)
	}
}

func TestButterworthCoefficients(t *testing.T) {
	c, err := ButterworthCoefficients(10, 1000)
	if err != nil {
		t.Fatal(err)
	}

	dcGain := (c.B0 + c.B1 + c.B2) / (1 - c.A1 - c.A2)
	if math.Abs(dcGain-1) > 1e-12 {
		t.Errorf("expected unity DC gain, got %f", dcGain)
	}
	if c.B1 != 2*c.B0 || c.B2 != c.B0 {
		t.Errorf("unexpected numerator %+v", c)
	}
}

func TestButterworthStepResponse(t *testing.T) {
	b, err := NewButterworth(5, 1000)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2000; i++ {
		b.AddSample(1)
	}
	if math.Abs(b.Output()-1) > 1e-6 {
		t.Errorf("expected settled output 1, got %f", b.Output())
	}

	b.Reset()
	if b.Output() != 0 {
		t.Errorf("expected reset output 0, got %f", b.Output())
	}
}

func TestButterworthAttenuatesHighFrequency(t *testing.T) {
	b, _ := NewButterworth(2, 1000)
	peak := 0.0
	for i := 0; i < 5000; i++ {
		b.AddSample(math.Sin(2 * math.Pi * 200 * float64(i) / 1000))
		if i > 1000 {
			peak = math.Max(peak, math.Abs(b.Output()))
		}
	}
	if peak > 0.01 {
		t.Errorf("expected 200 Hz to be attenuated, peak %f", peak)
	}
}

func TestButterworthInvalidCutoff(t *testing.T) {
	tests := []struct {
		name   string
		cutoff float64
		rate   float64
	}{
		{"zero", 0, 1000},
		{"negative", -1, 1000},
		{"nyquist", 500, 1000},
		{"above", 600, 1000},
		{"no rate", 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewButterworth(tt.cutoff, tt.rate); !errors.Is(err, ErrCutoff) {
				t.Errorf("expected ErrCutoff, got %v", err)
			}
		})
	}
}

func TestNew(t *testing.T) {
	f, err := New(None, 0, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	f.AddSample(2.5)
	if f.Output() != 2.5 {
		t.Errorf("expected passthrough, got %f", f.Output())
	}

	if _, err := New(MovingAverageKind, 0, 0, 0); err == nil {
		t.Error("expected window error")
	}
	if _, err := New(ButterworthKind, 0, 0, 1000); err == nil {
		t.Error("expected cutoff error")
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{None, MovingAverageKind, ButterworthKind} {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("parse %s: got %v, %v", k, got, err)
		}
	}
	if _, err := ParseKind("Bessel"); err == nil {
		t.Error("expected error for unknown kind")
	}
}
