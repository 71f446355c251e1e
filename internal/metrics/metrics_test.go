package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/gaitsim/internal/attr"
	"github.com/san-kum/gaitsim/internal/dynamo"
	"github.com/san-kum/gaitsim/internal/model"
)

func feed(m dynamo.Metric, channel string, values ...float64) {
	for i, v := range values {
		m.Observe(dynamo.Sample{Time: float64(i) * 0.1, Names: []string{channel}, Values: []float64{v}})
	}
}

func TestPeak(t *testing.T) {
	p := NewPeak("Knee.stop_torque")
	feed(p, "Knee.stop_torque", 1, -4, 3, 4)

	if p.Name() != "Knee.stop_torque.peak" {
		t.Errorf("unexpected name %q", p.Name())
	}
	if p.Value() != 4 {
		t.Errorf("expected peak 4, got %v", p.Value())
	}
	if math.Abs(p.Time()-0.1) > 1e-15 {
		t.Errorf("expected peak at t=0.1, got %v", p.Time())
	}

	p.Reset()
	if p.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestExcursion(t *testing.T) {
	e := NewExcursion("Calf.length")
	if e.Value() != 0 {
		t.Error("expected zero before any sample")
	}
	feed(e, "Calf.length", 0.6, 0.55, 0.7, 0.65)
	if math.Abs(e.Value()-0.15) > 1e-12 {
		t.Errorf("expected excursion 0.15, got %v", e.Value())
	}
}

func TestMeanAbs(t *testing.T) {
	m := NewMeanAbs("x")
	feed(m, "x", -1, 2, -3)
	if m.Value() != 2 {
		t.Errorf("expected 2, got %v", m.Value())
	}
}

func TestWithin(t *testing.T) {
	w := NewWithin("s", 10)
	if w.Value() != 1 {
		t.Error("expected 1 with no samples")
	}
	feed(w, "s", 1, -11, 5, 12)
	if w.Value() != 0.5 {
		t.Errorf("expected 0.5, got %v", w.Value())
	}
}

func TestDrift(t *testing.T) {
	d := NewDrift("Quad.length")
	feed(d, "Quad.length", 2, 2.5, 1.8)
	if math.Abs(d.Value()-0.25) > 1e-12 {
		t.Errorf("expected 0.25, got %v", d.Value())
	}

	z := NewDrift("angle")
	feed(z, "angle", 0, 0.3, -0.1)
	if math.Abs(z.Value()-0.3) > 1e-12 {
		t.Errorf("expected absolute drift 0.3, got %v", z.Value())
	}
}

func TestMissingChannelIsIgnored(t *testing.T) {
	p := NewPeak("Hip.stop_torque")
	feed(p, "Knee.stop_torque", 100)
	if p.Value() != 0 {
		t.Errorf("expected 0, got %v", p.Value())
	}
}

func TestForModel(t *testing.T) {
	m, err := model.Build(model.Elements{
		Bodies: []attr.Set{
			{"ID": "Shank", "Position": "0 0 0.5"},
			{"ID": "Foot", "Position": "0 0 0.2"},
		},
		Markers: []attr.Set{
			{"ID": "Knee", "BodyID": "World", "Position": "0 0 1", "Quaternion": "1 0 0 0"},
			{"ID": "Heel", "BodyID": "Foot", "Position": "0 0 0", "Quaternion": "1 0 0 0"},
			{"ID": "AnkleShank", "BodyID": "Shank", "Position": "0 0 -0.3", "Quaternion": "1 0 0 0"},
			{"ID": "AnkleFoot", "BodyID": "Foot", "Position": "0 0 0", "Quaternion": "1 0 0 0"},
		},
		Straps: []attr.Set{
			{"ID": "Calf", "Type": "TwoPoint", "OriginMarkerID": "Knee", "InsertionMarkerID": "Heel"},
		},
		Joints: []attr.Set{
			{
				"ID": "Ankle", "Type": "Fixed", "Body1MarkerID": "AnkleShank", "Body2MarkerID": "AnkleFoot",
				"StressCalculationType": "Beam", "StressLimit": "1e6",
				"StressBitmapPixelSize": "0.01 0.01", "StressBitmapDimensions": "2 2", "StressBitmap": "11 11",
			},
		},
	}, model.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	var names []string
	for _, metric := range ForModel(m) {
		names = append(names, metric.Name())
	}
	want := []string{
		"Calf.length.excursion",
		"Ankle.stress_max.peak",
		"Ankle.stress_min.peak",
		"Ankle.lowpass_stress_max.within",
	}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("metric %d: got %q, want %q", i, names[i], want[i])
		}
	}
}
