package metrics

import (
	"math"

	"github.com/san-kum/gaitsim/internal/dynamo"
)

// Within is the fraction of samples whose channel magnitude stays at or
// below threshold. An unobserved channel scores 1.
type Within struct {
	name       string
	channel    string
	threshold  float64
	violations int
	samples    int
}

func NewWithin(channel string, threshold float64) *Within {
	return &Within{
		name:      channel + ".within",
		channel:   channel,
		threshold: threshold,
	}
}

func (w *Within) Name() string {
	return w.name
}

func (w *Within) Observe(s dynamo.Sample) {
	v, ok := s.Get(w.channel)
	if !ok {
		return
	}
	w.samples++
	if math.Abs(v) > w.threshold {
		w.violations++
	}
}

func (w *Within) Value() float64 {
	if w.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(w.violations)/float64(w.samples)
}

func (w *Within) Reset() {
	w.violations = 0
	w.samples = 0
}

// Drift is the largest departure of a channel from its first sample,
// relative to that sample when it is non-zero and absolute otherwise.
type Drift struct {
	name     string
	channel  string
	initial  float64
	maxDrift float64
	samples  int
}

func NewDrift(channel string) *Drift {
	return &Drift{name: channel + ".drift", channel: channel}
}

func (d *Drift) Name() string { return d.name }

func (d *Drift) Observe(s dynamo.Sample) {
	v, ok := s.Get(d.channel)
	if !ok {
		return
	}
	if d.samples == 0 {
		d.initial = v
	}
	d.samples++

	drift := math.Abs(v - d.initial)
	if d.initial != 0 {
		drift /= math.Abs(d.initial)
	}
	d.maxDrift = math.Max(d.maxDrift, drift)
}

func (d *Drift) Value() float64 {
	return d.maxDrift
}

func (d *Drift) Reset() {
	d.initial = 0
	d.maxDrift = 0
	d.samples = 0
}
