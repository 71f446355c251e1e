// Package metrics summarizes report channels over a run.
package metrics

import (
	"math"

	"github.com/san-kum/gaitsim/internal/dynamo"
)

// Peak is the largest absolute value a channel reaches.
type Peak struct {
	name    string
	channel string
	peak    float64
	at      float64
}

func NewPeak(channel string) *Peak {
	return &Peak{name: channel + ".peak", channel: channel}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(s dynamo.Sample) {
	v, ok := s.Get(p.channel)
	if !ok {
		return
	}
	if a := math.Abs(v); a > p.peak {
		p.peak = a
		p.at = s.Time
	}
}

func (p *Peak) Value() float64 { return p.peak }

// Time is when the peak was first reached.
func (p *Peak) Time() float64 { return p.at }

func (p *Peak) Reset() {
	p.peak = 0
	p.at = 0
}

// Excursion is max - min of a channel, e.g. the working range of a strap.
type Excursion struct {
	name     string
	channel  string
	min, max float64
	samples  int
}

func NewExcursion(channel string) *Excursion {
	return &Excursion{name: channel + ".excursion", channel: channel}
}

func (e *Excursion) Name() string { return e.name }

func (e *Excursion) Observe(s dynamo.Sample) {
	v, ok := s.Get(e.channel)
	if !ok {
		return
	}
	if e.samples == 0 {
		e.min, e.max = v, v
	}
	e.min = math.Min(e.min, v)
	e.max = math.Max(e.max, v)
	e.samples++
}

func (e *Excursion) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.max - e.min
}

func (e *Excursion) Reset() {
	e.min, e.max = 0, 0
	e.samples = 0
}

// MeanAbs is the mean absolute value of a channel.
type MeanAbs struct {
	name    string
	channel string
	sum     float64
	samples int
}

func NewMeanAbs(channel string) *MeanAbs {
	return &MeanAbs{name: channel + ".mean_abs", channel: channel}
}

func (m *MeanAbs) Name() string { return m.name }

func (m *MeanAbs) Observe(s dynamo.Sample) {
	v, ok := s.Get(m.channel)
	if !ok {
		return
	}
	m.sum += math.Abs(v)
	m.samples++
}

func (m *MeanAbs) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanAbs) Reset() {
	m.sum = 0
	m.samples = 0
}
