// Package filter implements the streaming low-pass filters applied to
// per-step mechanical quantities.
package filter

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrWindow = errors.New("filter: window must be at least 1")
	ErrCutoff = errors.New("filter: cutoff must lie between 0 and the Nyquist frequency")
)

// Filter consumes one sample per simulation step.
type Filter interface {
	AddSample(x float64)
	Output() float64
	Reset()
}

type Kind int

const (
	None Kind = iota
	MovingAverageKind
	ButterworthKind
)

var kindNames = map[Kind]string{
	None:              "NoLowPass",
	MovingAverageKind: "MovingAverageLowPass",
	ButterworthKind:   "Butterworth2ndOrderLowPass",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return k, nil
		}
	}
	return None, fmt.Errorf("unknown low pass type: %s", s)
}

// New builds a filter of the given kind. window applies to moving averages,
// cutoff and sampleRate (Hz) to the Butterworth filter.
func New(kind Kind, window int, cutoff, sampleRate float64) (Filter, error) {
	switch kind {
	case None:
		return &Passthrough{}, nil
	case MovingAverageKind:
		return NewMovingAverage(window)
	case ButterworthKind:
		return NewButterworth(cutoff, sampleRate)
	default:
		return nil, fmt.Errorf("unknown low pass type: %v", kind)
	}
}

// Passthrough reports the latest sample unchanged.
type Passthrough struct {
	last float64
}

func (p *Passthrough) AddSample(x float64) { p.last = x }
func (p *Passthrough) Output() float64     { return p.last }
func (p *Passthrough) Reset()              { p.last = 0 }
