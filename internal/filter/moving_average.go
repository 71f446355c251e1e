package filter

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// MovingAverage is the mean of a ring of the last window samples. The ring
// starts zero-filled, so the output ramps up over the first window samples.
type MovingAverage struct {
	buf   []float64
	index int
	mean  float64
	count int
}

func NewMovingAverage(window int) (*MovingAverage, error) {
	if window < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrWindow, window)
	}
	return &MovingAverage{buf: make([]float64, window)}, nil
}

func (m *MovingAverage) AddSample(x float64) {
	m.buf[m.index] = x
	m.index = (m.index + 1) % len(m.buf)
	if m.count < len(m.buf) {
		m.count++
	}
	m.mean = floats.Sum(m.buf) / float64(len(m.buf))
}

func (m *MovingAverage) Output() float64 { return m.mean }

func (m *MovingAverage) Window() int { return len(m.buf) }

// Filled reports whether window samples have been seen since the last reset.
func (m *MovingAverage) Filled() bool { return m.count == len(m.buf) }

func (m *MovingAverage) Reset() {
	for i := range m.buf {
		m.buf[i] = 0
	}
	m.index = 0
	m.mean = 0
	m.count = 0
}
