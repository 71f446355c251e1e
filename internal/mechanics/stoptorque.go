package mechanics

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/gaitsim/internal/filter"
)

// StopTorque tracks the torque a hinge carries about its axis and the
// running mean over the last window samples.
type StopTorque struct {
	window int
	avg    *filter.MovingAverage
	torque float64
	mean   float64
}

// NewStopTorque buffers window samples. A window below 2 disables the
// buffer and the mean follows the instantaneous torque.
func NewStopTorque(window int) *StopTorque {
	s := &StopTorque{window: window}
	if window >= 2 {
		s.avg, _ = filter.NewMovingAverage(window)
	}
	return s
}

// Update transfers w to the anchor and projects it onto axis. Before the
// first integration step (t <= 0) the torque is zero and the buffer is
// left untouched.
func (s *StopTorque) Update(t float64, w Wrench, anchor, axis r3.Vec) {
	if t <= 0 {
		s.torque = 0
		return
	}
	s.Push(AxialTorque(w.TransferTo(anchor).Torque, axis))
}

// Push records one axial torque sample.
func (s *StopTorque) Push(torque float64) {
	s.torque = torque
	if s.avg == nil {
		s.mean = torque
		return
	}
	s.avg.AddSample(torque)
	s.mean = s.avg.Output()
}

func (s *StopTorque) Torque() float64 { return s.torque }
func (s *StopTorque) Mean() float64   { return s.mean }
func (s *StopTorque) Window() int     { return s.window }

// TestLimits returns -1 when the mean is below low, +1 when above high and
// 0 otherwise.
func (s *StopTorque) TestLimits(low, high float64) int {
	switch {
	case s.mean < low:
		return -1
	case s.mean > high:
		return 1
	}
	return 0
}

func (s *StopTorque) Reset() {
	s.torque, s.mean = 0, 0
	if s.avg != nil {
		s.avg.Reset()
	}
}
