package rigid

import "gonum.org/v1/gonum/spatial/r3"

// Feedback is the constraint reaction a joint applies to its two bodies,
// each force and torque acting at that body's centre of mass. It is only
// meaningful after a completed integration step.
type Feedback struct {
	F1, T1 r3.Vec
	F2, T2 r3.Vec
}

// Negated returns the equal and opposite reaction on body 2.
func Negated(f, t r3.Vec) Feedback {
	return Feedback{F1: f, T1: t, F2: r3.Scale(-1, f), T2: r3.Scale(-1, t)}
}
