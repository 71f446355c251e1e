// Package mechanics derives continuum quantities from joint reaction
// feedback: the axial stop torque of a hinge and the stress distribution
// over the cross-section of a fixed joint.
package mechanics

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/gaitsim/internal/spatial"
)

var (
	ErrEmptySection    = errors.New("mechanics: cross-section has no active cells")
	ErrSingularSection = errors.New("mechanics: cross-section second moments are singular")
	ErrBitmap          = errors.New("mechanics: malformed cross-section bitmap")
)

// Wrench is a force and torque pair acting at Point.
type Wrench struct {
	Point  r3.Vec
	Force  r3.Vec
	Torque r3.Vec
}

// TransferTo expresses the same load about p:
// torque' = torque - (p - Point) x force.
func (w Wrench) TransferTo(p r3.Vec) Wrench {
	offset := r3.Sub(p, w.Point)
	return Wrench{
		Point:  p,
		Force:  w.Force,
		Torque: r3.Sub(w.Torque, r3.Cross(offset, w.Force)),
	}
}

// Local rotates force and torque into the frame with world orientation q.
func (w Wrench) Local(q quat.Number) Wrench {
	return Wrench{
		Point:  w.Point,
		Force:  spatial.InverseRotate(q, w.Force),
		Torque: spatial.InverseRotate(q, w.Torque),
	}
}

// AxialTorque projects torque onto axis as |T| (axis . T/|T|). A zero
// torque projects to exactly zero.
func AxialTorque(torque, axis r3.Vec) float64 {
	mag := r3.Norm(torque)
	if mag == 0 || math.IsNaN(mag) {
		return 0
	}
	return mag * r3.Dot(axis, r3.Scale(1/mag, torque))
}
