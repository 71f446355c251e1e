package spatial

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// DBLEpsilon is the difference between 1 and the next representable float64.
const DBLEpsilon = 2.220446049250313e-16

// DegenerateLength is the length below which a vector has no usable direction.
const DegenerateLength = 1e-12

var ErrZeroVector = errors.New("spatial: zero-length vector has no direction")

var (
	XAxis = r3.Vec{X: 1}
	YAxis = r3.Vec{Y: 1}
	ZAxis = r3.Vec{Z: 1}
)

// UnitChecked returns v scaled to unit length, or ErrZeroVector when v is
// too short to define a direction.
func UnitChecked(v r3.Vec) (r3.Vec, error) {
	n := r3.Norm(v)
	if n < DegenerateLength || math.IsNaN(n) {
		return r3.Vec{}, ErrZeroVector
	}
	return r3.Vec{X: v.X / n, Y: v.Y / n, Z: v.Z / n}, nil
}

func DegToRad(d float64) float64 { return d * math.Pi / 180 }
func RadToDeg(r float64) float64 { return r * 180 / math.Pi }

// Perpendicular returns a vector orthogonal to v. It is not normalized.
func Perpendicular(v r3.Vec) r3.Vec {
	if math.Abs(v.Z) > DBLEpsilon {
		return r3.Vec{X: 0, Y: -v.Z, Z: v.Y}
	}
	return r3.Vec{X: -v.Y, Y: v.X, Z: 0}
}

// Project returns the component of v along u.
func Project(v, u r3.Vec) r3.Vec {
	u = r3.Unit(u)
	return r3.Scale(r3.Dot(v, u), u)
}

func IsFinite(v r3.Vec) bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
