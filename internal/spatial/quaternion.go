package spatial

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// SlerpThreshold is the cosine above which Slerp falls back to a
// normalized linear interpolation.
const SlerpThreshold = 0.9995

func Identity() quat.Number { return quat.Number{Real: 1} }

// Normalize returns q scaled to unit magnitude. Loaded orientations are
// often slightly denormal. The zero quaternion maps to the identity.
func Normalize(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if n == 0 || math.IsNaN(n) {
		return Identity()
	}
	return quat.Scale(1/n, q)
}

// Compose returns the rotation a followed by the body-frame rotation b.
func Compose(a, b quat.Number) quat.Number { return quat.Mul(a, b) }

func Conjugate(q quat.Number) quat.Number { return quat.Conj(q) }

// VectorPart returns the imaginary components of q.
func VectorPart(q quat.Number) r3.Vec {
	return r3.Vec{X: q.Imag, Y: q.Jmag, Z: q.Kmag}
}

// Rotate applies the rotation q to v using the expanded sandwich product,
// avoiding two full quaternion multiplications.
func Rotate(q quat.Number, v r3.Vec) r3.Vec {
	wx := q.Real * q.Imag
	wy := q.Real * q.Jmag
	wz := q.Real * q.Kmag
	xy := q.Imag * q.Jmag
	xz := q.Imag * q.Kmag
	yz := q.Jmag * q.Kmag

	rx := 2 * (v.Y*(-wz+xy) + v.Z*(wy+xz))
	ry := 2 * (v.X*(wz+xy) + v.Z*(-wx+yz))
	rz := 2 * (v.X*(-wy+xz) + v.Y*(wx+yz))

	ww := q.Real * q.Real
	xx := q.Imag * q.Imag
	yy := q.Jmag * q.Jmag
	zz := q.Kmag * q.Kmag

	rx += v.X * (ww + xx - yy - zz)
	ry += v.Y * (ww - xx + yy - zz)
	rz += v.Z * (ww - xx - yy + zz)

	return r3.Vec{X: rx, Y: ry, Z: rz}
}

// InverseRotate applies the inverse of the unit rotation q to v.
func InverseRotate(q quat.Number, v r3.Vec) r3.Vec {
	return Rotate(quat.Conj(q), v)
}

// FromAxisAngle returns the rotation of angle radians about axis. The axis
// is normalized first; a zero axis yields the identity.
func FromAxisAngle(axis r3.Vec, angle float64) quat.Number {
	u, err := UnitChecked(axis)
	if err != nil {
		return Identity()
	}
	sin, cos := math.Sincos(angle / 2)
	return quat.Number{Real: cos, Imag: u.X * sin, Jmag: u.Y * sin, Kmag: u.Z * sin}
}

// ToAxisAngle returns the rotation axis and angle in radians. Rotations too
// small to define an axis report angle 0 about X.
func ToAxisAngle(q quat.Number) (r3.Vec, float64) {
	if q.Real > 1 {
		q = Normalize(q)
	}
	angle := 2 * math.Acos(q.Real)
	s := math.Sqrt(1 - q.Real*q.Real)
	if s < DBLEpsilon {
		return XAxis, 0
	}
	return r3.Scale(1/s, VectorPart(q)), angle
}

// Angle returns the rotation angle of q in radians, in [0, 2pi).
func Angle(q quat.Number) float64 {
	if q.Real <= -1 || q.Real >= 1 {
		return 0
	}
	return 2 * math.Acos(q.Real)
}

// FindRotation returns the unit quaternion rotating v1 onto v2 along the
// shortest arc. The vectors need not have equal length. Antiparallel
// inputs rotate half a turn about an arbitrary perpendicular axis.
func FindRotation(v1, v2 r3.Vec) quat.Number {
	w := math.Sqrt(r3.Norm2(v1)*r3.Norm2(v2)) + r3.Dot(v1, v2)
	if w < DBLEpsilon {
		return FromAxisAngle(Perpendicular(v1), math.Pi)
	}
	c := r3.Cross(v1, v2)
	return Normalize(quat.Number{Real: w, Imag: c.X, Jmag: c.Y, Kmag: c.Z})
}

// RotationBetween returns q such that qb = qa * q.
func RotationBetween(qa, qb quat.Number) quat.Number {
	return quat.Mul(quat.Conj(qa), qb)
}

// AngleBetween returns the signed angle in radians separating two unit
// orientations, wrapped into [-pi, pi].
func AngleBetween(qa, qb quat.Number) float64 {
	v := qa.Real*qb.Real + qa.Imag*qb.Imag + qa.Jmag*qb.Jmag + qa.Kmag*qb.Kmag
	if v <= -1 || v >= 1 {
		return 0
	}
	angle := 2 * math.Acos(v)
	if angle > math.Pi {
		angle -= 2 * math.Pi
	}
	return angle
}

// Slerp interpolates between q0 (t=0) and q1 (t=1) using SlerpThreshold.
func Slerp(q0, q1 quat.Number, t float64) quat.Number {
	return SlerpWithThreshold(q0, q1, t, SlerpThreshold)
}

// SlerpWithThreshold interpolates along the shorter great arc. When the
// inputs are closer than threshold (cosine of the half angle) the result
// is a normalized linear interpolation.
func SlerpWithThreshold(q0, q1 quat.Number, t, threshold float64) quat.Number {
	q0 = Normalize(q0)
	q1 = Normalize(q1)

	dot := q0.Real*q1.Real + q0.Imag*q1.Imag + q0.Jmag*q1.Jmag + q0.Kmag*q1.Kmag
	if dot < 0 {
		q1 = quat.Scale(-1, q1)
		dot = -dot
	}

	if dot > threshold {
		return Normalize(quat.Add(q0, quat.Scale(t, quat.Sub(q1, q0))))
	}

	dot = math.Min(dot, 1)
	theta := math.Acos(dot) * t
	q2 := Normalize(quat.Sub(q1, quat.Scale(dot, q0)))
	sin, cos := math.Sincos(theta)
	return quat.Add(quat.Scale(cos, q0), quat.Scale(sin, q2))
}

func IsUnit(q quat.Number, tol float64) bool {
	return math.Abs(quat.Abs(q)-1) <= tol
}
