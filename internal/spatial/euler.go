package spatial

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Euler angles are intrinsic XYZ (equivalently fixed-axis ZYX): X holds
// roll, Y pitch and Z yaw.

// FromEuler builds a quaternion from roll, pitch and yaw in degrees.
func FromEuler(x, y, z float64) quat.Number {
	return FromEulerRadians(DegToRad(x), DegToRad(y), DegToRad(z))
}

func FromEulerRadians(roll, pitch, yaw float64) quat.Number {
	syaw, cyaw := math.Sincos(0.5 * yaw)
	spitch, cpitch := math.Sincos(0.5 * pitch)
	sroll, croll := math.Sincos(0.5 * roll)

	cyawcpitch := cyaw * cpitch
	syawspitch := syaw * spitch
	cyawspitch := cyaw * spitch
	syawcpitch := syaw * cpitch

	return quat.Number{
		Real: cyawcpitch*croll + syawspitch*sroll,
		Imag: cyawcpitch*sroll - syawspitch*croll,
		Jmag: cyawspitch*croll + syawcpitch*sroll,
		Kmag: syawcpitch*croll - cyawspitch*sroll,
	}
}

// ToEuler returns roll, pitch and yaw in degrees.
func ToEuler(q quat.Number) r3.Vec {
	r := ToEulerRadians(q)
	return r3.Vec{X: RadToDeg(r.X), Y: RadToDeg(r.Y), Z: RadToDeg(r.Z)}
}

// ToEulerRadians returns roll, pitch and yaw in radians. At gimbal lock
// (|pitch| at 90 degrees) roll is pinned to zero and the whole rotation
// about the vertical is reported as yaw.
func ToEulerRadians(q quat.Number) r3.Vec {
	q00 := q.Real * q.Real
	q11 := q.Imag * q.Imag
	q22 := q.Jmag * q.Jmag
	q33 := q.Kmag * q.Kmag

	r11 := q00 + q11 - q22 - q33
	r21 := 2 * (q.Imag*q.Jmag + q.Real*q.Kmag)
	r31 := 2 * (q.Imag*q.Kmag - q.Real*q.Jmag)
	r32 := 2 * (q.Jmag*q.Kmag + q.Real*q.Imag)
	r33 := q00 - q11 - q22 + q33

	tmp := math.Abs(r31)
	if tmp > 1-DBLEpsilon {
		r12 := 2 * (q.Imag*q.Jmag - q.Real*q.Kmag)
		r13 := 2 * (q.Imag*q.Kmag + q.Real*q.Jmag)
		return r3.Vec{
			X: 0,
			Y: -(math.Pi / 2) * r31 / tmp,
			Z: math.Atan2(-r12, -r31*r13),
		}
	}

	return r3.Vec{
		X: math.Atan2(r32, r33),
		Y: math.Asin(-r31),
		Z: math.Atan2(r21, r11),
	}
}
