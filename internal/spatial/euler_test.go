package spatial

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestEulerRoundTrip(t *testing.T) {
	tests := []r3.Vec{
		{},
		{X: 10, Y: 20, Z: 30},
		{X: -170, Y: 45, Z: 179},
		{X: 90, Y: -60, Z: -90},
		{X: 0.001, Y: 89, Z: 12},
		{X: -45, Y: -89, Z: 0},
	}

	for _, v := range tests {
		got := ToEuler(FromEuler(v.X, v.Y, v.Z))
		if math.Abs(got.X-v.X) > 1e-6 || math.Abs(got.Y-v.Y) > 1e-6 || math.Abs(got.Z-v.Z) > 1e-6 {
			t.Errorf("round trip of %v: got %v", v, got)
		}
	}
}

func TestEulerGimbalLock(t *testing.T) {
	s := math.Sqrt(0.5)
	q := quat.Number{Real: s, Jmag: s}
	got := ToEuler(q)

	if got.X != 0 {
		t.Errorf("expected roll pinned to 0 at gimbal lock, got %f", got.X)
	}
	if math.Abs(got.Y-90) > 1e-6 {
		t.Errorf("expected pitch 90, got %f", got.Y)
	}

	back := FromEuler(got.X, got.Y, got.Z)
	for _, v := range []r3.Vec{XAxis, YAxis, ZAxis} {
		a, b := Rotate(q, v), Rotate(back, v)
		if r3.Norm(r3.Sub(a, b)) > 1e-6 {
			t.Errorf("gimbal lock angles do not reproduce rotation: %v vs %v", a, b)
		}
	}
}

func TestEulerYawOnly(t *testing.T) {
	q := FromEuler(0, 0, 90)
	v := Rotate(q, XAxis)
	if math.Abs(v.Y-1) > 1e-12 {
		t.Errorf("expected yaw to turn X onto Y, got %v", v)
	}
}
