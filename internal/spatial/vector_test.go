package spatial

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestUnitChecked(t *testing.T) {
	u, err := UnitChecked(r3.Vec{X: 3, Y: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.X != 0.6 || u.Y != 0.8 {
		t.Errorf("expected (0.6, 0.8, 0), got %v", u)
	}

	if _, err := UnitChecked(r3.Vec{}); !errors.Is(err, ErrZeroVector) {
		t.Errorf("expected ErrZeroVector, got %v", err)
	}
	if _, err := UnitChecked(r3.Vec{X: 1e-14}); !errors.Is(err, ErrZeroVector) {
		t.Errorf("expected ErrZeroVector for tiny vector, got %v", err)
	}
}

func TestPerpendicular(t *testing.T) {
	for _, v := range []r3.Vec{XAxis, ZAxis, {X: 1, Y: 2, Z: 3}, {X: -1, Y: 0.5}} {
		p := Perpendicular(v)
		if d := r3.Dot(v, p); d != 0 {
			t.Errorf("perpendicular of %v not orthogonal: dot %g", v, d)
		}
		if r3.Norm(p) == 0 {
			t.Errorf("perpendicular of %v is zero", v)
		}
	}
}
