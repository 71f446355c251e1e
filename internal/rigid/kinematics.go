package rigid

import (
	"fmt"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/gaitsim/internal/dynamo"
	"github.com/san-kum/gaitsim/internal/spatial"
)

// PoseDim is the number of state entries per body: position then
// orientation (w, x, y, z).
const PoseDim = 7

// Kinematics advances body poses under their prescribed world-frame
// velocities. It stands in for the constraint solver when no dynamics are
// being solved.
type Kinematics struct {
	world *World
	ids   []BodyID
}

func NewKinematics(w *World) *Kinematics {
	return &Kinematics{world: w, ids: w.IDs()}
}

func (k *Kinematics) StateDim() int { return PoseDim * len(k.ids) }

// State packs the current poses.
func (k *Kinematics) State() dynamo.State {
	x := make(dynamo.State, k.StateDim())
	for i, id := range k.ids {
		b, err := k.world.Body(id)
		if err != nil {
			continue
		}
		o := i * PoseDim
		x[o], x[o+1], x[o+2] = b.Position.X, b.Position.Y, b.Position.Z
		q := b.Orientation
		x[o+3], x[o+4], x[o+5], x[o+6] = q.Real, q.Imag, q.Jmag, q.Kmag
	}
	return x
}

// SetState commits packed poses back to the bodies, renormalizing each
// orientation.
func (k *Kinematics) SetState(x dynamo.State) error {
	if len(x) != k.StateDim() {
		return fmt.Errorf("%w: got %d, want %d", dynamo.ErrDimensionMismatch, len(x), k.StateDim())
	}
	if !x.IsValid() {
		return dynamo.ErrInvalidState
	}
	for i, id := range k.ids {
		b, err := k.world.Body(id)
		if err != nil {
			return err
		}
		o := i * PoseDim
		b.Position = r3.Vec{X: x[o], Y: x[o+1], Z: x[o+2]}
		b.Orientation = spatial.Normalize(quat.Number{Real: x[o+3], Imag: x[o+4], Jmag: x[o+5], Kmag: x[o+6]})
	}
	return nil
}

// Derive returns dx/dt: the linear velocity and dq/dt = 0.5 * (0, w) * q.
func (k *Kinematics) Derive(x dynamo.State, t float64) dynamo.State {
	dx := make(dynamo.State, len(x))
	for i, id := range k.ids {
		b, err := k.world.Body(id)
		if err != nil {
			continue
		}
		o := i * PoseDim
		if o+PoseDim > len(x) {
			break
		}
		dx[o], dx[o+1], dx[o+2] = b.LinearVelocity.X, b.LinearVelocity.Y, b.LinearVelocity.Z

		q := quat.Number{Real: x[o+3], Imag: x[o+4], Jmag: x[o+5], Kmag: x[o+6]}
		w := quat.Number{Imag: b.AngularVelocity.X, Jmag: b.AngularVelocity.Y, Kmag: b.AngularVelocity.Z}
		dq := quat.Scale(0.5, quat.Mul(w, q))
		dx[o+3], dx[o+4], dx[o+5], dx[o+6] = dq.Real, dq.Imag, dq.Jmag, dq.Kmag
	}
	return dx
}
