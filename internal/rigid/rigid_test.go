package rigid

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/gaitsim/internal/spatial"
)

func TestWorldArena(t *testing.T) {
	w := NewWorld()
	pelvis, err := w.AddBody(Body{Name: "Pelvis", Position: r3.Vec{Z: 1}})
	require.NoError(t, err)
	femur, err := w.AddBody(Body{Name: "Femur"})
	require.NoError(t, err)

	_, err = w.AddBody(Body{Name: "Pelvis"})
	assert.ErrorIs(t, err, ErrDuplicateBody)
	_, err = w.AddBody(Body{Name: WorldName})
	assert.ErrorIs(t, err, ErrReservedName)

	id, err := w.Resolve("Femur")
	require.NoError(t, err)
	assert.Equal(t, femur, id)

	id, err = w.Resolve(WorldName)
	require.NoError(t, err)
	assert.True(t, id.IsWorld())

	_, err = w.Resolve("Tibia")
	assert.ErrorIs(t, err, ErrNoSuchBody)

	b, err := w.Body(pelvis)
	require.NoError(t, err)
	assert.Equal(t, spatial.Identity(), b.Orientation, "zero orientation normalized to identity")

	require.NoError(t, w.Destroy(femur))
	_, err = w.Pose(femur)
	assert.True(t, errors.Is(err, ErrBodyDestroyed))
	assert.Equal(t, 1, w.Len())
	assert.Equal(t, "Femur", w.BodyName(femur))
}

func TestPoseTransform(t *testing.T) {
	p := Pose{Position: r3.Vec{X: 1, Y: 2, Z: 3}, Orientation: spatial.FromAxisAngle(spatial.ZAxis, math.Pi/2)}

	world := p.Transform(r3.Vec{X: 1})
	assert.InDelta(t, 1.0, world.X, 1e-12)
	assert.InDelta(t, 3.0, world.Y, 1e-12)
	assert.InDelta(t, 3.0, world.Z, 1e-12)

	local := p.InverseTransform(world)
	assert.InDelta(t, 1.0, local.X, 1e-12)
	assert.InDelta(t, 0.0, local.Y, 1e-12)

	child := Pose{Position: r3.Vec{Y: 1}, Orientation: spatial.FromAxisAngle(spatial.XAxis, 0.3)}
	rel := p.Relative(p.Compose(child))
	assert.InDelta(t, 1.0, rel.Position.Y, 1e-12)
	assert.InDelta(t, child.Orientation.Imag, rel.Orientation.Imag, 1e-12)
}

func TestKinematicsRoundTrip(t *testing.T) {
	w := NewWorld()
	_, _ = w.AddBody(Body{Name: "a", Position: r3.Vec{X: 1}, Orientation: spatial.FromEuler(10, 0, 0)})
	_, _ = w.AddBody(Body{Name: "b", Position: r3.Vec{Y: 2}, LinearVelocity: r3.Vec{Z: 3}})

	k := NewKinematics(w)
	require.Equal(t, 14, k.StateDim())

	x := k.State()
	require.NoError(t, k.SetState(x))

	dx := k.Derive(x, 0)
	assert.Equal(t, 3.0, dx[PoseDim+2])

	assert.ErrorContains(t, k.SetState(x[:3]), "dimension mismatch")
}

func TestKinematicsSpin(t *testing.T) {
	w := NewWorld()
	id, _ := w.AddBody(Body{Name: "wheel", AngularVelocity: r3.Vec{Z: 1}})
	k := NewKinematics(w)

	x := k.State()
	dt := 1e-4
	for i := 0; i < 10000; i++ {
		dx := k.Derive(x, 0)
		for j := range x {
			x[j] += dt * dx[j]
		}
	}
	require.NoError(t, k.SetState(x))

	b, _ := w.Body(id)
	v := spatial.Rotate(b.Orientation, spatial.XAxis)
	assert.InDelta(t, 1.0, math.Atan2(v.Y, v.X), 1e-3)
}
