package marker

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/gaitsim/internal/rigid"
	"github.com/san-kum/gaitsim/internal/spatial"
)

// Frame is a marker resolved against its body's pose at one instant.
type Frame struct {
	Body  rigid.Pose
	Local rigid.Pose
}

func (f Frame) World() rigid.Pose { return f.Body.Compose(f.Local) }

func (f Frame) WorldPosition() r3.Vec { return f.Body.Transform(f.Local.Position) }

func (f Frame) WorldQuaternion() quat.Number {
	return spatial.Compose(f.Body.Orientation, f.Local.Orientation)
}

// WorldVector rotates a direction given in the marker frame into the
// world frame. No translation is applied.
func (f Frame) WorldVector(v r3.Vec) r3.Vec {
	return spatial.Rotate(f.WorldQuaternion(), v)
}

// Vector rotates a world direction into the marker frame.
func (f Frame) Vector(world r3.Vec) r3.Vec {
	return spatial.InverseRotate(f.WorldQuaternion(), world)
}

// LocalPoint maps a world point into the marker frame.
func (f Frame) LocalPoint(world r3.Vec) r3.Vec {
	return f.World().InverseTransform(world)
}

func (f Frame) WorldAxis(a Axis) r3.Vec {
	return f.WorldVector(a.unit())
}

func (f Frame) WorldBasis() (x, y, z r3.Vec) {
	return spatial.Basis(f.WorldQuaternion())
}
