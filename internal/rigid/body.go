// Package rigid holds the bodies that markers, paths and joints refer to.
//
// Bodies live in a [World] arena and are referred to by [BodyID] handles.
// Nothing outside the arena owns a body; handles are resolved on each
// access so a destroyed body is reported instead of dereferenced.
package rigid

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/gaitsim/internal/spatial"
)

// Body is a kinematic rigid body. Velocities are expressed in the world
// frame.
type Body struct {
	Name            string
	Position        r3.Vec
	Orientation     quat.Number
	LinearVelocity  r3.Vec
	AngularVelocity r3.Vec
}

func (b *Body) Pose() Pose {
	return Pose{Position: b.Position, Orientation: b.Orientation}
}

// Pose is a rigid transform from a local frame into the world frame.
type Pose struct {
	Position    r3.Vec
	Orientation quat.Number
}

// IdentityPose is the world frame itself.
func IdentityPose() Pose {
	return Pose{Orientation: spatial.Identity()}
}

// Transform maps a point given in the local frame to world coordinates.
func (p Pose) Transform(local r3.Vec) r3.Vec {
	return r3.Add(spatial.Rotate(p.Orientation, local), p.Position)
}

// InverseTransform maps a world point into the local frame.
func (p Pose) InverseTransform(world r3.Vec) r3.Vec {
	return spatial.InverseRotate(p.Orientation, r3.Sub(world, p.Position))
}

// Rotate maps a local direction to the world frame.
func (p Pose) Rotate(local r3.Vec) r3.Vec {
	return spatial.Rotate(p.Orientation, local)
}

// InverseRotate maps a world direction into the local frame.
func (p Pose) InverseRotate(world r3.Vec) r3.Vec {
	return spatial.InverseRotate(p.Orientation, world)
}

// Compose returns the pose of a frame given relative to p.
func (p Pose) Compose(local Pose) Pose {
	return Pose{
		Position:    p.Transform(local.Position),
		Orientation: spatial.Compose(p.Orientation, local.Orientation),
	}
}

// Relative returns the pose of world-frame pose w expressed in p.
func (p Pose) Relative(w Pose) Pose {
	return Pose{
		Position:    p.InverseTransform(w.Position),
		Orientation: spatial.RotationBetween(p.Orientation, w.Orientation),
	}
}
