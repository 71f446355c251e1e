// Package marker implements named reference frames fixed to a body or to
// the world.
package marker

import (
	"fmt"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/gaitsim/internal/rigid"
	"github.com/san-kum/gaitsim/internal/spatial"
)

// Axis names one of a marker's local axes.
type Axis int

const (
	X Axis = iota
	Y
	Z
)

func (a Axis) unit() r3.Vec {
	switch a {
	case Y:
		return spatial.YAxis
	case Z:
		return spatial.ZAxis
	}
	return spatial.XAxis
}

func (a Axis) String() string {
	return [...]string{"X", "Y", "Z"}[a]
}

// Marker is an oriented point. Position and quaternion are local to the
// owning body, or world coordinates when the body is rigid.WorldID. The
// body is held by handle and resolved through frames on every world
// query.
type Marker struct {
	name       string
	body       rigid.BodyID
	frames     rigid.Frames
	position   r3.Vec
	quaternion quat.Number
}

// New builds a marker with a normalized orientation.
func New(name string, frames rigid.Frames, body rigid.BodyID, position r3.Vec, q quat.Number) *Marker {
	return &Marker{
		name:       name,
		body:       body,
		frames:     frames,
		position:   position,
		quaternion: spatial.Normalize(q),
	}
}

func (m *Marker) Name() string            { return m.name }
func (m *Marker) Body() rigid.BodyID      { return m.body }
func (m *Marker) BodyName() string        { return m.frames.BodyName(m.body) }
func (m *Marker) Position() r3.Vec        { return m.position }
func (m *Marker) Quaternion() quat.Number { return m.quaternion }

// Local is the marker frame relative to its body.
func (m *Marker) Local() rigid.Pose {
	return rigid.Pose{Position: m.position, Orientation: m.quaternion}
}

// Axis returns the marker axis a expressed in the body frame.
func (m *Marker) Axis(a Axis) r3.Vec {
	return spatial.Rotate(m.quaternion, a.unit())
}

// Basis returns the marker axes expressed in the body frame.
func (m *Marker) Basis() (x, y, z r3.Vec) {
	return spatial.Basis(m.quaternion)
}

// Resolve snapshots the owning body's current pose.
func (m *Marker) Resolve() (Frame, error) {
	body, err := m.frames.Pose(m.body)
	if err != nil {
		return Frame{}, fmt.Errorf("marker %s: %w", m.name, err)
	}
	return Frame{Body: body, Local: m.Local()}, nil
}

func (m *Marker) WorldPosition() (r3.Vec, error) {
	f, err := m.Resolve()
	if err != nil {
		return r3.Vec{}, err
	}
	return f.WorldPosition(), nil
}

func (m *Marker) WorldQuaternion() (quat.Number, error) {
	f, err := m.Resolve()
	if err != nil {
		return quat.Number{}, err
	}
	return f.WorldQuaternion(), nil
}

// SetLocal replaces the marker's local frame. Only authoring code calls
// this; stepping never mutates markers.
func (m *Marker) SetLocal(position r3.Vec, q quat.Number) {
	m.position = position
	m.quaternion = spatial.Normalize(q)
}
