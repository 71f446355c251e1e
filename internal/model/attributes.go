package model

import (
	"github.com/san-kum/gaitsim/internal/attr"
	"github.com/san-kum/gaitsim/internal/strap"
)

// Elements serializes the model at its current pose. Bodies are written
// with world positions and orientations so the result rebuilds without
// deferred placement.
func (m *Model) Elements() Elements {
	var el Elements
	for _, id := range m.world.IDs() {
		b, _ := m.world.Body(id)
		el.Bodies = append(el.Bodies, attr.Set{
			"ID":              b.Name,
			"Position":        attr.FormatVector(b.Position),
			"Quaternion":      attr.FormatQuaternion(b.Orientation),
			"LinearVelocity":  attr.FormatVector(b.LinearVelocity),
			"AngularVelocity": attr.FormatVector(b.AngularVelocity),
		})
	}
	for _, mk := range m.markerOrder {
		set := mk.Attributes()
		delete(set, "WorldPosition")
		delete(set, "WorldQuaternion")
		el.Markers = append(el.Markers, set)
	}
	for _, s := range m.straps {
		el.Straps = append(el.Straps, strap.Attributes(s))
	}
	for _, j := range m.joints {
		el.Joints = append(el.Joints, j.Attributes())
	}
	for _, set := range m.loadSets {
		el.Loads = append(el.Loads, set.Clone())
	}
	return el
}
