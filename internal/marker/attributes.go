package marker

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/gaitsim/internal/attr"
	"github.com/san-kum/gaitsim/internal/rigid"
	"github.com/san-kum/gaitsim/internal/spatial"
)

const element = "Marker"

// Bodies resolves the body names that marker attributes refer to.
type Bodies interface {
	rigid.Frames
	Resolve(name string) (rigid.BodyID, error)
}

// FromAttributes builds a marker from ID, BodyID, Position and Quaternion.
// Position and Quaternion may be prefixed by the name of the frame they
// are given in ("World" or a body name); they are converted into the
// owning body's frame.
func FromAttributes(set attr.Set, bodies Bodies) (*Marker, error) {
	r := attr.NewReader(element, set)
	name, err := r.String("ID")
	if err != nil {
		return nil, err
	}
	bodyName, err := r.String("BodyID")
	if err != nil {
		return nil, err
	}
	body, err := bodies.Resolve(bodyName)
	if err != nil {
		return nil, r.NotFound("BodyID", bodyName)
	}
	own, err := bodies.Pose(body)
	if err != nil {
		return nil, r.NotFound("BodyID", bodyName)
	}

	q, err := readQuaternion(r, bodies, own)
	if err != nil {
		return nil, err
	}
	p, err := readPosition(r, bodies, own)
	if err != nil {
		return nil, err
	}
	return New(name, bodies, body, p, q), nil
}

func framePose(r *attr.Reader, bodies Bodies, key, frame, raw string) (rigid.Pose, error) {
	id, err := bodies.Resolve(frame)
	if err != nil {
		return rigid.Pose{}, r.Errorf(key, raw, "body not found")
	}
	pose, err := bodies.Pose(id)
	if err != nil {
		return rigid.Pose{}, r.Errorf(key, raw, "body not found")
	}
	return pose, nil
}

func readPosition(r *attr.Reader, bodies Bodies, own rigid.Pose) (r3.Vec, error) {
	const key = "Position"
	raw, _ := r.String(key)
	fields, err := r.Fields(key)
	if err != nil {
		return r3.Vec{}, err
	}
	switch len(fields) {
	case 3:
		v, err := attr.ParseVector(fields)
		if err != nil {
			return r3.Vec{}, r.Errorf(key, raw, "is not a vector")
		}
		return v, nil
	case 4:
		v, err := attr.ParseVector(fields[1:])
		if err != nil {
			return r3.Vec{}, r.Errorf(key, raw, "is not a vector")
		}
		frame, err := framePose(r, bodies, key, fields[0], raw)
		if err != nil {
			return r3.Vec{}, err
		}
		return own.InverseTransform(frame.Transform(v)), nil
	}
	return r3.Vec{}, r.Errorf(key, raw, "needs 3 or 4 tokens")
}

func readQuaternion(r *attr.Reader, bodies Bodies, own rigid.Pose) (quat.Number, error) {
	const key = "Quaternion"
	raw, _ := r.String(key)
	fields, err := r.Fields(key)
	if err != nil {
		return quat.Number{}, err
	}
	switch len(fields) {
	case 4:
		q, err := attr.ParseQuaternion(fields)
		if err != nil {
			return quat.Number{}, r.Errorf(key, raw, "is not a quaternion")
		}
		return q, nil
	case 5:
		q, err := attr.ParseQuaternion(fields[1:])
		if err != nil {
			return quat.Number{}, r.Errorf(key, raw, "is not a quaternion")
		}
		frame, err := framePose(r, bodies, key, fields[0], raw)
		if err != nil {
			return quat.Number{}, err
		}
		world := spatial.Compose(frame.Orientation, q)
		return spatial.RotationBetween(own.Orientation, world), nil
	}
	return quat.Number{}, r.Errorf(key, raw, "needs 4 or 5 tokens")
}

// Attributes serializes the marker. Position and Quaternion are written
// in the owning body's frame with that body's name as prefix; the world
// values are informational.
func (m *Marker) Attributes() attr.Set {
	name := m.BodyName()
	set := attr.Set{
		"ID":         m.name,
		"BodyID":     name,
		"Position":   name + " " + attr.FormatVector(m.position),
		"Quaternion": name + " " + attr.FormatQuaternion(m.quaternion),
	}
	if f, err := m.Resolve(); err == nil {
		set["WorldPosition"] = attr.FormatVector(f.WorldPosition())
		set["WorldQuaternion"] = attr.FormatQuaternion(f.WorldQuaternion())
	}
	return set
}
