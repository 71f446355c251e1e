package model

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/gaitsim/internal/attr"
	"github.com/san-kum/gaitsim/internal/rigid"
	"github.com/san-kum/gaitsim/internal/spatial"
)

const bodyElement = "Body"

// placement is a Position or Quaternion that refers to markers or to other
// bodies and is resolved once all markers exist.
type placement struct {
	id         rigid.BodyID
	r          *attr.Reader
	position   []string
	quaternion []string
}

func (m *Model) addBodies(sets []attr.Set) ([]placement, error) {
	var deferred []placement
	for _, set := range sets {
		r := attr.NewReader(bodyElement, set)
		name, err := r.String("ID")
		if err != nil {
			return nil, err
		}
		b := rigid.Body{Name: name, Orientation: spatial.Identity()}
		if b.LinearVelocity, err = r.VectorOr("LinearVelocity", r3.Vec{}); err != nil {
			return nil, err
		}
		if b.AngularVelocity, err = r.VectorOr("AngularVelocity", r3.Vec{}); err != nil {
			return nil, err
		}
		p := placement{r: r}

		if r.Has("Quaternion") {
			q, _ := r.Fields("Quaternion")
			switch {
			case len(q) == 4:
				if b.Orientation, err = attr.ParseQuaternion(q); err != nil {
					return nil, r.Errorf("Quaternion", r.StringOr("Quaternion", ""), "is not a quaternion")
				}
			case len(q) == 5 && q[0] == rigid.WorldName:
				if b.Orientation, err = attr.ParseQuaternion(q[1:]); err != nil {
					return nil, r.Errorf("Quaternion", r.StringOr("Quaternion", ""), "is not a quaternion")
				}
			case len(q) == 1 || len(q) == 5:
				p.quaternion = q
			default:
				return nil, r.Errorf("Quaternion", r.StringOr("Quaternion", ""), "needs 1, 4 or 5 tokens")
			}
		}

		pos, err := r.Fields("Position")
		if err != nil {
			return nil, err
		}
		switch {
		case len(pos) == 3:
			if b.Position, err = attr.ParseVector(pos); err != nil {
				return nil, r.Errorf("Position", strings.Join(pos, " "), "is not a vector")
			}
		case len(pos) == 4 && pos[0] == rigid.WorldName:
			if b.Position, err = attr.ParseVector(pos[1:]); err != nil {
				return nil, r.Errorf("Position", strings.Join(pos, " "), "is not a vector")
			}
		case len(pos) == 1 || len(pos) == 2 || len(pos) == 4 || len(pos) == 7:
			p.position = pos
		default:
			return nil, r.Errorf("Position", strings.Join(pos, " "), "needs 1, 2, 3, 4 or 7 tokens")
		}

		id, err := m.world.AddBody(b)
		if err != nil {
			return nil, fmt.Errorf("body %s: %w", name, err)
		}
		m.log.Debug().Str("body", name).Msg("body created")
		if p.position != nil || p.quaternion != nil {
			p.id = id
			deferred = append(deferred, p)
		}
	}
	return deferred, nil
}

// place resolves a deferred orientation, then a deferred position.
func (m *Model) place(p placement) error {
	b, err := m.world.Body(p.id)
	if err != nil {
		return err
	}
	if p.quaternion != nil {
		if b.Orientation, err = m.referenceQuaternion(p.r, p.quaternion); err != nil {
			return err
		}
	}
	if p.position != nil {
		if b.Position, err = m.referencePosition(p.r, p.id, b.Pose(), p.position); err != nil {
			return err
		}
	}
	return nil
}

func (m *Model) referenceQuaternion(r *attr.Reader, tokens []string) (quat.Number, error) {
	raw := strings.Join(tokens, " ")
	if len(tokens) == 1 {
		mk, ok := m.Marker(tokens[0])
		if !ok {
			return quat.Number{}, r.Errorf("Quaternion", raw, "marker not found")
		}
		q, err := mk.WorldQuaternion()
		if err != nil {
			return quat.Number{}, err
		}
		return q, nil
	}
	ref, err := m.bodyPose(tokens[0])
	if err != nil {
		return quat.Number{}, r.Errorf("Quaternion", raw, "reference body not found")
	}
	q, err := attr.ParseQuaternion(tokens[1:])
	if err != nil {
		return quat.Number{}, r.Errorf("Quaternion", raw, "is not a quaternion")
	}
	return spatial.Normalize(spatial.Compose(ref.Orientation, q)), nil
}

func (m *Model) referencePosition(r *attr.Reader, self rigid.BodyID, pose rigid.Pose, tokens []string) (r3.Vec, error) {
	raw := strings.Join(tokens, " ")
	switch len(tokens) {
	case 1:
		mk, ok := m.Marker(tokens[0])
		if !ok {
			return r3.Vec{}, r.Errorf("Position", raw, "marker not found")
		}
		return mk.WorldPosition()

	case 2:
		m1, ok1 := m.Marker(tokens[0])
		m2, ok2 := m.Marker(tokens[1])
		if !ok1 || !ok2 {
			return r3.Vec{}, r.Errorf("Position", raw, "markers not found")
		}
		if m2.Body() == self {
			m1, m2 = m2, m1
		}
		if m1.Body() != self || m2.Body() == self {
			return r3.Vec{}, r.Errorf("Position", raw, "needs exactly one marker on this body")
		}
		current, err := m1.WorldPosition()
		if err != nil {
			return r3.Vec{}, err
		}
		target, err := m2.WorldPosition()
		if err != nil {
			return r3.Vec{}, err
		}
		return r3.Add(pose.Position, r3.Sub(target, current)), nil

	case 4:
		ref, err := m.bodyPose(tokens[0])
		if err != nil {
			return r3.Vec{}, r.Errorf("Position", raw, "reference body not found")
		}
		v, err := attr.ParseVector(tokens[1:])
		if err != nil {
			return r3.Vec{}, r.Errorf("Position", raw, "is not a vector")
		}
		return ref.Transform(v), nil

	default:
		// ref x1 y1 z1 x2 y2 z2: the point x1 y1 z1 on ref and x2 y2 z2 on
		// this body coincide.
		ref, err := m.bodyPose(tokens[0])
		if err != nil {
			return r3.Vec{}, r.Errorf("Position", raw, "reference body not found")
		}
		v1, err1 := attr.ParseVector(tokens[1:4])
		v2, err2 := attr.ParseVector(tokens[4:7])
		if err1 != nil || err2 != nil {
			return r3.Vec{}, r.Errorf("Position", raw, "is not a pair of vectors")
		}
		world1 := ref.Transform(v1)
		world2 := pose.Transform(v2)
		return r3.Add(pose.Position, r3.Sub(world1, world2)), nil
	}
}

func (m *Model) bodyPose(name string) (rigid.Pose, error) {
	id, err := m.world.Resolve(name)
	if err != nil {
		return rigid.Pose{}, err
	}
	return m.world.Pose(id)
}
