// Package strap computes actuator path geometry: the length of a chain of
// attachment points, its rate of change and the pulling direction at each
// point.
package strap

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/gaitsim/internal/marker"
	"github.com/san-kum/gaitsim/internal/rigid"
	"github.com/san-kum/gaitsim/internal/spatial"
)

var (
	ErrDegenerateSegment = errors.New("strap: zero-length path segment")
	ErrTooFewPoints      = errors.New("strap: path needs at least two attachment points")
)

// PointForce is where and in which direction a path pulls on a body.
// Direction is a unit vector for end points; interior via points carry
// the unnormalized sum of their two segment directions.
type PointForce struct {
	Body      rigid.BodyID
	Point     r3.Vec
	Direction r3.Vec
}

// Force scales the direction by the path tension.
func (p PointForce) Force(tension float64) r3.Vec {
	return r3.Scale(tension, p.Direction)
}

type Strap interface {
	Name() string
	// Update recomputes the geometry from the current marker poses.
	Update(t float64) error
	Length() float64
	Velocity() float64
	Tension() float64
	SetTension(float64)
	PointForces() []PointForce
	Markers() []*marker.Marker
}

// path holds the state shared by all strap variants.
type path struct {
	name     string
	markers  []*marker.Marker
	points   []r3.Vec
	forces   []PointForce
	length   float64
	velocity float64
	tension  float64
	lastTime float64
	started  bool
}

func newPath(name string, markers []*marker.Marker) (*path, error) {
	if len(markers) < 2 {
		return nil, fmt.Errorf("strap %s: %w", name, ErrTooFewPoints)
	}
	for i, m := range markers {
		if m == nil {
			return nil, fmt.Errorf("strap %s: attachment point %d has no marker", name, i)
		}
	}
	return &path{
		name:    name,
		markers: markers,
		points:  make([]r3.Vec, len(markers)),
		forces:  make([]PointForce, len(markers)),
	}, nil
}

func (p *path) Name() string              { return p.name }
func (p *path) Length() float64           { return p.length }
func (p *path) Velocity() float64         { return p.velocity }
func (p *path) Tension() float64          { return p.tension }
func (p *path) SetTension(f float64)      { p.tension = f }
func (p *path) PointForces() []PointForce { return p.forces }
func (p *path) Markers() []*marker.Marker { return p.markers }

// resolve reads every attachment point in world coordinates.
func (p *path) resolve() error {
	for i, m := range p.markers {
		w, err := m.WorldPosition()
		if err != nil {
			return fmt.Errorf("strap %s: %w", p.name, err)
		}
		p.points[i] = w
		p.forces[i] = PointForce{Body: m.Body(), Point: w}
	}
	return nil
}

// segment returns the unit vector from point i to point j and the
// distance between them.
func (p *path) segment(i, j int) (r3.Vec, float64, error) {
	d := r3.Sub(p.points[j], p.points[i])
	u, err := spatial.UnitChecked(d)
	if err != nil {
		lo := min(i, j)
		return r3.Vec{}, 0, fmt.Errorf("strap %s: segment %d (%s to %s): %w",
			p.name, lo, p.markers[lo].Name(), p.markers[lo+1].Name(), ErrDegenerateSegment)
	}
	return u, r3.Norm(d), nil
}

// setLength records a new length and its finite-difference rate. The rate
// is zero until time has advanced past a previous update.
func (p *path) setLength(t, length float64) {
	if p.started && t > p.lastTime && t > 0 {
		p.velocity = (length - p.length) / (t - p.lastTime)
	} else {
		p.velocity = 0
	}
	p.length = length
	p.lastTime = t
	p.started = true
}

// Reset forgets the previous length so the next rate is zero.
func (p *path) Reset() {
	p.started = false
	p.velocity = 0
}
