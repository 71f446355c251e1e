package strap

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/gaitsim/internal/marker"
)

// TwoPoint is a straight path from an origin to an insertion.
type TwoPoint struct {
	*path
}

func NewTwoPoint(name string, origin, insertion *marker.Marker) (*TwoPoint, error) {
	p, err := newPath(name, []*marker.Marker{origin, insertion})
	if err != nil {
		return nil, err
	}
	return &TwoPoint{path: p}, nil
}

// Update sets the insertion direction to the unit vector from origin to
// insertion and the origin direction to its negation.
func (s *TwoPoint) Update(t float64) error {
	if err := s.resolve(); err != nil {
		return err
	}
	dir, length, err := s.segment(0, 1)
	if err != nil {
		return err
	}
	s.setLength(t, length)
	s.forces[0].Direction = r3.Scale(-1, dir)
	s.forces[1].Direction = dir
	return nil
}

func (s *TwoPoint) Origin() *marker.Marker    { return s.markers[0] }
func (s *TwoPoint) Insertion() *marker.Marker { return s.markers[1] }
