package strap

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/gaitsim/internal/marker"
)

// NPoint is a straight-line path through an ordered list of via points.
// No wrapping around surfaces is modelled.
type NPoint struct {
	*path
	units []r3.Vec
}

func NewNPoint(name string, origin *marker.Marker, via []*marker.Marker, insertion *marker.Marker) (*NPoint, error) {
	markers := make([]*marker.Marker, 0, len(via)+2)
	markers = append(markers, origin)
	markers = append(markers, via...)
	markers = append(markers, insertion)
	p, err := newPath(name, markers)
	if err != nil {
		return nil, err
	}
	return &NPoint{path: p, units: make([]r3.Vec, len(markers)-1)}, nil
}

// Update sums the N-1 segment lengths. End points pull toward their single
// neighbour. A via point pulls along the sum of the unit vectors toward
// both neighbours, left unnormalized: near zero on a straight run, near 2
// at a hairpin.
func (s *NPoint) Update(t float64) error {
	if err := s.resolve(); err != nil {
		return err
	}
	total := 0.0
	for i := range s.units {
		u, length, err := s.segment(i, i+1)
		if err != nil {
			return err
		}
		s.units[i] = u
		total += length
	}
	s.setLength(t, total)

	last := len(s.points) - 1
	s.forces[0].Direction = s.units[0]
	s.forces[last].Direction = r3.Scale(-1, s.units[last-1])
	for i := 1; i < last; i++ {
		s.forces[i].Direction = r3.Sub(s.units[i], s.units[i-1])
	}
	return nil
}

func (s *NPoint) ViaPoints() []*marker.Marker {
	return s.markers[1 : len(s.markers)-1]
}
