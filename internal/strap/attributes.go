package strap

import (
	"strings"

	"github.com/san-kum/gaitsim/internal/attr"
	"github.com/san-kum/gaitsim/internal/marker"
)

const element = "Strap"

type Kind int

const (
	TwoPointKind Kind = iota
	NPointKind
)

var kinds = map[string]Kind{
	"TwoPoint": TwoPointKind,
	"NPoint":   NPointKind,
}

// MarkerLookup finds previously built markers by ID.
type MarkerLookup func(name string) (*marker.Marker, bool)

// FromAttributes builds a strap from ID, Type, OriginMarkerID,
// InsertionMarkerID, ViaPointMarkerIDList (NPoint only) and an optional
// constant Tension. The geometry is evaluated once at t=0 so degenerate
// paths are rejected here.
func FromAttributes(set attr.Set, lookup MarkerLookup) (Strap, error) {
	r := attr.NewReader(element, set)
	name, err := r.String("ID")
	if err != nil {
		return nil, err
	}
	typ, err := r.String("Type")
	if err != nil {
		return nil, err
	}
	kind, ok := kinds[strings.TrimSpace(typ)]
	if !ok {
		return nil, r.Errorf("Type", typ, "must be one of NPoint, TwoPoint")
	}
	origin, err := findMarker(r, lookup, "OriginMarkerID")
	if err != nil {
		return nil, err
	}
	insertion, err := findMarker(r, lookup, "InsertionMarkerID")
	if err != nil {
		return nil, err
	}
	tension, err := r.FloatOr("Tension", 0)
	if err != nil {
		return nil, err
	}

	var s Strap
	switch kind {
	case NPointKind:
		ids, err := r.Fields("ViaPointMarkerIDList")
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return nil, r.Errorf("ViaPointMarkerIDList", r.StringOr("ViaPointMarkerIDList", ""), "is empty")
		}
		via := make([]*marker.Marker, 0, len(ids))
		for _, id := range ids {
			m, ok := lookup(id)
			if !ok {
				return nil, r.NotFound("ViaPointMarkerIDList", strings.Join(ids, " "))
			}
			via = append(via, m)
		}
		s, err = NewNPoint(name, origin, via, insertion)
		if err != nil {
			return nil, err
		}
	default:
		s, err = NewTwoPoint(name, origin, insertion)
		if err != nil {
			return nil, err
		}
	}
	s.SetTension(tension)
	if err := s.Update(0); err != nil {
		return nil, err
	}
	return s, nil
}

func findMarker(r *attr.Reader, lookup MarkerLookup, key string) (*marker.Marker, error) {
	id, err := r.String(key)
	if err != nil {
		return nil, err
	}
	m, ok := lookup(id)
	if !ok {
		return nil, r.NotFound(key, id)
	}
	return m, nil
}

// Attributes serializes the strap back into the form FromAttributes reads.
func Attributes(s Strap) attr.Set {
	ms := s.Markers()
	set := attr.Set{
		"ID":                s.Name(),
		"OriginMarkerID":    ms[0].Name(),
		"InsertionMarkerID": ms[len(ms)-1].Name(),
		"Type":              "TwoPoint",
	}
	if np, ok := s.(*NPoint); ok {
		set["Type"] = "NPoint"
		names := make([]string, 0, len(ms)-2)
		for _, m := range np.ViaPoints() {
			names = append(names, m.Name())
		}
		set["ViaPointMarkerIDList"] = strings.Join(names, " ")
	}
	if s.Tension() != 0 {
		set["Tension"] = attr.FormatFloat(s.Tension())
	}
	return set
}
