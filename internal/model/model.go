// Package model assembles bodies, markers, straps, joints and loads from
// attribute elements and advances their derived quantities each step.
package model

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/san-kum/gaitsim/internal/attr"
	"github.com/san-kum/gaitsim/internal/joint"
	"github.com/san-kum/gaitsim/internal/load"
	"github.com/san-kum/gaitsim/internal/marker"
	"github.com/san-kum/gaitsim/internal/rigid"
	"github.com/san-kum/gaitsim/internal/strap"
)

var (
	ErrDuplicate  = errors.New("model: duplicate element ID")
	ErrUnknownRef = errors.New("model: unknown reference")
)

// Elements is the attribute form of a model, one set per element.
type Elements struct {
	Bodies  []attr.Set `yaml:"bodies"`
	Markers []attr.Set `yaml:"markers"`
	Straps  []attr.Set `yaml:"straps,omitempty"`
	Joints  []attr.Set `yaml:"joints,omitempty"`
	Loads   []attr.Set `yaml:"loads,omitempty"`
}

type Options struct {
	Joint  joint.Options
	Logger zerolog.Logger
}

func DefaultOptions() Options {
	return Options{Joint: joint.DefaultOptions(), Logger: zerolog.Nop()}
}

type Model struct {
	world      *rigid.World
	kinematics *rigid.Kinematics

	markers     map[string]*marker.Marker
	markerOrder []*marker.Marker
	straps      []strap.Strap
	joints      []joint.Joint
	loads       *load.Table
	loadSets    []attr.Set

	channels []string
	opts     Options
	log      zerolog.Logger
}

// Build constructs a model. Bodies come first, then markers, then body
// placements that refer to markers, then straps, joints and loads. Any
// malformed attribute or unknown reference aborts construction.
func Build(el Elements, opts Options) (*Model, error) {
	m := &Model{
		world:   rigid.NewWorld(),
		markers: make(map[string]*marker.Marker),
		loads:   load.NewTable(),
		opts:    opts,
		log:     opts.Logger,
	}

	deferred, err := m.addBodies(el.Bodies)
	if err != nil {
		return nil, err
	}
	for _, set := range el.Markers {
		mk, err := marker.FromAttributes(set, m.world)
		if err != nil {
			return nil, err
		}
		if _, dup := m.markers[mk.Name()]; dup {
			return nil, fmt.Errorf("%w: marker %s", ErrDuplicate, mk.Name())
		}
		m.markers[mk.Name()] = mk
		m.markerOrder = append(m.markerOrder, mk)
		m.log.Debug().Str("marker", mk.Name()).Str("body", mk.BodyName()).Msg("marker created")
	}
	for _, p := range deferred {
		if err := m.place(p); err != nil {
			return nil, err
		}
	}
	m.kinematics = rigid.NewKinematics(m.world)

	names := make(map[string]bool)
	for _, set := range el.Straps {
		s, err := strap.FromAttributes(set, m.Marker)
		if err != nil {
			return nil, err
		}
		if names[s.Name()] {
			return nil, fmt.Errorf("%w: strap %s", ErrDuplicate, s.Name())
		}
		names[s.Name()] = true
		m.straps = append(m.straps, s)
		m.log.Debug().Str("strap", s.Name()).Float64("length", s.Length()).Msg("strap created")
	}

	names = make(map[string]bool)
	for _, set := range el.Joints {
		j, err := joint.FromAttributes(set, m.Marker, opts.Joint)
		if err != nil {
			return nil, err
		}
		if names[j.Name()] {
			return nil, fmt.Errorf("%w: joint %s", ErrDuplicate, j.Name())
		}
		names[j.Name()] = true
		m.joints = append(m.joints, j)
		m.log.Debug().Str("joint", j.Name()).Stringer("type", j.Kind()).Msg("joint created")
	}

	for _, set := range el.Loads {
		name, p, err := load.FromAttributes(set)
		if err != nil {
			return nil, err
		}
		if m.Joint(name) == nil {
			return nil, fmt.Errorf("%w: load on joint %s", ErrUnknownRef, name)
		}
		m.loads.Set(name, p)
		m.loadSets = append(m.loadSets, set.Clone())
	}

	if err := m.buildChannels(); err != nil {
		return nil, err
	}
	m.log.Info().
		Int("bodies", m.world.Len()).
		Int("markers", len(m.markerOrder)).
		Int("straps", len(m.straps)).
		Int("joints", len(m.joints)).
		Msg("model built")
	return m, nil
}

func (m *Model) World() *rigid.World           { return m.world }
func (m *Model) Kinematics() *rigid.Kinematics { return m.kinematics }
func (m *Model) Loads() *load.Table            { return m.loads }
func (m *Model) Straps() []strap.Strap         { return m.straps }
func (m *Model) Joints() []joint.Joint         { return m.joints }
func (m *Model) Markers() []*marker.Marker     { return m.markerOrder }

// Marker finds a marker by ID.
func (m *Model) Marker(name string) (*marker.Marker, bool) {
	mk, ok := m.markers[name]
	return mk, ok
}

func (m *Model) Strap(name string) strap.Strap {
	for _, s := range m.straps {
		if s.Name() == name {
			return s
		}
	}
	return nil
}

func (m *Model) Joint(name string) joint.Joint {
	for _, j := range m.joints {
		if j.Name() == name {
			return j
		}
	}
	return nil
}

// Update recomputes every strap and then every joint for time t. Body
// poses for t must already be committed. src supplies the joint feedback;
// nil uses the model's own loads.
func (m *Model) Update(t float64, src load.Source) error {
	if src == nil {
		src = m.loads
	}
	for _, s := range m.straps {
		if err := s.Update(t); err != nil {
			return err
		}
	}
	for _, j := range m.joints {
		if err := j.Update(t, src.Feedback(j.Name(), t)); err != nil {
			return err
		}
	}
	return nil
}

// Abort reports the first joint limit exceeded in the last Update.
func (m *Model) Abort() (string, bool) {
	for _, j := range m.joints {
		l, ok := j.(joint.Limiter)
		if !ok {
			continue
		}
		if reason, hit := l.LimitExceeded(); hit {
			return reason, true
		}
	}
	return "", false
}
