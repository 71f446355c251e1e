package model

import (
	"fmt"

	"github.com/san-kum/gaitsim/internal/dynamo"
	"github.com/san-kum/gaitsim/internal/joint"
)

// Channel names are "<element ID>.<quantity>".
var (
	bodyChannels   = []string{"x", "y", "z"}
	strapChannels  = []string{"length", "velocity"}
	hingeChannels  = []string{"angle", "stop_torque", "stop_torque_mean", "passive_stop_torque"}
	stressChannels = []string{"stress_min", "stress_max", "lowpass_stress_min", "lowpass_stress_max"}
)

func (m *Model) buildChannels() error {
	seen := make(map[string]bool)
	add := func(id string, quantities []string) error {
		for _, q := range quantities {
			name := id + "." + q
			if seen[name] {
				return fmt.Errorf("%w: channel %s", ErrDuplicate, name)
			}
			seen[name] = true
			m.channels = append(m.channels, name)
		}
		return nil
	}
	for _, id := range m.world.IDs() {
		if err := add(m.world.BodyName(id), bodyChannels); err != nil {
			return err
		}
	}
	for _, s := range m.straps {
		if err := add(s.Name(), strapChannels); err != nil {
			return err
		}
	}
	for _, j := range m.joints {
		switch v := j.(type) {
		case *joint.Hinge:
			if err := add(v.Name(), hingeChannels); err != nil {
				return err
			}
		case *joint.Fixed:
			if v.Stress() != nil {
				if err := add(v.Name(), stressChannels); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Channels lists the names Sample reports, in order.
func (m *Model) Channels() []string { return m.channels }

// Sample reads every channel after the last Update.
func (m *Model) Sample(t float64) dynamo.Sample {
	v := make([]float64, 0, len(m.channels))
	for _, id := range m.world.IDs() {
		b, _ := m.world.Body(id)
		v = append(v, b.Position.X, b.Position.Y, b.Position.Z)
	}
	for _, s := range m.straps {
		v = append(v, s.Length(), s.Velocity())
	}
	for _, j := range m.joints {
		switch j := j.(type) {
		case *joint.Hinge:
			st := j.StopTorque()
			v = append(v, j.Angle(), st.Torque(), st.Mean(), j.PassiveStopTorque())
		case *joint.Fixed:
			if s := j.Stress(); s != nil {
				v = append(v, s.Min(), s.Max(), s.LowPassMin(), s.LowPassMax())
			}
		}
	}
	return dynamo.Sample{Time: t, Names: m.channels, Values: v}
}
