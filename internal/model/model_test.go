package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/gaitsim/internal/attr"
	"github.com/san-kum/gaitsim/internal/joint"
)

func legElements() Elements {
	return Elements{
		Bodies: []attr.Set{
			{"ID": "Thigh", "Position": "0 0 1"},
			{"ID": "Shank", "Position": "KneeThigh KneeShank"},
			{"ID": "Foot", "Position": "Shank 0 0 -0.3"},
		},
		Markers: []attr.Set{
			{"ID": "HipOrigin", "BodyID": "Thigh", "Position": "0.05 0 0.2", "Quaternion": "1 0 0 0"},
			{"ID": "KneeVia", "BodyID": "Thigh", "Position": "0.06 0 -0.2", "Quaternion": "1 0 0 0"},
			{"ID": "KneeThigh", "BodyID": "Thigh", "Position": "0 0 -0.25", "Quaternion": "90d 0 0 1"},
			{"ID": "KneeShank", "BodyID": "Shank", "Position": "0 0 0.25", "Quaternion": "90d 0 0 1"},
			{"ID": "Tibial", "BodyID": "Shank", "Position": "0.04 0 0.2", "Quaternion": "1 0 0 0"},
			{"ID": "CalfOrigin", "BodyID": "Thigh", "Position": "-0.05 0 -0.2", "Quaternion": "1 0 0 0"},
			{"ID": "Heel", "BodyID": "Foot", "Position": "-0.05 0 0", "Quaternion": "1 0 0 0"},
			{"ID": "AnkleShank", "BodyID": "Shank", "Position": "0 0 -0.3", "Quaternion": "1 0 0 0"},
			{"ID": "AnkleFoot", "BodyID": "Foot", "Position": "0 0 0", "Quaternion": "1 0 0 0"},
		},
		Straps: []attr.Set{
			{"ID": "Quad", "Type": "NPoint", "OriginMarkerID": "HipOrigin", "ViaPointMarkerIDList": "KneeVia", "InsertionMarkerID": "Tibial"},
			{"ID": "Calf", "Type": "TwoPoint", "OriginMarkerID": "CalfOrigin", "InsertionMarkerID": "Heel", "Tension": "100"},
		},
		Joints: []attr.Set{
			{
				"ID": "Knee", "Type": "Hinge", "Body1MarkerID": "KneeThigh", "Body2MarkerID": "KneeShank",
				"LowStop": "-120d", "HighStop": "5d",
				"LowStopTorqueLimit": "-10", "HighStopTorqueLimit": "10", "StopTorqueWindow": "1",
			},
			{
				"ID": "Ankle", "Type": "Fixed", "Body1MarkerID": "AnkleShank", "Body2MarkerID": "AnkleFoot",
				"StressCalculationType": "Beam", "LowPassType": "NoLowPass", "StressLimit": "1e6",
				"StressBitmapPixelSize": "0.01 0.01", "StressBitmapDimensions": "2 2", "StressBitmap": "11 11",
			},
		},
		Loads: []attr.Set{
			{"JointID": "Knee", "Torque": "0 50 0"},
		},
	}
}

func build(t *testing.T, el Elements) *Model {
	t.Helper()
	m, err := Build(el, DefaultOptions())
	require.NoError(t, err)
	return m
}

func assertVec(t *testing.T, want, got r3.Vec, delta float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, "x")
	assert.InDelta(t, want.Y, got.Y, delta, "y")
	assert.InDelta(t, want.Z, got.Z, delta, "z")
}

func bodyPosition(t *testing.T, m *Model, name string) r3.Vec {
	t.Helper()
	id, err := m.World().Resolve(name)
	require.NoError(t, err)
	b, err := m.World().Body(id)
	require.NoError(t, err)
	return b.Position
}

func TestBuildPlacesBodies(t *testing.T) {
	m := build(t, legElements())
	assertVec(t, r3.Vec{Z: 1}, bodyPosition(t, m, "Thigh"), 1e-15)
	assertVec(t, r3.Vec{Z: 0.5}, bodyPosition(t, m, "Shank"), 1e-15)
	assertVec(t, r3.Vec{Z: 0.2}, bodyPosition(t, m, "Foot"), 1e-15)

	knee, _ := m.Marker("KneeShank")
	p, err := knee.WorldPosition()
	require.NoError(t, err)
	assertVec(t, r3.Vec{Z: 0.75}, p, 1e-15)
}

func TestBuildStrapsAndJoints(t *testing.T) {
	m := build(t, legElements())
	require.Len(t, m.Straps(), 2)
	require.Len(t, m.Joints(), 2)

	calf := m.Strap("Calf")
	require.NotNil(t, calf)
	assert.InDelta(t, 0.6, calf.Length(), 1e-12)
	assert.Equal(t, 100.0, calf.Tension())

	h, ok := m.Joint("Knee").(*joint.Hinge)
	require.True(t, ok)
	assertVec(t, r3.Vec{Y: 1}, h.Axis(), 1e-15)
	assert.Nil(t, m.Joint("Hip"))
}

func TestChannels(t *testing.T) {
	m := build(t, legElements())
	want := []string{
		"Thigh.x", "Thigh.y", "Thigh.z",
		"Shank.x", "Shank.y", "Shank.z",
		"Foot.x", "Foot.y", "Foot.z",
		"Quad.length", "Quad.velocity",
		"Calf.length", "Calf.velocity",
		"Knee.angle", "Knee.stop_torque", "Knee.stop_torque_mean", "Knee.passive_stop_torque",
		"Ankle.stress_min", "Ankle.stress_max", "Ankle.lowpass_stress_min", "Ankle.lowpass_stress_max",
	}
	assert.Equal(t, want, m.Channels())

	require.NoError(t, m.Update(0, nil))
	s := m.Sample(0)
	assert.Len(t, s.Values, len(want))
	v, ok := s.Get("Calf.length")
	assert.True(t, ok)
	assert.InDelta(t, 0.6, v, 1e-12)
}

func TestUpdateAndAbort(t *testing.T) {
	m := build(t, legElements())
	require.NoError(t, m.Update(0, nil))
	_, hit := m.Abort()
	assert.False(t, hit)

	require.NoError(t, m.Update(1e-3, nil))
	reason, hit := m.Abort()
	assert.True(t, hit)
	assert.Contains(t, reason, "Knee")

	v, _ := m.Sample(1e-3).Get("Knee.stop_torque")
	assert.InDelta(t, 50, v, 1e-9)
}

func TestUpdateFollowsBodies(t *testing.T) {
	m := build(t, legElements())
	require.NoError(t, m.Update(0, nil))

	id, _ := m.World().Resolve("Foot")
	foot, _ := m.World().Body(id)
	foot.Position.Z -= 0.1
	require.NoError(t, m.Update(0.01, nil))

	calf := m.Strap("Calf")
	assert.InDelta(t, 0.7, calf.Length(), 1e-12)
	assert.InDelta(t, 10, calf.Velocity(), 1e-9)
}

func TestUpdateReportsDegenerateStrap(t *testing.T) {
	m := build(t, legElements())
	id, _ := m.World().Resolve("Foot")
	foot, _ := m.World().Body(id)
	foot.Position = r3.Vec{Z: 0.8}
	err := m.Update(0.01, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Calf")
}

func TestSevenTokenPosition(t *testing.T) {
	el := Elements{
		Bodies: []attr.Set{
			{"ID": "A", "Position": "1 2 3"},
			{"ID": "B", "Position": "A 0 0 -1 0 0 1", "Quaternion": "A 1 0 0 0"},
		},
	}
	m := build(t, el)
	// B's local (0,0,1) sits on A's local (0,0,-1) = world (1,2,2)
	assertVec(t, r3.Vec{X: 1, Y: 2, Z: 1}, bodyPosition(t, m, "B"), 1e-15)
}

func TestBodyQuaternionFromMarker(t *testing.T) {
	el := Elements{
		Bodies: []attr.Set{
			{"ID": "A", "Position": "0 0 0", "Quaternion": "m"},
		},
		Markers: []attr.Set{
			{"ID": "m", "BodyID": "World", "Position": "0 0 0", "Quaternion": "90d 1 0 0"},
		},
	}
	m := build(t, el)
	id, _ := m.World().Resolve("A")
	b, _ := m.World().Body(id)
	mk, _ := m.Marker("m")
	want := mk.Quaternion()
	assert.InDelta(t, want.Real, b.Orientation.Real, 1e-15)
	assert.InDelta(t, want.Imag, b.Orientation.Imag, 1e-15)
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Elements)
		want   string
	}{
		{"strap marker", func(el *Elements) { el.Straps[1]["InsertionMarkerID"] = "Toe" }, `InsertionMarkerID="Toe" not found`},
		{"duplicate marker", func(el *Elements) { el.Markers = append(el.Markers, el.Markers[0].Clone()) }, "HipOrigin"},
		{"duplicate joint", func(el *Elements) { el.Joints = append(el.Joints, el.Joints[0].Clone()) }, "Knee"},
		{"load joint", func(el *Elements) { el.Loads[0]["JointID"] = "Hip" }, "Hip"},
		{"pair on other bodies", func(el *Elements) { el.Bodies[1]["Position"] = "KneeThigh HipOrigin" }, "exactly one marker"},
		{"pair unknown", func(el *Elements) { el.Bodies[1]["Position"] = "KneeThigh Nope" }, "markers not found"},
		{"position tokens", func(el *Elements) { el.Bodies[0]["Position"] = "1 2 3 4 5" }, "needs 1, 2, 3, 4 or 7 tokens"},
		{"reference body", func(el *Elements) { el.Bodies[2]["Position"] = "Pelvis 0 0 1" }, "reference body not found"},
		{"marker body", func(el *Elements) { el.Markers[0]["BodyID"] = "Pelvis" }, `BodyID="Pelvis" not found`},
		{"duplicate body", func(el *Elements) { el.Bodies[2]["ID"] = "Thigh" }, "Thigh"},
		{"zero body quaternion", func(el *Elements) { el.Bodies[0]["Quaternion"] = "0 0 0 0" }, `Quaternion="0 0 0 0" is not a quaternion`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := legElements()
			tt.modify(&el)
			_, err := Build(el, DefaultOptions())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestElementsRebuild(t *testing.T) {
	m := build(t, legElements())
	again := build(t, m.Elements())

	require.NoError(t, m.Update(0, nil))
	require.NoError(t, again.Update(0, nil))
	a, b := m.Sample(0), again.Sample(0)
	require.Equal(t, a.Names, b.Names)
	for i := range a.Values {
		assert.InDelta(t, a.Values[i], b.Values[i], 1e-12, a.Names[i])
	}
	for _, set := range again.Elements().Bodies {
		assert.False(t, strings.Contains(set["Position"], "Knee"))
	}
}
