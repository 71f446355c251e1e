package config

import (
	"sort"

	"github.com/san-kum/gaitsim/internal/attr"
	"github.com/san-kum/gaitsim/internal/model"
)

type Preset struct {
	Description string
	build       func() *Document
}

var Presets = map[string]Preset{
	"knee": {
		Description: "shank swinging about a knee hinge under a periodic flexion torque",
		build:       kneePreset,
	},
	"ankle": {
		Description: "fixed ankle with spring-model stress, Butterworth filtered",
		build:       anklePreset,
	},
	"leg": {
		Description: "thigh, shank and foot with muscle paths, knee stops and ankle beam stress",
		build:       legPreset,
	},
}

// GetPreset returns a fresh copy of the named document, or nil.
func GetPreset(name string) *Document {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p.build()
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func identity(id, body, position string) attr.Set {
	return attr.Set{"ID": id, "BodyID": body, "Position": position, "Quaternion": "1 0 0 0"}
}

func kneeElements() model.Elements {
	return model.Elements{
		Bodies: []attr.Set{
			{"ID": "Thigh", "Position": "0 0 0.9"},
			{"ID": "Shank", "Position": "KneeThigh KneeShank", "AngularVelocity": "0 -1.5 0"},
		},
		Markers: []attr.Set{
			identity("HipOrigin", "Thigh", "0.04 0 0.2"),
			identity("KneeVia", "Thigh", "0.06 0 -0.18"),
			identity("HamstringOrigin", "Thigh", "-0.05 0 0.15"),
			{"ID": "KneeThigh", "BodyID": "Thigh", "Position": "0 0 -0.22", "Quaternion": "90d 0 0 1"},
			{"ID": "KneeShank", "BodyID": "Shank", "Position": "0 0 0.2", "Quaternion": "90d 0 0 1"},
			identity("Tibial", "Shank", "0.04 0 0.15"),
			identity("Fibular", "Shank", "-0.04 0 0.12"),
		},
		Straps: []attr.Set{
			{"ID": "Quadriceps", "Type": "NPoint", "OriginMarkerID": "HipOrigin", "ViaPointMarkerIDList": "KneeVia", "InsertionMarkerID": "Tibial", "Tension": "400"},
			{"ID": "Hamstring", "Type": "TwoPoint", "OriginMarkerID": "HamstringOrigin", "InsertionMarkerID": "Fibular", "Tension": "250"},
		},
		Joints: []attr.Set{
			{
				"ID": "Knee", "Type": "Hinge", "Body1MarkerID": "KneeThigh", "Body2MarkerID": "KneeShank",
				"LowStop": "-120d", "HighStop": "5d", "StopERP": "0.2", "StopCFM": "1e-5",
				"LowStopTorqueLimit": "-200", "HighStopTorqueLimit": "200", "StopTorqueWindow": "10",
			},
		},
		Loads: []attr.Set{
			{"JointID": "Knee", "Torque": "0 5 0", "TorqueAmplitude": "0 40 0", "Frequency": "1.5"},
		},
	}
}

func kneePreset() *Document {
	return &Document{Global: DefaultGlobal(), Elements: kneeElements()}
}

func anklePreset() *Document {
	g := DefaultGlobal()
	g.StressLimit = 5e7
	g.CutoffFrequency = 40
	return &Document{
		Global: g,
		Elements: model.Elements{
			Bodies: []attr.Set{
				{"ID": "Shank", "Position": "0 0 0.5"},
				{"ID": "Foot", "Position": "Shank 0 0 -0.3"},
			},
			Markers: []attr.Set{
				identity("AnkleShank", "Shank", "0 0 -0.25"),
				identity("AnkleFoot", "Foot", "0 0 0.05"),
			},
			Joints: []attr.Set{
				{
					"ID": "Ankle", "Type": "Fixed", "Body1MarkerID": "AnkleShank", "Body2MarkerID": "AnkleFoot",
					"StressCalculationType": "Spring", "LowPassType": "Butterworth2ndOrderLowPass",
					"StressBitmapPixelSize": "0.004 0.004", "StressBitmapDimensions": "6 4",
					"StressBitmap": "011110\n111111\n111111\n011110",
				},
			},
			Loads: []attr.Set{
				{
					"JointID": "Ankle", "Force": "0 0 -700", "ForceAmplitude": "0 0 -500",
					"Torque": "0 15 0", "TorqueAmplitude": "3 20 0", "Frequency": "1", "Phase": "90d",
				},
			},
		},
	}
}

func legPreset() *Document {
	el := kneeElements()
	el.Bodies = append(el.Bodies, attr.Set{"ID": "Foot", "Position": "Shank 0 0 -0.3", "AngularVelocity": "0 -1.5 0"})
	el.Markers = append(el.Markers,
		identity("CalfOrigin", "Thigh", "-0.04 0 -0.18"),
		identity("Heel", "Foot", "-0.06 0 0"),
		identity("AnkleShank", "Shank", "0 0 -0.3"),
		identity("AnkleFoot", "Foot", "0 0 0"),
	)
	el.Straps = append(el.Straps, attr.Set{
		"ID": "Gastrocnemius", "Type": "TwoPoint", "OriginMarkerID": "CalfOrigin", "InsertionMarkerID": "Heel", "Tension": "600",
	})
	el.Joints = append(el.Joints, attr.Set{
		"ID": "Ankle", "Type": "Fixed", "Body1MarkerID": "AnkleShank", "Body2MarkerID": "AnkleFoot",
		"StressCalculationType": "Beam", "LowPassType": "MovingAverageLowPass", "Window": "20",
		"StressBitmapPixelSize": "0.005 0.005", "StressBitmapDimensions": "4 4",
		"StressBitmap": "0110\n1111\n1111\n0110",
	})
	el.Loads = append(el.Loads, attr.Set{
		"JointID": "Ankle", "Force": "0 0 -600", "Torque": "0 8 0", "TorqueAmplitude": "0 4 0", "Frequency": "1",
	})

	g := DefaultGlobal()
	g.StressLimit = 5e8
	return &Document{Global: g, Elements: el}
}
