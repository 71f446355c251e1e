// Package config reads and writes model documents and process
// preferences.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/gaitsim/internal/integrators"
	"github.com/san-kum/gaitsim/internal/joint"
	"github.com/san-kum/gaitsim/internal/model"
	"github.com/san-kum/gaitsim/internal/sim"
)

const (
	DefaultDt         = 1e-3
	DefaultDuration   = 1.0
	DefaultIntegrator = "rk4"
)

var ErrInvalid = errors.New("config: invalid document")

// Global holds the run settings and the values joints fall back to when
// an attribute is absent.
type Global struct {
	Integrator    string  `yaml:"integrator"`
	Dt            float64 `yaml:"dt"`
	Duration      float64 `yaml:"duration"`
	ValidateState bool    `yaml:"validate_state"`
	AbortOnLimits bool    `yaml:"abort_on_limits"`

	ERP              float64 `yaml:"erp"`
	CFM              float64 `yaml:"cfm"`
	StopTorqueWindow int     `yaml:"stop_torque_window"`
	StressLimit      float64 `yaml:"stress_limit"`
	StressWindow     int     `yaml:"stress_window"`
	CutoffFrequency  float64 `yaml:"cutoff_frequency,omitempty"`
}

// Document is a complete model file: run settings plus the element lists.
type Document struct {
	Global         Global `yaml:"global"`
	model.Elements `yaml:",inline"`
}

func DefaultGlobal() Global {
	return Global{
		Integrator:       DefaultIntegrator,
		Dt:               DefaultDt,
		Duration:         DefaultDuration,
		ValidateState:    true,
		AbortOnLimits:    true,
		ERP:              joint.DefaultERP,
		CFM:              joint.DefaultCFM,
		StopTorqueWindow: 1,
		StressLimit:      math.Inf(1),
		StressWindow:     1,
	}
}

func (g Global) Validate() error {
	if _, ok := integrators.New(g.Integrator); !ok {
		return fmt.Errorf("%w: unknown integrator %q", ErrInvalid, g.Integrator)
	}
	if g.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalid, g.Dt)
	}
	if g.Duration < g.Dt {
		return fmt.Errorf("%w: duration %g is shorter than dt %g", ErrInvalid, g.Duration, g.Dt)
	}
	if g.StopTorqueWindow < 1 || g.StressWindow < 1 {
		return fmt.Errorf("%w: windows must be at least 1", ErrInvalid)
	}
	return nil
}

// JointOptions are the joint fallbacks. The softness step size is the
// run's dt.
func (g Global) JointOptions() joint.Options {
	return joint.Options{
		StepSize:         g.Dt,
		ERP:              g.ERP,
		CFM:              g.CFM,
		StopTorqueWindow: g.StopTorqueWindow,
		StressLimit:      g.StressLimit,
		StressWindow:     g.StressWindow,
		CutoffFrequency:  g.CutoffFrequency,
	}
}

func (g Global) SimConfig() sim.Config {
	return sim.Config{
		Dt:            g.Dt,
		Duration:      g.Duration,
		ValidateState: g.ValidateState,
		AbortOnLimits: g.AbortOnLimits,
	}
}

// Build validates the run settings and constructs the model.
func (d *Document) Build(log zerolog.Logger) (*model.Model, error) {
	if err := d.Global.Validate(); err != nil {
		return nil, err
	}
	return model.Build(d.Elements, model.Options{Joint: d.Global.JointOptions(), Logger: log})
}

// Parse decodes a document over defaults. Keys absent from data keep
// their default value.
func Parse(data []byte, defaults Global) (*Document, error) {
	doc := &Document{Global: defaults}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func Load(path string) (*Document, error) {
	return LoadWith(path, DefaultGlobal())
}

func LoadWith(path string, defaults Global) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(data, defaults)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func Save(path string, doc *Document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
