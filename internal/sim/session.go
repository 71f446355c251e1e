package sim

import (
	"fmt"

	"github.com/san-kum/gaitsim/internal/dynamo"
	"github.com/san-kum/gaitsim/internal/load"
	"github.com/san-kum/gaitsim/internal/model"
)

// Session advances a model one fixed step at a time. Each step integrates
// the body poses, commits them and then updates straps and joints for the
// new time.
type Session struct {
	model      *model.Model
	integrator dynamo.Integrator
	source     load.Source
	dt         float64
	validate   bool

	x    dynamo.State
	t    float64
	step int
}

// NewSession updates the model at t=0 and returns a session ready to
// step. A nil source uses the model's loads.
func NewSession(m *model.Model, integrator dynamo.Integrator, source load.Source, dt float64, validate bool) (*Session, error) {
	if dt <= 0 {
		return nil, fmt.Errorf("%w: dt must be positive, got %g", dynamo.ErrParameterBounds, dt)
	}
	s := &Session{
		model:      m,
		integrator: integrator,
		source:     source,
		dt:         dt,
		validate:   validate,
		x:          m.Kinematics().State(),
	}
	if err := m.Update(0, source); err != nil {
		return nil, &SimError{Time: 0, Step: 0, Err: err}
	}
	return s, nil
}

func (s *Session) Time() float64       { return s.t }
func (s *Session) Steps() int          { return s.step }
func (s *Session) Dt() float64         { return s.dt }
func (s *Session) Model() *model.Model { return s.model }

// Step advances one dt. Errors are *SimError.
func (s *Session) Step() error {
	k := s.model.Kinematics()
	next := s.integrator.Step(k, s.x, s.t, s.dt)
	step := s.step + 1
	t := float64(step) * s.dt

	if s.validate && !next.IsValid() {
		return &SimError{Time: t, Step: step, Err: dynamo.ErrInvalidState}
	}
	if err := k.SetState(next); err != nil {
		return &SimError{Time: t, Step: step, Err: err}
	}
	s.x = next
	s.t = t
	s.step = step

	if err := s.model.Update(t, s.source); err != nil {
		return &SimError{Time: t, Step: step, Err: err}
	}
	return nil
}

func (s *Session) Sample() dynamo.Sample {
	return s.model.Sample(s.t)
}

// Abort reports the first exceeded joint limit after the last step.
func (s *Session) Abort() (string, bool) {
	return s.model.Abort()
}
