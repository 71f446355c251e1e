package sim

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/san-kum/gaitsim/internal/dynamo"
	"github.com/san-kum/gaitsim/internal/load"
	"github.com/san-kum/gaitsim/internal/model"
)

type Simulator struct {
	model      *model.Model
	integrator dynamo.Integrator
	source     load.Source
	metrics    []dynamo.Metric
	observers  []dynamo.Observer
	log        zerolog.Logger
}

// New builds a simulator for m. A nil source uses the model's loads.
func New(m *model.Model, integrator dynamo.Integrator, source load.Source) *Simulator {
	return &Simulator{
		model:      m,
		integrator: integrator,
		source:     source,
		metrics:    make([]dynamo.Metric, 0),
		observers:  make([]dynamo.Observer, 0),
		log:        zerolog.Nop(),
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }
func (s *Simulator) SetLogger(l zerolog.Logger)    { s.log = l }

// Run steps the model from t=0 to cfg.Duration. The t=0 sample is recorded
// before the first step. A limit abort ends the run without an error; see
// Result.Err.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := cfg.Steps()
	result := &Result{
		Times:   make([]float64, 0, steps+1),
		Samples: make([][]float64, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	session, err := NewSession(s.model, s.integrator, s.source, cfg.Dt, cfg.ValidateState)
	if err != nil {
		return nil, err
	}
	s.observe(result, session.Sample())

	s.log.Info().
		Float64("dt", cfg.Dt).
		Float64("duration", cfg.Duration).
		Int("steps", steps).
		Int("channels", len(s.model.Channels())).
		Msg("run started")

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			s.finish(result)
			return result, ctx.Err()
		default:
		}

		if err := session.Step(); err != nil {
			s.finish(result)
			return result, err
		}
		result.StepsTaken++
		s.observe(result, session.Sample())

		if !cfg.AbortOnLimits {
			continue
		}
		if reason, hit := session.Abort(); hit {
			result.Aborted = true
			result.AbortReason = reason
			s.log.Warn().
				Int("step", session.Steps()).
				Float64("t", session.Time()).
				Str("reason", reason).
				Msg("run aborted")
			break
		}
	}

	s.finish(result)
	s.log.Info().
		Int("steps", result.StepsTaken).
		Bool("aborted", result.Aborted).
		Msg("run finished")
	return result, nil
}

func (s *Simulator) observe(result *Result, sample dynamo.Sample) {
	result.record(sample)
	for _, m := range s.metrics {
		m.Observe(sample)
	}
	for _, obs := range s.observers {
		obs.OnStep(sample)
	}
}

func (s *Simulator) finish(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", dynamo.ErrParameterBounds, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", dynamo.ErrParameterBounds, cfg.Duration)
	}
	if cfg.Duration < cfg.Dt {
		return fmt.Errorf("%w: duration %f is shorter than dt %f", dynamo.ErrParameterBounds, cfg.Duration, cfg.Dt)
	}
	return nil
}

// RunWithCallback steps the model until cfg.Duration, calling callback
// with every sample including t=0. Returning false from callback stops the
// run.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(dynamo.Sample) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}
	session, err := NewSession(s.model, s.integrator, s.source, cfg.Dt, cfg.ValidateState)
	if err != nil {
		return err
	}
	if !callback(session.Sample()) {
		return nil
	}

	for i := 0; i < cfg.Steps(); i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := session.Step(); err != nil {
			return err
		}
		if !callback(session.Sample()) {
			return nil
		}
		if cfg.AbortOnLimits {
			if _, hit := session.Abort(); hit {
				return nil
			}
		}
	}

	return nil
}
