package sim

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/gaitsim/internal/dynamo"
	"github.com/san-kum/gaitsim/internal/model"
)

// Job is one independent run. Build is called on the worker goroutine so
// every job owns its model.
type Job struct {
	Name       string
	Build      func() (*model.Model, error)
	Integrator func() dynamo.Integrator
	Metrics    func() []dynamo.Metric
	Config     Config
}

// Batch runs jobs concurrently with at most Workers in flight. Results are
// returned in job order; the first failing job cancels the rest.
type Batch struct {
	Jobs    []Job
	Workers int
}

func (b *Batch) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, len(b.Jobs))

	g, ctx := errgroup.WithContext(ctx)
	if b.Workers > 0 {
		g.SetLimit(b.Workers)
	}
	for i, job := range b.Jobs {
		i, job := i, job
		g.Go(func() error {
			m, err := job.Build()
			if err != nil {
				return err
			}
			sim := New(m, job.Integrator(), nil)
			if job.Metrics != nil {
				for _, metric := range job.Metrics() {
					sim.AddMetric(metric)
				}
			}
			results[i], err = sim.Run(ctx, job.Config)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
