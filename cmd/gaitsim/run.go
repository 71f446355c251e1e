package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/gaitsim/internal/config"
	"github.com/san-kum/gaitsim/internal/dynamo"
	"github.com/san-kum/gaitsim/internal/integrators"
	"github.com/san-kum/gaitsim/internal/logging"
	"github.com/san-kum/gaitsim/internal/metrics"
	"github.com/san-kum/gaitsim/internal/model"
	"github.com/san-kum/gaitsim/internal/sim"
	"github.com/san-kum/gaitsim/internal/storage"
)

type runSpec struct {
	name string
	doc  *config.Document
}

func runModels(cmd *cobra.Command, args []string) error {
	specs := make([]runSpec, 0, len(args))
	for _, arg := range args {
		doc, name, err := loadDocument(arg)
		if err != nil {
			return err
		}
		applyOverrides(cmd, doc)
		if err := doc.Global.Validate(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		specs = append(specs, runSpec{name: name, doc: doc})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if len(specs) == 1 {
		return runOne(ctx, specs[0])
	}
	return runBatch(ctx, specs)
}

// runOne runs a single model with its log mirrored into the run directory.
func runOne(ctx context.Context, spec runSpec) error {
	st := store()
	runLog := log
	var runID string
	if !noSave {
		if err := st.Init(); err != nil {
			return err
		}
		id, dir, err := st.Create()
		if err != nil {
			return err
		}
		runID = id
		f, err := os.Create(logging.RunLogPath(dir))
		if err != nil {
			return err
		}
		defer f.Close()
		if runLog, err = logging.Tee(os.Stderr, f, prefs.LogLevel); err != nil {
			return err
		}
		runLog = runLog.With().Str("run", runID).Logger()
	}
	runLog = runLog.With().Str("model", spec.name).Logger()

	m, err := spec.doc.Build(runLog)
	if err != nil {
		return err
	}
	integ, _ := integrators.New(spec.doc.Global.Integrator)

	s := sim.New(m, integ, nil)
	s.SetLogger(runLog)
	for _, metric := range metrics.ForModel(m) {
		s.AddMetric(metric)
	}

	start := time.Now()
	result, err := s.Run(ctx, spec.doc.Global.SimConfig())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if !noSave {
		if err := saveRun(st, runID, spec, result); err != nil {
			return err
		}
	}
	printResult(spec.name, runID, elapsed, result)
	return nil
}

// runBatch runs independent models on the worker pool.
func runBatch(ctx context.Context, specs []runSpec) error {
	jobs := make([]sim.Job, len(specs))
	for i, spec := range specs {
		spec := spec
		jobLog := log.With().Str("model", spec.name).Logger()
		var built *model.Model
		jobs[i] = sim.Job{
			Name: spec.name,
			Build: func() (*model.Model, error) {
				m, err := spec.doc.Build(jobLog)
				built = m
				return m, err
			},
			Integrator: func() dynamo.Integrator {
				integ, _ := integrators.New(spec.doc.Global.Integrator)
				return integ
			},
			Metrics: func() []dynamo.Metric { return metrics.ForModel(built) },
			Config:  spec.doc.Global.SimConfig(),
		}
	}

	log.Info().Int("jobs", len(jobs)).Int("workers", prefs.Workers).Msg("batch started")
	start := time.Now()
	batch := sim.Batch{Jobs: jobs, Workers: prefs.Workers}
	results, err := batch.Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	st := store()
	if !noSave {
		if err := st.Init(); err != nil {
			return err
		}
	}
	for i, result := range results {
		runID := ""
		if !noSave {
			id, _, err := st.Create()
			if err != nil {
				return err
			}
			runID = id
			if err := saveRun(st, runID, specs[i], result); err != nil {
				return err
			}
		}
		printResult(specs[i].name, runID, elapsed, result)
	}
	return nil
}

func saveRun(st *storage.Store, runID string, spec runSpec, result *sim.Result) error {
	document, err := yaml.Marshal(spec.doc)
	if err != nil {
		return err
	}
	meta := storage.RunMetadata{
		ID:         runID,
		Model:      spec.name,
		Timestamp:  time.Now(),
		Dt:         spec.doc.Global.Dt,
		Duration:   spec.doc.Global.Duration,
		Integrator: spec.doc.Global.Integrator,
	}
	return st.Save(meta, result, document)
}

func printResult(name, runID string, elapsed time.Duration, result *sim.Result) {
	fmt.Printf("%s: %d steps in %v\n", name, result.StepsTaken, elapsed.Round(time.Millisecond))
	if runID != "" {
		fmt.Printf("run id: %s\n", runID)
	}
	if err := result.Err(); err != nil {
		fmt.Printf("aborted: %v\n", err)
	}
	if len(result.Metrics) == 0 {
		return
	}

	names := make([]string, 0, len(result.Metrics))
	for n := range result.Metrics {
		names = append(names, n)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, n := range names {
		fmt.Fprintf(w, "  %s\t%.6g\n", n, result.Metrics[n])
	}
	w.Flush()
	fmt.Println()
}

func benchModel(cmd *cobra.Command, args []string) error {
	doc, name, err := loadDocument(args[0])
	if err != nil {
		return err
	}
	applyOverrides(cmd, doc)
	integ, ok := integrators.New(doc.Global.Integrator)
	if !ok {
		return fmt.Errorf("unknown integrator %q (available: %v)", doc.Global.Integrator, integrators.Names())
	}

	fmt.Printf("benchmarking %s (%s)\n\n", name, doc.Global.Integrator)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DT\tSTEPS\tTIME\tSTEPS/SEC\tSTATUS")

	for _, step := range []float64{1e-3, 5e-4, 1e-4} {
		d := *doc
		d.Global.Dt = step
		m, err := d.Build(zerolog.Nop())
		if err != nil {
			return err
		}
		cfg := d.Global.SimConfig()
		cfg.AbortOnLimits = false

		start := time.Now()
		result, err := sim.New(m, integ, nil).Run(context.Background(), cfg)
		status := "ok"
		if err != nil {
			status = err.Error()
		}
		elapsed := time.Since(start)
		steps := 0
		if result != nil {
			steps = result.StepsTaken
		}
		fmt.Fprintf(w, "%.0e\t%d\t%v\t%.0f\t%s\n", step, steps, elapsed.Round(time.Microsecond), float64(steps)/elapsed.Seconds(), status)
	}
	return w.Flush()
}
