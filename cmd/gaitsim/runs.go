package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/gaitsim/internal/analysis"
	"github.com/san-kum/gaitsim/internal/export"
	"github.com/san-kum/gaitsim/internal/sim"
	"github.com/san-kum/gaitsim/internal/storage"
)

const maxPlots = 6

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := store().List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tDURATION\tDT\tINTEG\tSTEPS\tSTATUS")
	for _, run := range runs {
		status := "ok"
		if run.Aborted {
			status = "aborted"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.3fs\t%gs\t%s\t%d\t%s\n",
			run.ID[:8],
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Integrator,
			run.Steps,
			status,
		)
	}
	return w.Flush()
}

// loadRun resolves a run id prefix and reads its metadata and channels.
func loadRun(prefix string) (*storage.RunMetadata, *sim.Result, error) {
	st := store()
	id, err := st.Resolve(prefix)
	if err != nil {
		return nil, nil, err
	}
	meta, err := st.Load(id)
	if err != nil {
		return nil, nil, err
	}
	result, err := st.LoadChannels(id)
	if err != nil {
		return nil, nil, err
	}
	if len(result.Times) == 0 {
		return nil, nil, fmt.Errorf("run %s has no samples", id)
	}
	return meta, result, nil
}

func selectChannels(result *sim.Result, limit int) []string {
	if len(channels) > 0 {
		return channels
	}
	if limit > 0 && len(result.Channels) > limit {
		return result.Channels[:limit]
	}
	return result.Channels
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}
	names := selectChannels(result, maxPlots)

	if outFile != "" {
		if err := export.PlotChannels(result, names, meta.Model+" "+meta.ID[:8], outFile); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outFile)
		return nil
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("samples: %d\n\n", len(result.Times))
	for _, name := range names {
		data, ok := result.Column(name)
		if !ok {
			return fmt.Errorf("run %s has no channel %s", meta.ID, name)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	switch strings.ToLower(format) {
	case "json":
		return storage.ExportJSON(w, *meta, result)
	case "meta":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	case "html":
		names := selectChannels(result, 0)
		groups := make([][]string, len(names))
		for i, n := range names {
			groups[i] = []string{n}
		}
		return export.HTML(w, result, export.Report{
			Title:    meta.Model + " " + meta.ID[:8],
			Subtitle: fmt.Sprintf("dt=%g duration=%g integrator=%s", meta.Dt, meta.Duration, meta.Integrator),
			Groups:   groups,
		})
	}
	return fmt.Errorf("unknown format %q (json, html, meta)", format)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}
	win, ok := analysis.Windows[strings.ToLower(window)]
	if !ok {
		return fmt.Errorf("unknown window %q", window)
	}

	fmt.Printf("analysis: %s (%s)\n\n", meta.ID, meta.Model)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CHANNEL\tMEAN\tSTD\tMIN\tMAX\tRMS\tPEAK HZ\tAMPLITUDE")
	for _, name := range selectChannels(result, 0) {
		data, ok := result.Column(name)
		if !ok {
			return fmt.Errorf("run %s has no channel %s", meta.ID, name)
		}
		s := analysis.Summarize(data)
		freq, amp := "-", "-"
		if spec, err := analysis.PowerSpectrum(data, 1/meta.Dt, win); err == nil {
			f, a := spec.Dominant()
			freq, amp = fmt.Sprintf("%.3f", f), fmt.Sprintf("%.4g", a)
		}
		fmt.Fprintf(w, "%s\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t%s\t%s\n",
			name, s.Mean, s.StdDev, s.Min, s.Max, s.RMS, freq, amp)
	}
	return w.Flush()
}

func portraitRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}

	var p *analysis.Portrait
	if trigger != "" {
		p, err = analysis.Crossings(result, trigger, threshold, xChannel, yChannel)
	} else {
		p, err = analysis.NewPortrait(result, xChannel, yChannel)
	}
	if err != nil {
		return err
	}

	if outFile != "" {
		if err := export.PlotPortrait(p, meta.Model+" "+meta.ID[:8], outFile); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outFile)
		return nil
	}
	fmt.Printf("%s vs %s (%d points)\n\n", yChannel, xChannel, len(p.Points))
	fmt.Println(p.ASCII(80, 30))
	return nil
}
