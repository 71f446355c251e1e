package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/san-kum/gaitsim/internal/config"
	"github.com/san-kum/gaitsim/internal/logging"
	"github.com/san-kum/gaitsim/internal/storage"
)

var (
	prefsFile string
	prefs     config.Preferences
	log       zerolog.Logger

	dt         float64
	duration   float64
	integrator string
	noSave     bool

	channels  []string
	outFile   string
	format    string
	window    string
	xChannel  string
	yChannel  string
	trigger   string
	threshold float64

	stepsPerFrame int
	theme         string
)

func main() {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:           "gaitsim",
		Short:         "musculoskeletal gait model simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := v.BindPFlag("runs_dir", cmd.Flags().Lookup("runs")); err != nil {
				return err
			}
			if err := v.BindPFlag("log_level", cmd.Flags().Lookup("log-level")); err != nil {
				return err
			}
			p, err := config.LoadPreferences(v, prefsFile)
			if err != nil {
				return err
			}
			prefs = p
			log, err = logging.New(os.Stderr, prefs.LogLevel, prefs.LogPretty)
			return err
		},
	}
	rootCmd.PersistentFlags().StringVar(&prefsFile, "prefs", "", "preferences file (yaml, json or toml)")
	rootCmd.PersistentFlags().String("runs", "runs", "directory holding stored runs")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run [document|preset]...",
		Short: "run one or more models and store the results",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runModels,
	}
	runCmd.Flags().Float64Var(&dt, "dt", 0, "override the document time step")
	runCmd.Flags().Float64Var(&duration, "time", 0, "override the document duration")
	runCmd.Flags().StringVar(&integrator, "integrator", "", "override the document integrator")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "print metrics without storing the run")

	benchCmd := &cobra.Command{
		Use:   "bench [document|preset]",
		Short: "measure step throughput at several time steps",
		Args:  cobra.ExactArgs(1),
		RunE:  benchModel,
	}
	benchCmd.Flags().StringVar(&integrator, "integrator", "", "override the document integrator")

	validateCmd := &cobra.Command{
		Use:   "validate [document|preset]...",
		Short: "build models without running them",
		Args:  cobra.MinimumNArgs(1),
		RunE:  validateModels,
	}

	inspectCmd := &cobra.Command{
		Use:   "inspect [document|preset]",
		Short: "print the resolved elements and output channels of a model",
		Args:  cobra.ExactArgs(1),
		RunE:  inspectModel,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in models",
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init [preset] [file]",
		Short: "write a built-in model to a document file",
		Args:  cobra.ExactArgs(2),
		RunE:  writePreset,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run channels in the terminal or to an image",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringSliceVar(&channels, "channels", nil, "channels to plot (default: first six)")
	plotCmd.Flags().StringVarP(&outFile, "out", "o", "", "write a .png, .svg or .pdf instead of the terminal")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as json or an html report",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&format, "format", "json", "json, html or meta")
	exportCmd.Flags().StringSliceVar(&channels, "channels", nil, "channels to chart in html (default: all)")
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default: stdout)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "summary statistics and power spectrum of a channel",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringSliceVar(&channels, "channels", nil, "channels to analyze (default: all)")
	analyzeCmd.Flags().StringVar(&window, "window", "hann", "spectral window (rectangular, hann, hamming, blackman)")

	portraitCmd := &cobra.Command{
		Use:   "portrait [run_id]",
		Short: "plot one channel against another",
		Args:  cobra.ExactArgs(1),
		RunE:  portraitRun,
	}
	portraitCmd.Flags().StringVar(&xChannel, "x", "", "x channel")
	portraitCmd.Flags().StringVar(&yChannel, "y", "", "y channel")
	portraitCmd.Flags().StringVar(&trigger, "trigger", "", "sample only where this channel rises through --threshold")
	portraitCmd.Flags().Float64Var(&threshold, "threshold", 0, "trigger threshold")
	portraitCmd.Flags().StringVarP(&outFile, "out", "o", "", "write a .png, .svg or .pdf instead of the terminal")
	_ = portraitCmd.MarkFlagRequired("x")
	_ = portraitCmd.MarkFlagRequired("y")

	liveCmd := &cobra.Command{
		Use:   "live [document|preset]",
		Short: "step a model in a terminal monitor",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&stepsPerFrame, "steps", 10, "steps per frame")
	liveCmd.Flags().StringVar(&theme, "theme", "", "color theme")

	rootCmd.AddCommand(runCmd, benchCmd, validateCmd, inspectCmd, presetsCmd, initCmd,
		listCmd, plotCmd, exportCmd, analyzeCmd, portraitCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func store() *storage.Store {
	return storage.New(prefs.RunsDir)
}

// loadDocument reads a document file, or returns the named preset when arg
// is not an existing file.
func loadDocument(arg string) (*config.Document, string, error) {
	if _, err := os.Stat(arg); err == nil {
		doc, err := config.LoadWith(arg, prefs.Global())
		if err != nil {
			return nil, "", err
		}
		return doc, strings.TrimSuffix(filepath.Base(arg), filepath.Ext(arg)), nil
	}
	if doc := config.GetPreset(arg); doc != nil {
		return doc, arg, nil
	}
	return nil, "", fmt.Errorf("%s: no such file or preset (presets: %s)", arg, strings.Join(config.ListPresets(), ", "))
}

func applyOverrides(cmd *cobra.Command, doc *config.Document) {
	if cmd.Flags().Changed("dt") {
		doc.Global.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		doc.Global.Duration = duration
	}
	if cmd.Flags().Changed("integrator") {
		doc.Global.Integrator = integrator
	}
}
