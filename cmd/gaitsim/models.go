package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/gaitsim/internal/config"
	"github.com/san-kum/gaitsim/internal/integrators"
	"github.com/san-kum/gaitsim/internal/sim"
	"github.com/san-kum/gaitsim/internal/viz"
)

func validateModels(cmd *cobra.Command, args []string) error {
	failed := 0
	for _, arg := range args {
		doc, name, err := loadDocument(arg)
		if err != nil {
			failed++
			fmt.Printf("FAIL  %s: %v\n", arg, err)
			continue
		}
		m, err := doc.Build(log)
		if err != nil {
			failed++
			fmt.Printf("FAIL  %s: %v\n", name, err)
			continue
		}
		fmt.Printf("ok    %s (%d channels, %d steps)\n", name, len(m.Channels()), doc.Global.SimConfig().Steps())
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d models failed", failed, len(args))
	}
	return nil
}

// inspectModel prints the model as rebuilt from its resolved attributes:
// bodies at their world poses and markers in their body frames.
func inspectModel(cmd *cobra.Command, args []string) error {
	doc, name, err := loadDocument(args[0])
	if err != nil {
		return err
	}
	m, err := doc.Build(log)
	if err != nil {
		return err
	}

	out := config.Document{Global: doc.Global, Elements: m.Elements()}
	data, err := yaml.Marshal(&out)
	if err != nil {
		return err
	}
	fmt.Printf("# %s\n%s\n# channels\n", name, data)
	for _, ch := range m.Channels() {
		fmt.Printf("#   %s\n", ch)
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range config.ListPresets() {
		fmt.Fprintf(w, "%s\t%s\n", name, config.Presets[name].Description)
	}
	return w.Flush()
}

func writePreset(cmd *cobra.Command, args []string) error {
	doc := config.GetPreset(args[0])
	if doc == nil {
		return fmt.Errorf("unknown preset %q (available: %v)", args[0], config.ListPresets())
	}
	if err := config.Save(args[1], doc); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[1])
	return nil
}

// sessionBuilder builds quietly; log output would tear the monitor.
func sessionBuilder(doc *config.Document) viz.Builder {
	return func() (*sim.Session, error) {
		m, err := doc.Build(zerolog.Nop())
		if err != nil {
			return nil, err
		}
		integ, _ := integrators.New(doc.Global.Integrator)
		return sim.NewSession(m, integ, nil, doc.Global.Dt, doc.Global.ValidateState)
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	opts := viz.MonitorOptions{StepsPerFrame: stepsPerFrame, AbortOnLimits: true, Theme: theme}

	if len(args) == 0 {
		items := make([]viz.PickerItem, 0, len(config.Presets))
		for _, name := range config.ListPresets() {
			items = append(items, viz.PickerItem{
				Name:        name,
				Description: config.Presets[name].Description,
				Build:       sessionBuilder(config.GetPreset(name)),
			})
		}
		return viz.Run(viz.NewPicker(items, opts))
	}

	doc, name, err := loadDocument(args[0])
	if err != nil {
		return err
	}
	opts.AbortOnLimits = doc.Global.AbortOnLimits
	mon, err := viz.NewMonitor(name, sessionBuilder(doc), opts)
	if err != nil {
		return err
	}
	return viz.Run(mon)
}
