// Package export renders simulation runs as static plots and HTML charts.
package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/gaitsim/internal/analysis"
	"github.com/san-kum/gaitsim/internal/sim"
)

var (
	ErrNoChannels = errors.New("export: no channels selected")
	ErrFormat     = errors.New("export: unsupported file format")
)

const (
	plotWidth  = 14 * vg.Inch
	plotHeight = 6 * vg.Inch
)

// Formats lists the file extensions the plot writers accept.
var Formats = []string{".png", ".svg", ".pdf"}

func checkFormat(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	for _, f := range Formats {
		if ext == f {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrFormat, ext)
}

// PlotChannels draws the named channels against time into path. The file
// extension picks the image format.
func PlotChannels(result *sim.Result, names []string, title, path string) error {
	if len(names) == 0 {
		return ErrNoChannels
	}
	if err := checkFormat(path); err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "time (s)"
	if len(names) == 1 {
		p.Y.Label.Text = names[0]
	}

	for i, name := range names {
		col, ok := result.Column(name)
		if !ok {
			return fmt.Errorf("export: no channel %s", name)
		}
		pts := make(plotter.XYs, len(col))
		for j, v := range col {
			pts[j] = plotter.XY{X: result.Times[j], Y: v}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("export: channel %s: %w", name, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(name, line)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	return p.Save(plotWidth, plotHeight, path)
}

// PlotPortrait draws one channel against another as a scatter.
func PlotPortrait(portrait *analysis.Portrait, title, path string) error {
	if len(portrait.Points) == 0 {
		return ErrNoChannels
	}
	if err := checkFormat(path); err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = portrait.XName
	p.Y.Label.Text = portrait.YName

	pts := make(plotter.XYs, len(portrait.Points))
	for i, pt := range portrait.Points {
		pts[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("export: portrait: %w", err)
	}
	scatter.Color = plotutil.Color(0)
	scatter.Radius = vg.Points(1)
	p.Add(scatter)

	return p.Save(8*vg.Inch, 8*vg.Inch, path)
}
