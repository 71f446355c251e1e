package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/san-kum/gaitsim/internal/analysis"
	"github.com/san-kum/gaitsim/internal/sim"
)

// Report describes an interactive HTML page: one line chart per channel
// group and an optional portrait.
type Report struct {
	Title    string
	Subtitle string
	Theme    string
	Groups   [][]string
	Portrait *analysis.Portrait
}

func (r Report) theme() string {
	if r.Theme == "" {
		return "dark"
	}
	return r.Theme
}

// HTML writes the report for result to w.
func HTML(w io.Writer, result *sim.Result, report Report) error {
	if len(report.Groups) == 0 && report.Portrait == nil {
		return ErrNoChannels
	}

	times := make([]string, len(result.Times))
	for i, t := range result.Times {
		times[i] = strconv.FormatFloat(t, 'f', 4, 64)
	}

	page := components.NewPage()
	page.SetPageTitle(report.Title)
	for _, group := range report.Groups {
		line, err := lineChart(result, times, group, report)
		if err != nil {
			return err
		}
		page.AddCharts(line)
	}
	if report.Portrait != nil {
		page.AddCharts(portraitChart(report.Portrait, report))
	}
	return page.Render(w)
}

func lineChart(result *sim.Result, times []string, names []string, report Report) (*charts.Line, error) {
	if len(names) == 0 {
		return nil, ErrNoChannels
	}
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: report.Title, Theme: report.theme(), Width: "1200px", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{Title: names[0], Subtitle: report.Subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(len(names) > 1)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "t (s)"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)
	line.SetXAxis(times)

	for _, name := range names {
		col, ok := result.Column(name)
		if !ok {
			return nil, fmt.Errorf("export: no channel %s", name)
		}
		data := make([]opts.LineData, len(col))
		for i, v := range col {
			data[i] = opts.LineData{Value: v}
		}
		line.AddSeries(name, data, charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))
	}
	return line, nil
}

func portraitChart(p *analysis.Portrait, report Report) *charts.Scatter {
	data := make([]opts.ScatterData, len(p.Points))
	for i, pt := range p.Points {
		data[i] = opts.ScatterData{Value: []interface{}{pt.X, pt.Y}}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: report.Title, Theme: report.theme(), Width: "720px", Height: "720px"}),
		charts.WithTitleOpts(opts.Title{Title: p.YName + " vs " + p.XName, Subtitle: fmt.Sprintf("points=%d", len(p.Points))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: p.XName, Scale: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: p.YName, Scale: opts.Bool(true)}),
	)
	scatter.AddSeries(p.YName, data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 3}))
	return scatter
}
