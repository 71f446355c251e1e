package analysis

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/gaitsim/internal/sim"
)

type Point struct{ X, Y float64 }

// Portrait holds one channel plotted against another.
type Portrait struct {
	XName, YName string
	Points       []Point
}

// NewPortrait pairs two channels of a run sample by sample.
func NewPortrait(result *sim.Result, xName, yName string) (*Portrait, error) {
	xs, ok := result.Column(xName)
	if !ok {
		return nil, fmt.Errorf("analysis: no channel %s", xName)
	}
	ys, ok := result.Column(yName)
	if !ok {
		return nil, fmt.Errorf("analysis: no channel %s", yName)
	}

	p := &Portrait{XName: xName, YName: yName, Points: make([]Point, len(xs))}
	for i := range xs {
		p.Points[i] = Point{X: xs[i], Y: ys[i]}
	}
	return p, nil
}

// Crossings records x and y, linearly interpolated, each time trigger
// rises through threshold.
func Crossings(result *sim.Result, trigger string, threshold float64, xName, yName string) (*Portrait, error) {
	tr, ok := result.Column(trigger)
	if !ok {
		return nil, fmt.Errorf("analysis: no channel %s", trigger)
	}
	full, err := NewPortrait(result, xName, yName)
	if err != nil {
		return nil, err
	}

	section := &Portrait{XName: xName, YName: yName, Points: make([]Point, 0)}
	for i := 1; i < len(tr); i++ {
		prev, curr := tr[i-1], tr[i]
		if !(prev < threshold && curr >= threshold) {
			continue
		}
		frac := (threshold - prev) / (curr - prev)
		a, b := full.Points[i-1], full.Points[i]
		section.Points = append(section.Points, Point{
			X: a.X + frac*(b.X-a.X),
			Y: a.Y + frac*(b.Y-a.Y),
		})
	}
	return section, nil
}

// ASCII renders the points on a width x height character grid with axes
// drawn where zero is visible.
func (p *Portrait) ASCII(width, height int) string {
	if p == nil || len(p.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	xs := make([]float64, len(p.Points))
	ys := make([]float64, len(p.Points))
	for i, pt := range p.Points {
		xs[i], ys[i] = pt.X, pt.Y
	}
	minX, maxX := floats.Min(xs), floats.Max(xs)
	minY, maxY := floats.Min(ys), floats.Max(ys)

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for _, pt := range p.Points {
		col := int((pt.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((pt.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
