package metrics

import (
	"math"

	"github.com/san-kum/gaitsim/internal/dynamo"
	"github.com/san-kum/gaitsim/internal/joint"
	"github.com/san-kum/gaitsim/internal/model"
)

// ForModel returns the standard run summary for m: strap excursion, hinge
// stop-torque peak and mean magnitude, and fixed-joint stress peaks.
func ForModel(m *model.Model) []dynamo.Metric {
	var out []dynamo.Metric
	for _, s := range m.Straps() {
		out = append(out, NewExcursion(s.Name()+".length"))
	}
	for _, j := range m.Joints() {
		switch j := j.(type) {
		case *joint.Hinge:
			out = append(out,
				NewPeak(j.Name()+".stop_torque"),
				NewMeanAbs(j.Name()+".stop_torque"),
			)
		case *joint.Fixed:
			if j.Stress() == nil {
				continue
			}
			out = append(out,
				NewPeak(j.Name()+".stress_max"),
				NewPeak(j.Name()+".stress_min"),
			)
			if limit := j.Stress().Options().Limit; limit > 0 && !math.IsInf(limit, 1) {
				out = append(out, NewWithin(j.Name()+".lowpass_stress_max", limit))
			}
		}
	}
	return out
}
