package joint

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/gaitsim/internal/attr"
	"github.com/san-kum/gaitsim/internal/marker"
	"github.com/san-kum/gaitsim/internal/rigid"
)

// Ball constrains the two bodies to share the body 1 marker origin.
type Ball struct {
	*base
}

func (j *Ball) Update(t float64, fb rigid.Feedback) error {
	_, _, err := j.resolve(fb)
	return err
}

func (j *Ball) Attributes() attr.Set { return j.attributes() }

// Universal turns about the body 1 marker X axis and the body 2 marker Y
// axis.
type Universal struct {
	*base
	axis1, axis2 r3.Vec
	low1, high1  float64
	low2, high2  float64
	hasStops     [2]bool
}

func readUniversal(r *attr.Reader, b *base) (*Universal, error) {
	j := &Universal{base: b}
	var err error
	j.hasStops[0] = r.Has("LowStop1") || r.Has("HighStop1")
	if j.low1, j.high1, err = stops(r, "LowStop1", "HighStop1", false); err != nil {
		return nil, err
	}
	j.hasStops[1] = r.Has("LowStop2") || r.Has("HighStop2")
	if j.low2, j.high2, err = stops(r, "LowStop2", "HighStop2", false); err != nil {
		return nil, err
	}
	return j, nil
}

func (j *Universal) Update(t float64, fb rigid.Feedback) error {
	f1, f2, err := j.resolve(fb)
	if err != nil {
		return err
	}
	j.axis1 = f1.WorldAxis(marker.X)
	j.axis2 = f2.WorldAxis(marker.Y)
	return nil
}

func (j *Universal) Axes() (r3.Vec, r3.Vec) { return j.axis1, j.axis2 }

func (j *Universal) Attributes() attr.Set {
	set := j.attributes()
	if j.hasStops[0] {
		set["LowStop1"] = attr.FormatFloat(j.low1)
		set["HighStop1"] = attr.FormatFloat(j.high1)
	}
	if j.hasStops[1] {
		set["LowStop2"] = attr.FormatFloat(j.low2)
		set["HighStop2"] = attr.FormatFloat(j.high2)
	}
	return set
}
