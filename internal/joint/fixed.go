package joint

import (
	"fmt"

	"github.com/san-kum/gaitsim/internal/attr"
	"github.com/san-kum/gaitsim/internal/filter"
	"github.com/san-kum/gaitsim/internal/mechanics"
	"github.com/san-kum/gaitsim/internal/rigid"
)

// Fixed welds its two bodies together. When a cross-section is configured
// the reaction is turned into a stress field in the frame of the body 1
// marker, whose Z axis is the section normal.
type Fixed struct {
	*base
	stress *mechanics.StressField
	frame  rigid.Pose
}

var lowPassKinds = map[string]filter.Kind{
	"NoLowPass":                  filter.None,
	"MovingAverageLowPass":       filter.MovingAverageKind,
	"Butterworth2ndOrderLowPass": filter.ButterworthKind,
}

func readFixed(r *attr.Reader, b *base, opts Options) (*Fixed, error) {
	j := &Fixed{base: b}
	model, err := attr.Enum(r, "StressCalculationType", mechanics.StressModels, mechanics.NoStress)
	if err != nil {
		return nil, err
	}
	if model == mechanics.NoStress {
		return j, nil
	}

	so := mechanics.StressOptions{Model: model}
	if so.LowPass, err = attr.Enum(r, "LowPassType", lowPassKinds, filter.None); err != nil {
		return nil, err
	}
	if so.Limit, err = r.FloatOr("StressLimit", opts.StressLimit); err != nil {
		return nil, err
	}
	switch so.LowPass {
	case filter.MovingAverageKind:
		if so.Window, err = r.IntOr("Window", opts.StressWindow); err != nil {
			return nil, err
		}
	case filter.ButterworthKind:
		if so.Cutoff, err = r.FloatOr("CutoffFrequency", opts.CutoffFrequency); err != nil {
			return nil, err
		}
		so.SampleRate = 1 / opts.StepSize
	}

	pixel, err := r.Floats("StressBitmapPixelSize", 2)
	if err != nil {
		return nil, err
	}
	dims, err := r.Ints("StressBitmapDimensions", 2)
	if err != nil {
		return nil, err
	}
	text, err := r.String("StressBitmap")
	if err != nil {
		return nil, err
	}
	bm, err := mechanics.ParseBitmap(text, dims[0], dims[1], pixel[0], pixel[1])
	if err != nil {
		return nil, fmt.Errorf("joint %s: StressBitmap: %w", b.name, err)
	}
	cs, err := mechanics.NewCrossSection(bm)
	if err != nil {
		return nil, fmt.Errorf("joint %s: StressBitmap: %w", b.name, err)
	}
	if j.stress, err = mechanics.NewStressField(cs, so); err != nil {
		return nil, fmt.Errorf("joint %s: %w", b.name, err)
	}
	return j, nil
}

func (j *Fixed) Update(t float64, fb rigid.Feedback) error {
	f1, _, err := j.resolve(fb)
	if err != nil {
		return err
	}
	j.frame = f1.World()
	if j.stress != nil {
		j.stress.Update(wrench1(f1, fb), j.frame)
	}
	return nil
}

// Stress is nil when no stress calculation is configured.
func (j *Fixed) Stress() *mechanics.StressField { return j.stress }

// StressFrame is the world pose of the section.
func (j *Fixed) StressFrame() rigid.Pose { return j.frame }

func (j *Fixed) LimitExceeded() (string, bool) {
	if j.stress == nil || !j.stress.Abort() {
		return "", false
	}
	return fmt.Sprintf("fixed joint %s filtered stress [%g, %g] beyond %g",
		j.name, j.stress.LowPassMin(), j.stress.LowPassMax(), j.stress.Options().Limit), true
}

func (j *Fixed) Attributes() attr.Set {
	set := j.attributes()
	if j.stress == nil {
		set["StressCalculationType"] = mechanics.NoStress.String()
		return set
	}
	o := j.stress.Options()
	set["StressCalculationType"] = o.Model.String()
	set["LowPassType"] = o.LowPass.String()
	set["StressLimit"] = attr.FormatFloat(o.Limit)
	switch o.LowPass {
	case filter.MovingAverageKind:
		set["Window"] = fmt.Sprint(o.Window)
	case filter.ButterworthKind:
		set["CutoffFrequency"] = attr.FormatFloat(o.Cutoff)
	}
	bm := j.stress.Section().Bitmap
	set["StressBitmapPixelSize"] = attr.FormatFloat(bm.DX) + " " + attr.FormatFloat(bm.DY)
	set["StressBitmapDimensions"] = fmt.Sprintf("%d %d", bm.NX, bm.NY)
	set["StressBitmap"] = bm.String()
	return set
}
