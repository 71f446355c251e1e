package mechanics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/gaitsim/internal/filter"
	"github.com/san-kum/gaitsim/internal/rigid"
)

// StressModel selects how a load is spread over a cross-section.
type StressModel int

const (
	NoStress StressModel = iota
	BeamModel
	SpringModel
)

var StressModels = map[string]StressModel{
	"None":   NoStress,
	"Beam":   BeamModel,
	"Spring": SpringModel,
}

func (m StressModel) String() string {
	for name, v := range StressModels {
		if v == m {
			return name
		}
	}
	return fmt.Sprintf("StressModel(%d)", int(m))
}

// springEpsilon is the squared distance below which a cell is treated as
// lying on the torque axis.
const springEpsilon = 1e-10

type StressOptions struct {
	Model   StressModel
	LowPass filter.Kind
	// Window is the moving average length in steps.
	Window int
	// Cutoff and SampleRate (Hz) configure the Butterworth filter.
	Cutoff     float64
	SampleRate float64
	// Limit bounds the filtered stress in both directions.
	Limit float64
}

// StressField is the per-cell stress over a cross-section, updated once
// per step, with one low-pass filter per active cell.
type StressField struct {
	section *CrossSection
	opts    StressOptions

	stress   []float64
	filtered []float64
	filters  []filter.Filter
	vectors  []r3.Vec

	force, torque r3.Vec
	min, max      float64
	lpMin, lpMax  float64
}

func NewStressField(cs *CrossSection, opts StressOptions) (*StressField, error) {
	if opts.Model == BeamModel && cs.Det() <= 0 {
		return nil, fmt.Errorf("%w: Ix*Iy - Ixy^2 = %g", ErrSingularSection, cs.Det())
	}
	n := cs.Cells()
	s := &StressField{
		section:  cs,
		opts:     opts,
		stress:   make([]float64, n),
		filtered: make([]float64, n),
	}
	if opts.Model == SpringModel {
		s.vectors = make([]r3.Vec, n)
	}
	switch opts.LowPass {
	case filter.None:
	case filter.ButterworthKind:
		c, err := filter.ButterworthCoefficients(opts.Cutoff, opts.SampleRate)
		if err != nil {
			return nil, err
		}
		s.filters = make([]filter.Filter, n)
		for i := range s.filters {
			s.filters[i] = filter.NewButterworthFrom(c)
		}
	default:
		s.filters = make([]filter.Filter, n)
		for i := range s.filters {
			f, err := filter.New(opts.LowPass, opts.Window, opts.Cutoff, opts.SampleRate)
			if err != nil {
				return nil, err
			}
			s.filters[i] = f
		}
	}
	return s, nil
}

// Update moves w to the stress frame origin, rotates it into the frame and
// recomputes every cell.
func (s *StressField) Update(w Wrench, frame rigid.Pose) {
	local := w.TransferTo(frame.Position).Local(frame.Orientation)
	s.Compute(local.Force, local.Torque)
}

// Compute distributes force and torque, both already in section
// coordinates (z normal to the section), over the active cells.
func (s *StressField) Compute(force, torque r3.Vec) {
	s.force, s.torque = force, torque
	switch s.opts.Model {
	case BeamModel:
		s.beam()
	case SpringModel:
		s.spring()
	default:
		return
	}
	s.min, s.max = floats.Min(s.stress), floats.Max(s.stress)

	if s.filters == nil {
		copy(s.filtered, s.stress)
		s.lpMin, s.lpMax = s.min, s.max
		return
	}
	for i, f := range s.filters {
		f.AddSample(s.stress[i])
		s.filtered[i] = f.Output()
	}
	s.lpMin, s.lpMax = floats.Min(s.filtered), floats.Max(s.filtered)
}

// beam applies the unsymmetric bending formula
// sigma = -t1*x + t2*y + Fz/A.
func (s *StressField) beam() {
	cs := s.section
	mx, my := s.torque.X, s.torque.Y
	det := cs.Det()
	t1 := (my*cs.Ix + mx*cs.Ixy) / det
	t2 := (mx*cs.Iy + my*cs.Ixy) / det
	linear := s.force.Z / cs.Area
	for i := range s.stress {
		s.stress[i] = -t1*cs.X[i] + t2*cs.Y[i] + linear
	}
}

// spring treats every cell as an identical spring. The force is shared
// equally; the torque is shared in proportion to each cell's distance from
// the torque axis, scaled so the cells reproduce its magnitude.
//
// The cell forces sum to the force, and their moments sum to the torque
// when taken with the arm r perpendicular to the torque axis. Moments taken
// with the full in-plane offset only agree on sections where the out-of-plane
// components cancel, which an asymmetric section does not guarantee.
func (s *StressField) spring() {
	cs := s.section
	n := float64(cs.Cells())
	share := r3.Scale(1/n, s.force)

	mag := r3.Norm(s.torque)
	var axis r3.Vec
	if mag > 0 {
		axis = r3.Scale(1/mag, s.torque)
	}
	total := 0.0
	for i := range s.vectors {
		p := r3.Vec{X: cs.X[i], Y: cs.Y[i]}
		r := r3.Sub(p, r3.Scale(r3.Dot(axis, p), axis))
		d2 := r3.Norm2(r)
		if mag == 0 || d2 <= springEpsilon {
			s.vectors[i] = r3.Vec{}
			continue
		}
		s.vectors[i] = r3.Scale(math.Sqrt(d2), r3.Unit(r3.Cross(axis, r)))
		total += d2
	}
	scale := 0.0
	if total > 0 {
		scale = mag / total
	}
	for i, v := range s.vectors {
		s.vectors[i] = r3.Add(r3.Scale(scale, v), share)
		s.stress[i] = r3.Norm(s.vectors[i]) / cs.CellArea
	}
}

// Abort reports whether the filtered stress has left [-Limit, Limit].
func (s *StressField) Abort() bool {
	if s.opts.Model == NoStress {
		return false
	}
	return s.lpMax > s.opts.Limit || s.lpMin < -s.opts.Limit
}

func (s *StressField) Reset() {
	for _, f := range s.filters {
		f.Reset()
	}
	for i := range s.stress {
		s.stress[i], s.filtered[i] = 0, 0
	}
	s.min, s.max, s.lpMin, s.lpMax = 0, 0, 0, 0
}

func (s *StressField) Section() *CrossSection { return s.section }
func (s *StressField) Options() StressOptions  { return s.opts }

// Stress is the raw per-cell stress, in the order of Section().X.
func (s *StressField) Stress() []float64 { return s.stress }

// Filtered is the low-pass per-cell stress.
func (s *StressField) Filtered() []float64 { return s.filtered }

// SpringVectors are the per-cell forces of the spring model; nil for the
// beam model.
func (s *StressField) SpringVectors() []r3.Vec { return s.vectors }

// Force and Torque are the last load in section coordinates.
func (s *StressField) Force() r3.Vec  { return s.force }
func (s *StressField) Torque() r3.Vec { return s.torque }

func (s *StressField) Min() float64        { return s.min }
func (s *StressField) Max() float64        { return s.max }
func (s *StressField) LowPassMin() float64 { return s.lpMin }
func (s *StressField) LowPassMax() float64 { return s.lpMax }
