package load

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/gaitsim/internal/attr"
	"github.com/san-kum/gaitsim/internal/rigid"
)

type Source interface {
	Feedback(joint string, t float64) rigid.Feedback
}

type None struct{}

func (None) Feedback(string, float64) rigid.Feedback { return rigid.Feedback{} }

// Manual returns whatever force and torque were last set.
type Manual struct {
	Force  r3.Vec
	Torque r3.Vec
}

func NewManual() *Manual { return &Manual{} }

func (m *Manual) Set(force, torque r3.Vec) {
	m.Force, m.Torque = force, torque
}

func (m *Manual) Feedback(string, float64) rigid.Feedback {
	return rigid.Negated(m.Force, m.Torque)
}

// Periodic is Force + ForceAmplitude*sin(2 pi f t + phase) and likewise
// for the torque, acting on body 1 at its centre of mass.
type Periodic struct {
	Force           r3.Vec
	Torque          r3.Vec
	ForceAmplitude  r3.Vec
	TorqueAmplitude r3.Vec
	Frequency       float64
	Phase           float64
}

func (p *Periodic) Feedback(_ string, t float64) rigid.Feedback {
	s := math.Sin(2*math.Pi*p.Frequency*t + p.Phase)
	f := r3.Add(p.Force, r3.Scale(s, p.ForceAmplitude))
	tq := r3.Add(p.Torque, r3.Scale(s, p.TorqueAmplitude))
	return rigid.Negated(f, tq)
}

// Table routes each joint to its own source. Joints without an entry get
// zero feedback.
type Table struct {
	sources map[string]Source
}

func NewTable() *Table {
	return &Table{sources: make(map[string]Source)}
}

func (t *Table) Set(joint string, s Source) { t.sources[joint] = s }

func (t *Table) Get(joint string) (Source, bool) {
	s, ok := t.sources[joint]
	return s, ok
}

func (t *Table) Joints() []string {
	names := make([]string, 0, len(t.sources))
	for name := range t.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (t *Table) Feedback(joint string, tm float64) rigid.Feedback {
	if s, ok := t.sources[joint]; ok {
		return s.Feedback(joint, tm)
	}
	return rigid.Feedback{}
}

const element = "Load"

// FromAttributes reads a Load element: JointID, Force, Torque,
// ForceAmplitude, TorqueAmplitude, Frequency (Hz) and Phase (angle). It
// returns the joint the load applies to.
func FromAttributes(set attr.Set) (string, *Periodic, error) {
	r := attr.NewReader(element, set)
	joint, err := r.String("JointID")
	if err != nil {
		return "", nil, err
	}
	p := &Periodic{}
	if p.Force, err = r.VectorOr("Force", r3.Vec{}); err != nil {
		return "", nil, err
	}
	if p.Torque, err = r.VectorOr("Torque", r3.Vec{}); err != nil {
		return "", nil, err
	}
	if p.ForceAmplitude, err = r.VectorOr("ForceAmplitude", r3.Vec{}); err != nil {
		return "", nil, err
	}
	if p.TorqueAmplitude, err = r.VectorOr("TorqueAmplitude", r3.Vec{}); err != nil {
		return "", nil, err
	}
	if p.Frequency, err = r.FloatOr("Frequency", 0); err != nil {
		return "", nil, err
	}
	if p.Phase, err = r.AngleOr("Phase", 0); err != nil {
		return "", nil, err
	}
	return joint, p, nil
}
