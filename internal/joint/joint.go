// Package joint holds the joint variants connecting two bodies through a
// pair of markers. Each variant derives its own quantities from the
// reaction feedback the solver reports; optional behaviour is exposed
// through capability interfaces chosen once at construction.
package joint

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/gaitsim/internal/attr"
	"github.com/san-kum/gaitsim/internal/marker"
	"github.com/san-kum/gaitsim/internal/mechanics"
	"github.com/san-kum/gaitsim/internal/rigid"
)

const element = "Joint"

var ErrBothWorld = errors.New("joint: both markers are attached to the world")

type Kind int

const (
	HingeKind Kind = iota
	FixedKind
	BallKind
	UniversalKind
)

var kinds = map[string]Kind{
	"Hinge":     HingeKind,
	"Fixed":     FixedKind,
	"Ball":      BallKind,
	"Universal": UniversalKind,
}

func (k Kind) String() string {
	for name, v := range kinds {
		if v == k {
			return name
		}
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

type Joint interface {
	Name() string
	Kind() Kind
	Markers() (body1, body2 *marker.Marker)
	Bodies() (body1, body2 rigid.BodyID)
	Anchor() r3.Vec
	Feedback() rigid.Feedback
	// Update reads the committed body poses and the reaction feedback for
	// time t.
	Update(t float64, fb rigid.Feedback) error
	Attributes() attr.Set
}

// StopTorquer is implemented by joints with a rotational stop.
type StopTorquer interface {
	StopTorque() *mechanics.StopTorque
}

// Stresser is implemented by joints with a cross-section stress field.
type Stresser interface {
	Stress() *mechanics.StressField
}

// Limiter reports a stepping limit that should end the run.
type Limiter interface {
	LimitExceeded() (string, bool)
}

// Options are the preference values used when an attribute is absent.
type Options struct {
	StepSize         float64
	ERP              float64
	CFM              float64
	StopTorqueWindow int
	StressLimit      float64
	StressWindow     int
	CutoffFrequency  float64
}

func DefaultOptions() Options {
	return Options{
		StepSize:         DefaultStepSize,
		ERP:              DefaultERP,
		CFM:              DefaultCFM,
		StopTorqueWindow: 1,
		StressLimit:      math.Inf(1),
		StressWindow:     1,
	}
}

type base struct {
	name     string
	kind     Kind
	m1, m2   *marker.Marker
	softness Softness
	anchor   r3.Vec
	feedback rigid.Feedback
}

func (b *base) Name() string                              { return b.name }
func (b *base) Kind() Kind                                { return b.kind }
func (b *base) Markers() (*marker.Marker, *marker.Marker) { return b.m1, b.m2 }
func (b *base) Bodies() (rigid.BodyID, rigid.BodyID)      { return b.m1.Body(), b.m2.Body() }
func (b *base) Anchor() r3.Vec                            { return b.anchor }
func (b *base) Feedback() rigid.Feedback                  { return b.feedback }
func (b *base) Softness() Softness                        { return b.softness }

// resolve snapshots both marker frames and records the feedback.
func (b *base) resolve(fb rigid.Feedback) (f1, f2 marker.Frame, err error) {
	if f1, err = b.m1.Resolve(); err != nil {
		return f1, f2, fmt.Errorf("joint %s: %w", b.name, err)
	}
	if f2, err = b.m2.Resolve(); err != nil {
		return f1, f2, fmt.Errorf("joint %s: %w", b.name, err)
	}
	b.feedback = fb
	b.anchor = f1.WorldPosition()
	return f1, f2, nil
}

// wrench1 is the body 1 reaction at its centre of mass.
func wrench1(f1 marker.Frame, fb rigid.Feedback) mechanics.Wrench {
	return mechanics.Wrench{Point: f1.Body.Position, Force: fb.F1, Torque: fb.T1}
}

func (b *base) attributes() attr.Set {
	set := attr.Set{
		"ID":            b.name,
		"Type":          b.kind.String(),
		"Body1MarkerID": b.m1.Name(),
		"Body2MarkerID": b.m2.Name(),
		"ERP":           attr.FormatFloat(b.softness.ERP),
		"CFM":           attr.FormatFloat(b.softness.CFM),
	}
	return set
}

// MarkerLookup finds previously built markers by ID.
type MarkerLookup func(name string) (*marker.Marker, bool)

// FromAttributes builds the joint variant named by Type.
func FromAttributes(set attr.Set, lookup MarkerLookup, opts Options) (Joint, error) {
	r := attr.NewReader(element, set)
	b, err := readBase(r, lookup, opts)
	if err != nil {
		return nil, err
	}
	var j Joint
	switch b.kind {
	case HingeKind:
		j, err = readHinge(r, b, opts)
	case FixedKind:
		j, err = readFixed(r, b, opts)
	case BallKind:
		j = &Ball{base: b}
	case UniversalKind:
		j, err = readUniversal(r, b)
	}
	if err != nil {
		return nil, err
	}
	if err := j.Update(0, rigid.Feedback{}); err != nil {
		return nil, err
	}
	return j, nil
}

func readBase(r *attr.Reader, lookup MarkerLookup, opts Options) (*base, error) {
	name, err := r.String("ID")
	if err != nil {
		return nil, err
	}
	typ, err := r.String("Type")
	if err != nil {
		return nil, err
	}
	kind, ok := kinds[typ]
	if !ok {
		return nil, r.Errorf("Type", typ, "is not a joint type")
	}
	m1, err := findMarker(r, lookup, "Body1MarkerID")
	if err != nil {
		return nil, err
	}
	m2, err := findMarker(r, lookup, "Body2MarkerID")
	if err != nil {
		return nil, err
	}
	if m1.Body().IsWorld() && m2.Body().IsWorld() {
		return nil, fmt.Errorf("joint %s: %w", name, ErrBothWorld)
	}

	soft := Softness{ERP: opts.ERP, CFM: opts.CFM}
	if r.Has("SpringConstant") {
		k, err := r.Float("SpringConstant")
		if err != nil {
			return nil, err
		}
		d, err := r.FloatOr("DampingConstant", 0)
		if err != nil {
			return nil, err
		}
		soft = FromSpringDamper(k, d, opts.StepSize)
	}
	if soft.ERP, err = r.FloatOr("ERP", soft.ERP); err != nil {
		return nil, err
	}
	if soft.CFM, err = r.FloatOr("CFM", soft.CFM); err != nil {
		return nil, err
	}
	return &base{name: name, kind: kind, m1: m1, m2: m2, softness: soft}, nil
}

func findMarker(r *attr.Reader, lookup MarkerLookup, key string) (*marker.Marker, error) {
	id, err := r.String(key)
	if err != nil {
		return nil, err
	}
	m, ok := lookup(id)
	if !ok {
		return nil, r.NotFound(key, id)
	}
	return m, nil
}

// stops reads an optional low/high angle pair.
func stops(r *attr.Reader, lowKey, highKey string, required bool) (lo, hi float64, err error) {
	lo, hi = math.Inf(-1), math.Inf(1)
	if !required && !r.Has(lowKey) && !r.Has(highKey) {
		return lo, hi, nil
	}
	if lo, err = r.Angle(lowKey); err != nil {
		return 0, 0, err
	}
	if hi, err = r.Angle(highKey); err != nil {
		return 0, 0, err
	}
	if lo >= hi {
		v, _ := r.String(highKey)
		return 0, 0, r.Errorf(highKey, v, "must be greater than %s", lowKey)
	}
	return lo, hi, nil
}
