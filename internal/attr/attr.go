// Package attr reads and writes the string-keyed attribute sets that
// describe model elements.
package attr

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/gaitsim/internal/spatial"
)

var (
	ErrMissing   = errors.New("attr: required attribute missing")
	ErrMalformed = errors.New("attr: malformed attribute")
	ErrUnknown   = errors.New("attr: unknown reference")
)

// Set holds the attributes of one element, e.g. {"ID": "Pelvis"}.
type Set map[string]string

func (s Set) Clone() Set {
	c := make(Set, len(s))
	for k, v := range s {
		c[k] = v
	}
	return c
}

func (s Set) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Error describes a bad attribute on a named element.
type Error struct {
	Element string
	ID      string
	Key     string
	Value   string
	Reason  string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Element)
	if e.ID != "" {
		fmt.Fprintf(&b, " ID=%q", e.ID)
	}
	if errors.Is(e.Err, ErrMissing) {
		fmt.Fprintf(&b, " attribute %q not found", e.Key)
		return b.String()
	}
	fmt.Fprintf(&b, " %s=%q", e.Key, e.Value)
	if e.Reason != "" {
		b.WriteString(" ")
		b.WriteString(e.Reason)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Reader gives typed access to a Set on behalf of one element.
type Reader struct {
	element string
	set     Set
}

func NewReader(element string, set Set) *Reader {
	if set == nil {
		set = Set{}
	}
	return &Reader{element: element, set: set}
}

func (r *Reader) Element() string { return r.element }

// ID returns the element's identifier without failing, for messages.
func (r *Reader) ID() string { return r.set["ID"] }

func (r *Reader) Has(key string) bool {
	_, ok := r.set[key]
	return ok
}

// Errorf builds an *Error about key carrying reason.
func (r *Reader) Errorf(key, value, format string, args ...any) error {
	return &Error{
		Element: r.element,
		ID:      r.ID(),
		Key:     key,
		Value:   value,
		Reason:  fmt.Sprintf(format, args...),
		Err:     ErrMalformed,
	}
}

// NotFound reports a reference to a missing element.
func (r *Reader) NotFound(key, value string) error {
	return &Error{Element: r.element, ID: r.ID(), Key: key, Value: value, Reason: "not found", Err: ErrUnknown}
}

func (r *Reader) missing(key string) error {
	return &Error{Element: r.element, ID: r.ID(), Key: key, Err: ErrMissing}
}

func (r *Reader) String(key string) (string, error) {
	v, ok := r.set[key]
	if !ok {
		return "", r.missing(key)
	}
	return v, nil
}

func (r *Reader) StringOr(key, def string) string {
	if v, ok := r.set[key]; ok {
		return v
	}
	return def
}

// Fields splits a required attribute on whitespace.
func (r *Reader) Fields(key string) ([]string, error) {
	v, err := r.String(key)
	if err != nil {
		return nil, err
	}
	return strings.Fields(v), nil
}

func (r *Reader) Float(key string) (float64, error) {
	v, err := r.String(key)
	if err != nil {
		return 0, err
	}
	f, err := ParseFloat(v)
	if err != nil {
		return 0, r.Errorf(key, v, "is not a number")
	}
	return f, nil
}

// FloatOr returns def when key is absent. A present but malformed value is
// still an error.
func (r *Reader) FloatOr(key string, def float64) (float64, error) {
	if !r.Has(key) {
		return def, nil
	}
	return r.Float(key)
}

func (r *Reader) Int(key string) (int, error) {
	v, err := r.String(key)
	if err != nil {
		return 0, err
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, r.Errorf(key, v, "is not an integer")
	}
	return i, nil
}

func (r *Reader) IntOr(key string, def int) (int, error) {
	if !r.Has(key) {
		return def, nil
	}
	return r.Int(key)
}

func (r *Reader) Bool(key string) (bool, error) {
	v, err := r.String(key)
	if err != nil {
		return false, err
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, r.Errorf(key, v, "is not a boolean")
	}
	return b, nil
}

func (r *Reader) BoolOr(key string, def bool) (bool, error) {
	if !r.Has(key) {
		return def, nil
	}
	return r.Bool(key)
}

// Angle reads an angle in radians. A trailing "d" marks degrees and a
// trailing "r" or no suffix marks radians.
func (r *Reader) Angle(key string) (float64, error) {
	v, err := r.String(key)
	if err != nil {
		return 0, err
	}
	a, err := ParseAngle(v)
	if err != nil {
		return 0, r.Errorf(key, v, "is not an angle")
	}
	return a, nil
}

func (r *Reader) AngleOr(key string, def float64) (float64, error) {
	if !r.Has(key) {
		return def, nil
	}
	return r.Angle(key)
}

func (r *Reader) Vector(key string) (r3.Vec, error) {
	fields, err := r.Fields(key)
	if err != nil {
		return r3.Vec{}, err
	}
	if len(fields) != 3 {
		return r3.Vec{}, r.Errorf(key, r.set[key], "needs 3 tokens")
	}
	v, err := ParseVector(fields)
	if err != nil {
		return r3.Vec{}, r.Errorf(key, r.set[key], "is not a vector")
	}
	return v, nil
}

func (r *Reader) VectorOr(key string, def r3.Vec) (r3.Vec, error) {
	if !r.Has(key) {
		return def, nil
	}
	return r.Vector(key)
}

// Floats reads exactly n whitespace separated numbers.
func (r *Reader) Floats(key string, n int) ([]float64, error) {
	fields, err := r.Fields(key)
	if err != nil {
		return nil, err
	}
	if len(fields) != n {
		return nil, r.Errorf(key, r.set[key], "needs %d tokens", n)
	}
	out := make([]float64, n)
	for i, f := range fields {
		if out[i], err = ParseFloat(f); err != nil {
			return nil, r.Errorf(key, r.set[key], "token %d is not a number", i)
		}
	}
	return out, nil
}

// Ints reads exactly n whitespace-separated integers.
func (r *Reader) Ints(key string, n int) ([]int, error) {
	fields, err := r.Fields(key)
	if err != nil {
		return nil, err
	}
	if len(fields) != n {
		return nil, r.Errorf(key, r.set[key], "needs %d tokens", n)
	}
	out := make([]int, n)
	for i, f := range fields {
		if out[i], err = strconv.Atoi(f); err != nil {
			return nil, r.Errorf(key, r.set[key], "token %d is not an integer", i)
		}
	}
	return out, nil
}

// Enum maps the value of key onto one of choices, falling back to def when
// absent.
func Enum[T any](r *Reader, key string, choices map[string]T, def T) (T, error) {
	v, ok := r.set[key]
	if !ok {
		return def, nil
	}
	if c, ok := choices[strings.TrimSpace(v)]; ok {
		return c, nil
	}
	names := make([]string, 0, len(choices))
	for name := range choices {
		names = append(names, name)
	}
	sort.Strings(names)
	return def, r.Errorf(key, v, "must be one of %s", strings.Join(names, ", "))
}

func ParseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// ParseAngle returns s in radians.
func ParseAngle(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasSuffix(s, "d"):
		v, err := ParseFloat(strings.TrimSuffix(s, "d"))
		return spatial.DegToRad(v), err
	case strings.HasSuffix(s, "r"):
		return ParseFloat(strings.TrimSuffix(s, "r"))
	}
	return ParseFloat(s)
}

func ParseVector(fields []string) (r3.Vec, error) {
	if len(fields) != 3 {
		return r3.Vec{}, fmt.Errorf("%w: vector needs 3 tokens, got %d", ErrMalformed, len(fields))
	}
	var c [3]float64
	for i, f := range fields {
		v, err := ParseFloat(f)
		if err != nil {
			return r3.Vec{}, fmt.Errorf("%w: %q", ErrMalformed, f)
		}
		c[i] = v
	}
	return r3.Vec{X: c[0], Y: c[1], Z: c[2]}, nil
}

// ParseQuaternion reads "w x y z". When the first token ends in "d" or "r"
// the tokens are instead "angle x y z", an axis-angle rotation. The result
// is normalized; a zero quaternion or a zero axis is malformed.
func ParseQuaternion(fields []string) (quat.Number, error) {
	if len(fields) != 4 {
		return quat.Number{}, fmt.Errorf("%w: quaternion needs 4 tokens, got %d", ErrMalformed, len(fields))
	}
	axis, err := ParseVector(fields[1:])
	if err != nil {
		return quat.Number{}, err
	}
	first := strings.TrimSpace(fields[0])
	if strings.HasSuffix(first, "d") || strings.HasSuffix(first, "r") {
		angle, err := ParseAngle(first)
		if err != nil {
			return quat.Number{}, fmt.Errorf("%w: %q", ErrMalformed, first)
		}
		if _, err := spatial.UnitChecked(axis); err != nil {
			return quat.Number{}, fmt.Errorf("%w: zero rotation axis", ErrMalformed)
		}
		return spatial.FromAxisAngle(axis, angle), nil
	}
	w, err := ParseFloat(first)
	if err != nil {
		return quat.Number{}, fmt.Errorf("%w: %q", ErrMalformed, first)
	}
	q := quat.Number{Real: w, Imag: axis.X, Jmag: axis.Y, Kmag: axis.Z}
	if n := quat.Abs(q); n < spatial.DegenerateLength || math.IsNaN(n) {
		return quat.Number{}, fmt.Errorf("%w: zero quaternion", ErrMalformed)
	}
	return spatial.Normalize(q), nil
}

func FormatFloat(f float64) string {
	if math.IsInf(f, 1) {
		return "inf"
	}
	if math.IsInf(f, -1) {
		return "-inf"
	}
	return strconv.FormatFloat(f, 'g', 17, 64)
}

func FormatVector(v r3.Vec) string {
	return FormatFloat(v.X) + " " + FormatFloat(v.Y) + " " + FormatFloat(v.Z)
}

func FormatQuaternion(q quat.Number) string {
	return FormatFloat(q.Real) + " " + FormatFloat(q.Imag) + " " + FormatFloat(q.Jmag) + " " + FormatFloat(q.Kmag)
}
