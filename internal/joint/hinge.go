package joint

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/gaitsim/internal/attr"
	"github.com/san-kum/gaitsim/internal/marker"
	"github.com/san-kum/gaitsim/internal/mechanics"
	"github.com/san-kum/gaitsim/internal/rigid"
)

// Hinge rotates about the world X axis of its body 1 marker, through that
// marker's origin.
type Hinge struct {
	*base
	axis  r3.Vec
	angle float64

	lowStop, highStop float64
	stopSoftness      Softness
	bounce            float64

	lowTorque, highTorque float64
	limited               bool
	stop                  *mechanics.StopTorque
	stepSize              float64
}

func readHinge(r *attr.Reader, b *base, opts Options) (*Hinge, error) {
	h := &Hinge{
		base:         b,
		stopSoftness: b.softness,
		lowTorque:    math.Inf(-1),
		highTorque:   math.Inf(1),
		stepSize:     opts.StepSize,
	}
	var err error
	if h.lowStop, h.highStop, err = stops(r, "LowStop", "HighStop", true); err != nil {
		return nil, err
	}

	window := opts.StopTorqueWindow
	if r.Has("HighStopTorqueLimit") {
		if h.highTorque, err = r.Float("HighStopTorqueLimit"); err != nil {
			return nil, err
		}
		if h.lowTorque, err = r.Float("LowStopTorqueLimit"); err != nil {
			return nil, err
		}
		if window, err = r.Int("StopTorqueWindow"); err != nil {
			return nil, err
		}
		h.limited = true
	}
	h.stop = mechanics.NewStopTorque(window)

	if h.stopSoftness.CFM, err = r.FloatOr("StopCFM", h.stopSoftness.CFM); err != nil {
		return nil, err
	}
	if h.stopSoftness.ERP, err = r.FloatOr("StopERP", h.stopSoftness.ERP); err != nil {
		return nil, err
	}
	if h.bounce, err = r.FloatOr("StopBounce", 0); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *Hinge) Update(t float64, fb rigid.Feedback) error {
	f1, f2, err := h.resolve(fb)
	if err != nil {
		return err
	}
	h.axis = f1.WorldAxis(marker.X)
	h.angle = twistX(f1.WorldQuaternion(), f2.WorldQuaternion())
	h.stop.Update(t, wrench1(f1, fb), h.anchor, h.axis)
	return nil
}

// twistX is the rotation of frame b relative to frame a about a's X axis,
// in (-pi, pi].
func twistX(a, b quat.Number) float64 {
	rel := quat.Mul(quat.Conj(a), b)
	angle := 2 * math.Atan2(rel.Imag, rel.Real)
	switch {
	case angle > math.Pi:
		angle -= 2 * math.Pi
	case angle <= -math.Pi:
		angle += 2 * math.Pi
	}
	return angle
}

func (h *Hinge) Axis() r3.Vec                      { return h.axis }
func (h *Hinge) Angle() float64                    { return h.angle }
func (h *Hinge) Stops() (low, high float64)        { return h.lowStop, h.highStop }
func (h *Hinge) TorqueLimits() (low, high float64) { return h.lowTorque, h.highTorque }
func (h *Hinge) StopSoftness() Softness            { return h.stopSoftness }
func (h *Hinge) StopTorque() *mechanics.StopTorque { return h.stop }

// SetStopSpringDamp sets the stop softness from a spring and damper.
func (h *Hinge) SetStopSpringDamp(k, d float64) {
	h.stopSoftness = FromSpringDamper(k, d, h.stepSize)
}

// PassiveStopTorque estimates the torque the stops apply from how far the
// joint has passed them, ignoring damping.
func (h *Hinge) PassiveStopTorque() float64 {
	var stop float64
	switch {
	case h.angle > h.highStop:
		stop = h.highStop
	case h.angle < h.lowStop:
		stop = h.lowStop
	default:
		return 0
	}
	return (stop - h.angle) * h.stopSoftness.Spring(h.stepSize)
}

// LimitExceeded tests the mean stop torque against the torque limits.
func (h *Hinge) LimitExceeded() (string, bool) {
	switch h.stop.TestLimits(h.lowTorque, h.highTorque) {
	case -1:
		return fmt.Sprintf("hinge %s stop torque %g below %g", h.name, h.stop.Mean(), h.lowTorque), true
	case 1:
		return fmt.Sprintf("hinge %s stop torque %g above %g", h.name, h.stop.Mean(), h.highTorque), true
	}
	return "", false
}

func (h *Hinge) Attributes() attr.Set {
	set := h.attributes()
	set["LowStop"] = attr.FormatFloat(h.lowStop)
	set["HighStop"] = attr.FormatFloat(h.highStop)
	if h.limited {
		set["LowStopTorqueLimit"] = attr.FormatFloat(h.lowTorque)
		set["HighStopTorqueLimit"] = attr.FormatFloat(h.highTorque)
		set["StopTorqueWindow"] = fmt.Sprint(h.stop.Window())
	}
	set["StopERP"] = attr.FormatFloat(h.stopSoftness.ERP)
	set["StopCFM"] = attr.FormatFloat(h.stopSoftness.CFM)
	set["StopBounce"] = attr.FormatFloat(h.bounce)
	return set
}
