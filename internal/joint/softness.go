package joint

import "math"

const (
	DefaultERP      = 0.2
	DefaultCFM      = 1e-10
	DefaultStepSize = 1e-4
)

// Softness is the error reduction parameter and constraint force mixing
// pair a constraint solver uses to make a joint behave like a damped
// spring.
type Softness struct {
	ERP float64
	CFM float64
}

func DefaultSoftness() Softness { return Softness{ERP: DefaultERP, CFM: DefaultCFM} }

func usable(x float64) bool {
	return x != 0 && !math.IsNaN(x) && !math.IsInf(x, 0)
}

// FromSpringDamper converts a spring constant k and damping constant d at
// step size h. A zero h*k+d falls back to the defaults.
func FromSpringDamper(k, d, h float64) Softness {
	den := h*k + d
	if !usable(den) {
		return DefaultSoftness()
	}
	return Softness{ERP: h * k / den, CFM: 1 / den}
}

// FromSpringERP keeps erp and picks the CFM that gives spring constant k.
func FromSpringERP(k, erp, h float64) Softness {
	if !usable(h * k) {
		return DefaultSoftness()
	}
	return Softness{ERP: erp, CFM: erp / (h * k)}
}

// Spring is the equivalent spring constant ERP/(CFM*h).
func (s Softness) Spring(h float64) float64 {
	if !usable(s.CFM * h) {
		return DefaultERP / (DefaultCFM * DefaultStepSize)
	}
	return s.ERP / (s.CFM * h)
}

// Damping is the equivalent damping constant (1-ERP)/CFM.
func (s Softness) Damping() float64 {
	if !usable(s.CFM) {
		return (1 - DefaultERP) / DefaultCFM
	}
	return (1 - s.ERP) / s.CFM
}
