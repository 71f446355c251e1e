package filter

import (
	"fmt"
	"math"
)

// Coefficients of a second order low-pass section:
//
//	y[n] = B0*x[n] + B1*x[n-1] + B2*x[n-2] + A1*y[n-1] + A2*y[n-2]
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// ButterworthCoefficients designs a 2nd order Butterworth low-pass by
// bilinear transform.
func ButterworthCoefficients(cutoff, sampleRate float64) (Coefficients, error) {
	if !(cutoff > 0) || !(sampleRate > 0) || cutoff >= sampleRate/2 {
		return Coefficients{}, fmt.Errorf("%w: cutoff %g Hz at %g Hz", ErrCutoff, cutoff, sampleRate)
	}
	ita := 1 / math.Tan(math.Pi*cutoff/sampleRate)
	q := math.Sqrt2
	b0 := 1 / (1 + q*ita + ita*ita)
	return Coefficients{
		B0: b0,
		B1: 2 * b0,
		B2: b0,
		A1: 2 * (ita*ita - 1) * b0,
		A2: -(1 - q*ita + ita*ita) * b0,
	}, nil
}

type Butterworth struct {
	c      Coefficients
	x1, x2 float64
	y1, y2 float64
}

func NewButterworth(cutoff, sampleRate float64) (*Butterworth, error) {
	c, err := ButterworthCoefficients(cutoff, sampleRate)
	if err != nil {
		return nil, err
	}
	return &Butterworth{c: c}, nil
}

// NewButterworthFrom shares precomputed coefficients, one filter per cell.
func NewButterworthFrom(c Coefficients) *Butterworth {
	return &Butterworth{c: c}
}

func (b *Butterworth) AddSample(x float64) {
	y := b.c.B0*x + b.c.B1*b.x1 + b.c.B2*b.x2 + b.c.A1*b.y1 + b.c.A2*b.y2
	b.x2, b.x1 = b.x1, x
	b.y2, b.y1 = b.y1, y
}

func (b *Butterworth) Output() float64 { return b.y1 }

func (b *Butterworth) Reset() {
	b.x1, b.x2, b.y1, b.y2 = 0, 0, 0, 0
}

func (b *Butterworth) Coefficients() Coefficients { return b.c }
