package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrTooShort   = errors.New("analysis: need at least two samples")
	ErrSampleRate = errors.New("analysis: sample rate must be positive")
)

// Window tapers a detrended sequence in place before the transform.
type Window func([]float64) []float64

var (
	Rectangular Window = window.Rectangular
	Hann        Window = window.Hann
	Hamming     Window = window.Hamming
	Blackman    Window = window.Blackman
)

var Windows = map[string]Window{
	"rectangular": Rectangular,
	"hann":        Hann,
	"hamming":     Hamming,
	"blackman":    Blackman,
}

type Spectrum struct {
	Frequencies []float64
	Amplitudes  []float64
}

// PowerSpectrum removes the mean, applies w and returns the one-sided
// amplitude spectrum. Amplitudes are corrected for the window's coherent
// gain so a pure sinusoid of amplitude A reads close to A.
func PowerSpectrum(data []float64, sampleRate float64, w Window) (*Spectrum, error) {
	n := len(data)
	if n < 2 {
		return nil, ErrTooShort
	}
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, ErrSampleRate
	}
	if w == nil {
		w = Rectangular
	}

	mean := stat.Mean(data, nil)
	seq := make([]float64, n)
	for i, v := range data {
		seq[i] = v - mean
	}

	ones := make([]float64, n)
	for i := range ones {
		ones[i] = 1
	}
	gain := 0.0
	for _, v := range w(ones) {
		gain += v
	}
	w(seq)

	fft := fourier.NewFFT(n)
	coeff := fft.Coefficients(nil, seq)

	spec := &Spectrum{
		Frequencies: make([]float64, len(coeff)),
		Amplitudes:  make([]float64, len(coeff)),
	}
	for i, c := range coeff {
		spec.Frequencies[i] = fft.Freq(i) * sampleRate
		amp := cmplx.Abs(c) / gain
		if i > 0 && !(n%2 == 0 && i == len(coeff)-1) {
			amp *= 2
		}
		spec.Amplitudes[i] = amp
	}
	return spec, nil
}

// Dominant returns the frequency and amplitude of the largest non-DC bin.
func (s *Spectrum) Dominant() (float64, float64) {
	best := 0
	for i := 1; i < len(s.Amplitudes); i++ {
		if best == 0 || s.Amplitudes[i] > s.Amplitudes[best] {
			best = i
		}
	}
	if best == 0 {
		return 0, 0
	}
	return s.Frequencies[best], s.Amplitudes[best]
}

// Resolution is the spacing between frequency bins.
func (s *Spectrum) Resolution() float64 {
	if len(s.Frequencies) < 2 {
		return 0
	}
	return s.Frequencies[1] - s.Frequencies[0]
}
