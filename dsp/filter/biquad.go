package filter

import (
	"fmt"
	"math"
)

// Biquad is a direct-form-I second-order section.
type Biquad struct {
	b0, b1, b2 float64
	a1, a2     float64

	x1, x2 float64
	y1, y2 float64
}

// NewBandpass creates a constant-peak-gain bandpass section.
func NewBandpass(centerHz, q, sampleRate float64) (*Biquad, error) {
	if err := validateSection(centerHz, q, sampleRate); err != nil {
		return nil, err
	}

	b := &Biquad{}
	b.SetBandpass(centerHz, q, sampleRate)

	return b, nil
}

// NewResonator creates a resonant bandpass from a center frequency and a
// bandwidth in Hz, as used for formant shaping.
func NewResonator(centerHz, bandwidthHz, sampleRate float64) (*Biquad, error) {
	if bandwidthHz <= 0 || !isFinite(bandwidthHz) {
		return nil, fmt.Errorf("resonator bandwidth must be > 0 and finite: %f", bandwidthHz)
	}

	q := centerHz / bandwidthHz
	if q < 0.1 {
		q = 0.1
	}

	return NewBandpass(centerHz, q, sampleRate)
}

// SetBandpass recomputes coefficients for a bandpass at centerHz with the
// given Q. State is preserved.
func (b *Biquad) SetBandpass(centerHz, q, sampleRate float64) {
	omega := 2 * math.Pi * centerHz / sampleRate
	sn := math.Sin(omega)
	cs := math.Cos(omega)
	alpha := sn / (2 * q)

	a0 := 1 + alpha

	b.b0 = alpha / a0
	b.b1 = 0
	b.b2 = -alpha / a0
	b.a1 = -2 * cs / a0
	b.a2 = (1 - alpha) / a0
}

// SetLowpass recomputes coefficients for a lowpass at cutoffHz with the
// given Q.
func (b *Biquad) SetLowpass(cutoffHz, q, sampleRate float64) {
	omega := 2 * math.Pi * cutoffHz / sampleRate
	sn := math.Sin(omega)
	cs := math.Cos(omega)
	alpha := sn / (2 * q)

	a0 := 1 + alpha

	b.b0 = (1 - cs) / 2 / a0
	b.b1 = (1 - cs) / a0
	b.b2 = (1 - cs) / 2 / a0
	b.a1 = -2 * cs / a0
	b.a2 = (1 - alpha) / a0
}

// Process filters one sample.
func (b *Biquad) Process(input float64) float64 {
	out := b.b0*input + b.b1*b.x1 + b.b2*b.x2 - b.a1*b.y1 - b.a2*b.y2

	b.x2 = b.x1
	b.x1 = input
	b.y2 = b.y1
	b.y1 = out

	return out
}

// ProcessInPlace filters buf in place.
func (b *Biquad) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = b.Process(buf[i])
	}
}

// Reset clears filter state.
func (b *Biquad) Reset() {
	b.x1, b.x2, b.y1, b.y2 = 0, 0, 0, 0
}

func validateSection(centerHz, q, sampleRate float64) error {
	if sampleRate <= 0 || !isFinite(sampleRate) {
		return fmt.Errorf("biquad sample rate must be > 0 and finite: %f", sampleRate)
	}

	if centerHz <= 0 || centerHz >= sampleRate/2 || !isFinite(centerHz) {
		return fmt.Errorf("biquad center must be in (0, nyquist): %f", centerHz)
	}

	if q <= 0 || !isFinite(q) {
		return fmt.Errorf("biquad q must be > 0 and finite: %f", q)
	}

	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
