// Package filter provides the small scalar filters the synthesis and
// effects code builds on: one-pole smoothers and biquad resonators.
package filter

import "math"

// OnePole is a single-pole lowpass filter, y[n] = y[n-1] + a*(x[n] - y[n-1]).
type OnePole struct {
	coeff float64
	state float64

	bypass bool
}

// NewOnePoleLowpass creates a one-pole lowpass at the given cutoff.
//
// A cutoff that is non-positive or at/above Nyquist disables the filter and
// passes input through unchanged.
func NewOnePoleLowpass(cutoffHz, sampleRate float64) *OnePole {
	f := &OnePole{}
	f.SetCutoff(cutoffHz, sampleRate)
	return f
}

// SetCutoff recomputes the pole coefficient. Out-of-band cutoffs bypass.
func (f *OnePole) SetCutoff(cutoffHz, sampleRate float64) {
	nyquist := sampleRate / 2

	if cutoffHz <= 0 || cutoffHz >= nyquist || sampleRate <= 0 {
		f.bypass = true
		f.coeff = 1
		return
	}

	f.bypass = false
	f.coeff = 1 - math.Exp(-2*math.Pi*cutoffHz/sampleRate)
}

// Bypassed reports whether the filter passes input through unchanged.
func (f *OnePole) Bypassed() bool { return f.bypass }

// Process filters one sample.
func (f *OnePole) Process(input float64) float64 {
	if f.bypass {
		return input
	}

	f.state += f.coeff * (input - f.state)
	return f.state
}

// SetDamping configures the pole directly from a normalized damping amount
// in [0, 1], where 0 leaves the signal untouched and 1 is heaviest damping.
// Used by the waveguide string models.
func (f *OnePole) SetDamping(amount float64) {
	if amount <= 0 {
		f.bypass = true
		f.coeff = 1
		return
	}

	if amount > 1 {
		amount = 1
	}

	f.bypass = false
	f.coeff = 1 - 0.6*amount
}

// Reset clears filter state.
func (f *OnePole) Reset() {
	f.state = 0
}
