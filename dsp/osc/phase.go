// Package osc provides the phase accumulator, waveform, and noise
// primitives shared by the synthesis variants.
package osc

// Phase is a normalized phase accumulator in [0, 1).
//
// Every periodic algorithm advances phase through this type so wrap
// behavior is identical everywhere.
type Phase struct {
	value float64
}

// NewPhase returns an accumulator starting at the given normalized phase.
func NewPhase(start float64) Phase {
	p := Phase{value: start}
	p.wrap()
	return p
}

// Value returns the current phase in [0, 1).
func (p *Phase) Value() float64 {
	return p.value
}

// Advance steps the phase by freq/sampleRate and returns the phase before
// the step, so the first sample of a cycle starts exactly at the phase the
// accumulator held.
func (p *Phase) Advance(freq, sampleRate float64) float64 {
	current := p.value

	if sampleRate > 0 {
		p.value += freq / sampleRate
		p.wrap()
	}

	return current
}

func (p *Phase) wrap() {
	for p.value >= 1 {
		p.value -= 1
	}

	for p.value < 0 {
		p.value += 1
	}
}
