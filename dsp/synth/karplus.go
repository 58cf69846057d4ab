package synth

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-synth/dsp/rng"
)

// renderKarplusStrong implements the classic plucked-string algorithm: a
// delay line of one period seeded with noise, read through an
// adjacent-sample-average feedback filter attenuated by Decay.
func renderKarplusStrong(p KarplusStrongParams, n int, sampleRate float64, r *rand.Rand) []float64 {
	out := make([]float64, n)

	period := int(math.Round(sampleRate / p.Frequency))
	if period < 2 {
		period = 2
	}

	line := make([]float64, period)
	for i := range line {
		line[i] = rng.Uniform(r)
	}

	pos := 0

	for i := range out {
		next := (pos + 1) % period

		out[i] = line[pos]
		line[pos] = p.Decay * 0.5 * (line[pos] + line[next])
		pos = next
	}

	return out
}

// renderPluck is Karplus-Strong with a pick-position comb filter applied to
// the excitation, which notches harmonics at multiples of 1/pickPosition.
func renderPluck(p PluckParams, n int, sampleRate float64, r *rand.Rand) []float64 {
	out := make([]float64, n)

	period := int(math.Round(sampleRate / p.Frequency))
	if period < 2 {
		period = 2
	}

	excitation := make([]float64, period)
	for i := range excitation {
		excitation[i] = rng.Uniform(r)
	}

	combDelay := int(math.Round(p.PickPosition * float64(period)))
	if combDelay < 1 {
		combDelay = 1
	}

	line := make([]float64, period)
	for i := range line {
		delayed := 0.0
		if i >= combDelay {
			delayed = excitation[i-combDelay]
		}

		line[i] = excitation[i] - delayed
	}

	pos := 0

	for i := range out {
		next := (pos + 1) % period

		out[i] = line[pos]
		line[pos] = p.Decay * 0.5 * (line[pos] + line[next])
		pos = next
	}

	return out
}
