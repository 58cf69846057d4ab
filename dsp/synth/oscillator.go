package synth

import (
	"math"

	"github.com/cwbudde/algo-synth/dsp/osc"
)

// sweepFrequency returns the instantaneous frequency at normalized buffer
// position t in [0, 1].
func sweepFrequency(base float64, s Sweep, t float64) float64 {
	switch s.Mode {
	case SweepLinear:
		return base + (s.EndFrequency-base)*t
	case SweepExponential:
		if base <= 0 || s.EndFrequency <= 0 {
			return base
		}

		return base * math.Pow(s.EndFrequency/base, t)
	case SweepLogarithmic:
		return base + (s.EndFrequency-base)*math.Log10(1+9*t)
	default:
		return base
	}
}

func renderOscillator(p OscillatorParams, n int, sampleRate float64) []float64 {
	out := make([]float64, n)
	phase := osc.NewPhase(0)

	invN := 1 / float64(n)

	for i := range out {
		freq := sweepFrequency(p.Frequency, p.Sweep, float64(i)*invN)
		out[i] = p.Amplitude * osc.Evaluate(p.Waveform, phase.Advance(freq, sampleRate), p.Duty)
	}

	return out
}

func renderMultiOscillator(p MultiOscillatorParams, n int, sampleRate float64) []float64 {
	out := make([]float64, n)

	phases := make([]osc.Phase, len(p.Voices))
	detunes := make([]float64, len(p.Voices))

	for i, v := range p.Voices {
		phases[i] = osc.NewPhase(0)
		detunes[i] = math.Pow(2, v.DetuneCents/1200)
	}

	norm := 1 / float64(len(p.Voices))
	invN := 1 / float64(n)

	for i := range out {
		t := float64(i) * invN

		var sum float64

		for vi := range p.Voices {
			v := &p.Voices[vi]
			freq := sweepFrequency(v.Frequency, p.Sweep, t) * detunes[vi]
			sum += v.Level * osc.Evaluate(v.Waveform, phases[vi].Advance(freq, sampleRate), v.Duty)
		}

		out[i] = sum * norm
	}

	return out
}

func renderAdditive(p AdditiveParams, n int, sampleRate float64) []float64 {
	out := make([]float64, n)

	phases := make([]osc.Phase, len(p.Partials))
	for i := range phases {
		phases[i] = osc.NewPhase(0)
	}

	var totalLevel float64
	for _, part := range p.Partials {
		totalLevel += part.Level
	}

	norm := 1.0
	if totalLevel > 1 {
		norm = 1 / totalLevel
	}

	invN := 1 / float64(n)
	nyquist := sampleRate / 2

	for i := range out {
		base := sweepFrequency(p.Frequency, p.Sweep, float64(i)*invN)

		var sum float64

		for pi := range p.Partials {
			part := &p.Partials[pi]

			freq := base * part.Ratio
			if freq >= nyquist {
				phases[pi].Advance(freq, sampleRate)
				continue
			}

			sum += part.Level * osc.Sine(phases[pi].Advance(freq, sampleRate))
		}

		out[i] = sum * norm
	}

	return out
}
