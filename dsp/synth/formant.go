package synth

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-synth/dsp/filter"
	"github.com/cwbudde/algo-synth/dsp/osc"
)

// renderFormant shapes a glottal sawtooth, optionally blended with breath
// noise, through parallel resonators at the formant frequencies.
func renderFormant(p FormantParams, n int, sampleRate float64, r *rand.Rand) []float64 {
	out := make([]float64, n)

	resonators := make([]*filter.Biquad, 0, len(p.Formants))
	gains := make([]float64, 0, len(p.Formants))

	for _, f := range p.Formants {
		res, err := filter.NewResonator(f.CenterHz, f.BandwidthHz, sampleRate)
		if err != nil {
			continue
		}

		resonators = append(resonators, res)
		gains = append(gains, f.Gain)
	}

	noise := osc.NewNoiseGenerator(osc.NoiseWhite, r)
	phase := osc.NewPhase(0)

	for i := range out {
		saw := osc.Saw(phase.Advance(p.Frequency, sampleRate))
		source := saw*(1-p.Breathiness) + noise.Next()*p.Breathiness

		var sum float64
		for k, res := range resonators {
			sum += gains[k] * res.Process(source)
		}

		out[i] = sum
	}

	peak := 0.0
	for _, v := range out {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}

	if peak > 1 {
		scale := 1 / peak
		for i := range out {
			out[i] *= scale
		}
	}

	return out
}
