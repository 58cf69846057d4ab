package synth

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-synth/dsp/filter"
	"github.com/cwbudde/algo-synth/dsp/osc"
)

// renderVocoder imposes the target band envelope on a harmonically rich
// source: a sawtooth carrier blended with white noise, split through a bank
// of log-spaced bandpass filters whose outputs are scaled by the band gains
// and summed.
func renderVocoder(p VocoderParams, n int, sampleRate float64, r *rand.Rand) []float64 {
	out := make([]float64, n)

	bands := len(p.BandGains)
	nyquist := sampleRate / 2

	low := 100.0
	high := 8000.0
	if high > nyquist*0.9 {
		high = nyquist * 0.9
	}

	bank := make([]*filter.Biquad, 0, bands)
	gains := make([]float64, 0, bands)
	logStep := math.Log(high/low) / float64(bands-1)

	for b := range bands {
		center := low * math.Exp(float64(b)*logStep)

		bp, err := filter.NewBandpass(center, 4, sampleRate)
		if err != nil {
			continue
		}

		bank = append(bank, bp)
		gains = append(gains, p.BandGains[b])
	}

	noise := osc.NewNoiseGenerator(osc.NoiseWhite, r)
	phase := osc.NewPhase(0)

	for i := range out {
		saw := osc.Saw(phase.Advance(p.CarrierFrequency, sampleRate))
		source := saw*(1-p.NoiseMix) + noise.Next()*p.NoiseMix

		var sum float64
		for b, bp := range bank {
			sum += gains[b] * bp.Process(source)
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
