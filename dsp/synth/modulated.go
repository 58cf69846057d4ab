package synth

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-synth/dsp/osc"
)

func renderFM(p FMParams, n int, sampleRate float64) []float64 {
	out := make([]float64, n)

	carrier := osc.NewPhase(0)
	modulator := osc.NewPhase(0)

	for i := range out {
		mod := osc.Sine(modulator.Advance(p.ModulatorFrequency, sampleRate))
		carrierPhase := carrier.Advance(p.CarrierFrequency, sampleRate)

		out[i] = p.Amplitude * math.Sin(2*math.Pi*carrierPhase+p.Index*mod)
	}

	return out
}

func renderAM(p AMParams, n int, sampleRate float64) []float64 {
	out := make([]float64, n)

	carrier := osc.NewPhase(0)
	modulator := osc.NewPhase(0)

	// Keep the modulated product within the amplitude bound.
	norm := 1 / (1 + p.Depth)

	for i := range out {
		mod := osc.Sine(modulator.Advance(p.ModulatorFrequency, sampleRate))
		c := osc.Sine(carrier.Advance(p.CarrierFrequency, sampleRate))

		out[i] = p.Amplitude * norm * c * (1 + mod*p.Depth)
	}

	return out
}

func renderRingMod(p RingModParams, n int, sampleRate float64) []float64 {
	out := make([]float64, n)

	carrier := osc.NewPhase(0)
	modulator := osc.NewPhase(0)

	for i := range out {
		c := osc.Sine(carrier.Advance(p.CarrierFrequency, sampleRate))
		m := osc.Sine(modulator.Advance(p.ModulatorFrequency, sampleRate))

		out[i] = c*(1-p.Mix) + c*m*p.Mix
	}

	return out
}

func renderNoise(p NoiseParams, n int, r *rand.Rand) []float64 {
	out := make([]float64, n)

	gen := osc.NewNoiseGenerator(p.Color, r)
	gen.Fill(out)

	if p.Amplitude != 1 {
		for i := range out {
			out[i] *= p.Amplitude
		}
	}

	return out
}
