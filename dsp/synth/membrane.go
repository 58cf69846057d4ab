package synth

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/rng"
)

// membraneModeRatios are the first nine mode frequencies of an ideal
// circular membrane relative to the fundamental.
var membraneModeRatios = [9]float64{
	1.0, 1.594, 2.136, 2.296, 2.653, 2.918, 3.156, 3.501, 3.600,
}

// renderMembrane is a modal drum: nine independently-decaying sines with
// random initial phases, excited by a short noise-plus-impulse burst and
// peak-normalized to [-1, 1].
//
// A non-finite or zero frequency renders silence.
func renderMembrane(p MembraneParams, n int, sampleRate float64, r *rand.Rand) []float64 {
	out := make([]float64, n)

	if !core.IsFinite(p.Frequency) || p.Frequency <= 0 {
		return out
	}

	type mode struct {
		freq  float64
		amp   float64
		decay float64
		phase float64
	}

	modes := make([]mode, 0, len(membraneModeRatios))
	nyquist := sampleRate / 2

	for k, ratio := range membraneModeRatios {
		freq := p.Frequency * ratio

		// Phases are drawn for every mode, audible or not, so the stream
		// consumption is independent of sample rate.
		phase := r.Float64() * 2 * math.Pi

		if freq >= nyquist {
			continue
		}

		// Tone tilts energy between low and high modes; decay shortens
		// with mode number the way a struck membrane rings.
		tilt := 1.5 - p.Tone
		amp := math.Pow(ratio, -tilt)
		decaySeconds := p.Decay / (1 + 0.7*float64(k))

		modes = append(modes, mode{freq: freq, amp: amp, decay: decaySeconds, phase: phase})
	}

	burstLen := int(0.005 * sampleRate)
	if burstLen < 1 {
		burstLen = 1
	}

	if burstLen > n {
		burstLen = n
	}

	burst := make([]float64, burstLen)
	for i := range burst {
		env := 1 - float64(i)/float64(burstLen)
		burst[i] = rng.Uniform(r) * p.Strike * env
	}

	burst[0] += 0.5 + 0.5*p.Strike

	for i := range out {
		t := float64(i) / sampleRate

		var sum float64

		for mi := range modes {
			m := &modes[mi]
			sum += m.amp * math.Exp(-t/m.decay) * math.Sin(2*math.Pi*m.freq*t+m.phase)
		}

		if i < burstLen {
			sum += burst[i]
		}

		out[i] = sum
	}

	peak := 0.0
	for _, v := range out {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}

	if peak > 0 {
		scale := 1 / peak
		for i := range out {
			out[i] *= scale
		}
	}

	return out
}
