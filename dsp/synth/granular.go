package synth

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-synth/dsp/window"
)

// renderGranular schedules overlapping Hann-windowed sine grains at the
// configured density with per-grain start jitter, pitch, and equal-power
// pan folded to mono. Output is normalized by the square root of the
// average overlap.
func renderGranular(p GranularParams, n int, sampleRate float64, r *rand.Rand) []float64 {
	out := make([]float64, n)

	grainLen := int(math.Round(p.GrainSeconds * sampleRate))
	if grainLen < 2 {
		grainLen = 2
	}

	spawnInterval := sampleRate / p.Density
	jitterRange := p.Jitter * spawnInterval

	duration := float64(n) / sampleRate
	grainCount := int(math.Ceil(duration * p.Density))

	for g := range grainCount {
		nominal := float64(g) * spawnInterval

		jitter := 0.0
		if jitterRange > 0 {
			jitter = (r.Float64()*2 - 1) * jitterRange
		}

		start := int(nominal + jitter)
		if start < 0 {
			start = 0
		}

		pitchOctaves := 0.0
		if p.PitchSpread > 0 {
			pitchOctaves = (r.Float64()*2 - 1) * p.PitchSpread / 2
		}

		freq := p.Frequency * math.Pow(2, pitchOctaves)
		phase := r.Float64()

		// Equal-power pan folded to mono keeps per-grain loudness flat.
		pan := r.Float64()
		gain := (math.Cos(pan*math.Pi/2) + math.Sin(pan*math.Pi/2)) / math.Sqrt2

		step := freq / sampleRate

		for i := range grainLen {
			idx := start + i
			if idx >= n {
				break
			}

			env := window.Hann(i, grainLen)
			out[idx] += gain * env * math.Sin(2*math.Pi*(phase+float64(i)*step))
		}
	}

	// Average overlap is density * grain length in seconds.
	overlap := p.Density * p.GrainSeconds
	if overlap > 1 {
		scale := 1 / math.Sqrt(overlap)
		for i := range out {
			out[i] *= scale
		}
	}

	return out
}
