package osc

import (
	"math/rand"

	"github.com/cwbudde/algo-synth/dsp/rng"
)

// NoiseColor selects the spectral tilt of generated noise.
type NoiseColor int

const (
	NoiseWhite NoiseColor = iota
	NoisePink
	NoiseBrown
)

// String returns the noise color name.
func (c NoiseColor) String() string {
	switch c {
	case NoiseWhite:
		return "white"
	case NoisePink:
		return "pink"
	case NoiseBrown:
		return "brown"
	default:
		return "unknown"
	}
}

// NoiseGenerator produces deterministic noise from an exclusively-owned
// pseudorandom stream. For a fixed seed and sample count the output is
// identical across runs.
type NoiseGenerator struct {
	color NoiseColor
	r     *rand.Rand

	// Pink noise filter poles (Paul Kellet economy form).
	b0, b1, b2 float64

	// Brown noise integrator state.
	last float64
}

// NewNoiseGenerator creates a generator over the given stream.
func NewNoiseGenerator(color NoiseColor, r *rand.Rand) *NoiseGenerator {
	return &NoiseGenerator{color: color, r: r}
}

// Next returns the next noise sample in [-1, 1].
func (n *NoiseGenerator) Next() float64 {
	white := rng.Uniform(n.r)

	switch n.color {
	case NoisePink:
		n.b0 = 0.99765*n.b0 + white*0.0990460
		n.b1 = 0.96300*n.b1 + white*0.2965164
		n.b2 = 0.57000*n.b2 + white*1.0526913

		pink := (n.b0 + n.b1 + n.b2 + white*0.1848) * 0.25
		if pink > 1 {
			pink = 1
		} else if pink < -1 {
			pink = -1
		}

		return pink

	case NoiseBrown:
		n.last = (n.last + white*0.02) / 1.02

		brown := n.last * 3.5
		if brown > 1 {
			brown = 1
		} else if brown < -1 {
			brown = -1
		}

		return brown

	default:
		return white
	}
}

// Fill writes len(out) noise samples into out.
func (n *NoiseGenerator) Fill(out []float64) {
	for i := range out {
		out[i] = n.Next()
	}
}
