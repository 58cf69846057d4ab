// Package mix sums rendered mono layers into a stereo buffer with
// constant-power panning.
package mix

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-synth/dsp/core"
)

// Layer is one mono stream with its placement in the mix.
type Layer struct {
	Samples []float64
	Volume  float64
	Pan     float64 // 0 full left, 1 full right
}

// Validate checks volume and pan against their documented ranges.
func (l Layer) Validate() error {
	if err := core.CheckRange("mix.volume", l.Volume, 0, 1); err != nil {
		return err
	}

	return core.CheckRange("mix.pan", l.Pan, 0, 1)
}

// Mixer accumulates layers into a stereo buffer. Each layer owns its sample
// slice, so mixing is order-independent up to floating point summation.
type Mixer struct {
	normalize bool
}

// Option configures a Mixer.
type Option func(*Mixer)

// WithNormalize scales the final mix so its peak sits at unity whenever the
// raw sum exceeds it.
func WithNormalize() Option {
	return func(m *Mixer) { m.normalize = true }
}

// NewMixer creates a mixer.
func NewMixer(opts ...Option) *Mixer {
	m := &Mixer{}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Mix sums all layers into a new stereo buffer sized to the longest layer.
func (m *Mixer) Mix(layers []Layer) (*core.StereoBuffer, error) {
	for i := range layers {
		if err := layers[i].Validate(); err != nil {
			return nil, err
		}
	}

	maxLen := 0
	for i := range layers {
		if len(layers[i].Samples) > maxLen {
			maxLen = len(layers[i].Samples)
		}
	}

	out := core.NewStereoBuffer(maxLen)
	if maxLen == 0 {
		return out, nil
	}

	scratch := make([]float64, maxLen)

	for i := range layers {
		layer := &layers[i]
		n := len(layer.Samples)
		if n == 0 {
			continue
		}

		angle := layer.Pan * math.Pi / 2
		gainLeft := layer.Volume * math.Cos(angle)
		gainRight := layer.Volume * math.Sin(angle)

		vecmath.ScaleBlock(scratch[:n], layer.Samples, gainLeft)
		vecmath.AddBlockInPlace(out.Left[:n], scratch[:n])

		vecmath.ScaleBlock(scratch[:n], layer.Samples, gainRight)
		vecmath.AddBlockInPlace(out.Right[:n], scratch[:n])
	}

	if m.normalize {
		if peak := out.Peak(); peak > 1 {
			out.Scale(1 / peak)
		}
	}

	return out, nil
}
