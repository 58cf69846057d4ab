package effects

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/delay"
	"github.com/cwbudde/algo-synth/dsp/window"
)

// GranularDelayParams configures a granular delay.
type GranularDelayParams struct {
	DelayMs      float64
	GrainSeconds float64
	PitchRatio   float64 // playback rate of grain reads
	Jitter       float64 // normalized per-grain timing jitter
	Feedback     float64
	Wet          float64
}

// Validate checks all fields against their documented ranges.
func (p GranularDelayParams) Validate() error {
	if err := core.CheckRange("granular_delay.delay_ms", p.DelayMs, 10, 2000); err != nil {
		return err
	}

	if err := core.CheckRange("granular_delay.grain_seconds", p.GrainSeconds, 0.01, 0.5); err != nil {
		return err
	}

	if err := core.CheckRange("granular_delay.pitch_ratio", p.PitchRatio, 0.25, 4); err != nil {
		return err
	}

	if err := core.CheckRange("granular_delay.jitter", p.Jitter, 0, 1); err != nil {
		return err
	}

	if err := core.CheckRange("granular_delay.feedback", p.Feedback, -0.99, 0.99); err != nil {
		return err
	}

	return core.CheckRange("granular_delay.wet", p.Wet, 0, 1)
}

// GranularDelay reads Hann-windowed grains from a delay buffer at a
// pitch-shifted rate with random per-grain timing jitter. Grains use the
// periodic Hann window at 50% overlap so the two streams sum to unity, and
// the wet signal recirculates through the buffer scaled by feedback.
//
// Output is deterministic for a given generator seed.
type GranularDelay struct {
	params    GranularDelayParams
	baseDelay float64
	grainLen  int
	maxDelay  float64

	left  *delay.Line
	right *delay.Line
	r     *rand.Rand

	// Two interleaved grain streams at half-grain phase offset.
	offset [2][2]float64 // [stream][channel] jitter offsets
	pos    int           // sample position within the grain cycle
}

// NewGranularDelay creates a granular delay over the given random stream.
func NewGranularDelay(sampleRate float64, p GranularDelayParams, r *rand.Rand) (*GranularDelay, error) {
	if err := core.CheckPositive("granular_delay.sample_rate", sampleRate); err != nil {
		return nil, err
	}

	if r == nil {
		return nil, &core.InvalidParameterError{
			Param: "granular_delay.rng", Reason: "must not be nil",
		}
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	grainLen := int(math.Round(p.GrainSeconds * sampleRate))
	if grainLen < 4 {
		grainLen = 4
	}

	if grainLen%2 != 0 {
		grainLen++
	}

	baseDelay := p.DelayMs * 0.001 * sampleRate

	// Room for the base delay plus the furthest pitch-shifted grain read.
	size := int(math.Ceil(baseDelay + float64(grainLen)*4 + 4))

	left, err := delay.New(size)
	if err != nil {
		return nil, err
	}

	right, err := delay.New(size)
	if err != nil {
		return nil, err
	}

	g := &GranularDelay{
		params:    p,
		baseDelay: baseDelay,
		grainLen:  grainLen,
		maxDelay:  float64(size - 2),
		left:      left,
		right:     right,
		r:         r,
	}

	g.offset[0] = g.drawJitter()
	g.offset[1] = g.drawJitter()
	g.pos = 0

	return g, nil
}

// Process runs the granular delay over both channels in place.
func (g *GranularDelay) Process(buf *core.StereoBuffer) error {
	if err := buf.Validate(); err != nil {
		return err
	}

	n := buf.Len()
	if n == 0 {
		return nil
	}

	feedback := core.Clamp(g.params.Feedback, -0.99, 0.99)
	wet := g.params.Wet
	dry := 1 - wet
	half := g.grainLen / 2

	for i := range n {
		var wetL, wetR float64

		for stream := range 2 {
			// Stream 1 runs half a grain behind stream 0.
			grainPos := g.pos
			if stream == 1 {
				grainPos = (g.pos + half) % g.grainLen
			}

			env := window.HannPeriodic(grainPos, g.grainLen)

			// A pitch ratio away from 1 makes the read point drift
			// through the grain, resampling the buffered signal.
			drift := (g.params.PitchRatio - 1) * float64(grainPos)

			dL := core.Clamp(g.baseDelay+g.offset[stream][0]+drift, 1, g.maxDelay)
			dR := core.Clamp(g.baseDelay+g.offset[stream][1]+drift, 1, g.maxDelay)

			wetL += env * g.left.ReadFractional(dL)
			wetR += env * g.right.ReadFractional(dR)
		}

		g.left.Write(buf.Left[i] + wetL*feedback)
		g.right.Write(buf.Right[i] + wetR*feedback)

		buf.Left[i] = buf.Left[i]*dry + wetL*wet
		buf.Right[i] = buf.Right[i]*dry + wetR*wet

		g.pos++
		if g.pos >= g.grainLen {
			g.pos = 0
			g.offset[0] = g.drawJitter()
		}

		if g.pos == half {
			g.offset[1] = g.drawJitter()
		}
	}

	return nil
}

// Reset clears the delay buffers and restarts the grain cycle. The random
// stream is not rewound, so a fresh generator is needed to reproduce output.
func (g *GranularDelay) Reset() {
	g.left.Reset()
	g.right.Reset()
	g.pos = 0
	g.offset[0] = g.drawJitter()
	g.offset[1] = g.drawJitter()
}

func (g *GranularDelay) drawJitter() [2]float64 {
	span := g.params.Jitter * float64(g.grainLen) * 0.5

	return [2]float64{
		g.r.Float64() * span,
		g.r.Float64() * span,
	}
}
