package effects

import (
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/delay"
)

// FlangerParams configures a stereo flanger.
type FlangerParams struct {
	RateHz   float64
	Depth    float64
	Feedback float64
	DelayMs  float64 // base delay around which the LFO sweeps
	Wet      float64
}

// Validate checks all fields against their documented ranges.
func (p FlangerParams) Validate() error {
	if err := core.CheckRange("flanger.rate", p.RateHz, 0.1, 10); err != nil {
		return err
	}

	if err := core.CheckRange("flanger.depth", p.Depth, 0, 1); err != nil {
		return err
	}

	if err := core.CheckRange("flanger.feedback", p.Feedback, -0.99, 0.99); err != nil {
		return err
	}

	if err := core.CheckRange("flanger.delay_ms", p.DelayMs, 0.1, 50); err != nil {
		return err
	}

	return core.CheckRange("flanger.wet", p.Wet, 0, 1)
}

// Flanger sweeps a short modulated delay against the dry signal. The right
// channel LFO runs a quarter cycle ahead of the left for stereo width, and a
// feedback path recirculates the delayed signal.
type Flanger struct {
	params     FlangerParams
	sampleRate float64
	baseDelay  float64

	left  *delay.Line
	right *delay.Line
}

// NewFlanger creates a flanger for the given sample rate.
func NewFlanger(sampleRate float64, p FlangerParams) (*Flanger, error) {
	if err := core.CheckPositive("flanger.sample_rate", sampleRate); err != nil {
		return nil, err
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	baseDelay := p.DelayMs * 0.001 * sampleRate

	size := int(math.Ceil(baseDelay*2)) + 4

	left, err := delay.New(size)
	if err != nil {
		return nil, err
	}

	right, err := delay.New(size)
	if err != nil {
		return nil, err
	}

	return &Flanger{
		params:     p,
		sampleRate: sampleRate,
		baseDelay:  baseDelay,
		left:       left,
		right:      right,
	}, nil
}

// Process runs the flanger over both channels in place.
func (f *Flanger) Process(buf *core.StereoBuffer) error {
	if err := buf.Validate(); err != nil {
		return err
	}

	n := buf.Len()
	if n == 0 {
		return nil
	}

	// Re-clamped before the feedback loop for numerical safety.
	feedback := core.Clamp(f.params.Feedback, -0.99, 0.99)

	wet := f.params.Wet
	dry := 1 - wet
	phaseStep := f.params.RateHz / f.sampleRate
	phase := 0.0

	maxDelay := float64(f.left.Len() - 2)

	for i := range n {
		lfoL := math.Sin(2 * math.Pi * phase)
		lfoR := math.Sin(2 * math.Pi * (phase + 0.25))

		delayL := core.Clamp(f.baseDelay*(1+0.5*f.params.Depth*lfoL), 1, maxDelay)
		delayR := core.Clamp(f.baseDelay*(1+0.5*f.params.Depth*lfoR), 1, maxDelay)

		// ReadFractional offsets its argument by one write, so the argument
		// is shifted to make the effective delay exactly delayL/delayR.
		wetL := f.left.ReadFractional(delayL - 1)
		wetR := f.right.ReadFractional(delayR - 1)

		f.left.Write(buf.Left[i] + wetL*feedback)
		f.right.Write(buf.Right[i] + wetR*feedback)

		buf.Left[i] = buf.Left[i]*dry + wetL*wet
		buf.Right[i] = buf.Right[i]*dry + wetR*wet

		phase += phaseStep
		if phase >= 1 {
			phase -= 1
		}
	}

	return nil
}

// Reset clears the delay lines.
func (f *Flanger) Reset() {
	f.left.Reset()
	f.right.Reset()
}
