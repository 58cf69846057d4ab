package synth

import (
	"fmt"
	"math/rand"

	"github.com/cwbudde/algo-synth/dsp/core"
)

// Render produces a fixed-length mono sample sequence for the given
// parameter variant.
//
// The sequence is a pure function of (p, n, sampleRate, r state): rendering
// twice with freshly derived generators yields byte-identical buffers. The
// returned buffer is not restartable; render again for more samples.
func Render(p Params, n int, sampleRate float64, r *rand.Rand) ([]float64, error) {
	if p == nil {
		return nil, fmt.Errorf("synth: nil parameters")
	}

	if err := core.CheckPositive("synth.sample_rate", sampleRate); err != nil {
		return nil, err
	}

	if n < 0 {
		return nil, &core.InvalidParameterError{
			Param: "synth.sample_count", Value: float64(n), Reason: "must be >= 0",
		}
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	if n == 0 {
		return []float64{}, nil
	}

	switch v := p.(type) {
	case OscillatorParams:
		return renderOscillator(v, n, sampleRate), nil
	case MultiOscillatorParams:
		return renderMultiOscillator(v, n, sampleRate), nil
	case AdditiveParams:
		return renderAdditive(v, n, sampleRate), nil
	case FMParams:
		return renderFM(v, n, sampleRate), nil
	case AMParams:
		return renderAM(v, n, sampleRate), nil
	case RingModParams:
		return renderRingMod(v, n, sampleRate), nil
	case NoiseParams:
		return renderNoise(v, n, r), nil
	case KarplusStrongParams:
		return renderKarplusStrong(v, n, sampleRate, r), nil
	case PluckParams:
		return renderPluck(v, n, sampleRate, r), nil
	case BowedStringParams:
		return renderBowedString(v, n, sampleRate), nil
	case MembraneParams:
		return renderMembrane(v, n, sampleRate, r), nil
	case GranularParams:
		return renderGranular(v, n, sampleRate, r), nil
	case VectorParams:
		return renderVector(v, n, sampleRate), nil
	case WavetableParams:
		return renderWavetable(v, n, sampleRate)
	case VocoderParams:
		return renderVocoder(v, n, sampleRate, r), nil
	case FormantParams:
		return renderFormant(v, n, sampleRate, r), nil
	default:
		return nil, fmt.Errorf("synth: unknown variant %q", p.variant())
	}
}
