package synth

import (
	"github.com/cwbudde/algo-synth/dsp/osc"
)

// renderVector bilinearly cross-fades four corner sources by a 2D position
// that is static or animated toward (EndX, EndY) over the buffer.
func renderVector(p VectorParams, n int, sampleRate float64) []float64 {
	out := make([]float64, n)

	var phases [4]osc.Phase
	for i := range phases {
		phases[i] = osc.NewPhase(0)
	}

	invN := 1 / float64(n)

	for i := range out {
		t := float64(i) * invN
		x, y := vectorPosition(p, t)

		// Corner order: 0=(0,0) 1=(1,0) 2=(0,1) 3=(1,1).
		w := [4]float64{
			(1 - x) * (1 - y),
			x * (1 - y),
			(1 - x) * y,
			x * y,
		}

		var sum float64

		for c := range p.Corners {
			src := &p.Corners[c]
			sample := osc.Evaluate(src.Waveform, phases[c].Advance(src.Frequency, sampleRate), src.Duty)
			sum += w[c] * sample
		}

		out[i] = sum
	}

	return out
}

func vectorPosition(p VectorParams, t float64) (float64, float64) {
	switch p.Path {
	case VectorPathLinear:
		return p.X + (p.EndX-p.X)*t, p.Y + (p.EndY-p.Y)*t
	case VectorPathEase:
		eased := t * t * (3 - 2*t)
		return p.X + (p.EndX-p.X)*eased, p.Y + (p.EndY-p.Y)*eased
	default:
		return p.X, p.Y
	}
}
