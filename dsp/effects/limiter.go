package effects

import (
	"github.com/cwbudde/algo-synth/dsp/core"
)

// LimiterParams configures a lookahead peak limiter.
type LimiterParams struct {
	ThresholdDB float64
	ReleaseMs   float64
	LookaheadMs float64
}

// Validate checks all fields against their documented ranges.
func (p LimiterParams) Validate() error {
	if err := core.CheckRange("limiter.threshold_db", p.ThresholdDB, -24, 0); err != nil {
		return err
	}

	if err := core.CheckRange("limiter.release_ms", p.ReleaseMs, 10, 500); err != nil {
		return err
	}

	return core.CheckRange("limiter.lookahead_ms", p.LookaheadMs, 1, 10)
}

// Limiter holds peaks under the threshold. Gain reduction is computed from a
// sliding minimum over the lookahead window, so reduction reaches full depth
// before the peak arrives; recovery follows an exponential release.
type Limiter struct {
	threshold    float64
	releaseCoeff float64
	lookahead    int
}

// NewLimiter creates a limiter for the given sample rate.
func NewLimiter(sampleRate float64, p LimiterParams) (*Limiter, error) {
	if err := core.CheckPositive("limiter.sample_rate", sampleRate); err != nil {
		return nil, err
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	lookahead := int(p.LookaheadMs * 0.001 * sampleRate)
	if lookahead < 1 {
		lookahead = 1
	}

	return &Limiter{
		threshold:    core.DBToLinear(p.ThresholdDB),
		releaseCoeff: core.ReleaseCoeff(p.ReleaseMs, sampleRate),
		lookahead:    lookahead,
	}, nil
}

// Process applies gain reduction to both channels in place.
func (l *Limiter) Process(buf *core.StereoBuffer) error {
	if err := buf.Validate(); err != nil {
		return err
	}

	n := buf.Len()
	if n == 0 {
		return nil
	}

	target := make([]float64, n)
	for i := range target {
		peak := abs(buf.Left[i])
		if r := abs(buf.Right[i]); r > peak {
			peak = r
		}

		target[i] = 1.0
		if peak > l.threshold {
			target[i] = l.threshold / peak
		}
	}

	floor := slidingMin(target, l.lookahead)

	env := 1.0
	for i := range n {
		t := floor[i]

		if t < env {
			env = t
		} else {
			env = t + (env-t)*l.releaseCoeff
		}

		buf.Left[i] *= env
		buf.Right[i] *= env
	}

	return nil
}

// slidingMin returns, for each index i, the minimum of in[i : i+window]
// clipped to the slice, using a monotonic index deque.
func slidingMin(in []float64, window int) []float64 {
	n := len(in)
	out := make([]float64, n)
	deque := make([]int, 0, window+1)

	for i := range window {
		if i >= n {
			break
		}

		for len(deque) > 0 && in[deque[len(deque)-1]] >= in[i] {
			deque = deque[:len(deque)-1]
		}

		deque = append(deque, i)
	}

	for i := range n {
		if j := i + window; j < n {
			for len(deque) > 0 && in[deque[len(deque)-1]] >= in[j] {
				deque = deque[:len(deque)-1]
			}

			deque = append(deque, j)
		}

		for deque[0] < i {
			deque = deque[1:]
		}

		out[i] = in[deque[0]]
	}

	return out
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}

	return v
}
