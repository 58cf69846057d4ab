package effects

import (
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/window"
)

// TruePeakParams configures a true-peak limiter.
type TruePeakParams struct {
	CeilingDB float64
	ReleaseMs float64
}

// Validate checks all fields against their documented ranges.
func (p TruePeakParams) Validate() error {
	if err := core.CheckRange("true_peak.ceiling_db", p.CeilingDB, -6, 0); err != nil {
		return err
	}

	return core.CheckRange("true_peak.release_ms", p.ReleaseMs, 10, 500)
}

const (
	truePeakPhases    = 4  // oversampling factor
	truePeakTaps      = 8  // FIR taps per phase
	truePeakLookahead = 32 // samples of gain pre-computation
)

// TruePeakLimiter holds inter-sample peaks under the ceiling. Peaks between
// samples are estimated with a 4x polyphase windowed-sinc interpolator, then
// limited with the same sliding-minimum and exponential-release scheme as
// Limiter.
type TruePeakLimiter struct {
	ceiling      float64
	releaseCoeff float64
	phases       [truePeakPhases - 1][truePeakTaps]float64
}

// NewTruePeakLimiter creates a true-peak limiter for the given sample rate.
func NewTruePeakLimiter(sampleRate float64, p TruePeakParams) (*TruePeakLimiter, error) {
	if err := core.CheckPositive("true_peak.sample_rate", sampleRate); err != nil {
		return nil, err
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	l := &TruePeakLimiter{
		ceiling:      core.DBToLinear(p.CeilingDB),
		releaseCoeff: core.ReleaseCoeff(p.ReleaseMs, sampleRate),
	}

	// One Hann-windowed sinc kernel per fractional phase between samples.
	const center = truePeakTaps/2 - 1

	for ph := range l.phases {
		frac := float64(ph+1) / truePeakPhases

		for k := range truePeakTaps {
			x := float64(k-center) - frac
			l.phases[ph][k] = sinc(x) * window.Hann(k, truePeakTaps)
		}
	}

	return l, nil
}

// Process applies gain reduction to both channels in place.
func (l *TruePeakLimiter) Process(buf *core.StereoBuffer) error {
	if err := buf.Validate(); err != nil {
		return err
	}

	n := buf.Len()
	if n == 0 {
		return nil
	}

	target := make([]float64, n)
	for i := range target {
		peak := l.interPeak(buf.Left, i)
		if r := l.interPeak(buf.Right, i); r > peak {
			peak = r
		}

		target[i] = 1.0
		if peak > l.ceiling {
			target[i] = l.ceiling / peak
		}
	}

	floor := slidingMin(target, truePeakLookahead)

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

// interPeak estimates the largest magnitude between sample i and i+1,
// including the sample itself.
func (l *TruePeakLimiter) interPeak(samples []float64, i int) float64 {
	peak := abs(samples[i])

	const center = truePeakTaps/2 - 1

	for ph := range l.phases {
		var v float64

		for k := range truePeakTaps {
			idx := i + k - center
			if idx < 0 || idx >= len(samples) {
				continue
			}

			v += samples[idx] * l.phases[ph][k]
		}

		if a := abs(v); a > peak {
			peak = a
		}
	}

	return peak
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}

	return math.Sin(math.Pi*x) / (math.Pi * x)
}
