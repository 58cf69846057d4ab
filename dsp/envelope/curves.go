package envelope

import (
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
)

// DecayCurve renders an exponential decay from 1 toward silence over the
// given duration. Curve controls steepness; 1 is the natural -60 dB decay,
// larger values decay faster.
func DecayCurve(sampleRate, duration, curve float64) ([]float64, error) {
	if err := core.CheckPositive("decay.sample_rate", sampleRate); err != nil {
		return nil, err
	}

	if err := core.CheckPositive("decay.duration", duration); err != nil {
		return nil, err
	}

	if err := core.CheckRange("decay.curve", curve, 0.1, 10); err != nil {
		return nil, err
	}

	n := int(math.Ceil(duration * sampleRate))
	out := make([]float64, n)

	// -60 dB over the full duration at curve=1.
	k := curve * math.Log(1000) / duration

	for i := range out {
		t := float64(i) / sampleRate
		out[i] = math.Exp(-k * t)
	}

	return out, nil
}

// AttackRelease renders a linear ramp 0→1 over attack seconds followed by a
// linear ramp 1→0 over release seconds.
func AttackRelease(sampleRate, attack, release float64) ([]float64, error) {
	if err := core.CheckPositive("ar.sample_rate", sampleRate); err != nil {
		return nil, err
	}

	if err := core.CheckMin("ar.attack", attack, 0); err != nil {
		return nil, err
	}

	if err := core.CheckMin("ar.release", release, 0); err != nil {
		return nil, err
	}

	attackSamples := int(math.Ceil(attack * sampleRate))
	releaseSamples := int(math.Ceil(release * sampleRate))

	out := make([]float64, attackSamples+releaseSamples)

	for i := range attackSamples {
		out[i] = float64(i+1) / float64(attackSamples)
	}

	for i := range releaseSamples {
		out[attackSamples+i] = 1 - float64(i+1)/float64(releaseSamples)
	}

	return out, nil
}
