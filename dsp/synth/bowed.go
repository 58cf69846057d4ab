package synth

import (
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/delay"
	"github.com/cwbudde/algo-synth/dsp/filter"
)

// renderBowedString implements a bidirectional waveguide split at the bow
// position. The two string sections couple through a stick-slip friction
// curve of the velocity difference, scaled by bow pressure; each section is
// damped by a one-pole filter with inverted reflections at nut and bridge.
//
// A non-finite or zero frequency renders silence. Output stays bounded at
// maximum pressure: the friction curve saturates and the output is
// soft-clipped at the bridge.
func renderBowedString(p BowedStringParams, n int, sampleRate float64) []float64 {
	out := make([]float64, n)

	if !core.IsFinite(p.Frequency) || p.Frequency <= 0 {
		return out
	}

	total := int(math.Round(sampleRate / p.Frequency))
	if total < 4 {
		total = 4
	}

	bowPos := core.Clamp(p.BowPosition, 0.05, 0.5)

	nutLen := int(math.Round(bowPos * float64(total)))
	if nutLen < 2 {
		nutLen = 2
	}

	bridgeLen := total - nutLen
	if bridgeLen < 2 {
		bridgeLen = 2
	}

	nutLine, err := delay.New(nutLen)
	if err != nil {
		return out
	}

	bridgeLine, err := delay.New(bridgeLen)
	if err != nil {
		return out
	}

	nutFilter := &filter.OnePole{}
	nutFilter.SetDamping(0.1 + 0.5*p.Damping)

	bridgeFilter := &filter.OnePole{}
	bridgeFilter.SetDamping(0.1 + 0.5*p.Damping)

	// Slightly lossy reflections keep the feedback loop stable.
	const reflection = -0.98

	pressureScale := 1 + 4*p.BowPressure
	velocity := 0.03 + 0.2*p.BowVelocity

	for i := range out {
		bridgeOut := bridgeFilter.Process(bridgeLine.Read(bridgeLen - 1))
		nutOut := nutFilter.Process(nutLine.Read(nutLen - 1))

		bridgeRefl := reflection * bridgeOut
		nutRefl := reflection * nutOut

		stringVel := bridgeRefl + nutRefl
		deltaV := velocity - stringVel

		newVel := deltaV * bowFriction(deltaV*pressureScale) * p.BowPressure

		nutLine.Write(bridgeRefl + newVel)
		bridgeLine.Write(nutRefl + newVel)

		out[i] = math.Tanh(3 * bridgeOut)
	}

	return out
}

// bowFriction is the stick-slip curve: full grip near zero velocity
// difference, slipping off sharply as |deltaV| grows.
func bowFriction(deltaV float64) float64 {
	f := math.Pow(math.Abs(deltaV)+0.75, -4)
	return core.Clamp(f, 0, 1)
}
