// Package envelope provides the ADSR state machine and simple percussive
// curve generators used to shape synthesized layers.
package envelope

import (
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
)

// Stage identifies the ADSR state.
type Stage int

const (
	StageIdle Stage = iota
	StageAttack
	StageDecay
	StageSustain
	StageRelease
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageAttack:
		return "attack"
	case StageDecay:
		return "decay"
	case StageSustain:
		return "sustain"
	case StageRelease:
		return "release"
	default:
		return "unknown"
	}
}

// ADSRParams holds envelope times in seconds and the sustain level in [0, 1].
type ADSRParams struct {
	Attack  float64
	Decay   float64
	Sustain float64
	Release float64
}

// Validate checks all fields against their documented ranges.
func (p ADSRParams) Validate() error {
	if err := core.CheckRange("envelope.attack", p.Attack, 0, 60); err != nil {
		return err
	}

	if err := core.CheckRange("envelope.decay", p.Decay, 0, 60); err != nil {
		return err
	}

	if err := core.CheckRange("envelope.sustain", p.Sustain, 0, 1); err != nil {
		return err
	}

	return core.CheckRange("envelope.release", p.Release, 0, 60)
}

// ADSR is a sample-accurate attack/decay/sustain/release envelope.
//
// Idle is terminal and reachable only from Release. Zero-length phases
// complete instantly within the same NextSample call.
type ADSR struct {
	params     ADSRParams
	sampleRate float64

	stage        Stage
	elapsed      float64 // seconds inside the current stage
	level        float64
	releaseLevel float64
}

// NewADSR creates an envelope in the Idle state.
func NewADSR(params ADSRParams, sampleRate float64) (*ADSR, error) {
	if err := core.CheckPositive("envelope.sample_rate", sampleRate); err != nil {
		return nil, err
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}

	return &ADSR{params: params, sampleRate: sampleRate}, nil
}

// Stage returns the current stage.
func (e *ADSR) Stage() Stage { return e.stage }

// Level returns the current envelope level.
func (e *ADSR) Level() float64 { return e.level }

// Trigger resets the envelope to the start of the Attack stage.
func (e *ADSR) Trigger() {
	e.stage = StageAttack
	e.elapsed = 0
	e.level = 0
}

// Release moves Attack, Decay, or Sustain into Release, capturing the
// current level as the release start point. It is a no-op in Release or
// Idle.
func (e *ADSR) Release() {
	switch e.stage {
	case StageAttack, StageDecay, StageSustain:
		e.releaseLevel = e.level
		e.stage = StageRelease
		e.elapsed = 0
	}
}

// NextSample advances the envelope by one sample period and returns the new
// level.
func (e *ADSR) NextSample() float64 {
	dt := 1 / e.sampleRate

	switch e.stage {
	case StageAttack:
		if e.params.Attack <= 0 {
			e.level = 1
			e.stage = StageDecay
			e.elapsed = 0

			return e.NextSample()
		}

		e.elapsed += dt
		if e.elapsed >= e.params.Attack {
			e.level = 1
			e.stage = StageDecay
			e.elapsed = 0
		} else {
			e.level = e.elapsed / e.params.Attack
		}

	case StageDecay:
		if e.params.Decay <= 0 {
			e.level = e.params.Sustain
			e.stage = StageSustain
			e.elapsed = 0

			return e.level
		}

		e.elapsed += dt
		if e.elapsed >= e.params.Decay {
			e.level = e.params.Sustain
			e.stage = StageSustain
			e.elapsed = 0
		} else {
			t := e.elapsed / e.params.Decay
			e.level = 1 - t*(1-e.params.Sustain)
		}

	case StageSustain:
		e.level = e.params.Sustain

	case StageRelease:
		if e.params.Release <= 0 {
			e.level = 0
			e.stage = StageIdle

			return 0
		}

		e.elapsed += dt
		if e.elapsed >= e.params.Release {
			e.level = 0
			e.stage = StageIdle
		} else {
			t := e.elapsed / e.params.Release
			e.level = e.releaseLevel * (1 - t)
		}

	case StageIdle:
		e.level = 0
	}

	return e.level
}

// GenerateFixedDuration renders ceil(duration*rate) envelope samples,
// auto-triggering release at max(attack+decay, duration-release) so attack
// and decay are never truncated.
func GenerateFixedDuration(params ADSRParams, sampleRate, duration float64) ([]float64, error) {
	if err := core.CheckPositive("envelope.sample_rate", sampleRate); err != nil {
		return nil, err
	}

	if err := core.CheckPositive("envelope.duration", duration); err != nil {
		return nil, err
	}

	env, err := NewADSR(params, sampleRate)
	if err != nil {
		return nil, err
	}

	n := int(math.Ceil(duration * sampleRate))
	out := make([]float64, n)

	releaseAt := math.Max(params.Attack+params.Decay, duration-params.Release)
	releaseSample := int(releaseAt * sampleRate)

	env.Trigger()

	for i := range out {
		if i == releaseSample {
			env.Release()
		}

		out[i] = env.NextSample()
	}

	return out, nil
}
