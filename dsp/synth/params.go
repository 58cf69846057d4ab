// Package synth renders mono sample buffers from declarative parameters.
//
// Each variant is a Params value; Render dispatches over the closed set.
// For identical (params, sample count, sample rate, generator state) every
// variant produces identical output.
package synth

import (
	"strconv"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/osc"
)

// Params is the closed union of synthesis parameter variants.
//
// The variant set is fixed; Render performs exhaustive case analysis over
// it. Implementations outside this package are not possible.
type Params interface {
	// Validate checks every numeric field against its documented range.
	Validate() error

	variant() string
}

// SweepMode selects how frequency moves over the buffer duration.
type SweepMode int

const (
	SweepNone SweepMode = iota
	SweepLinear
	SweepExponential
	SweepLogarithmic
)

// Sweep moves the oscillator frequency toward EndFrequency over the whole
// buffer.
type Sweep struct {
	Mode         SweepMode
	EndFrequency float64
}

func (s Sweep) validate(param string) error {
	if s.Mode == SweepNone {
		return nil
	}

	return core.CheckRange(param+".end_frequency", s.EndFrequency, minFrequency, maxFrequency)
}

const (
	minFrequency = 20.0
	maxFrequency = 20000.0
)

// OscillatorParams describes a single periodic voice.
type OscillatorParams struct {
	Waveform  osc.Waveform
	Frequency float64
	Amplitude float64
	Duty      float64 // square only; 0 selects the default 0.5
	Sweep     Sweep
}

func (p OscillatorParams) variant() string { return "oscillator" }

// Validate checks all fields against their documented ranges.
func (p OscillatorParams) Validate() error {
	if err := core.CheckRange("oscillator.frequency", p.Frequency, minFrequency, maxFrequency); err != nil {
		return err
	}

	if err := core.CheckRange("oscillator.amplitude", p.Amplitude, 0, 1); err != nil {
		return err
	}

	if p.Duty != 0 {
		if err := core.CheckRange("oscillator.duty", p.Duty, 0.01, 0.99); err != nil {
			return err
		}
	}

	return p.Sweep.validate("oscillator.sweep")
}

// OscVoice is one voice of a MultiOscillator.
type OscVoice struct {
	Waveform    osc.Waveform
	Frequency   float64
	DetuneCents float64
	Duty        float64
	Level       float64
}

// MultiOscillatorParams sums several detuned voices.
type MultiOscillatorParams struct {
	Voices []OscVoice
	Sweep  Sweep
}

func (p MultiOscillatorParams) variant() string { return "multi_oscillator" }

// Validate checks all voices against their documented ranges.
func (p MultiOscillatorParams) Validate() error {
	if len(p.Voices) == 0 || len(p.Voices) > 16 {
		return &core.InvalidParameterError{
			Param: "multi_oscillator.voices", Value: float64(len(p.Voices)),
			Reason: "must have 1 to 16 voices",
		}
	}

	for i, v := range p.Voices {
		prefix := voiceParam("multi_oscillator.voices", i)

		if err := core.CheckRange(prefix+".frequency", v.Frequency, minFrequency, maxFrequency); err != nil {
			return err
		}

		if err := core.CheckRange(prefix+".detune_cents", v.DetuneCents, -100, 100); err != nil {
			return err
		}

		if err := core.CheckRange(prefix+".level", v.Level, 0, 1); err != nil {
			return err
		}

		if v.Duty != 0 {
			if err := core.CheckRange(prefix+".duty", v.Duty, 0.01, 0.99); err != nil {
				return err
			}
		}
	}

	return p.Sweep.validate("multi_oscillator.sweep")
}

// Partial is one harmonic of an Additive sound.
type Partial struct {
	Ratio float64 // frequency ratio relative to the fundamental
	Level float64
}

// AdditiveParams sums sine partials at fixed ratios of the fundamental.
type AdditiveParams struct {
	Frequency float64
	Partials  []Partial
	Sweep     Sweep
}

func (p AdditiveParams) variant() string { return "additive" }

// Validate checks the fundamental and every partial.
func (p AdditiveParams) Validate() error {
	if err := core.CheckRange("additive.frequency", p.Frequency, minFrequency, maxFrequency); err != nil {
		return err
	}

	if len(p.Partials) == 0 || len(p.Partials) > 64 {
		return &core.InvalidParameterError{
			Param: "additive.partials", Value: float64(len(p.Partials)),
			Reason: "must have 1 to 64 partials",
		}
	}

	for i, part := range p.Partials {
		prefix := voiceParam("additive.partials", i)

		if err := core.CheckRange(prefix+".ratio", part.Ratio, 0.1, 64); err != nil {
			return err
		}

		if err := core.CheckRange(prefix+".level", part.Level, 0, 1); err != nil {
			return err
		}
	}

	return p.Sweep.validate("additive.sweep")
}

// FMParams is two coupled phase accumulators; the modulator output scaled
// by Index is added to the carrier phase.
type FMParams struct {
	CarrierFrequency   float64
	ModulatorFrequency float64
	Index              float64
	Amplitude          float64
}

func (p FMParams) variant() string { return "fm" }

// Validate checks all fields against their documented ranges.
func (p FMParams) Validate() error {
	if err := core.CheckRange("fm.carrier_frequency", p.CarrierFrequency, minFrequency, maxFrequency); err != nil {
		return err
	}

	if err := core.CheckRange("fm.modulator_frequency", p.ModulatorFrequency, 0.1, maxFrequency); err != nil {
		return err
	}

	if err := core.CheckRange("fm.index", p.Index, 0, 20); err != nil {
		return err
	}

	return core.CheckRange("fm.amplitude", p.Amplitude, 0, 1)
}

// AMParams multiplies the carrier by (1 + modulator*depth). The product is
// scaled by 1/(1+depth) so the output stays within Amplitude at full depth.
type AMParams struct {
	CarrierFrequency   float64
	ModulatorFrequency float64
	Depth              float64
	Amplitude          float64
}

func (p AMParams) variant() string { return "am" }

// Validate checks all fields against their documented ranges.
func (p AMParams) Validate() error {
	if err := core.CheckRange("am.carrier_frequency", p.CarrierFrequency, minFrequency, maxFrequency); err != nil {
		return err
	}

	if err := core.CheckRange("am.modulator_frequency", p.ModulatorFrequency, 0.1, maxFrequency); err != nil {
		return err
	}

	if err := core.CheckRange("am.depth", p.Depth, 0, 1); err != nil {
		return err
	}

	return core.CheckRange("am.amplitude", p.Amplitude, 0, 1)
}

// RingModParams multiplies carrier and modulator and cross-fades the
// product against the pure carrier by Mix.
type RingModParams struct {
	CarrierFrequency   float64
	ModulatorFrequency float64
	Mix                float64
}

func (p RingModParams) variant() string { return "ring_mod" }

// Validate checks all fields against their documented ranges.
func (p RingModParams) Validate() error {
	if err := core.CheckRange("ring_mod.carrier_frequency", p.CarrierFrequency, minFrequency, maxFrequency); err != nil {
		return err
	}

	if err := core.CheckRange("ring_mod.modulator_frequency", p.ModulatorFrequency, 0.1, maxFrequency); err != nil {
		return err
	}

	return core.CheckRange("ring_mod.mix", p.Mix, 0, 1)
}

// NoiseParams generates colored noise from the component's stream.
type NoiseParams struct {
	Color     osc.NoiseColor
	Amplitude float64
}

func (p NoiseParams) variant() string { return "noise" }

// Validate checks the amplitude range.
func (p NoiseParams) Validate() error {
	if p.Color != osc.NoiseWhite && p.Color != osc.NoisePink && p.Color != osc.NoiseBrown {
		return &core.InvalidParameterError{
			Param: "noise.color", Value: float64(p.Color), Reason: "unknown noise color",
		}
	}

	return core.CheckRange("noise.amplitude", p.Amplitude, 0, 1)
}

func voiceParam(prefix string, i int) string {
	return prefix + "[" + strconv.Itoa(i) + "]"
}
