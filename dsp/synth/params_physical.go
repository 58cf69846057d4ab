package synth

import (
	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/osc"
)

// KarplusStrongParams is a plucked-string model: a noise-seeded delay line
// with an adjacent-sample-average feedback filter.
type KarplusStrongParams struct {
	Frequency float64
	Decay     float64 // feedback attenuation per round trip
}

func (p KarplusStrongParams) variant() string { return "karplus_strong" }

// Validate checks all fields against their documented ranges.
func (p KarplusStrongParams) Validate() error {
	if err := core.CheckRange("karplus_strong.frequency", p.Frequency, minFrequency, maxFrequency); err != nil {
		return err
	}

	return core.CheckRange("karplus_strong.decay", p.Decay, 0.8, 0.9999)
}

// PluckParams extends Karplus-Strong with a pick-position comb filter on
// the excitation.
type PluckParams struct {
	Frequency    float64
	Decay        float64
	PickPosition float64 // fraction of string length
}

func (p PluckParams) variant() string { return "pluck" }

// Validate checks all fields against their documented ranges.
func (p PluckParams) Validate() error {
	if err := core.CheckRange("pluck.frequency", p.Frequency, minFrequency, maxFrequency); err != nil {
		return err
	}

	if err := core.CheckRange("pluck.decay", p.Decay, 0.8, 0.9999); err != nil {
		return err
	}

	return core.CheckRange("pluck.pick_position", p.PickPosition, 0.05, 0.95)
}

// BowedStringParams is a bidirectional waveguide driven by a stick-slip
// bow friction model.
//
// Frequency is deliberately not range-checked: a non-finite or zero value
// renders silence instead of failing, so upstream modulation can fade a
// string out.
type BowedStringParams struct {
	Frequency   float64
	BowPressure float64
	BowVelocity float64
	BowPosition float64 // fraction of string length where the bow sits
	Damping     float64
}

func (p BowedStringParams) variant() string { return "bowed_string" }

// Validate checks bow parameters; see the type comment for frequency.
func (p BowedStringParams) Validate() error {
	if err := core.CheckRange("bowed_string.bow_pressure", p.BowPressure, 0, 1); err != nil {
		return err
	}

	if err := core.CheckRange("bowed_string.bow_velocity", p.BowVelocity, 0, 1); err != nil {
		return err
	}

	if err := core.CheckRange("bowed_string.bow_position", p.BowPosition, 0.05, 0.5); err != nil {
		return err
	}

	return core.CheckRange("bowed_string.damping", p.Damping, 0, 1)
}

// MembraneParams is a modal circular-membrane drum.
//
// Frequency follows the BowedString convention: non-finite or zero renders
// silence.
type MembraneParams struct {
	Frequency float64
	Tone      float64 // balance between low and high modes
	Decay     float64 // overall decay time in seconds
	Strike    float64 // excitation hardness
}

func (p MembraneParams) variant() string { return "membrane" }

// Validate checks shaping parameters; see the type comment for frequency.
func (p MembraneParams) Validate() error {
	if err := core.CheckRange("membrane.tone", p.Tone, 0, 1); err != nil {
		return err
	}

	if err := core.CheckRange("membrane.decay", p.Decay, 0.05, 10); err != nil {
		return err
	}

	return core.CheckRange("membrane.strike", p.Strike, 0, 1)
}

// GranularParams schedules overlapping windowed grains of a sine source.
type GranularParams struct {
	Frequency    float64
	GrainSeconds float64
	Density      float64 // grains per second
	Jitter       float64 // normalized start-time jitter
	PitchSpread  float64 // random per-grain pitch ratio spread in octaves
}

func (p GranularParams) variant() string { return "granular" }

// Validate checks all fields against their documented ranges.
func (p GranularParams) Validate() error {
	if err := core.CheckRange("granular.frequency", p.Frequency, minFrequency, maxFrequency); err != nil {
		return err
	}

	if err := core.CheckRange("granular.grain_seconds", p.GrainSeconds, 0.005, 0.5); err != nil {
		return err
	}

	if err := core.CheckRange("granular.density", p.Density, 1, 500); err != nil {
		return err
	}

	if err := core.CheckRange("granular.jitter", p.Jitter, 0, 1); err != nil {
		return err
	}

	return core.CheckRange("granular.pitch_spread", p.PitchSpread, 0, 2)
}

// VectorSource is one corner of a vector-synthesis square.
type VectorSource struct {
	Waveform  osc.Waveform
	Frequency float64
	Duty      float64
}

// VectorPathMode selects how the 2D position moves over the buffer.
type VectorPathMode int

const (
	VectorPathStatic VectorPathMode = iota
	VectorPathLinear
	VectorPathEase
)

// VectorParams bilinearly cross-fades up to four corner sources by a 2D
// position, optionally animated along a path.
type VectorParams struct {
	Corners [4]VectorSource
	X, Y    float64
	Path    VectorPathMode
	EndX    float64
	EndY    float64
}

func (p VectorParams) variant() string { return "vector" }

// Validate checks corners and position fields.
func (p VectorParams) Validate() error {
	for i, c := range p.Corners {
		prefix := voiceParam("vector.corners", i)

		if err := core.CheckRange(prefix+".frequency", c.Frequency, minFrequency, maxFrequency); err != nil {
			return err
		}

		if c.Duty != 0 {
			if err := core.CheckRange(prefix+".duty", c.Duty, 0.01, 0.99); err != nil {
				return err
			}
		}
	}

	if err := core.CheckRange("vector.x", p.X, 0, 1); err != nil {
		return err
	}

	if err := core.CheckRange("vector.y", p.Y, 0, 1); err != nil {
		return err
	}

	if p.Path == VectorPathStatic {
		return nil
	}

	if err := core.CheckRange("vector.end_x", p.EndX, 0, 1); err != nil {
		return err
	}

	return core.CheckRange("vector.end_y", p.EndY, 0, 1)
}

// WavetableParams reads a bandlimited table built from a harmonic spectrum,
// optionally morphing toward a second spectrum.
type WavetableParams struct {
	Frequency float64
	Harmonics []float64 // amplitude per harmonic, fundamental first
	MorphTo   []float64 // optional morph-target spectrum
	Morph     float64   // blend amount in [0, 1]
}

func (p WavetableParams) variant() string { return "wavetable" }

// Validate checks the spectrum and morph fields.
func (p WavetableParams) Validate() error {
	if err := core.CheckRange("wavetable.frequency", p.Frequency, minFrequency, maxFrequency); err != nil {
		return err
	}

	if len(p.Harmonics) == 0 || len(p.Harmonics) > maxWavetableHarmonics {
		return &core.InvalidParameterError{
			Param: "wavetable.harmonics", Value: float64(len(p.Harmonics)),
			Reason: "must have 1 to 256 harmonics",
		}
	}

	for i, h := range p.Harmonics {
		if err := core.CheckRange(voiceParam("wavetable.harmonics", i), h, 0, 1); err != nil {
			return err
		}
	}

	if len(p.MorphTo) > maxWavetableHarmonics {
		return &core.InvalidParameterError{
			Param: "wavetable.morph_to", Value: float64(len(p.MorphTo)),
			Reason: "must have at most 256 harmonics",
		}
	}

	for i, h := range p.MorphTo {
		if err := core.CheckRange(voiceParam("wavetable.morph_to", i), h, 0, 1); err != nil {
			return err
		}
	}

	return core.CheckRange("wavetable.morph", p.Morph, 0, 1)
}

// VocoderParams imposes a target band envelope on a carrier/noise source
// through a bandpass bank.
type VocoderParams struct {
	CarrierFrequency float64
	NoiseMix         float64   // blend between saw carrier (0) and noise (1)
	BandGains        []float64 // target envelope across log-spaced bands
}

func (p VocoderParams) variant() string { return "vocoder" }

// Validate checks the carrier and every band gain.
func (p VocoderParams) Validate() error {
	if err := core.CheckRange("vocoder.carrier_frequency", p.CarrierFrequency, minFrequency, maxFrequency); err != nil {
		return err
	}

	if err := core.CheckRange("vocoder.noise_mix", p.NoiseMix, 0, 1); err != nil {
		return err
	}

	if len(p.BandGains) < 2 || len(p.BandGains) > 32 {
		return &core.InvalidParameterError{
			Param: "vocoder.band_gains", Value: float64(len(p.BandGains)),
			Reason: "must have 2 to 32 bands",
		}
	}

	for i, g := range p.BandGains {
		if err := core.CheckRange(voiceParam("vocoder.band_gains", i), g, 0, 1); err != nil {
			return err
		}
	}

	return nil
}

// Formant is one resonance of a FormantParams voice.
type Formant struct {
	CenterHz    float64
	BandwidthHz float64
	Gain        float64
}

// FormantParams shapes a glottal saw source with resonant bandpass filters
// at formant frequencies.
type FormantParams struct {
	Frequency   float64 // fundamental of the source
	Formants    []Formant
	Breathiness float64 // noise blended into the source
}

func (p FormantParams) variant() string { return "formant" }

// Validate checks the source and every formant.
func (p FormantParams) Validate() error {
	if err := core.CheckRange("formant.frequency", p.Frequency, minFrequency, 2000); err != nil {
		return err
	}

	if len(p.Formants) == 0 || len(p.Formants) > 8 {
		return &core.InvalidParameterError{
			Param: "formant.formants", Value: float64(len(p.Formants)),
			Reason: "must have 1 to 8 formants",
		}
	}

	for i, f := range p.Formants {
		prefix := voiceParam("formant.formants", i)

		if err := core.CheckRange(prefix+".center_hz", f.CenterHz, 100, 8000); err != nil {
			return err
		}

		if err := core.CheckRange(prefix+".bandwidth_hz", f.BandwidthHz, 10, 2000); err != nil {
			return err
		}

		if err := core.CheckRange(prefix+".gain", f.Gain, 0, 1); err != nil {
			return err
		}
	}

	return core.CheckRange("formant.breathiness", p.Breathiness, 0, 1)
}

const maxWavetableHarmonics = 256
