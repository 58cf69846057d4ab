package patch

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-synth/dsp/osc"
	"github.com/cwbudde/algo-synth/dsp/synth"
)

func newStrictDecoder(data []byte) *yaml.Decoder {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	return dec
}

// SynthDoc is the YAML shape of one synthesis voice. It is a superset of
// all variant fields; Type selects which ones are read.
type SynthDoc struct {
	Type string `yaml:"type"`

	Waveform  string    `yaml:"waveform,omitempty"`
	Frequency float64   `yaml:"frequency,omitempty"`
	Amplitude float64   `yaml:"amplitude,omitempty"`
	Duty      float64   `yaml:"duty,omitempty"`
	Sweep     *SweepDoc `yaml:"sweep,omitempty"`

	Voices   []VoiceDoc   `yaml:"voices,omitempty"`
	Partials []PartialDoc `yaml:"partials,omitempty"`

	CarrierFrequency   float64 `yaml:"carrier_frequency,omitempty"`
	ModulatorFrequency float64 `yaml:"modulator_frequency,omitempty"`
	Index              float64 `yaml:"index,omitempty"`
	Depth              float64 `yaml:"depth,omitempty"`
	Mix                float64 `yaml:"mix,omitempty"`

	Color string `yaml:"color,omitempty"`

	Decay        float64 `yaml:"decay,omitempty"`
	PickPosition float64 `yaml:"pick_position,omitempty"`

	BowPressure float64 `yaml:"bow_pressure,omitempty"`
	BowVelocity float64 `yaml:"bow_velocity,omitempty"`
	BowPosition float64 `yaml:"bow_position,omitempty"`
	Damping     float64 `yaml:"damping,omitempty"`

	Tone   float64 `yaml:"tone,omitempty"`
	Strike float64 `yaml:"strike,omitempty"`

	GrainSeconds float64 `yaml:"grain_seconds,omitempty"`
	Density      float64 `yaml:"density,omitempty"`
	Jitter       float64 `yaml:"jitter,omitempty"`
	PitchSpread  float64 `yaml:"pitch_spread,omitempty"`

	Corners []VoiceDoc `yaml:"corners,omitempty"`
	X       float64    `yaml:"x,omitempty"`
	Y       float64    `yaml:"y,omitempty"`
	Path    string     `yaml:"path,omitempty"`
	EndX    float64    `yaml:"end_x,omitempty"`
	EndY    float64    `yaml:"end_y,omitempty"`

	Harmonics []float64 `yaml:"harmonics,omitempty"`
	MorphTo   []float64 `yaml:"morph_to,omitempty"`
	Morph     float64   `yaml:"morph,omitempty"`

	NoiseMix  float64   `yaml:"noise_mix,omitempty"`
	BandGains []float64 `yaml:"band_gains,omitempty"`

	Formants    []FormantDoc `yaml:"formants,omitempty"`
	Breathiness float64      `yaml:"breathiness,omitempty"`
}

// SweepDoc is the YAML shape of a frequency sweep.
type SweepDoc struct {
	Mode         string  `yaml:"mode"`
	EndFrequency float64 `yaml:"end_frequency"`
}

// VoiceDoc is the YAML shape of one oscillator voice or vector corner.
type VoiceDoc struct {
	Waveform    string  `yaml:"waveform"`
	Frequency   float64 `yaml:"frequency"`
	DetuneCents float64 `yaml:"detune_cents,omitempty"`
	Duty        float64 `yaml:"duty,omitempty"`
	Level       float64 `yaml:"level,omitempty"`
}

// PartialDoc is the YAML shape of one additive partial.
type PartialDoc struct {
	Ratio float64 `yaml:"ratio"`
	Level float64 `yaml:"level"`
}

// FormantDoc is the YAML shape of one formant resonance.
type FormantDoc struct {
	CenterHz    float64 `yaml:"center_hz"`
	BandwidthHz float64 `yaml:"bandwidth_hz"`
	Gain        float64 `yaml:"gain"`
}

func parseWaveform(name string) (osc.Waveform, error) {
	switch name {
	case "", "sine":
		return osc.WaveformSine, nil
	case "square":
		return osc.WaveformSquare, nil
	case "saw":
		return osc.WaveformSaw, nil
	case "triangle":
		return osc.WaveformTriangle, nil
	default:
		return 0, fmt.Errorf("unknown waveform %q", name)
	}
}

func parseNoiseColor(name string) (osc.NoiseColor, error) {
	switch name {
	case "", "white":
		return osc.NoiseWhite, nil
	case "pink":
		return osc.NoisePink, nil
	case "brown":
		return osc.NoiseBrown, nil
	default:
		return 0, fmt.Errorf("unknown noise color %q", name)
	}
}

func parseSweep(doc *SweepDoc) (synth.Sweep, error) {
	if doc == nil {
		return synth.Sweep{}, nil
	}

	var mode synth.SweepMode

	switch doc.Mode {
	case "", "none":
		mode = synth.SweepNone
	case "linear":
		mode = synth.SweepLinear
	case "exponential":
		mode = synth.SweepExponential
	case "logarithmic":
		mode = synth.SweepLogarithmic
	default:
		return synth.Sweep{}, fmt.Errorf("unknown sweep mode %q", doc.Mode)
	}

	return synth.Sweep{Mode: mode, EndFrequency: doc.EndFrequency}, nil
}

func parsePath(name string) (synth.VectorPathMode, error) {
	switch name {
	case "", "static":
		return synth.VectorPathStatic, nil
	case "linear":
		return synth.VectorPathLinear, nil
	case "ease":
		return synth.VectorPathEase, nil
	default:
		return 0, fmt.Errorf("unknown vector path %q", name)
	}
}

// toParams maps the document onto the variant selected by Type. Numeric
// validation is left to the engine.
func (d SynthDoc) toParams() (synth.Params, error) {
	switch d.Type {
	case "oscillator":
		waveform, err := parseWaveform(d.Waveform)
		if err != nil {
			return nil, err
		}

		sweep, err := parseSweep(d.Sweep)
		if err != nil {
			return nil, err
		}

		return synth.OscillatorParams{
			Waveform:  waveform,
			Frequency: d.Frequency,
			Amplitude: d.Amplitude,
			Duty:      d.Duty,
			Sweep:     sweep,
		}, nil

	case "multi_oscillator":
		sweep, err := parseSweep(d.Sweep)
		if err != nil {
			return nil, err
		}

		p := synth.MultiOscillatorParams{Sweep: sweep}

		for _, voice := range d.Voices {
			waveform, err := parseWaveform(voice.Waveform)
			if err != nil {
				return nil, err
			}

			p.Voices = append(p.Voices, synth.OscVoice{
				Waveform:    waveform,
				Frequency:   voice.Frequency,
				DetuneCents: voice.DetuneCents,
				Duty:        voice.Duty,
				Level:       voice.Level,
			})
		}

		return p, nil

	case "additive":
		sweep, err := parseSweep(d.Sweep)
		if err != nil {
			return nil, err
		}

		p := synth.AdditiveParams{Frequency: d.Frequency, Sweep: sweep}
		for _, partial := range d.Partials {
			p.Partials = append(p.Partials, synth.Partial{Ratio: partial.Ratio, Level: partial.Level})
		}

		return p, nil

	case "fm":
		return synth.FMParams{
			CarrierFrequency:   d.CarrierFrequency,
			ModulatorFrequency: d.ModulatorFrequency,
			Index:              d.Index,
			Amplitude:          d.Amplitude,
		}, nil

	case "am":
		return synth.AMParams{
			CarrierFrequency:   d.CarrierFrequency,
			ModulatorFrequency: d.ModulatorFrequency,
			Depth:              d.Depth,
			Amplitude:          d.Amplitude,
		}, nil

	case "ring_mod":
		return synth.RingModParams{
			CarrierFrequency:   d.CarrierFrequency,
			ModulatorFrequency: d.ModulatorFrequency,
			Mix:                d.Mix,
		}, nil

	case "noise":
		color, err := parseNoiseColor(d.Color)
		if err != nil {
			return nil, err
		}

		return synth.NoiseParams{Color: color, Amplitude: d.Amplitude}, nil

	case "karplus_strong":
		return synth.KarplusStrongParams{Frequency: d.Frequency, Decay: d.Decay}, nil

	case "pluck":
		return synth.PluckParams{
			Frequency:    d.Frequency,
			Decay:        d.Decay,
			PickPosition: d.PickPosition,
		}, nil

	case "bowed_string":
		return synth.BowedStringParams{
			Frequency:   d.Frequency,
			BowPressure: d.BowPressure,
			BowVelocity: d.BowVelocity,
			BowPosition: d.BowPosition,
			Damping:     d.Damping,
		}, nil

	case "membrane":
		return synth.MembraneParams{
			Frequency: d.Frequency,
			Tone:      d.Tone,
			Decay:     d.Decay,
			Strike:    d.Strike,
		}, nil

	case "granular":
		return synth.GranularParams{
			Frequency:    d.Frequency,
			GrainSeconds: d.GrainSeconds,
			Density:      d.Density,
			Jitter:       d.Jitter,
			PitchSpread:  d.PitchSpread,
		}, nil

	case "vector":
		if len(d.Corners) != 4 {
			return nil, fmt.Errorf("vector synth needs exactly 4 corners, got %d", len(d.Corners))
		}

		path, err := parsePath(d.Path)
		if err != nil {
			return nil, err
		}

		p := synth.VectorParams{X: d.X, Y: d.Y, Path: path, EndX: d.EndX, EndY: d.EndY}

		for i, corner := range d.Corners {
			waveform, err := parseWaveform(corner.Waveform)
			if err != nil {
				return nil, err
			}

			p.Corners[i] = synth.VectorSource{
				Waveform:  waveform,
				Frequency: corner.Frequency,
				Duty:      corner.Duty,
			}
		}

		return p, nil

	case "wavetable":
		return synth.WavetableParams{
			Frequency: d.Frequency,
			Harmonics: d.Harmonics,
			MorphTo:   d.MorphTo,
			Morph:     d.Morph,
		}, nil

	case "vocoder":
		return synth.VocoderParams{
			CarrierFrequency: d.CarrierFrequency,
			NoiseMix:         d.NoiseMix,
			BandGains:        d.BandGains,
		}, nil

	case "formant":
		p := synth.FormantParams{Frequency: d.Frequency, Breathiness: d.Breathiness}
		for _, formant := range d.Formants {
			p.Formants = append(p.Formants, synth.Formant{
				CenterHz:    formant.CenterHz,
				BandwidthHz: formant.BandwidthHz,
				Gain:        formant.Gain,
			})
		}

		return p, nil

	default:
		return nil, fmt.Errorf("unknown synth type %q", d.Type)
	}
}

func sweepDoc(s synth.Sweep) *SweepDoc {
	switch s.Mode {
	case synth.SweepLinear:
		return &SweepDoc{Mode: "linear", EndFrequency: s.EndFrequency}
	case synth.SweepExponential:
		return &SweepDoc{Mode: "exponential", EndFrequency: s.EndFrequency}
	case synth.SweepLogarithmic:
		return &SweepDoc{Mode: "logarithmic", EndFrequency: s.EndFrequency}
	default:
		return nil
	}
}

func pathName(mode synth.VectorPathMode) string {
	switch mode {
	case synth.VectorPathLinear:
		return "linear"
	case synth.VectorPathEase:
		return "ease"
	default:
		return "static"
	}
}

// fromParams is the inverse of toParams.
func fromParams(p synth.Params) (SynthDoc, error) {
	switch v := p.(type) {
	case synth.OscillatorParams:
		return SynthDoc{
			Type:      "oscillator",
			Waveform:  v.Waveform.String(),
			Frequency: v.Frequency,
			Amplitude: v.Amplitude,
			Duty:      v.Duty,
			Sweep:     sweepDoc(v.Sweep),
		}, nil

	case synth.MultiOscillatorParams:
		doc := SynthDoc{Type: "multi_oscillator", Sweep: sweepDoc(v.Sweep)}
		for _, voice := range v.Voices {
			doc.Voices = append(doc.Voices, VoiceDoc{
				Waveform:    voice.Waveform.String(),
				Frequency:   voice.Frequency,
				DetuneCents: voice.DetuneCents,
				Duty:        voice.Duty,
				Level:       voice.Level,
			})
		}

		return doc, nil

	case synth.AdditiveParams:
		doc := SynthDoc{Type: "additive", Frequency: v.Frequency, Sweep: sweepDoc(v.Sweep)}
		for _, partial := range v.Partials {
			doc.Partials = append(doc.Partials, PartialDoc{Ratio: partial.Ratio, Level: partial.Level})
		}

		return doc, nil

	case synth.FMParams:
		return SynthDoc{
			Type:               "fm",
			CarrierFrequency:   v.CarrierFrequency,
			ModulatorFrequency: v.ModulatorFrequency,
			Index:              v.Index,
			Amplitude:          v.Amplitude,
		}, nil

	case synth.AMParams:
		return SynthDoc{
			Type:               "am",
			CarrierFrequency:   v.CarrierFrequency,
			ModulatorFrequency: v.ModulatorFrequency,
			Depth:              v.Depth,
			Amplitude:          v.Amplitude,
		}, nil

	case synth.RingModParams:
		return SynthDoc{
			Type:               "ring_mod",
			CarrierFrequency:   v.CarrierFrequency,
			ModulatorFrequency: v.ModulatorFrequency,
			Mix:                v.Mix,
		}, nil

	case synth.NoiseParams:
		return SynthDoc{Type: "noise", Color: v.Color.String(), Amplitude: v.Amplitude}, nil

	case synth.KarplusStrongParams:
		return SynthDoc{Type: "karplus_strong", Frequency: v.Frequency, Decay: v.Decay}, nil

	case synth.PluckParams:
		return SynthDoc{
			Type:         "pluck",
			Frequency:    v.Frequency,
			Decay:        v.Decay,
			PickPosition: v.PickPosition,
		}, nil

	case synth.BowedStringParams:
		return SynthDoc{
			Type:        "bowed_string",
			Frequency:   v.Frequency,
			BowPressure: v.BowPressure,
			BowVelocity: v.BowVelocity,
			BowPosition: v.BowPosition,
			Damping:     v.Damping,
		}, nil

	case synth.MembraneParams:
		return SynthDoc{
			Type:      "membrane",
			Frequency: v.Frequency,
			Tone:      v.Tone,
			Decay:     v.Decay,
			Strike:    v.Strike,
		}, nil

	case synth.GranularParams:
		return SynthDoc{
			Type:         "granular",
			Frequency:    v.Frequency,
			GrainSeconds: v.GrainSeconds,
			Density:      v.Density,
			Jitter:       v.Jitter,
			PitchSpread:  v.PitchSpread,
		}, nil

	case synth.VectorParams:
		doc := SynthDoc{
			Type: "vector",
			X:    v.X, Y: v.Y,
			Path: pathName(v.Path),
			EndX: v.EndX, EndY: v.EndY,
		}

		for _, corner := range v.Corners {
			doc.Corners = append(doc.Corners, VoiceDoc{
				Waveform:  corner.Waveform.String(),
				Frequency: corner.Frequency,
				Duty:      corner.Duty,
			})
		}

		return doc, nil

	case synth.WavetableParams:
		return SynthDoc{
			Type:      "wavetable",
			Frequency: v.Frequency,
			Harmonics: v.Harmonics,
			MorphTo:   v.MorphTo,
			Morph:     v.Morph,
		}, nil

	case synth.VocoderParams:
		return SynthDoc{
			Type:             "vocoder",
			CarrierFrequency: v.CarrierFrequency,
			NoiseMix:         v.NoiseMix,
			BandGains:        v.BandGains,
		}, nil

	case synth.FormantParams:
		doc := SynthDoc{Type: "formant", Frequency: v.Frequency, Breathiness: v.Breathiness}
		for _, formant := range v.Formants {
			doc.Formants = append(doc.Formants, FormantDoc{
				CenterHz:    formant.CenterHz,
				BandwidthHz: formant.BandwidthHz,
				Gain:        formant.Gain,
			})
		}

		return doc, nil

	default:
		return SynthDoc{}, fmt.Errorf("unsupported synth parameters %T", p)
	}
}
