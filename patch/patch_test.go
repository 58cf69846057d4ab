package patch

import (
	"strings"
	"testing"

	"github.com/cwbudde/algo-synth/dsp/synth"
	"github.com/cwbudde/algo-synth/engine"
)

const examplePatch = `
seed: 1234
duration: 0.5
layers:
  - synth:
      type: oscillator
      waveform: saw
      frequency: 220
      amplitude: 1.0
      sweep:
        mode: exponential
        end_frequency: 440
    envelope:
      attack: 0.01
      decay: 0.1
      sustain: 0.7
      release: 0.2
    volume: 0.8
    pan: 0.3
  - synth:
      type: membrane
      frequency: 70
      tone: 0.4
      decay: 0.5
      strike: 0.8
    volume: 0.6
    pan: 0.7
effects:
  - type: flanger
    params:
      rate: 0.5
      depth: 0.7
      wet: 0.4
  - type: multi_tap
    taps:
      - delay_ms: 120
        level: 0.5
        pan: 0.2
        cutoff_hz: 4000
      - delay_ms: 250
        level: 0.3
        pan: 0.8
  - type: limiter
    params:
      threshold_db: -1.0
`

func TestParseExamplePatch(t *testing.T) {
	spec, err := Parse([]byte(examplePatch))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if spec.Seed != 1234 || spec.Duration != 0.5 {
		t.Errorf("header: got seed %d duration %v", spec.Seed, spec.Duration)
	}

	if len(spec.Layers) != 2 {
		t.Fatalf("expected 2 layers, got %d", len(spec.Layers))
	}

	oscParams, ok := spec.Layers[0].Synth.(synth.OscillatorParams)
	if !ok {
		t.Fatalf("layer 0: expected OscillatorParams, got %T", spec.Layers[0].Synth)
	}

	if oscParams.Frequency != 220 || oscParams.Sweep.Mode != synth.SweepExponential {
		t.Errorf("layer 0 fields: %+v", oscParams)
	}

	if spec.Layers[0].Envelope == nil || spec.Layers[0].Envelope.Sustain != 0.7 {
		t.Errorf("layer 0 envelope not mapped: %+v", spec.Layers[0].Envelope)
	}

	if _, ok := spec.Layers[1].Synth.(synth.MembraneParams); !ok {
		t.Fatalf("layer 1: expected MembraneParams, got %T", spec.Layers[1].Synth)
	}

	if len(spec.Effects) != 3 {
		t.Fatalf("expected 3 effects, got %d", len(spec.Effects))
	}

	if spec.Effects[1].Type != "multi_tap" || len(spec.Effects[1].Taps) != 2 {
		t.Errorf("multi_tap taps not mapped: %+v", spec.Effects[1])
	}

	if spec.Effects[2].Num["threshold_db"] != -1 {
		t.Errorf("limiter params not mapped: %+v", spec.Effects[2].Num)
	}
}

func TestParsedPatchRenders(t *testing.T) {
	spec, err := Parse([]byte(examplePatch))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	e, err := engine.New()
	if err != nil {
		t.Fatalf("engine.New failed: %v", err)
	}

	buf, err := e.Generate(spec)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if buf.Len() == 0 {
		t.Fatal("expected non-empty render")
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	bad := strings.Replace(examplePatch, "duration: 0.5", "duraton: 0.5", 1)

	if _, err := Parse([]byte(bad)); err == nil {
		t.Fatal("expected unknown field to fail")
	}
}

func TestParseRejectsUnknownSynthType(t *testing.T) {
	bad := strings.Replace(examplePatch, "type: membrane", "type: theremin", 1)

	if _, err := Parse([]byte(bad)); err == nil {
		t.Fatal("expected unknown synth type to fail")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	spec, err := Parse([]byte(examplePatch))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	data, err := Marshal(spec)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	again, err := Parse(data)
	if err != nil {
		t.Fatalf("re-Parse failed: %v", err)
	}

	if len(again.Layers) != len(spec.Layers) || len(again.Effects) != len(spec.Effects) {
		t.Fatalf("round trip changed shape: %d/%d layers, %d/%d effects",
			len(again.Layers), len(spec.Layers), len(again.Effects), len(spec.Effects))
	}

	first, ok := again.Layers[0].Synth.(synth.OscillatorParams)
	if !ok {
		t.Fatalf("round trip changed layer 0 type: %T", again.Layers[0].Synth)
	}

	if first.Frequency != 220 || first.Sweep.EndFrequency != 440 {
		t.Errorf("round trip changed layer 0 fields: %+v", first)
	}
}

func TestAllVariantsRoundTrip(t *testing.T) {
	variants := []synth.Params{
		synth.FMParams{CarrierFrequency: 440, ModulatorFrequency: 110, Index: 3, Amplitude: 1},
		synth.RingModParams{CarrierFrequency: 440, ModulatorFrequency: 130, Mix: 0.5},
		synth.KarplusStrongParams{Frequency: 220, Decay: 0.99},
		synth.BowedStringParams{Frequency: 220, BowPressure: 0.5, BowVelocity: 0.5, BowPosition: 0.1, Damping: 0.3},
		synth.WavetableParams{Frequency: 220, Harmonics: []float64{1, 0.5}, MorphTo: []float64{0, 1}, Morph: 0.5},
		synth.VocoderParams{CarrierFrequency: 110, NoiseMix: 0.2, BandGains: []float64{0.5, 1, 0.5}},
		synth.FormantParams{Frequency: 120, Breathiness: 0.1, Formants: []synth.Formant{{CenterHz: 700, BandwidthHz: 80, Gain: 1}}},
	}

	for _, params := range variants {
		spec := engine.Spec{
			Seed:     1,
			Duration: 0.1,
			Layers:   []engine.Layer{{Synth: params, Volume: 0.5, Pan: 0.5}},
		}

		data, err := Marshal(spec)
		if err != nil {
			t.Fatalf("%T: Marshal failed: %v", params, err)
		}

		again, err := Parse(data)
		if err != nil {
			t.Fatalf("%T: re-Parse failed: %v", params, err)
		}

		if len(again.Layers) != 1 {
			t.Fatalf("%T: round trip lost the layer", params)
		}
	}
}
