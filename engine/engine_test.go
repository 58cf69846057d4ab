package engine

import (
	"math"
	"sync"
	"testing"

	"github.com/cwbudde/algo-synth/dsp/chain"
	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/envelope"
	"github.com/cwbudde/algo-synth/dsp/osc"
	"github.com/cwbudde/algo-synth/dsp/synth"
)

func testSpec() Spec {
	return Spec{
		Seed:     1234,
		Duration: 0.5,
		Layers: []Layer{
			{
				Synth:    synth.OscillatorParams{Waveform: osc.WaveformSine, Frequency: 440, Amplitude: 1},
				Envelope: &envelope.ADSRParams{Attack: 0.01, Decay: 0.1, Sustain: 0.7, Release: 0.2},
				Volume:   0.8,
				Pan:      0.3,
			},
			{
				Synth:  synth.MembraneParams{Frequency: 70, Tone: 0.4, Decay: 0.4, Strike: 0.8},
				Volume: 0.6,
				Pan:    0.7,
			},
			{
				Synth:  synth.NoiseParams{Color: osc.NoisePink, Amplitude: 0.3},
				Volume: 0.2,
				Pan:    0.5,
			},
		},
		Effects: []chain.Params{
			{Type: "flanger", Num: map[string]float64{"wet": 0.3}},
			{Type: "granular_delay", Num: map[string]float64{"jitter": 0.4}},
			{Type: "limiter", Num: map[string]float64{"threshold_db": -1}},
		},
	}
}

func TestGenerateDeterministic(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	a, err := e.Generate(testSpec())
	if err != nil {
		t.Fatalf("first Generate failed: %v", err)
	}

	b, err := e.Generate(testSpec())
	if err != nil {
		t.Fatalf("second Generate failed: %v", err)
	}

	for i := range a.Len() {
		if a.Left[i] != b.Left[i] || a.Right[i] != b.Right[i] {
			t.Fatalf("repeated render differs at sample %d", i)
		}
	}
}

func TestGenerateSeedChangesRandomLayers(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	spec := testSpec()

	a, err := e.Generate(spec)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	spec.Seed = 1235

	b, err := e.Generate(spec)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	same := true
	for i := range a.Len() {
		if a.Left[i] != b.Left[i] {
			same = false
			break
		}
	}

	if same {
		t.Error("different seeds produced identical output")
	}
}

func TestGenerateOutputLength(t *testing.T) {
	e, err := New(WithSampleRate(48000))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	buf, err := e.Generate(Spec{
		Seed:     1,
		Duration: 0.25,
		Layers: []Layer{
			{Synth: synth.OscillatorParams{Waveform: osc.WaveformSine, Frequency: 220, Amplitude: 1}, Volume: 1, Pan: 0.5},
		},
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if want := 12000; buf.Len() != want {
		t.Fatalf("output length: got %d, want %d", buf.Len(), want)
	}
}

func TestGenerateFailsWholeCallOnInvalidLayer(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	spec := testSpec()
	spec.Layers = append(spec.Layers, Layer{
		Synth:  synth.OscillatorParams{Waveform: osc.WaveformSine, Frequency: 5, Amplitude: 1},
		Volume: 0.5,
		Pan:    0.5,
	})

	if _, err := e.Generate(spec); err == nil {
		t.Fatal("expected Generate to fail on out-of-range frequency")
	}
}

func TestGenerateFailsWholeCallOnInvalidEffect(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	spec := testSpec()
	spec.Effects = append(spec.Effects, chain.Params{
		Type: "gate",
		Num:  map[string]float64{"threshold_db": -90},
	})

	if _, err := e.Generate(spec); err == nil {
		t.Fatal("expected Generate to fail on out-of-range gate threshold")
	}
}

func TestGenerateRejectsBadDuration(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	spec := testSpec()

	for _, duration := range []float64{0, -1, math.NaN(), math.Inf(1), 601} {
		spec.Duration = duration

		if _, err := e.Generate(spec); err == nil {
			t.Errorf("expected failure for duration %v", duration)
		}
	}
}

func TestGenerateNoLayersRendersSilence(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	buf, err := e.Generate(Spec{Seed: 1, Duration: 0.1})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if buf.Len() == 0 {
		t.Fatal("expected non-empty silent buffer")
	}

	for i := range buf.Len() {
		if buf.Left[i] != 0 || buf.Right[i] != 0 {
			t.Fatalf("expected silence, sample %d is %v/%v", i, buf.Left[i], buf.Right[i])
		}
	}
}

func TestGenerateConcurrentCalls(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	reference, err := e.Generate(testSpec())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	const workers = 8

	results := make([]*core.StereoBuffer, workers)

	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			buf, err := e.Generate(testSpec())
			if err != nil {
				t.Errorf("concurrent Generate failed: %v", err)
				return
			}

			results[w] = buf
		}()
	}

	wg.Wait()

	for w, buf := range results {
		if buf == nil {
			continue
		}

		for i := range buf.Len() {
			if buf.Left[i] != reference.Left[i] {
				t.Fatalf("worker %d differs at sample %d", w, i)
			}
		}
	}
}

func TestWithNormalizeBoundsMix(t *testing.T) {
	e, err := New(WithNormalize())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	spec := Spec{
		Seed:     9,
		Duration: 0.2,
		Layers: []Layer{
			{Synth: synth.OscillatorParams{Waveform: osc.WaveformSine, Frequency: 440, Amplitude: 1}, Volume: 1, Pan: 0.5},
			{Synth: synth.OscillatorParams{Waveform: osc.WaveformSine, Frequency: 440, Amplitude: 1}, Volume: 1, Pan: 0.5},
			{Synth: synth.OscillatorParams{Waveform: osc.WaveformSine, Frequency: 440, Amplitude: 1}, Volume: 1, Pan: 0.5},
		},
	}

	buf, err := e.Generate(spec)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if peak := buf.Peak(); peak > 1+1e-12 {
		t.Errorf("normalized mix peak above unity: %v", peak)
	}
}
