package envelope

import (
	"math"
	"testing"
)

func TestADSRAttackRampLevel(t *testing.T) {
	env, err := NewADSR(ADSRParams{Attack: 0.1, Decay: 0, Sustain: 1, Release: 0.2}, 1000)
	if err != nil {
		t.Fatal(err)
	}

	env.Trigger()

	var level float64
	for range 50 {
		level = env.NextSample()
	}

	if !nearly(level, 0.5, 1e-9) {
		t.Fatalf("level after 50 samples: got %g want 0.5", level)
	}

	if env.Stage() != StageAttack {
		t.Fatalf("stage: got %v want attack", env.Stage())
	}
}

func TestADSRReleaseLinearToIdle(t *testing.T) {
	const rate = 1000.0

	env, err := NewADSR(ADSRParams{Attack: 0.01, Decay: 0, Sustain: 1, Release: 0.1}, rate)
	if err != nil {
		t.Fatal(err)
	}

	env.Trigger()

	for range 20 {
		env.NextSample()
	}

	if env.Stage() != StageSustain {
		t.Fatalf("stage before release: got %v want sustain", env.Stage())
	}

	env.Release()

	idleTransitions := 0
	prev := env.Level()

	for range 200 {
		level := env.NextSample()
		if env.Stage() == StageIdle && prev != 0 && level == 0 {
			idleTransitions++
		}

		if level > prev+1e-12 && env.Stage() == StageRelease {
			t.Fatalf("release level must not increase: %g -> %g", prev, level)
		}

		prev = level
	}

	if env.Stage() != StageIdle {
		t.Fatalf("stage after release period: got %v want idle", env.Stage())
	}

	if idleTransitions != 1 {
		t.Fatalf("idle must be entered exactly once, got %d transitions", idleTransitions)
	}

	if env.Level() != 0 {
		t.Fatalf("idle level: got %g want 0", env.Level())
	}
}

func TestADSRReleaseCapturesLevelMidAttack(t *testing.T) {
	env, err := NewADSR(ADSRParams{Attack: 0.1, Decay: 0.1, Sustain: 0.5, Release: 0.1}, 1000)
	if err != nil {
		t.Fatal(err)
	}

	env.Trigger()

	for range 25 {
		env.NextSample()
	}

	levelAtRelease := env.Level()
	env.Release()

	first := env.NextSample()
	if first > levelAtRelease {
		t.Fatalf("release must ramp down from captured level %g, got %g", levelAtRelease, first)
	}
}

func TestADSRReleaseNoOpWhenIdle(t *testing.T) {
	env, err := NewADSR(ADSRParams{Attack: 0, Decay: 0, Sustain: 1, Release: 0}, 1000)
	if err != nil {
		t.Fatal(err)
	}

	env.Release()

	if env.Stage() != StageIdle {
		t.Fatalf("release from idle must stay idle, got %v", env.Stage())
	}
}

func TestADSRZeroLengthPhases(t *testing.T) {
	env, err := NewADSR(ADSRParams{Attack: 0, Decay: 0, Sustain: 0.7, Release: 0}, 1000)
	if err != nil {
		t.Fatal(err)
	}

	env.Trigger()

	level := env.NextSample()
	if !nearly(level, 0.7, 1e-12) {
		t.Fatalf("zero attack/decay must land on sustain in one call: got %g", level)
	}

	if env.Stage() != StageSustain {
		t.Fatalf("stage: got %v want sustain", env.Stage())
	}

	env.Release()

	if got := env.NextSample(); got != 0 {
		t.Fatalf("zero release must land on 0 in one call: got %g", got)
	}

	if env.Stage() != StageIdle {
		t.Fatalf("stage: got %v want idle", env.Stage())
	}
}

func TestADSRParamsValidation(t *testing.T) {
	tests := []struct {
		name    string
		params  ADSRParams
		wantErr bool
	}{
		{"valid", ADSRParams{0.01, 0.05, 0.8, 0.1}, false},
		{"negative attack", ADSRParams{-0.01, 0, 1, 0}, true},
		{"sustain above one", ADSRParams{0, 0, 1.5, 0}, true},
		{"NaN release", ADSRParams{0, 0, 1, math.NaN()}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGenerateFixedDurationLength(t *testing.T) {
	params := ADSRParams{Attack: 0.01, Decay: 0.01, Sustain: 0.6, Release: 0.05}

	out, err := GenerateFixedDuration(params, 48000, 0.25)
	if err != nil {
		t.Fatal(err)
	}

	want := int(math.Ceil(0.25 * 48000))
	if len(out) != want {
		t.Fatalf("length: got %d want %d", len(out), want)
	}

	if out[len(out)-1] > 0.01 {
		t.Fatalf("tail should have released toward 0, got %g", out[len(out)-1])
	}
}

func TestGenerateFixedDurationNeverTruncatesAttackDecay(t *testing.T) {
	// Release shorter than would fit: auto-release waits for attack+decay.
	params := ADSRParams{Attack: 0.1, Decay: 0.1, Sustain: 0.5, Release: 0.2}

	out, err := GenerateFixedDuration(params, 1000, 0.25)
	if err != nil {
		t.Fatal(err)
	}

	// Peak of attack must be present.
	peak := 0.0
	for _, v := range out {
		if v > peak {
			peak = v
		}
	}

	if !nearly(peak, 1, 1e-6) {
		t.Fatalf("attack peak truncated: got %g", peak)
	}
}

func TestDecayCurveMonotone(t *testing.T) {
	out, err := DecayCurve(48000, 0.1, 1)
	if err != nil {
		t.Fatal(err)
	}

	if !nearly(out[0], 1, 1e-12) {
		t.Fatalf("decay must start at 1: got %g", out[0])
	}

	for i := 1; i < len(out); i++ {
		if out[i] > out[i-1] {
			t.Fatalf("decay must be monotone at %d", i)
		}
	}

	if out[len(out)-1] > 0.01 {
		t.Fatalf("decay end: got %g want near -60 dB", out[len(out)-1])
	}
}

func TestAttackReleaseShape(t *testing.T) {
	out, err := AttackRelease(1000, 0.01, 0.02)
	if err != nil {
		t.Fatal(err)
	}

	if len(out) != 30 {
		t.Fatalf("length: got %d want 30", len(out))
	}

	if !nearly(out[9], 1, 1e-12) {
		t.Fatalf("attack peak: got %g want 1", out[9])
	}

	if out[len(out)-1] != 0 {
		t.Fatalf("release end: got %g want 0", out[len(out)-1])
	}
}

func nearly(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}
