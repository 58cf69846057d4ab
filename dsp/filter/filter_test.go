package filter

import (
	"math"
	"testing"
)

func TestOnePoleBypassConditions(t *testing.T) {
	tests := []struct {
		name       string
		cutoff     float64
		sampleRate float64
		bypass     bool
	}{
		{"normal", 1000, 48000, false},
		{"zero cutoff", 0, 48000, true},
		{"negative cutoff", -10, 48000, true},
		{"at nyquist", 24000, 48000, true},
		{"above nyquist", 30000, 48000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewOnePoleLowpass(tt.cutoff, tt.sampleRate)
			if f.Bypassed() != tt.bypass {
				t.Fatalf("Bypassed() = %v, want %v", f.Bypassed(), tt.bypass)
			}
		})
	}
}

func TestOnePoleBypassPassesThrough(t *testing.T) {
	f := NewOnePoleLowpass(0, 48000)

	for _, v := range []float64{1, -0.5, 0.25} {
		if got := f.Process(v); got != v {
			t.Fatalf("bypassed filter altered sample: %g -> %g", v, got)
		}
	}
}

func TestOnePoleSmoothsSteps(t *testing.T) {
	f := NewOnePoleLowpass(100, 48000)

	first := f.Process(1)
	if first >= 1 || first <= 0 {
		t.Fatalf("lowpass must approach target gradually: %g", first)
	}

	var last float64
	for range 48000 {
		last = f.Process(1)
	}

	if math.Abs(last-1) > 1e-3 {
		t.Fatalf("lowpass must converge to DC input: %g", last)
	}
}

func TestBandpassAttenuatesFarFrequencies(t *testing.T) {
	const rate = 48000.0

	bq, err := NewBandpass(1000, 4, rate)
	if err != nil {
		t.Fatal(err)
	}

	inBand := responseAt(bq, 1000, rate)

	bq.Reset()

	outOfBand := responseAt(bq, 8000, rate)

	if inBand < 4*outOfBand {
		t.Fatalf("bandpass selectivity too weak: in=%g out=%g", inBand, outOfBand)
	}
}

func TestBiquadValidation(t *testing.T) {
	if _, err := NewBandpass(0, 4, 48000); err == nil {
		t.Fatal("zero center must fail")
	}

	if _, err := NewBandpass(30000, 4, 48000); err == nil {
		t.Fatal("center above nyquist must fail")
	}

	if _, err := NewBandpass(1000, 0, 48000); err == nil {
		t.Fatal("zero q must fail")
	}

	if _, err := NewResonator(1000, 0, 48000); err == nil {
		t.Fatal("zero bandwidth must fail")
	}
}

func TestResonatorStable(t *testing.T) {
	bq, err := NewResonator(800, 50, 48000)
	if err != nil {
		t.Fatal(err)
	}

	// Impulse response must decay, not blow up.
	out := bq.Process(1)
	peak := math.Abs(out)

	var tail float64
	for i := range 48000 {
		v := math.Abs(bq.Process(0))
		if v > peak {
			peak = v
		}

		if i > 47000 {
			tail = math.Max(tail, v)
		}
	}

	if tail > 1e-3 {
		t.Fatalf("resonator impulse response did not decay: tail=%g", tail)
	}
}

// responseAt measures steady-state output amplitude for a sine input.
func responseAt(bq *Biquad, freq, rate float64) float64 {
	peak := 0.0

	for i := range 9600 {
		in := math.Sin(2 * math.Pi * freq * float64(i) / rate)
		out := bq.Process(in)

		// Skip the transient.
		if i > 4800 {
			if a := math.Abs(out); a > peak {
				peak = a
			}
		}
	}

	return peak
}
