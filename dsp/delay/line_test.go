package delay

import (
	"math"
	"testing"
)

func TestNewValidation(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Fatal("expected error for size=0")
	}

	if _, err := New(-1); err == nil {
		t.Fatal("expected error for size=-1")
	}
}

func TestIntegerRead(t *testing.T) {
	d, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	for i := range 5 {
		d.Write(float64(i + 1))
	}

	// Most recent write is at delay 1.
	if got := d.Read(1); got != 5 {
		t.Fatalf("Read(1): got %g want 5", got)
	}

	if got := d.Read(5); got != 1 {
		t.Fatalf("Read(5): got %g want 1", got)
	}
}

func TestFractionalReadInterpolates(t *testing.T) {
	d, err := New(16)
	if err != nil {
		t.Fatal(err)
	}

	for i := range 8 {
		d.Write(float64(i))
	}

	// Between delay 1 (sample 7) and delay 2 (sample 6).
	got := d.ReadFractional(0.5)
	if math.Abs(got-6.5) > 1e-12 {
		t.Fatalf("ReadFractional(0.5): got %g want 6.5", got)
	}
}

func TestFractionalReadClamped(t *testing.T) {
	d, err := New(4)
	if err != nil {
		t.Fatal(err)
	}

	d.Write(1)
	d.Write(2)
	d.Write(3)

	if got := d.ReadFractional(-5); math.IsNaN(got) {
		t.Fatal("negative delay must clamp, not NaN")
	}

	if got := d.ReadFractional(100); math.IsNaN(got) {
		t.Fatal("oversized delay must clamp, not NaN")
	}
}

func TestVaryingDelayContinuity(t *testing.T) {
	d, err := New(64)
	if err != nil {
		t.Fatal(err)
	}

	// Write a slow ramp and sweep the read delay; output must stay within
	// the written value range (linear interpolation cannot overshoot).
	for i := range 64 {
		d.Write(float64(i) / 64)
	}

	for i := range 32 {
		delay := 2 + 10*math.Abs(math.Sin(float64(i)*0.3))

		v := d.ReadFractional(delay)
		if v < 0 || v > 1 {
			t.Fatalf("interpolated read out of written range: %g", v)
		}
	}
}

func TestWrapAround(t *testing.T) {
	d, err := New(4)
	if err != nil {
		t.Fatal(err)
	}

	for i := range 10 {
		d.Write(float64(i))
	}

	// Buffer now holds 6,7,8,9; most recent at delay 1.
	if got := d.Read(1); got != 9 {
		t.Fatalf("Read(1) after wrap: got %g want 9", got)
	}

	if got := d.Read(4); got != 6 {
		t.Fatalf("Read(4) after wrap: got %g want 6", got)
	}
}

func TestReset(t *testing.T) {
	d, _ := New(8)
	d.Write(1)
	d.Reset()

	if got := d.Read(1); got != 0 {
		t.Fatalf("after reset: got %g want 0", got)
	}
}
