package interp

import (
	"math"
	"testing"
)

func TestLinearEndpoints(t *testing.T) {
	if Linear(0, 2, 4) != 2 || Linear(1, 2, 4) != 4 {
		t.Fatal("linear interpolation must hit endpoints exactly")
	}

	if got := Linear(0.5, 2, 4); got != 3 {
		t.Fatalf("midpoint: got %g want 3", got)
	}
}

func TestHermite4Endpoints(t *testing.T) {
	if got := Hermite4(0, -1, 0.5, 1, 2); got != 0.5 {
		t.Fatalf("t=0: got %g want 0.5", got)
	}

	if got := Hermite4(1, -1, 0.5, 1, 2); got != 1 {
		t.Fatalf("t=1: got %g want 1", got)
	}
}

func TestHermite4ReproducesLine(t *testing.T) {
	// On colinear points the cubic degenerates to the line.
	for _, frac := range []float64{0.1, 0.25, 0.5, 0.9} {
		got := Hermite4(frac, 0, 1, 2, 3)
		if math.Abs(got-(1+frac)) > 1e-12 {
			t.Fatalf("colinear t=%g: got %g want %g", frac, got, 1+frac)
		}
	}
}
