// Package window generates tapering windows for grain envelopes and FIR
// design.
package window

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
)

// String returns the window name.
func (t Type) String() string {
	switch t {
	case TypeRectangular:
		return "rectangular"
	case TypeHann:
		return "hann"
	case TypeHamming:
		return "hamming"
	case TypeBlackman:
		return "blackman"
	default:
		return "unknown"
	}
}

// Generate returns n window coefficients in symmetric form.
func Generate(windowType Type, n int) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("window length must be > 0: %d", n)
	}

	out := make([]float64, n)
	if n == 1 {
		out[0] = 1
		return out, nil
	}

	denom := float64(n - 1)

	for i := range out {
		x := float64(i) / denom

		switch windowType {
		case TypeHann:
			out[i] = 0.5 - 0.5*math.Cos(2*math.Pi*x)
		case TypeHamming:
			out[i] = 0.54 - 0.46*math.Cos(2*math.Pi*x)
		case TypeBlackman:
			out[i] = 0.42 - 0.5*math.Cos(2*math.Pi*x) + 0.08*math.Cos(4*math.Pi*x)
		default:
			out[i] = 1
		}
	}

	return out, nil
}

// Hann evaluates the Hann curve at position i of an n-sample window without
// materializing coefficients. Used by per-sample grain envelopes.
func Hann(i, n int) float64 {
	if n <= 1 {
		return 1
	}

	return 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
}

// HannPeriodic evaluates the periodic Hann curve at position i of an
// n-sample window. Two copies offset by n/2 sum to exactly one, which the
// overlap-add grain streams rely on.
func HannPeriodic(i, n int) float64 {
	if n <= 1 {
		return 1
	}

	return 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
}

// Apply multiplies samples by coeffs in place. Lengths must match.
func Apply(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return fmt.Errorf("window length mismatch: samples=%d coeffs=%d", len(samples), len(coeffs))
	}

	if len(samples) == 0 {
		return nil
	}

	vecmath.MulBlockInPlace(samples, coeffs)

	return nil
}
