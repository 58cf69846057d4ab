package osc

import "math"

// Waveform identifies a basic oscillator shape.
type Waveform int

const (
	WaveformSine Waveform = iota
	WaveformSquare
	WaveformSaw
	WaveformTriangle
)

// String returns the waveform name.
func (w Waveform) String() string {
	switch w {
	case WaveformSine:
		return "sine"
	case WaveformSquare:
		return "square"
	case WaveformSaw:
		return "saw"
	case WaveformTriangle:
		return "triangle"
	default:
		return "unknown"
	}
}

// Sine evaluates a sine wave at normalized phase in [0, 1).
func Sine(phase float64) float64 {
	return math.Sin(2 * math.Pi * phase)
}

// Square evaluates a pulse wave with the given duty cycle in (0, 1).
func Square(phase, duty float64) float64 {
	if duty <= 0 || duty >= 1 {
		duty = 0.5
	}

	if phase < duty {
		return 1
	}

	return -1
}

// Saw evaluates a rising sawtooth in [-1, 1).
func Saw(phase float64) float64 {
	return 2*phase - 1
}

// Triangle evaluates a triangle wave in [-1, 1].
func Triangle(phase float64) float64 {
	if phase < 0.5 {
		return 4*phase - 1
	}

	return 3 - 4*phase
}

// Evaluate evaluates the waveform at phase with the given duty cycle.
// Duty applies to square waves only.
func Evaluate(w Waveform, phase, duty float64) float64 {
	switch w {
	case WaveformSquare:
		return Square(phase, duty)
	case WaveformSaw:
		return Saw(phase)
	case WaveformTriangle:
		return Triangle(phase)
	default:
		return Sine(phase)
	}
}
