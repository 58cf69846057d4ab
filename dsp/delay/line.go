// Package delay provides the circular delay line underlying the flanger,
// multi-tap delay, granular delay, and waveguide models.
package delay

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/interp"
)

// Line is a fixed-capacity circular delay line with a write cursor.
//
// Each effect invocation owns its lines exclusively; they are never shared.
type Line struct {
	buffer   []float64
	writePos int
}

// New returns a delay line of fixed size.
func New(size int) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("delay size must be > 0: %d", size)
	}
	return &Line{buffer: make([]float64, size)}, nil
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Write writes one sample and advances the cursor.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read reads an integer delay in samples, counted back from the cursor.
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	if size == 0 {
		return 0
	}

	if delay < 0 {
		delay = 0
	} else if delay >= size {
		delay = size - 1
	}

	readPos := (d.writePos - delay + size) % size
	return d.buffer[readPos]
}

// ReadFractional reads a fractional delay by linear interpolation between
// the two nearest historical samples. The delay may vary per sample; the
// only discontinuity introduced is ordinary interpolation error.
func (d *Line) ReadFractional(delay float64) float64 {
	size := len(d.buffer)
	if size == 0 {
		return 0
	}

	if delay < 0 {
		delay = 0
	}

	maxDelay := float64(size - 2)
	if delay > maxDelay {
		delay = maxDelay
	}

	p := int(math.Floor(delay))
	t := delay - float64(p)

	x0 := d.Read(p + 1)
	x1 := d.Read(p + 2)

	return interp.Linear(t, x0, x1)
}

// Reset clears line state.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
}
