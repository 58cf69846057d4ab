package core

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
)

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// CopyInto copies src into dst and returns the number of copied elements.
func CopyInto(dst, src []float64) int {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	copy(dst[:n], src[:n])
	return n
}

// StereoBuffer holds left and right sample sequences of equal length.
//
// Effects mutate it in place; the equal-length invariant must hold at every
// stage boundary. A violation is a programming defect, not user error.
type StereoBuffer struct {
	Left  []float64
	Right []float64
}

// NewStereoBuffer returns a zeroed stereo buffer of n frames.
func NewStereoBuffer(n int) *StereoBuffer {
	if n < 0 {
		n = 0
	}
	return &StereoBuffer{
		Left:  make([]float64, n),
		Right: make([]float64, n),
	}
}

// Len returns the frame count.
func (b *StereoBuffer) Len() int {
	return len(b.Left)
}

// Validate checks the equal-length invariant.
func (b *StereoBuffer) Validate() error {
	if len(b.Left) != len(b.Right) {
		return fmt.Errorf("%w: stereo channel lengths differ: left=%d right=%d",
			ErrInvariant, len(b.Left), len(b.Right))
	}
	return nil
}

// Peak returns the largest absolute sample value across both channels.
func (b *StereoBuffer) Peak() float64 {
	l := vecmath.MaxAbs(b.Left)
	r := vecmath.MaxAbs(b.Right)
	if r > l {
		return r
	}
	return l
}

// Scale multiplies both channels by gain in place.
func (b *StereoBuffer) Scale(gain float64) {
	vecmath.ScaleBlockInPlace(b.Left, gain)
	vecmath.ScaleBlockInPlace(b.Right, gain)
}

// Clone returns a deep copy.
func (b *StereoBuffer) Clone() *StereoBuffer {
	out := NewStereoBuffer(b.Len())
	copy(out.Left, b.Left)
	copy(out.Right, b.Right)
	return out
}
