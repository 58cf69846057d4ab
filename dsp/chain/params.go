package chain

import (
	"math"

	"github.com/cwbudde/algo-synth/dsp/effects"
)

// Params holds the parsed parameters for a single chain node.
type Params struct {
	Type     string
	Bypassed bool
	Num      map[string]float64

	// Taps carries structured tap descriptions for the multi-tap delay,
	// which a flat numeric map cannot express.
	Taps []effects.Tap
}

// GetNum safely extracts a numeric parameter, returning def if missing or
// non-finite.
func (p Params) GetNum(key string, def float64) float64 {
	if p.Num == nil {
		return def
	}

	v, ok := p.Num[key]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}

	return v
}
