package effects

import (
	"github.com/cwbudde/algo-synth/dsp/core"
)

// GateParams configures a downward expander with hold.
type GateParams struct {
	ThresholdDB float64
	Ratio       float64
	AttackMs    float64
	HoldMs      float64
	ReleaseMs   float64
	RangeDB     float64 // attenuation floor
}

// Validate checks all fields against their documented ranges.
func (p GateParams) Validate() error {
	if err := core.CheckRange("gate.threshold_db", p.ThresholdDB, -60, 0); err != nil {
		return err
	}

	if err := core.CheckMin("gate.ratio", p.Ratio, 1); err != nil {
		return err
	}

	if err := core.CheckRange("gate.attack_ms", p.AttackMs, 0.1, 50); err != nil {
		return err
	}

	if err := core.CheckRange("gate.hold_ms", p.HoldMs, 0, 500); err != nil {
		return err
	}

	if err := core.CheckRange("gate.release_ms", p.ReleaseMs, 10, 2000); err != nil {
		return err
	}

	return core.CheckRange("gate.range_db", p.RangeDB, -80, 0)
}

// Gate attenuates below-threshold signal by a ratio-controlled curve. It
// stays open for the hold time after the level falls below threshold, and
// attenuation never exceeds the range floor.
type Gate struct {
	thresholdDB  float64
	ratio        float64
	rangeDB      float64
	holdSamples  int
	attackCoeff  float64
	releaseCoeff float64
	detectorRel  float64
}

// NewGate creates a gate for the given sample rate.
func NewGate(sampleRate float64, p GateParams) (*Gate, error) {
	if err := core.CheckPositive("gate.sample_rate", sampleRate); err != nil {
		return nil, err
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &Gate{
		thresholdDB:  p.ThresholdDB,
		ratio:        p.Ratio,
		rangeDB:      p.RangeDB,
		holdSamples:  int(p.HoldMs * 0.001 * sampleRate),
		attackCoeff:  core.AttackCoeff(p.AttackMs, sampleRate),
		releaseCoeff: core.ReleaseCoeff(p.ReleaseMs, sampleRate),
		detectorRel:  core.ReleaseCoeff(50, sampleRate),
	}, nil
}

// Process applies the gate to both channels in place.
func (g *Gate) Process(buf *core.StereoBuffer) error {
	if err := buf.Validate(); err != nil {
		return err
	}

	n := buf.Len()
	if n == 0 {
		return nil
	}

	detector := 0.0
	gain := 1.0
	hold := 0

	for i := range n {
		peak := abs(buf.Left[i])
		if r := abs(buf.Right[i]); r > peak {
			peak = r
		}

		// Peak detector: instant rise, slow fall.
		if peak > detector {
			detector = peak
		} else {
			detector *= g.detectorRel
		}

		detector = core.FlushDenormals(detector)

		target := 1.0

		levelDB := core.LinearToDB(detector)
		if levelDB >= g.thresholdDB {
			hold = g.holdSamples
		} else if hold > 0 {
			hold--
		} else if g.ratio > 1 {
			reductionDB := (levelDB - g.thresholdDB) * (g.ratio - 1)

			// The comparison form also floors the -Inf detector level
			// a silent input produces.
			if !(reductionDB > g.rangeDB) {
				reductionDB = g.rangeDB
			}

			target = core.DBToLinear(reductionDB)
		}

		if target > gain {
			gain += (target - gain) * g.attackCoeff
		} else {
			gain = target + (gain-target)*g.releaseCoeff
		}

		buf.Left[i] *= gain
		buf.Right[i] *= gain
	}

	return nil
}
