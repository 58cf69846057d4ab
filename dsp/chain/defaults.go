package chain

import (
	"github.com/cwbudde/algo-synth/dsp/effects"
)

// DefaultRegistry returns a Registry pre-populated with all built-in
// effect processors.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister("limiter", func(ctx Context, p Params) (Processor, error) {
		return effects.NewLimiter(ctx.SampleRate, effects.LimiterParams{
			ThresholdDB: p.GetNum("threshold_db", -0.3),
			ReleaseMs:   p.GetNum("release_ms", 100),
			LookaheadMs: p.GetNum("lookahead_ms", 3),
		})
	})

	r.MustRegister("true_peak", func(ctx Context, p Params) (Processor, error) {
		return effects.NewTruePeakLimiter(ctx.SampleRate, effects.TruePeakParams{
			CeilingDB: p.GetNum("ceiling_db", -1),
			ReleaseMs: p.GetNum("release_ms", 100),
		})
	})

	r.MustRegister("gate", func(ctx Context, p Params) (Processor, error) {
		return effects.NewGate(ctx.SampleRate, effects.GateParams{
			ThresholdDB: p.GetNum("threshold_db", -40),
			Ratio:       p.GetNum("ratio", 4),
			AttackMs:    p.GetNum("attack_ms", 1),
			HoldMs:      p.GetNum("hold_ms", 50),
			ReleaseMs:   p.GetNum("release_ms", 200),
			RangeDB:     p.GetNum("range_db", -60),
		})
	})

	r.MustRegister("flanger", func(ctx Context, p Params) (Processor, error) {
		return effects.NewFlanger(ctx.SampleRate, effects.FlangerParams{
			RateHz:   p.GetNum("rate", 0.5),
			Depth:    p.GetNum("depth", 0.7),
			Feedback: p.GetNum("feedback", 0.5),
			DelayMs:  p.GetNum("delay_ms", 5),
			Wet:      p.GetNum("wet", 0.5),
		})
	})

	r.MustRegister("multi_tap", func(ctx Context, p Params) (Processor, error) {
		return effects.NewMultiTap(ctx.SampleRate, effects.MultiTapParams{
			Taps: p.Taps,
		})
	})

	r.MustRegister("granular_delay", func(ctx Context, p Params) (Processor, error) {
		return effects.NewGranularDelay(ctx.SampleRate, effects.GranularDelayParams{
			DelayMs:      p.GetNum("delay_ms", 250),
			GrainSeconds: p.GetNum("grain_seconds", 0.08),
			PitchRatio:   p.GetNum("pitch_ratio", 1),
			Jitter:       p.GetNum("jitter", 0.2),
			Feedback:     p.GetNum("feedback", 0.3),
			Wet:          p.GetNum("wet", 0.5),
		}, ctx.Rand)
	})

	return r
}
