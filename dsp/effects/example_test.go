package effects_test

import (
	"fmt"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/effects"
)

func ExampleFlanger_Process() {
	flanger, err := effects.NewFlanger(48000, effects.FlangerParams{
		RateHz:   0.5,
		Depth:    0.7,
		Feedback: 0.4,
		DelayMs:  5,
		Wet:      0.5,
	})
	if err != nil {
		fmt.Println("error")
		return
	}

	buf := core.NewStereoBuffer(256)
	buf.Left[0] = 1
	buf.Right[0] = 1

	if err := flanger.Process(buf); err != nil {
		fmt.Println("error")
		return
	}

	fmt.Printf("len=%d\n", buf.Len())
	// Output:
	// len=256
}

func ExampleLimiter_Process() {
	limiter, err := effects.NewLimiter(48000, effects.LimiterParams{
		ThresholdDB: -3,
		ReleaseMs:   100,
		LookaheadMs: 5,
	})
	if err != nil {
		fmt.Println("error")
		return
	}

	buf := core.NewStereoBuffer(4)
	for i := range buf.Left {
		buf.Left[i] = 1.5
		buf.Right[i] = 1.5
	}

	if err := limiter.Process(buf); err != nil {
		fmt.Println("error")
		return
	}

	fmt.Printf("peak=%.3f\n", buf.Peak())
	// Output:
	// peak=0.708
}
