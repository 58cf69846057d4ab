package effects

import (
	"math"
	"strconv"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/delay"
	"github.com/cwbudde/algo-synth/dsp/filter"
)

// Tap is one voice of a multi-tap delay.
type Tap struct {
	DelayMs  float64
	Level    float64
	Pan      float64 // 0 full left, 1 full right
	CutoffHz float64 // tap lowpass; <= 0 or >= Nyquist bypasses
}

// MultiTapParams configures a multi-tap delay.
type MultiTapParams struct {
	Taps []Tap
}

// Validate checks every tap against its documented ranges.
func (p MultiTapParams) Validate() error {
	if len(p.Taps) == 0 || len(p.Taps) > 16 {
		return &core.InvalidParameterError{
			Param: "multi_tap.taps", Value: float64(len(p.Taps)),
			Reason: "must have 1 to 16 taps",
		}
	}

	for i, tap := range p.Taps {
		prefix := tapParam(i)

		if err := core.CheckRange(prefix+".delay_ms", tap.DelayMs, 1, 2000); err != nil {
			return err
		}

		if err := core.CheckRange(prefix+".level", tap.Level, 0, 1); err != nil {
			return err
		}

		if err := core.CheckRange(prefix+".pan", tap.Pan, 0, 1); err != nil {
			return err
		}

		if !core.IsFinite(tap.CutoffHz) {
			return &core.InvalidParameterError{
				Param: prefix + ".cutoff_hz", Value: tap.CutoffHz,
				Reason: "must be finite",
			}
		}
	}

	return nil
}

type tapVoice struct {
	line      *delay.Line
	lowpass   *filter.OnePole
	delay     int
	gainLeft  float64
	gainRight float64
}

// MultiTap sums filtered, panned echoes onto the dry signal. Taps are
// processed in declaration order every sample, so two configurations with
// the same taps in the same order produce identical output.
type MultiTap struct {
	voices []tapVoice
}

// NewMultiTap creates a multi-tap delay for the given sample rate.
func NewMultiTap(sampleRate float64, p MultiTapParams) (*MultiTap, error) {
	if err := core.CheckPositive("multi_tap.sample_rate", sampleRate); err != nil {
		return nil, err
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	voices := make([]tapVoice, 0, len(p.Taps))

	for _, tap := range p.Taps {
		samples := int(math.Round(tap.DelayMs * 0.001 * sampleRate))
		if samples < 1 {
			samples = 1
		}

		line, err := delay.New(samples + 2)
		if err != nil {
			return nil, err
		}

		// Constant-power pan keeps perceived tap loudness flat across
		// the stereo field.
		angle := tap.Pan * math.Pi / 2

		voices = append(voices, tapVoice{
			line:      line,
			lowpass:   filter.NewOnePoleLowpass(tap.CutoffHz, sampleRate),
			delay:     samples,
			gainLeft:  tap.Level * math.Cos(angle),
			gainRight: tap.Level * math.Sin(angle),
		})
	}

	return &MultiTap{voices: voices}, nil
}

// Process sums all tap outputs onto both channels in place.
func (m *MultiTap) Process(buf *core.StereoBuffer) error {
	if err := buf.Validate(); err != nil {
		return err
	}

	n := buf.Len()
	if n == 0 {
		return nil
	}

	for i := range n {
		mono := (buf.Left[i] + buf.Right[i]) * 0.5

		for v := range m.voices {
			voice := &m.voices[v]

			echo := voice.lowpass.Process(voice.line.Read(voice.delay))
			voice.line.Write(mono)

			buf.Left[i] += echo * voice.gainLeft
			buf.Right[i] += echo * voice.gainRight
		}
	}

	return nil
}

// Reset clears all delay lines and tap filters.
func (m *MultiTap) Reset() {
	for v := range m.voices {
		m.voices[v].line.Reset()
		m.voices[v].lowpass.Reset()
	}
}

func tapParam(i int) string {
	return "multi_tap.taps/" + strconv.Itoa(i)
}
