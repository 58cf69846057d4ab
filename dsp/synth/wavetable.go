package synth

import (
	"math"

	algofft "github.com/cwbudde/algo-fft"

	"github.com/cwbudde/algo-synth/dsp/interp"
)

const wavetableSize = 2048

// renderWavetable builds a bandlimited table from the harmonic spectrum via
// an inverse FFT and reads it with Hermite interpolation. When a morph target
// is set the two spectra are blended before table construction, so the morph
// is spectral rather than a crossfade of waveforms.
//
// Harmonics at or above Nyquist are dropped from the table.
func renderWavetable(p WavetableParams, n int, sampleRate float64) ([]float64, error) {
	plan, err := algofft.NewPlan64(wavetableSize)
	if err != nil {
		return nil, err
	}

	nyquist := sampleRate / 2
	maxHarmonic := int(nyquist / p.Frequency)

	if float64(maxHarmonic)*p.Frequency >= nyquist {
		maxHarmonic--
	}

	if maxHarmonic > wavetableSize/2-1 {
		maxHarmonic = wavetableSize/2 - 1
	}

	spectrum := make([]complex128, wavetableSize)

	count := len(p.Harmonics)
	if len(p.MorphTo) > count {
		count = len(p.MorphTo)
	}

	for h := 1; h <= count && h <= maxHarmonic; h++ {
		amp := blendHarmonic(p, h-1)
		if amp == 0 {
			continue
		}

		// Conjugate-symmetric bins with -i phase yield pure sine partials
		// after the normalized inverse transform.
		bin := complex(0, -amp*wavetableSize/2)
		spectrum[h] = bin
		spectrum[wavetableSize-h] = -bin
	}

	timeDomain := make([]complex128, wavetableSize)
	if err := plan.Inverse(timeDomain, spectrum); err != nil {
		return nil, err
	}

	table := make([]float64, wavetableSize)

	peak := 0.0
	for i, c := range timeDomain {
		table[i] = real(c)
		if a := math.Abs(table[i]); a > peak {
			peak = a
		}
	}

	if peak > 0 {
		scale := 1 / peak
		for i := range table {
			table[i] *= scale
		}
	}

	out := make([]float64, n)
	step := p.Frequency / sampleRate * wavetableSize
	pos := 0.0

	for i := range out {
		i0 := int(pos)
		frac := pos - float64(i0)

		im1 := (i0 - 1 + wavetableSize) % wavetableSize
		i1 := (i0 + 1) % wavetableSize
		i2 := (i0 + 2) % wavetableSize

		out[i] = interp.Hermite4(frac, table[im1], table[i0], table[i1], table[i2])

		pos += step
		for pos >= wavetableSize {
			pos -= wavetableSize
		}
	}

	return out, nil
}

// blendHarmonic returns the morph-blended amplitude of harmonic index h.
// Spectra of unequal length treat missing entries as zero.
func blendHarmonic(p WavetableParams, h int) float64 {
	var from, to float64

	if h < len(p.Harmonics) {
		from = p.Harmonics[h]
	}

	if h < len(p.MorphTo) {
		to = p.MorphTo[h]
	}

	if len(p.MorphTo) == 0 {
		return from
	}

	return from + (to-from)*p.Morph
}
