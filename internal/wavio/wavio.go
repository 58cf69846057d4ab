// Package wavio writes stereo buffers as 16-bit PCM WAV files.
package wavio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
)

const (
	numChannels   = 2
	bitsPerSample = 16
)

// Write encodes the buffer as a RIFF/WAVE stream. Samples are clipped to
// [-1, 1] before quantization.
func Write(w io.Writer, buf *core.StereoBuffer, sampleRate int) error {
	if err := buf.Validate(); err != nil {
		return err
	}

	if sampleRate <= 0 {
		return fmt.Errorf("wavio: sample rate must be > 0: %d", sampleRate)
	}

	n := buf.Len()
	dataSize := n * numChannels * bitsPerSample / 8
	byteRate := sampleRate * numChannels * bitsPerSample / 8
	blockAlign := numChannels * bitsPerSample / 8

	var header [44]byte

	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+dataSize))
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(header[22:24], numChannels)
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(dataSize))

	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("wavio: %w", err)
	}

	frame := make([]byte, blockAlign)

	for i := range n {
		binary.LittleEndian.PutUint16(frame[0:2], uint16(quantize(buf.Left[i])))
		binary.LittleEndian.PutUint16(frame[2:4], uint16(quantize(buf.Right[i])))

		if _, err := w.Write(frame); err != nil {
			return fmt.Errorf("wavio: %w", err)
		}
	}

	return nil
}

func quantize(v float64) int16 {
	v = core.Clamp(v, -1, 1)

	scaled := math.Round(v * 32767)

	return int16(scaled)
}
