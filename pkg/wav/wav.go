// Package wav turns an FT8 frequency trajectory into a 16-bit PCM WAV file:
// integrate the trajectory into a phase, run it through a sine oscillator,
// and wrap the resulting samples in a RIFF/WAVE container.
package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

const (
	bitsPerSample = 16
	numChannels   = 1
	fullScale     = 32760.0
)

// Synthesize converts a frequency trajectory (Hz offsets from baseFreqHz, as
// produced by ft8.Synthesize) into 16-bit PCM samples at sampleRate. The
// instantaneous frequency at each sample is integrated into a running phase
// so the audio carries no discontinuities across symbol boundaries.
func Synthesize(trajectory []float32, baseFreqHz float64, sampleRate int) []int16 {
	samples := make([]int16, len(trajectory))
	phase := 0.0
	dt := 1.0 / float64(sampleRate)

	for i, offset := range trajectory {
		freq := baseFreqHz + float64(offset)
		phase += 2 * math.Pi * freq * dt
		if phase > 2*math.Pi {
			phase -= 2 * math.Pi * math.Floor(phase/(2*math.Pi))
		}
		samples[i] = int16(fullScale * math.Sin(phase))
	}

	return samples
}

// Write encodes samples as a mono 16-bit PCM WAV file to w.
func Write(w io.Writer, samples []int16, sampleRate int) error {
	dataSize := uint32(len(samples) * 2)
	fileSize := 36 + dataSize
	byteRate := uint32(sampleRate * numChannels * bitsPerSample / 8)
	blockAlign := uint16(numChannels * bitsPerSample / 8)

	var buf bytes.Buffer
	buf.Grow(int(fileSize) + 8)

	buf.WriteString("RIFF")
	if err := binary.Write(&buf, binary.LittleEndian, fileSize); err != nil {
		return fmt.Errorf("wav: write file size: %w", err)
	}
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	_ = binary.Write(&buf, binary.LittleEndian, uint16(numChannels))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(&buf, binary.LittleEndian, byteRate)
	_ = binary.Write(&buf, binary.LittleEndian, blockAlign)
	_ = binary.Write(&buf, binary.LittleEndian, uint16(bitsPerSample))

	buf.WriteString("data")
	if err := binary.Write(&buf, binary.LittleEndian, dataSize); err != nil {
		return fmt.Errorf("wav: write data size: %w", err)
	}
	if err := binary.Write(&buf, binary.LittleEndian, samples); err != nil {
		return fmt.Errorf("wav: write samples: %w", err)
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// Encode is a convenience wrapper combining Synthesize and Write.
func Encode(w io.Writer, trajectory []float32, baseFreqHz float64, sampleRate int) error {
	return Write(w, Synthesize(trajectory, baseFreqHz, sampleRate), sampleRate)
}
