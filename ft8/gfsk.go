package ft8

import "math"

// Component G: Gaussian-filtered frequency-shift-keying waveform synthesis.
//
// Encode's output is a frequency trajectory, not audio: one instantaneous
// tone-frequency-offset sample per timestep. Turning that into a playable
// waveform (phase integration, amplitude envelope, PCM quantization) is a
// downstream concern; pkg/wav is one such consumer.

const (
	// SampleRate is the trajectory's sampling rate in Hz.
	SampleRate = 48000
	// BaudHz is the FT8 symbol rate: one symbol every 160ms.
	BaudHz = 6.25
	// ToneSpacingHz is the frequency separation between adjacent tones.
	ToneSpacingHz = 6.25
	// gaussianBT is the Gaussian filter's bandwidth-time product; larger
	// values sharpen tone transitions at the cost of spectral occupancy.
	gaussianBT = 2.0
	// pulseSymbolSpan is the width of the Gaussian smoothing pulse, in
	// symbol periods.
	pulseSymbolSpan = 3
	// edgeSymbols is the number of repeated symbols prepended and appended
	// to the symbol sequence before pulse shaping, so the pulse's overlap
	// at the transmission's edges is well-defined.
	edgeSymbols = 1
	// skipSymbols is the number of leading scratch-buffer symbol periods
	// discarded after overlap-add, so the emitted trajectory starts at the
	// first real (non-repeated) symbol.
	skipSymbols = 2
)

var (
	symbolPeriod  = 1.0 / BaudHz
	samplesPerSym = int(math.Round(SampleRate * symbolPeriod))
)

// TrajectoryLength returns the number of samples Synthesize produces for a
// transmission of n symbols: exactly n full symbol periods.
func TrajectoryLength(n int) int {
	return samplesPerSym * n
}

// gaussianPulse evaluates the normalized Gaussian frequency pulse at dt
// symbol-periods from its center: the erf-smoothed edges of what would
// otherwise be a rectangular one-symbol-wide pulse of unit area.
func gaussianPulse(dt, bt float64) float64 {
	c := math.Sqrt(2/math.Log(2)) * bt
	return 0.5 * (math.Erf(c*(dt+0.5)) - math.Erf(c*(dt-0.5)))
}

// Synthesize converts a symbol sequence (tone indices 0-7, as produced by
// BitsToFSK8) into a frequency trajectory: one sample per timestep at
// SampleRate, holding the instantaneous tone-frequency offset in Hz above
// the transmission's base frequency, smoothed by a Gaussian pulse so tone
// transitions are band-limited rather than instantaneous.
//
// Following the pulse-shaping procedure: the symbol sequence is padded with
// a copy of its first and last element, each padded symbol's tone is added
// into a zeroed scratch buffer via overlap-add with the Gaussian pulse, and
// the leading skipSymbols*samplesPerSym samples of the result are discarded
// to land on the first real symbol.
func Synthesize(symbols []uint8) []float32 {
	n := len(symbols)
	if n == 0 {
		return []float32{}
	}

	padded := make([]uint8, n+2*edgeSymbols)
	for i := 0; i < edgeSymbols; i++ {
		padded[i] = symbols[0]
		padded[len(padded)-1-i] = symbols[n-1]
	}
	copy(padded[edgeSymbols:edgeSymbols+n], symbols)

	pulseLen := pulseSymbolSpan * samplesPerSym
	pulse := make([]float64, pulseLen)
	for i := 0; i < pulseLen; i++ {
		t := float64(i)/float64(samplesPerSym) - float64(pulseSymbolSpan)/2
		pulse[i] = gaussianPulse(t, gaussianBT)
	}

	scratch := make([]float64, (len(padded)+pulseSymbolSpan-1)*samplesPerSym)
	for m, sym := range padded {
		toneOffset := float64(sym) * ToneSpacingHz
		base := m * samplesPerSym
		for i := 0; i < pulseLen; i++ {
			scratch[base+i] += toneOffset * pulse[i]
		}
	}

	skip := skipSymbols * samplesPerSym
	out := make([]float32, TrajectoryLength(n))
	for i := range out {
		out[i] = float32(scratch[skip+i])
	}
	return out
}
