package ft8

import "fmt"

// Component H: pipeline façade.
//
// Encoder owns its heavyweight, load-once dependency (the LDPC matrix
// pair) and exposes a small number of high-level methods.

// Encoder runs the full message -> waveform-trajectory pipeline: classify,
// pack, CRC, LDPC, Gray-map, GFSK-synthesize.
type Encoder struct {
	ldpc *LDPC
}

// New loads the LDPC matrices and returns a ready-to-use Encoder.
func New() (*Encoder, error) {
	ldpc, err := NewLDPC()
	if err != nil {
		return nil, err
	}
	return &Encoder{ldpc: ldpc}, nil
}

// ProcessedMessage is the fully classified and packed intermediate form of
// an input string, exposed so callers (and tests) can inspect each pipeline
// stage without re-running it.
type ProcessedMessage struct {
	Message  Message
	Payload  Bits // 77 bits: the packed fields plus i3
	WithCRC  Bits // 91 bits: Payload plus the 14-bit CRC
	Codeword Bits // 174 bits: WithCRC plus 83 LDPC parity bits
	Symbols  []uint8
}

// MessageType returns the input's classified subtype without running the
// rest of the pipeline.
func (e *Encoder) MessageType(text string) (Subtype, error) {
	m, err := NewMessage(text)
	if err != nil {
		return SubtypeUnknown, err
	}
	return m.Subtype(), nil
}

// Process runs every pipeline stage up to symbol assembly and returns the
// intermediate results, without synthesizing a waveform trajectory.
func (e *Encoder) Process(text string) (ProcessedMessage, error) {
	m, err := NewMessage(text)
	if err != nil {
		return ProcessedMessage{}, err
	}

	payload, err := Pack(m)
	if err != nil {
		return ProcessedMessage{}, err
	}

	withCRC := AppendCRC(payload)

	codeword, err := e.ldpc.ApplyLDPC(withCRC)
	if err != nil {
		return ProcessedMessage{}, err
	}

	symbols, err := BitsToFSK8(codeword)
	if err != nil {
		return ProcessedMessage{}, err
	}

	return ProcessedMessage{
		Message:  m,
		Payload:  payload,
		WithCRC:  withCRC,
		Codeword: codeword,
		Symbols:  symbols,
	}, nil
}

// Encode runs the complete pipeline and returns the 79-symbol
// transmission's frequency trajectory, sampled at SampleRate.
func (e *Encoder) Encode(text string) ([]float32, error) {
	processed, err := e.Process(text)
	if err != nil {
		return nil, fmt.Errorf("ft8: encode %q: %w", text, err)
	}
	return Synthesize(processed.Symbols), nil
}

// EncodeStandard is a package-level convenience wrapper around New and
// Process that returns only the 77-bit packed payload, for callers that
// don't need to reuse an Encoder across calls.
func EncodeStandard(text string) (Bits, error) {
	e, err := New()
	if err != nil {
		return nil, err
	}
	processed, err := e.Process(text)
	if err != nil {
		return nil, err
	}
	return processed.Payload, nil
}

// EncodeFT8Complete is a package-level convenience wrapper that runs the
// full pipeline through waveform synthesis.
func EncodeFT8Complete(text string) ([]float32, error) {
	e, err := New()
	if err != nil {
		return nil, err
	}
	return e.Encode(text)
}
