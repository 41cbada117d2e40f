package ft8

// Component F: Gray mapping and Costas-synchronized frame assembly.
//
// The Costas array marks known symbol positions a receiver locks onto
// before demodulating the payload.

// grayMap converts a raw 3-bit codeword group into its Gray-coded tone
// index, so adjacent tone frequencies differ from their neighbors by a
// single bit flip.
var grayMap = [8]uint8{0, 1, 3, 2, 7, 6, 4, 5}

// costas7 is the 7-symbol Costas synchronization array repeated at the
// start, middle, and end of every FT8 transmission.
var costas7 = [7]uint8{3, 1, 4, 0, 6, 5, 2}

const (
	// symbolsPerBlock is the number of payload tone symbols encoded between
	// each Costas sync array (58 data symbols split into two 29-symbol runs).
	symbolsPerBlock = 29
	// TotalSymbols is the full 79-symbol FT8 transmission: 3 Costas arrays
	// of 7 symbols each plus 58 payload symbols.
	TotalSymbols = 3*7 + 2*symbolsPerBlock
)

// BitsToFSK8 packs a 174-bit LDPC codeword into 58 3-bit Gray-coded tone
// indices and interleaves them with the three 7-symbol Costas arrays to
// produce the full 79-symbol transmission: sync, 29 data, sync, 29 data,
// sync.
func BitsToFSK8(codeword Bits) ([]uint8, error) {
	if len(codeword) != ldpcCodewordLen {
		return nil, ErrInvalidGeneratorMatrix
	}

	symbols := make([]uint8, 0, TotalSymbols)
	symbols = append(symbols, costas7[:]...)

	for block := 0; block < 2; block++ {
		for i := 0; i < symbolsPerBlock; i++ {
			offset := (block*symbolsPerBlock + i) * 3
			raw := uint8(codeword.Uint(offset, 3))
			symbols = append(symbols, grayMap[raw])
		}
		symbols = append(symbols, costas7[:]...)
	}

	return symbols, nil
}
