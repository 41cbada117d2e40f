package ft8

import (
	"bufio"
	"embed"
	"fmt"
	"strconv"
	"strings"
)

// Component E: LDPC(174,91) forward error correction.
//
// The systematic generator matrix G (83x91) and the parity-check matrix H
// (83x174, column-oriented) are shipped as embedded data files rather than
// inlined as magic constants, and parsed into an LDPC value by NewLDPC.

//go:embed data/generator.dat data/parity.dat
var ldpcData embed.FS

const (
	ldpcMessageBits = 91
	ldpcParityBits  = 83
	ldpcCodewordLen = 174
)

// generatorMatrix is G: row j gives the systematic-bit coefficients for
// parity bit p_j, so p_j = XOR over i of G[j][i]*m[i].
type generatorMatrix [ldpcParityBits][ldpcMessageBits]bool

// parityCheckMatrix is H, stored row-major after being read column-oriented,
// used only to self-check that Encode's output satisfies H*codeword^T = 0.
type parityCheckMatrix [ldpcParityBits][ldpcCodewordLen]bool

func loadGenerator() (*generatorMatrix, error) {
	f, err := ldpcData.Open("data/generator.dat")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileOpenFailed, err)
	}
	defer f.Close()

	var g generatorMatrix
	row := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if len(line) != ldpcMessageBits {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidGeneratorMatrix, row, len(line), ldpcMessageBits)
		}
		for col := 0; col < ldpcMessageBits; col++ {
			switch line[col] {
			case '0':
				g[row][col] = false
			case '1':
				g[row][col] = true
			default:
				return nil, fmt.Errorf("%w: row %d col %d: %q not a bit", ErrInvalidGeneratorMatrix, row, col, line[col])
			}
		}
		row++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGeneratorMatrix, err)
	}
	if row != ldpcParityBits {
		return nil, fmt.Errorf("%w: %d rows, want %d", ErrInvalidGeneratorMatrix, row, ldpcParityBits)
	}
	return &g, nil
}

// loadParity reads parity.dat's column-oriented format: one line per
// codeword column, each holding up to three 1-indexed row numbers with a 1
// in that column (0 pads columns of weight under three).
func loadParity() (*parityCheckMatrix, error) {
	f, err := ldpcData.Open("data/parity.dat")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileOpenFailed, err)
	}
	defer f.Close()

	var h parityCheckMatrix
	col := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: column %d has %d entries, want 3", ErrInvalidParityMatrix, col, len(fields))
		}
		for _, f := range fields {
			r, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("%w: column %d: %v", ErrInvalidParityMatrix, col, err)
			}
			if r == 0 {
				continue
			}
			if r < 1 || r > ldpcParityBits {
				return nil, fmt.Errorf("%w: column %d row %d out of range", ErrInvalidParityMatrix, col, r)
			}
			h[r-1][col] = true
		}
		col++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParityMatrix, err)
	}
	if col != ldpcCodewordLen {
		return nil, fmt.Errorf("%w: %d columns, want %d", ErrInvalidParityMatrix, col, ldpcCodewordLen)
	}
	return &h, nil
}

// LDPC holds the loaded generator and parity-check matrices so callers that
// keep one pay the file-parse cost once; every NewLDPC call parses the files
// again.
type LDPC struct {
	g *generatorMatrix
	h *parityCheckMatrix
}

// NewLDPC loads the generator and parity-check matrices bundled with the
// package.
func NewLDPC() (*LDPC, error) {
	g, err := loadGenerator()
	if err != nil {
		return nil, err
	}
	h, err := loadParity()
	if err != nil {
		return nil, err
	}
	return &LDPC{g: g, h: h}, nil
}

// ApplyLDPC takes a 91-bit message (77 payload bits + 14 CRC bits) and
// returns the 174-bit systematic codeword [message | parity], where
// parity[j] = XOR over i of G[j][i]*message[i].
func (l *LDPC) ApplyLDPC(message Bits) (Bits, error) {
	if len(message) != ldpcMessageBits {
		return nil, fmt.Errorf("%w: message has %d bits, want %d", ErrInvalidGeneratorMatrix, len(message), ldpcMessageBits)
	}

	codeword := make(Bits, 0, ldpcCodewordLen)
	codeword = append(codeword, message...)

	for j := 0; j < ldpcParityBits; j++ {
		var parity bool
		for i := 0; i < ldpcMessageBits; i++ {
			if l.g[j][i] && message[i] {
				parity = !parity
			}
		}
		codeword = append(codeword, parity)
	}

	return codeword, nil
}

// Validate reports whether H*codeword^T == 0, the LDPC systematic-code
// invariant every codeword ApplyLDPC produces must satisfy.
func (l *LDPC) Validate(codeword Bits) bool {
	if len(codeword) != ldpcCodewordLen {
		return false
	}
	for row := 0; row < ldpcParityBits; row++ {
		var sum bool
		for col := 0; col < ldpcCodewordLen; col++ {
			if l.h[row][col] && codeword[col] {
				sum = !sum
			}
		}
		if sum {
			return false
		}
	}
	return true
}
