package ft8

import (
	"fmt"
	"math/big"
	"strings"
)

// Component A: alphabets and field codecs for callsigns, grids, and free text.

// Alphabets indexed by position in the 6-character standard callsign slot.
const (
	alphaA1 = " 0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ" // 37: space, digits, letters
	alphaA2 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"  // 36: digits, letters
	alphaA3 = "0123456789"                            // 10: digits
	alphaA4 = " ABCDEFGHIJKLMNOPQRSTUVWXYZ"            // 27: space, letters

	alphaNonstd   = " 0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ/" // 38
	alphaFreeText = " 0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ+-./?"
)

// NTokens and Max22 are the base offsets std_call_to_28 adds on top of the
// alphabet-indexed value, reserving the low end of the 28-bit space for the
// special CQ/DE/QRZ tokens handled in encode28.
const (
	NTokens = 2063592
	Max22   = 4194304
)

// StdCallTo28 encodes a callsign token into its 28-bit representation.
// The token is aligned into a 6-character slot (A1,A2,A3,A4,A4,A4) before
// each character is looked up in its positional alphabet; A3 only holds
// digits, so a call whose digit falls in the second character (a
// single-letter prefix, e.g. "K1ABC" or "W9XYZ") is shifted right by one
// space first so the digit lands in the third slot.
func StdCallTo28(call string) (uint32, error) {
	padded := padRight(callSlot(call), 6)

	i1, err := indexIn(alphaA1, padded[0])
	if err != nil {
		return 0, fmt.Errorf("%w: position 1 %q", ErrInvalidCallsignChar, padded[0])
	}
	i2, err := indexIn(alphaA2, padded[1])
	if err != nil {
		return 0, fmt.Errorf("%w: position 2 %q", ErrInvalidCallsignChar, padded[1])
	}
	i3, err := indexIn(alphaA3, padded[2])
	if err != nil {
		return 0, fmt.Errorf("%w: position 3 %q", ErrInvalidCallsignChar, padded[2])
	}
	i4, err := indexIn(alphaA4, padded[3])
	if err != nil {
		return 0, fmt.Errorf("%w: position 4 %q", ErrInvalidCallsignChar, padded[3])
	}
	i5, err := indexIn(alphaA4, padded[4])
	if err != nil {
		return 0, fmt.Errorf("%w: position 5 %q", ErrInvalidCallsignChar, padded[4])
	}
	i6, err := indexIn(alphaA4, padded[5])
	if err != nil {
		return 0, fmt.Errorf("%w: position 6 %q", ErrInvalidCallsignChar, padded[5])
	}

	n := NTokens + Max22 +
		36*10*27*27*27*uint32(i1) +
		10*27*27*27*uint32(i2) +
		27*27*27*uint32(i3) +
		27*27*uint32(i4) +
		27*uint32(i5) +
		uint32(i6)

	return n, nil
}

// NonstdCallTo58 encodes an 11-character non-standard callsign token (e.g.
// compound calls) into a 58-bit integer, base-38 over alphaNonstd. Not wired
// into the Standard-subtype pipeline, which only carries c28 fields; exposed
// as a diagnostic field codec for non-standard callsign inspection.
func NonstdCallTo58(call string) (uint64, error) {
	padded := padRight(call, 11)

	var n uint64
	for i := 0; i < len(padded); i++ {
		idx, err := indexIn(alphaNonstd, padded[i])
		if err != nil {
			return 0, fmt.Errorf("%w: position %d %q", ErrInvalidCallsignChar, i+1, padded[i])
		}
		n = n*uint64(len(alphaNonstd)) + uint64(idx)
	}
	return n, nil
}

// FreeTextToF71 encodes up to 13 characters of free text into a 71-bit
// value, base-42 over alphaFreeText, and returns the bits least-significant
// bit first, unlike every other field codec in this package, which packs
// most-significant bit first.
func FreeTextToF71(text string) (Bits, error) {
	padded := padRight(text, 13)

	value := new(big.Int)
	base := big.NewInt(int64(len(alphaFreeText)))
	for i := 0; i < len(padded); i++ {
		idx, err := indexIn(alphaFreeText, padded[i])
		if err != nil {
			return nil, fmt.Errorf("%w: position %d %q", ErrInvalidCallsignChar, i+1, padded[i])
		}
		value.Mul(value, base)
		value.Add(value, big.NewInt(int64(idx)))
	}

	bits := make(Bits, 71)
	for i := 0; i < 71; i++ {
		bits[i] = value.Bit(i) == 1
	}
	return bits, nil
}

// Grid4To15 encodes a 4-character Maidenhead grid locator (two letters, two
// digits) into its 15-bit value.
func Grid4To15(token string) (uint32, error) {
	if len(token) != 4 {
		return 0, fmt.Errorf("%w: grid %q must be 4 characters", ErrInvalidGridChar, token)
	}
	l1, l2 := token[0], token[1]
	d1, d2 := token[2], token[3]
	if l1 < 'A' || l1 > 'R' || l2 < 'A' || l2 > 'R' {
		return 0, fmt.Errorf("%w: grid %q letters out of range", ErrInvalidGridChar, token)
	}
	if d1 < '0' || d1 > '9' || d2 < '0' || d2 > '9' {
		return 0, fmt.Errorf("%w: grid %q digits out of range", ErrInvalidGridChar, token)
	}

	n := uint32(l1-'A')*18*100 + uint32(l2-'A')*100 + uint32(d1-'0')*10 + uint32(d2-'0')
	return n, nil
}

// Grid6To25 encodes a 6-character extended Maidenhead grid locator (two
// letters, two digits, two lowercase letters) into its 25-bit value. This
// field is used only by the EuVhfExt subtype, which is classified but not
// packed, since Standard is the only subtype Pack supports; exposed as a
// diagnostic field codec.
func Grid6To25(token string) (uint32, error) {
	if len(token) != 6 {
		return 0, fmt.Errorf("%w: grid %q must be 6 characters", ErrInvalidGridChar, token)
	}
	l1, l2 := token[0], token[1]
	d1, d2 := token[2], token[3]
	sl1, sl2 := token[4], token[5]
	if l1 < 'A' || l1 > 'R' || l2 < 'A' || l2 > 'R' {
		return 0, fmt.Errorf("%w: grid %q letters out of range", ErrInvalidGridChar, token)
	}
	if d1 < '0' || d1 > '9' || d2 < '0' || d2 > '9' {
		return 0, fmt.Errorf("%w: grid %q digits out of range", ErrInvalidGridChar, token)
	}
	if sl1 < 'a' || sl1 > 'x' || sl2 < 'a' || sl2 > 'x' {
		return 0, fmt.Errorf("%w: grid %q sub-square out of range", ErrInvalidGridChar, token)
	}

	n := uint32(l1-'A')*18*100*576 +
		uint32(l2-'A')*100*576 +
		uint32(d1-'0')*10*576 +
		uint32(d2-'0')*576 +
		uint32(sl1-'a')*24 +
		uint32(sl2-'a')
	return n, nil
}

// EncodeSigReport encodes a numeric signal report in [-30,+30] dB, even
// values only, into a 6-bit value: (db+30)/2.
func EncodeSigReport(db int) uint8 {
	return uint8((db + 30) / 2)
}

// EncodeFDClass maps a field-day class suffix letter ('A'..'F') to its 3-bit
// value.
func EncodeFDClass(class byte) uint8 {
	if class >= 'A' && class <= 'F' {
		return class - 'A'
	}
	return 0
}

// callSlot inserts a leading space when the call's second character is a
// digit, since the packed layout requires the digit in the third slot.
func callSlot(call string) string {
	if len(call) >= 2 && call[1] >= '0' && call[1] <= '9' {
		return " " + call
	}
	return call
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s[:n]
	}
	return s + strings.Repeat(" ", n-len(s))
}

func indexIn(alphabet string, c byte) (int, error) {
	idx := strings.IndexByte(alphabet, c)
	if idx < 0 {
		return 0, fmt.Errorf("character %q not in alphabet", c)
	}
	return idx, nil
}
