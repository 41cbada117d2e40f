package ft8

import (
	"fmt"
	"strconv"
)

// Component C: payload packer.
//
// Field encoders match tokens against an immutable tokenized view of the
// message and mark them consumed, rather than mutating the message text, so
// no field codec can accidentally re-match a token another field claimed.

// workingMessage is the immutable tokenized view field codecs consume from.
// Each entry tracks whether an earlier field already claimed that token, so
// no token can satisfy two fields.
type workingMessage struct {
	tokens   []string
	consumed []bool
}

func newWorkingMessage(m Message) *workingMessage {
	tokens := m.Tokens()
	return &workingMessage{
		tokens:   tokens,
		consumed: make([]bool, len(tokens)),
	}
}

// bareCallsign strips a trailing "/R" or "/P" rover/portable suffix from a
// token, reporting whether each was present, so the stripped form can be
// matched against the plain callsign grammar.
func bareCallsign(token string) (bare string, hasR, hasP bool) {
	if len(token) > 2 && token[len(token)-2:] == "/R" {
		return token[:len(token)-2], true, false
	}
	if len(token) > 2 && token[len(token)-2:] == "/P" {
		return token[:len(token)-2], false, true
	}
	return token, false, false
}

// encode28Result carries a c28 field's value plus whether the matched
// callsign token carried a rover ("/R") suffix, which the caller uses for
// the r1 flag bit when this is the second callsign field.
type encode28Result struct {
	value uint32
	hasR  bool
}

// encode28 implements the c28 codec shared by both callsign fields: DE,
// QRZ, and the CQ special forms are tried first (against the *sequence* of
// still-unconsumed tokens, since "CQ 123" or "CQ DL" span two tokens), and
// otherwise the first unconsumed token matching the callsign grammar is
// used.
func encode28(w *workingMessage) (encode28Result, error) {
	for i, tok := range w.tokens {
		if w.consumed[i] {
			continue
		}

		switch tok {
		case "DE":
			w.consumed[i] = true
			return encode28Result{value: 0}, nil
		case "QRZ":
			w.consumed[i] = true
			return encode28Result{value: 1}, nil
		case "CQ":
			if next, j, ok := firstUnconsumedAfter(w, i); ok {
				if v, matched := matchCQSuffix(next); matched {
					w.consumed[i] = true
					w.consumed[j] = true
					return encode28Result{value: v}, nil
				}
			}
			w.consumed[i] = true
			return encode28Result{value: 2}, nil
		}

		if bare, hasR, _ := bareCallsign(tok); IsCallsign(bare) {
			v, err := StdCallTo28(bare)
			if err != nil {
				return encode28Result{}, err
			}
			w.consumed[i] = true
			return encode28Result{value: v, hasR: hasR}, nil
		}
	}

	return encode28Result{}, nil
}

// matchCQSuffix classifies the token immediately following an unconsumed
// "CQ", implementing the CQ NNN / CQ X / CQ XX / CQ XXX / CQ XXXX forms.
func matchCQSuffix(tok string) (uint32, bool) {
	if n, err := strconv.Atoi(tok); err == nil && len(tok) <= 3 && n >= 0 && n <= 999 {
		return 3 + uint32(n), true
	}
	if isAllLetters(tok) {
		switch len(tok) {
		case 1:
			return 1004 + uint32(tok[0]-'A'), true
		case 2:
			return 1031 + base26(tok), true
		case 3:
			return 1760 + base26(tok), true
		case 4:
			return 21443 + base26(tok), true
		}
	}
	return 0, false
}

func isAllLetters(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}

func base26(s string) uint32 {
	var v uint32
	for _, c := range s {
		v = v*26 + uint32(c-'A')
	}
	return v
}

func firstUnconsumedAfter(w *workingMessage, i int) (string, int, bool) {
	for j := i + 1; j < len(w.tokens); j++ {
		if !w.consumed[j] {
			return w.tokens[j], j, true
		}
	}
	return "", 0, false
}

// grid4Field consumes the first unconsumed 4-character grid token.
func grid4Field(w *workingMessage) (uint32, error) {
	for i, tok := range w.tokens {
		if w.consumed[i] {
			continue
		}
		if IsGridSquare(tok) {
			v, err := Grid4To15(tok)
			if err != nil {
				return 0, err
			}
			w.consumed[i] = true
			return v, nil
		}
	}
	return 0, nil
}

// standaloneR reports whether an unconsumed token is exactly "R", consuming
// it if found. Position is not special-cased: the token may appear anywhere
// among the still-unconsumed tokens.
func standaloneR(w *workingMessage) bool {
	for i, tok := range w.tokens {
		if !w.consumed[i] && tok == "R" {
			w.consumed[i] = true
			return true
		}
	}
	return false
}

// Pack assembles the 77-bit Standard-subtype payload: two c28 callsign
// fields each with its own rover ("/R") flag (a "/P" suffix is stripped but
// sets no flag), a standalone-R report-ack
// flag, a 4-character grid, and the i3 type-code trailer. Any subtype other
// than Standard returns ErrUnsupportedSubtype.
func Pack(m Message) (Bits, error) {
	if m.Subtype() != SubtypeStandard {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSubtype, m.Subtype())
	}

	w := newWorkingMessage(m)

	c28a, err := encode28(w)
	if err != nil {
		return nil, err
	}
	c28b, err := encode28(w)
	if err != nil {
		return nil, err
	}
	g15, err := grid4Field(w)
	if err != nil {
		return nil, err
	}
	rStandalone := standaloneR(w)

	bits := make(Bits, 0, 77)
	bits = AppendUint(bits, uint64(c28a.value), 28)
	bits = AppendUint(bits, boolBit(c28a.hasR), 1)
	bits = AppendUint(bits, uint64(c28b.value), 28)
	bits = AppendUint(bits, boolBit(c28b.hasR), 1)
	bits = AppendUint(bits, boolBit(rStandalone), 1)
	bits = AppendUint(bits, uint64(g15), 15)
	bits = AppendUint(bits, uint64(SubtypeStandard.I3()), 3)

	return bits, nil
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
