package ft8

import (
	"fmt"
	"strings"
	"unicode"
)

// Message is a normalized, immutable FT8 text message: uppercase ASCII over
// {A-Z, 0-9, space, +, -, /, ., ?}, leading/trailing whitespace trimmed, and
// internal whitespace runs collapsed to a single space.
type Message struct {
	text    string
	subtype Subtype
}

// NewMessage normalizes raw text and classifies it.
func NewMessage(raw string) (Message, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Message{}, ErrEmptyMessage
	}

	normalized, err := normalize(trimmed)
	if err != nil {
		return Message{}, err
	}

	return Message{
		text:    normalized,
		subtype: Classify(normalized),
	}, nil
}

// String returns the normalized message text.
func (m Message) String() string {
	return m.text
}

// Subtype returns the message's classified subtype.
func (m Message) Subtype() Subtype {
	return m.subtype
}

// Tokens splits the normalized message on whitespace.
func (m Message) Tokens() []string {
	return strings.Fields(m.text)
}

func normalize(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))

	lastWasSpace := false
	for _, r := range s {
		c := r
		if unicode.IsLower(c) {
			c = unicode.ToUpper(c)
		}
		if !isAllowedChar(c) {
			return "", fmt.Errorf("%w: %q", ErrInvalidCharacter, c)
		}
		if c == ' ' && lastWasSpace {
			continue
		}
		b.WriteRune(c)
		lastWasSpace = c == ' '
	}

	return strings.TrimSpace(b.String()), nil
}

func isAllowedChar(c rune) bool {
	switch {
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == ' ' || c == '+' || c == '-' || c == '/' || c == '.' || c == '?':
		return true
	default:
		return false
	}
}
