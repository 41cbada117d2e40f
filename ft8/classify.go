package ft8

import "regexp"

// Subtype tags the FT8 message subtypes. Only Standard is packed by this
// module; every other tag is classified but rejected at pack time with
// ErrUnsupportedSubtype.
type Subtype int

const (
	SubtypeUnknown Subtype = iota
	SubtypeFreeText
	SubtypeDxpedition
	SubtypeFieldDay
	SubtypeFieldDayExt
	SubtypeTelemetry
	SubtypeStandard
	SubtypeEuVhf
	SubtypeRttyRoundup
	SubtypeNonstdCall
	SubtypeEuVhfExt
)

// String names a subtype for logging and diagnostics.
func (s Subtype) String() string {
	switch s {
	case SubtypeFreeText:
		return "FreeText"
	case SubtypeDxpedition:
		return "Dxpedition"
	case SubtypeFieldDay:
		return "FieldDay"
	case SubtypeFieldDayExt:
		return "FieldDayExt"
	case SubtypeTelemetry:
		return "Telemetry"
	case SubtypeStandard:
		return "Standard"
	case SubtypeEuVhf:
		return "EuVhf"
	case SubtypeRttyRoundup:
		return "RttyRoundup"
	case SubtypeNonstdCall:
		return "NonstdCall"
	case SubtypeEuVhfExt:
		return "EuVhfExt"
	default:
		return "Unknown"
	}
}

// I3 returns the 3-bit type-code trailer this subtype carries in the 77-bit
// payload. Only Standard's code (1) is ever emitted by Pack; the others are
// recorded here because classification's diagnostic surface must report a
// real i3 value regardless of whether encoding is implemented.
func (s Subtype) I3() uint8 {
	switch s {
	case SubtypeStandard, SubtypeEuVhf:
		return 1
	case SubtypeRttyRoundup:
		return 3
	case SubtypeNonstdCall:
		return 4
	case SubtypeEuVhfExt:
		return 5
	default:
		return 0
	}
}

var (
	callsignRe       = regexp.MustCompile(`^[A-Z][A-Z0-9]?[0-9][A-Z]{1,3}$|^[A-Z0-9][A-Z][0-9][A-Z]{1,3}$`)
	nonstdCallsignRe = regexp.MustCompile(`^[A-Z0-9]{2,4}/[A-Z0-9]{1,2}[A-Z]{1,3}$|^[A-Z0-9]{1,2}[0-9][A-Z]{1,3}/[A-Z0-9]{2,}$`)
	grid4Re          = regexp.MustCompile(`^[A-R]{2}[0-9]{2}$`)
	grid6Re          = regexp.MustCompile(`^[A-R]{2}[0-9]{2}[A-X]{2}$`)
	sigReportRe      = regexp.MustCompile(`^[+-]\d{2}$`)
	fieldDayClassRe  = regexp.MustCompile(`^\d+[A-F]$`)
	contestNumberRe  = regexp.MustCompile(`^[0-9]{3}$`)
)

// IsCallsign reports whether token matches the standard callsign grammar.
func IsCallsign(token string) bool { return callsignRe.MatchString(token) }

// IsNonstdCallsign reports whether token matches the non-standard/compound
// callsign grammar.
func IsNonstdCallsign(token string) bool { return nonstdCallsignRe.MatchString(token) }

// IsGridSquare reports whether token is a 4-character Maidenhead grid.
func IsGridSquare(token string) bool { return grid4Re.MatchString(token) }

// IsGrid6Square reports whether token is a 6-character extended Maidenhead grid.
func IsGrid6Square(token string) bool { return grid6Re.MatchString(token) }

// IsSignalReport reports whether token is a +/-NN dB signal report.
func IsSignalReport(token string) bool { return len(token) == 3 && sigReportRe.MatchString(token) }

// IsFieldDayClass reports whether token is a field-day class (e.g. "3A").
func IsFieldDayClass(token string) bool { return fieldDayClassRe.MatchString(token) }

// IsContestNumber reports whether token is a 3-digit RTTY roundup serial.
func IsContestNumber(token string) bool { return contestNumberRe.MatchString(token) }

// isCallsignToken reports whether token is a callsign, allowing a trailing
// "/R" or "/P" rover/portable suffix the way the packer's bareCallsign does,
// so a message like "K1ABC/R W9XYZ/R R EN37" classifies the same way it
// packs.
func isCallsignToken(token string) bool {
	if IsCallsign(token) {
		return true
	}
	bare, hasR, hasP := bareCallsign(token)
	if hasR || hasP {
		return IsCallsign(bare)
	}
	return false
}

// IsHex reports whether every character of token is a hex digit.
func IsHex(token string) bool {
	if token == "" {
		return false
	}
	for _, c := range token {
		if !((c >= '0' && c <= '9') || (c >= 'A' && c <= 'F') || (c >= 'a' && c <= 'f')) {
			return false
		}
	}
	return true
}

// Classify tokenizes a normalized message and tags it with its subtype,
// testing more specific subtypes before falling through to free text or
// unknown.
func Classify(normalized string) Subtype {
	tokens := fieldsPreservingOrder(normalized)

	switch {
	case isDxpedition(tokens):
		return SubtypeDxpedition
	case isTelemetry(tokens):
		return SubtypeTelemetry
	case isFieldDay(tokens, true):
		return SubtypeFieldDayExt
	case isFieldDay(tokens, false):
		return SubtypeFieldDay
	case isStandard(tokens):
		return SubtypeStandard
	case isRttyRoundup(tokens):
		return SubtypeRttyRoundup
	case isEuVhfExt(tokens):
		return SubtypeEuVhfExt
	case isNonstd(tokens):
		return SubtypeNonstdCall
	}

	if nonSpaceLen(normalized) <= 13 {
		return SubtypeFreeText
	}
	return SubtypeUnknown
}

func isDxpedition(tokens []string) bool {
	for _, t := range tokens {
		if t == "RRR" || t == "RR73" || t == "73" || IsSignalReport(t) {
			return true
		}
	}
	return false
}

func isTelemetry(tokens []string) bool {
	return len(tokens) == 1 && IsHex(tokens[0])
}

func isFieldDay(tokens []string, checkR bool) bool {
	var hasCallsign, hasClass, hasR bool
	for _, t := range tokens {
		switch {
		case IsFieldDayClass(t):
			hasClass = true
		case t == "R":
			hasR = true
		case isCallsignToken(t):
			hasCallsign = true
		}
	}
	if !hasCallsign || !hasClass {
		return false
	}
	if checkR && !hasR {
		return false
	}
	return true
}

func isStandard(tokens []string) bool {
	var hasCallsign, hasGrid bool
	for _, t := range tokens {
		if isCallsignToken(t) {
			hasCallsign = true
		}
		if IsGridSquare(t) {
			hasGrid = true
		}
	}
	return hasCallsign && hasGrid
}

func isRttyRoundup(tokens []string) bool {
	var hasCallsign, hasContest bool
	for _, t := range tokens {
		if isCallsignToken(t) {
			hasCallsign = true
		} else if IsContestNumber(t) {
			hasContest = true
		}
	}
	return hasCallsign && hasContest
}

func isEuVhfExt(tokens []string) bool {
	var hasCallsign, hasExtGrid bool
	for _, t := range tokens {
		if isCallsignToken(t) {
			hasCallsign = true
		} else if IsGrid6Square(t) {
			hasExtGrid = true
		}
	}
	return hasCallsign && hasExtGrid
}

func isNonstd(tokens []string) bool {
	for _, t := range tokens {
		if IsNonstdCallsign(t) {
			return true
		}
	}
	return false
}

func fieldsPreservingOrder(s string) []string {
	var tokens []string
	start := -1
	for i, c := range s {
		if c == ' ' {
			if start >= 0 {
				tokens = append(tokens, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, s[start:])
	}
	return tokens
}

func nonSpaceLen(s string) int {
	n := 0
	for _, c := range s {
		if c != ' ' {
			n++
		}
	}
	return n
}
