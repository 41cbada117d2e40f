package ft8

import "errors"

// Sentinel errors for the encoding pipeline. Callers should use errors.Is
// against these values; wrapping call sites add the offending detail with
// fmt.Errorf("...: %w", ...).
var (
	// ErrEmptyMessage is returned when the input text is empty after trimming.
	ErrEmptyMessage = errors.New("ft8: empty message")

	// ErrInvalidCharacter is returned when normalization finds a character
	// outside the allowed message alphabet.
	ErrInvalidCharacter = errors.New("ft8: invalid character")

	// ErrUnsupportedSubtype is returned when the classified subtype is
	// anything other than Standard; only Standard is packed.
	ErrUnsupportedSubtype = errors.New("ft8: unsupported message subtype")

	// ErrInvalidCallsignChar is returned by the callsign field codecs when a
	// character falls outside the applicable alphabet.
	ErrInvalidCallsignChar = errors.New("ft8: invalid callsign character")

	// ErrInvalidGridChar is returned by the grid field codecs when a
	// character falls outside the applicable alphabet.
	ErrInvalidGridChar = errors.New("ft8: invalid grid character")

	// ErrInvalidGeneratorMatrix is returned when fewer than 83 binary rows
	// were loaded from the generator matrix file.
	ErrInvalidGeneratorMatrix = errors.New("ft8: invalid generator matrix")

	// ErrInvalidParityMatrix is returned when fewer than 174 columns were
	// loaded from the parity-check matrix file.
	ErrInvalidParityMatrix = errors.New("ft8: invalid parity matrix")

	// ErrFileOpenFailed is returned when a matrix file cannot be opened.
	ErrFileOpenFailed = errors.New("ft8: failed to open matrix file")
)
