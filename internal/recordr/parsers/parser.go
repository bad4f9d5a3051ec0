package parsers

import (
	"errors"
)

var (
	// ErrUnsupportedFormat is returned by the factory for an unknown payload format.
	ErrUnsupportedFormat = errors.New("unsupported payload format")
	// ErrInvalidKey is returned by KeyChecker for an extraction key the parser can never resolve.
	ErrInvalidKey = errors.New("invalid extraction key")
)

type ParserOptions struct {
	// CSVDelimiter is the single-character field separator for csv payloads. Defaults to ",".
	CSVDelimiter string
	// CSVColumns optionally names csv columns in order.
	CSVColumns []string
}

// PayloadParser exposes key lookup over one raw payload at a time.
// Implementations keep per-payload state, so a parser must not be shared
// between goroutines.
type PayloadParser interface {
	// SetPayload replaces the current payload and discards the previous view.
	SetPayload(payload string)
	// IsInvalid reports whether the current payload could not be minimally parsed.
	IsInvalid() bool
	// Parse resolves key against the current payload.
	Parse(key string) (string, bool)
}

// KeyChecker is implemented by parsers that can reject an extraction key
// before any payload is seen.
type KeyChecker interface {
	CheckKey(key string) error
}
