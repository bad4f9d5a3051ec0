package parsers

import (
	"fmt"
	"strings"
)

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

// Formats lists the payload formats NewParser accepts.
func (f *Factory) Formats() []string {
	return []string{"csv", "json", "regex"}
}

// NewParser returns a PayloadParser for the given format ("json", "regex" or "csv").
func (f *Factory) NewParser(format string, opts ParserOptions) (PayloadParser, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return NewJSONParser(), nil
	case "regex", "re":
		return NewRegexParser(), nil
	case "csv":
		return NewCSVParser(opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
