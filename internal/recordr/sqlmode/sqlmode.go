// Package sqlmode decides, once per mapping, how SQL metadata is obtained for
// every record: not at all, from a protocol sniffer, or from configured
// object/verb extraction keys.
package sqlmode

import (
	"fmt"
	"strings"

	"github.com/vaibhaw-/RecordR/internal/recordr/config"
)

// Mode is the SQL-parsing mode of a deployment.
type Mode int

const (
	// Invalid is the zero Mode and never describes a usable mapping.
	Invalid Mode = iota
	NoSQLParsing
	SnifferAssisted
	CustomRegex
)

func (m Mode) String() string {
	switch m {
	case NoSQLParsing:
		return "NO_SQL_PARSING"
	case SnifferAssisted:
		return "SNIFFER_ASSISTED"
	case CustomRegex:
		return "CUSTOM_REGEX"
	default:
		return "INVALID"
	}
}

// Result is the outcome of Validate. Reason is set only when Mode is Invalid.
type Result struct {
	Mode   Mode
	Reason string
}

// Valid reports whether the mapping may be used to build records.
func (r Result) Valid() bool {
	return r.Mode != Invalid
}

func (r Result) String() string {
	if r.Valid() {
		return "VALID (" + r.Mode.String() + ")"
	}
	return "INVALID: " + r.Reason
}

func invalid(format string, args ...interface{}) Result {
	return Result{Mode: Invalid, Reason: fmt.Sprintf(format, args...)}
}

// sqlFields are the mapping keys whose presence declares SQL parsing.
var sqlFields = []string{config.SnifferParser, config.Object, config.Verb}

// HasSQLParsing reports whether m declares any SQL-relevant extraction field.
func HasSQLParsing(m config.Mapping) bool {
	for _, f := range sqlFields {
		if m.Has(f) {
			return true
		}
	}
	return false
}

// Validate classifies m. It only looks at which keys are configured, never at payloads.
func Validate(m config.Mapping) Result {
	if !HasSQLParsing(m) {
		return Result{Mode: NoSQLParsing}
	}

	if m.Has(config.SnifferParser) {
		name := SnifferName(m)
		if name == "" {
			return invalid("%s is configured but empty", config.SnifferParser)
		}
		if _, ok := ServerType(name); !ok {
			return invalid("unsupported sniffer parser %q (supported: %s)",
				name, strings.Join(KnownSniffers(), ", "))
		}
		return Result{Mode: SnifferAssisted}
	}

	hasObject, hasVerb := m.Has(config.Object), m.Has(config.Verb)
	switch {
	case hasObject && hasVerb:
		return Result{Mode: CustomRegex}
	case hasObject:
		return invalid("custom SQL parsing declares %s but not %s", config.Object, config.Verb)
	default:
		return invalid("custom SQL parsing declares %s but not %s", config.Verb, config.Object)
	}
}
