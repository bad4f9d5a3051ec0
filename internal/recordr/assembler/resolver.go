package assembler

import (
	"net/netip"
	"strconv"
	"strings"

	"github.com/vaibhaw-/RecordR/internal/recordr/config"
	"github.com/vaibhaw-/RecordR/internal/recordr/parsers"
)

// FieldSource resolves a canonical field name against the current payload.
// ok is false when the field is not configured or the payload has no value for it.
type FieldSource interface {
	Resolve(field string) (value string, ok bool)
}

// FieldSourceFunc adapts a plain function to FieldSource.
type FieldSourceFunc func(field string) (string, bool)

// Resolve calls f(field).
func (f FieldSourceFunc) Resolve(field string) (string, bool) {
	return f(field)
}

// Resolver is the default FieldSource. A mapping value written as {text}
// is returned verbatim without consulting the parser; any other value is an
// extraction key handed to the parser.
type Resolver struct {
	mapping config.Mapping
	parser  parsers.PayloadParser
}

// NewResolver resolves fields of m, handing extraction keys to p.
func NewResolver(m config.Mapping, p parsers.PayloadParser) *Resolver {
	return &Resolver{mapping: m, parser: p}
}

// Resolve returns ok false for a field m does not configure.
func (r *Resolver) Resolve(field string) (string, bool) {
	key, ok := r.mapping.Lookup(field)
	if !ok {
		return "", false
	}
	if lit, isLit := config.Literal(key); isLit {
		return lit, true
	}
	return r.parser.Parse(key)
}

// stringOr returns the resolved value, or def when it is missing or empty.
func stringOr(fs FieldSource, field, def string) string {
	v, ok := fs.Resolve(field)
	if !ok || v == "" {
		return def
	}
	return v
}

// boolField is true only for a case-insensitive "true".
func boolField(fs FieldSource, field string) bool {
	v, ok := fs.Resolve(field)
	return ok && strings.EqualFold(strings.TrimSpace(v), "true")
}

// intOr parses the resolved value as a base-10 integer. Missing values and
// parse failures yield def; a failure is logged at debug level.
func (a *Assembler) intOr(fs FieldSource, field string, def int) int {
	v, ok := fs.Resolve(field)
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		a.log.Debugw("integer field not parseable, using default",
			"field", field, "value", v, "default", def)
		a.metrics.recordIntParseFailure(field)
		return def
	}
	return n
}

func isIPv4(s string) bool {
	addr, err := netip.ParseAddr(s)
	return err == nil && addr.Is4()
}

// isIPv6 rejects zoned addresses and IPv4 dotted quads.
func isIPv6(s string) bool {
	addr, err := netip.ParseAddr(s)
	return err == nil && addr.Is6() && addr.Zone() == ""
}
