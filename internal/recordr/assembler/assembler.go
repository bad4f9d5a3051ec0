// Package assembler turns raw payloads into canonical records. It resolves
// every canonical field through a FieldSource, applies typed defaults and
// derives the session locator, accessor, exception and SQL data.
package assembler

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/vaibhaw-/RecordR/internal/recordr/config"
	"github.com/vaibhaw-/RecordR/internal/recordr/logger"
	"github.com/vaibhaw-/RecordR/internal/recordr/parsers"
	"github.com/vaibhaw-/RecordR/internal/recordr/record"
	"github.com/vaibhaw-/RecordR/internal/recordr/sqlmode"
)

// ErrInvalidConfiguration is returned by New when the mapping is rejected.
var ErrInvalidConfiguration = errors.New("invalid parsing configuration")

// Option configures an Assembler built by New.
type Option func(*Assembler)

// WithLogger replaces the global logger captured at construction.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(a *Assembler) { a.log = l }
}

// WithMetrics records payload outcomes on m. A nil m records nothing.
func WithMetrics(m *Metrics) Option {
	return func(a *Assembler) { a.metrics = m }
}

// WithLenientTimestamps lets non-ISO timestamps fall back to dateparse.
func WithLenientTimestamps(lenient bool) Option {
	return func(a *Assembler) { a.lenient = lenient }
}

// WithFieldSource wraps the default Resolver. wrap receives the Resolver bound
// to the assembler's own mapping and parser and returns the FieldSource used
// for every field. It is consulted after the payload has been handed to the parser.
func WithFieldSource(wrap func(base FieldSource) FieldSource) Option {
	return func(a *Assembler) { a.wrap = wrap }
}

// Assembler builds records from payloads. The mapping and parsing mode are
// fixed at construction. An Assembler drives a stateful PayloadParser and
// must not be used from more than one goroutine; give each worker its own.
type Assembler struct {
	mapping config.Mapping
	parser  parsers.PayloadParser
	source  FieldSource
	wrap    func(FieldSource) FieldSource
	mode    sqlmode.Mode
	lenient bool

	// sniffer-assisted mode only
	sniffer    string
	serverType string

	log     *zap.SugaredLogger
	metrics *Metrics
}

// New validates m and returns an Assembler bound to p. A mapping the
// parsing-mode validator rejects, or an extraction key p reports as unusable,
// fails with ErrInvalidConfiguration.
func New(m config.Mapping, p parsers.PayloadParser, opts ...Option) (*Assembler, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil payload parser", ErrInvalidConfiguration)
	}

	m = m.Clone()
	res := sqlmode.Validate(m)
	if !res.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfiguration, res.Reason)
	}

	a := &Assembler{
		mapping: m,
		parser:  p,
		mode:    res.Mode,
		log:     logger.L(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.source = NewResolver(m, p)
	if a.wrap != nil {
		if a.source = a.wrap(a.source); a.source == nil {
			return nil, fmt.Errorf("%w: field source wrapper returned nil", ErrInvalidConfiguration)
		}
	}

	if err := checkKeys(m, p); err != nil {
		return nil, err
	}

	if a.mode == sqlmode.SnifferAssisted {
		a.sniffer = sqlmode.SnifferName(m)
		a.serverType, _ = sqlmode.ServerType(a.sniffer)
		if m.Has(config.Object) || m.Has(config.Verb) {
			a.log.Warnw("object/verb fields are ignored in sniffer-assisted mode",
				"sniffer", a.sniffer)
		}
	}

	a.log.Debugw("assembler ready", "mode", a.mode.String(), "fields", len(m))
	return a, nil
}

// checkKeys asks p to vet every extraction key of a known field.
func checkKeys(m config.Mapping, p parsers.PayloadParser) error {
	kc, ok := p.(parsers.KeyChecker)
	if !ok {
		return nil
	}

	fields := make([]string, 0, len(m))
	for f := range m {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	for _, f := range fields {
		if f == config.SnifferParser || !config.KnownField(f) {
			continue
		}
		key := m[f]
		if _, lit := config.Literal(key); lit {
			continue
		}
		if err := kc.CheckKey(key); err != nil {
			return fmt.Errorf("%w: field %s: %v", ErrInvalidConfiguration, f, err)
		}
	}
	return nil
}

// Mode returns the parsing mode decided at construction.
func (a *Assembler) Mode() sqlmode.Mode {
	return a.mode
}

// ParseRecord builds the record for payload. It returns (nil, nil) for a nil
// payload or one the parser reports invalid. A timestamp that is configured
// and present but malformed fails with ErrMalformedTimestamp. Otherwise every
// record field is set, either resolved or at its default.
func (a *Assembler) ParseRecord(payload *string) (*record.Record, error) {
	started := time.Now()
	if payload == nil {
		a.metrics.recordOutcome(OutcomeNull, started)
		return nil, nil
	}

	a.parser.SetPayload(*payload)
	if a.parser.IsInvalid() {
		a.log.Debugw("skipping invalid payload", "bytes", len(*payload))
		a.metrics.recordOutcome(OutcomeInvalid, started)
		return nil, nil
	}

	rec, err := a.assemble()
	if err != nil {
		a.metrics.recordOutcome(OutcomeError, started)
		return nil, err
	}
	a.metrics.recordOutcome(OutcomeParsed, started)
	return rec, nil
}

// ParseString is ParseRecord for a non-nil payload.
func (a *Assembler) ParseString(payload string) (*record.Record, error) {
	return a.ParseRecord(&payload)
}

func (a *Assembler) assemble() (*record.Record, error) {
	fs := a.source

	ts, err := a.timestamp(fs)
	if err != nil {
		return nil, err
	}

	sessionID := stringOr(fs, config.SessionID, record.DefaultString)
	rec := &record.Record{
		SessionID:      sessionID,
		DBName:         stringOr(fs, config.DBName, record.DefaultString),
		AppUserName:    stringOr(fs, config.AppUserName, record.DefaultString),
		Time:           ts,
		SessionLocator: a.sessionLocator(fs, sessionID),
		Accessor:       a.accessor(fs),
	}

	typeID := stringOr(fs, config.ExceptionTypeID, record.DefaultString)
	if typeID == "" {
		return rec, nil
	}

	sql := stringOr(fs, config.SQLString, record.DefaultString)
	rec.Exception = &record.ExceptionRecord{
		ExceptionTypeID: typeID,
		Description:     stringOr(fs, config.ExceptionDesc, record.DefaultString),
		SQLString:       sql,
	}
	rec.Data = a.data(fs, sql)
	return rec, nil
}

// timestamp returns the zero Time when the field is not configured or has no
// value in the payload.
func (a *Assembler) timestamp(fs FieldSource) (record.Time, error) {
	v := stringOr(fs, config.Timestamp, "")
	if v == "" {
		return record.Time{}, nil
	}
	return ParseTimestamp(v, a.lenient)
}

func (a *Assembler) data(fs FieldSource, sql string) *record.Data {
	if a.mode != sqlmode.CustomRegex {
		return &record.Data{OriginalSQLCommand: sql}
	}

	sentence := record.NewSentence(
		stringOr(fs, config.Verb, record.DefaultString),
		stringOr(fs, config.Object, record.DefaultString),
	)
	return &record.Data{
		Construct: &record.Construct{
			Sentences: []record.Sentence{sentence},
			FullSQL:   sql,
		},
		OriginalSQLCommand: stringOr(fs, config.OriginalSQLCommand, sql),
	}
}

// sessionLocator fills exactly one address family. IPv6 wins when the flag is
// set and the client address is valid IPv6; otherwise a valid IPv4 client
// address selects IPv4; otherwise every address stays at its sentinel.
func (a *Assembler) sessionLocator(fs FieldSource, sessionID string) record.SessionLocator {
	loc := record.DefaultSessionLocator()

	if boolField(fs, config.IsIPv6) {
		if ip := stringOr(fs, config.ClientIPv6, ""); isIPv6(ip) {
			loc.IsIPv6 = true
			loc.ClientIPv6 = ip
			loc.ServerIPv6 = stringOr(fs, config.ServerIPv6, record.DefaultIPv6)
		}
	}
	if !loc.IsIPv6 {
		if ip := stringOr(fs, config.ClientIP, ""); isIPv4(ip) {
			loc.ClientIP = ip
			loc.ServerIP = stringOr(fs, config.ServerIP, record.DefaultIP)
		}
	}

	// ports mean nothing without a session
	if sessionID != "" {
		loc.ClientPort = a.intOr(fs, config.ClientPort, record.PortDefault)
		loc.ServerPort = a.intOr(fs, config.ServerPort, record.PortDefault)
	}
	return loc
}

func (a *Assembler) accessor(fs FieldSource) record.Accessor {
	acc := record.Accessor{
		DBUser:            stringOr(fs, config.DBUser, record.DatabaseNotAvailable),
		ServerOS:          stringOr(fs, config.ServerOS, record.DefaultString),
		ClientOS:          stringOr(fs, config.ClientOS, record.DefaultString),
		ClientHostName:    stringOr(fs, config.ClientHostname, record.DefaultString),
		ServerHostName:    stringOr(fs, config.ServerHostname, record.DefaultString),
		CommProtocol:      stringOr(fs, config.CommProtocol, record.DefaultString),
		DBProtocol:        stringOr(fs, config.DBProtocol, record.DefaultString),
		DBProtocolVersion: stringOr(fs, config.DBProtocolVersion, record.DefaultString),
		OSUser:            stringOr(fs, config.OSUser, record.DefaultString),
		SourceProgram:     stringOr(fs, config.SourceProgram, record.DefaultString),
		ClientMAC:         stringOr(fs, config.ClientMAC, record.DefaultString),
		ServerDescription: stringOr(fs, config.ServerDescription, record.DefaultString),
		ServiceName:       stringOr(fs, config.ServiceName, record.DefaultString),
	}

	if a.mode == sqlmode.SnifferAssisted {
		acc.ServerType = a.serverType
		acc.Language = a.sniffer
		acc.DataType = record.DataTypeParseSQL
		return acc
	}
	acc.ServerType = stringOr(fs, config.ServerType, record.DefaultString)
	acc.Language = stringOr(fs, config.Language, record.LanguageFreeText)
	acc.DataType = stringOr(fs, config.DataType, record.DataTypeConstruct)
	return acc
}
