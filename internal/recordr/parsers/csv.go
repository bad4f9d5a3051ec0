package parsers

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// CSVParser reads each payload as a single delimited record. Keys are 0-based
// column indexes, or column names when ParserOptions.CSVColumns is set.
type CSVParser struct {
	comma   rune
	columns map[string]int
	record  []string
}

func NewCSVParser(opts ParserOptions) (*CSVParser, error) {
	comma := ','
	if opts.CSVDelimiter != "" {
		if utf8.RuneCountInString(opts.CSVDelimiter) != 1 {
			return nil, fmt.Errorf("csv delimiter must be a single character, got %q", opts.CSVDelimiter)
		}
		comma, _ = utf8.DecodeRuneInString(opts.CSVDelimiter)
		if comma == '"' || comma == '\r' || comma == '\n' {
			return nil, fmt.Errorf("csv delimiter %q is not allowed", opts.CSVDelimiter)
		}
	}

	columns := make(map[string]int, len(opts.CSVColumns))
	for i, name := range opts.CSVColumns {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := columns[name]; dup {
			return nil, fmt.Errorf("duplicate csv column name %q", name)
		}
		columns[name] = i
	}

	return &CSVParser{comma: comma, columns: columns}, nil
}

func (p *CSVParser) SetPayload(payload string) {
	p.record = nil
	if strings.TrimSpace(payload) == "" {
		return
	}

	r := csv.NewReader(strings.NewReader(payload))
	r.Comma = p.comma
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	rec, err := r.Read()
	if err != nil {
		return
	}
	p.record = rec
}

// IsInvalid is true when the payload is blank or not a readable record.
func (p *CSVParser) IsInvalid() bool {
	return len(p.record) == 0
}

func (p *CSVParser) Parse(key string) (string, bool) {
	idx, ok := p.index(key)
	if !ok || idx >= len(p.record) {
		return "", false
	}
	return strings.TrimSpace(p.record[idx]), true
}

// CheckKey rejects keys that are neither a column name nor a non-negative index.
func (p *CSVParser) CheckKey(key string) error {
	if _, ok := p.index(key); !ok {
		return fmt.Errorf("%w: %q is not a column name or index", ErrInvalidKey, key)
	}
	return nil
}

func (p *CSVParser) index(key string) (int, bool) {
	key = strings.TrimSpace(key)
	if i, ok := p.columns[key]; ok {
		return i, true
	}
	i, err := strconv.Atoi(key)
	if err != nil || i < 0 {
		return 0, false
	}
	return i, true
}
