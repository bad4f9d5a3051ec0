package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/vaibhaw-/RecordR/internal/recordr/logger"
)

// ErrInvalidMapping is returned when a mapping file cannot be decoded or fails the schema check.
var ErrInvalidMapping = errors.New("invalid mapping configuration")

// Mapping maps a canonical field name to either a literal wrapped as {text}
// or an extraction key understood by the payload parser.
type Mapping map[string]string

// Lookup returns the configured value for field.
func (m Mapping) Lookup(field string) (string, bool) {
	v, ok := m[field]
	return v, ok
}

// Has reports whether field is configured.
func (m Mapping) Has(field string) bool {
	_, ok := m[field]
	return ok
}

// Clone returns a copy that does not share storage with m.
func (m Mapping) Clone() Mapping {
	out := make(Mapping, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Literal returns the inner text of a {literal} value.
func Literal(value string) (string, bool) {
	if len(value) >= 2 && strings.HasPrefix(value, "{") && strings.HasSuffix(value, "}") {
		return value[1 : len(value)-1], true
	}
	return "", false
}

// mappingSchema accepts a flat object of non-empty keys to string values.
const mappingSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"propertyNames": { "minLength": 1 },
	"additionalProperties": { "type": "string" }
}`

var mappingSchemaLoader = gojsonschema.NewStringLoader(mappingSchema)

func validateMappingSchema(doc interface{}) error {
	result, err := gojsonschema.Validate(mappingSchemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMapping, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
		}
		return fmt.Errorf("%w: %s", ErrInvalidMapping, strings.Join(msgs, "; "))
	}
	return nil
}

// LoadMapping decodes a mapping document. format is "json" or "yaml".
func LoadMapping(r io.Reader, format string) (Mapping, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read mapping: %w", err)
	}

	var doc interface{}
	switch strings.ToLower(format) {
	case "json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: decode json: %v", ErrInvalidMapping, err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: decode yaml: %v", ErrInvalidMapping, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported mapping format %q", ErrInvalidMapping, format)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidMapping)
	}

	if err := validateMappingSchema(doc); err != nil {
		return nil, err
	}

	raw, ok := doc.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: expected an object", ErrInvalidMapping)
	}

	m := make(Mapping, len(raw))
	var unknown []string
	for k, v := range raw {
		s, _ := v.(string)
		m[k] = s
		if !KnownField(k) {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		logger.L().Warnw("mapping declares unknown fields; they will be ignored",
			"fields", strings.Join(unknown, ","))
	}

	logger.L().Debugw("mapping loaded", "fields", len(m), "format", format)
	return m, nil
}

// LoadMappingFile opens path and decodes it. With format "auto" or "" the
// file extension decides: .yaml/.yml are YAML, everything else JSON.
func LoadMappingFile(path, format string) (Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mapping file %s: %w", path, err)
	}
	defer f.Close()

	if format == "" || format == "auto" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			format = "yaml"
		default:
			format = "json"
		}
	}

	m, err := LoadMapping(f, format)
	if err != nil {
		return nil, fmt.Errorf("load mapping %s: %w", path, err)
	}
	return m, nil
}
