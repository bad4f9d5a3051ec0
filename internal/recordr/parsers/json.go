package parsers

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// JSONParser flattens a JSON object payload into dotted paths.
// Nested objects join keys with ".", array elements use "[i]":
//
//	{"db":{"user":"alice"},"tags":["a","b"],"port":5432}
//	  -> db.user=alice, tags[0]=a, tags[1]=b, port=5432
//
// Numbers keep their textual form and null values are treated as absent.
type JSONParser struct {
	fields map[string]string
}

func NewJSONParser() *JSONParser {
	return &JSONParser{}
}

func (p *JSONParser) SetPayload(payload string) {
	p.fields = flattenJSON(payload)
}

// IsInvalid is true for malformed JSON, a non-object root, or an object with no values.
func (p *JSONParser) IsInvalid() bool {
	return len(p.fields) == 0
}

func (p *JSONParser) Parse(key string) (string, bool) {
	if key == "" {
		return "", false
	}
	v, ok := p.fields[key]
	return v, ok
}

func flattenJSON(payload string) map[string]string {
	dec := json.NewDecoder(strings.NewReader(payload))
	dec.UseNumber()

	var root interface{}
	if err := dec.Decode(&root); err != nil {
		return nil
	}
	// trailing garbage after the first value makes the payload malformed
	if dec.More() {
		return nil
	}
	obj, ok := root.(map[string]interface{})
	if !ok {
		return nil
	}

	out := make(map[string]string)
	flattenValue("", obj, out)
	return out
}

func flattenValue(prefix string, v interface{}, out map[string]string) {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, vv := range t {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			flattenValue(key, vv, out)
		}
	case []interface{}:
		for i, vv := range t {
			flattenValue(fmt.Sprintf("%s[%d]", prefix, i), vv, out)
		}
	case nil:
	case string:
		out[prefix] = t
	case json.Number:
		out[prefix] = t.String()
	case bool:
		out[prefix] = strconv.FormatBool(t)
	}
}
