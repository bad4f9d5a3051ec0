package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleAuditJSON = `{
	"sessionId": "8a7f",
	"timestamp": "2024-07-01T10:00:00+02:00",
	"db": {"name": "orders", "user": "alice"},
	"client": {"ip": "10.0.0.5", "port": 50122, "ipv6": false},
	"error": null,
	"statements": [{"verb": "SELECT", "object": "orders"}],
	"ratio": 1.50
}`

func TestJSONParser_Flatten(t *testing.T) {
	p := NewJSONParser()
	p.SetPayload(sampleAuditJSON)
	assert.False(t, p.IsInvalid())

	tests := []struct {
		key    string
		want   string
		wantOK bool
	}{
		{"sessionId", "8a7f", true},
		{"db.name", "orders", true},
		{"db.user", "alice", true},
		{"client.port", "50122", true},
		{"client.ipv6", "false", true},
		{"statements[0].verb", "SELECT", true},
		{"statements[0].object", "orders", true},
		{"ratio", "1.50", true},
		{"error", "", false},
		{"db", "", false},
		{"missing", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := p.Parse(tt.key)
		assert.Equal(t, tt.wantOK, ok, "Parse(%q) ok", tt.key)
		assert.Equal(t, tt.want, got, "Parse(%q)", tt.key)
	}
}

func TestJSONParser_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"empty", ""},
		{"malformed", `{"sessionId": `},
		{"array root", `[{"a": 1}]`},
		{"string root", `"hello"`},
		{"empty object", `{}`},
		{"only nulls", `{"a": null, "b": {}}`},
		{"trailing garbage", `{"a": "1"} {"b": "2"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewJSONParser()
			p.SetPayload(tt.payload)
			assert.True(t, p.IsInvalid())
			_, ok := p.Parse("a")
			assert.False(t, ok)
		})
	}
}

func TestJSONParser_SetPayloadReplacesView(t *testing.T) {
	p := NewJSONParser()
	p.SetPayload(`{"a": "1"}`)
	v, ok := p.Parse("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	p.SetPayload(`{"b": "2"}`)
	_, ok = p.Parse("a")
	assert.False(t, ok, "previous payload must not leak")

	p.SetPayload(`not json`)
	assert.True(t, p.IsInvalid())
	_, ok = p.Parse("b")
	assert.False(t, ok)
}
