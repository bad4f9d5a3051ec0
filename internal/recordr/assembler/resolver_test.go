package assembler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/vaibhaw-/RecordR/internal/recordr/config"
)

// stubParser answers from a fixed map and counts lookups.
type stubParser struct {
	values map[string]string
	calls  int
}

func (s *stubParser) SetPayload(string) {}
func (s *stubParser) IsInvalid() bool   { return false }
func (s *stubParser) Parse(key string) (string, bool) {
	s.calls++
	v, ok := s.values[key]
	return v, ok
}

func TestResolver_Resolve(t *testing.T) {
	p := &stubParser{values: map[string]string{"db.name": "orders", "empty": ""}}
	r := NewResolver(config.Mapping{
		config.DBName:      "db.name",
		config.ServiceName: "{billing {eu}}",
		config.DBUser:      "missing",
		config.OSUser:      "empty",
	}, p)

	tests := []struct {
		field  string
		want   string
		wantOK bool
	}{
		{config.DBName, "orders", true},
		{config.ServiceName, "billing {eu}", true},
		{config.DBUser, "", false},
		{config.OSUser, "", true},
		{config.ClientMAC, "", false},
	}
	for _, tt := range tests {
		got, ok := r.Resolve(tt.field)
		assert.Equal(t, tt.wantOK, ok, tt.field)
		assert.Equal(t, tt.want, got, tt.field)
	}
	// literal and unconfigured fields never reach the parser
	assert.Equal(t, 3, p.calls)
}

func TestTypedDefaults(t *testing.T) {
	fs := FieldSourceFunc(func(field string) (string, bool) {
		switch field {
		case "empty":
			return "", true
		case "port":
			return " 5432 ", true
		case "bad":
			return "54x", true
		case "flag":
			return "True", true
		case "yes":
			return "yes", true
		}
		return "", false
	})
	a := &Assembler{log: zapNop()}

	assert.Equal(t, "def", stringOr(fs, "empty", "def"))
	assert.Equal(t, "def", stringOr(fs, "absent", "def"))
	assert.Equal(t, 5432, a.intOr(fs, "port", -1))
	assert.Equal(t, -1, a.intOr(fs, "bad", -1))
	assert.Equal(t, -1, a.intOr(fs, "absent", -1))
	assert.True(t, boolField(fs, "flag"))
	assert.False(t, boolField(fs, "yes"))
	assert.False(t, boolField(fs, "absent"))
}

func TestAddressFamilies(t *testing.T) {
	tests := []struct {
		addr   string
		v4, v6 bool
	}{
		{"10.0.0.5", true, false},
		{"::1", false, true},
		{"2001:db8::8a2e:370:7334", false, true},
		{"::ffff:10.0.0.5", false, true},
		{"fe80::1%eth0", false, false},
		{"10.0.0.256", false, false},
		{"", false, false},
		{"db-01", false, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.v4, isIPv4(tt.addr), "isIPv4(%q)", tt.addr)
		assert.Equal(t, tt.v6, isIPv6(tt.addr), "isIPv6(%q)", tt.addr)
	}
}

func zapNop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
