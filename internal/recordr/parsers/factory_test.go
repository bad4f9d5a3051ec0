package parsers

import (
	"errors"
	"fmt"
	"testing"
)

func TestFactory_NewParser(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		opts    ParserOptions
		want    string // expected parser type
		wantErr bool
	}{
		{
			name:   "JSON",
			format: "json",
			want:   "*parsers.JSONParser",
		},
		{
			name:   "JSON (mixed case)",
			format: " Json ",
			want:   "*parsers.JSONParser",
		},
		{
			name:   "Regex",
			format: "regex",
			want:   "*parsers.RegexParser",
		},
		{
			name:   "Regex (re alias)",
			format: "re",
			want:   "*parsers.RegexParser",
		},
		{
			name:   "CSV",
			format: "csv",
			opts:   ParserOptions{CSVDelimiter: ";"},
			want:   "*parsers.CSVParser",
		},
		{
			name:    "CSV with bad delimiter",
			format:  "csv",
			opts:    ParserOptions{CSVDelimiter: "||"},
			wantErr: true,
		},
		{
			name:    "Invalid format",
			format:  "xml",
			wantErr: true,
		},
		{
			name:    "Empty format",
			format:  "",
			wantErr: true,
		},
	}

	factory := NewFactory()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := factory.NewParser(tt.format, tt.opts)
			if tt.wantErr {
				if err == nil {
					t.Errorf("NewParser() error = nil, wantErr %v", tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewParser() unexpected error = %v", err)
			}

			gotType := fmt.Sprintf("%T", got)
			if gotType != tt.want {
				t.Errorf("NewParser() got = %v, want %v", gotType, tt.want)
			}
		})
	}
}

func TestFactory_UnsupportedFormatError(t *testing.T) {
	_, err := NewFactory().NewParser("xml", ParserOptions{})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestFactory_FormatsAreConstructible(t *testing.T) {
	f := NewFactory()
	for _, format := range f.Formats() {
		if _, err := f.NewParser(format, ParserOptions{}); err != nil {
			t.Errorf("NewParser(%q) error = %v", format, err)
		}
	}
}
