package parsers

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vaibhaw-/RecordR/internal/recordr/logger"
)

// RegexParser treats every extraction key as a regular expression evaluated
// against the raw payload. The value is the capture group named "value" when
// present, else the first capture group, else the whole match.
//
//	key: `user=(\w+)`   payload: `LOG: user=alice db=orders`   -> alice
type RegexParser struct {
	payload  string
	compiled map[string]*regexp.Regexp
	broken   map[string]struct{}
}

func NewRegexParser() *RegexParser {
	return &RegexParser{
		compiled: make(map[string]*regexp.Regexp),
		broken:   make(map[string]struct{}),
	}
}

func (p *RegexParser) SetPayload(payload string) {
	p.payload = payload
}

// IsInvalid is true for an empty or whitespace-only payload.
func (p *RegexParser) IsInvalid() bool {
	return strings.TrimSpace(p.payload) == ""
}

func (p *RegexParser) Parse(key string) (string, bool) {
	re := p.pattern(key)
	if re == nil {
		return "", false
	}
	m := re.FindStringSubmatch(p.payload)
	if m == nil {
		return "", false
	}
	if i := re.SubexpIndex("value"); i > 0 {
		return m[i], true
	}
	if len(m) > 1 {
		return m[1], true
	}
	return m[0], true
}

// CheckKey rejects keys that do not compile.
func (p *RegexParser) CheckKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty pattern", ErrInvalidKey)
	}
	if _, err := regexp.Compile(key); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return nil
}

// pattern compiles key once; a key that fails to compile is logged once and never matches.
func (p *RegexParser) pattern(key string) *regexp.Regexp {
	if re, ok := p.compiled[key]; ok {
		return re
	}
	if _, bad := p.broken[key]; bad || key == "" {
		return nil
	}
	re, err := regexp.Compile(key)
	if err != nil {
		logger.L().Warnw("extraction pattern does not compile", "pattern", key, "err", err.Error())
		p.broken[key] = struct{}{}
		return nil
	}
	p.compiled[key] = re
	return re
}
