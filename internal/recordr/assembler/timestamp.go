package assembler

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // region suffixes must resolve on hosts without zoneinfo

	"github.com/araddon/dateparse"

	"github.com/vaibhaw-/RecordR/internal/recordr/record"
)

// ErrMalformedTimestamp is returned when a configured timestamp value is
// present but cannot be read as a zone-qualified date-time.
var ErrMalformedTimestamp = errors.New("malformed timestamp")

const dstMinutes = 60

var (
	offsetLayouts = []string{
		time.RFC3339, // fractional seconds are accepted when parsing
		"2006-01-02T15:04Z07:00",
	}
	localLayouts = []string{
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
	}
)

// ParseTimestamp reads an ISO-8601 date-time carrying an offset, a bracketed
// region, or both:
//
//	2024-07-01T10:00:00+02:00
//	2024-07-01T10:00:00.250Z
//	2024-07-01T10:00:00+02:00[Europe/Paris]
//	2024-07-01T10:00:00[Europe/Paris]
//
// The offset is the zone's total offset from UTC at that instant. MinDst is 60
// when the region observes daylight saving at that instant, else 0; a bare
// offset never reports DST. With lenient set, values that are not ISO-8601
// are tried with dateparse, interpreting zone-less values as UTC.
func ParseTimestamp(value string, lenient bool) (record.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return record.Time{}, fmt.Errorf("%w: empty value", ErrMalformedTimestamp)
	}

	t, err := parseISO(value)
	if err != nil && lenient {
		if lt, lerr := dateparse.ParseIn(value, time.UTC); lerr == nil {
			t, err = lt, nil
		}
	}
	if err != nil {
		return record.Time{}, err
	}

	_, offset := t.Zone()
	rt := record.Time{
		Timestamp:        t.UnixMilli(),
		MinOffsetFromGMT: offset / 60,
	}
	if t.IsDST() {
		rt.MinDst = dstMinutes
	}
	return rt, nil
}

func parseISO(value string) (time.Time, error) {
	base, region := value, ""
	if strings.HasSuffix(value, "]") {
		open := strings.LastIndexByte(value, '[')
		if open < 0 {
			return time.Time{}, fmt.Errorf("%w: %q: unbalanced region brackets", ErrMalformedTimestamp, value)
		}
		base, region = value[:open], value[open+1:len(value)-1]
	}

	var loc *time.Location
	if region != "" {
		l, err := time.LoadLocation(region)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q: unknown region %q", ErrMalformedTimestamp, value, region)
		}
		loc = l
	}

	for _, layout := range offsetLayouts {
		// time.Parse would adopt time.Local for an offset the host zone uses,
		// leaking the host's DST flag into a bare offset
		if t, err := time.ParseInLocation(layout, base, time.UTC); err == nil {
			if loc != nil {
				t = t.In(loc)
			}
			return t, nil
		}
	}
	if loc != nil {
		for _, layout := range localLayouts {
			if t, err := time.ParseInLocation(layout, base, loc); err == nil {
				return t, nil
			}
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, value)
}
