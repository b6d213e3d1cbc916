// Package format normalizes the heterogeneous date, phone and e-mail values
// found in ticket, patient and provider records into display and comparison
// forms. Nothing in this package panics on malformed input.
package format

import (
	"encoding/json"
	"math"
	"strings"
	"time"
)

const (
	// numeric timestamps below this magnitude are seconds, not milliseconds
	secondsThreshold = 1e12

	// largest instant representable by the upstream API (±100,000,000 days)
	maxTimestampMillis = 8.64e15

	displayDate     = "01/02/2006"
	displayDateTime = "01/02/2006 15:04"
	keyDate         = "2006-01-02"
)

type layout struct {
	value   string
	hasTime bool
}

// layouts are tried in order; the first successful parse wins.
var layouts = []layout{
	{time.RFC3339Nano, true},
	{"2006-01-02T15:04:05.999999999", true},
	{"2006-01-02T15:04:05Z0700", true},
	{"2006-01-02T15:04", true},
	{"2006-01-02 15:04:05", true},
	{"2006-01-02 15:04", true},
	{"2006-01-02", false},
	{"2006/01/02T15:04:05", true},
	{"2006/01/02 15:04:05", true},
	{"2006/01/02 15:04", true},
	{"2006/01/02", false},
	{"01/02/2006 15:04:05", true},
	{"01/02/2006 15:04", true},
	{"01/02/2006 03:04:05 PM", true},
	{"01/02/2006 03:04 PM", true},
	{"01/02/2006 3:04 PM", true},
	{"01/02/2006", false},
	{"1/2/2006 15:04:05", true},
	{"1/2/2006 15:04", true},
	{"1/2/2006 3:04:05 PM", true},
	{"1/2/2006 3:04 PM", true},
	{"1/2/2006", false},
}

// ParseDate converts v into a UTC instant. hasTime reports whether the input
// carried a time-of-day component; numeric timestamps and time values always
// do. ok is false for nil, empty and unparseable input.
func ParseDate(v any) (t time.Time, hasTime bool, ok bool) {
	switch x := v.(type) {
	case nil:
		return time.Time{}, false, false
	case time.Time:
		if x.IsZero() {
			return time.Time{}, false, false
		}
		return x.UTC(), true, true
	case *time.Time:
		if x == nil {
			return time.Time{}, false, false
		}
		return ParseDate(*x)
	case string:
		return parseString(x)
	case *string:
		if x == nil {
			return time.Time{}, false, false
		}
		return parseString(*x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return time.Time{}, false, false
		}
		return fromNumber(f)
	case int:
		return fromNumber(float64(x))
	case int32:
		return fromNumber(float64(x))
	case int64:
		return fromNumber(float64(x))
	case float32:
		return fromNumber(float64(x))
	case float64:
		return fromNumber(x)
	default:
		return time.Time{}, false, false
	}
}

func parseString(s string) (time.Time, bool, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false, false
	}
	for _, l := range layouts {
		if t, err := time.Parse(l.value, s); err == nil {
			return t.UTC(), l.hasTime, true
		}
	}
	return time.Time{}, false, false
}

func fromNumber(f float64) (time.Time, bool, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return time.Time{}, false, false
	}
	if math.Abs(f) < secondsThreshold {
		f *= 1000
	}
	if math.Abs(f) > maxTimestampMillis {
		return time.Time{}, false, false
	}
	return time.UnixMilli(int64(f)).UTC(), true, true
}

// ToMMDDYYYY renders v as MM/DD/YYYY, followed by HH:MM when the input had a
// time component. Unparseable input yields "".
func ToMMDDYYYY(v any) string {
	t, hasTime, ok := ParseDate(v)
	if !ok {
		return ""
	}
	if hasTime {
		return t.Format(displayDateTime)
	}
	return t.Format(displayDate)
}

// DateKey renders the calendar date of v as YYYY-MM-DD, or "" when v cannot
// be parsed.
func DateKey(v any) string {
	t, _, ok := ParseDate(v)
	if !ok {
		return ""
	}
	return t.Format(keyDate)
}

// UnixMilli returns v as milliseconds since the epoch.
func UnixMilli(v any) (int64, bool) {
	t, _, ok := ParseDate(v)
	if !ok {
		return 0, false
	}
	return t.UnixMilli(), true
}
