// Package coerce converts raw Plex scalars into canonical Go types.
//
// Plex encodes numbers, booleans and timestamps inconsistently (a rating key
// is a string, a duration is a number, a flag may be 1, "1" or true). Every
// function here is total: absent or unparsable input yields the absent value
// of the result type (nil, "" or 0) and never panics, so a missing upstream
// field propagates through a transform chain as a well-typed empty value.
package coerce

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/plexkit/internal/accessor"
)

// dateLayouts are tried in order for string dates.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Number parses v as a base-10 integer the way parseInt does: leading
// whitespace and sign are accepted, parsing stops at the first non-digit and
// fractional numbers truncate.
func Number(v accessor.Value) *int64 {
	n, ok := parseInt(v.Raw())
	if !ok {
		return nil
	}
	return &n
}

// ID is Number with 0 for absent. Rating keys and section keys are positive,
// so 0 never collides with a real identity.
func ID(v accessor.Value) int64 {
	n, _ := parseInt(v.Raw())
	return n
}

// Float parses v as a floating point number.
func Float(v accessor.Value) *float64 {
	switch raw := v.Raw().(type) {
	case float64:
		return &raw
	case json.Number:
		f, err := raw.Float64()
		if err != nil {
			return nil
		}
		return &f
	case int:
		f := float64(raw)
		return &f
	case int64:
		f := float64(raw)
		return &f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}

// Boolean reports true for 1, "1", "true" and true. Any other present value
// is false; an absent value is nil.
func Boolean(v accessor.Value) *bool {
	raw := v.Raw()
	if raw == nil {
		return nil
	}
	b := isTrue(raw)
	return &b
}

// Flag is Boolean with false for absent.
func Flag(v accessor.Value) bool {
	return isTrue(v.Raw())
}

func isTrue(raw any) bool {
	switch b := raw.(type) {
	case bool:
		return b
	case string:
		return b == "1" || b == "true"
	case float64:
		return b == 1
	case json.Number:
		return b.String() == "1"
	case int:
		return b == 1
	case int64:
		return b == 1
	default:
		return false
	}
}

// Timestamp converts epoch seconds into epoch milliseconds.
func Timestamp(v accessor.Value) *int64 {
	n, ok := parseInt(v.Raw())
	if !ok {
		return nil
	}
	ms := n * 1000
	return &ms
}

// Date converts epoch milliseconds or a date string into a time in UTC.
func Date(v accessor.Value) *time.Time {
	raw := v.Raw()
	if s, ok := raw.(string); ok {
		return parseDate(s)
	}
	n, ok := parseInt(raw)
	if !ok {
		return nil
	}
	t := time.UnixMilli(n).UTC()
	return &t
}

// DateFromSeconds converts epoch seconds into a time in UTC.
func DateFromSeconds(v accessor.Value) *time.Time {
	ms := Timestamp(v)
	if ms == nil {
		return nil
	}
	t := time.UnixMilli(*ms).UTC()
	return &t
}

// String returns string values unchanged and formats numbers in base 10.
func String(v accessor.Value) string {
	switch raw := v.Raw().(type) {
	case string:
		return raw
	case json.Number:
		return raw.String()
	case float64:
		return strconv.FormatFloat(raw, 'f', -1, 64)
	case int:
		return strconv.Itoa(raw)
	case int64:
		return strconv.FormatInt(raw, 10)
	case bool:
		return strconv.FormatBool(raw)
	default:
		return ""
	}
}

// Strings splits a comma separated string. Anything else yields an empty list.
func Strings(v accessor.Value) []string {
	s, ok := v.Raw().(string)
	if !ok || s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}

func parseInt(raw any) (int64, bool) {
	switch n := raw.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	case json.Number:
		return parseIntPrefix(n.String())
	case string:
		return parseIntPrefix(n)
	default:
		return 0, false
	}
}

// parseIntPrefix reads an optional sign and the leading run of digits.
func parseIntPrefix(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
