// Package fields resolves logical attributes out of loosely-typed upstream
// records where the same attribute shows up under different key names.
package fields

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Aliases is an ordered list of key names for one logical attribute.
// Earlier keys take precedence.
type Aliases []string

// String returns the first alias whose value is a non-empty string (after
// trimming) or a number, formatted as text. Missing, null and other values
// fall through to the next alias.
func (a Aliases) String(rec map[string]any) string {
	for _, key := range a {
		if s, ok := Text(rec[key]); ok && s != "" {
			return s
		}
	}
	return ""
}

// Number returns the first alias holding a numeric value.
func (a Aliases) Number(rec map[string]any) (float64, bool) {
	for _, key := range a {
		switch v := rec[key].(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		case int64:
			return float64(v), true
		case json.Number:
			if f, err := v.Float64(); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

// Text converts a scalar JSON value into trimmed text.
func Text(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case json.Number:
		return val.String(), true
	}
	return "", false
}
