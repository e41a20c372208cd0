// Package coerce converts loosely typed form-submission values into the
// concrete types dynamic fields expect. Form parsers hand everything over as
// strings; coercion is deterministic and never guesses.
package coerce

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Number interprets v as a float64. Strings are parsed with strconv after
// trimming; empty strings do not coerce.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	}
	return 0, false
}

// Bool interprets v as a bool. Accepted string spellings are "true", "false"
// and "on" (the value HTML checkboxes submit when ticked). Anything else does
// not coerce.
func Bool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch strings.TrimSpace(b) {
		case "true", "on":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}

// String interprets v as a string. Only actual strings coerce; numbers and
// booleans are not stringified implicitly.
func String(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// Empty reports whether v counts as "no value entered": nil or a string of
// only whitespace. A false boolean is a value, not an absence.
func Empty(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}
