package transform

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	integerText = regexp.MustCompile(`^-?\d+$`)
	decimalText = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
)

// Normalize coerces an exported cell value into its semantic type.
//
// Non-string values (booleans, numbers, null, containers) are returned
// unchanged. The literals "TRUE", "FALSE" and "null" become true, false and
// nil. Any other string is trimmed: blank strings are returned untrimmed,
// digit runs with an optional minus become int64, other decimal notation
// (including a leading "+") becomes float64, and everything else is
// returned as the original string. Normalize never fails and is idempotent.
func Normalize(raw any) any {
	s, ok := raw.(string)
	if !ok {
		return raw
	}
	switch s {
	case "TRUE":
		return true
	case "FALSE":
		return false
	case "null":
		return nil
	}

	t := strings.TrimSpace(s)
	if t == "" {
		return s
	}
	if integerText.MatchString(t) {
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n
		}
	}
	if decimalText.MatchString(t) {
		// Out of range values come back as ±Inf with an error; keep the text.
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return f
		}
	}
	return s
}

// isBlank reports whether a normalized value is null or whitespace only.
func isBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}
