package usecase

import (
	"strconv"
	"strings"
)

// normalizeString is the total coercion run before validation: a string
// passes through, anything else (numbers, null, objects) becomes the empty
// string. Wrong types are never rejected, they just fail the emptiness
// checks downstream.
func normalizeString(v any) string {
	s, _ := v.(string)
	return s
}

// normalizeNumber coerces bid item quantities and prices: JSON numbers pass
// through, numeric strings are parsed, anything else is 0.
func normalizeNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f
		}
	}
	return 0
}
