// Package compiler turns loosely-typed form submissions into canonical
// workflow and block records.
package compiler

import (
	"math"
	"strconv"
)

// Number parses raw as a float. Unparseable, absent or non-finite input
// yields 0 so a bad coordinate never reaches the projections as NaN.
func Number(raw string) float64 {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Bool resolves the literal tokens "true" and "false". Anything else,
// including absence, resolves to the field's declared default.
func Bool(raw string, def bool) bool {
	switch raw {
	case "true":
		return true
	case "false":
		return false
	default:
		return def
	}
}

// OptionalString maps an absent value to nil, never to the empty string, so
// the SQL projection can emit NULL instead of an empty literal.
func OptionalString(raw string) *string {
	if raw == "" {
		return nil
	}
	return &raw
}

// StringOr returns raw, or def when raw is absent.
func StringOr(raw, def string) string {
	if raw == "" {
		return def
	}
	return raw
}
