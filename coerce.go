// FILE: lixenwraith/params/coerce.go
package params

import (
	"math"
	"strings"
)

// Coercer converts a raw parameter value into a typed value.
// Coercers are total: malformed input yields a placeholder, never an error.
type Coercer func(raw string) any

// NaN is returned by ParseInt when the input has no leading digits.
const NaN int64 = math.MinInt64

// ParseString returns the raw value unchanged.
func ParseString(raw string) string {
	return raw
}

// ParseInt reads a base-10 integer from the start of raw. Leading whitespace
// and a single sign are accepted; parsing stops at the first non-digit.
// Input without any leading digit yields NaN. Values beyond the int64 range
// saturate at ±math.MaxInt64.
func ParseInt(raw string) int64 {
	s := strings.TrimLeft(raw, " \t\n\r\v\f")

	negative := false
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	var n uint64
	digits := 0
	overflow := false
	for ; digits < len(s); digits++ {
		c := s[digits]
		if c < '0' || c > '9' {
			break
		}
		if overflow {
			continue
		}
		d := uint64(c - '0')
		if n > (math.MaxInt64-d)/10 {
			overflow = true
			continue
		}
		n = n*10 + d
	}

	if digits == 0 {
		return NaN
	}
	if overflow {
		n = math.MaxInt64
	}
	if negative {
		return -int64(n)
	}
	return int64(n)
}

// ParseBool maps "false", "no" and "0" (any case) to false and every other
// string, including the empty string, to true.
func ParseBool(raw string) bool {
	switch strings.ToUpper(raw) {
	case "FALSE", "NO", "0":
		return false
	}
	return true
}

// ParseBoolPtr is ParseBool with an absent value mapping to false.
func ParseBoolPtr(raw *string) bool {
	if raw == nil {
		return false
	}
	return ParseBool(*raw)
}

func coerceString(raw string) any { return ParseString(raw) }
func coerceInt(raw string) any    { return ParseInt(raw) }
func coerceBool(raw string) any   { return ParseBool(raw) }
