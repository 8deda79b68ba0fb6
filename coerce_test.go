// FILE: lixenwraith/params/coerce_test.go
package params

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBool(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"FALSE", false},
		{"false", false},
		{"False", false},
		{"NO", false},
		{"no", false},
		{"nO", false},
		{"0", false},
		{"TRUE", true},
		{"yes", true},
		{"1", true},
		{"", true},
		{"off", true},
		{" false", true},
		{"00", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseBool(tt.raw), "ParseBool(%q)", tt.raw)
	}

	t.Run("Absent", func(t *testing.T) {
		assert.False(t, ParseBoolPtr(nil))
		raw := "no"
		assert.False(t, ParseBoolPtr(&raw))
		raw = "anything"
		assert.True(t, ParseBoolPtr(&raw))
	})
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		raw  string
		want int64
	}{
		{"42", 42},
		{"-17", -17},
		{"+8", 8},
		{"  12", 12},
		{"12abc", 12},
		{"3.9", 3},
		{"007", 7},
		{"0", 0},
		{"abc", NaN},
		{"", NaN},
		{"-", NaN},
		{" ", NaN},
		{"x12", NaN},
		{"9223372036854775807", math.MaxInt64},
		{"99999999999999999999", math.MaxInt64},
		{"-99999999999999999999", -math.MaxInt64},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseInt(tt.raw), "ParseInt(%q)", tt.raw)
	}
}

func TestCoercers(t *testing.T) {
	t.Run("StringIsIdentity", func(t *testing.T) {
		for _, raw := range []string{"", "  padded ", "ünïcode", "42"} {
			assert.Equal(t, raw, ParseString(raw))
			assert.Equal(t, raw, coerceString(raw))
		}
	})

	t.Run("Typed", func(t *testing.T) {
		assert.Equal(t, int64(5), coerceInt("5"))
		assert.Equal(t, false, coerceBool("no"))
	})
}
