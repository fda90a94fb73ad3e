package money

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"12000", "$12,000"},
		{"12,000 USD", "$12,000"},
		{"$1234567", "$1,234,567"},
		{"950", "$950"},
		{"007", "$7"},
		{"0", "$0"},
		{"", ""},
		{"no digits here", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Format(tc.raw), "raw=%q", tc.raw)
	}
}

func TestFormatWith_Symbol(t *testing.T) {
	assert.Equal(t, "€24,000", FormatWith("€", "24000"))
	assert.Equal(t, "", FormatWith("€", "tbd"))
}

func TestRoundTrip(t *testing.T) {
	// Formatting then re-parsing the digits returns the original value.
	for _, v := range []int64{0, 1, 42, 999, 1000, 65536, 1234567, 100000000} {
		formatted := Format(fmt.Sprintf("%d", v))
		assert.Equal(t, v, Parse(formatted), "value=%d formatted=%q", v, formatted)
	}
}

func TestParse(t *testing.T) {
	assert.Equal(t, int64(12000), Parse("$12,000"))
	assert.Equal(t, int64(0), Parse("free"))
}

func TestFormatInt(t *testing.T) {
	assert.Equal(t, "$1,000", FormatInt("$", 1000))
	assert.Equal(t, "$0", FormatInt("$", -5), "negative amounts clamp to zero")
}
