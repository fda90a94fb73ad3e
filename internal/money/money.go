// Package money normalizes free-text currency input to canonical display
// strings. Amounts are whole currency units; anything that is not a digit
// is ignored on the way in.
package money

import (
	"strconv"
	"strings"
)

// DefaultSymbol is used when no currency symbol is configured.
const DefaultSymbol = "$"

// Digits strips every non-digit character from s.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Parse returns the integer value of the digits in s, or 0 when s contains
// no digits.
func Parse(s string) int64 {
	digits := Digits(s)
	if digits == "" {
		return 0
	}
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		// Overflow on absurdly long digit strings; saturate rather than fail.
		return 1<<63 - 1
	}
	return v
}

// Format normalizes raw to a canonical currency string using DefaultSymbol.
// Input with no digits degrades to the empty string, never an error.
func Format(raw string) string {
	return FormatWith(DefaultSymbol, raw)
}

// FormatWith normalizes raw to a canonical currency string with the given
// symbol (e.g. "12000 USD" -> "$12,000").
func FormatWith(symbol, raw string) string {
	if Digits(raw) == "" {
		return ""
	}
	return FormatInt(symbol, Parse(raw))
}

// FormatInt renders a non-negative integer amount with the given symbol and
// thousands separators.
func FormatInt(symbol string, v int64) string {
	if v < 0 {
		v = 0
	}
	s := strconv.FormatInt(v, 10)
	if len(s) <= 3 {
		return symbol + s
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return symbol + b.String()
}
