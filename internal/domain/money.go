package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidPrice is returned for price input that is not a
// non-negative decimal with at most two fraction digits.
var ErrInvalidPrice = errors.New("invalid price")

// ParsePrice converts a decimal form value like "9.99" into cents.
// Negative prices are rejected; zero is accepted.
func ParsePrice(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return 0, ErrInvalidPrice
	}

	whole := s
	frac := ""
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		whole, frac = s[:idx], s[idx+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, ErrInvalidPrice
	}
	for len(frac) < 2 {
		frac += "0"
	}

	units, err := strconv.ParseUint(whole, 10, 63)
	if err != nil {
		return 0, ErrInvalidPrice
	}
	cents, err := strconv.ParseUint(frac, 10, 63)
	if err != nil {
		return 0, ErrInvalidPrice
	}
	return int64(units)*100 + int64(cents), nil
}

// FormatCents renders cents as a plain decimal string, e.g. 999 -> "9.99".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
