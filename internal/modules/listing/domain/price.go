package domain

import (
	"strconv"
	"strings"
)

// ParsePrice converts a formatted price string ("$450,000") to its numeric
// value by stripping every character that is not a digit or a decimal point.
// A string with no usable digits, or one that strips down to something
// ParseFloat rejects, yields ErrMalformedPrice.
func ParsePrice(s string) (float64, error) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	stripped := b.String()
	if stripped == "" {
		return 0, ErrMalformedPrice
	}
	v, err := strconv.ParseFloat(stripped, 64)
	if err != nil {
		return 0, ErrMalformedPrice
	}
	return v, nil
}
