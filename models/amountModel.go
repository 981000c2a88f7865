package models

import (
	"strconv"
	"strings"
)

// ParseAmount parses a decimal-as-text amount from the store. Amounts are
// serialized as strings on the wire and re-parsed on every read; missing or
// malformed text is 0 rather than an error.
func ParseAmount(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// FormatAmount serializes an amount with two decimal places, the store's
// decimal-as-text contract.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
