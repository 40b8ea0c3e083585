package domain

import (
	"regexp"
	"strings"
)

var (
	pincodePattern = regexp.MustCompile(`^\d{6}$`)
	whitespace     = regexp.MustCompile(`\s+`)
)

// NormalizePincode trims the input and strips any internal whitespace, so
// "440 024 " and "440024" address the same cache key.
func NormalizePincode(raw string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(raw), "")
}

// ValidPincode reports whether the normalized input is a 6-digit Indian
// postal code. Validation happens before any cache or network interaction.
func ValidPincode(pincode string) bool {
	return pincodePattern.MatchString(pincode)
}
