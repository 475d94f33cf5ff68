package core

import (
	"regexp"
	"strings"
)

// gstinPattern is the registration number layout mandated by the GST
// portal: 2-digit state code, 10-character PAN, entity number, the
// literal 'Z', and a check character. The pattern is an interoperability
// contract with existing records and must not be loosened.
var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z]{1}[1-9A-Z]{1}Z[0-9A-Z]{1}$`)

// NormalizeGSTIN upper-cases and trims a raw GSTIN the way the records
// store it.
func NormalizeGSTIN(gstin string) string {
	return strings.ToUpper(strings.TrimSpace(gstin))
}

// ValidGSTIN reports whether the (normalized) GSTIN matches the mandated
// pattern.
func ValidGSTIN(gstin string) bool {
	return gstinPattern.MatchString(gstin)
}
