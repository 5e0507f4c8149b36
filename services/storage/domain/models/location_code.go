package models

import (
	"fmt"
	"regexp"
	"strings"
)

// LocationCode is a value object representing a valid storage location code.
// Codes are at most 10 characters, uppercase alphanumeric plus hyphen and
// underscore, and must start with a letter or digit. They double as barcode
// segments, so the constraints mirror what a scanner can produce.
type LocationCode string

const maxLocationCodeLength = 10

var locationCodePattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9_-]*$`)

// NewLocationCode normalizes s to uppercase and validates it as a location
// code, or returns an error describing the violated constraint.
func NewLocationCode(s string) (LocationCode, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	if code == "" {
		return "", fmt.Errorf("location code must not be empty")
	}
	if len(code) > maxLocationCodeLength {
		return "", fmt.Errorf("location code must not exceed %d characters", maxLocationCodeLength)
	}
	if !locationCodePattern.MatchString(code) {
		return "", fmt.Errorf("location code must start with a letter or digit and contain only letters, digits, hyphen, or underscore")
	}
	return LocationCode(code), nil
}

// String returns the underlying string value.
func (c LocationCode) String() string {
	return string(c)
}
