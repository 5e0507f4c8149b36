// Package services contains stateless domain services for the storage
// bounded context: barcode parsing and resolution, and capacity calculation.
// Domain services operate purely on domain types and have zero external
// dependencies beyond stdlib and the domain layer.
package services

import (
	"regexp"
	"strings"

	"github.com/ghuser/cryostore/services/storage/domain/models"
)

// BarcodeDelimiter is the only segment separator a location barcode may use.
const BarcodeDelimiter = "-"

const (
	minBarcodeLevels = 2
	maxBarcodeLevels = 5
)

// forbiddenDelimiters invalidate the whole barcode wherever they appear.
const forbiddenDelimiters = "_./"

const (
	errBarcodeEmpty      = "barcode is empty"
	errBarcodeDelimiter  = "barcode must use hyphen as the only delimiter"
	errBarcodeLevelCount = "barcode must contain 2 to 5 non-empty segments"
)

// samplePatterns guess whether a scanned string is a specimen accession
// number rather than a location barcode. These are heuristics carried over
// from lab labelling conventions, not a contract: two-digit year prefix plus
// sequence, site-code-year-sequence, and bare digit runs.
var samplePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{2}-\d{4,}$`),
	regexp.MustCompile(`^[A-Z]{2,4}-\d{4}-\d{1,6}$`),
	regexp.MustCompile(`^\d{6,}$`),
}

// ParseBarcode splits a scanned string into per-level codes. Rules: the
// delimiter is the hyphen only (underscore, dot, and slash anywhere in the
// string invalidate it), and splitting must yield 2 to 5 non-empty segments.
// Violations are reported in the result, never as an error.
func ParseBarcode(text string) models.ParsedBarcode {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return models.ParsedBarcode{Error: errBarcodeEmpty}
	}
	if strings.ContainsAny(trimmed, forbiddenDelimiters) {
		return models.ParsedBarcode{Error: errBarcodeDelimiter}
	}

	segments := strings.Split(trimmed, BarcodeDelimiter)
	if len(segments) < minBarcodeLevels || len(segments) > maxBarcodeLevels {
		return models.ParsedBarcode{Error: errBarcodeLevelCount}
	}
	for _, s := range segments {
		if s == "" {
			return models.ParsedBarcode{Error: errBarcodeLevelCount}
		}
	}

	return models.ParsedBarcode{Valid: true, LevelCodes: segments}
}

// ValidateBarcodeFormat is the side-effect-free predicate form of ParseBarcode.
func ValidateBarcodeFormat(text string) bool {
	return ParseBarcode(text).Valid
}

// ExtractBarcodeComponents returns the segment list for a valid barcode, or
// an empty list for invalid input. It never fails.
func ExtractBarcodeComponents(text string) []string {
	parsed := ParseBarcode(text)
	if !parsed.Valid {
		return []string{}
	}
	return parsed.LevelCodes
}

// DetectBarcodeType classifies a scanned string before full resolution runs.
// Accession-like strings are classified as sample first so evidently
// specimen barcodes short-circuit location validation; strings that parse as
// location barcodes are classified location; everything else is unknown.
func DetectBarcodeType(text string) models.BarcodeType {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return models.BarcodeTypeUnknown
	}
	for _, p := range samplePatterns {
		if p.MatchString(trimmed) {
			return models.BarcodeTypeSample
		}
	}
	if ValidateBarcodeFormat(trimmed) {
		return models.BarcodeTypeLocation
	}
	return models.BarcodeTypeUnknown
}
