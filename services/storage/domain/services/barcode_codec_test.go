package services

import (
	"strings"
	"testing"

	"github.com/ghuser/cryostore/services/storage/domain/models"
)

func TestParseBarcode(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantValid bool
		wantCodes []string
	}{
		{"full five levels", "RM1-FRZ2-S3-R4-B5", true, []string{"RM1", "FRZ2", "S3", "R4", "B5"}},
		{"two levels", "RM1-FRZ2", true, []string{"RM1", "FRZ2"}},
		{"three levels", "RM1-FRZ2-S3", true, []string{"RM1", "FRZ2", "S3"}},
		{"leading and trailing whitespace", "  RM1-FRZ2  ", true, []string{"RM1", "FRZ2"}},
		{"empty string", "", false, nil},
		{"whitespace only", "   ", false, nil},
		{"single segment", "RM1", false, nil},
		{"six segments", "A-B-C-D-E-F", false, nil},
		{"empty segment in middle", "RM1--S3", false, nil},
		{"trailing delimiter", "RM1-FRZ2-", false, nil},
		{"underscore delimiter", "RM1_FRZ2", false, nil},
		{"dot delimiter", "RM1.FRZ2", false, nil},
		{"slash delimiter", "RM1/FRZ2", false, nil},
		{"underscore anywhere invalidates", "RM1-FR_Z2-S3", false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseBarcode(tt.text)
			if got.Valid != tt.wantValid {
				t.Fatalf("ParseBarcode(%q).Valid = %v, want %v (error: %s)",
					tt.text, got.Valid, tt.wantValid, got.Error)
			}
			if tt.wantValid {
				if got.Error != "" {
					t.Errorf("valid parse carries error %q", got.Error)
				}
				if len(got.LevelCodes) != len(tt.wantCodes) {
					t.Fatalf("got %d codes, want %d", len(got.LevelCodes), len(tt.wantCodes))
				}
				for i, c := range tt.wantCodes {
					if got.LevelCodes[i] != c {
						t.Errorf("code[%d] = %q, want %q", i, got.LevelCodes[i], c)
					}
				}
			} else if got.Error == "" {
				t.Error("invalid parse has empty error message")
			}
		})
	}
}

func TestExtractBarcodeComponents_InvalidInputIsEmptyNotNil(t *testing.T) {
	got := ExtractBarcodeComponents("not a barcode")
	if got == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(got) != 0 {
		t.Fatalf("expected no components, got %v", got)
	}
}

func TestDetectBarcodeType(t *testing.T) {
	tests := []struct {
		name string
		text string
		want models.BarcodeType
	}{
		{"location barcode", "RM1-FRZ2-S3", models.BarcodeTypeLocation},
		{"full location barcode", "RM1-FRZ2-S3-R4-B5", models.BarcodeTypeLocation},
		{"year prefix accession", "24-10042", models.BarcodeTypeSample},
		{"site code accession", "ACC-2024-0042", models.BarcodeTypeSample},
		{"bare digit run", "1000042", models.BarcodeTypeSample},
		{"empty", "", models.BarcodeTypeUnknown},
		{"single segment", "RM1", models.BarcodeTypeUnknown},
		{"underscore delimited", "RM1_FRZ2", models.BarcodeTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectBarcodeType(tt.text); got != tt.want {
				t.Errorf("DetectBarcodeType(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

// Sample patterns are checked before the location format, so a string that
// would split into valid segments but looks like an accession number is
// classified as a sample.
func TestDetectBarcodeType_SamplePatternWinsOverLocationFormat(t *testing.T) {
	// "24-10042" splits into two non-empty hyphen segments, a valid location
	// shape, but matches the year-prefix accession pattern.
	text := "24-10042"
	if !ValidateBarcodeFormat(text) {
		t.Fatalf("precondition failed: %q should parse as a location barcode", text)
	}
	if got := DetectBarcodeType(text); got != models.BarcodeTypeSample {
		t.Errorf("DetectBarcodeType(%q) = %q, want sample", text, got)
	}
}

func TestParseBarcode_ErrorMentionsDelimiter(t *testing.T) {
	got := ParseBarcode("RM1_FRZ2")
	if got.Valid {
		t.Fatal("expected invalid parse")
	}
	if !strings.Contains(got.Error, "hyphen") {
		t.Errorf("error %q does not mention the required delimiter", got.Error)
	}
}
