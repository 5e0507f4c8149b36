package models

// ParsedBarcode is the structural parse result for a scanned barcode string.
// Format problems are reported here as data, never as errors, so callers can
// render them directly.
type ParsedBarcode struct {
	Valid      bool
	LevelCodes []string // one code per hierarchy level, room first
	Error      string   // empty when Valid
}

// BarcodeType classifies a scanned string before full resolution runs.
type BarcodeType string

const (
	BarcodeTypeLocation BarcodeType = "location"
	BarcodeTypeSample   BarcodeType = "sample"
	BarcodeTypeUnknown  BarcodeType = "unknown"
)

// ValidationStep names the resolution pipeline step that produced a failure.
type ValidationStep string

const (
	StepFormat    ValidationStep = "format"
	StepExistence ValidationStep = "existence"
	StepHierarchy ValidationStep = "hierarchy"
	StepActivity  ValidationStep = "activity"
	// StepConflict is reserved: occupancy conflicts are checked at assignment
	// time, not during barcode resolution.
	StepConflict ValidationStep = "conflict"
)

// ResolvedComponent is one successfully resolved hierarchy level, carrying
// just enough to pre-fill a location form.
type ResolvedComponent struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Code  string `json:"code"`
}

// BarcodeValidation is the full outcome of the 5-step resolution pipeline.
//
// Only the first failure across all levels is recorded in FailedStep and
// ErrorMessage. FirstMissingLevel separately records the first level that was
// nonexistent or hierarchy-mismatched; an inactive-but-found level is a
// failure but never "missing". HasAdditionalInvalidLevels is true when the
// barcode encodes levels deeper than FirstMissingLevel that were therefore
// never validated.
type BarcodeValidation struct {
	Valid                      bool
	FailedStep                 ValidationStep
	ErrorMessage               string
	ValidComponents            map[Level]ResolvedComponent
	FirstMissingLevel          Level // empty when every encoded level was found
	HasAdditionalInvalidLevels bool
}
