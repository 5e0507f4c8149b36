package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ghuser/cryostore/services/storage/domain/models"
)

// fakeLookup serves a fixed set of locations keyed by level and code.
type fakeLookup struct {
	locations []*models.Location
	err       error
}

func (f *fakeLookup) FindByLevelAndCode(_ context.Context, level models.Level, code string) ([]*models.Location, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*models.Location
	for _, l := range f.locations {
		if l.Level == level && l.Code == code {
			out = append(out, l)
		}
	}
	return out, nil
}

func ptr(id int64) *int64 { return &id }

// testHierarchy builds Main Lab (RM1) > Freezer 2 (FRZ2) > Shelf 3 (S3) >
// Rack 4 (R4) > Box 5 (B5), all active.
func testHierarchy() []*models.Location {
	return []*models.Location{
		{ID: 1, Level: models.LevelRoom, Code: "RM1", Label: "Main Lab", Active: true},
		{ID: 2, Level: models.LevelDevice, Code: "FRZ2", Label: "Freezer 2", Active: true, ParentID: ptr(1)},
		{ID: 3, Level: models.LevelShelf, Code: "S3", Label: "Shelf 3", Active: true, ParentID: ptr(2)},
		{ID: 4, Level: models.LevelRack, Code: "R4", Label: "Rack 4", Active: true, ParentID: ptr(3)},
		{ID: 5, Level: models.LevelBox, Code: "B5", Label: "Box 5", Active: true, ParentID: ptr(4)},
	}
}

func TestResolve_FullValidBarcode(t *testing.T) {
	r := NewBarcodeResolver(&fakeLookup{locations: testHierarchy()})

	v, err := r.Resolve(context.Background(), "RM1-FRZ2-S3-R4-B5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.Valid {
		t.Fatalf("expected valid resolution, got failure at %s: %s", v.FailedStep, v.ErrorMessage)
	}
	if len(v.ValidComponents) != 5 {
		t.Fatalf("expected 5 resolved components, got %d", len(v.ValidComponents))
	}
	if c := v.ValidComponents[models.LevelBox]; c.ID != 5 || c.Name != "Box 5" {
		t.Errorf("box component = %+v, want ID 5 / Box 5", c)
	}
	if v.FirstMissingLevel != "" {
		t.Errorf("FirstMissingLevel = %q on a fully valid barcode", v.FirstMissingLevel)
	}
}

func TestResolve_PartialBarcodeIsValid(t *testing.T) {
	r := NewBarcodeResolver(&fakeLookup{locations: testHierarchy()})

	v, err := r.Resolve(context.Background(), "RM1-FRZ2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.Valid {
		t.Fatalf("two-level barcode should resolve: %s", v.ErrorMessage)
	}
	if len(v.ValidComponents) != 2 {
		t.Fatalf("expected 2 components, got %d", len(v.ValidComponents))
	}
}

func TestResolve_FormatFailure(t *testing.T) {
	r := NewBarcodeResolver(&fakeLookup{})

	v, err := r.Resolve(context.Background(), "RM1_FRZ2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Valid {
		t.Fatal("expected format failure")
	}
	if v.FailedStep != models.StepFormat {
		t.Errorf("FailedStep = %q, want format", v.FailedStep)
	}
	if !strings.HasPrefix(v.ErrorMessage, "Scanned code: RM1_FRZ2") {
		t.Errorf("error message %q does not start with the scanned code", v.ErrorMessage)
	}
}

func TestResolve_MissingLevelStopsDescent(t *testing.T) {
	r := NewBarcodeResolver(&fakeLookup{locations: testHierarchy()})

	v, err := r.Resolve(context.Background(), "RM1-FRZ2-S9-R4-B5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Valid {
		t.Fatal("expected existence failure")
	}
	if v.FailedStep != models.StepExistence {
		t.Errorf("FailedStep = %q, want existence", v.FailedStep)
	}
	if v.FirstMissingLevel != models.LevelShelf {
		t.Errorf("FirstMissingLevel = %q, want shelf", v.FirstMissingLevel)
	}
	if !v.HasAdditionalInvalidLevels {
		t.Error("HasAdditionalInvalidLevels should be true: rack and box were never checked")
	}
	// Room and device resolved before the failure.
	if len(v.ValidComponents) != 2 {
		t.Errorf("expected 2 resolved components above the failure, got %d", len(v.ValidComponents))
	}
	// The message names the resolved chain and the missing shelf.
	if !strings.Contains(v.ErrorMessage, "Main Lab > Freezer 2") {
		t.Errorf("error message %q missing resolved path", v.ErrorMessage)
	}
	if !strings.Contains(v.ErrorMessage, `no shelf found with code "S9"`) {
		t.Errorf("error message %q missing failure detail", v.ErrorMessage)
	}
}

func TestResolve_MissingLastLevelHasNoAdditionalLevels(t *testing.T) {
	r := NewBarcodeResolver(&fakeLookup{locations: testHierarchy()})

	v, err := r.Resolve(context.Background(), "RM1-FRZ2-S3-R4-B9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Valid {
		t.Fatal("expected existence failure at box")
	}
	if v.FirstMissingLevel != models.LevelBox {
		t.Errorf("FirstMissingLevel = %q, want box", v.FirstMissingLevel)
	}
	if v.HasAdditionalInvalidLevels {
		t.Error("nothing is encoded below box, HasAdditionalInvalidLevels must be false")
	}
	// The box level prints as "position" on scanned codes.
	if !strings.Contains(v.ErrorMessage, "no position found") {
		t.Errorf("error message %q should name the level as position", v.ErrorMessage)
	}
}

func TestResolve_HierarchyMismatch(t *testing.T) {
	// S3 exists, but under a different device than the one in the barcode.
	locs := testHierarchy()
	locs = append(locs,
		&models.Location{ID: 10, Level: models.LevelDevice, Code: "FRZ9", Label: "Freezer 9", Active: true, ParentID: ptr(1)},
	)
	r := NewBarcodeResolver(&fakeLookup{locations: locs})

	v, err := r.Resolve(context.Background(), "RM1-FRZ9-S3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Valid {
		t.Fatal("expected hierarchy failure")
	}
	if v.FailedStep != models.StepHierarchy {
		t.Errorf("FailedStep = %q, want hierarchy", v.FailedStep)
	}
	if v.FirstMissingLevel != models.LevelShelf {
		t.Errorf("FirstMissingLevel = %q, want shelf", v.FirstMissingLevel)
	}
	if !strings.Contains(v.ErrorMessage, `shelf "S3" is not inside device "Freezer 9"`) {
		t.Errorf("error message %q missing hierarchy detail", v.ErrorMessage)
	}
}

func TestResolve_SameCodeDifferentParents(t *testing.T) {
	// Two shelves share code S1 under different devices; the resolver must
	// pick the one inside the already-resolved device.
	locs := []*models.Location{
		{ID: 1, Level: models.LevelRoom, Code: "RM1", Label: "Main Lab", Active: true},
		{ID: 2, Level: models.LevelDevice, Code: "FRZ1", Label: "Freezer 1", Active: true, ParentID: ptr(1)},
		{ID: 3, Level: models.LevelDevice, Code: "FRZ2", Label: "Freezer 2", Active: true, ParentID: ptr(1)},
		{ID: 4, Level: models.LevelShelf, Code: "S1", Label: "F1 Shelf 1", Active: true, ParentID: ptr(2)},
		{ID: 5, Level: models.LevelShelf, Code: "S1", Label: "F2 Shelf 1", Active: true, ParentID: ptr(3)},
	}
	r := NewBarcodeResolver(&fakeLookup{locations: locs})

	v, err := r.Resolve(context.Background(), "RM1-FRZ2-S1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.Valid {
		t.Fatalf("expected valid resolution: %s", v.ErrorMessage)
	}
	if c := v.ValidComponents[models.LevelShelf]; c.ID != 5 {
		t.Errorf("resolved shelf ID = %d, want 5 (the one under Freezer 2)", c.ID)
	}
}

func TestResolve_InactiveNodeFailsButDescends(t *testing.T) {
	locs := testHierarchy()
	locs[2].Active = false // Shelf 3

	r := NewBarcodeResolver(&fakeLookup{locations: locs})

	v, err := r.Resolve(context.Background(), "RM1-FRZ2-S3-R4-B5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Valid {
		t.Fatal("expected activity failure")
	}
	if v.FailedStep != models.StepActivity {
		t.Errorf("FailedStep = %q, want activity", v.FailedStep)
	}
	// An inactive node still anchors descent: the rack and box below it
	// resolve, and nothing is reported missing.
	if len(v.ValidComponents) != 5 {
		t.Errorf("expected all 5 components resolved, got %d", len(v.ValidComponents))
	}
	if v.FirstMissingLevel != "" {
		t.Errorf("FirstMissingLevel = %q; inactive is found, not missing", v.FirstMissingLevel)
	}
	if !strings.Contains(v.ErrorMessage, `shelf "Shelf 3" is inactive`) {
		t.Errorf("error message %q missing activity detail", v.ErrorMessage)
	}
}

func TestResolve_OnlyFirstFailureReported(t *testing.T) {
	// Inactive device and inactive shelf: the device failure wins.
	locs := testHierarchy()
	locs[1].Active = false
	locs[2].Active = false

	r := NewBarcodeResolver(&fakeLookup{locations: locs})

	v, err := r.Resolve(context.Background(), "RM1-FRZ2-S3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Valid {
		t.Fatal("expected failure")
	}
	if !strings.Contains(v.ErrorMessage, `device "Freezer 2" is inactive`) {
		t.Errorf("error message %q should carry the first failure only", v.ErrorMessage)
	}
	if strings.Contains(v.ErrorMessage, `"Shelf 3" is inactive`) {
		t.Errorf("error message %q leaks a later failure", v.ErrorMessage)
	}
}

func TestResolve_LookupErrorPropagates(t *testing.T) {
	wantErr := errors.New("connection refused")
	r := NewBarcodeResolver(&fakeLookup{err: wantErr})

	_, err := r.Resolve(context.Background(), "RM1-FRZ2")
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped lookup error, got %v", err)
	}
}
