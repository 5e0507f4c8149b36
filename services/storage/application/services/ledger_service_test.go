package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/ghuser/cryostore/pkg/config"
	"github.com/ghuser/cryostore/pkg/logger"
	storagedomain "github.com/ghuser/cryostore/services/storage/domain"
	"github.com/ghuser/cryostore/services/storage/domain/models"
)

func newLedgerFixture() (*LedgerService, *memStore) {
	m := newMemStore()
	seedHierarchy(m)
	log := logger.New(&config.Config{LogLevel: "error"})
	return NewLedgerService(memSamples{m}, m, m, m, nil, log), m
}

func TestAssign_FirstPlacement(t *testing.T) {
	svc, m := newLedgerFixture()
	m.addSample(&models.SampleItem{ID: 100, AccessionNumber: "ACC-2024-0042"})

	res, err := svc.Assign(context.Background(), AssignInput{
		SampleRef:    "ACC-2024-0042",
		LocationID:   5,
		LocationType: "box",
		Coordinate:   "A3",
		Actor:        "jdoe",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Main Lab > Freezer 2 > Shelf 3 > Rack 4 > Box 5 > A3"
	if res.Path != want {
		t.Errorf("path = %q, want %q", res.Path, want)
	}
	if res.Assignment.Location == nil || res.Assignment.Location.ID != 5 {
		t.Errorf("assignment location = %+v, want box 5", res.Assignment.Location)
	}
	if res.Assignment.AssignedBy != "jdoe" {
		t.Errorf("assigned by = %q", res.Assignment.AssignedBy)
	}

	mvs := m.movements
	if len(mvs) != 1 {
		t.Fatalf("got %d movements, want exactly 1", len(mvs))
	}
	if mvs[0].Previous != nil {
		t.Error("first assignment must have a nil previous stamp")
	}
	if mvs[0].New == nil || mvs[0].New.Ref.ID != 5 || mvs[0].New.Coordinate != "A3" {
		t.Errorf("new stamp = %+v, want box 5 / A3", mvs[0].New)
	}
}

func TestAssign_AlreadyAssignedNamesCurrentLocation(t *testing.T) {
	svc, m := newLedgerFixture()
	m.addSample(&models.SampleItem{ID: 100, AccessionNumber: "ACC-2024-0042"})
	m.assignSample(100, models.LocationRef{Type: models.LocationTypeBox, ID: 5}, "A3")

	_, err := svc.Assign(context.Background(), AssignInput{
		SampleRef:    "100",
		LocationID:   6,
		LocationType: "box",
		Actor:        "jdoe",
	})
	if !errors.Is(err, storagedomain.ErrAlreadyAssigned) {
		t.Fatalf("error = %v, want ErrAlreadyAssigned", err)
	}
	if !strings.Contains(err.Error(), "Box 5 > A3") {
		t.Errorf("error %q should name the current location", err)
	}
	if !strings.Contains(err.Error(), "move it instead") {
		t.Errorf("error %q should point the caller at the move operation", err)
	}
	if len(m.movements) != 0 {
		t.Error("a rejected assignment must write no movement")
	}
}

func TestAssign_InputValidation(t *testing.T) {
	tests := []struct {
		name    string
		in      AssignInput
		wantErr error
	}{
		{"missing actor", AssignInput{SampleRef: "100", LocationID: 5, LocationType: "box"}, storagedomain.ErrInvalidInput},
		{"missing location id", AssignInput{SampleRef: "100", LocationType: "box", Actor: "jdoe"}, storagedomain.ErrInvalidInput},
		{"room target", AssignInput{SampleRef: "100", LocationID: 1, LocationType: "room", Actor: "jdoe"}, storagedomain.ErrUnsupportedLocationType},
		{"oversized coordinate", AssignInput{SampleRef: "100", LocationID: 5, LocationType: "box", Coordinate: strings.Repeat("A", 51), Actor: "jdoe"}, storagedomain.ErrInvalidInput},
		{"blank sample ref", AssignInput{SampleRef: "  ", LocationID: 5, LocationType: "box", Actor: "jdoe"}, storagedomain.ErrInvalidInput},
		{"unknown sample", AssignInput{SampleRef: "does-not-exist", LocationID: 5, LocationType: "box", Actor: "jdoe"}, storagedomain.ErrSampleNotFound},
		{"type mismatch", AssignInput{SampleRef: "100", LocationID: 4, LocationType: "box", Actor: "jdoe"}, storagedomain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newLedgerFixture()
			m.addSample(&models.SampleItem{ID: 100})
			if _, err := svc.Assign(context.Background(), tt.in); !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAssign_InactiveAncestorBlocks(t *testing.T) {
	svc, m := newLedgerFixture()
	m.addSample(&models.SampleItem{ID: 100})
	m.locations[2].Active = false // Freezer 2

	_, err := svc.Assign(context.Background(), AssignInput{
		SampleRef: "100", LocationID: 5, LocationType: "box", Actor: "jdoe",
	})
	if !errors.Is(err, storagedomain.ErrLocationInactive) {
		t.Fatalf("error = %v, want ErrLocationInactive", err)
	}
	if !strings.Contains(err.Error(), `device "Freezer 2" is inactive`) {
		t.Errorf("error %q should name the inactive ancestor", err)
	}
}

func TestAssign_IncompleteHierarchy(t *testing.T) {
	svc, m := newLedgerFixture()
	m.addSample(&models.SampleItem{ID: 100})
	// A shelf hanging directly under the room, with no device between.
	m.addLocation(&models.Location{ID: 30, Level: models.LevelShelf, Code: "S30", Label: "Orphan Shelf", Active: true, ParentID: int64Ptr(1)})

	_, err := svc.Assign(context.Background(), AssignInput{
		SampleRef: "100", LocationID: 30, LocationType: "shelf", Actor: "jdoe",
	})
	if !errors.Is(err, storagedomain.ErrIncompleteHierarchy) {
		t.Fatalf("error = %v, want ErrIncompleteHierarchy", err)
	}
}

func TestAssign_PositionOccupied(t *testing.T) {
	svc, m := newLedgerFixture()
	m.addSample(&models.SampleItem{ID: 100})
	m.addSample(&models.SampleItem{ID: 101})
	m.assignSample(101, models.LocationRef{Type: models.LocationTypeBox, ID: 5}, "A3")

	_, err := svc.Assign(context.Background(), AssignInput{
		SampleRef: "100", LocationID: 5, LocationType: "box", Coordinate: "A3", Actor: "jdoe",
	})
	if !errors.Is(err, storagedomain.ErrPositionOccupied) {
		t.Fatalf("error = %v, want ErrPositionOccupied", err)
	}

	// A different coordinate in the same box is free.
	if _, err := svc.Assign(context.Background(), AssignInput{
		SampleRef: "100", LocationID: 5, LocationType: "box", Coordinate: "A4", Actor: "jdoe",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAssign_CapacityWarnings(t *testing.T) {
	svc, m := newLedgerFixture()
	// Rack 7 with a single 2x5 box: effective capacity 10.
	m.addLocation(&models.Location{ID: 7, Level: models.LevelRack, Code: "R7", Label: "Rack 7", Active: true, ParentID: int64Ptr(3)})
	m.addLocation(&models.Location{ID: 8, Level: models.LevelBox, Code: "B8", Label: "Box 8", Active: true, ParentID: int64Ptr(7), GridRows: 2, GridColumns: 5})
	for i := int64(0); i < 8; i++ {
		m.addSample(&models.SampleItem{ID: 200 + i})
		m.assignSample(200+i, models.LocationRef{Type: models.LocationTypeBox, ID: 8}, fmt.Sprintf("A%d", i+1))
	}

	// 9th specimen: 90% occupancy.
	m.addSample(&models.SampleItem{ID: 300})
	res, err := svc.Assign(context.Background(), AssignInput{
		SampleRef: "300", LocationID: 7, LocationType: "rack", Actor: "jdoe",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Warning != `rack "Rack 7" is nearing capacity (9/10)` {
		t.Errorf("warning = %q", res.Warning)
	}

	// 10th specimen: full.
	m.addSample(&models.SampleItem{ID: 301})
	res, err = svc.Assign(context.Background(), AssignInput{
		SampleRef: "301", LocationID: 7, LocationType: "rack", Actor: "jdoe",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Warning != `rack "Rack 7" is at full capacity (10/10)` {
		t.Errorf("warning = %q", res.Warning)
	}
}

func TestAssign_NoWarningBelowThreshold(t *testing.T) {
	svc, m := newLedgerFixture()
	m.addSample(&models.SampleItem{ID: 100})

	// Rack 4 has 162 positions; a single specimen is nowhere near 90%.
	res, err := svc.Assign(context.Background(), AssignInput{
		SampleRef: "100", LocationID: 4, LocationType: "rack", Actor: "jdoe",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Warning != "" {
		t.Errorf("unexpected warning %q", res.Warning)
	}
}

func TestMove_RecordsPreviousLocation(t *testing.T) {
	svc, m := newLedgerFixture()
	m.addSample(&models.SampleItem{ID: 100})
	m.assignSample(100, models.LocationRef{Type: models.LocationTypeBox, ID: 5}, "A3")

	res, err := svc.Move(context.Background(), MoveInput{
		SampleRef:    "100",
		LocationID:   6,
		LocationType: "box",
		Coordinate:   "B1",
		Reason:       "freezer defrost",
		Actor:        "jdoe",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(res.Path, "Box 6 > B1") {
		t.Errorf("path = %q, want it to end at Box 6 > B1", res.Path)
	}

	if len(m.movements) != 1 {
		t.Fatalf("got %d movements, want exactly 1", len(m.movements))
	}
	mv := m.movements[0]
	if mv.Previous == nil || mv.Previous.Ref.ID != 5 || mv.Previous.Coordinate != "A3" {
		t.Errorf("previous stamp = %+v, want box 5 / A3", mv.Previous)
	}
	if mv.New == nil || mv.New.Ref.ID != 6 || mv.New.Coordinate != "B1" {
		t.Errorf("new stamp = %+v, want box 6 / B1", mv.New)
	}
	if mv.Reason != "freezer defrost" {
		t.Errorf("reason = %q", mv.Reason)
	}

	// Still exactly one assignment row for the specimen.
	if len(m.assignments) != 1 {
		t.Errorf("got %d assignment rows, want 1", len(m.assignments))
	}
	if a := m.assignments[100]; a.Location.ID != 6 || a.PositionCoordinate != "B1" {
		t.Errorf("assignment = %+v, want box 6 / B1", a)
	}
}

func TestMove_UnassignedSpecimenGetsRow(t *testing.T) {
	svc, m := newLedgerFixture()
	m.addSample(&models.SampleItem{ID: 100})

	_, err := svc.Move(context.Background(), MoveInput{
		SampleRef: "100", LocationID: 5, LocationType: "box", Coordinate: "A1", Actor: "jdoe",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.movements) != 1 || m.movements[0].Previous != nil {
		t.Error("moving a never-assigned specimen records no previous stamp")
	}
	if m.assignments[100] == nil {
		t.Error("assignment row should have been created")
	}
}

func TestDispose(t *testing.T) {
	svc, m := newLedgerFixture()
	m.addSample(&models.SampleItem{ID: 100, AccessionNumber: "ACC-2024-0042"})
	m.assignSample(100, models.LocationRef{Type: models.LocationTypeBox, ID: 5}, "A3")

	res, err := svc.Dispose(context.Background(), DisposeInput{
		SampleRef: "ACC-2024-0042",
		Reason:    "study completed",
		Method:    "autoclave",
		Actor:     "jdoe",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantPath := "Main Lab > Freezer 2 > Shelf 3 > Rack 4 > Box 5 > A3"
	if res.FormerPath != wantPath {
		t.Errorf("former path = %q, want %q", res.FormerPath, wantPath)
	}
	wantMsg := fmt.Sprintf("specimen %q removed from %s and disposed (autoclave: study completed)",
		"ACC-2024-0042", wantPath)
	if res.Message != wantMsg {
		t.Errorf("message = %q, want %q", res.Message, wantMsg)
	}

	if m.samples[100].Status != models.SampleStatusDisposed {
		t.Error("sample status should be disposed")
	}
	a := m.assignments[100]
	if a == nil {
		t.Fatal("assignment row must survive disposal")
	}
	if a.Location != nil || a.PositionCoordinate != "" {
		t.Errorf("assignment location should be cleared, got %+v", a)
	}

	if len(m.movements) != 1 {
		t.Fatalf("got %d movements, want 1", len(m.movements))
	}
	mv := m.movements[0]
	if mv.New != nil {
		t.Error("disposal movement must have nil new fields")
	}
	if mv.Previous == nil || mv.Previous.Ref.ID != 5 || mv.Previous.Coordinate != "A3" {
		t.Errorf("previous stamp = %+v, want box 5 / A3", mv.Previous)
	}
}

func TestDispose_NeverAssigned(t *testing.T) {
	svc, m := newLedgerFixture()
	m.addSample(&models.SampleItem{ID: 100, AccessionNumber: "ACC-2024-0042"})

	res, err := svc.Dispose(context.Background(), DisposeInput{
		SampleRef: "100", Reason: "contaminated", Method: "incineration", Actor: "jdoe",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.FormerPath != "" {
		t.Errorf("former path = %q, want empty", res.FormerPath)
	}
	if res.Message != `specimen "100" disposed (incineration: contaminated)` {
		t.Errorf("message = %q", res.Message)
	}
	if len(m.movements) != 0 {
		t.Error("no movement row when there was no location to leave")
	}
	if m.samples[100].Status != models.SampleStatusDisposed {
		t.Error("sample status should be disposed")
	}
}

func TestDispose_Validation(t *testing.T) {
	tests := []struct {
		name    string
		in      DisposeInput
		wantErr error
	}{
		{"missing reason", DisposeInput{SampleRef: "100", Method: "autoclave", Actor: "jdoe"}, storagedomain.ErrInvalidInput},
		{"missing method", DisposeInput{SampleRef: "100", Reason: "done", Actor: "jdoe"}, storagedomain.ErrInvalidInput},
		{"missing actor", DisposeInput{SampleRef: "100", Reason: "done", Method: "autoclave"}, storagedomain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newLedgerFixture()
			m.addSample(&models.SampleItem{ID: 100})
			if _, err := svc.Dispose(context.Background(), tt.in); !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDispose_Twice(t *testing.T) {
	svc, m := newLedgerFixture()
	m.addSample(&models.SampleItem{ID: 100})

	in := DisposeInput{SampleRef: "100", Reason: "done", Method: "autoclave", Actor: "jdoe"}
	if _, err := svc.Dispose(context.Background(), in); err != nil {
		t.Fatalf("first disposal: %v", err)
	}
	if _, err := svc.Dispose(context.Background(), in); !errors.Is(err, storagedomain.ErrAlreadyDisposed) {
		t.Fatalf("error = %v, want ErrAlreadyDisposed", err)
	}
}

func TestResolveSpecimenLocation_ReferenceForms(t *testing.T) {
	svc, m := newLedgerFixture()
	m.addSample(&models.SampleItem{ID: 100, AccessionNumber: "ACC-2024-0042", ExternalRef: "EXT-7"})
	m.assignSample(100, models.LocationRef{Type: models.LocationTypeBox, ID: 5}, "A3")

	for _, ref := range []string{"100", "ACC-2024-0042", "EXT-7"} {
		t.Run(ref, func(t *testing.T) {
			loc, err := svc.ResolveSpecimenLocation(context.Background(), ref)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if loc.Sample.ID != 100 {
				t.Errorf("resolved sample %d, want 100", loc.Sample.ID)
			}
			if !strings.HasSuffix(loc.Path, "Box 5 > A3") {
				t.Errorf("path = %q", loc.Path)
			}
		})
	}
}

func TestResolveSpecimenLocation_NumericAccessionFallback(t *testing.T) {
	// A numeric reference that matches no sample ID falls through to
	// accession lookup.
	svc, m := newLedgerFixture()
	m.addSample(&models.SampleItem{ID: 100, AccessionNumber: "424242"})

	loc, err := svc.ResolveSpecimenLocation(context.Background(), "424242")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.Sample.ID != 100 {
		t.Errorf("resolved sample %d, want 100", loc.Sample.ID)
	}
}

func TestResolveSpecimenLocation_Ambiguous(t *testing.T) {
	svc, m := newLedgerFixture()
	m.addSample(&models.SampleItem{ID: 100, AccessionNumber: "ACC-2024-0042"})
	m.addSample(&models.SampleItem{ID: 101, AccessionNumber: "ACC-2024-0042"})

	_, err := svc.ResolveSpecimenLocation(context.Background(), "ACC-2024-0042")
	if !errors.Is(err, storagedomain.ErrAmbiguousSampleRef) {
		t.Fatalf("error = %v, want ErrAmbiguousSampleRef", err)
	}
	if !strings.Contains(err.Error(), "matches 2 specimens") {
		t.Errorf("error %q should name the match count", err)
	}
}

func TestResolveSpecimenLocation_Unassigned(t *testing.T) {
	svc, m := newLedgerFixture()
	m.addSample(&models.SampleItem{ID: 100})

	loc, err := svc.ResolveSpecimenLocation(context.Background(), "100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.Assignment != nil {
		t.Errorf("assignment = %+v, want nil for a never-assigned specimen", loc.Assignment)
	}
	if loc.Path != "" {
		t.Errorf("path = %q, want empty", loc.Path)
	}
}

func TestMovements_FullAuditTrail(t *testing.T) {
	svc, m := newLedgerFixture()
	m.addSample(&models.SampleItem{ID: 100})
	ctx := context.Background()

	if _, err := svc.Assign(ctx, AssignInput{SampleRef: "100", LocationID: 5, LocationType: "box", Coordinate: "A1", Actor: "jdoe"}); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if _, err := svc.Move(ctx, MoveInput{SampleRef: "100", LocationID: 6, LocationType: "box", Coordinate: "B2", Reason: "reorganization", Actor: "jdoe"}); err != nil {
		t.Fatalf("move: %v", err)
	}
	if _, err := svc.Dispose(ctx, DisposeInput{SampleRef: "100", Reason: "done", Method: "autoclave", Actor: "jdoe"}); err != nil {
		t.Fatalf("dispose: %v", err)
	}

	mvs, err := svc.Movements(ctx, "100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mvs) != 3 {
		t.Fatalf("got %d movements, want 3 (one per mutation)", len(mvs))
	}
	if mvs[0].Previous != nil || mvs[0].New == nil {
		t.Error("first movement: nil previous, non-nil new")
	}
	if mvs[1].Previous == nil || mvs[1].New == nil {
		t.Error("middle movement: both stamps set")
	}
	if mvs[2].Previous == nil || mvs[2].New != nil {
		t.Error("disposal movement: non-nil previous, nil new")
	}
	// The disposal's previous mirrors the move's new.
	if mvs[1].New.Ref != mvs[2].Previous.Ref || mvs[1].New.Coordinate != mvs[2].Previous.Coordinate {
		t.Errorf("disposal previous %+v should mirror the last new stamp %+v", mvs[2].Previous, mvs[1].New)
	}
}
