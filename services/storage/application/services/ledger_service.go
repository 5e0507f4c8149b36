package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ghuser/cryostore/pkg/cache"
	"github.com/ghuser/cryostore/pkg/logger"
	storagedomain "github.com/ghuser/cryostore/services/storage/domain"
	"github.com/ghuser/cryostore/services/storage/domain/models"
	"github.com/ghuser/cryostore/services/storage/domain/repositories"
	domainsvcs "github.com/ghuser/cryostore/services/storage/domain/services"
)

// LedgerService owns specimen assignments and their append-only movement
// history. Every successful assign, move, or dispose writes exactly one
// movement row; the assignment row itself is upserted in place so a specimen
// never carries more than one.
type LedgerService struct {
	samples     repositories.SampleRepository
	locations   repositories.LocationRepository
	assignments repositories.AssignmentRepository
	movements   repositories.MovementRepository
	paths       *cache.PathCache // nil disables caching
	log         logger.Logger
}

// NewLedgerService returns a LedgerService wired with the given dependencies.
// paths may be nil; path caching is skipped then.
func NewLedgerService(
	samples repositories.SampleRepository,
	locations repositories.LocationRepository,
	assignments repositories.AssignmentRepository,
	movements repositories.MovementRepository,
	paths *cache.PathCache,
	log logger.Logger,
) *LedgerService {
	return &LedgerService{
		samples:     samples,
		locations:   locations,
		assignments: assignments,
		movements:   movements,
		paths:       paths,
		log:         log,
	}
}

// Thresholds for the informational occupancy warning on shelf and rack
// targets. Warnings never block the write.
const (
	capacityWarnPercent = 90
	capacityFullPercent = 100
)

// AssignInput carries the arguments for a first-time specimen assignment.
type AssignInput struct {
	SampleRef    string
	LocationID   int64
	LocationType string
	Coordinate   string
	Notes        string
	Actor        string
}

// AssignResult reports where the specimen now lives.
type AssignResult struct {
	Assignment *models.Assignment
	Path       string // "Room > Device > … [> coordinate]"
	Warning    string // non-empty near or at capacity on shelf/rack targets
}

// Assign places a specimen at a location for the first time. A specimen that
// already holds an active assignment is rejected with its current location in
// the error; callers must use Move instead.
func (s *LedgerService) Assign(ctx context.Context, in AssignInput) (*AssignResult, error) {
	ref, err := s.targetRef(in.LocationID, in.LocationType)
	if err != nil {
		return nil, err
	}
	if err := validateCoordinate(in.Coordinate); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Actor) == "" {
		return nil, fmt.Errorf("%w: acting user is required", storagedomain.ErrInvalidInput)
	}

	sample, err := s.resolveSample(ctx, in.SampleRef)
	if err != nil {
		return nil, err
	}

	existing, err := s.existingAssignment(ctx, sample.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Location != nil {
		current, pathErr := s.buildPath(ctx, *existing.Location, existing.PositionCoordinate)
		if pathErr != nil {
			current = fmt.Sprintf("%s %d", existing.Location.Type, existing.Location.ID)
		}
		return nil, fmt.Errorf("%w: specimen %q is currently stored at %s; move it instead",
			storagedomain.ErrAlreadyAssigned, in.SampleRef, current)
	}

	chain, err := s.validateTarget(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := s.checkCoordinateFree(ctx, ref, in.Coordinate, sample.ID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	a := existing
	if a == nil {
		a = &models.Assignment{SampleItemID: sample.ID}
	}
	a.Location = &ref
	a.PositionCoordinate = in.Coordinate
	a.AssignedAt = now
	a.AssignedBy = in.Actor
	a.Notes = in.Notes

	mv := &models.Movement{
		SampleItemID: sample.ID,
		New:          &models.LocationStamp{Ref: ref, Coordinate: in.Coordinate},
		MovedAt:      now,
		MovedBy:      in.Actor,
	}

	if err := s.assignments.Record(ctx, a, mv); err != nil {
		return nil, fmt.Errorf("record assignment: %w", err)
	}

	return s.result(ctx, sample.ID, a, chain)
}

// MoveInput carries the arguments for relocating an assigned specimen.
type MoveInput struct {
	SampleRef    string
	LocationID   int64
	LocationType string
	Coordinate   string
	Reason       string
	Actor        string
}

// Move relocates a specimen, recording the prior location in the movement
// row. A specimen with no assignment row yet gets one; this is the only
// difference from Assign's first-time semantics.
func (s *LedgerService) Move(ctx context.Context, in MoveInput) (*AssignResult, error) {
	ref, err := s.targetRef(in.LocationID, in.LocationType)
	if err != nil {
		return nil, err
	}
	if err := validateCoordinate(in.Coordinate); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Actor) == "" {
		return nil, fmt.Errorf("%w: acting user is required", storagedomain.ErrInvalidInput)
	}

	sample, err := s.resolveSample(ctx, in.SampleRef)
	if err != nil {
		return nil, err
	}

	existing, err := s.existingAssignment(ctx, sample.ID)
	if err != nil {
		return nil, err
	}

	chain, err := s.validateTarget(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := s.checkCoordinateFree(ctx, ref, in.Coordinate, sample.ID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	mv := &models.Movement{
		SampleItemID: sample.ID,
		New:          &models.LocationStamp{Ref: ref, Coordinate: in.Coordinate},
		MovedAt:      now,
		MovedBy:      in.Actor,
		Reason:       in.Reason,
	}

	a := existing
	if a == nil {
		a = &models.Assignment{SampleItemID: sample.ID}
	} else if a.Location != nil {
		mv.Previous = &models.LocationStamp{Ref: *a.Location, Coordinate: a.PositionCoordinate}
	}
	a.Location = &ref
	a.PositionCoordinate = in.Coordinate
	a.AssignedAt = now
	a.AssignedBy = in.Actor

	if err := s.assignments.Record(ctx, a, mv); err != nil {
		return nil, fmt.Errorf("record move: %w", err)
	}

	return s.result(ctx, sample.ID, a, chain)
}

// DisposeInput carries the arguments for a terminal disposal.
type DisposeInput struct {
	SampleRef string
	Reason    string
	Method    string
	Notes     string
	Actor     string
}

// DisposeResult reports the disposal outcome, naming the location the
// specimen was removed from (empty when it had none).
type DisposeResult struct {
	FormerPath string
	Message    string
}

// Dispose marks a specimen disposed, clearing its assignment's location
// fields while keeping the row. The terminal movement row, with nil new
// fields, is written only when the specimen actually had a location.
func (s *LedgerService) Dispose(ctx context.Context, in DisposeInput) (*DisposeResult, error) {
	if strings.TrimSpace(in.Reason) == "" {
		return nil, fmt.Errorf("%w: disposal reason is required", storagedomain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Method) == "" {
		return nil, fmt.Errorf("%w: disposal method is required", storagedomain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Actor) == "" {
		return nil, fmt.Errorf("%w: acting user is required", storagedomain.ErrInvalidInput)
	}

	sample, err := s.resolveSample(ctx, in.SampleRef)
	if err != nil {
		return nil, err
	}
	if sample.Status == models.SampleStatusDisposed {
		return nil, fmt.Errorf("%w: specimen %q", storagedomain.ErrAlreadyDisposed, in.SampleRef)
	}

	existing, err := s.existingAssignment(ctx, sample.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var (
		mv         *models.Movement
		formerPath string
	)
	if existing != nil && existing.Location != nil {
		formerPath, err = s.buildPath(ctx, *existing.Location, existing.PositionCoordinate)
		if err != nil {
			return nil, err
		}
		mv = &models.Movement{
			SampleItemID: sample.ID,
			Previous:     &models.LocationStamp{Ref: *existing.Location, Coordinate: existing.PositionCoordinate},
			MovedAt:      now,
			MovedBy:      in.Actor,
			Reason:       in.Reason,
		}
	}

	if existing != nil {
		existing.Location = nil
		existing.PositionCoordinate = ""
		existing.AssignedBy = in.Actor
		if in.Notes != "" {
			existing.Notes = in.Notes
		}
	}

	if err := s.assignments.Dispose(ctx, sample, existing, mv); err != nil {
		return nil, fmt.Errorf("dispose specimen: %w", err)
	}
	s.invalidatePath(ctx, sample.ID)

	msg := fmt.Sprintf("specimen %q disposed (%s: %s)", in.SampleRef, in.Method, in.Reason)
	if formerPath != "" {
		msg = fmt.Sprintf("specimen %q removed from %s and disposed (%s: %s)",
			in.SampleRef, formerPath, in.Method, in.Reason)
	}
	return &DisposeResult{FormerPath: formerPath, Message: msg}, nil
}

// SpecimenLocation is the resolved current location of a specimen.
type SpecimenLocation struct {
	Sample     *models.SampleItem
	Assignment *models.Assignment // nil when the specimen was never assigned
	Path       string             // empty when the specimen holds no location
}

// ResolveSpecimenLocation returns where a specimen currently lives, with its
// hierarchical display path. Paths are served from the cache when warm.
func (s *LedgerService) ResolveSpecimenLocation(ctx context.Context, sampleRef string) (*SpecimenLocation, error) {
	sample, err := s.resolveSample(ctx, sampleRef)
	if err != nil {
		return nil, err
	}

	a, err := s.existingAssignment(ctx, sample.ID)
	if err != nil {
		return nil, err
	}
	out := &SpecimenLocation{Sample: sample, Assignment: a}
	if a == nil || a.Location == nil {
		return out, nil
	}

	if s.paths != nil {
		if path, err := s.paths.Get(ctx, sample.ID); err == nil {
			out.Path = path
			return out, nil
		}
	}

	path, err := s.buildPath(ctx, *a.Location, a.PositionCoordinate)
	if err != nil {
		return nil, err
	}
	out.Path = path
	s.warmPath(sample.ID, path)
	return out, nil
}

// Movements returns the specimen's full movement history, oldest first.
func (s *LedgerService) Movements(ctx context.Context, sampleRef string) ([]*models.Movement, error) {
	sample, err := s.resolveSample(ctx, sampleRef)
	if err != nil {
		return nil, err
	}
	mvs, err := s.movements.ListBySampleItem(ctx, sample.ID)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	return mvs, nil
}

// InvalidatePath drops the cached display path for a specimen. The worker
// calls this when a movement event arrives.
func (s *LedgerService) InvalidatePath(ctx context.Context, sampleItemID int64) {
	s.invalidatePath(ctx, sampleItemID)
}

// resolveSample turns a textual specimen reference into exactly one record.
// Resolution order: numeric ID, then accession number, then external
// reference. A reference matching more than one specimen is ambiguous.
func (s *LedgerService) resolveSample(ctx context.Context, ref string) (*models.SampleItem, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("%w: specimen reference is required", storagedomain.ErrInvalidInput)
	}

	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		sample, err := s.samples.GetByID(ctx, id)
		if err == nil {
			return sample, nil
		}
		if !errors.Is(err, storagedomain.ErrSampleNotFound) {
			return nil, fmt.Errorf("resolve specimen by id: %w", err)
		}
	}

	matches, err := s.samples.FindByAccession(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("resolve specimen by accession: %w", err)
	}
	if len(matches) > 1 {
		return nil, fmt.Errorf("%w: accession number %q matches %d specimens",
			storagedomain.ErrAmbiguousSampleRef, ref, len(matches))
	}
	if len(matches) == 1 {
		return matches[0], nil
	}

	matches, err = s.samples.FindByExternalRef(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("resolve specimen by external reference: %w", err)
	}
	if len(matches) > 1 {
		return nil, fmt.Errorf("%w: external reference %q matches %d specimens",
			storagedomain.ErrAmbiguousSampleRef, ref, len(matches))
	}
	if len(matches) == 1 {
		return matches[0], nil
	}

	return nil, fmt.Errorf("%w: %q", storagedomain.ErrSampleNotFound, ref)
}

// targetRef validates the (id, type) pair into a LocationRef.
func (s *LedgerService) targetRef(id int64, locationType string) (models.LocationRef, error) {
	if id <= 0 {
		return models.LocationRef{}, fmt.Errorf("%w: location id is required", storagedomain.ErrInvalidInput)
	}
	t, err := models.ParseLocationType(locationType)
	if err != nil {
		return models.LocationRef{}, fmt.Errorf("%w: %w", storagedomain.ErrUnsupportedLocationType, err)
	}
	return models.LocationRef{Type: t, ID: id}, nil
}

// validateTarget loads the target's ancestor chain and enforces the
// assignment preconditions: the node's level matches the declared type, the
// chain reaches at least Room and Device, and every node on it is active.
// The chain is returned, room first, for path building.
func (s *LedgerService) validateTarget(ctx context.Context, ref models.LocationRef) ([]*models.Location, error) {
	chain, err := s.locations.AncestorChain(ctx, ref.ID)
	if err != nil {
		return nil, fmt.Errorf("load location chain: %w", err)
	}

	target := chain[len(chain)-1]
	if target.Level != ref.Type.Level() {
		return nil, fmt.Errorf("%w: location %d is a %s, not a %s",
			storagedomain.ErrInvalidInput, ref.ID, target.Level, ref.Type)
	}

	if len(chain) < 2 || chain[0].Level != models.LevelRoom || chain[1].Level != models.LevelDevice {
		return nil, fmt.Errorf("%w: %s %q is not placed under a room and device",
			storagedomain.ErrIncompleteHierarchy, target.Level, target.Label)
	}

	for _, node := range chain {
		if !node.Active {
			return nil, fmt.Errorf("%w: %s %q is inactive",
				storagedomain.ErrLocationInactive, node.Level, node.Label)
		}
	}
	return chain, nil
}

// checkCoordinateFree rejects a box assignment whose exact coordinate is
// already taken by another specimen. Non-box targets and blank coordinates
// pass through.
func (s *LedgerService) checkCoordinateFree(ctx context.Context, ref models.LocationRef, coordinate string, sampleID int64) error {
	if ref.Type != models.LocationTypeBox || coordinate == "" {
		return nil
	}
	occupied, err := s.assignments.CoordinateOccupied(ctx, ref.ID, coordinate, sampleID)
	if err != nil {
		return fmt.Errorf("check coordinate occupancy: %w", err)
	}
	if occupied {
		return fmt.Errorf("%w: position %s in box %d already holds a specimen",
			storagedomain.ErrPositionOccupied, coordinate, ref.ID)
	}
	return nil
}

func validateCoordinate(coordinate string) error {
	if len(coordinate) > models.MaxCoordinateLength {
		return fmt.Errorf("%w: position coordinate exceeds %d characters",
			storagedomain.ErrInvalidInput, models.MaxCoordinateLength)
	}
	return nil
}

// existingAssignment returns the specimen's assignment row or nil when none
// exists yet.
func (s *LedgerService) existingAssignment(ctx context.Context, sampleID int64) (*models.Assignment, error) {
	a, err := s.assignments.GetBySampleItem(ctx, sampleID)
	if err != nil {
		if errors.Is(err, storagedomain.ErrAssignmentNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load assignment: %w", err)
	}
	return a, nil
}

// result assembles the post-write response: display path, cache warm, and
// the occupancy warning for shelf and rack targets.
func (s *LedgerService) result(ctx context.Context, sampleID int64, a *models.Assignment, chain []*models.Location) (*AssignResult, error) {
	path := displayPath(chain, a.PositionCoordinate)
	s.invalidatePath(ctx, sampleID)
	s.warmPath(sampleID, path)

	warning, err := s.capacityWarning(ctx, *a.Location)
	if err != nil {
		// The write already succeeded; the warning is informational only.
		s.log.ErrorContext(ctx, "compute capacity warning", "error", err)
		warning = ""
	}
	return &AssignResult{Assignment: a, Path: path, Warning: warning}, nil
}

// buildPath loads the ancestor chain and renders the display path.
func (s *LedgerService) buildPath(ctx context.Context, ref models.LocationRef, coordinate string) (string, error) {
	chain, err := s.locations.AncestorChain(ctx, ref.ID)
	if err != nil {
		return "", fmt.Errorf("load location chain: %w", err)
	}
	return displayPath(chain, coordinate), nil
}

// displayPath renders "Room > Device > … [> coordinate]" from a room-first
// ancestor chain.
func displayPath(chain []*models.Location, coordinate string) string {
	parts := make([]string, 0, len(chain)+1)
	for _, node := range chain {
		parts = append(parts, node.Label)
	}
	if coordinate != "" {
		parts = append(parts, coordinate)
	}
	return strings.Join(parts, " > ")
}

// capacityWarning returns the informational occupancy warning for shelf and
// rack targets: 100% when full, 90% when nearly so, empty otherwise or when
// the capacity is undetermined.
func (s *LedgerService) capacityWarning(ctx context.Context, ref models.LocationRef) (string, error) {
	if ref.Type != models.LocationTypeShelf && ref.Type != models.LocationTypeRack {
		return "", nil
	}

	t, err := s.locations.LoadSubtree(ctx, ref.ID)
	if err != nil {
		return "", fmt.Errorf("load subtree: %w", err)
	}
	c := domainsvcs.CapacityOf(t, ref.ID)
	if !c.Known() || c.Value <= 0 {
		return "", nil
	}

	occupied, err := s.assignments.CountDistinctSamples(ctx, t.AssignableIDs())
	if err != nil {
		return "", fmt.Errorf("count occupancy: %w", err)
	}

	node := t.Node(ref.ID)
	percent := occupied * 100 / c.Value
	switch {
	case percent >= capacityFullPercent:
		return fmt.Sprintf("%s %q is at full capacity (%d/%d)",
			node.Level, node.Label, occupied, c.Value), nil
	case percent >= capacityWarnPercent:
		return fmt.Sprintf("%s %q is nearing capacity (%d/%d)",
			node.Level, node.Label, occupied, c.Value), nil
	}
	return "", nil
}

func (s *LedgerService) warmPath(sampleID int64, path string) {
	if s.paths == nil || path == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.paths.Set(ctx, sampleID, path); err != nil {
			s.log.WarnContext(ctx, "warm path cache", "error", err)
		}
	}()
}

func (s *LedgerService) invalidatePath(ctx context.Context, sampleID int64) {
	if s.paths == nil {
		return
	}
	if err := s.paths.Delete(ctx, sampleID); err != nil {
		s.log.WarnContext(ctx, "invalidate path cache", "error", err)
	}
}
