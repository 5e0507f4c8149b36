package services

import (
	"context"
	"fmt"

	storagedomain "github.com/ghuser/cryostore/services/storage/domain"
	"github.com/ghuser/cryostore/services/storage/domain/models"
	"github.com/ghuser/cryostore/services/storage/domain/repositories"
	domainsvcs "github.com/ghuser/cryostore/services/storage/domain/services"
)

// LifecycleService owns create/update/delete/move of storage hierarchy nodes
// and the capacity read model. Deletion is gated on referential integrity:
// ordinary deletes refuse nodes with children or stored specimens, and the
// cascade path unassigns specimens before removing nodes bottom-up so the
// parent foreign key is never violated and no audit row is lost.
type LifecycleService struct {
	locations   repositories.LocationRepository
	assignments repositories.AssignmentRepository
}

// NewLifecycleService returns a LifecycleService wired with the given repositories.
func NewLifecycleService(locations repositories.LocationRepository, assignments repositories.AssignmentRepository) *LifecycleService {
	return &LifecycleService{locations: locations, assignments: assignments}
}

// CreateLocationInput carries the fields for a new hierarchy node.
type CreateLocationInput struct {
	Level              string
	Code               string
	Label              string
	ParentID           *int64
	Active             bool
	CapacityLimit      *int
	GridRows           int
	GridColumns        int
	PositionSchemaHint string
}

// CreateLocation validates and persists a new node. Codes are normalized to
// uppercase; uniqueness is global for rooms and per-parent otherwise.
func (s *LifecycleService) CreateLocation(ctx context.Context, in CreateLocationInput) (*models.Location, error) {
	level, err := models.ParseLevel(in.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storagedomain.ErrInvalidInput, err)
	}

	code, err := models.NewLocationCode(in.Code)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storagedomain.ErrInvalidInput, err)
	}

	if level == models.LevelRoom {
		if in.ParentID != nil {
			return nil, fmt.Errorf("%w: a room cannot have a parent", storagedomain.ErrInvalidInput)
		}
	} else {
		if in.ParentID == nil {
			return nil, fmt.Errorf("%w: a %s requires a parent", storagedomain.ErrInvalidInput, level)
		}
		parent, err := s.locations.GetByID(ctx, *in.ParentID)
		if err != nil {
			return nil, fmt.Errorf("load parent: %w", err)
		}
		wantParent, _ := level.ParentLevel()
		if parent.Level != wantParent {
			return nil, fmt.Errorf("%w: a %s must be created under a %s, not a %s",
				storagedomain.ErrInvalidInput, level, wantParent, parent.Level)
		}
	}

	if in.CapacityLimit != nil && !level.AllowsCapacityOverride() {
		return nil, fmt.Errorf("%w: capacity limits apply to devices and shelves only", storagedomain.ErrInvalidInput)
	}
	if (in.GridRows != 0 || in.GridColumns != 0) && level != models.LevelBox {
		return nil, fmt.Errorf("%w: grid dimensions apply to boxes only", storagedomain.ErrInvalidInput)
	}
	if in.GridRows < 0 || in.GridColumns < 0 {
		return nil, fmt.Errorf("%w: grid dimensions must not be negative", storagedomain.ErrInvalidInput)
	}

	loc := &models.Location{
		Level:              level,
		Code:               code.String(),
		Label:              in.Label,
		Active:             in.Active,
		ParentID:           in.ParentID,
		CapacityLimit:      in.CapacityLimit,
		GridRows:           in.GridRows,
		GridColumns:        in.GridColumns,
		PositionSchemaHint: in.PositionSchemaHint,
	}
	if loc.Label == "" {
		loc.Label = code.String()
	}

	if err := s.locations.Create(ctx, loc); err != nil {
		return nil, fmt.Errorf("create location: %w", err)
	}
	return loc, nil
}

// GetLocation returns a single node by ID.
func (s *LifecycleService) GetLocation(ctx context.Context, id int64) (*models.Location, error) {
	loc, err := s.locations.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load location: %w", err)
	}
	return loc, nil
}

// UpdateLocationInput carries a partial update; nil fields are left unchanged.
// Version must match the stored row or the update fails as a concurrent
// modification.
type UpdateLocationInput struct {
	Label              *string
	Active             *bool
	CapacityLimit      *int
	GridRows           *int
	GridColumns        *int
	PositionSchemaHint *string
	Version            int
}

// UpdateLocation applies a versioned partial update to a node.
func (s *LifecycleService) UpdateLocation(ctx context.Context, id int64, in UpdateLocationInput) (*models.Location, error) {
	loc, err := s.locations.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load location: %w", err)
	}

	if in.Label != nil {
		loc.Label = *in.Label
	}
	if in.Active != nil {
		loc.Active = *in.Active
	}
	if in.CapacityLimit != nil {
		if !loc.Level.AllowsCapacityOverride() {
			return nil, fmt.Errorf("%w: capacity limits apply to devices and shelves only", storagedomain.ErrInvalidInput)
		}
		loc.CapacityLimit = in.CapacityLimit
	}
	if in.GridRows != nil || in.GridColumns != nil {
		if loc.Level != models.LevelBox {
			return nil, fmt.Errorf("%w: grid dimensions apply to boxes only", storagedomain.ErrInvalidInput)
		}
		if in.GridRows != nil {
			loc.GridRows = *in.GridRows
		}
		if in.GridColumns != nil {
			loc.GridColumns = *in.GridColumns
		}
		if loc.GridRows < 0 || loc.GridColumns < 0 {
			return nil, fmt.Errorf("%w: grid dimensions must not be negative", storagedomain.ErrInvalidInput)
		}
	}
	if in.PositionSchemaHint != nil {
		loc.PositionSchemaHint = *in.PositionSchemaHint
	}

	loc.Version = in.Version
	if err := s.locations.Update(ctx, loc); err != nil {
		return nil, fmt.Errorf("update location: %w", err)
	}
	return loc, nil
}

// DeleteDecision is the outcome of an ordinary-delete check.
type DeleteDecision struct {
	CanDelete  bool
	Constraint string // human-readable reason when CanDelete is false
}

// CanDelete reports whether the node may be deleted without a cascade.
// Rooms, devices, and shelves are blocked while they have children; any
// assignable node is blocked while specimens are stored at it (for racks,
// that includes their box positions, which are removed with the rack).
func (s *LifecycleService) CanDelete(ctx context.Context, id int64) (DeleteDecision, error) {
	loc, err := s.locations.GetByID(ctx, id)
	if err != nil {
		return DeleteDecision{}, fmt.Errorf("load location: %w", err)
	}

	switch loc.Level {
	case models.LevelRoom, models.LevelDevice, models.LevelShelf:
		n, err := s.locations.ChildCount(ctx, id)
		if err != nil {
			return DeleteDecision{}, fmt.Errorf("count children: %w", err)
		}
		if n > 0 {
			child, _ := loc.Level.ChildLevel()
			return DeleteDecision{Constraint: fmt.Sprintf(
				"cannot delete %s %q: it still contains %d %s(s)", loc.Level, loc.Label, n, child)}, nil
		}
	}

	if loc.Level != models.LevelRoom {
		ids, err := s.deletionScope(ctx, loc)
		if err != nil {
			return DeleteDecision{}, err
		}
		n, err := s.assignments.CountDistinctSamples(ctx, ids)
		if err != nil {
			return DeleteDecision{}, fmt.Errorf("count assigned samples: %w", err)
		}
		if n > 0 {
			return DeleteDecision{Constraint: fmt.Sprintf(
				"cannot delete %s %q: %d specimen(s) are stored here", loc.Level, loc.Label, n)}, nil
		}
	}

	return DeleteDecision{CanDelete: true}, nil
}

// DeleteConstraintMessage returns the human-readable reason an ordinary
// delete is blocked, or an empty string when it is allowed.
func (s *LifecycleService) DeleteConstraintMessage(ctx context.Context, id int64) (string, error) {
	d, err := s.CanDelete(ctx, id)
	if err != nil {
		return "", err
	}
	return d.Constraint, nil
}

// Delete performs an ordinary (non-cascading) delete, refusing with
// ErrDeleteBlocked when children or stored specimens exist. A rack's box
// positions are removed together with the rack.
func (s *LifecycleService) Delete(ctx context.Context, id int64) error {
	d, err := s.CanDelete(ctx, id)
	if err != nil {
		return err
	}
	if !d.CanDelete {
		return fmt.Errorf("%w: %s", storagedomain.ErrDeleteBlocked, d.Constraint)
	}

	loc, err := s.locations.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load location: %w", err)
	}
	ids, err := s.deletionScope(ctx, loc)
	if err != nil {
		return err
	}
	if err := s.locations.Delete(ctx, ids); err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	return nil
}

// deletionScope returns the node IDs an ordinary delete would remove, bottom
// up: just the node itself, except for racks, where the box positions go too.
func (s *LifecycleService) deletionScope(ctx context.Context, loc *models.Location) ([]int64, error) {
	if loc.Level != models.LevelRack {
		return []int64{loc.ID}, nil
	}
	t, err := s.locations.LoadSubtree(ctx, loc.ID)
	if err != nil {
		return nil, fmt.Errorf("load rack subtree: %w", err)
	}
	return t.IDsBottomUp(), nil
}

// CascadeSummary is the read-only preview of a cascade delete.
type CascadeSummary struct {
	ChildCounts   map[models.Level]int
	SpecimenCount int
}

// CascadeDeleteSummary counts each descendant type plus the distinct
// specimens stored anywhere in the subtree, without touching anything.
func (s *LifecycleService) CascadeDeleteSummary(ctx context.Context, id int64) (*CascadeSummary, error) {
	t, err := s.locations.LoadSubtree(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load subtree: %w", err)
	}
	n, err := s.assignments.CountDistinctSamples(ctx, t.AssignableIDs())
	if err != nil {
		return nil, fmt.Errorf("count assigned samples: %w", err)
	}
	return &CascadeSummary{ChildCounts: t.DescendantCounts(), SpecimenCount: n}, nil
}

// DeleteWithCascade removes the node and its entire subtree. Every specimen
// bound anywhere in the subtree is unassigned first (assignment rows are
// cleared, never deleted), then nodes are removed bottom-up. Callers must
// have surfaced CascadeDeleteSummary to the operator before invoking this.
func (s *LifecycleService) DeleteWithCascade(ctx context.Context, id int64) error {
	t, err := s.locations.LoadSubtree(ctx, id)
	if err != nil {
		return fmt.Errorf("load subtree: %w", err)
	}
	if err := s.locations.Delete(ctx, t.IDsBottomUp()); err != nil {
		return fmt.Errorf("cascade delete: %w", err)
	}
	return nil
}

// MoveCheck is the outcome of a relocation impact check.
type MoveCheck struct {
	CanMove       bool
	SpecimenCount int
	Warning       string // non-empty when stored specimens would see a path change
}

// CanMove checks the impact of re-parenting a node. Moves are always
// structurally permitted; when specimens are stored anywhere in the subtree
// a warning is returned because their displayed storage paths will change
// even though the assignment rows stay untouched.
func (s *LifecycleService) CanMove(ctx context.Context, id, newParentID int64) (*MoveCheck, error) {
	loc, err := s.locations.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load location: %w", err)
	}
	if _, err := s.locations.GetByID(ctx, newParentID); err != nil {
		return nil, fmt.Errorf("load new parent: %w", err)
	}

	t, err := s.locations.LoadSubtree(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load subtree: %w", err)
	}
	n, err := s.assignments.CountDistinctSamples(ctx, t.AssignableIDs())
	if err != nil {
		return nil, fmt.Errorf("count assigned samples: %w", err)
	}

	check := &MoveCheck{CanMove: true, SpecimenCount: n}
	if n > 0 {
		check.Warning = fmt.Sprintf(
			"moving %s %q changes the displayed storage path of %d specimen(s); their assignments are unchanged",
			loc.Level, loc.Label, n)
	}
	return check, nil
}

// MoveLocation re-parents a node after verifying the new parent sits exactly
// one level above it.
func (s *LifecycleService) MoveLocation(ctx context.Context, id, newParentID int64, version int) (*models.Location, error) {
	loc, err := s.locations.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load location: %w", err)
	}
	newParent, err := s.locations.GetByID(ctx, newParentID)
	if err != nil {
		return nil, fmt.Errorf("load new parent: %w", err)
	}
	wantParent, ok := loc.Level.ParentLevel()
	if !ok {
		return nil, fmt.Errorf("%w: a room cannot be moved under another location", storagedomain.ErrInvalidInput)
	}
	if newParent.Level != wantParent {
		return nil, fmt.Errorf("%w: a %s must live under a %s, not a %s",
			storagedomain.ErrInvalidInput, loc.Level, wantParent, newParent.Level)
	}

	loc.ParentID = &newParentID
	loc.Version = version
	if err := s.locations.Update(ctx, loc); err != nil {
		return nil, fmt.Errorf("move location: %w", err)
	}
	return loc, nil
}

// Capacity computes the effective capacity of a node over an eagerly loaded
// snapshot of its subtree.
func (s *LifecycleService) Capacity(ctx context.Context, id int64) (models.Capacity, error) {
	t, err := s.locations.LoadSubtree(ctx, id)
	if err != nil {
		return models.Capacity{}, fmt.Errorf("load subtree: %w", err)
	}
	return domainsvcs.CapacityOf(t, id), nil
}
