package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/cryostore/pkg/database"
	"github.com/ghuser/cryostore/pkg/events"
	storagedomain "github.com/ghuser/cryostore/services/storage/domain"
	domainevents "github.com/ghuser/cryostore/services/storage/domain/events"
	"github.com/ghuser/cryostore/services/storage/domain/models"
)

// AssignmentRepository implements repositories.AssignmentRepository against
// PostgreSQL. Every mutation writes the assignment row, appends the
// movement audit row, and publishes a MovementRecordedEvent within the same
// transaction (outbox pattern). Movement rows are append-only; nothing here
// ever updates or deletes them.
type AssignmentRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewAssignmentRepository returns an AssignmentRepository backed by the given
// pool and event bus. The bus may be nil in tests; events are skipped then.
func NewAssignmentRepository(db *database.Database, bus *events.EventBus) *AssignmentRepository {
	return &AssignmentRepository{db: db, bus: bus}
}

// GetBySampleItem returns the specimen's assignment row, or
// ErrAssignmentNotFound when none exists yet.
func (r *AssignmentRepository) GetBySampleItem(ctx context.Context, sampleItemID int64) (*models.Assignment, error) {
	row := r.db.DB().QueryRowContext(ctx, `
		SELECT id, sample_item_id, location_id, location_type, position_coordinate,
			assigned_at, assigned_by, notes, version, updated_at
		FROM assignments WHERE sample_item_id = $1`, sampleItemID)

	a, err := scanAssignment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storagedomain.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("query assignment: %w", err)
	}
	return a, nil
}

// Record upserts the assignment row and appends the movement row atomically.
func (r *AssignmentRepository) Record(ctx context.Context, a *models.Assignment, mv *models.Movement) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if a.ID == 0 {
			if err := insertAssignment(ctx, tx, a); err != nil {
				return err
			}
		} else {
			if err := updateAssignment(ctx, tx, a); err != nil {
				return err
			}
		}
		if err := insertMovement(ctx, tx, mv); err != nil {
			return err
		}
		return r.publishMovement(tx, mv)
	})
}

// Dispose clears the assignment's location, marks the sample disposed, and
// appends the terminal movement row, all in one transaction. a may be nil
// when the specimen never had an assignment row; mv may be nil when there
// was no location to record a transition from.
func (r *AssignmentRepository) Dispose(ctx context.Context, sample *models.SampleItem, a *models.Assignment, mv *models.Movement) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if a != nil {
			if err := updateAssignment(ctx, tx, a); err != nil {
				return err
			}
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE sample_items
			SET status = $1, version = version + 1, updated_at = now()
			WHERE id = $2 AND version = $3`,
			models.SampleStatusDisposed, sample.ID, sample.Version)
		if err != nil {
			return fmt.Errorf("update sample status: %w", err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return fmt.Errorf("update sample status: %w", err)
		} else if n == 0 {
			return storagedomain.ErrConcurrentModification
		}

		if mv == nil {
			return nil
		}
		if err := insertMovement(ctx, tx, mv); err != nil {
			return err
		}
		return r.publishMovement(tx, mv)
	})
}

// CountDistinctSamples returns how many distinct specimens are assigned to
// any of the given location nodes.
func (r *AssignmentRepository) CountDistinctSamples(ctx context.Context, locationIDs []int64) (int, error) {
	if len(locationIDs) == 0 {
		return 0, nil
	}
	var n int
	err := r.db.DB().QueryRowContext(ctx, `
		SELECT count(DISTINCT sample_item_id) FROM assignments
		WHERE location_id = ANY($1)`, locationIDs).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count assigned samples: %w", err)
	}
	return n, nil
}

// CoordinateOccupied reports whether another specimen actively occupies the
// exact (box, coordinate) pair.
func (r *AssignmentRepository) CoordinateOccupied(ctx context.Context, boxID int64, coordinate string, excludeSampleID int64) (bool, error) {
	var occupied bool
	err := r.db.DB().QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM assignments
			WHERE location_type = $1 AND location_id = $2
				AND position_coordinate = $3 AND sample_item_id <> $4
		)`, models.LocationTypeBox, boxID, coordinate, excludeSampleID).Scan(&occupied)
	if err != nil {
		return false, fmt.Errorf("check coordinate occupancy: %w", err)
	}
	return occupied, nil
}

func insertAssignment(ctx context.Context, tx *sql.Tx, a *models.Assignment) error {
	locID, locType := refColumns(a.Location)
	err := tx.QueryRowContext(ctx, `
		INSERT INTO assignments (sample_item_id, location_id, location_type,
			position_coordinate, assigned_at, assigned_by, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, version, updated_at`,
		a.SampleItemID, locID, locType, nullableText(a.PositionCoordinate),
		a.AssignedAt, a.AssignedBy, a.Notes,
	).Scan(&a.ID, &a.Version, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert assignment: %w", err)
	}
	return nil
}

func updateAssignment(ctx context.Context, tx *sql.Tx, a *models.Assignment) error {
	locID, locType := refColumns(a.Location)
	err := tx.QueryRowContext(ctx, `
		UPDATE assignments
		SET location_id = $1, location_type = $2, position_coordinate = $3,
			assigned_by = $4, notes = $5, version = version + 1, updated_at = now()
		WHERE id = $6 AND version = $7
		RETURNING version, updated_at`,
		locID, locType, nullableText(a.PositionCoordinate),
		a.AssignedBy, a.Notes, a.ID, a.Version,
	).Scan(&a.Version, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storagedomain.ErrConcurrentModification
		}
		return fmt.Errorf("update assignment: %w", err)
	}
	return nil
}

func insertMovement(ctx context.Context, tx *sql.Tx, mv *models.Movement) error {
	prevID, prevType, prevCoord := stampColumns(mv.Previous)
	newID, newType, newCoord := stampColumns(mv.New)
	err := tx.QueryRowContext(ctx, `
		INSERT INTO movements (sample_item_id,
			previous_location_id, previous_location_type, previous_coordinate,
			new_location_id, new_location_type, new_coordinate,
			moved_at, moved_by, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		mv.SampleItemID, prevID, prevType, prevCoord,
		newID, newType, newCoord, mv.MovedAt, mv.MovedBy, mv.Reason,
	).Scan(&mv.ID)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

func (r *AssignmentRepository) publishMovement(tx *sql.Tx, mv *models.Movement) error {
	if r.bus == nil {
		return nil
	}

	event := domainevents.MovementRecordedEvent{
		EventID:      uuid.New(),
		Version:      1,
		SampleItemID: mv.SampleItemID,
		MovedBy:      mv.MovedBy,
		Reason:       mv.Reason,
		OccurredAt:   mv.MovedAt,
	}
	if mv.Previous != nil {
		event.PreviousLocationID = &mv.Previous.Ref.ID
		t := string(mv.Previous.Ref.Type)
		event.PreviousLocationType = &t
	}
	if mv.New != nil {
		event.NewLocationID = &mv.New.Ref.ID
		t := string(mv.New.Ref.Type)
		event.NewLocationType = &t
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal movement event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", event.EventID.String())
	msg.Metadata.Set("event_version", "1")

	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(domainevents.TopicMovementRecorded, msg)
}

func refColumns(ref *models.LocationRef) (*int64, *string) {
	if ref == nil {
		return nil, nil
	}
	t := string(ref.Type)
	return &ref.ID, &t
}

func stampColumns(s *models.LocationStamp) (*int64, *string, *string) {
	if s == nil {
		return nil, nil, nil
	}
	t := string(s.Ref.Type)
	return &s.Ref.ID, &t, nullableText(s.Coordinate)
}

func nullableText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func scanAssignment(row rowScanner) (*models.Assignment, error) {
	var (
		a         models.Assignment
		locID     sql.NullInt64
		locType   sql.NullString
		coord     sql.NullString
	)
	if err := row.Scan(&a.ID, &a.SampleItemID, &locID, &locType, &coord,
		&a.AssignedAt, &a.AssignedBy, &a.Notes, &a.Version, &a.UpdatedAt); err != nil {
		return nil, err
	}
	if locID.Valid && locType.Valid {
		a.Location = &models.LocationRef{
			Type: models.LocationType(locType.String),
			ID:   locID.Int64,
		}
	}
	a.PositionCoordinate = coord.String
	return &a, nil
}
