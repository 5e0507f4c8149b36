package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ghuser/cryostore/pkg/database"
	"github.com/ghuser/cryostore/services/storage/domain/models"
)

// MovementRepository reads the append-only movement audit trail.
type MovementRepository struct {
	db *database.Database
}

// NewMovementRepository returns a MovementRepository backed by the given pool.
func NewMovementRepository(db *database.Database) *MovementRepository {
	return &MovementRepository{db: db}
}

// ListBySampleItem returns the specimen's movement history, oldest first.
func (r *MovementRepository) ListBySampleItem(ctx context.Context, sampleItemID int64) ([]*models.Movement, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT id, sample_item_id,
			previous_location_id, previous_location_type, previous_coordinate,
			new_location_id, new_location_type, new_coordinate,
			moved_at, moved_by, reason
		FROM movements WHERE sample_item_id = $1 ORDER BY moved_at, id`, sampleItemID)
	if err != nil {
		return nil, fmt.Errorf("query movements: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var out []*models.Movement
	for rows.Next() {
		mv, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		out = append(out, mv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movements: %w", err)
	}
	return out, nil
}

func scanMovement(row rowScanner) (*models.Movement, error) {
	var (
		mv        models.Movement
		prevID    sql.NullInt64
		prevType  sql.NullString
		prevCoord sql.NullString
		newID     sql.NullInt64
		newType   sql.NullString
		newCoord  sql.NullString
	)
	if err := row.Scan(&mv.ID, &mv.SampleItemID,
		&prevID, &prevType, &prevCoord,
		&newID, &newType, &newCoord,
		&mv.MovedAt, &mv.MovedBy, &mv.Reason); err != nil {
		return nil, err
	}
	mv.Previous = stampFromColumns(prevID, prevType, prevCoord)
	mv.New = stampFromColumns(newID, newType, newCoord)
	return &mv, nil
}

func stampFromColumns(id sql.NullInt64, typ, coord sql.NullString) *models.LocationStamp {
	if !id.Valid || !typ.Valid {
		return nil
	}
	return &models.LocationStamp{
		Ref:        models.LocationRef{Type: models.LocationType(typ.String), ID: id.Int64},
		Coordinate: coord.String,
	}
}
