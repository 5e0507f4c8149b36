package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/cryostore/pkg/database"
	storagedomain "github.com/ghuser/cryostore/services/storage/domain"
	"github.com/ghuser/cryostore/services/storage/domain/models"
)

// LocationRepository implements repositories.LocationRepository against
// PostgreSQL. The hierarchy lives in a single locations table with a
// self-referential parent_id; ancestor and subtree walks use recursive CTEs
// so every operation resolves its nodes eagerly up front.
type LocationRepository struct {
	db *database.Database
}

// NewLocationRepository returns a LocationRepository backed by the given pool.
func NewLocationRepository(db *database.Database) *LocationRepository {
	return &LocationRepository{db: db}
}

const locationColumns = `id, level, code, label, active, parent_id, capacity_limit,
	grid_rows, grid_columns, position_schema_hint, version, created_at, updated_at`

// Create persists a new node. Returns ErrDuplicateLocationCode on unique
// constraint violations (global for room codes, per-parent otherwise).
func (r *LocationRepository) Create(ctx context.Context, loc *models.Location) error {
	err := r.db.DB().QueryRowContext(ctx, `
		INSERT INTO locations (level, code, label, active, parent_id, capacity_limit,
			grid_rows, grid_columns, position_schema_hint)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, version, created_at, updated_at`,
		loc.Level, loc.Code, loc.Label, loc.Active, loc.ParentID, loc.CapacityLimit,
		loc.GridRows, loc.GridColumns, loc.PositionSchemaHint,
	).Scan(&loc.ID, &loc.Version, &loc.CreatedAt, &loc.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return storagedomain.ErrDuplicateLocationCode
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// Update persists changes using optimistic versioning. A stale version
// yields ErrConcurrentModification; a vanished row yields ErrLocationNotFound.
func (r *LocationRepository) Update(ctx context.Context, loc *models.Location) error {
	err := r.db.DB().QueryRowContext(ctx, `
		UPDATE locations
		SET label = $1, active = $2, parent_id = $3, capacity_limit = $4,
			grid_rows = $5, grid_columns = $6, position_schema_hint = $7,
			version = version + 1, updated_at = now()
		WHERE id = $8 AND version = $9
		RETURNING version, updated_at`,
		loc.Label, loc.Active, loc.ParentID, loc.CapacityLimit,
		loc.GridRows, loc.GridColumns, loc.PositionSchemaHint,
		loc.ID, loc.Version,
	).Scan(&loc.Version, &loc.UpdatedAt)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return storagedomain.ErrDuplicateLocationCode
		}
		return fmt.Errorf("update location: %w", err)
	}

	// Zero rows: distinguish a stale version from a missing row.
	if _, getErr := r.GetByID(ctx, loc.ID); getErr != nil {
		return getErr
	}
	return storagedomain.ErrConcurrentModification
}

// GetByID returns a node by ID. Returns ErrLocationNotFound when absent.
func (r *LocationRepository) GetByID(ctx context.Context, id int64) (*models.Location, error) {
	row := r.db.DB().QueryRowContext(ctx,
		`SELECT `+locationColumns+` FROM locations WHERE id = $1`, id)
	loc, err := scanLocation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storagedomain.ErrLocationNotFound
		}
		return nil, fmt.Errorf("query location: %w", err)
	}
	return loc, nil
}

// FindByLevelAndCode returns every node at the level carrying the code,
// anywhere in the tree.
func (r *LocationRepository) FindByLevelAndCode(ctx context.Context, level models.Level, code string) ([]*models.Location, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT `+locationColumns+` FROM locations WHERE level = $1 AND code = $2 ORDER BY id`,
		level, code)
	if err != nil {
		return nil, fmt.Errorf("query locations by code: %w", err)
	}
	defer rows.Close() //nolint:errcheck
	return scanLocations(rows)
}

// AncestorChain returns the node and all its ancestors, room first.
func (r *LocationRepository) AncestorChain(ctx context.Context, id int64) ([]*models.Location, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		WITH RECURSIVE chain AS (
			SELECT `+locationColumns+`, 0 AS depth
			FROM locations WHERE id = $1
			UNION ALL
			SELECT `+prefixedLocationColumns("l")+`, chain.depth + 1
			FROM locations l JOIN chain ON l.id = chain.parent_id
		)
		SELECT `+locationColumns+` FROM chain ORDER BY depth DESC`, id)
	if err != nil {
		return nil, fmt.Errorf("query ancestor chain: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	chain, err := scanLocations(rows)
	if err != nil {
		return nil, err
	}
	if len(chain) == 0 {
		return nil, storagedomain.ErrLocationNotFound
	}
	return chain, nil
}

// LoadSubtree eagerly loads the node and all of its descendants into an
// immutable snapshot.
func (r *LocationRepository) LoadSubtree(ctx context.Context, rootID int64) (*models.Subtree, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		WITH RECURSIVE tree AS (
			SELECT `+locationColumns+`
			FROM locations WHERE id = $1
			UNION ALL
			SELECT `+prefixedLocationColumns("l")+`
			FROM locations l JOIN tree ON l.parent_id = tree.id
		)
		SELECT `+locationColumns+` FROM tree`, rootID)
	if err != nil {
		return nil, fmt.Errorf("query subtree: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	nodes, err := scanLocations(rows)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, storagedomain.ErrLocationNotFound
	}
	return models.NewSubtree(rootID, nodes), nil
}

// ChildCount returns the number of direct children of the node.
func (r *LocationRepository) ChildCount(ctx context.Context, id int64) (int, error) {
	var n int
	err := r.db.DB().QueryRowContext(ctx,
		`SELECT count(*) FROM locations WHERE parent_id = $1`, id).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count children: %w", err)
	}
	return n, nil
}

// Delete removes the given nodes in the order supplied, after clearing the
// location fields of every assignment bound to them. Assignment rows are
// retained as audit anchors; the order must be bottom-up to satisfy the
// parent foreign key.
func (r *LocationRepository) Delete(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			UPDATE assignments
			SET location_id = NULL, location_type = NULL, position_coordinate = NULL,
				version = version + 1, updated_at = now()
			WHERE location_id = ANY($1)`, ids); err != nil {
			return fmt.Errorf("unassign samples in subtree: %w", err)
		}
		for _, id := range ids {
			if _, err := tx.ExecContext(ctx, `DELETE FROM locations WHERE id = $1`, id); err != nil {
				return fmt.Errorf("delete location %d: %w", id, err)
			}
		}
		return nil
	})
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanLocation(row rowScanner) (*models.Location, error) {
	var loc models.Location
	if err := row.Scan(
		&loc.ID, &loc.Level, &loc.Code, &loc.Label, &loc.Active, &loc.ParentID,
		&loc.CapacityLimit, &loc.GridRows, &loc.GridColumns,
		&loc.PositionSchemaHint, &loc.Version, &loc.CreatedAt, &loc.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &loc, nil
}

func scanLocations(rows *sql.Rows) ([]*models.Location, error) {
	var out []*models.Location
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		out = append(out, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate locations: %w", err)
	}
	return out, nil
}

// prefixedLocationColumns qualifies the shared column list with a table
// alias for use inside recursive CTE joins.
func prefixedLocationColumns(alias string) string {
	return alias + `.id, ` + alias + `.level, ` + alias + `.code, ` + alias + `.label, ` +
		alias + `.active, ` + alias + `.parent_id, ` + alias + `.capacity_limit, ` +
		alias + `.grid_rows, ` + alias + `.grid_columns, ` + alias + `.position_schema_hint, ` +
		alias + `.version, ` + alias + `.created_at, ` + alias + `.updated_at`
}
