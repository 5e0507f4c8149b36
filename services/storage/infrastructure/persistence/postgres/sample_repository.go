package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ghuser/cryostore/pkg/database"
	storagedomain "github.com/ghuser/cryostore/services/storage/domain"
	"github.com/ghuser/cryostore/services/storage/domain/models"
)

// SampleRepository resolves specimen records for the assignment ledger.
type SampleRepository struct {
	db *database.Database
}

// NewSampleRepository returns a SampleRepository backed by the given pool.
func NewSampleRepository(db *database.Database) *SampleRepository {
	return &SampleRepository{db: db}
}

const sampleColumns = `id, accession_number, external_ref, label, status, version, created_at, updated_at`

// GetByID returns a specimen by numeric ID, or ErrSampleNotFound.
func (r *SampleRepository) GetByID(ctx context.Context, id int64) (*models.SampleItem, error) {
	row := r.db.DB().QueryRowContext(ctx,
		`SELECT `+sampleColumns+` FROM sample_items WHERE id = $1`, id)
	s, err := scanSample(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storagedomain.ErrSampleNotFound
		}
		return nil, fmt.Errorf("query sample: %w", err)
	}
	return s, nil
}

// FindByAccession returns every specimen carrying the accession number.
func (r *SampleRepository) FindByAccession(ctx context.Context, accession string) ([]*models.SampleItem, error) {
	return r.find(ctx, `accession_number`, accession)
}

// FindByExternalRef returns every specimen carrying the external reference.
func (r *SampleRepository) FindByExternalRef(ctx context.Context, ref string) ([]*models.SampleItem, error) {
	return r.find(ctx, `external_ref`, ref)
}

func (r *SampleRepository) find(ctx context.Context, column, value string) ([]*models.SampleItem, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT `+sampleColumns+` FROM sample_items WHERE `+column+` = $1 ORDER BY id`, value)
	if err != nil {
		return nil, fmt.Errorf("query samples by %s: %w", column, err)
	}
	defer rows.Close() //nolint:errcheck

	var out []*models.SampleItem
	for rows.Next() {
		s, err := scanSample(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate samples: %w", err)
	}
	return out, nil
}

func scanSample(row rowScanner) (*models.SampleItem, error) {
	var s models.SampleItem
	if err := row.Scan(&s.ID, &s.AccessionNumber, &s.ExternalRef, &s.Label,
		&s.Status, &s.Version, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
