package repositories

import (
	"context"

	"github.com/ghuser/cryostore/services/storage/domain/models"
)

// AssignmentRepository is the persistence interface for the specimen
// assignment ledger. Every mutation writes the assignment row and its
// movement audit row in one transaction; the repository also publishes the
// movement event within that transaction (outbox pattern).
type AssignmentRepository interface {
	// GetBySampleItem returns the specimen's assignment row.
	// Returns ErrAssignmentNotFound when no row exists yet.
	GetBySampleItem(ctx context.Context, sampleItemID int64) (*models.Assignment, error)

	// Record upserts the assignment row and appends the movement row
	// atomically. A pre-existing row is updated with optimistic versioning
	// (ErrConcurrentModification on a stale version).
	Record(ctx context.Context, a *models.Assignment, mv *models.Movement) error

	// Dispose clears the assignment's location fields, marks the sample
	// disposed, and appends the terminal movement row (nil for no prior
	// location), all in one transaction.
	Dispose(ctx context.Context, sample *models.SampleItem, a *models.Assignment, mv *models.Movement) error

	// CountDistinctSamples returns how many distinct specimens are assigned
	// to any of the given location nodes.
	CountDistinctSamples(ctx context.Context, locationIDs []int64) (int, error)

	// CoordinateOccupied reports whether a specimen other than excludeSampleID
	// actively occupies the exact (box, coordinate) pair.
	CoordinateOccupied(ctx context.Context, boxID int64, coordinate string, excludeSampleID int64) (bool, error)
}

// MovementRepository reads the append-only movement history. The core never
// updates or deletes movement rows.
type MovementRepository interface {
	ListBySampleItem(ctx context.Context, sampleItemID int64) ([]*models.Movement, error)
}

// SampleRepository resolves specimen references for the ledger.
type SampleRepository interface {
	// GetByID returns a specimen by numeric ID.
	// Returns ErrSampleNotFound when absent.
	GetByID(ctx context.Context, id int64) (*models.SampleItem, error)

	// FindByAccession returns every specimen carrying the accession number.
	FindByAccession(ctx context.Context, accession string) ([]*models.SampleItem, error)

	// FindByExternalRef returns every specimen carrying the external reference.
	FindByExternalRef(ctx context.Context, ref string) ([]*models.SampleItem, error)
}
