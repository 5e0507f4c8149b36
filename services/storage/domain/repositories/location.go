package repositories

import (
	"context"

	"github.com/ghuser/cryostore/services/storage/domain/models"
)

// LocationRepository is the persistence interface for the storage hierarchy.
// The domain layer owns this interface; infrastructure implements it.
type LocationRepository interface {
	// Create persists a new node, filling ID and Version.
	// Returns ErrDuplicateLocationCode when the code collides within its scope.
	Create(ctx context.Context, loc *models.Location) error

	// Update persists changes to an existing node using optimistic versioning.
	// Returns ErrConcurrentModification when the stored version differs.
	Update(ctx context.Context, loc *models.Location) error

	// GetByID returns a node by ID. Returns ErrLocationNotFound when absent.
	GetByID(ctx context.Context, id int64) (*models.Location, error)

	// FindByLevelAndCode returns every node at the given level carrying the
	// given code, anywhere in the tree. Codes are unique per parent, not
	// globally, so more than one match is normal below room level.
	FindByLevelAndCode(ctx context.Context, level models.Level, code string) ([]*models.Location, error)

	// AncestorChain returns the node and all its ancestors, room first.
	// Returns ErrLocationNotFound when the node is absent.
	AncestorChain(ctx context.Context, id int64) ([]*models.Location, error)

	// LoadSubtree eagerly loads the node and all of its descendants.
	LoadSubtree(ctx context.Context, rootID int64) (*models.Subtree, error)

	// ChildCount returns the number of direct children of the node.
	ChildCount(ctx context.Context, id int64) (int, error)

	// Delete removes the given nodes in the order supplied, clearing the
	// location fields of any assignment bound to them first (assignment rows
	// are never deleted). The whole operation is one transaction.
	Delete(ctx context.Context, ids []int64) error
}
