package domain

import "errors"

// Sentinel errors for the storage domain. Use errors.Is() to check these.
var (
	// ErrInvalidInput indicates a blank or malformed required argument.
	ErrInvalidInput = errors.New("invalid input")

	// ErrLocationNotFound indicates the requested storage location does not exist.
	ErrLocationNotFound = errors.New("location not found")

	// ErrSampleNotFound indicates the specimen reference resolved to no record.
	ErrSampleNotFound = errors.New("sample not found")

	// ErrAmbiguousSampleRef indicates the specimen reference matched more than one record.
	ErrAmbiguousSampleRef = errors.New("sample reference is ambiguous")

	// ErrAssignmentNotFound indicates the specimen has no assignment row.
	ErrAssignmentNotFound = errors.New("assignment not found")

	// ErrDuplicateLocationCode indicates a code collision within its uniqueness
	// scope (global for rooms, per-parent otherwise).
	ErrDuplicateLocationCode = errors.New("location code already in use")

	// ErrLocationInactive indicates the target node or one of its ancestors is inactive.
	ErrLocationInactive = errors.New("location is inactive")

	// ErrIncompleteHierarchy indicates the target lacks the minimum Room and
	// Device ancestry required for assignment.
	ErrIncompleteHierarchy = errors.New("location hierarchy is incomplete")

	// ErrAlreadyAssigned indicates the specimen already has an active location;
	// callers must move, not assign.
	ErrAlreadyAssigned = errors.New("sample is already assigned to a location")

	// ErrPositionOccupied indicates another specimen occupies the box coordinate.
	ErrPositionOccupied = errors.New("position is already occupied")

	// ErrDeleteBlocked indicates an ordinary delete was refused because of
	// children or assigned specimens.
	ErrDeleteBlocked = errors.New("location cannot be deleted")

	// ErrAlreadyDisposed indicates the specimen is already in the terminal
	// disposed state.
	ErrAlreadyDisposed = errors.New("sample is already disposed")

	// ErrUnsupportedLocationType indicates a location type outside
	// device/shelf/rack/box.
	ErrUnsupportedLocationType = errors.New("unsupported location type")

	// ErrConcurrentModification indicates a stale write detected at commit
	// time. The operation is safe to retry after reloading.
	ErrConcurrentModification = errors.New("record was modified concurrently, reload and retry")
)
