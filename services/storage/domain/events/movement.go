package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicMovementRecorded is the Watermill topic published when a specimen's
// location changes (initial assignment, move, or disposal).
const TopicMovementRecorded = "storage.movement.recorded"

// MovementRecordedEvent is published transactionally with every assignment
// mutation. Consumers subscribe via EventBus.Subscribe(ctx,
// events.TopicMovementRecorded); the worker uses it to invalidate cached
// hierarchical paths.
type MovementRecordedEvent struct {
	EventID      uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version      int       `json:"version"`  // Schema version; increment on breaking changes
	SampleItemID int64     `json:"sample_item_id"`

	PreviousLocationID   *int64  `json:"previous_location_id,omitempty"`
	PreviousLocationType *string `json:"previous_location_type,omitempty"`
	NewLocationID        *int64  `json:"new_location_id,omitempty"`
	NewLocationType      *string `json:"new_location_type,omitempty"`

	MovedBy    string    `json:"moved_by"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
