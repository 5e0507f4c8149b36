package models

import "time"

// SampleStatus is the lifecycle state of a specimen item.
type SampleStatus string

const (
	SampleStatusStored   SampleStatus = "stored"
	SampleStatusDisposed SampleStatus = "disposed" // terminal
)

// SampleItem is the specimen entity the ledger tracks. Only the fields the
// storage core needs are modelled here; the full specimen record lives with
// the (external) sample-management service.
type SampleItem struct {
	ID              int64
	AccessionNumber string
	ExternalRef     string
	Label           string
	Status          SampleStatus
	Version         int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// MaxCoordinateLength bounds the free-text position coordinate.
const MaxCoordinateLength = 50

// Assignment is the current (or most recently cleared) location binding for
// one specimen. At most one assignment row exists per specimen; on disposal
// the location fields are cleared but the row is kept as the audit anchor.
type Assignment struct {
	ID           int64
	SampleItemID int64

	// Location is nil once the specimen has been disposed or its location
	// removed; the row itself is never deleted.
	Location           *LocationRef
	PositionCoordinate string

	AssignedAt time.Time
	AssignedBy string
	Notes      string
	Version    int
	UpdatedAt  time.Time
}

// LocationStamp captures one side of a movement: where a specimen was, or
// where it went.
type LocationStamp struct {
	Ref        LocationRef
	Coordinate string
}

// Movement is one immutable audit record of a location transition. Previous
// is nil for the very first assignment; New is nil only for a disposal.
// Movement rows are append-only and must never be updated or deleted.
type Movement struct {
	ID           int64
	SampleItemID int64
	Previous     *LocationStamp
	New          *LocationStamp
	MovedAt      time.Time
	MovedBy      string
	Reason       string
}
