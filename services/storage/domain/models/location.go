package models

import (
	"fmt"
	"time"
)

// Level identifies one of the five storage hierarchy levels, parent to child:
// Room > Device > Shelf > Rack > Box.
type Level string

const (
	LevelRoom   Level = "room"
	LevelDevice Level = "device"
	LevelShelf  Level = "shelf"
	LevelRack   Level = "rack"
	LevelBox    Level = "box"
)

// barcodeLevels is the hierarchy in barcode segment order. The fifth segment
// addresses a Box node but is labelled "position" on scanned codes.
var barcodeLevels = [...]Level{LevelRoom, LevelDevice, LevelShelf, LevelRack, LevelBox}

// BarcodeLevelAt returns the hierarchy level encoded by the i-th barcode
// segment (0-based). ok is false when i is out of range.
func BarcodeLevelAt(i int) (Level, bool) {
	if i < 0 || i >= len(barcodeLevels) {
		return "", false
	}
	return barcodeLevels[i], true
}

// BarcodeName returns the level name as it appears on scanned location codes.
// Box prints as "position" because the last barcode segment addresses a
// box-level position, not the box entity name.
func (l Level) BarcodeName() string {
	if l == LevelBox {
		return "position"
	}
	return string(l)
}

// Depth returns the 1-based depth of the level (Room = 1 … Box = 5), or 0
// for an unknown level.
func (l Level) Depth() int {
	for i, lvl := range barcodeLevels {
		if lvl == l {
			return i + 1
		}
	}
	return 0
}

// ParentLevel returns the level immediately above l. ok is false for Room
// (which has no parent) and for unknown levels.
func (l Level) ParentLevel() (Level, bool) {
	d := l.Depth()
	if d <= 1 {
		return "", false
	}
	return barcodeLevels[d-2], true
}

// ChildLevel returns the level immediately below l. ok is false for Box
// (which has no children) and for unknown levels.
func (l Level) ChildLevel() (Level, bool) {
	d := l.Depth()
	if d == 0 || d >= len(barcodeLevels) {
		return "", false
	}
	return barcodeLevels[d], true
}

// AllowsCapacityOverride reports whether a manual capacity limit may be set
// on this level. Only devices and shelves carry operator-set limits.
func (l Level) AllowsCapacityOverride() bool {
	return l == LevelDevice || l == LevelShelf
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	switch Level(s) {
	case LevelRoom, LevelDevice, LevelShelf, LevelRack, LevelBox:
		return Level(s), nil
	}
	return "", fmt.Errorf("unknown storage level %q", s)
}

// LocationType identifies the kinds of location a specimen can be assigned
// to. Rooms are organizational only and never hold assignments directly.
type LocationType string

const (
	LocationTypeDevice LocationType = "device"
	LocationTypeShelf  LocationType = "shelf"
	LocationTypeRack   LocationType = "rack"
	LocationTypeBox    LocationType = "box"
)

// ParseLocationType converts a string into a LocationType. Anything outside
// the four assignable kinds is rejected.
func ParseLocationType(s string) (LocationType, error) {
	switch LocationType(s) {
	case LocationTypeDevice, LocationTypeShelf, LocationTypeRack, LocationTypeBox:
		return LocationType(s), nil
	}
	return "", fmt.Errorf("unsupported location type %q", s)
}

// Level returns the hierarchy level corresponding to the location type.
func (t LocationType) Level() Level {
	return Level(t)
}

// LocationRef is a tagged reference to an assignable location node.
// Exactly one of the four assignable kinds; resolution logic switches on
// Type exhaustively instead of passing bare IDs around.
type LocationRef struct {
	Type LocationType
	ID   int64
}

// Location is one node of the five-level storage hierarchy.
//
// The Active flag is the node's own state; whether a specimen can actually be
// assigned here additionally requires every ancestor up to the Room to be
// active (see the assignment ledger's validation).
type Location struct {
	ID       int64
	Level    Level
	Code     string
	Label    string
	Active   bool
	ParentID *int64 // nil only for rooms

	// CapacityLimit is the operator-set manual override; meaningful for
	// devices and shelves only. nil or <=0 means "derive from children".
	CapacityLimit *int

	// Grid dimensions and the position naming hint; boxes only.
	GridRows           int
	GridColumns        int
	PositionSchemaHint string

	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Ref returns the assignable reference for the node. ok is false for rooms,
// which cannot hold assignments.
func (l *Location) Ref() (LocationRef, bool) {
	switch l.Level {
	case LevelDevice, LevelShelf, LevelRack, LevelBox:
		return LocationRef{Type: LocationType(l.Level), ID: l.ID}, true
	}
	return LocationRef{}, false
}
