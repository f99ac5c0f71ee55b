package model

import "errors"

var (
	// ErrInvalidCatalog marks a malformed catalog entry. Fatal at catalog construction.
	ErrInvalidCatalog = errors.New("invalid catalog entry")

	// ErrInvalidRoom marks a room configuration that leaves nothing to place into.
	ErrInvalidRoom = errors.New("invalid room configuration")

	// ErrOutOfBounds is returned by collision checks when a footprint leaves the bounds.
	ErrOutOfBounds = errors.New("footprint outside placement bounds")

	// ErrCollision is returned by collision checks when two pieces are too close.
	ErrCollision = errors.New("footprint too close to a placed item")

	// ErrUnknownStrategy is returned when a planner strategy name is not recognized.
	ErrUnknownStrategy = errors.New("unknown planner strategy")
)
