package domain

import "github.com/google/uuid"

// TapFilter defines parameters for listing taps aimed at a destination user.
// Defaults and clamping are applied at the persistence layer.
type TapFilter struct {
	// DestinationUserID restricts results to taps that target this user.
	// Required.
	DestinationUserID uuid.UUID

	// ActiveOnly, when true, returns only taps with the active flag set.
	ActiveOnly bool

	// IncludeDeleted, when true, also returns soft-deleted taps.
	// Default is to exclude them.
	IncludeDeleted bool

	// Limit is the maximum number of taps to return. Default: 50, max: 200.
	Limit int

	// Offset is the number of taps to skip (offset-based pagination).
	Offset int
}
