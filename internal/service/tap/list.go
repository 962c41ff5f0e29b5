package tap

import (
	"context"
	"fmt"

	"github.com/raulfrk/tappy/internal/domain"
)

// ListForUser returns the taps aimed at the given destination user, newest
// schedule first. Soft-deleted taps are excluded; ActiveOnly narrows the
// result to taps the dispatcher would still fire. Read-only.
// Returns domain.ErrNotFound when the destination user is not persisted.
func (s *Service) ListForUser(ctx context.Context, input ListInput) ([]*domain.Tap, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	destination, err := s.users.GetByExternalID(ctx, input.DestinationExternalID)
	if err != nil {
		return nil, fmt.Errorf("get destination user: %w", err)
	}

	taps, err := s.taps.ListForDestination(ctx, domain.TapFilter{
		DestinationUserID: destination.ID,
		ActiveOnly:        input.ActiveOnly,
		Limit:             input.Limit,
		Offset:            input.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list taps: %w", err)
	}

	return taps, nil
}
