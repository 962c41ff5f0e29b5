package tap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/raulfrk/tappy/internal/domain"
)

// Create schedules a new tap from the source user to the destination users.
//
// Source and every destination must be persisted users
// (domain.ErrNotFound otherwise). A zero nagging interval falls back to
// domain.DefaultNaggingIntervalSeconds. The tap and its destination
// associations are written in one transaction; the temporal CHECK
// constraints reject an invalid schedule with domain.ErrInvalidEntity and
// nothing is committed.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Tap, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	interval := input.NaggingIntervalSeconds
	if interval == 0 {
		interval = domain.DefaultNaggingIntervalSeconds
	}

	var result *domain.Tap
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		source, err := s.users.GetByExternalID(txCtx, input.SourceExternalID)
		if err != nil {
			return fmt.Errorf("get source user: %w", err)
		}

		destinationIDs := make([]uuid.UUID, 0, len(input.DestinationExternalIDs))
		for _, externalID := range input.DestinationExternalIDs {
			destination, err := s.users.GetByExternalID(txCtx, externalID)
			if err != nil {
				return fmt.Errorf("get destination user %d: %w", externalID, err)
			}
			destinationIDs = append(destinationIDs, destination.ID)
		}

		now := time.Now().UTC()
		t := &domain.Tap{
			ID:                     uuid.New(),
			Description:            input.Description,
			SourceUserID:           source.ID,
			DestinationUserIDs:     destinationIDs,
			ScheduledAt:            input.ScheduledAt.UTC(),
			NaggingIntervalSeconds: interval,
			IsActive:               true,
			CreatedAt:              now,
			UpdatedAt:              now,
		}
		if err := t.Validate(); err != nil {
			return err
		}

		result, err = s.taps.Create(txCtx, t)
		if err != nil {
			return fmt.Errorf("create tap: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "tap created",
		slog.String("tap_id", result.ID.String()),
		slog.Int64("source_external_id", input.SourceExternalID),
		slog.Int("destinations", len(result.DestinationUserIDs)),
		slog.Time("scheduled_at", result.ScheduledAt),
	)

	return result, nil
}
