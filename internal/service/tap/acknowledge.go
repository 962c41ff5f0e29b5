package tap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/raulfrk/tappy/internal/domain"
)

// Acknowledge silences a tap until the given deadline on behalf of the
// acknowledging user.
//
// The acknowledging user must be persisted (domain.ErrNotFound) and the tap
// must exist and not be soft-deleted (domain.ErrNotFound). The storage CHECK
// constraints reject a deadline not strictly after the tap's created_at and
// scheduled_at with domain.ErrInvalidEntity.
func (s *Service) Acknowledge(ctx context.Context, input AckInput) (*domain.Tap, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var result *domain.Tap
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		acker, err := s.users.GetByExternalID(txCtx, input.AckingExternalID)
		if err != nil {
			return fmt.Errorf("get acknowledging user: %w", err)
		}

		result, err = s.taps.Acknowledge(txCtx, input.TapID, acker.ID, input.AckedUntil.UTC())
		if err != nil {
			return fmt.Errorf("acknowledge tap: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "tap acknowledged",
		slog.String("tap_id", input.TapID.String()),
		slog.Int64("acking_external_id", input.AckingExternalID),
		slog.Time("acked_until", input.AckedUntil),
	)

	return result, nil
}
