package tap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/raulfrk/tappy/internal/domain"
)

// Deactivate clears the tap's active flag so the dispatcher stops picking it
// up. The row stays readable. Returns domain.ErrNotFound for an unknown or
// soft-deleted tap.
func (s *Service) Deactivate(ctx context.Context, tapID uuid.UUID) error {
	if tapID == uuid.Nil {
		return domain.NewValidationError("tap_id", "required")
	}

	if err := s.taps.Deactivate(ctx, tapID); err != nil {
		return fmt.Errorf("deactivate tap: %w", err)
	}

	s.log.InfoContext(ctx, "tap deactivated", slog.String("tap_id", tapID.String()))

	return nil
}

// Delete soft-deletes the tap: it is marked deleted and inactive but the row
// is kept. Returns domain.ErrNotFound for an unknown or already-deleted tap.
func (s *Service) Delete(ctx context.Context, tapID uuid.UUID) error {
	if tapID == uuid.Nil {
		return domain.NewValidationError("tap_id", "required")
	}

	if err := s.taps.SoftDelete(ctx, tapID); err != nil {
		return fmt.Errorf("delete tap: %w", err)
	}

	s.log.InfoContext(ctx, "tap deleted", slog.String("tap_id", tapID.String()))

	return nil
}
