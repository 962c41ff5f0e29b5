package membership

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/raulfrk/tappy/internal/domain"
)

// ExitGroup removes the user from the group's member-set.
// Returns domain.ErrNotFound if the user or the group is not persisted.
// Leaving a group the user was never in is a no-op, not an error.
//
// The admin-set is deliberately left untouched: a departed admin keeps
// adminship, matching the behavior this service was rebuilt from. See the
// Open Question notes in DESIGN.md before changing this.
func (s *Service) ExitGroup(ctx context.Context, input ExitInput) (*domain.UserWithGroups, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var result *domain.UserWithGroups
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		user, err := s.users.GetByExternalID(txCtx, input.ExternalID)
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}

		group, err := s.groups.GetByName(txCtx, input.GroupName)
		if err != nil {
			return fmt.Errorf("get group: %w", err)
		}

		if err := s.groups.RemoveMember(txCtx, user.ID, group.ID); err != nil {
			return fmt.Errorf("remove member: %w", err)
		}

		result, err = s.users.GetWithGroups(txCtx, input.ExternalID)
		if err != nil {
			return fmt.Errorf("load user: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "user left group",
		slog.String("group", input.GroupName),
		slog.Int64("external_id", input.ExternalID),
	)

	return result, nil
}
