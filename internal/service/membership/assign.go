package membership

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/raulfrk/tappy/internal/domain"
)

// AssignGroup adds the user to the group's member-set.
// Returns domain.ErrNotFound if the user or the group is not persisted.
// Idempotent: joining a group the user is already in succeeds without
// duplication and without error.
func (s *Service) AssignGroup(ctx context.Context, input AssignInput) (*domain.UserWithGroups, error) {
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

		if err := s.groups.AddMember(txCtx, user.ID, group.ID); err != nil {
			return fmt.Errorf("add member: %w", err)
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

	s.log.InfoContext(ctx, "user joined group",
		slog.String("group", input.GroupName),
		slog.Int64("external_id", input.ExternalID),
	)

	return result, nil
}
