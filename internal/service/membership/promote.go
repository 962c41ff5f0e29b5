package membership

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/raulfrk/tappy/internal/domain"
)

// PromoteToAdmin adds a group member to the group's admin-set.
//
// Preconditions, checked in order, each with its own error:
//  1. the group exists (domain.ErrNotFound)
//  2. the acting user is persisted (domain.ErrNotFound)
//  3. the acting user is an admin of the group (domain.ErrNotAuthorized)
//  4. the target user is persisted (domain.ErrNotFound)
//  5. the target user is a member of the group (domain.ErrNotMember)
//
// Idempotent: promoting an existing admin succeeds without duplication.
func (s *Service) PromoteToAdmin(ctx context.Context, input PromoteInput) (*domain.GroupWithMembers, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var result *domain.GroupWithMembers
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		group, err := s.groups.GetByName(txCtx, input.GroupName)
		if err != nil {
			return fmt.Errorf("get group: %w", err)
		}

		acting, err := s.users.GetByExternalID(txCtx, input.ActingExternalID)
		if err != nil {
			return fmt.Errorf("get acting user: %w", err)
		}

		isAdmin, err := s.groups.IsAdmin(txCtx, acting.ID, group.ID)
		if err != nil {
			return fmt.Errorf("check acting admin: %w", err)
		}
		if !isAdmin {
			return fmt.Errorf("user %d in group %q: %w",
				input.ActingExternalID, input.GroupName, domain.ErrNotAuthorized)
		}

		target, err := s.users.GetByExternalID(txCtx, input.TargetExternalID)
		if err != nil {
			return fmt.Errorf("get target user: %w", err)
		}

		isMember, err := s.groups.IsMember(txCtx, target.ID, group.ID)
		if err != nil {
			return fmt.Errorf("check target membership: %w", err)
		}
		if !isMember {
			return fmt.Errorf("user %d in group %q: %w",
				input.TargetExternalID, input.GroupName, domain.ErrNotMember)
		}

		// Insert-if-absent; promoting an existing admin is a no-op.
		if err := s.groups.AddAdmin(txCtx, target.ID, group.ID); err != nil {
			return fmt.Errorf("add admin: %w", err)
		}

		result, err = s.groups.GetWithMembers(txCtx, group.Name)
		if err != nil {
			return fmt.Errorf("load group: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "member promoted to admin",
		slog.String("group", input.GroupName),
		slog.Int64("acting_external_id", input.ActingExternalID),
		slog.Int64("target_external_id", input.TargetExternalID),
	)

	return result, nil
}
