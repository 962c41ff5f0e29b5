package membership

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/raulfrk/tappy/internal/domain"
)

// KickFromGroup removes a non-admin member from the group's member-set on
// behalf of an admin.
//
// Preconditions, checked in order, each with its own error:
//  1. the kicking user is persisted (domain.ErrNotFound)
//  2. the target user is persisted (domain.ErrNotFound)
//  3. kicker and target are distinct (domain.ErrSelfKick)
//  4. the group exists (domain.ErrNotFound)
//  5. the kicking user is a member of the group (domain.ErrNotMember)
//  6. the target user is a member of the group (domain.ErrNotMember)
//  7. the kicking user is an admin of the group (domain.ErrNotAuthorized)
//  8. the target user is not an admin of the group (domain.ErrTargetIsAdmin)
//
// The target is removed from the member-set only; the admin-set is not
// touched (unreachable for a non-admin target given precondition 8).
func (s *Service) KickFromGroup(ctx context.Context, input KickInput) (*domain.UserWithGroups, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var result *domain.UserWithGroups
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		kicker, err := s.users.GetByExternalID(txCtx, input.KickerExternalID)
		if err != nil {
			return fmt.Errorf("get kicking user: %w", err)
		}

		target, err := s.users.GetByExternalID(txCtx, input.TargetExternalID)
		if err != nil {
			return fmt.Errorf("get target user: %w", err)
		}

		if kicker.ExternalID == target.ExternalID {
			return fmt.Errorf("user %d: %w", input.KickerExternalID, domain.ErrSelfKick)
		}

		group, err := s.groups.GetByName(txCtx, input.GroupName)
		if err != nil {
			return fmt.Errorf("get group: %w", err)
		}

		kickerMember, err := s.groups.IsMember(txCtx, kicker.ID, group.ID)
		if err != nil {
			return fmt.Errorf("check kicker membership: %w", err)
		}
		if !kickerMember {
			return fmt.Errorf("kicking user %d in group %q: %w",
				input.KickerExternalID, input.GroupName, domain.ErrNotMember)
		}

		targetMember, err := s.groups.IsMember(txCtx, target.ID, group.ID)
		if err != nil {
			return fmt.Errorf("check target membership: %w", err)
		}
		if !targetMember {
			return fmt.Errorf("target user %d in group %q: %w",
				input.TargetExternalID, input.GroupName, domain.ErrNotMember)
		}

		kickerAdmin, err := s.groups.IsAdmin(txCtx, kicker.ID, group.ID)
		if err != nil {
			return fmt.Errorf("check kicker admin: %w", err)
		}
		if !kickerAdmin {
			return fmt.Errorf("kicking user %d in group %q: %w",
				input.KickerExternalID, input.GroupName, domain.ErrNotAuthorized)
		}

		targetAdmin, err := s.groups.IsAdmin(txCtx, target.ID, group.ID)
		if err != nil {
			return fmt.Errorf("check target admin: %w", err)
		}
		if targetAdmin {
			return fmt.Errorf("target user %d in group %q: %w",
				input.TargetExternalID, input.GroupName, domain.ErrTargetIsAdmin)
		}

		if err := s.groups.RemoveMember(txCtx, target.ID, group.ID); err != nil {
			return fmt.Errorf("remove member: %w", err)
		}

		result, err = s.users.GetWithGroups(txCtx, input.TargetExternalID)
		if err != nil {
			return fmt.Errorf("load target user: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "user kicked from group",
		slog.String("group", input.GroupName),
		slog.Int64("kicker_external_id", input.KickerExternalID),
		slog.Int64("target_external_id", input.TargetExternalID),
	)

	return result, nil
}
