package membership

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/raulfrk/tappy/internal/domain"
)

// CreateGroup creates a new group and atomically adds the founding user to
// both the member-set and the admin-set.
// Returns domain.ErrAlreadyExists if a group with the name exists and
// domain.ErrNotFound if the founder is not a persisted user.
func (s *Service) CreateGroup(ctx context.Context, input CreateGroupInput) (*domain.GroupWithMembers, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var result *domain.GroupWithMembers
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		_, err := s.groups.GetByName(txCtx, input.Name)
		if err == nil {
			return fmt.Errorf("group %q: %w", input.Name, domain.ErrAlreadyExists)
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("get group: %w", err)
		}

		founder, err := s.users.GetByExternalID(txCtx, input.FounderExternalID)
		if err != nil {
			return fmt.Errorf("get founder: %w", err)
		}

		now := time.Now().UTC()
		group, err := s.groups.Create(txCtx, &domain.Group{
			ID:        uuid.New(),
			Name:      input.Name,
			CreatedAt: now,
		})
		if err != nil {
			return fmt.Errorf("create group: %w", err)
		}

		if err := s.groups.AddMember(txCtx, founder.ID, group.ID); err != nil {
			return fmt.Errorf("add founder member: %w", err)
		}
		if err := s.groups.AddAdmin(txCtx, founder.ID, group.ID); err != nil {
			return fmt.Errorf("add founder admin: %w", err)
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

	s.log.InfoContext(ctx, "group created",
		slog.String("group_id", result.ID.String()),
		slog.String("name", result.Name),
		slog.Int64("founder_external_id", input.FounderExternalID),
	)

	return result, nil
}

// GetGroupByName returns a group by its exact, case-sensitive name.
// Read-only. Returns domain.ErrNotFound when no such group exists.
func (s *Service) GetGroupByName(ctx context.Context, name string) (*domain.Group, error) {
	if name == "" {
		return nil, domain.NewValidationError("name", "required")
	}

	group, err := s.groups.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}

	return group, nil
}
