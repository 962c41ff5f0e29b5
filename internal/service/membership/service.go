// Package membership owns the group lifecycle: creation, admin promotion,
// joining, leaving, and admin-gated kicking. Every mutating operation runs
// its precondition checks and writes inside a single transaction; the first
// violated precondition aborts the operation before any state change.
package membership

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/raulfrk/tappy/internal/domain"
)

type userRepo interface {
	GetByExternalID(ctx context.Context, externalID int64) (*domain.User, error)
	GetWithGroups(ctx context.Context, externalID int64) (*domain.UserWithGroups, error)
}

type groupRepo interface {
	Create(ctx context.Context, g *domain.Group) (*domain.Group, error)
	GetByName(ctx context.Context, name string) (*domain.Group, error)
	GetWithMembers(ctx context.Context, name string) (*domain.GroupWithMembers, error)
	AddMember(ctx context.Context, userID, groupID uuid.UUID) error
	RemoveMember(ctx context.Context, userID, groupID uuid.UUID) error
	AddAdmin(ctx context.Context, userID, groupID uuid.UUID) error
	IsMember(ctx context.Context, userID, groupID uuid.UUID) (bool, error)
	IsAdmin(ctx context.Context, userID, groupID uuid.UUID) (bool, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides group membership and authorization operations.
type Service struct {
	users  userRepo
	groups groupRepo
	tx     txManager
	log    *slog.Logger
}

// NewService creates a new Membership service.
func NewService(log *slog.Logger, users userRepo, groups groupRepo, tx txManager) *Service {
	return &Service{
		users:  users,
		groups: groups,
		tx:     tx,
		log:    log.With("service", "membership"),
	}
}
