// Package directory owns the user identity lifecycle: resolving an external
// chat-platform identity to a persisted user with upsert semantics, and the
// read-only user-with-memberships projection.
package directory

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/raulfrk/tappy/internal/domain"
)

type userRepo interface {
	GetByExternalID(ctx context.Context, externalID int64) (*domain.User, error)
	GetWithGroups(ctx context.Context, externalID int64) (*domain.UserWithGroups, error)
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	UpdateUsername(ctx context.Context, id uuid.UUID, username *string) (*domain.User, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides user directory operations.
type Service struct {
	users userRepo
	tx    txManager
	log   *slog.Logger
}

// NewService creates a new User Directory service.
func NewService(log *slog.Logger, users userRepo, tx txManager) *Service {
	return &Service{
		users: users,
		tx:    tx,
		log:   log.With("service", "directory"),
	}
}
