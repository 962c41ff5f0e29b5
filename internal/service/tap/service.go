// Package tap owns the reminder lifecycle: creation with destination
// fan-out, acknowledgement windows, soft deletion, and destination-side
// listing. Dispatch and re-notification live outside this core.
package tap

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/raulfrk/tappy/internal/domain"
)

type tapRepo interface {
	Create(ctx context.Context, t *domain.Tap) (*domain.Tap, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tap, error)
	Acknowledge(ctx context.Context, id uuid.UUID, ackedBy uuid.UUID, until time.Time) (*domain.Tap, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	ListForDestination(ctx context.Context, filter domain.TapFilter) ([]*domain.Tap, error)
}

type userRepo interface {
	GetByExternalID(ctx context.Context, externalID int64) (*domain.User, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides tap lifecycle operations.
type Service struct {
	taps  tapRepo
	users userRepo
	tx    txManager
	log   *slog.Logger
}

// NewService creates a new Tap service.
func NewService(log *slog.Logger, taps tapRepo, users userRepo, tx txManager) *Service {
	return &Service{
		taps:  taps,
		users: users,
		tx:    tx,
		log:   log.With("service", "tap"),
	}
}
