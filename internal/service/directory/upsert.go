package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/raulfrk/tappy/internal/domain"
)

// Upsert resolves an external identity to a persisted user.
//
// An unseen external id creates a new user; a known one returns the stored
// user, applying a single reconciling write when the username has changed
// on the chat platform. The operation never fails with "already exists":
// repeated identical calls are idempotent and concurrent calls for the same
// external id converge on one row (the repository's create is a no-op on
// conflict).
func (s *Service) Upsert(ctx context.Context, input UpsertInput) (*domain.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var result *domain.User
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		existing, err := s.users.GetByExternalID(txCtx, input.ExternalID)
		switch {
		case err == nil:
			if usernameEqual(existing.Username, input.Username) {
				result = existing
				return nil
			}

			s.log.InfoContext(txCtx, "user changed username, updating",
				slog.Int64("external_id", input.ExternalID),
				slog.String("old_username", usernameForLog(existing.Username)),
				slog.String("new_username", usernameForLog(input.Username)),
			)

			result, err = s.users.UpdateUsername(txCtx, existing.ID, input.Username)
			if err != nil {
				return fmt.Errorf("update username: %w", err)
			}
			return nil

		case errors.Is(err, domain.ErrNotFound):
			now := time.Now().UTC()
			result, err = s.users.Create(txCtx, &domain.User{
				ID:         uuid.New(),
				ExternalID: input.ExternalID,
				Username:   input.Username,
				ChatID:     input.ChatID,
				CreatedAt:  now,
				UpdatedAt:  now,
			})
			if err != nil {
				return fmt.Errorf("create user: %w", err)
			}
			return nil

		default:
			return fmt.Errorf("get user: %w", err)
		}
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// LookupWithMemberships returns a user joined with its member-of and
// admin-of group sets. Read-only. Returns domain.ErrNotFound when no user
// has the given external id.
func (s *Service) LookupWithMemberships(ctx context.Context, externalID int64) (*domain.UserWithGroups, error) {
	if externalID <= 0 {
		return nil, domain.NewValidationError("external_id", "must be positive")
	}

	user, err := s.users.GetWithGroups(ctx, externalID)
	if err != nil {
		return nil, fmt.Errorf("get user with groups: %w", err)
	}

	return user, nil
}

// usernameEqual compares two optional usernames; two nils are equal.
func usernameEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// usernameForLog renders an optional username for log output.
func usernameForLog(s *string) string {
	if s == nil {
		return "<unset>"
	}
	return *s
}
