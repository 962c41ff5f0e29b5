// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/raulfrk/tappy/internal/adapter/postgres"
	"github.com/raulfrk/tappy/internal/domain"
)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL
// ---------------------------------------------------------------------------

const userColumns = `id, external_id, username, chat_id, created_at, updated_at`

const getByExternalIDSQL = `
SELECT ` + userColumns + `
FROM users
WHERE external_id = $1`

const getByIDSQL = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1`

const createSQL = `
INSERT INTO users (id, external_id, username, chat_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (external_id) DO NOTHING
RETURNING ` + userColumns

const updateUsernameSQL = `
UPDATE users
SET username = $2, updated_at = now()
WHERE id = $1
RETURNING ` + userColumns

const memberGroupsSQL = `
SELECT g.id, g.name, g.created_at
FROM groups_users gu
JOIN groups g ON gu.group_id = g.id
WHERE gu.user_id = $1
ORDER BY g.name`

const adminGroupsSQL = `
SELECT g.id, g.name, g.created_at
FROM groups_admins ga
JOIN groups g ON ga.group_id = g.id
WHERE ga.user_id = $1
ORDER BY g.name`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByExternalID returns a user by its stable chat-platform identity.
// Returns domain.ErrNotFound if no such user exists.
func (r *Repo) GetByExternalID(ctx context.Context, externalID int64) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(querier.QueryRow(ctx, getByExternalIDSQL, externalID))
	if err != nil {
		return nil, mapError(err, "user", fmt.Sprintf("external_id=%d", externalID))
	}

	return u, nil
}

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, mapError(err, "user", id.String())
	}

	return u, nil
}

// GetWithGroups returns a user joined with its member-of and admin-of group
// sets. Returns domain.ErrNotFound if the user does not exist; the group
// slices are empty (not nil) when the user belongs to no groups.
func (r *Repo) GetWithGroups(ctx context.Context, externalID int64) (*domain.UserWithGroups, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(querier.QueryRow(ctx, getByExternalIDSQL, externalID))
	if err != nil {
		return nil, mapError(err, "user", fmt.Sprintf("external_id=%d", externalID))
	}

	groups, err := queryGroups(ctx, querier, memberGroupsSQL, u.ID)
	if err != nil {
		return nil, fmt.Errorf("member groups for user %s: %w", u.ID, err)
	}

	adminOf, err := queryGroups(ctx, querier, adminGroupsSQL, u.ID)
	if err != nil {
		return nil, fmt.Errorf("admin groups for user %s: %w", u.ID, err)
	}

	return &domain.UserWithGroups{User: *u, Groups: groups, AdminOf: adminOf}, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new user and returns the persisted row. The insert is
// upsert-safe: on a concurrent insert of the same external_id the statement
// is a no-op (ON CONFLICT DO NOTHING) and the already-persisted row is
// returned instead, so concurrent creates of one identity converge.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	created, err := scanUser(querier.QueryRow(ctx, createSQL,
		u.ID, u.ExternalID, ptrStringToPgText(u.Username), u.ChatID, u.CreatedAt, u.UpdatedAt,
	))
	if err == nil {
		return created, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, mapError(err, "user", fmt.Sprintf("external_id=%d", u.ExternalID))
	}

	// Conflict path: the row already exists, read it back.
	return r.GetByExternalID(ctx, u.ExternalID)
}

// UpdateUsername performs the single reconciling write for a changed display
// name. Returns domain.ErrNotFound if the user does not exist.
func (r *Repo) UpdateUsername(ctx context.Context, id uuid.UUID, username *string) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(querier.QueryRow(ctx, updateUsernameSQL, id, ptrStringToPgText(username)))
	if err != nil {
		return nil, mapError(err, "user", id.String())
	}

	return u, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

// scanUser scans a single user row.
func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u        domain.User
		username pgtype.Text
	)

	if err := row.Scan(&u.ID, &u.ExternalID, &username, &u.ChatID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}

	u.Username = pgTextToPtr(username)
	return &u, nil
}

// queryGroups runs a group-list query keyed by user id and scans the result.
func queryGroups(ctx context.Context, querier postgres.Querier, sql string, userID uuid.UUID) ([]domain.Group, error) {
	rows, err := querier.Query(ctx, sql, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Group
	for rows.Next() {
		var (
			id        uuid.UUID
			name      string
			createdAt time.Time
		)
		if err := rows.Scan(&id, &name, &createdAt); err != nil {
			return nil, err
		}
		result = append(result, domain.Group{ID: id, Name: name, CreatedAt: createdAt})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []domain.Group{}
	}

	return result, nil
}

// ---------------------------------------------------------------------------
// Error mapping
// ---------------------------------------------------------------------------

// mapError converts pgx/pgconn errors into domain errors.
func mapError(err error, entity, ref string) error {
	if err == nil {
		return nil
	}

	// context errors pass through as-is
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, ref, err)
	}

	// pgx.ErrNoRows -> domain.ErrNotFound
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, ref, domain.ErrNotFound)
	}

	// PgError codes
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %s: %w", entity, ref, domain.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %s: %w", entity, ref, domain.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, ref, domain.ErrInvalidEntity)
		}
	}

	// Everything else: wrap with context
	return fmt.Errorf("%s %s: %w", entity, ref, err)
}

// ---------------------------------------------------------------------------
// pgtype helpers
// ---------------------------------------------------------------------------

// pgTextToPtr returns a *string (nil when NULL).
func pgTextToPtr(t pgtype.Text) *string {
	if t.Valid {
		return &t.String
	}
	return nil
}

// ptrStringToPgText converts a *string to pgtype.Text (nil -> NULL).
func ptrStringToPgText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}
