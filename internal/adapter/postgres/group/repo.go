// Package group implements the Group repository using PostgreSQL.
// It owns the groups table and the two pure association tables that carry
// the member-set (groups_users) and the admin-set (groups_admins).
package group

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/raulfrk/tappy/internal/adapter/postgres"
	"github.com/raulfrk/tappy/internal/domain"
)

// Repo provides group and membership persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new group repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL
// ---------------------------------------------------------------------------

const createSQL = `
INSERT INTO groups (id, name, created_at)
VALUES ($1, $2, $3)
RETURNING id, name, created_at`

const getByNameSQL = `
SELECT id, name, created_at
FROM groups
WHERE name = $1`

const addMemberSQL = `
INSERT INTO groups_users (user_id, group_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING`

const removeMemberSQL = `
DELETE FROM groups_users
WHERE user_id = $1 AND group_id = $2`

const addAdminSQL = `
INSERT INTO groups_admins (user_id, group_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING`

const isMemberSQL = `
SELECT EXISTS (
    SELECT 1 FROM groups_users WHERE user_id = $1 AND group_id = $2
)`

const isAdminSQL = `
SELECT EXISTS (
    SELECT 1 FROM groups_admins WHERE user_id = $1 AND group_id = $2
)`

const membersSQL = `
SELECT u.id, u.external_id, u.username, u.chat_id, u.created_at, u.updated_at
FROM groups_users gu
JOIN users u ON gu.user_id = u.id
WHERE gu.group_id = $1
ORDER BY u.external_id`

const adminsSQL = `
SELECT u.id, u.external_id, u.username, u.chat_id, u.created_at, u.updated_at
FROM groups_admins ga
JOIN users u ON ga.user_id = u.id
WHERE ga.group_id = $1
ORDER BY u.external_id`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByName returns a group by its exact, case-sensitive name.
// Returns domain.ErrNotFound if no such group exists.
func (r *Repo) GetByName(ctx context.Context, name string) (*domain.Group, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	g, err := scanGroup(querier.QueryRow(ctx, getByNameSQL, name))
	if err != nil {
		return nil, mapError(err, "group", name)
	}

	return g, nil
}

// GetWithMembers returns a group populated with its member-set and admin-set.
func (r *Repo) GetWithMembers(ctx context.Context, name string) (*domain.GroupWithMembers, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	g, err := scanGroup(querier.QueryRow(ctx, getByNameSQL, name))
	if err != nil {
		return nil, mapError(err, "group", name)
	}

	members, err := queryUsers(ctx, querier, membersSQL, g.ID)
	if err != nil {
		return nil, fmt.Errorf("members of group %s: %w", g.ID, err)
	}

	admins, err := queryUsers(ctx, querier, adminsSQL, g.ID)
	if err != nil {
		return nil, fmt.Errorf("admins of group %s: %w", g.ID, err)
	}

	return &domain.GroupWithMembers{Group: *g, Members: members, Admins: admins}, nil
}

// IsMember reports whether the user is in the group's member-set.
func (r *Repo) IsMember(ctx context.Context, userID, groupID uuid.UUID) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	if err := querier.QueryRow(ctx, isMemberSQL, userID, groupID).Scan(&exists); err != nil {
		return false, fmt.Errorf("is member: %w", err)
	}

	return exists, nil
}

// IsAdmin reports whether the user is in the group's admin-set.
func (r *Repo) IsAdmin(ctx context.Context, userID, groupID uuid.UUID) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	if err := querier.QueryRow(ctx, isAdminSQL, userID, groupID).Scan(&exists); err != nil {
		return false, fmt.Errorf("is admin: %w", err)
	}

	return exists, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new group.
// Returns domain.ErrAlreadyExists if a group with the same name exists.
func (r *Repo) Create(ctx context.Context, g *domain.Group) (*domain.Group, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	created, err := scanGroup(querier.QueryRow(ctx, createSQL, g.ID, g.Name, g.CreatedAt))
	if err != nil {
		return nil, mapError(err, "group", g.Name)
	}

	return created, nil
}

// AddMember adds the user to the group's member-set.
// Idempotent: adding an existing member is not an error (ON CONFLICT DO NOTHING).
func (r *Repo) AddMember(ctx context.Context, userID, groupID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, addMemberSQL, userID, groupID); err != nil {
		return mapError(err, "group_member", groupID.String())
	}

	return nil
}

// RemoveMember removes the user from the group's member-set.
// Not an error if the user was never a member (0 rows affected is OK).
// The admin-set is left untouched.
func (r *Repo) RemoveMember(ctx context.Context, userID, groupID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, removeMemberSQL, userID, groupID); err != nil {
		return mapError(err, "group_member", groupID.String())
	}

	return nil
}

// AddAdmin adds the user to the group's admin-set.
// Idempotent: promoting an existing admin is not an error (ON CONFLICT DO NOTHING).
func (r *Repo) AddAdmin(ctx context.Context, userID, groupID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, addAdminSQL, userID, groupID); err != nil {
		return mapError(err, "group_admin", groupID.String())
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

// scanGroup scans a single group row.
func scanGroup(row pgx.Row) (*domain.Group, error) {
	var g domain.Group
	if err := row.Scan(&g.ID, &g.Name, &g.CreatedAt); err != nil {
		return nil, err
	}
	return &g, nil
}

// queryUsers runs a user-list query keyed by group id and scans the result.
// Returns an empty slice (not nil) when the set is empty.
func queryUsers(ctx context.Context, querier postgres.Querier, sql string, groupID uuid.UUID) ([]domain.User, error) {
	rows, err := querier.Query(ctx, sql, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		var (
			u        domain.User
			username pgtype.Text
		)
		if err := rows.Scan(&u.ID, &u.ExternalID, &username, &u.ChatID, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		if username.Valid {
			u.Username = &username.String
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []domain.User{}
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
