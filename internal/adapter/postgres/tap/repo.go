// Package tap implements the Tap repository using PostgreSQL.
// Taps carry their temporal invariants as CHECK constraints; any violation
// surfaces as domain.ErrInvalidEntity and the enclosing transaction rolls
// back whole, so no invalid row is ever committed.
package tap

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/raulfrk/tappy/internal/adapter/postgres"
	"github.com/raulfrk/tappy/internal/domain"
)

// Repo provides tap persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new tap repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// psql is the squirrel statement builder with PostgreSQL placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ---------------------------------------------------------------------------
// SQL
// ---------------------------------------------------------------------------

const tapColumns = `id, description, source_user_id, scheduled_at, nagging_interval_seconds,
acked_until, acked_by_user_id, is_active, is_deleted, created_at, updated_at`

const createSQL = `
INSERT INTO taps (id, description, source_user_id, scheduled_at, nagging_interval_seconds,
                  acked_until, acked_by_user_id, is_active, is_deleted, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING ` + tapColumns

const getByIDSQL = `
SELECT ` + tapColumns + `
FROM taps
WHERE id = $1`

const addDestinationsSQL = `
INSERT INTO taps_destination_users (tap_id, user_id)
SELECT $1, unnest($2::uuid[])
ON CONFLICT DO NOTHING`

const destinationsSQL = `
SELECT user_id
FROM taps_destination_users
WHERE tap_id = $1
ORDER BY user_id`

const destinationsByTapIDsSQL = `
SELECT tap_id, user_id
FROM taps_destination_users
WHERE tap_id = ANY($1::uuid[])
ORDER BY tap_id, user_id`

const acknowledgeSQL = `
UPDATE taps
SET acked_until = $2, acked_by_user_id = $3, updated_at = now()
WHERE id = $1 AND is_deleted = FALSE
RETURNING ` + tapColumns

const deactivateSQL = `
UPDATE taps
SET is_active = FALSE, updated_at = now()
WHERE id = $1 AND is_deleted = FALSE`

const softDeleteSQL = `
UPDATE taps
SET is_deleted = TRUE, is_active = FALSE, updated_at = now()
WHERE id = $1 AND is_deleted = FALSE`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a tap by primary key with its destination user ids loaded.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tap, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	t, err := scanTap(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, mapError(err, "tap", id.String())
	}

	destinations, err := queryDestinations(ctx, querier, t.ID)
	if err != nil {
		return nil, fmt.Errorf("destinations of tap %s: %w", t.ID, err)
	}
	t.DestinationUserIDs = destinations

	return t, nil
}

// ListForDestination returns taps aimed at the filter's destination user,
// newest schedule first. Destination id sets are loaded in one batch query.
// Returns an empty slice (not nil) when nothing matches.
func (r *Repo) ListForDestination(ctx context.Context, filter domain.TapFilter) ([]*domain.Tap, error) {
	filter = normalizeFilter(filter)

	builder := psql.
		Select(
			"t.id", "t.description", "t.source_user_id", "t.scheduled_at",
			"t.nagging_interval_seconds", "t.acked_until", "t.acked_by_user_id",
			"t.is_active", "t.is_deleted", "t.created_at", "t.updated_at",
		).
		From("taps t").
		Join("taps_destination_users td ON td.tap_id = t.id").
		Where(sq.Eq{"td.user_id": filter.DestinationUserID}).
		OrderBy("t.scheduled_at DESC", "t.id").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	if filter.ActiveOnly {
		builder = builder.Where(sq.Eq{"t.is_active": true})
	}
	if !filter.IncludeDeleted {
		builder = builder.Where(sq.Eq{"t.is_deleted": false})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list taps: %w", err)
	}
	defer rows.Close()

	taps, err := scanTaps(rows)
	if err != nil {
		return nil, fmt.Errorf("list taps: %w", err)
	}

	if err := r.loadDestinations(ctx, querier, taps); err != nil {
		return nil, fmt.Errorf("list taps: %w", err)
	}

	return taps, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new tap and its destination associations.
// CHECK constraint violations map to domain.ErrInvalidEntity; a dangling
// source or destination user maps to domain.ErrNotFound.
func (r *Repo) Create(ctx context.Context, t *domain.Tap) (*domain.Tap, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	created, err := scanTap(querier.QueryRow(ctx, createSQL,
		t.ID, t.Description, t.SourceUserID, t.ScheduledAt, t.NaggingIntervalSeconds,
		ptrTimeToPgTimestamptz(t.AckedUntil), ptrUUIDToPgUUID(t.AckedByUserID),
		t.IsActive, t.IsDeleted, t.CreatedAt, t.UpdatedAt,
	))
	if err != nil {
		return nil, mapError(err, "tap", t.ID.String())
	}

	if len(t.DestinationUserIDs) > 0 {
		if _, err := querier.Exec(ctx, addDestinationsSQL, created.ID, t.DestinationUserIDs); err != nil {
			return nil, mapError(err, "tap_destination", created.ID.String())
		}
	}

	destinations, err := queryDestinations(ctx, querier, created.ID)
	if err != nil {
		return nil, fmt.Errorf("destinations of tap %s: %w", created.ID, err)
	}
	created.DestinationUserIDs = destinations

	return created, nil
}

// Acknowledge sets the acknowledging user and the acked-until deadline.
// The CHECK constraints reject deadlines not strictly after created_at and
// scheduled_at (domain.ErrInvalidEntity). Returns domain.ErrNotFound for an
// unknown or soft-deleted tap.
func (r *Repo) Acknowledge(ctx context.Context, id uuid.UUID, ackedBy uuid.UUID, until time.Time) (*domain.Tap, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	t, err := scanTap(querier.QueryRow(ctx, acknowledgeSQL, id, until, ackedBy))
	if err != nil {
		return nil, mapError(err, "tap", id.String())
	}

	destinations, err := queryDestinations(ctx, querier, t.ID)
	if err != nil {
		return nil, fmt.Errorf("destinations of tap %s: %w", t.ID, err)
	}
	t.DestinationUserIDs = destinations

	return t, nil
}

// Deactivate clears the active flag. Returns domain.ErrNotFound for an
// unknown or soft-deleted tap.
func (r *Repo) Deactivate(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deactivateSQL, id)
	if err != nil {
		return mapError(err, "tap", id.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("tap %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// SoftDelete marks the tap deleted and inactive. Taps are never hard-deleted
// except via the owner cascade. Returns domain.ErrNotFound for an unknown or
// already-deleted tap.
func (r *Repo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, softDeleteSQL, id)
	if err != nil {
		return mapError(err, "tap", id.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("tap %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

// scanTap scans a single tap row (destinations not included).
func scanTap(row pgx.Row) (*domain.Tap, error) {
	var (
		t          domain.Tap
		ackedUntil pgtype.Timestamptz
		ackedBy    pgtype.UUID
	)

	err := row.Scan(
		&t.ID, &t.Description, &t.SourceUserID, &t.ScheduledAt, &t.NaggingIntervalSeconds,
		&ackedUntil, &ackedBy, &t.IsActive, &t.IsDeleted, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if ackedUntil.Valid {
		t.AckedUntil = &ackedUntil.Time
	}
	if ackedBy.Valid {
		id := uuid.UUID(ackedBy.Bytes)
		t.AckedByUserID = &id
	}

	return &t, nil
}

// scanTaps scans multiple tap rows.
func scanTaps(rows pgx.Rows) ([]*domain.Tap, error) {
	var result []*domain.Tap
	for rows.Next() {
		t, err := scanTap(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []*domain.Tap{}
	}

	return result, nil
}

// queryDestinations returns the destination user ids of one tap.
// Returns an empty slice (not nil) when the tap has no destinations.
func queryDestinations(ctx context.Context, querier postgres.Querier, tapID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := querier.Query(ctx, destinationsSQL, tapID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		result = append(result, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []uuid.UUID{}
	}

	return result, nil
}

// loadDestinations fills DestinationUserIDs for a batch of taps in one query.
func (r *Repo) loadDestinations(ctx context.Context, querier postgres.Querier, taps []*domain.Tap) error {
	if len(taps) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(taps))
	byID := make(map[uuid.UUID]*domain.Tap, len(taps))
	for i, t := range taps {
		ids[i] = t.ID
		byID[t.ID] = t
		t.DestinationUserIDs = []uuid.UUID{}
	}

	rows, err := querier.Query(ctx, destinationsByTapIDsSQL, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var tapID, userID uuid.UUID
		if err := rows.Scan(&tapID, &userID); err != nil {
			return err
		}
		if t, ok := byID[tapID]; ok {
			t.DestinationUserIDs = append(t.DestinationUserIDs, userID)
		}
	}

	return rows.Err()
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

// ptrTimeToPgTimestamptz converts a *time.Time to pgtype.Timestamptz (nil -> NULL).
func ptrTimeToPgTimestamptz(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}

// ptrUUIDToPgUUID converts a *uuid.UUID to pgtype.UUID (nil -> NULL).
func ptrUUIDToPgUUID(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{}
	}
	return pgtype.UUID{Bytes: *id, Valid: true}
}
