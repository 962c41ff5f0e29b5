package testhelper

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/raulfrk/tappy/internal/domain"
)

// nextExternalID returns a random positive chat-platform id. Random rather
// than sequential so that tests sharing the container never collide on the
// external_id unique index.
func nextExternalID() int64 {
	return rand.Int64N(1<<62) + 1
}

// SeedUser creates a user with a unique external id.
// Returns a filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	username := "user-" + uuid.New().String()[:8]
	user := domain.User{
		ID:         uuid.New(),
		ExternalID: nextExternalID(),
		Username:   &username,
		ChatID:     nextExternalID(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, external_id, username, chat_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.ExternalID, *user.Username, user.ChatID, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert: %v", err)
	}

	return user
}

// SeedGroup creates a group with a unique name and no members.
func SeedGroup(t *testing.T, pool *pgxpool.Pool) domain.Group {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	group := domain.Group{
		ID:        uuid.New(),
		Name:      "group-" + uuid.New().String()[:8],
		CreatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO groups (id, name, created_at) VALUES ($1, $2, $3)`,
		group.ID, group.Name, group.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedGroup insert: %v", err)
	}

	return group
}

// SeedMember adds the user to the group's member-set.
func SeedMember(t *testing.T, pool *pgxpool.Pool, userID, groupID uuid.UUID) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO groups_users (user_id, group_id) VALUES ($1, $2)`,
		userID, groupID,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedMember insert: %v", err)
	}
}

// SeedAdmin adds the user to the group's admin-set (and member-set, keeping
// the service-layer convention that admins are members).
func SeedAdmin(t *testing.T, pool *pgxpool.Pool, userID, groupID uuid.UUID) {
	t.Helper()

	SeedMember(t, pool, userID, groupID)

	_, err := pool.Exec(context.Background(),
		`INSERT INTO groups_admins (user_id, group_id) VALUES ($1, $2)`,
		userID, groupID,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedAdmin insert: %v", err)
	}
}

// SeedTap creates an active tap owned by the given source user, scheduled
// one hour after creation, with the default nagging interval.
func SeedTap(t *testing.T, pool *pgxpool.Pool, sourceUserID uuid.UUID, destinationIDs ...uuid.UUID) domain.Tap {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	tap := domain.Tap{
		ID:                     uuid.New(),
		Description:            "tap-" + uuid.New().String()[:8],
		SourceUserID:           sourceUserID,
		DestinationUserIDs:     destinationIDs,
		ScheduledAt:            now.Add(time.Hour),
		NaggingIntervalSeconds: domain.DefaultNaggingIntervalSeconds,
		IsActive:               true,
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO taps (id, description, source_user_id, scheduled_at, nagging_interval_seconds,
		                   is_active, is_deleted, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		tap.ID, tap.Description, tap.SourceUserID, tap.ScheduledAt, tap.NaggingIntervalSeconds,
		tap.IsActive, tap.IsDeleted, tap.CreatedAt, tap.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTap insert tap: %v", err)
	}

	for _, dst := range destinationIDs {
		_, err := pool.Exec(ctx,
			`INSERT INTO taps_destination_users (tap_id, user_id) VALUES ($1, $2)`,
			tap.ID, dst,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedTap insert destination: %v", err)
		}
	}

	return tap
}
