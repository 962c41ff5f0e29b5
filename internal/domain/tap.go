package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultNaggingIntervalSeconds is the escalation interval applied when a
// tap is created without one.
const DefaultNaggingIntervalSeconds int64 = 300

// Tap is a scheduled reminder owned by a source user and aimed at zero or
// more destination users. The dispatcher that would re-notify destinations
// every nagging interval until acknowledgement lives outside this core; only
// the durable shape and its invariants are modeled here.
//
// Temporal invariants, enforced by CHECK constraints at the storage boundary
// and mirrored by Validate:
//   - AckedUntil, if set, is strictly after CreatedAt.
//   - ScheduledAt is strictly after CreatedAt.
//   - NaggingIntervalSeconds is strictly positive.
//   - AckedUntil, if set, is strictly after ScheduledAt.
type Tap struct {
	ID                     uuid.UUID
	Description            string
	SourceUserID           uuid.UUID
	DestinationUserIDs     []uuid.UUID
	ScheduledAt            time.Time
	NaggingIntervalSeconds int64
	AckedUntil             *time.Time
	AckedByUserID          *uuid.UUID
	IsActive               bool
	IsDeleted              bool
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// Validate checks the tap's temporal and positivity invariants. The storage
// CHECK constraints are authoritative; this mirror exists so services can
// fail fast without a round trip.
func (t *Tap) Validate() error {
	var errs []FieldError

	if t.Description == "" {
		errs = append(errs, FieldError{Field: "description", Message: "required"})
	}
	if t.SourceUserID == uuid.Nil {
		errs = append(errs, FieldError{Field: "source_user_id", Message: "required"})
	}
	if t.NaggingIntervalSeconds <= 0 {
		errs = append(errs, FieldError{Field: "nagging_interval_seconds", Message: "must be positive"})
	}
	if !t.ScheduledAt.After(t.CreatedAt) {
		errs = append(errs, FieldError{Field: "scheduled_at", Message: "must be after created_at"})
	}
	if t.AckedUntil != nil {
		if !t.AckedUntil.After(t.CreatedAt) {
			errs = append(errs, FieldError{Field: "acked_until", Message: "must be after created_at"})
		}
		if !t.AckedUntil.After(t.ScheduledAt) {
			errs = append(errs, FieldError{Field: "acked_until", Message: "must be after scheduled_at"})
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// IsAcked reports whether the tap is acknowledged at the given instant.
func (t *Tap) IsAcked(now time.Time) bool {
	return t.AckedUntil != nil && now.Before(*t.AckedUntil)
}
