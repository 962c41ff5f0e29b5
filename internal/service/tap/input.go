package tap

import (
	"time"

	"github.com/google/uuid"

	"github.com/raulfrk/tappy/internal/domain"
)

// CreateInput holds everything needed to schedule a new tap.
// A zero NaggingIntervalSeconds means "use the default".
type CreateInput struct {
	Description            string
	SourceExternalID       int64
	DestinationExternalIDs []int64
	ScheduledAt            time.Time
	NaggingIntervalSeconds int64
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	if i.Description == "" {
		errs = append(errs, domain.FieldError{Field: "description", Message: "required"})
	}
	if i.SourceExternalID <= 0 {
		errs = append(errs, domain.FieldError{Field: "source_external_id", Message: "must be positive"})
	}
	for _, id := range i.DestinationExternalIDs {
		if id <= 0 {
			errs = append(errs, domain.FieldError{Field: "destination_external_ids", Message: "must be positive"})
			break
		}
	}
	if i.ScheduledAt.IsZero() {
		errs = append(errs, domain.FieldError{Field: "scheduled_at", Message: "required"})
	}
	if i.NaggingIntervalSeconds < 0 {
		errs = append(errs, domain.FieldError{Field: "nagging_interval_seconds", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// AckInput identifies the tap being acknowledged, by whom, and until when.
type AckInput struct {
	TapID            uuid.UUID
	AckingExternalID int64
	AckedUntil       time.Time
}

// Validate checks all fields and collects all errors.
func (i AckInput) Validate() error {
	var errs []domain.FieldError

	if i.TapID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "tap_id", Message: "required"})
	}
	if i.AckingExternalID <= 0 {
		errs = append(errs, domain.FieldError{Field: "acking_external_id", Message: "must be positive"})
	}
	if i.AckedUntil.IsZero() {
		errs = append(errs, domain.FieldError{Field: "acked_until", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListInput selects taps aimed at one destination user.
type ListInput struct {
	DestinationExternalID int64
	ActiveOnly            bool
	Limit                 int
	Offset                int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError

	if i.DestinationExternalID <= 0 {
		errs = append(errs, domain.FieldError{Field: "destination_external_id", Message: "must be positive"})
	}
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must not be negative"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
