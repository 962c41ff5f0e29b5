package directory

import (
	"github.com/raulfrk/tappy/internal/domain"
)

// UpsertInput holds the resolved identity of an inbound chat event.
type UpsertInput struct {
	ExternalID int64
	Username   *string
	ChatID     int64
}

// Validate checks all fields and collects all errors.
func (i UpsertInput) Validate() error {
	var errs []domain.FieldError

	if i.ExternalID <= 0 {
		errs = append(errs, domain.FieldError{Field: "external_id", Message: "must be positive"})
	}
	if i.ChatID == 0 {
		errs = append(errs, domain.FieldError{Field: "chat_id", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
