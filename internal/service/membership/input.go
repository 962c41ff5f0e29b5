package membership

import (
	"strings"

	"github.com/raulfrk/tappy/internal/domain"
)

const maxGroupNameLength = 100

// CreateGroupInput holds the parameters for creating a group.
type CreateGroupInput struct {
	Name              string
	FounderExternalID int64
}

// Validate checks all fields and collects all errors.
func (i CreateGroupInput) Validate() error {
	var errs []domain.FieldError

	errs = appendNameErrors(errs, i.Name)
	errs = appendIDErrors(errs, "founder_external_id", i.FounderExternalID)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// PromoteInput holds the parameters for promoting a member to admin.
type PromoteInput struct {
	GroupName        string
	ActingExternalID int64
	TargetExternalID int64
}

// Validate checks all fields and collects all errors.
func (i PromoteInput) Validate() error {
	var errs []domain.FieldError

	errs = appendNameErrors(errs, i.GroupName)
	errs = appendIDErrors(errs, "acting_external_id", i.ActingExternalID)
	errs = appendIDErrors(errs, "target_external_id", i.TargetExternalID)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// AssignInput holds the parameters for joining a group.
type AssignInput struct {
	GroupName  string
	ExternalID int64
}

// Validate checks all fields and collects all errors.
func (i AssignInput) Validate() error {
	var errs []domain.FieldError

	errs = appendNameErrors(errs, i.GroupName)
	errs = appendIDErrors(errs, "external_id", i.ExternalID)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ExitInput holds the parameters for leaving a group.
type ExitInput struct {
	GroupName  string
	ExternalID int64
}

// Validate checks all fields and collects all errors.
func (i ExitInput) Validate() error {
	var errs []domain.FieldError

	errs = appendNameErrors(errs, i.GroupName)
	errs = appendIDErrors(errs, "external_id", i.ExternalID)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// KickInput holds the parameters for kicking a member out of a group.
type KickInput struct {
	GroupName        string
	KickerExternalID int64
	TargetExternalID int64
}

// Validate checks all fields and collects all errors.
func (i KickInput) Validate() error {
	var errs []domain.FieldError

	errs = appendNameErrors(errs, i.GroupName)
	errs = appendIDErrors(errs, "kicker_external_id", i.KickerExternalID)
	errs = appendIDErrors(errs, "target_external_id", i.TargetExternalID)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func appendNameErrors(errs []domain.FieldError, name string) []domain.FieldError {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if len(trimmed) > maxGroupNameLength {
		errs = append(errs, domain.FieldError{Field: "name", Message: "max 100 characters"})
	}
	return errs
}

func appendIDErrors(errs []domain.FieldError, field string, id int64) []domain.FieldError {
	if id <= 0 {
		errs = append(errs, domain.FieldError{Field: field, Message: "must be positive"})
	}
	return errs
}
