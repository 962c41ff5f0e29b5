package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an identity record for a chat-platform user.
// ExternalID is the stable, caller-supplied platform identity (unique across
// all users); ID is the internal surrogate key assigned at creation.
type User struct {
	ID         uuid.UUID
	ExternalID int64
	Username   *string
	ChatID     int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// UserWithGroups is the read-only projection of a user joined with its
// member-of and admin-of group sets. Groups carry no member lists here so
// the projection stays a flat, cycle-free value.
type UserWithGroups struct {
	User
	Groups  []Group
	AdminOf []Group
}

// IsMemberOf reports whether the projection contains the given group in its
// member-of set.
func (u *UserWithGroups) IsMemberOf(groupID uuid.UUID) bool {
	for _, g := range u.Groups {
		if g.ID == groupID {
			return true
		}
	}
	return false
}

// IsAdminOf reports whether the projection contains the given group in its
// admin-of set.
func (u *UserWithGroups) IsAdminOf(groupID uuid.UUID) bool {
	for _, g := range u.AdminOf {
		if g.ID == groupID {
			return true
		}
	}
	return false
}
