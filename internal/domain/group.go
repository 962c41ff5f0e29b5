package domain

import (
	"time"

	"github.com/google/uuid"
)

// Group is a named collection of users with two roles: members and admins.
// Both role sets live in pure association tables (groups_users,
// groups_admins); admin ⊆ member is a service-layer convention, not a
// storage constraint.
type Group struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

// GroupWithMembers is a group projection populated with its member-set and
// admin-set. Returned by operations that mutate group membership so the
// caller sees the resulting state without a second read.
type GroupWithMembers struct {
	Group
	Members []User
	Admins  []User
}

// HasMember reports whether the user is in the member-set.
func (g *GroupWithMembers) HasMember(userID uuid.UUID) bool {
	for _, u := range g.Members {
		if u.ID == userID {
			return true
		}
	}
	return false
}

// HasAdmin reports whether the user is in the admin-set.
func (g *GroupWithMembers) HasAdmin(userID uuid.UUID) bool {
	for _, u := range g.Admins {
		if u.ID == userID {
			return true
		}
	}
	return false
}
