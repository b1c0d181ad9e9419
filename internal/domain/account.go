package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// WelcomeBonus is granted to every newly registered user.
const WelcomeBonus = 100

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// Role identifies both the account partition and the role carried in tokens.
type Role string

const (
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
	RoleHost      Role = "host"
	RoleModerator Role = "moderator"
)

// AllRoles lists every account partition.
var AllRoles = []Role{RoleUser, RoleAdmin, RoleHost, RoleModerator}

// IsValid checks if a role names a known partition
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleHost, RoleModerator:
		return true
	}
	return false
}

// IsStaff reports whether the role belongs to one of the staff partitions.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleHost || r == RoleModerator
}

func (r Role) String() string {
	return string(r)
}

// Account is a single record in one of the four account partitions. Kind
// selects the partition; Points and Avatar are only meaningful for users.
type Account struct {
	ID           uuid.UUID `json:"id"`
	Kind         Role      `json:"role"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Avatar       *string   `json:"avatar,omitempty"`
	Points       int       `json:"points"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IsUser reports whether the account lives in the user partition.
func (a *Account) IsUser() bool {
	return a.Kind == RoleUser
}

// ProfileUpdate carries the optional fields a user may change on their
// own profile. Nil fields are left untouched.
type ProfileUpdate struct {
	Name   *string
	Avatar *string
}

// IsEmpty reports whether the update carries no changes.
func (u ProfileUpdate) IsEmpty() bool {
	return u.Name == nil && u.Avatar == nil
}

// NormalizeEmail lower-cases and trims an email before any lookup or store.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
