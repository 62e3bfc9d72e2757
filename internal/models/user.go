package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a person in the system: a trainee, a mentor, or an admin.
// Value record; derive changed copies instead of mutating in place.
type User struct {
	ID        uuid.UUID
	Email     string
	FullName  string
	AvatarURL string
	Role      Role
	Active    bool
	CreatedAt time.Time
	MentorID  uuid.UUID // assigned mentor, zero for mentors/admins
}

// WithActive returns a copy with the active flag changed.
func (u User) WithActive(active bool) User {
	u.Active = active
	return u
}
