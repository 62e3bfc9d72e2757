package models

import "github.com/google/uuid"

// Technology is a catalog entry for a skill a trainee can learn
// (e.g. "python", "docker"). Names are stored normalized lowercase.
type Technology struct {
	ID   uuid.UUID
	Name string
}
