package models

import (
	"time"

	"github.com/google/uuid"
)

// SessionLog records one continuous interval of work on a task card.
// EndedAt is nil while the session is running. A trainee has at most one
// open session across all their cards.
type SessionLog struct {
	ID         uuid.UUID
	TaskCardID uuid.UUID
	StartedAt  time.Time
	EndedAt    *time.Time
}

// NewSessionLog opens a session for a card starting now.
func NewSessionLog(taskCardID uuid.UUID, now time.Time) SessionLog {
	return SessionLog{
		ID:         uuid.New(),
		TaskCardID: taskCardID,
		StartedAt:  now,
	}
}

// Open reports whether the session is still running.
func (s SessionLog) Open() bool {
	return s.EndedAt == nil
}

// Closed returns a copy with the end time set.
func (s SessionLog) Closed(now time.Time) SessionLog {
	s.EndedAt = &now
	return s
}

// Duration is the elapsed time of a closed session. An open session
// contributes nothing until it is closed.
func (s SessionLog) Duration() time.Duration {
	if s.EndedAt == nil {
		return 0
	}
	return s.EndedAt.Sub(s.StartedAt)
}
