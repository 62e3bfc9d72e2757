package models

import (
	"time"

	"github.com/google/uuid"
)

// StatusUpdate is a daily progress note submitted by a trainee.
type StatusUpdate struct {
	ID        uuid.UUID
	TraineeID uuid.UUID
	CreatedAt time.Time
	Text      string
}

// NewStatusUpdate creates a status update for a trainee.
func NewStatusUpdate(traineeID uuid.UUID, text string, now time.Time) StatusUpdate {
	return StatusUpdate{
		ID:        uuid.New(),
		TraineeID: traineeID,
		CreatedAt: now,
		Text:      text,
	}
}

// StatusFeedback is a mentor's comment on a specific status update.
type StatusFeedback struct {
	ID             uuid.UUID
	StatusUpdateID uuid.UUID
	MentorID       uuid.UUID
	Text           string
	CreatedAt      time.Time
}

// NewStatusFeedback creates a feedback comment on a status update.
func NewStatusFeedback(statusUpdateID, mentorID uuid.UUID, text string, now time.Time) StatusFeedback {
	return StatusFeedback{
		ID:             uuid.New(),
		StatusUpdateID: statusUpdateID,
		MentorID:       mentorID,
		Text:           text,
		CreatedAt:      now,
	}
}
