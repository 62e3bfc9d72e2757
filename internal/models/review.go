package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is one review attempt (a "check") on a task card. Reviews are
// append-only: one record per attempt, never updated.
type Review struct {
	ID         uuid.UUID
	TaskCardID uuid.UUID
	MentorID   uuid.UUID
	Outcome    ReviewOutcome
	Feedback   string
	CreatedAt  time.Time
}

// NewReview creates a review record for a card.
func NewReview(taskCardID, mentorID uuid.UUID, outcome ReviewOutcome, feedback string, now time.Time) Review {
	return Review{
		ID:         uuid.New(),
		TaskCardID: taskCardID,
		MentorID:   mentorID,
		Outcome:    outcome,
		Feedback:   feedback,
		CreatedAt:  now,
	}
}
