package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskCard tracks one trainee learning one technology. There is at most
// one card per (trainee, technology) pair; the store enforces that.
type TaskCard struct {
	ID                uuid.UUID
	TraineeID         uuid.UUID
	TechnologyID      uuid.UUID
	MentorID          uuid.UUID
	State             LearningState
	AddedAt           time.Time
	ScheduledReviewAt *time.Time
}

// NewTaskCard creates a card in the planned state.
func NewTaskCard(traineeID, technologyID, mentorID uuid.UUID, now time.Time) TaskCard {
	return TaskCard{
		ID:           uuid.New(),
		TraineeID:    traineeID,
		TechnologyID: technologyID,
		MentorID:     mentorID,
		State:        StatePlanned,
		AddedAt:      now,
	}
}

// WithState returns a copy in the given state.
func (c TaskCard) WithState(s LearningState) TaskCard {
	c.State = s
	return c
}

// WithScheduledReview returns a copy with the review time set and the
// card moved to the review-scheduled state.
func (c TaskCard) WithScheduledReview(at time.Time) TaskCard {
	c.State = StateReviewScheduled
	c.ScheduledReviewAt = &at
	return c
}
