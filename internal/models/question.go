package models

import (
	"time"

	"github.com/google/uuid"
)

// CheckQuestion is a reusable question in the question bank for one
// technology. Archiving (Active=false) hides a question from new checks
// without breaking the history of past results.
type CheckQuestion struct {
	ID                uuid.UUID
	TechnologyID      uuid.UUID
	Text              string
	Active            bool
	CreatedAt         time.Time
	CreatedByMentorID uuid.UUID
}

// NewCheckQuestion creates an active question for a technology.
func NewCheckQuestion(technologyID, mentorID uuid.UUID, text string, now time.Time) CheckQuestion {
	return CheckQuestion{
		ID:                uuid.New(),
		TechnologyID:      technologyID,
		Text:              text,
		Active:            true,
		CreatedAt:         now,
		CreatedByMentorID: mentorID,
	}
}

// WithText returns a copy with the question text changed.
func (q CheckQuestion) WithText(text string) CheckQuestion {
	q.Text = text
	return q
}

// Archived returns a copy marked inactive.
func (q CheckQuestion) Archived() CheckQuestion {
	q.Active = false
	return q
}

// CheckQuestionResult is the rating one question received during one
// review. A review owns its batch of results; they are written together
// with the review or not at all.
type CheckQuestionResult struct {
	ID         uuid.UUID
	ReviewID   uuid.UUID
	QuestionID uuid.UUID
	Rating     QuestionRating
	Comment    string
}

// NewCheckQuestionResult creates a result linking a review to a question.
func NewCheckQuestionResult(reviewID, questionID uuid.UUID, rating QuestionRating, comment string) CheckQuestionResult {
	return CheckQuestionResult{
		ID:         uuid.New(),
		ReviewID:   reviewID,
		QuestionID: questionID,
		Rating:     rating,
		Comment:    comment,
	}
}
