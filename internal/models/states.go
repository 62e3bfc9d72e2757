package models

import "fmt"

// Role defines what a user can do in the system.
type Role string

const (
	RoleTrainee Role = "trainee"
	RoleMentor  Role = "mentor"
	RoleAdmin   Role = "admin"
)

// ParseRole converts a string to a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleTrainee, RoleMentor, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// LearningState is the position of a task card in the learning workflow.
type LearningState string

const (
	StatePlanned         LearningState = "planned"
	StateInProgress      LearningState = "in_progress"
	StateReadyForReview  LearningState = "ready_for_review"
	StateReviewScheduled LearningState = "review_scheduled"
	StateApproved        LearningState = "approved"
	StateCancelled       LearningState = "cancelled"
)

// Terminal reports whether no further transitions are possible.
func (s LearningState) Terminal() bool {
	return s == StateApproved || s == StateCancelled
}

// ParseLearningState converts a string to a LearningState.
func ParseLearningState(s string) (LearningState, error) {
	switch LearningState(s) {
	case StatePlanned, StateInProgress, StateReadyForReview,
		StateReviewScheduled, StateApproved, StateCancelled:
		return LearningState(s), nil
	}
	return "", fmt.Errorf("unknown learning state %q", s)
}

// ReviewOutcome is the overall verdict of a single review.
type ReviewOutcome string

const (
	ReviewApproved ReviewOutcome = "approved"
	ReviewRejected ReviewOutcome = "rejected"
)

// ParseReviewOutcome converts a string to a ReviewOutcome.
func ParseReviewOutcome(s string) (ReviewOutcome, error) {
	switch ReviewOutcome(s) {
	case ReviewApproved, ReviewRejected:
		return ReviewOutcome(s), nil
	}
	return "", fmt.Errorf("unknown review outcome %q", s)
}

// QuestionRating grades a single question within a review.
type QuestionRating string

const (
	RatingCorrect   QuestionRating = "correct"
	RatingPartial   QuestionRating = "partial"
	RatingIncorrect QuestionRating = "incorrect"
)

// ParseQuestionRating converts a string to a QuestionRating.
func ParseQuestionRating(s string) (QuestionRating, error) {
	switch QuestionRating(s) {
	case RatingCorrect, RatingPartial, RatingIncorrect:
		return QuestionRating(s), nil
	}
	return "", fmt.Errorf("unknown question rating %q", s)
}
