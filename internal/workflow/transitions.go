package workflow

import "github.com/mentahq/menta/internal/models"

// transitions lists every legal move in the learning workflow.
//
//	planned -> in_progress -> ready_for_review -> review_scheduled -> approved
//
// A rejected review sends a card back to a revisable state, and any
// non-terminal card can be cancelled. approved and cancelled are terminal.
var transitions = map[models.LearningState][]models.LearningState{
	models.StatePlanned: {
		models.StateInProgress,
		models.StateCancelled,
	},
	models.StateInProgress: {
		models.StateReadyForReview,
		models.StateCancelled,
	},
	models.StateReadyForReview: {
		models.StateInProgress,
		models.StateReviewScheduled,
		models.StateApproved,
		models.StatePlanned,
		models.StateCancelled,
	},
	models.StateReviewScheduled: {
		models.StateApproved,
		models.StateReadyForReview,
		models.StateInProgress,
		models.StatePlanned,
		models.StateCancelled,
	},
	models.StateApproved:  {},
	models.StateCancelled: {},
}

// startable is the set of states a trainee can start learning from. It is
// narrower than the transition table: a rejected review can route a card
// from review_scheduled back to in_progress, but a trainee cannot start a
// card while its review is booked.
var startable = map[models.LearningState]bool{
	models.StatePlanned:        true,
	models.StateReadyForReview: true,
}

// ValidateStart returns the typed error when a trainee may not start
// learning from the card's current state.
func ValidateStart(from models.LearningState) error {
	if !startable[from] {
		return &models.InvalidTransitionError{From: from, To: models.StateInProgress}
	}
	return nil
}

// CanTransition reports whether moving from one state to another is legal.
func CanTransition(from, to models.LearningState) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns the typed error for an illegal move.
func ValidateTransition(from, to models.LearningState) error {
	if !CanTransition(from, to) {
		return &models.InvalidTransitionError{From: from, To: to}
	}
	return nil
}
