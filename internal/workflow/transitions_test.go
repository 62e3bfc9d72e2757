package workflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentahq/menta/internal/models"
	"github.com/mentahq/menta/internal/workflow"
)

func TestTransitionTable(t *testing.T) {
	allowed := map[models.LearningState][]models.LearningState{
		models.StatePlanned:         {models.StateInProgress, models.StateCancelled},
		models.StateInProgress:      {models.StateReadyForReview, models.StateCancelled},
		models.StateReadyForReview:  {models.StateInProgress, models.StateReviewScheduled, models.StateApproved, models.StatePlanned, models.StateCancelled},
		models.StateReviewScheduled: {models.StateApproved, models.StateReadyForReview, models.StateInProgress, models.StatePlanned, models.StateCancelled},
		models.StateApproved:        {},
		models.StateCancelled:       {},
	}

	all := []models.LearningState{
		models.StatePlanned, models.StateInProgress, models.StateReadyForReview,
		models.StateReviewScheduled, models.StateApproved, models.StateCancelled,
	}

	for from, targets := range allowed {
		want := make(map[models.LearningState]bool, len(targets))
		for _, to := range targets {
			want[to] = true
		}
		for _, to := range all {
			assert.Equal(t, want[to], workflow.CanTransition(from, to),
				"%s -> %s", from, to)
		}
	}
}

func TestValidateStart(t *testing.T) {
	require.NoError(t, workflow.ValidateStart(models.StatePlanned))
	require.NoError(t, workflow.ValidateStart(models.StateReadyForReview))

	// review_scheduled -> in_progress is a legal table edge for rejected
	// reviews, but a trainee cannot take it by starting the card.
	err := workflow.ValidateStart(models.StateReviewScheduled)
	var terr *models.InvalidTransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, models.StateReviewScheduled, terr.From)
	assert.Equal(t, models.StateInProgress, terr.To)
}

func TestValidateTransitionError(t *testing.T) {
	err := workflow.ValidateTransition(models.StateApproved, models.StateInProgress)
	var terr *models.InvalidTransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, models.StateApproved, terr.From)
	assert.Equal(t, models.StateInProgress, terr.To)
	assert.ErrorIs(t, err, models.ErrBusinessRule)
}

func TestTerminalStates(t *testing.T) {
	assert.True(t, models.StateApproved.Terminal())
	assert.True(t, models.StateCancelled.Terminal())
	assert.False(t, models.StateReadyForReview.Terminal())
}
