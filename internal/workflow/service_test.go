package workflow_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentahq/menta/internal/logging"
	"github.com/mentahq/menta/internal/memstore"
	"github.com/mentahq/menta/internal/models"
	"github.com/mentahq/menta/internal/workflow"
)

type fixture struct {
	store   *memstore.Store
	svc     *workflow.Service
	trainee models.User
	mentor  models.User
	python  models.Technology
	docker  models.Technology
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()
	ctx := context.Background()
	now := time.Now()

	mentor := models.User{
		ID: uuid.New(), Email: "mentor@example.com", FullName: "Mary Mentor",
		Role: models.RoleMentor, Active: true, CreatedAt: now,
	}
	trainee := models.User{
		ID: uuid.New(), Email: "trainee@example.com", FullName: "Tom Trainee",
		Role: models.RoleTrainee, Active: true, CreatedAt: now, MentorID: mentor.ID,
	}
	python := models.Technology{ID: uuid.New(), Name: "python"}
	docker := models.Technology{ID: uuid.New(), Name: "docker"}

	require.NoError(t, store.Users().Add(ctx, mentor))
	require.NoError(t, store.Users().Add(ctx, trainee))
	require.NoError(t, store.Technologies().Add(ctx, python))
	require.NoError(t, store.Technologies().Add(ctx, docker))

	return &fixture{
		store:   store,
		svc:     workflow.NewService(store, logging.NewNop()),
		trainee: trainee,
		mentor:  mentor,
		python:  python,
		docker:  docker,
	}
}

func (f *fixture) plannedCard(t *testing.T, tech models.Technology) models.TaskCard {
	t.Helper()
	card, err := f.svc.Plan(context.Background(), f.trainee.ID, tech.ID)
	require.NoError(t, err)
	return *card
}

func (f *fixture) cardInState(t *testing.T, tech models.Technology, state models.LearningState) models.TaskCard {
	t.Helper()
	card := f.plannedCard(t, tech)
	card = card.WithState(state)
	require.NoError(t, f.store.TaskCards().Update(context.Background(), card))
	return card
}

func TestPlanCreatesPlannedCard(t *testing.T) {
	f := newFixture(t)

	card, err := f.svc.Plan(context.Background(), f.trainee.ID, f.python.ID)
	require.NoError(t, err)

	assert.Equal(t, models.StatePlanned, card.State)
	assert.Equal(t, f.trainee.ID, card.TraineeID)
	assert.Equal(t, f.mentor.ID, card.MentorID)
}

func TestPlanRejectsDuplicatePair(t *testing.T) {
	f := newFixture(t)
	f.plannedCard(t, f.python)

	_, err := f.svc.Plan(context.Background(), f.trainee.ID, f.python.ID)
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestPlanUnknownTechnology(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Plan(context.Background(), f.trainee.ID, uuid.New())
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestStartLearningFromPlanned(t *testing.T) {
	f := newFixture(t)
	f.plannedCard(t, f.python)

	card, err := f.svc.StartLearning(context.Background(), f.trainee.ID, f.python.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StateInProgress, card.State)

	open, err := f.store.Sessions().FindOpenByTrainee(context.Background(), f.trainee.ID)
	require.NoError(t, err)
	require.NotNil(t, open)
	assert.Equal(t, card.ID, open.TaskCardID)
	assert.Nil(t, open.EndedAt)
}

func TestStartLearningFromReadyForReview(t *testing.T) {
	f := newFixture(t)
	f.cardInState(t, f.python, models.StateReadyForReview)

	card, err := f.svc.StartLearning(context.Background(), f.trainee.ID, f.python.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StateInProgress, card.State)
}

func TestStartLearningInvalidStates(t *testing.T) {
	for _, state := range []models.LearningState{
		models.StateInProgress,
		models.StateReviewScheduled,
		models.StateCancelled,
	} {
		t.Run(string(state), func(t *testing.T) {
			f := newFixture(t)
			f.cardInState(t, f.python, state)

			_, err := f.svc.StartLearning(context.Background(), f.trainee.ID, f.python.ID)
			var terr *models.InvalidTransitionError
			require.ErrorAs(t, err, &terr)
			assert.Equal(t, state, terr.From)
			assert.Equal(t, models.StateInProgress, terr.To)
		})
	}
}

func TestStartLearningNoCard(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.StartLearning(context.Background(), f.trainee.ID, f.python.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestStartLearningConflictBeatsTransitionError(t *testing.T) {
	// With a session running on python, starting docker (a card in
	// planned, which would otherwise be startable) must report the
	// conflict, and so must starting python again (which would otherwise
	// report an invalid transition).
	f := newFixture(t)
	f.plannedCard(t, f.python)
	f.plannedCard(t, f.docker)

	started, err := f.svc.StartLearning(context.Background(), f.trainee.ID, f.python.ID)
	require.NoError(t, err)

	for _, tech := range []models.Technology{f.docker, f.python} {
		_, err = f.svc.StartLearning(context.Background(), f.trainee.ID, tech.ID)
		var cerr *models.SessionConflictError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, started.ID, cerr.TaskCardID)
	}
}

func TestConcurrentStartsOnlyOneWins(t *testing.T) {
	f := newFixture(t)
	f.plannedCard(t, f.python)
	f.plannedCard(t, f.docker)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, tech := range []models.Technology{f.python, f.docker} {
		wg.Add(1)
		go func(i int, techID uuid.UUID) {
			defer wg.Done()
			_, errs[i] = f.svc.StartLearning(context.Background(), f.trainee.ID, techID)
		}(i, tech.ID)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, models.ErrBusinessRule)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one concurrent start must win")

	open, err := f.store.Sessions().FindOpenByTrainee(context.Background(), f.trainee.ID)
	require.NoError(t, err)
	require.NotNil(t, open, "exactly one open session must remain")
}

func TestStopLearningClosesSession(t *testing.T) {
	f := newFixture(t)
	f.plannedCard(t, f.python)

	_, err := f.svc.StartLearning(context.Background(), f.trainee.ID, f.python.ID)
	require.NoError(t, err)

	card, err := f.svc.StopLearning(context.Background(), f.trainee.ID, f.python.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StateReadyForReview, card.State)

	logs, err := f.store.Sessions().ListForTaskCard(context.Background(), card.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.NotNil(t, logs[0].EndedAt)
	assert.False(t, logs[0].EndedAt.Before(logs[0].StartedAt), "end must be >= start")

	open, err := f.store.Sessions().FindOpenByTrainee(context.Background(), f.trainee.ID)
	require.NoError(t, err)
	assert.Nil(t, open)
}

func TestStopLearningWithoutSession(t *testing.T) {
	f := newFixture(t)
	f.cardInState(t, f.python, models.StateInProgress)

	_, err := f.svc.StopLearning(context.Background(), f.trainee.ID, f.python.ID)
	var nerr *models.NoActiveSessionError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, f.trainee.ID, nerr.TraineeID)
}

func TestStopLearningWrongState(t *testing.T) {
	f := newFixture(t)
	f.plannedCard(t, f.python)

	_, err := f.svc.StopLearning(context.Background(), f.trainee.ID, f.python.ID)
	var terr *models.InvalidTransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, models.StatePlanned, terr.From)
}

func TestStopLearningSessionOwnedByOtherCard(t *testing.T) {
	// The open session belongs to python, but docker was forced into
	// in_progress. Stopping docker is a session-ownership conflict.
	f := newFixture(t)
	f.plannedCard(t, f.python)
	f.plannedCard(t, f.docker)

	started, err := f.svc.StartLearning(context.Background(), f.trainee.ID, f.python.ID)
	require.NoError(t, err)

	dockerCard, err := f.store.TaskCards().FindByTraineeAndTechnology(context.Background(), f.trainee.ID, f.docker.ID)
	require.NoError(t, err)
	require.NoError(t, f.store.TaskCards().Update(context.Background(), dockerCard.WithState(models.StateInProgress)))

	_, err = f.svc.StopLearning(context.Background(), f.trainee.ID, f.docker.ID)
	var cerr *models.SessionConflictError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, started.ID, cerr.TaskCardID)
}

func TestScheduleReview(t *testing.T) {
	f := newFixture(t)
	card := f.cardInState(t, f.python, models.StateReadyForReview)

	at := time.Now().Add(48 * time.Hour)
	updated, err := f.svc.ScheduleReview(context.Background(), card.ID, at)
	require.NoError(t, err)
	assert.Equal(t, models.StateReviewScheduled, updated.State)
	require.NotNil(t, updated.ScheduledReviewAt)
	assert.True(t, updated.ScheduledReviewAt.Equal(at))
}

func TestScheduleReviewWrongState(t *testing.T) {
	f := newFixture(t)
	card := f.plannedCard(t, f.python)

	_, err := f.svc.ScheduleReview(context.Background(), card.ID, time.Now().Add(time.Hour))
	var terr *models.InvalidTransitionError
	require.ErrorAs(t, err, &terr)
}

func TestCancelFromAnyNonTerminalState(t *testing.T) {
	for _, state := range []models.LearningState{
		models.StatePlanned,
		models.StateInProgress,
		models.StateReadyForReview,
		models.StateReviewScheduled,
	} {
		t.Run(string(state), func(t *testing.T) {
			f := newFixture(t)
			card := f.cardInState(t, f.python, state)

			updated, err := f.svc.Cancel(context.Background(), card.ID)
			require.NoError(t, err)
			assert.Equal(t, models.StateCancelled, updated.State)
		})
	}
}

func TestCancelApprovedCard(t *testing.T) {
	f := newFixture(t)
	card := f.cardInState(t, f.python, models.StateApproved)

	_, err := f.svc.Cancel(context.Background(), card.ID)
	var aerr *models.AlreadyApprovedError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, card.ID, aerr.TaskCardID)
}

func TestCancelClosesOpenSession(t *testing.T) {
	f := newFixture(t)
	f.plannedCard(t, f.python)

	card, err := f.svc.StartLearning(context.Background(), f.trainee.ID, f.python.ID)
	require.NoError(t, err)

	_, err = f.svc.Cancel(context.Background(), card.ID)
	require.NoError(t, err)

	open, err := f.store.Sessions().FindOpenByTrainee(context.Background(), f.trainee.ID)
	require.NoError(t, err)
	assert.Nil(t, open)
}

func TestCancelledIsAbsorbing(t *testing.T) {
	f := newFixture(t)
	card := f.cardInState(t, f.python, models.StateCancelled)

	_, err := f.svc.Cancel(context.Background(), card.ID)
	assert.True(t, errors.Is(err, models.ErrBusinessRule))
}

func TestLearningRoundTrip(t *testing.T) {
	// planned → start → conflict on a second card → stop → ready_for_review.
	f := newFixture(t)
	ctx := context.Background()
	f.plannedCard(t, f.python)
	f.plannedCard(t, f.docker)

	card, err := f.svc.StartLearning(ctx, f.trainee.ID, f.python.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StateInProgress, card.State)

	open, err := f.store.Sessions().FindOpenByTrainee(ctx, f.trainee.ID)
	require.NoError(t, err)
	require.NotNil(t, open)

	_, err = f.svc.StartLearning(ctx, f.trainee.ID, f.docker.ID)
	var cerr *models.SessionConflictError
	require.ErrorAs(t, err, &cerr)

	card, err = f.svc.StopLearning(ctx, f.trainee.ID, f.python.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StateReadyForReview, card.State)

	logs, err := f.store.Sessions().ListForTaskCard(ctx, card.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.NotNil(t, logs[0].EndedAt)
	assert.False(t, logs[0].EndedAt.Before(logs[0].StartedAt))
}

func TestMentorQueueDefaults(t *testing.T) {
	f := newFixture(t)
	f.cardInState(t, f.python, models.StateReadyForReview)
	f.cardInState(t, f.docker, models.StateInProgress)

	cards, err := f.svc.MentorQueue(context.Background(), f.mentor.ID)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, f.python.ID, cards[0].TechnologyID)
}
