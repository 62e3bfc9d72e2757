package check_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentahq/menta/internal/check"
	"github.com/mentahq/menta/internal/logging"
	"github.com/mentahq/menta/internal/memstore"
	"github.com/mentahq/menta/internal/models"
)

type fixture struct {
	store   *memstore.Store
	svc     *check.Service
	trainee models.User
	mentor  models.User
	tech    models.Technology
	card    models.TaskCard
}

func newFixture(t *testing.T, policy check.Policy) *fixture {
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
	tech := models.Technology{ID: uuid.New(), Name: "python"}

	require.NoError(t, store.Users().Add(ctx, mentor))
	require.NoError(t, store.Users().Add(ctx, trainee))
	require.NoError(t, store.Technologies().Add(ctx, tech))

	card := models.NewTaskCard(trainee.ID, tech.ID, mentor.ID, now).
		WithState(models.StateReadyForReview)
	require.NoError(t, store.TaskCards().Add(ctx, card))

	svc, err := check.NewService(store, policy, logging.NewNop())
	require.NoError(t, err)

	return &fixture{store: store, svc: svc, trainee: trainee, mentor: mentor, tech: tech, card: card}
}

func (f *fixture) question(t *testing.T, text string) models.CheckQuestion {
	t.Helper()
	q, err := f.svc.CreateQuestion(context.Background(), check.CreateQuestionInput{
		TechnologyID: f.tech.ID,
		MentorID:     f.mentor.ID,
		Text:         text,
	})
	require.NoError(t, err)
	return *q
}

func (f *fixture) submit(outcome string, results ...check.ResultInput) (*models.Review, error) {
	return f.svc.SubmitReview(context.Background(), check.SubmitReviewInput{
		TaskCardID: f.card.ID,
		MentorID:   f.mentor.ID,
		Outcome:    outcome,
		Feedback:   "solid understanding of the fundamentals",
		Results:    results,
	})
}

func (f *fixture) cardState(t *testing.T) models.LearningState {
	t.Helper()
	card, err := f.store.TaskCards().GetByID(context.Background(), f.card.ID)
	require.NoError(t, err)
	return card.State
}

func TestNewServiceRejectsBadPolicy(t *testing.T) {
	store := memstore.New()

	_, err := check.NewService(store, check.Policy{
		RejectedState: models.StateCancelled, RequiredApprovals: 1,
	}, logging.NewNop())
	assert.Error(t, err)

	_, err = check.NewService(store, check.Policy{
		RejectedState: models.StatePlanned, RequiredApprovals: 0,
	}, logging.NewNop())
	assert.Error(t, err)
}

func TestApprovedReviewApprovesCard(t *testing.T) {
	f := newFixture(t, check.DefaultPolicy())
	q := f.question(t, "explain how list comprehensions work")

	review, err := f.submit("approved", check.ResultInput{QuestionID: q.ID, Rating: "correct"})
	require.NoError(t, err)
	assert.Equal(t, models.ReviewApproved, review.Outcome)
	assert.Equal(t, models.StateApproved, f.cardState(t))

	results, err := f.store.Reviews().ResultsForReview(context.Background(), review.ID)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, models.RatingCorrect, results[0].Rating)
}

func TestRejectedReviewNeverApproves(t *testing.T) {
	for _, rejected := range []models.LearningState{models.StatePlanned, models.StateInProgress} {
		t.Run(string(rejected), func(t *testing.T) {
			f := newFixture(t, check.Policy{RejectedState: rejected, RequiredApprovals: 1})

			review, err := f.submit("rejected")
			require.NoError(t, err)
			assert.Equal(t, models.ReviewRejected, review.Outcome)
			assert.Equal(t, rejected, f.cardState(t))
		})
	}
}

func TestSecondApprovalRequired(t *testing.T) {
	f := newFixture(t, check.Policy{RejectedState: models.StatePlanned, RequiredApprovals: 2})

	_, err := f.submit("approved")
	require.NoError(t, err)
	assert.Equal(t, models.StateReadyForReview, f.cardState(t), "first approval stages, does not approve")

	_, err = f.submit("approved")
	require.NoError(t, err)
	assert.Equal(t, models.StateApproved, f.cardState(t))
}

func TestRejectionsDoNotCountTowardApprovals(t *testing.T) {
	f := newFixture(t, check.Policy{RejectedState: models.StatePlanned, RequiredApprovals: 2})

	_, err := f.submit("rejected")
	require.NoError(t, err)

	// Put the card back in front of the mentor.
	card, err := f.store.TaskCards().GetByID(context.Background(), f.card.ID)
	require.NoError(t, err)
	require.NoError(t, f.store.TaskCards().Update(context.Background(), card.WithState(models.StateReadyForReview)))

	_, err = f.submit("approved")
	require.NoError(t, err)
	assert.Equal(t, models.StateReadyForReview, f.cardState(t), "one approval of two")
}

func TestReviewOnApprovedCard(t *testing.T) {
	f := newFixture(t, check.DefaultPolicy())
	require.NoError(t, f.store.TaskCards().Update(context.Background(), f.card.WithState(models.StateApproved)))

	_, err := f.submit("approved")
	var aerr *models.AlreadyApprovedError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, f.card.ID, aerr.TaskCardID)
}

func TestReviewOnScheduledCard(t *testing.T) {
	f := newFixture(t, check.DefaultPolicy())
	require.NoError(t, f.store.TaskCards().Update(context.Background(),
		f.card.WithScheduledReview(time.Now().Add(time.Hour))))

	_, err := f.submit("approved")
	require.NoError(t, err)
	assert.Equal(t, models.StateApproved, f.cardState(t))
}

func TestReviewOnPlannedCard(t *testing.T) {
	f := newFixture(t, check.DefaultPolicy())
	require.NoError(t, f.store.TaskCards().Update(context.Background(), f.card.WithState(models.StatePlanned)))

	_, err := f.submit("approved")
	var terr *models.InvalidTransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, models.StatePlanned, terr.From)
}

func TestSubmitValidation(t *testing.T) {
	f := newFixture(t, check.DefaultPolicy())

	cases := map[string]check.SubmitReviewInput{
		"short feedback": {
			TaskCardID: f.card.ID, MentorID: f.mentor.ID,
			Outcome: "approved", Feedback: "ok",
		},
		"bad outcome": {
			TaskCardID: f.card.ID, MentorID: f.mentor.ID,
			Outcome: "maybe", Feedback: "solid understanding overall",
		},
		"bad rating": {
			TaskCardID: f.card.ID, MentorID: f.mentor.ID,
			Outcome: "approved", Feedback: "solid understanding overall",
			Results: []check.ResultInput{{QuestionID: uuid.New(), Rating: "great"}},
		},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.SubmitReview(context.Background(), in)
			var verr *models.ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}
}

func TestResultBatchValidation(t *testing.T) {
	f := newFixture(t, check.DefaultPolicy())
	q := f.question(t, "explain how list comprehensions work")

	t.Run("unknown question", func(t *testing.T) {
		_, err := f.submit("approved", check.ResultInput{QuestionID: uuid.New(), Rating: "correct"})
		var verr *models.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("duplicate question", func(t *testing.T) {
		_, err := f.submit("approved",
			check.ResultInput{QuestionID: q.ID, Rating: "correct"},
			check.ResultInput{QuestionID: q.ID, Rating: "partial"})
		var verr *models.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("archived question", func(t *testing.T) {
		_, err := f.svc.ArchiveQuestion(context.Background(), q.ID)
		require.NoError(t, err)

		_, err = f.submit("approved", check.ResultInput{QuestionID: q.ID, Rating: "correct"})
		var verr *models.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	assert.Equal(t, models.StateReadyForReview, f.cardState(t), "failed submissions leave the card untouched")
}

func TestSubmitIsAtomic(t *testing.T) {
	f := newFixture(t, check.DefaultPolicy())
	f.store.FailReviewAdd = errors.New("disk full")

	_, err := f.submit("approved")
	require.Error(t, err)

	reviews, err := f.store.Reviews().ListForTaskCard(context.Background(), f.card.ID)
	require.NoError(t, err)
	assert.Empty(t, reviews, "half-written review must roll back")
	assert.Equal(t, models.StateReadyForReview, f.cardState(t))
}

func TestRejectedReviewWithResults(t *testing.T) {
	// A rejection with a rated question persists the review and its
	// result, and the card ends up re-workable, not approved.
	f := newFixture(t, check.DefaultPolicy())
	q := f.question(t, "explain how list comprehensions work")

	review, err := f.submit("rejected", check.ResultInput{QuestionID: q.ID, Rating: "incorrect"})
	require.NoError(t, err)

	results, err := f.store.Reviews().ResultsForReview(context.Background(), review.ID)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, models.RatingIncorrect, results[0].Rating)

	state := f.cardState(t)
	assert.NotEqual(t, models.StateApproved, state)
	assert.Equal(t, models.StatePlanned, state)
}

func TestHistory(t *testing.T) {
	f := newFixture(t, check.Policy{RejectedState: models.StateInProgress, RequiredApprovals: 2})
	q := f.question(t, "explain how list comprehensions work")

	_, err := f.submit("approved", check.ResultInput{QuestionID: q.ID, Rating: "partial", Comment: "close"})
	require.NoError(t, err)
	_, err = f.submit("approved", check.ResultInput{QuestionID: q.ID, Rating: "correct"})
	require.NoError(t, err)

	history, err := f.svc.History(context.Background(), f.card.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Len(t, history[0].Results, 1)
	assert.Equal(t, models.RatingPartial, history[0].Results[0].Rating)
	assert.Equal(t, "close", history[0].Results[0].Comment)
	assert.Equal(t, models.RatingCorrect, history[1].Results[0].Rating)
}
