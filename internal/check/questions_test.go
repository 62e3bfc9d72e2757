package check_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentahq/menta/internal/check"
	"github.com/mentahq/menta/internal/models"
)

func TestCreateQuestion(t *testing.T) {
	f := newFixture(t, check.DefaultPolicy())

	q, err := f.svc.CreateQuestion(context.Background(), check.CreateQuestionInput{
		TechnologyID: f.tech.ID,
		MentorID:     f.mentor.ID,
		Text:         "what is the difference between a list and a tuple",
	})
	require.NoError(t, err)
	assert.True(t, q.Active)
	assert.Equal(t, f.mentor.ID, q.CreatedByMentorID)
}

func TestCreateQuestionRejectsTraineeAuthor(t *testing.T) {
	f := newFixture(t, check.DefaultPolicy())

	_, err := f.svc.CreateQuestion(context.Background(), check.CreateQuestionInput{
		TechnologyID: f.tech.ID,
		MentorID:     f.trainee.ID,
		Text:         "what is the difference between a list and a tuple",
	})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestCreateQuestionRejectsShortText(t *testing.T) {
	f := newFixture(t, check.DefaultPolicy())

	_, err := f.svc.CreateQuestion(context.Background(), check.CreateQuestionInput{
		TechnologyID: f.tech.ID,
		MentorID:     f.mentor.ID,
		Text:         "why",
	})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestCreateQuestionUnknownTechnology(t *testing.T) {
	f := newFixture(t, check.DefaultPolicy())

	_, err := f.svc.CreateQuestion(context.Background(), check.CreateQuestionInput{
		TechnologyID: uuid.New(),
		MentorID:     f.mentor.ID,
		Text:         "what is the difference between a list and a tuple",
	})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUpdateQuestionText(t *testing.T) {
	f := newFixture(t, check.DefaultPolicy())
	q := f.question(t, "what is the difference between a list and a tuple")

	updated, err := f.svc.UpdateQuestionText(context.Background(), q.ID, "what is the difference between a slice and an array")
	require.NoError(t, err)
	assert.Equal(t, "what is the difference between a slice and an array", updated.Text)

	_, err = f.svc.UpdateQuestionText(context.Background(), q.ID, "short")
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestArchiveHidesQuestionFromListing(t *testing.T) {
	f := newFixture(t, check.DefaultPolicy())
	kept := f.question(t, "what is the difference between a list and a tuple")
	gone := f.question(t, "explain the global interpreter lock in detail")

	_, err := f.svc.ArchiveQuestion(context.Background(), gone.ID)
	require.NoError(t, err)

	active, err := f.svc.ListQuestions(context.Background(), f.tech.ID, false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, kept.ID, active[0].ID)

	all, err := f.svc.ListQuestions(context.Background(), f.tech.ID, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
