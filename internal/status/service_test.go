package status_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentahq/menta/internal/logging"
	"github.com/mentahq/menta/internal/memstore"
	"github.com/mentahq/menta/internal/models"
	"github.com/mentahq/menta/internal/status"
)

func newFixture(t *testing.T) (*status.Service, models.User, models.User) {
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
	require.NoError(t, store.Users().Add(ctx, mentor))
	require.NoError(t, store.Users().Add(ctx, trainee))

	return status.NewService(store, logging.NewNop()), trainee, mentor
}

func TestLogUpdate(t *testing.T) {
	svc, trainee, _ := newFixture(t)

	upd, err := svc.LogUpdate(context.Background(), trainee.ID, "finished the generators chapter")
	require.NoError(t, err)
	assert.Equal(t, trainee.ID, upd.TraineeID)
	assert.Equal(t, "finished the generators chapter", upd.Text)
}

func TestLogUpdateValidation(t *testing.T) {
	svc, trainee, mentor := newFixture(t)

	_, err := svc.LogUpdate(context.Background(), trainee.ID, "   ")
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = svc.LogUpdate(context.Background(), mentor.ID, "mentors do not log updates")
	require.ErrorAs(t, err, &verr)

	_, err = svc.LogUpdate(context.Background(), uuid.New(), "nobody home")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCommentAndHistory(t *testing.T) {
	svc, trainee, mentor := newFixture(t)
	ctx := context.Background()

	first, err := svc.LogUpdate(ctx, trainee.ID, "finished the generators chapter")
	require.NoError(t, err)
	second, err := svc.LogUpdate(ctx, trainee.ID, "started on decorators")
	require.NoError(t, err)

	fb, err := svc.Comment(ctx, first.ID, mentor.ID, "nice pace, keep going")
	require.NoError(t, err)
	assert.Equal(t, mentor.ID, fb.MentorID)

	history, err := svc.History(ctx, trainee.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, first.ID, history[0].Update.ID)
	require.Len(t, history[0].Feedback, 1)
	assert.Equal(t, "nice pace, keep going", history[0].Feedback[0].Text)
	assert.Equal(t, second.ID, history[1].Update.ID)
	assert.Empty(t, history[1].Feedback)
}

func TestCommentValidation(t *testing.T) {
	svc, trainee, mentor := newFixture(t)
	ctx := context.Background()

	upd, err := svc.LogUpdate(ctx, trainee.ID, "finished the generators chapter")
	require.NoError(t, err)

	_, err = svc.Comment(ctx, upd.ID, trainee.ID, "commenting on myself")
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = svc.Comment(ctx, uuid.New(), mentor.ID, "on a missing update")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
