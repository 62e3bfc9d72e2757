package workflow_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentahq/menta/internal/models"
)

func TestDashboardAggregates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	card := f.cardInState(t, f.python, models.StateInProgress)

	base := time.Now().Add(-4 * time.Hour)
	closedA := models.NewSessionLog(card.ID, base).Closed(base.Add(time.Hour))
	closedB := models.NewSessionLog(card.ID, base.Add(2*time.Hour)).Closed(base.Add(2*time.Hour + 30*time.Minute))
	open := models.NewSessionLog(card.ID, base.Add(3*time.Hour))
	require.NoError(t, f.store.Sessions().Add(ctx, closedA))
	require.NoError(t, f.store.Sessions().Add(ctx, closedB))
	require.NoError(t, f.store.Sessions().Add(ctx, open))

	entries, err := f.svc.Dashboard(ctx, f.trainee.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, card.ID, e.Card.ID)
	assert.Equal(t, "python", e.TechnologyName)
	assert.Equal(t, 90*time.Minute, e.TotalLearning, "open session contributes nothing")
	assert.True(t, e.SessionOpen)
	assert.Zero(t, e.ReviewCount)
}

func TestDashboardUnknownTrainee(t *testing.T) {
	f := newFixture(t)

	entries, err := f.svc.Dashboard(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
