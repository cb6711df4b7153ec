package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohitkumarofficial/reactivities/internal/model"
	"github.com/rohitkumarofficial/reactivities/tests/testutil"
)

func sampleActivity(id string, date time.Time) model.Activity {
	return model.Activity{
		ID:          id,
		Title:       "Sample " + id,
		Date:        date,
		Description: "a description",
		Category:    model.CategoryFood,
		City:        "Paris",
		Venue:       "Le Bistro",
	}
}

func TestUpsertAndGetActivities(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	err := s.UpsertActivities(ctx, []model.Activity{
		sampleActivity("a2", time.Date(2024, 3, 12, 18, 0, 0, 0, time.UTC)),
		sampleActivity("a1", time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)

	activities, err := s.GetActivities(ctx)
	require.NoError(t, err)
	require.Len(t, activities, 2)

	// Snapshot reads come back date ascending.
	assert.Equal(t, "a1", activities[0].ID)
	assert.Equal(t, "a2", activities[1].ID)
	assert.Equal(t, "Paris", activities[0].City)
}

func TestUpsertReplacesExisting(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	original := sampleActivity("a1", time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC))
	require.NoError(t, s.UpsertActivities(ctx, []model.Activity{original}))

	updated := original
	updated.Title = "Renamed"
	updated.IsGoing = true
	require.NoError(t, s.UpsertActivities(ctx, []model.Activity{updated}))

	activities, err := s.GetActivities(ctx)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, "Renamed", activities[0].Title)
	assert.True(t, activities[0].IsGoing)
}

func TestGetActivityByID(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	stored := sampleActivity("a1", time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC))
	stored.IsCancelled = true
	require.NoError(t, s.UpsertActivities(ctx, []model.Activity{stored}))

	act, err := s.GetActivityByID(ctx, "a1")
	require.NoError(t, err)
	require.NotNil(t, act)
	assert.Equal(t, "Sample a1", act.Title)
	assert.True(t, act.IsCancelled)
	assert.True(t, act.Date.Equal(stored.Date))
}

func TestGetActivityByIDMissing(t *testing.T) {
	s := testutil.NewTestStore(t)

	act, err := s.GetActivityByID(context.Background(), "nope")

	require.NoError(t, err)
	assert.Nil(t, act)
}

func TestDeleteActivity(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertActivities(ctx, []model.Activity{
		sampleActivity("a1", time.Now().UTC()),
	}))

	require.NoError(t, s.DeleteActivity(ctx, "a1"))

	act, err := s.GetActivityByID(ctx, "a1")
	require.NoError(t, err)
	assert.Nil(t, act)

	// Deleting an absent id is not an error.
	assert.NoError(t, s.DeleteActivity(ctx, "a1"))
}

func TestReplaceAllSwapsSnapshot(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertActivities(ctx, []model.Activity{
		sampleActivity("old1", time.Now().UTC()),
		sampleActivity("old2", time.Now().UTC()),
	}))

	require.NoError(t, s.ReplaceAll(ctx, []model.Activity{
		sampleActivity("new1", time.Now().UTC()),
	}))

	activities, err := s.GetActivities(ctx)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, "new1", activities[0].ID)
}

func TestReplaceAllWithEmptySetClears(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertActivities(ctx, []model.Activity{
		sampleActivity("a1", time.Now().UTC()),
	}))

	require.NoError(t, s.ReplaceAll(ctx, nil))

	activities, err := s.GetActivities(ctx)
	require.NoError(t, err)
	assert.Empty(t, activities)
}

func TestUpsertEmptyBatchIsNoop(t *testing.T) {
	s := testutil.NewTestStore(t)

	assert.NoError(t, s.UpsertActivities(context.Background(), nil))
}
