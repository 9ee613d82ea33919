package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchlistService_AddIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	svc := NewWatchlistService(s, newTestValidator(), testLogger())
	ctx := context.Background()

	user := createTestUser(t, s, "user-1", "u@test.com")
	anime := createTestAnime(t, s, "anime-1", "test-anime")

	result, err := svc.Add(ctx, user.ID, anime.ID)
	require.NoError(t, err)
	assert.True(t, result.Added)

	// Adding again succeeds without a second entry.
	result, err = svc.Add(ctx, user.ID, anime.ID)
	require.NoError(t, err)
	assert.False(t, result.Added)
	assert.Equal(t, "Already in watchlist", result.Message)

	list, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Anime)
	assert.Equal(t, anime.Slug, list[0].Anime.Slug)
}

func TestWatchlistService_AddUnknownAnime(t *testing.T) {
	s := newTestStore(t)
	svc := NewWatchlistService(s, newTestValidator(), testLogger())

	createTestUser(t, s, "user-1", "u@test.com")
	_, err := svc.Add(context.Background(), "user-1", "anime-missing")
	require.Error(t, err)
}

func TestWatchlistService_Remove(t *testing.T) {
	s := newTestStore(t)
	svc := NewWatchlistService(s, newTestValidator(), testLogger())
	ctx := context.Background()

	user := createTestUser(t, s, "user-1", "u@test.com")
	anime := createTestAnime(t, s, "anime-1", "test-anime")

	_, err := svc.Add(ctx, user.ID, anime.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Remove(ctx, user.ID, anime.ID))

	list, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	// Removing something not on the list is a no-op.
	require.NoError(t, svc.Remove(ctx, user.ID, anime.ID))
}

func TestWatchlistService_SaveProgressUpsert(t *testing.T) {
	s := newTestStore(t)
	svc := NewWatchlistService(s, newTestValidator(), testLogger())
	ctx := context.Background()

	user := createTestUser(t, s, "user-1", "u@test.com")
	anime := createTestAnime(t, s, "anime-1", "test-anime")
	episode := createTestEpisode(t, s, "ep-1", anime.ID, 1)

	progress, err := svc.SaveProgress(ctx, user.ID, SaveProgressRequest{
		EpisodeID:       episode.ID,
		ProgressSeconds: 120,
		DurationSeconds: 1440,
	})
	require.NoError(t, err)
	assert.Equal(t, anime.ID, progress.AnimeID)
	assert.Equal(t, 120, progress.ProgressSeconds)

	// A later save updates in place.
	updated, err := svc.SaveProgress(ctx, user.ID, SaveProgressRequest{
		EpisodeID:       episode.ID,
		ProgressSeconds: 1440,
		DurationSeconds: 1440,
		Completed:       true,
	})
	require.NoError(t, err)
	assert.Equal(t, progress.ID, updated.ID)
	assert.True(t, updated.Completed)

	history, err := svc.History(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 1440, history[0].ProgressSeconds)
}
