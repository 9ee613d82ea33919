package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeService_Toggle(t *testing.T) {
	s := newTestStore(t)
	svc := NewLikeService(s, testLogger())
	ctx := context.Background()

	userA := createTestUser(t, s, "user-a", "a@test.com")
	userB := createTestUser(t, s, "user-b", "b@test.com")
	anime := createTestAnime(t, s, "anime-1", "test-anime")
	episode := createTestEpisode(t, s, "ep-1", anime.ID, 1)

	// A likes: count goes from the recount, not an increment.
	status, err := svc.Toggle(ctx, userA.ID, episode.ID)
	require.NoError(t, err)
	assert.True(t, status.Liked)
	assert.Equal(t, int64(1), status.Count)

	// B likes.
	status, err = svc.Toggle(ctx, userB.ID, episode.ID)
	require.NoError(t, err)
	assert.True(t, status.Liked)
	assert.Equal(t, int64(2), status.Count)

	// A toggles again: unlike.
	status, err = svc.Toggle(ctx, userA.ID, episode.ID)
	require.NoError(t, err)
	assert.False(t, status.Liked)
	assert.Equal(t, int64(1), status.Count)

	// The cached episode aggregate matches the recount.
	got, err := s.GetEpisode(ctx, episode.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.LikeCount)
}

func TestLikeService_ToggleIdempotentRecount(t *testing.T) {
	s := newTestStore(t)
	svc := NewLikeService(s, testLogger())
	ctx := context.Background()

	user := createTestUser(t, s, "user-1", "u@test.com")
	anime := createTestAnime(t, s, "anime-1", "test-anime")
	episode := createTestEpisode(t, s, "ep-1", anime.ID, 1)

	// Repeated toggles always land on the recount of actual like rows.
	for i := 0; i < 4; i++ {
		status, err := svc.Toggle(ctx, user.ID, episode.ID)
		require.NoError(t, err)
		if i%2 == 0 {
			assert.True(t, status.Liked)
			assert.Equal(t, int64(1), status.Count)
		} else {
			assert.False(t, status.Liked)
			assert.Equal(t, int64(0), status.Count)
		}
	}
}

func TestLikeService_ToggleRefreshesAnimeAggregate(t *testing.T) {
	s := newTestStore(t)
	svc := NewLikeService(s, testLogger())
	ctx := context.Background()

	user := createTestUser(t, s, "user-1", "u@test.com")
	anime := createTestAnime(t, s, "anime-1", "test-anime")
	episode := createTestEpisode(t, s, "ep-1", anime.ID, 1)

	_, err := svc.Toggle(ctx, user.ID, episode.ID)
	require.NoError(t, err)

	// The anime aggregate refresh runs in the background.
	require.Eventually(t, func() bool {
		got, err := s.GetAnime(ctx, anime.ID)
		return err == nil && got.LikeCount == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestLikeService_Status(t *testing.T) {
	s := newTestStore(t)
	svc := NewLikeService(s, testLogger())
	ctx := context.Background()

	user := createTestUser(t, s, "user-1", "u@test.com")
	anime := createTestAnime(t, s, "anime-1", "test-anime")
	episode := createTestEpisode(t, s, "ep-1", anime.ID, 1)

	// Anonymous callers get the count with liked=false.
	status, err := svc.Status(ctx, "", episode.ID)
	require.NoError(t, err)
	assert.False(t, status.Liked)
	assert.Equal(t, int64(0), status.Count)

	_, err = svc.Toggle(ctx, user.ID, episode.ID)
	require.NoError(t, err)

	status, err = svc.Status(ctx, user.ID, episode.ID)
	require.NoError(t, err)
	assert.True(t, status.Liked)
	assert.Equal(t, int64(1), status.Count)

	status, err = svc.Status(ctx, "", episode.ID)
	require.NoError(t, err)
	assert.False(t, status.Liked)
	assert.Equal(t, int64(1), status.Count)
}

func TestLikeService_ToggleUnknownEpisode(t *testing.T) {
	s := newTestStore(t)
	svc := NewLikeService(s, testLogger())

	createTestUser(t, s, "user-1", "u@test.com")
	_, err := svc.Toggle(context.Background(), "user-1", "ep-missing")
	require.Error(t, err)
}
