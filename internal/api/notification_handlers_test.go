package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/animexapp/animex-server/internal/domain"
)

func listNotifications(t *testing.T, server *Server, token string) []*domain.Notification {
	t.Helper()

	rec := doJSON(t, server, http.MethodGet, "/api/notifications/", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var env struct {
		Data []*domain.Notification `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env.Data
}

func TestEpisodePublishNotifiesSubscribers(t *testing.T) {
	server, s := setupTestServer(t)
	anime, _ := seedAnimeWithEpisode(t, s)

	admin := registerUser(t, server, "admin@test.com", "admin")
	promoteToAdmin(t, s, admin.User.ID)
	fan := registerUser(t, server, "fan@test.com", "fan")
	lurker := registerUser(t, server, "lurker@test.com", "lurker")

	rec := doJSON(t, server, http.MethodPost, "/api/user/watchlist", fan.AccessToken, map[string]string{
		"anime_id": anime.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, server, http.MethodPost, "/api/episodes/", admin.AccessToken, map[string]any{
		"anime_id":       anime.ID,
		"episode_number": 2,
		"video_url":      "https://cdn.example.com/ep2.m3u8",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Fanout is asynchronous; the publish response never waits on it.
	require.Eventually(t, func() bool {
		return len(listNotifications(t, server, fan.AccessToken)) == 1
	}, 2*time.Second, 10*time.Millisecond)

	notifications := listNotifications(t, server, fan.AccessToken)
	n := notifications[0]
	assert.False(t, n.IsRead)
	assert.Equal(t, "New Episode", n.Title)
	assert.Equal(t, "/watch/test-anime/2", n.Link)

	// Non-subscribers get nothing.
	assert.Empty(t, listNotifications(t, server, lurker.AccessToken))

	// Mark read, owner only.
	rec = doJSON(t, server, http.MethodPut, "/api/notifications/"+n.ID+"/read", lurker.AccessToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, server, http.MethodPut, "/api/notifications/"+n.ID+"/read", fan.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, listNotifications(t, server, fan.AccessToken)[0].IsRead)
}

func TestWatchlistDuplicateAddIsBenign(t *testing.T) {
	server, s := setupTestServer(t)
	anime, _ := seedAnimeWithEpisode(t, s)
	fan := registerUser(t, server, "fan@test.com", "fan")

	rec := doJSON(t, server, http.MethodPost, "/api/user/watchlist", fan.AccessToken, map[string]string{
		"anime_id": anime.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// The second add is a success with a notice, not a 409.
	rec = doJSON(t, server, http.MethodPost, "/api/user/watchlist", fan.AccessToken, map[string]string{
		"anime_id": anime.ID,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "Already in watchlist", env.Message)
}
