package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/animexapp/animex-server/internal/domain"
)

func TestRequireAuth_RejectsAnonymous(t *testing.T) {
	server, _ := setupTestServer(t)

	rec := doJSON(t, server, http.MethodGet, "/api/user/profile", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "UNAUTHORIZED", env.Error)
}

func TestRequireAuth_RejectsGarbageToken(t *testing.T) {
	server, _ := setupTestServer(t)

	// Any validation failure resolves to anonymous, never a partial grant.
	for _, token := range []string{"garbage", "v4.local.def-not-a-token"} {
		rec := doJSON(t, server, http.MethodGet, "/api/user/profile", token, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "token %q", token)
	}
}

func TestRequireAdmin_RejectsPlainUser(t *testing.T) {
	server, _ := setupTestServer(t)

	resp := registerUser(t, server, "user@test.com", "user")

	rec := doJSON(t, server, http.MethodGet, "/api/admin/stats", resp.AccessToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "FORBIDDEN", env.Error)
}

func TestRequireAdmin_NoSideEffectsOnRejection(t *testing.T) {
	server, s := setupTestServer(t)

	resp := registerUser(t, server, "user@test.com", "user")
	seedAnimeWithEpisode(t, s)

	// A non-admin hitting an admin mutation is rejected before the
	// handler can touch anything.
	rec := doJSON(t, server, http.MethodPost, "/api/anime/", resp.AccessToken, map[string]string{
		"slug":     "sneaky",
		"title_en": "Sneaky",
		"status":   "ongoing",
	})
	require.Equal(t, http.StatusForbidden, rec.Code)

	_, err := s.GetAnimeBySlug(context.Background(), "sneaky")
	require.Error(t, err)
}

func TestAdminTierResolvedPerRequest(t *testing.T) {
	server, s := setupTestServer(t)

	resp := registerUser(t, server, "user@test.com", "user")

	rec := doJSON(t, server, http.MethodGet, "/api/admin/stats", resp.AccessToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// Promotion applies on the very next request with the same token:
	// the admin flag is read from the user row, not from claims.
	promoteToAdmin(t, s, resp.User.ID)
	rec = doJSON(t, server, http.MethodGet, "/api/admin/stats", resp.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Revocation is just as immediate.
	user, err := s.GetUser(context.Background(), resp.User.ID)
	require.NoError(t, err)
	user.IsAdmin = false
	require.NoError(t, s.UpdateUser(context.Background(), user))

	rec = doJSON(t, server, http.MethodGet, "/api/admin/stats", resp.AccessToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestOptionalAuth_AnonymousPassesThrough(t *testing.T) {
	server, s := setupTestServer(t)
	_, episode := seedAnimeWithEpisode(t, s)

	// No token: the like status endpoint answers with the public count.
	rec := doJSON(t, server, http.MethodGet, "/api/likes/"+episode.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// A broken token degrades to anonymous instead of failing.
	rec = doJSON(t, server, http.MethodGet, "/api/likes/"+episode.ID, "broken", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestBannedUserLosesAccess(t *testing.T) {
	server, s := setupTestServer(t)

	resp := registerUser(t, server, "user@test.com", "user")

	rec := doJSON(t, server, http.MethodGet, "/api/user/profile", resp.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	user, err := s.GetUser(context.Background(), resp.User.ID)
	require.NoError(t, err)
	user.Status = domain.UserStatusBanned
	require.NoError(t, s.UpdateUser(context.Background(), user))

	// The still-valid token stops working on the next request.
	rec = doJSON(t, server, http.MethodGet, "/api/user/profile", resp.AccessToken, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
