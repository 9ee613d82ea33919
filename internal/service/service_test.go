package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/animexapp/animex-server/internal/auth"
	"github.com/animexapp/animex-server/internal/domain"
	"github.com/animexapp/animex-server/internal/store"
	"github.com/animexapp/animex-server/internal/store/sqlite"
	"github.com/animexapp/animex-server/internal/validation"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := sqlite.Open(dbPath, logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func createTestUser(t *testing.T, s store.Store, id, email string) *domain.User {
	t.Helper()

	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	now := time.Now()
	user := &domain.User{
		ID:           id,
		CreatedAt:    now,
		UpdatedAt:    now,
		Email:        email,
		Username:     id,
		Status:       domain.UserStatusActive,
		PasswordHash: hash,
	}
	require.NoError(t, s.CreateUser(context.Background(), user))
	return user
}

func createTestAnime(t *testing.T, s store.Store, id, slug string) *domain.Anime {
	t.Helper()

	now := time.Now()
	anime := &domain.Anime{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
		Slug:      slug,
		TitleEN:   "Test Anime " + id,
		Genres:    []string{"action"},
		Status:    domain.AnimeStatusOngoing,
	}
	require.NoError(t, s.CreateAnime(context.Background(), anime))
	return anime
}

func createTestEpisode(t *testing.T, s store.Store, id, animeID string, number int) *domain.Episode {
	t.Helper()

	now := time.Now()
	episode := &domain.Episode{
		ID:            id,
		CreatedAt:     now,
		UpdatedAt:     now,
		AnimeID:       animeID,
		EpisodeNumber: number,
		VideoURL:      "https://cdn.example.com/" + id + ".m3u8",
		IsFree:        true,
	}
	require.NoError(t, s.CreateEpisode(context.Background(), episode))
	return episode
}

func newTestValidator() *validation.Validator {
	return validation.New()
}
