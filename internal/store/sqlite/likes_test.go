package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/animexapp/animex-server/internal/domain"
	"github.com/animexapp/animex-server/internal/store"
)

// seedAnimeWithEpisode inserts one anime with one episode and two users,
// returning the episode ID.
func seedAnimeWithEpisode(t *testing.T, s *Store) string {
	t.Helper()
	ctx := context.Background()

	if err := s.CreateUser(ctx, makeTestUser("user-1", "a@example.com")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if err := s.CreateUser(ctx, makeTestUser("user-2", "b@example.com")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if err := s.CreateAnime(ctx, makeTestAnime("anime-1", "test-anime")); err != nil {
		t.Fatalf("CreateAnime: %v", err)
	}
	if err := s.CreateEpisode(ctx, makeTestEpisode("ep-1", "anime-1", 1, 1)); err != nil {
		t.Fatalf("CreateEpisode: %v", err)
	}
	return "ep-1"
}

func TestCreateAndCountLikes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	epID := seedAnimeWithEpisode(t, s)

	like := &domain.Like{ID: "like-1", UserID: "user-1", EpisodeID: epID, CreatedAt: time.Now()}
	if err := s.CreateLike(ctx, like); err != nil {
		t.Fatalf("CreateLike: %v", err)
	}

	has, err := s.HasLike(ctx, "user-1", epID)
	if err != nil {
		t.Fatalf("HasLike: %v", err)
	}
	if !has {
		t.Error("expected HasLike true after create")
	}

	count, err := s.CountLikesForEpisode(ctx, epID)
	if err != nil {
		t.Fatalf("CountLikesForEpisode: %v", err)
	}
	if count != 1 {
		t.Errorf("count: got %d, want 1", count)
	}

	// Second user likes the same episode.
	like2 := &domain.Like{ID: "like-2", UserID: "user-2", EpisodeID: epID, CreatedAt: time.Now()}
	if err := s.CreateLike(ctx, like2); err != nil {
		t.Fatalf("CreateLike user-2: %v", err)
	}
	count, err = s.CountLikesForEpisode(ctx, epID)
	if err != nil {
		t.Fatalf("CountLikesForEpisode: %v", err)
	}
	if count != 2 {
		t.Errorf("count: got %d, want 2", count)
	}
}

func TestCreateLikeDuplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	epID := seedAnimeWithEpisode(t, s)

	like := &domain.Like{ID: "like-1", UserID: "user-1", EpisodeID: epID, CreatedAt: time.Now()}
	if err := s.CreateLike(ctx, like); err != nil {
		t.Fatalf("CreateLike: %v", err)
	}

	// The unique (user, episode) pair rejects a second row; callers treat
	// this as a concurrent-toggle signal and re-query.
	dup := &domain.Like{ID: "like-dup", UserID: "user-1", EpisodeID: epID, CreatedAt: time.Now()}
	err := s.CreateLike(ctx, dup)
	if err == nil {
		t.Fatal("expected duplicate like error")
	}
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestDeleteLike(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	epID := seedAnimeWithEpisode(t, s)

	like := &domain.Like{ID: "like-1", UserID: "user-1", EpisodeID: epID, CreatedAt: time.Now()}
	if err := s.CreateLike(ctx, like); err != nil {
		t.Fatalf("CreateLike: %v", err)
	}
	if err := s.DeleteLike(ctx, "user-1", epID); err != nil {
		t.Fatalf("DeleteLike: %v", err)
	}

	has, err := s.HasLike(ctx, "user-1", epID)
	if err != nil {
		t.Fatalf("HasLike: %v", err)
	}
	if has {
		t.Error("expected HasLike false after delete")
	}

	// Deleting again reports not found (concurrent-toggle signal).
	err = s.DeleteLike(ctx, "user-1", epID)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCountLikesForAnime(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedAnimeWithEpisode(t, s)

	if err := s.CreateEpisode(ctx, makeTestEpisode("ep-2", "anime-1", 1, 2)); err != nil {
		t.Fatalf("CreateEpisode: %v", err)
	}

	likes := []*domain.Like{
		{ID: "like-1", UserID: "user-1", EpisodeID: "ep-1", CreatedAt: time.Now()},
		{ID: "like-2", UserID: "user-2", EpisodeID: "ep-1", CreatedAt: time.Now()},
		{ID: "like-3", UserID: "user-1", EpisodeID: "ep-2", CreatedAt: time.Now()},
	}
	for _, l := range likes {
		if err := s.CreateLike(ctx, l); err != nil {
			t.Fatalf("CreateLike %s: %v", l.ID, err)
		}
	}

	count, err := s.CountLikesForAnime(ctx, "anime-1")
	if err != nil {
		t.Fatalf("CountLikesForAnime: %v", err)
	}
	if count != 3 {
		t.Errorf("count: got %d, want 3", count)
	}
}
