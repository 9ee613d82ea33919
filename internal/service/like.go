package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/animexapp/animex-server/internal/domain"
	"github.com/animexapp/animex-server/internal/id"
	"github.com/animexapp/animex-server/internal/store"
)

// LikeService implements the idempotent like toggle for episodes.
//
// Counter strategy: the like rows are the source of truth. Every toggle
// recounts the rows and writes the result into the episode's cached
// like_count; the cache is never incremented in place, so it can drift at
// most until the next toggle and always converges to the row count.
type LikeService struct {
	store  store.Store
	logger *slog.Logger
}

// NewLikeService creates a new like service.
func NewLikeService(store store.Store, logger *slog.Logger) *LikeService {
	return &LikeService{store: store, logger: logger}
}

// Toggle flips the caller's like on an episode and returns the resulting
// state. Concurrent toggles for the same (user, episode) pair may race on
// the insert or delete; the unique constraint turns the race into a benign
// signal and the final recount still reflects the surviving rows.
func (s *LikeService) Toggle(ctx context.Context, userID, episodeID string) (*domain.LikeStatus, error) {
	episode, err := s.store.GetEpisode(ctx, episodeID)
	if err != nil {
		return nil, err
	}

	liked, err := s.store.HasLike(ctx, userID, episodeID)
	if err != nil {
		return nil, fmt.Errorf("check like: %w", err)
	}

	if liked {
		err = s.store.DeleteLike(ctx, userID, episodeID)
		if errors.Is(err, store.ErrNotFound) {
			// Another toggle got there first; fall through to the recount.
			err = nil
		}
		liked = false
	} else {
		likeID, idErr := id.Generate("like")
		if idErr != nil {
			return nil, fmt.Errorf("generate like ID: %w", idErr)
		}
		err = s.store.CreateLike(ctx, &domain.Like{
			ID:        likeID,
			UserID:    userID,
			EpisodeID: episodeID,
			CreatedAt: time.Now(),
		})
		if errors.Is(err, store.ErrAlreadyExists) {
			err = nil
		}
		liked = true
	}
	if err != nil {
		return nil, fmt.Errorf("toggle like: %w", err)
	}

	// Authoritative recount.
	count, err := s.store.CountLikesForEpisode(ctx, episodeID)
	if err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}
	if err := s.store.SetEpisodeLikeCount(ctx, episodeID, count); err != nil {
		return nil, fmt.Errorf("update like count: %w", err)
	}

	// Refresh the anime's aggregate like count. Best effort: a failure here
	// leaves a stale aggregate that the next toggle repairs.
	go s.refreshAnimeLikeCount(episode.AnimeID)

	return &domain.LikeStatus{Liked: liked, Count: count}, nil
}

// Status returns whether the user liked the episode and the current count.
// An anonymous caller (empty userID) gets liked=false with the count.
func (s *LikeService) Status(ctx context.Context, userID, episodeID string) (*domain.LikeStatus, error) {
	if _, err := s.store.GetEpisode(ctx, episodeID); err != nil {
		return nil, err
	}

	liked := false
	if userID != "" {
		var err error
		liked, err = s.store.HasLike(ctx, userID, episodeID)
		if err != nil {
			return nil, fmt.Errorf("check like: %w", err)
		}
	}

	count, err := s.store.CountLikesForEpisode(ctx, episodeID)
	if err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}

	return &domain.LikeStatus{Liked: liked, Count: count}, nil
}

func (s *LikeService) refreshAnimeLikeCount(animeID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := s.store.CountLikesForAnime(ctx, animeID)
	if err != nil {
		s.logger.Warn("failed to count anime likes", "anime_id", animeID, "error", err)
		return
	}
	if err := s.store.SetAnimeLikeCount(ctx, animeID, count); err != nil {
		s.logger.Warn("failed to update anime like count", "anime_id", animeID, "error", err)
	}
}
