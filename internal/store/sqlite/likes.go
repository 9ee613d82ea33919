package sqlite

import (
	"context"

	"github.com/animexapp/animex-server/internal/domain"
	"github.com/animexapp/animex-server/internal/store"
)

// CreateLike inserts a like fact. Returns ErrAlreadyExists if the
// (user, episode) pair is already present, which callers treat as a
// concurrent-toggle signal rather than a failure.
func (s *Store) CreateLike(ctx context.Context, like *domain.Like) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO likes (id, user_id, episode_id, created_at)
		VALUES (?, ?, ?, ?)`,
		like.ID,
		like.UserID,
		like.EpisodeID,
		formatTime(like.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists.WithMessage("already liked")
		}
		return store.ErrInternal.WithCause(err)
	}
	return nil
}

// DeleteLike removes a like fact. Returns ErrNotFound if no such like exists.
func (s *Store) DeleteLike(ctx context.Context, userID, episodeID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM likes WHERE user_id = ? AND episode_id = ?`, userID, episodeID)
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}
	if rows == 0 {
		return store.ErrNotFound.WithMessage("like not found")
	}
	return nil
}

// HasLike reports whether the user has liked the episode.
func (s *Store) HasLike(ctx context.Context, userID, episodeID string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM likes WHERE user_id = ? AND episode_id = ?`,
		userID, episodeID).Scan(&count)
	if err != nil {
		return false, store.ErrInternal.WithCause(err)
	}
	return count > 0, nil
}

// CountLikesForEpisode counts like facts for an episode. This is the
// authoritative count; the episode's like_count column is only a cache of it.
func (s *Store) CountLikesForEpisode(ctx context.Context, episodeID string) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM likes WHERE episode_id = ?`, episodeID).Scan(&count)
	if err != nil {
		return 0, store.ErrInternal.WithCause(err)
	}
	return count, nil
}

// CountLikesForAnime counts like facts across all episodes of a series.
func (s *Store) CountLikesForAnime(ctx context.Context, animeID string) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM likes l
		JOIN episodes e ON l.episode_id = e.id
		WHERE e.anime_id = ?`, animeID).Scan(&count)
	if err != nil {
		return 0, store.ErrInternal.WithCause(err)
	}
	return count, nil
}
