package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/animexapp/animex-server/internal/domain"
	"github.com/animexapp/animex-server/internal/store"
)

// episodeColumns is the ordered list of columns selected in episode queries.
// Must match the scan order in scanEpisode.
const episodeColumns = `id, created_at, updated_at, anime_id, episode_number, season_number,
	title, description, video_url, thumbnail_url, duration_seconds,
	subtitle_en_url, subtitle_si_url, subtitle_ta_url, is_free, view_count, like_count`

// scanEpisode scans a sql.Row (or sql.Rows via its Scan method) into a domain.Episode.
func scanEpisode(scanner interface{ Scan(dest ...any) error }) (*domain.Episode, error) {
	var e domain.Episode

	var (
		createdAt string
		updatedAt string
		isFree    int
	)

	err := scanner.Scan(
		&e.ID,
		&createdAt,
		&updatedAt,
		&e.AnimeID,
		&e.EpisodeNumber,
		&e.SeasonNumber,
		&e.Title,
		&e.Description,
		&e.VideoURL,
		&e.ThumbnailURL,
		&e.DurationSeconds,
		&e.SubtitleENURL,
		&e.SubtitleSIURL,
		&e.SubtitleTAURL,
		&isFree,
		&e.ViewCount,
		&e.LikeCount,
	)
	if err != nil {
		return nil, err
	}

	if e.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if e.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	e.IsFree = isFree != 0

	return &e, nil
}

// CreateEpisode inserts an episode row.
func (s *Store) CreateEpisode(ctx context.Context, episode *domain.Episode) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO episodes (id, created_at, updated_at, anime_id, episode_number,
			season_number, title, description, video_url, thumbnail_url, duration_seconds,
			subtitle_en_url, subtitle_si_url, subtitle_ta_url, is_free, view_count, like_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		episode.ID,
		formatTime(episode.CreatedAt),
		formatTime(episode.UpdatedAt),
		episode.AnimeID,
		episode.EpisodeNumber,
		episode.SeasonNumber,
		episode.Title,
		episode.Description,
		episode.VideoURL,
		episode.ThumbnailURL,
		episode.DurationSeconds,
		episode.SubtitleENURL,
		episode.SubtitleSIURL,
		episode.SubtitleTAURL,
		boolToInt(episode.IsFree),
		episode.ViewCount,
		episode.LikeCount,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists.WithMessage("episode number already exists for this season")
		}
		return store.ErrInternal.WithCause(err)
	}
	return nil
}

// GetEpisode fetches an episode by ID.
func (s *Store) GetEpisode(ctx context.Context, id string) (*domain.Episode, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+episodeColumns+` FROM episodes WHERE id = ?`, id)
	episode, err := scanEpisode(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound.WithMessage("episode not found")
		}
		return nil, store.ErrInternal.WithCause(err)
	}
	return episode, nil
}

// UpdateEpisode writes all mutable episode fields back to the row.
func (s *Store) UpdateEpisode(ctx context.Context, episode *domain.Episode) error {
	episode.UpdatedAt = time.Now()
	result, err := s.db.ExecContext(ctx, `
		UPDATE episodes SET updated_at = ?, episode_number = ?, season_number = ?,
			title = ?, description = ?, video_url = ?, thumbnail_url = ?,
			duration_seconds = ?, subtitle_en_url = ?, subtitle_si_url = ?,
			subtitle_ta_url = ?, is_free = ?
		WHERE id = ?`,
		formatTime(episode.UpdatedAt),
		episode.EpisodeNumber,
		episode.SeasonNumber,
		episode.Title,
		episode.Description,
		episode.VideoURL,
		episode.ThumbnailURL,
		episode.DurationSeconds,
		episode.SubtitleENURL,
		episode.SubtitleSIURL,
		episode.SubtitleTAURL,
		boolToInt(episode.IsFree),
		episode.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists.WithMessage("episode number already exists for this season")
		}
		return store.ErrInternal.WithCause(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}
	if rows == 0 {
		return store.ErrNotFound.WithMessage("episode not found")
	}
	return nil
}

// DeleteEpisode removes an episode and its likes (cascade).
func (s *Store) DeleteEpisode(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM episodes WHERE id = ?`, id)
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}
	if rows == 0 {
		return store.ErrNotFound.WithMessage("episode not found")
	}
	return nil
}

// ListEpisodesForAnime returns all episodes of a series ordered by season
// then episode number.
func (s *Store) ListEpisodesForAnime(ctx context.Context, animeID string) ([]*domain.Episode, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+episodeColumns+` FROM episodes WHERE anime_id = ?
		 ORDER BY season_number ASC, episode_number ASC`, animeID)
	if err != nil {
		return nil, store.ErrInternal.WithCause(err)
	}
	defer rows.Close()

	var episodes []*domain.Episode
	for rows.Next() {
		episode, err := scanEpisode(rows)
		if err != nil {
			return nil, store.ErrInternal.WithCause(err)
		}
		episodes = append(episodes, episode)
	}
	if err := rows.Err(); err != nil {
		return nil, store.ErrInternal.WithCause(err)
	}
	return episodes, nil
}

// CountEpisodes returns the total number of episodes.
func (s *Store) CountEpisodes(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM episodes`).Scan(&count); err != nil {
		return 0, store.ErrInternal.WithCause(err)
	}
	return count, nil
}

// CountEpisodesForAnime returns the number of episodes under a series.
func (s *Store) CountEpisodesForAnime(ctx context.Context, animeID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM episodes WHERE anime_id = ?`, animeID).Scan(&count)
	if err != nil {
		return 0, store.ErrInternal.WithCause(err)
	}
	return count, nil
}

// SetEpisodeViewCount overwrites the cached view counter.
func (s *Store) SetEpisodeViewCount(ctx context.Context, episodeID string, count int64) error {
	return s.setEpisodeCounter(ctx, episodeID, "view_count", count)
}

// SetEpisodeLikeCount overwrites the cached like counter.
func (s *Store) SetEpisodeLikeCount(ctx context.Context, episodeID string, count int64) error {
	return s.setEpisodeCounter(ctx, episodeID, "like_count", count)
}

// setEpisodeCounter writes a single cached counter column.
func (s *Store) setEpisodeCounter(ctx context.Context, episodeID, column string, value int64) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE episodes SET `+column+` = ? WHERE id = ?`, value, episodeID)
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}
	if rows == 0 {
		return store.ErrNotFound.WithMessage("episode not found")
	}
	return nil
}
