package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/animexapp/animex-server/internal/domain"
	"github.com/animexapp/animex-server/internal/store"
)

// scanWatchProgress scans a row into a domain.WatchProgress.
func scanWatchProgress(scanner interface{ Scan(dest ...any) error }) (*domain.WatchProgress, error) {
	var (
		p         domain.WatchProgress
		completed int
		createdAt string
		updatedAt string
	)
	err := scanner.Scan(
		&p.ID,
		&p.UserID,
		&p.EpisodeID,
		&p.AnimeID,
		&p.ProgressSeconds,
		&p.DurationSeconds,
		&completed,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Completed = completed != 0
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

const watchProgressColumns = `id, user_id, episode_id, anime_id, progress_seconds,
	duration_seconds, completed, created_at, updated_at`

// GetWatchProgress fetches the progress row for a (user, episode) pair.
func (s *Store) GetWatchProgress(ctx context.Context, userID, episodeID string) (*domain.WatchProgress, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+watchProgressColumns+` FROM watch_history WHERE user_id = ? AND episode_id = ?`,
		userID, episodeID)
	progress, err := scanWatchProgress(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound.WithMessage("watch progress not found")
		}
		return nil, store.ErrInternal.WithCause(err)
	}
	return progress, nil
}

// CreateWatchProgress inserts a new progress row.
func (s *Store) CreateWatchProgress(ctx context.Context, progress *domain.WatchProgress) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO watch_history (id, user_id, episode_id, anime_id, progress_seconds,
			duration_seconds, completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		progress.ID,
		progress.UserID,
		progress.EpisodeID,
		progress.AnimeID,
		progress.ProgressSeconds,
		progress.DurationSeconds,
		boolToInt(progress.Completed),
		formatTime(progress.CreatedAt),
		formatTime(progress.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists.WithMessage("watch progress already exists")
		}
		return store.ErrInternal.WithCause(err)
	}
	return nil
}

// UpdateWatchProgress overwrites an existing progress row.
func (s *Store) UpdateWatchProgress(ctx context.Context, progress *domain.WatchProgress) error {
	progress.UpdatedAt = time.Now()
	result, err := s.db.ExecContext(ctx, `
		UPDATE watch_history SET progress_seconds = ?, duration_seconds = ?,
			completed = ?, updated_at = ?
		WHERE id = ?`,
		progress.ProgressSeconds,
		progress.DurationSeconds,
		boolToInt(progress.Completed),
		formatTime(progress.UpdatedAt),
		progress.ID,
	)
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}
	if rows == 0 {
		return store.ErrNotFound.WithMessage("watch progress not found")
	}
	return nil
}

// ListWatchHistory returns a user's progress rows, most recently updated first.
func (s *Store) ListWatchHistory(ctx context.Context, userID string) ([]*domain.WatchProgress, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+watchProgressColumns+` FROM watch_history WHERE user_id = ? ORDER BY updated_at DESC`,
		userID)
	if err != nil {
		return nil, store.ErrInternal.WithCause(err)
	}
	defer rows.Close()

	var history []*domain.WatchProgress
	for rows.Next() {
		progress, err := scanWatchProgress(rows)
		if err != nil {
			return nil, store.ErrInternal.WithCause(err)
		}
		history = append(history, progress)
	}
	if err := rows.Err(); err != nil {
		return nil, store.ErrInternal.WithCause(err)
	}
	return history, nil
}
