package sqlite

import (
	"context"
	"errors"

	"github.com/animexapp/animex-server/internal/domain"
	"github.com/animexapp/animex-server/internal/store"
)

// CreateWatchlistEntry inserts a subscription. Returns ErrAlreadyExists when
// the anime is already on the user's watchlist; callers map that to a benign
// success-with-notice response.
func (s *Store) CreateWatchlistEntry(ctx context.Context, entry *domain.WatchlistEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO watchlist (id, user_id, anime_id, sort_order, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		entry.ID,
		entry.UserID,
		entry.AnimeID,
		entry.SortOrder,
		formatTime(entry.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists.WithMessage("already in watchlist")
		}
		return store.ErrInternal.WithCause(err)
	}
	return nil
}

// DeleteWatchlistEntry removes a subscription. Deleting an absent entry is
// not an error; the end state is the same.
func (s *Store) DeleteWatchlistEntry(ctx context.Context, userID, animeID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM watchlist WHERE user_id = ? AND anime_id = ?`, userID, animeID)
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}
	return nil
}

// ListWatchlist returns a user's entries ordered by sort_order.
func (s *Store) ListWatchlist(ctx context.Context, userID string) ([]*domain.WatchlistEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, anime_id, sort_order, created_at
		FROM watchlist WHERE user_id = ? ORDER BY sort_order ASC, created_at ASC`, userID)
	if err != nil {
		return nil, store.ErrInternal.WithCause(err)
	}
	defer rows.Close()

	var entries []*domain.WatchlistEntry
	for rows.Next() {
		var (
			entry     domain.WatchlistEntry
			createdAt string
		)
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.AnimeID, &entry.SortOrder, &createdAt); err != nil {
			return nil, store.ErrInternal.WithCause(err)
		}
		if entry.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, store.ErrInternal.WithCause(err)
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, store.ErrInternal.WithCause(err)
	}

	// Hydrate the anime for display. An entry whose anime was deleted is
	// skipped rather than failing the whole list.
	hydrated := entries[:0]
	for _, entry := range entries {
		anime, err := s.GetAnime(ctx, entry.AnimeID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, err
		}
		entry.Anime = anime
		hydrated = append(hydrated, entry)
	}
	return hydrated, nil
}

// ListWatchlistUserIDs enumerates the subscribers of an anime. This drives
// notification fanout for new episodes.
func (s *Store) ListWatchlistUserIDs(ctx context.Context, animeID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id FROM watchlist WHERE anime_id = ?`, animeID)
	if err != nil {
		return nil, store.ErrInternal.WithCause(err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, store.ErrInternal.WithCause(err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, store.ErrInternal.WithCause(err)
	}
	return ids, nil
}

// SetWatchlistOrder updates one entry's sort position. The user scoping
// prevents reordering someone else's entries.
func (s *Store) SetWatchlistOrder(ctx context.Context, userID, entryID string, sortOrder int) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE watchlist SET sort_order = ? WHERE id = ? AND user_id = ?`,
		sortOrder, entryID, userID)
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}
	if rows == 0 {
		return store.ErrNotFound.WithMessage("watchlist entry not found")
	}
	return nil
}
