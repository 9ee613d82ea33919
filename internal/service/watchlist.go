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
	"github.com/animexapp/animex-server/internal/validation"
)

// WatchlistService manages watchlist subscriptions and watch history.
type WatchlistService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewWatchlistService creates a new watchlist service.
func NewWatchlistService(store store.Store, validator *validation.Validator, logger *slog.Logger) *WatchlistService {
	return &WatchlistService{store: store, validator: validator, logger: logger}
}

// AddResult reports whether an add created a new entry or found an existing
// one. Adding an anime that is already on the list is not an error.
type AddResult struct {
	Added   bool   `json:"added"`
	Message string `json:"message"`
}

// Add subscribes the user to an anime. Duplicate adds succeed without
// creating a second entry.
func (s *WatchlistService) Add(ctx context.Context, userID, animeID string) (*AddResult, error) {
	if _, err := s.store.GetAnime(ctx, animeID); err != nil {
		return nil, err
	}

	entryID, err := id.Generate("wl")
	if err != nil {
		return nil, fmt.Errorf("generate watchlist ID: %w", err)
	}

	err = s.store.CreateWatchlistEntry(ctx, &domain.WatchlistEntry{
		ID:        entryID,
		UserID:    userID,
		AnimeID:   animeID,
		CreatedAt: time.Now(),
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return &AddResult{Added: false, Message: "Already in watchlist"}, nil
		}
		return nil, err
	}
	return &AddResult{Added: true, Message: "Added to watchlist"}, nil
}

// Remove unsubscribes the user from an anime. Removing an anime that is not
// on the list is a no-op.
func (s *WatchlistService) Remove(ctx context.Context, userID, animeID string) error {
	return s.store.DeleteWatchlistEntry(ctx, userID, animeID)
}

// List returns the user's watchlist with anime details populated.
func (s *WatchlistService) List(ctx context.Context, userID string) ([]*domain.WatchlistEntry, error) {
	return s.store.ListWatchlist(ctx, userID)
}

// Reorder sets the sort position of the caller's watchlist entries. Entry
// IDs not belonging to the caller are ignored.
func (s *WatchlistService) Reorder(ctx context.Context, userID string, entryIDs []string) error {
	for i, entryID := range entryIDs {
		if err := s.store.SetWatchlistOrder(ctx, userID, entryID, i); err != nil {
			return err
		}
	}
	return nil
}

// SaveProgressRequest records a playback position.
type SaveProgressRequest struct {
	EpisodeID       string `json:"episode_id" validate:"required"`
	ProgressSeconds int    `json:"progress_seconds" validate:"gte=0"`
	DurationSeconds int    `json:"duration_seconds" validate:"gte=0"`
	Completed       bool   `json:"completed"`
}

// SaveProgress upserts the playback position for the caller on an episode.
func (s *WatchlistService) SaveProgress(ctx context.Context, userID string, req SaveProgressRequest) (*domain.WatchProgress, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	episode, err := s.store.GetEpisode(ctx, req.EpisodeID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	progress, err := s.store.GetWatchProgress(ctx, userID, req.EpisodeID)
	switch {
	case err == nil:
		progress.ProgressSeconds = req.ProgressSeconds
		progress.DurationSeconds = req.DurationSeconds
		progress.Completed = req.Completed
		progress.UpdatedAt = now
		if err := s.store.UpdateWatchProgress(ctx, progress); err != nil {
			return nil, err
		}
		return progress, nil
	case errors.Is(err, store.ErrNotFound):
		progressID, err := id.Generate("wp")
		if err != nil {
			return nil, fmt.Errorf("generate progress ID: %w", err)
		}
		progress = &domain.WatchProgress{
			ID:              progressID,
			UserID:          userID,
			EpisodeID:       episode.ID,
			AnimeID:         episode.AnimeID,
			ProgressSeconds: req.ProgressSeconds,
			DurationSeconds: req.DurationSeconds,
			Completed:       req.Completed,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := s.store.CreateWatchProgress(ctx, progress); err != nil {
			return nil, err
		}
		return progress, nil
	default:
		return nil, err
	}
}

// History returns the caller's watch history, most recently watched first.
func (s *WatchlistService) History(ctx context.Context, userID string) ([]*domain.WatchProgress, error) {
	return s.store.ListWatchHistory(ctx, userID)
}
