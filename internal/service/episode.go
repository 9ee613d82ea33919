package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/animexapp/animex-server/internal/domain"
	domainerrors "github.com/animexapp/animex-server/internal/errors"
	"github.com/animexapp/animex-server/internal/id"
	"github.com/animexapp/animex-server/internal/store"
	"github.com/animexapp/animex-server/internal/validation"
)

// EpisodeService manages episodes and their view counters.
type EpisodeService struct {
	store         store.Store
	notifications *NotificationService
	validator     *validation.Validator
	logger        *slog.Logger
}

// NewEpisodeService creates a new episode service. notifications may be nil,
// in which case publishing an episode does not notify subscribers.
func NewEpisodeService(
	store store.Store,
	notifications *NotificationService,
	validator *validation.Validator,
	logger *slog.Logger,
) *EpisodeService {
	return &EpisodeService{
		store:         store,
		notifications: notifications,
		validator:     validator,
		logger:        logger,
	}
}

// EpisodeWithAnime pairs an episode with its parent series for the player.
type EpisodeWithAnime struct {
	Episode *domain.Episode `json:"episode"`
	Anime   *domain.Anime   `json:"anime"`
}

// Get fetches an episode together with its parent anime.
func (s *EpisodeService) Get(ctx context.Context, episodeID string) (*EpisodeWithAnime, error) {
	episode, err := s.store.GetEpisode(ctx, episodeID)
	if err != nil {
		return nil, err
	}
	anime, err := s.store.GetAnime(ctx, episode.AnimeID)
	if err != nil {
		return nil, err
	}
	return &EpisodeWithAnime{Episode: episode, Anime: anime}, nil
}

// ListForAnime returns all episodes of a series in episode order.
func (s *EpisodeService) ListForAnime(ctx context.Context, animeID string) ([]*domain.Episode, error) {
	if _, err := s.store.GetAnime(ctx, animeID); err != nil {
		return nil, err
	}
	return s.store.ListEpisodesForAnime(ctx, animeID)
}

// CreateEpisodeRequest contains the fields for a new episode.
type CreateEpisodeRequest struct {
	AnimeID         string `json:"anime_id" validate:"required"`
	EpisodeNumber   int    `json:"episode_number" validate:"required,gte=0"`
	SeasonNumber    int    `json:"season_number" validate:"gte=0"`
	Title           string `json:"title" validate:"max=200"`
	Description     string `json:"description" validate:"max=5000"`
	VideoURL        string `json:"video_url" validate:"required,url"`
	ThumbnailURL    string `json:"thumbnail_url" validate:"omitempty,url"`
	DurationSeconds int    `json:"duration_seconds" validate:"gte=0"`
	SubtitleENURL   string `json:"subtitle_en_url" validate:"omitempty,url"`
	SubtitleSIURL   string `json:"subtitle_si_url" validate:"omitempty,url"`
	SubtitleTAURL   string `json:"subtitle_ta_url" validate:"omitempty,url"`
	IsFree          bool   `json:"is_free"`
}

// Create publishes a new episode, refreshes the series episode count, and
// notifies watchlist subscribers. Notification delivery must never fail the
// publish: it runs in the background and partial fanout is acceptable.
func (s *EpisodeService) Create(ctx context.Context, req CreateEpisodeRequest) (*domain.Episode, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	anime, err := s.store.GetAnime(ctx, req.AnimeID)
	if err != nil {
		return nil, err
	}

	episodeID, err := id.Generate("ep")
	if err != nil {
		return nil, fmt.Errorf("generate episode ID: %w", err)
	}

	now := time.Now()
	episode := &domain.Episode{
		ID:              episodeID,
		CreatedAt:       now,
		UpdatedAt:       now,
		AnimeID:         anime.ID,
		EpisodeNumber:   req.EpisodeNumber,
		SeasonNumber:    req.SeasonNumber,
		Title:           req.Title,
		Description:     req.Description,
		VideoURL:        req.VideoURL,
		ThumbnailURL:    req.ThumbnailURL,
		DurationSeconds: req.DurationSeconds,
		SubtitleENURL:   req.SubtitleENURL,
		SubtitleSIURL:   req.SubtitleSIURL,
		SubtitleTAURL:   req.SubtitleTAURL,
		IsFree:          req.IsFree,
	}

	if err := s.store.CreateEpisode(ctx, episode); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("episode number already exists for this anime")
		}
		return nil, err
	}
	s.logger.Info("episode created",
		"episode_id", episode.ID,
		"anime_id", anime.ID,
		"episode_number", episode.EpisodeNumber,
	)

	if err := s.refreshEpisodeCount(ctx, anime.ID); err != nil {
		s.logger.Warn("failed to refresh episode count", "anime_id", anime.ID, "error", err)
	}

	if s.notifications != nil {
		go func() {
			bgCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := s.notifications.FanoutNewEpisode(bgCtx, anime, episode); err != nil {
				s.logger.Warn("episode fanout incomplete",
					"episode_id", episode.ID,
					"anime_id", anime.ID,
					"error", err,
				)
			}
		}()
	}

	return episode, nil
}

// UpdateEpisodeRequest contains optional updates for an episode.
type UpdateEpisodeRequest struct {
	EpisodeNumber   *int    `json:"episode_number" validate:"omitempty,gte=0"`
	SeasonNumber    *int    `json:"season_number" validate:"omitempty,gte=0"`
	Title           *string `json:"title" validate:"omitempty,max=200"`
	Description     *string `json:"description" validate:"omitempty,max=5000"`
	VideoURL        *string `json:"video_url" validate:"omitempty,url"`
	ThumbnailURL    *string `json:"thumbnail_url" validate:"omitempty,url"`
	DurationSeconds *int    `json:"duration_seconds" validate:"omitempty,gte=0"`
	SubtitleENURL   *string `json:"subtitle_en_url" validate:"omitempty,url"`
	SubtitleSIURL   *string `json:"subtitle_si_url" validate:"omitempty,url"`
	SubtitleTAURL   *string `json:"subtitle_ta_url" validate:"omitempty,url"`
	IsFree          *bool   `json:"is_free"`
}

// Update applies a partial update to an episode.
func (s *EpisodeService) Update(ctx context.Context, episodeID string, req UpdateEpisodeRequest) (*domain.Episode, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	episode, err := s.store.GetEpisode(ctx, episodeID)
	if err != nil {
		return nil, err
	}

	if req.EpisodeNumber != nil {
		episode.EpisodeNumber = *req.EpisodeNumber
	}
	if req.SeasonNumber != nil {
		episode.SeasonNumber = *req.SeasonNumber
	}
	if req.Title != nil {
		episode.Title = *req.Title
	}
	if req.Description != nil {
		episode.Description = *req.Description
	}
	if req.VideoURL != nil {
		episode.VideoURL = *req.VideoURL
	}
	if req.ThumbnailURL != nil {
		episode.ThumbnailURL = *req.ThumbnailURL
	}
	if req.DurationSeconds != nil {
		episode.DurationSeconds = *req.DurationSeconds
	}
	if req.SubtitleENURL != nil {
		episode.SubtitleENURL = *req.SubtitleENURL
	}
	if req.SubtitleSIURL != nil {
		episode.SubtitleSIURL = *req.SubtitleSIURL
	}
	if req.SubtitleTAURL != nil {
		episode.SubtitleTAURL = *req.SubtitleTAURL
	}
	if req.IsFree != nil {
		episode.IsFree = *req.IsFree
	}
	episode.UpdatedAt = time.Now()

	if err := s.store.UpdateEpisode(ctx, episode); err != nil {
		return nil, err
	}
	return episode, nil
}

// Delete removes an episode and refreshes the series episode count.
func (s *EpisodeService) Delete(ctx context.Context, episodeID string) error {
	episode, err := s.store.GetEpisode(ctx, episodeID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteEpisode(ctx, episodeID); err != nil {
		return err
	}
	if err := s.refreshEpisodeCount(ctx, episode.AnimeID); err != nil {
		s.logger.Warn("failed to refresh episode count", "anime_id", episode.AnimeID, "error", err)
	}
	s.logger.Info("episode deleted", "episode_id", episodeID, "anime_id", episode.AnimeID)
	return nil
}

// IncrementView counts a playback start. The episode counter is deliberately
// read-modify-write: concurrent views can lose an increment, which is
// acceptable for an approximate popularity signal and keeps the hot path to
// two cheap statements. The anime aggregate uses an atomic UPDATE and is
// refreshed in the background.
func (s *EpisodeService) IncrementView(ctx context.Context, episodeID string) (int64, error) {
	episode, err := s.store.GetEpisode(ctx, episodeID)
	if err != nil {
		return 0, err
	}

	newCount := episode.ViewCount + 1
	if err := s.store.SetEpisodeViewCount(ctx, episodeID, newCount); err != nil {
		return 0, err
	}

	go func(animeID string) {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.store.IncrementAnimeViews(bgCtx, animeID); err != nil {
			s.logger.Warn("failed to bump anime views", "anime_id", animeID, "error", err)
		}
	}(episode.AnimeID)

	return newCount, nil
}

// refreshEpisodeCount recomputes total_episodes from episode rows.
func (s *EpisodeService) refreshEpisodeCount(ctx context.Context, animeID string) error {
	count, err := s.store.CountEpisodesForAnime(ctx, animeID)
	if err != nil {
		return err
	}
	return s.store.SetAnimeTotalEpisodes(ctx, animeID, count)
}
