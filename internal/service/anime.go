package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/animexapp/animex-server/internal/domain"
	domainerrors "github.com/animexapp/animex-server/internal/errors"
	"github.com/animexapp/animex-server/internal/genre"
	"github.com/animexapp/animex-server/internal/id"
	"github.com/animexapp/animex-server/internal/search"
	"github.com/animexapp/animex-server/internal/store"
	"github.com/animexapp/animex-server/internal/util"
	"github.com/animexapp/animex-server/internal/validation"
)

// AnimeService manages the catalog.
type AnimeService struct {
	store     store.Store
	index     *search.Index
	validator *validation.Validator
	logger    *slog.Logger
}

// NewAnimeService creates a new anime service. index may be nil when search
// is disabled.
func NewAnimeService(
	store store.Store,
	index *search.Index,
	validator *validation.Validator,
	logger *slog.Logger,
) *AnimeService {
	return &AnimeService{
		store:     store,
		index:     index,
		validator: validator,
		logger:    logger,
	}
}

// ListParams narrows and pages a catalog listing.
type ListParams struct {
	Genres     []string
	Statuses   []string
	AgeRatings []string
	Search     string
	Sort       domain.AnimeSort
	Page       int
	Limit      int
}

// AnimeList is a paginated catalog page.
type AnimeList struct {
	Items      []*domain.Anime `json:"items"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"totalPages"`
}

// List returns a filtered, sorted catalog page.
func (s *AnimeService) List(ctx context.Context, params ListParams) (*AnimeList, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 || params.Limit > 100 {
		params.Limit = 20
	}
	if params.Sort != "" && !params.Sort.Valid() {
		return nil, domainerrors.Validationf("invalid sort: %s", params.Sort)
	}

	anime, total, err := s.store.ListAnime(ctx, store.AnimeFilter{
		Genres:     genre.Canonicalize(params.Genres),
		Statuses:   params.Statuses,
		AgeRatings: params.AgeRatings,
		Search:     params.Search,
		Sort:       params.Sort,
		Limit:      params.Limit,
		Offset:     (params.Page - 1) * params.Limit,
	})
	if err != nil {
		return nil, err
	}

	return &AnimeList{
		Items:      anime,
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: totalPages(total, params.Limit),
	}, nil
}

// Trending returns the anime currently flagged as trending.
func (s *AnimeService) Trending(ctx context.Context, limit int) ([]*domain.Anime, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}
	return s.store.ListTrendingAnime(ctx, limit)
}

// Featured returns the anime currently flagged as featured.
func (s *AnimeService) Featured(ctx context.Context, limit int) ([]*domain.Anime, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}
	return s.store.ListFeaturedAnime(ctx, limit)
}

// Get resolves an anime by ID or slug. Catalog IDs are prefixed nanoids, so
// anything that isn't one (and isn't a UUID from an older import) is treated
// as a slug. When countView is set the anime's view counter is incremented
// atomically in the background; a detail-page render never waits on it.
func (s *AnimeService) Get(ctx context.Context, idOrSlug string, countView bool) (*domain.Anime, error) {
	anime, err := s.resolve(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}

	if countView {
		go func(animeID string) {
			bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.store.IncrementAnimeViews(bgCtx, animeID); err != nil {
				s.logger.Warn("failed to count anime view", "anime_id", animeID, "error", err)
			}
		}(anime.ID)
	}

	return anime, nil
}

func (s *AnimeService) resolve(ctx context.Context, idOrSlug string) (*domain.Anime, error) {
	looksLikeID := len(idOrSlug) > 6 && idOrSlug[:6] == "anime-"
	if _, err := uuid.Parse(idOrSlug); err == nil {
		looksLikeID = true
	}

	if looksLikeID {
		anime, err := s.store.GetAnime(ctx, idOrSlug)
		if err == nil {
			return anime, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}
	return s.store.GetAnimeBySlug(ctx, idOrSlug)
}

// CreateAnimeRequest contains the fields for a new catalog entry.
type CreateAnimeRequest struct {
	Slug        string   `json:"slug" validate:"required,slug,max=100"`
	TitleEN     string   `json:"title_en" validate:"required,max=200"`
	TitleSI     string   `json:"title_si" validate:"max=200"`
	TitleTA     string   `json:"title_ta" validate:"max=200"`
	Description string   `json:"description" validate:"max=5000"`
	PosterURL   string   `json:"poster_url" validate:"omitempty,url"`
	BannerURL   string   `json:"banner_url" validate:"omitempty,url"`
	TrailerURL  string   `json:"trailer_url" validate:"omitempty,url"`
	Genres      []string `json:"genre"`
	Tags        []string `json:"tags"`
	AgeRating   string   `json:"age_rating" validate:"max=20"`
	ReleaseYear int      `json:"release_year" validate:"omitempty,gte=1950,lte=2100"`
	Status      string   `json:"status" validate:"required,oneof=ongoing completed"`
	IsFeatured  bool     `json:"is_featured"`
	IsTrending  bool     `json:"is_trending"`
}

// Create adds a new anime to the catalog.
func (s *AnimeService) Create(ctx context.Context, req CreateAnimeRequest) (*domain.Anime, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	animeID, err := id.Generate("anime")
	if err != nil {
		return nil, fmt.Errorf("generate anime ID: %w", err)
	}

	now := time.Now()
	anime := &domain.Anime{
		ID:          animeID,
		CreatedAt:   now,
		UpdatedAt:   now,
		Slug:        req.Slug,
		TitleEN:     req.TitleEN,
		TitleSI:     req.TitleSI,
		TitleTA:     req.TitleTA,
		Description: req.Description,
		PosterURL:   req.PosterURL,
		BannerURL:   req.BannerURL,
		TrailerURL:  req.TrailerURL,
		Genres:      genre.Canonicalize(req.Genres),
		Tags:        util.NormalizeTags(req.Tags),
		AgeRating:   req.AgeRating,
		ReleaseYear: req.ReleaseYear,
		Status:      domain.AnimeStatus(req.Status),
		IsFeatured:  req.IsFeatured,
		IsTrending:  req.IsTrending,
	}

	if err := s.store.CreateAnime(ctx, anime); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("slug already in use")
		}
		return nil, err
	}

	s.logger.Info("anime created", "anime_id", animeID, "slug", anime.Slug)
	return anime, nil
}

// UpdateAnimeRequest contains optional updates. Nil pointers leave the field
// unchanged; []string fields replace wholesale when non-nil.
type UpdateAnimeRequest struct {
	TitleEN     *string  `json:"title_en" validate:"omitempty,max=200"`
	TitleSI     *string  `json:"title_si" validate:"omitempty,max=200"`
	TitleTA     *string  `json:"title_ta" validate:"omitempty,max=200"`
	Description *string  `json:"description" validate:"omitempty,max=5000"`
	PosterURL   *string  `json:"poster_url" validate:"omitempty,url"`
	BannerURL   *string  `json:"banner_url" validate:"omitempty,url"`
	TrailerURL  *string  `json:"trailer_url" validate:"omitempty,url"`
	Genres      []string `json:"genre"`
	Tags        []string `json:"tags"`
	AgeRating   *string  `json:"age_rating" validate:"omitempty,max=20"`
	ReleaseYear *int     `json:"release_year" validate:"omitempty,gte=1950,lte=2100"`
	Status      *string  `json:"status" validate:"omitempty,oneof=ongoing completed"`
	IsFeatured  *bool    `json:"is_featured"`
	IsTrending  *bool    `json:"is_trending"`
}

// Update applies a partial update to an anime.
func (s *AnimeService) Update(ctx context.Context, animeID string, req UpdateAnimeRequest) (*domain.Anime, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	anime, err := s.store.GetAnime(ctx, animeID)
	if err != nil {
		return nil, err
	}

	if req.TitleEN != nil {
		anime.TitleEN = *req.TitleEN
	}
	if req.TitleSI != nil {
		anime.TitleSI = *req.TitleSI
	}
	if req.TitleTA != nil {
		anime.TitleTA = *req.TitleTA
	}
	if req.Description != nil {
		anime.Description = *req.Description
	}
	if req.PosterURL != nil {
		anime.PosterURL = *req.PosterURL
	}
	if req.BannerURL != nil {
		anime.BannerURL = *req.BannerURL
	}
	if req.TrailerURL != nil {
		anime.TrailerURL = *req.TrailerURL
	}
	if req.Genres != nil {
		anime.Genres = genre.Canonicalize(req.Genres)
	}
	if req.Tags != nil {
		anime.Tags = util.NormalizeTags(req.Tags)
	}
	if req.AgeRating != nil {
		anime.AgeRating = *req.AgeRating
	}
	if req.ReleaseYear != nil {
		anime.ReleaseYear = *req.ReleaseYear
	}
	if req.Status != nil {
		anime.Status = domain.AnimeStatus(*req.Status)
	}
	if req.IsFeatured != nil {
		anime.IsFeatured = *req.IsFeatured
	}
	if req.IsTrending != nil {
		anime.IsTrending = *req.IsTrending
	}
	anime.UpdatedAt = time.Now()

	if err := s.store.UpdateAnime(ctx, anime); err != nil {
		return nil, err
	}
	return anime, nil
}

// Delete removes an anime and everything under it (episodes, likes,
// watchlist entries cascade in the store).
func (s *AnimeService) Delete(ctx context.Context, animeID string) error {
	if err := s.store.DeleteAnime(ctx, animeID); err != nil {
		return err
	}
	s.logger.Info("anime deleted", "anime_id", animeID)
	return nil
}

// Search runs a full-text catalog search.
func (s *AnimeService) Search(ctx context.Context, params search.Params) (*search.Result, error) {
	if s.index == nil {
		return nil, domainerrors.Dependency("search is not available")
	}
	if params.Limit < 1 || params.Limit > 50 {
		params.Limit = 20
	}
	return s.index.Search(ctx, params)
}

// ReindexAll rebuilds the search index from the catalog. Used on startup
// after a mapping change and exposed to admins.
func (s *AnimeService) ReindexAll(ctx context.Context) (int, error) {
	if s.index == nil {
		return 0, domainerrors.Dependency("search is not available")
	}

	var indexed int
	const pageSize = 500
	for offset := 0; ; offset += pageSize {
		anime, _, err := s.store.ListAnime(ctx, store.AnimeFilter{Limit: pageSize, Offset: offset})
		if err != nil {
			return indexed, err
		}
		if len(anime) == 0 {
			break
		}
		if err := s.index.IndexAnimeBatch(anime); err != nil {
			return indexed, fmt.Errorf("index batch: %w", err)
		}
		indexed += len(anime)
		if len(anime) < pageSize {
			break
		}
	}

	s.logger.Info("search reindex complete", "indexed", indexed)
	return indexed, nil
}

// totalPages computes the page count for a listing.
func totalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
