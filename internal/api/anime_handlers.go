package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/animexapp/animex-server/internal/domain"
	"github.com/animexapp/animex-server/internal/genre"
	"github.com/animexapp/animex-server/internal/http/response"
	"github.com/animexapp/animex-server/internal/search"
	"github.com/animexapp/animex-server/internal/service"
)

// handleListAnime handles GET /api/anime.
func (s *Server) handleListAnime(w http.ResponseWriter, r *http.Request) {
	list, err := s.animeService.List(r.Context(), service.ListParams{
		Genres:     splitQueryList(r, "genre"),
		Statuses:   splitQueryList(r, "status"),
		AgeRatings: splitQueryList(r, "age_rating"),
		Search:     r.URL.Query().Get("search"),
		Sort:       domain.AnimeSort(r.URL.Query().Get("sort")),
		Page:       queryInt(r, "page", 1),
		Limit:      queryInt(r, "limit", 20),
	})
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, list, "Anime fetched", s.logger)
}

// handleListGenres handles GET /api/genres. Serves the built-in taxonomy
// for the browse menu.
func (s *Server) handleListGenres(w http.ResponseWriter, r *http.Request) {
	type genreEntry struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}

	entries := make([]genreEntry, 0, len(genre.Defaults))
	for _, g := range genre.Defaults {
		entries = append(entries, genreEntry{Name: g.Name, Slug: g.Slug})
	}
	response.Success(w, entries, "Genres fetched", s.logger)
}

// handleTrendingAnime handles GET /api/anime/trending.
func (s *Server) handleTrendingAnime(w http.ResponseWriter, r *http.Request) {
	anime, err := s.animeService.Trending(r.Context(), queryInt(r, "limit", 10))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, anime, "Trending anime fetched", s.logger)
}

// handleFeaturedAnime handles GET /api/anime/featured.
func (s *Server) handleFeaturedAnime(w http.ResponseWriter, r *http.Request) {
	anime, err := s.animeService.Featured(r.Context(), queryInt(r, "limit", 10))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, anime, "Featured anime fetched", s.logger)
}

// animeDetail is the detail page payload: the series plus its episodes in
// watch order.
type animeDetail struct {
	*domain.Anime
	Episodes []*domain.Episode `json:"episodes"`
}

// handleGetAnime handles GET /api/anime/{slug}. Accepts a slug or an anime
// ID and counts a detail-page view.
func (s *Server) handleGetAnime(w http.ResponseWriter, r *http.Request) {
	anime, err := s.animeService.Get(r.Context(), chi.URLParam(r, "slug"), true)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	episodes, err := s.episodeService.ListForAnime(r.Context(), anime.ID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, animeDetail{Anime: anime, Episodes: episodes}, "Anime fetched", s.logger)
}

// handleCreateAnime handles POST /api/anime (admin).
func (s *Server) handleCreateAnime(w http.ResponseWriter, r *http.Request) {
	var req service.CreateAnimeRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	anime, err := s.animeService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, anime, "Anime created", s.logger)
}

// handleUpdateAnime handles PUT /api/anime/{id} (admin).
func (s *Server) handleUpdateAnime(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateAnimeRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	anime, err := s.animeService.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, anime, "Anime updated", s.logger)
}

// handleDeleteAnime handles DELETE /api/anime/{id} (admin).
func (s *Server) handleDeleteAnime(w http.ResponseWriter, r *http.Request) {
	if err := s.animeService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, nil, "Anime deleted", s.logger)
}

// handleSearch handles GET /api/search. An empty query falls back to the
// catalog listing so the search page always has content.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		s.handleListAnime(w, r)
		return
	}

	limit := queryInt(r, "limit", 20)
	page := queryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}

	result, err := s.animeService.Search(r.Context(), search.Params{
		Query:         query,
		Genres:        genre.Canonicalize(splitQueryList(r, "genre")),
		Statuses:      splitQueryList(r, "status"),
		MinYear:       queryInt(r, "min_year", 0),
		MaxYear:       queryInt(r, "max_year", 0),
		Limit:         limit,
		Offset:        (page - 1) * limit,
		IncludeFacets: queryBool(r, "facets", false),
		Highlight:     queryBool(r, "highlight", false),
	})
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, result, "Search results", s.logger)
}
