package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/animexapp/animex-server/internal/http/response"
	"github.com/animexapp/animex-server/internal/service"
)

// handleGetProfile handles GET /api/user/profile.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := s.profileService.Get(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, user, "Profile fetched", s.logger)
}

// handleUpdateProfile handles PUT /api/user/profile.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	user, err := s.profileService.Update(r.Context(), userIDFrom(r.Context()), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, user, "Profile updated", s.logger)
}

// handleChangePassword handles PUT /api/user/password.
func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req service.ChangePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if err := s.profileService.ChangePassword(r.Context(), userIDFrom(r.Context()), req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, nil, "Password changed", s.logger)
}

// handleListWatchlist handles GET /api/user/watchlist.
func (s *Server) handleListWatchlist(w http.ResponseWriter, r *http.Request) {
	list, err := s.watchlistService.List(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, list, "Watchlist fetched", s.logger)
}

// handleAddToWatchlist handles POST /api/user/watchlist. Adding an anime
// already on the list succeeds with a notice instead of a conflict.
func (s *Server) handleAddToWatchlist(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AnimeID string `json:"anime_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	result, err := s.watchlistService.Add(r.Context(), userIDFrom(r.Context()), req.AnimeID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	if result.Added {
		response.Created(w, result, result.Message, s.logger)
		return
	}
	response.Success(w, result, result.Message, s.logger)
}

// handleRemoveFromWatchlist handles DELETE /api/user/watchlist/{animeId}.
func (s *Server) handleRemoveFromWatchlist(w http.ResponseWriter, r *http.Request) {
	if err := s.watchlistService.Remove(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "animeId")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, nil, "Removed from watchlist", s.logger)
}

// handleReorderWatchlist handles PUT /api/user/watchlist/reorder.
func (s *Server) handleReorderWatchlist(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EntryIDs []string `json:"entry_ids"`
	}
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if err := s.watchlistService.Reorder(r.Context(), userIDFrom(r.Context()), req.EntryIDs); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, nil, "Watchlist reordered", s.logger)
}

// handleWatchHistory handles GET /api/user/history.
func (s *Server) handleWatchHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.watchlistService.History(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, history, "Watch history fetched", s.logger)
}

// handleSaveProgress handles POST /api/user/history.
func (s *Server) handleSaveProgress(w http.ResponseWriter, r *http.Request) {
	var req service.SaveProgressRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	progress, err := s.watchlistService.SaveProgress(r.Context(), userIDFrom(r.Context()), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, progress, "Progress saved", s.logger)
}
