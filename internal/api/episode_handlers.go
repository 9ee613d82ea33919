package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/animexapp/animex-server/internal/http/response"
	"github.com/animexapp/animex-server/internal/service"
)

// handleGetEpisode handles GET /api/episodes/{id}.
func (s *Server) handleGetEpisode(w http.ResponseWriter, r *http.Request) {
	result, err := s.episodeService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, result, "Episode fetched", s.logger)
}

// handleIncrementEpisodeViews handles PATCH /api/episodes/{id}/views.
// Anonymous viewers count too.
func (s *Server) handleIncrementEpisodeViews(w http.ResponseWriter, r *http.Request) {
	count, err := s.episodeService.IncrementView(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, map[string]int64{"view_count": count}, "View counted", s.logger)
}

// handleCreateEpisode handles POST /api/episodes (admin).
func (s *Server) handleCreateEpisode(w http.ResponseWriter, r *http.Request) {
	var req service.CreateEpisodeRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	episode, err := s.episodeService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, episode, "Episode created", s.logger)
}

// handleUpdateEpisode handles PUT /api/episodes/{id} (admin).
func (s *Server) handleUpdateEpisode(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateEpisodeRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	episode, err := s.episodeService.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, episode, "Episode updated", s.logger)
}

// handleDeleteEpisode handles DELETE /api/episodes/{id} (admin).
func (s *Server) handleDeleteEpisode(w http.ResponseWriter, r *http.Request) {
	if err := s.episodeService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, nil, "Episode deleted", s.logger)
}
