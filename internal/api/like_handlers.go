package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/animexapp/animex-server/internal/http/response"
)

// handleToggleLike handles POST /api/likes/{episodeId}. The returned count
// is the authoritative recount, not an increment.
func (s *Server) handleToggleLike(w http.ResponseWriter, r *http.Request) {
	status, err := s.likeService.Toggle(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "episodeId"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	message := "Episode unliked"
	if status.Liked {
		message = "Episode liked"
	}
	response.Success(w, status, message, s.logger)
}

// handleLikeStatus handles GET /api/likes/{episodeId}. Anonymous callers
// get liked=false with the public count.
func (s *Server) handleLikeStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.likeService.Status(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "episodeId"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, status, "Like status fetched", s.logger)
}
