package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/animexapp/animex-server/internal/http/response"
)

// handleAdminStats handles GET /api/admin/stats.
func (s *Server) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.adminService.Stats(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, stats, "Stats fetched", s.logger)
}

// handleAdminListUsers handles GET /api/admin/users.
func (s *Server) handleAdminListUsers(w http.ResponseWriter, r *http.Request) {
	list, err := s.adminService.ListUsers(r.Context(),
		r.URL.Query().Get("search"),
		queryInt(r, "page", 1),
		queryInt(r, "limit", 20),
	)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, list, "Users fetched", s.logger)
}

// handleAdminSetBanned handles PUT /api/admin/users/{id}/ban.
func (s *Server) handleAdminSetBanned(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Banned bool `json:"banned"`
	}
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	user, err := s.adminService.SetBanned(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "id"), req.Banned)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	message := "User unbanned"
	if req.Banned {
		message = "User banned"
	}
	response.Success(w, user, message, s.logger)
}

// handleAdminSetAdmin handles PUT /api/admin/users/{id}/admin. The change
// applies on the target's next request; no token reissue is needed.
func (s *Server) handleAdminSetAdmin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Admin bool `json:"admin"`
	}
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	user, err := s.adminService.SetAdmin(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "id"), req.Admin)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	message := "Admin access revoked"
	if req.Admin {
		message = "Admin access granted"
	}
	response.Success(w, user, message, s.logger)
}

// handleAdminReindex handles POST /api/admin/reindex.
func (s *Server) handleAdminReindex(w http.ResponseWriter, r *http.Request) {
	indexed, err := s.animeService.ReindexAll(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, map[string]int{"indexed": indexed}, "Search index rebuilt", s.logger)
}
