package api

import (
	"net/http"

	"github.com/animexapp/animex-server/internal/http/response"
)

// handleHealthCheck handles GET /api/health.
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]string{"status": "ok"}, "AnimeX API is running", s.logger)
}
