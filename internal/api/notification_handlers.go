package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	domainerrors "github.com/animexapp/animex-server/internal/errors"
	"github.com/animexapp/animex-server/internal/http/response"
)

// handleListNotifications handles GET /api/notifications.
func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := s.notificationService.List(r.Context(), userIDFrom(r.Context()), queryInt(r, "limit", 0))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, notifications, "Notifications fetched", s.logger)
}

// handleMarkNotificationRead handles PUT /api/notifications/{id}/read.
func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	err := s.notificationService.MarkRead(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, nil, "Notification marked as read", s.logger)
}

// handleMarkAllNotificationsRead handles PUT /api/notifications/read-all.
func (s *Server) handleMarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	if err := s.notificationService.MarkAllRead(r.Context(), userIDFrom(r.Context())); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, nil, "All notifications marked as read", s.logger)
}

// handleBroadcast handles POST /api/notifications/broadcast (admin).
func (s *Server) handleBroadcast(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title   string `json:"title"`
		Message string `json:"message"`
		Link    string `json:"link"`
	}
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	if req.Title == "" || req.Message == "" {
		response.HandleError(w, domainerrors.Validation("title and message are required"), s.logger)
		return
	}

	created, err := s.notificationService.Broadcast(r.Context(), req.Title, req.Message, req.Link)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, map[string]int{"recipients": created}, "Broadcast sent", s.logger)
}
