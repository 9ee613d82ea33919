package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/animexapp/animex-server/internal/domain"
	domainerrors "github.com/animexapp/animex-server/internal/errors"
	"github.com/animexapp/animex-server/internal/http/response"
	"github.com/animexapp/animex-server/internal/service"
)

// handleSubmitFeedback handles POST /api/feedback. Works for anonymous and
// signed-in callers alike.
func (s *Server) handleSubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req service.SubmitFeedbackRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	feedback, err := s.feedbackService.Submit(r.Context(), userIDFrom(r.Context()), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, feedback, "Feedback submitted", s.logger)
}

// handleListFeedback handles GET /api/feedback (admin).
func (s *Server) handleListFeedback(w http.ResponseWriter, r *http.Request) {
	list, err := s.feedbackService.List(r.Context(),
		r.URL.Query().Get("status"),
		r.URL.Query().Get("type"),
		queryInt(r, "page", 1),
		queryInt(r, "limit", 20),
	)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, list, "Feedback fetched", s.logger)
}

// handleUpdateFeedbackStatus handles PUT /api/feedback/{id} (admin).
func (s *Server) handleUpdateFeedbackStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	feedback, err := s.feedbackService.UpdateStatus(r.Context(), chi.URLParam(r, "id"), domain.FeedbackStatus(req.Status))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, feedback, "Feedback updated", s.logger)
}

// handleReplyFeedback handles POST /api/feedback/{id}/reply (admin).
func (s *Server) handleReplyFeedback(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Reply string `json:"reply"`
	}
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	if req.Reply == "" {
		response.HandleError(w, domainerrors.Validation("reply is required"), s.logger)
		return
	}

	feedback, err := s.feedbackService.Reply(r.Context(), chi.URLParam(r, "id"), req.Reply)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, feedback, "Reply sent", s.logger)
}
