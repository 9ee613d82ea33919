package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/animexapp/animex-server/internal/domain"
	"github.com/animexapp/animex-server/internal/http/response"
	"github.com/animexapp/animex-server/internal/service"
)

// handleListComments handles GET /api/comments/{episodeId}.
func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	list, err := s.commentService.ListForEpisode(r.Context(), chi.URLParam(r, "episodeId"), queryInt(r, "page", 1))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, list, "Comments fetched", s.logger)
}

// handleCreateComment handles POST /api/comments.
func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	var req service.CreateCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	comment, err := s.commentService.Create(r.Context(), userIDFrom(r.Context()), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, comment, "Comment posted", s.logger)
}

// handleDeleteComment handles DELETE /api/comments/{id}. Authors delete
// their own comments; admins delete any.
func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	isAdmin := tierFrom(ctx).AtLeast(domain.TierAdmin)
	if err := s.commentService.Delete(ctx, chi.URLParam(r, "id"), userIDFrom(ctx), isAdmin); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, nil, "Comment deleted", s.logger)
}

// handleFlagComment handles POST /api/comments/{id}/flag.
func (s *Server) handleFlagComment(w http.ResponseWriter, r *http.Request) {
	if err := s.commentService.Flag(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, nil, "Comment flagged", s.logger)
}

// handleAdminListComments handles GET /api/admin/comments.
func (s *Server) handleAdminListComments(w http.ResponseWriter, r *http.Request) {
	list, err := s.commentService.ListAll(r.Context(),
		queryBool(r, "flagged", false),
		queryInt(r, "page", 1),
		queryInt(r, "limit", 20),
	)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, list, "Comments fetched", s.logger)
}

// handleAdminApproveComment handles PUT /api/admin/comments/{id}/approve.
func (s *Server) handleAdminApproveComment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Approved bool `json:"approved"`
	}
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if err := s.commentService.Approve(r.Context(), chi.URLParam(r, "id"), req.Approved); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	message := "Comment hidden"
	if req.Approved {
		message = "Comment approved"
	}
	response.Success(w, nil, message, s.logger)
}
