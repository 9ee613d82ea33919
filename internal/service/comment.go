package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/animexapp/animex-server/internal/domain"
	domainerrors "github.com/animexapp/animex-server/internal/errors"
	"github.com/animexapp/animex-server/internal/id"
	"github.com/animexapp/animex-server/internal/store"
	"github.com/animexapp/animex-server/internal/validation"
)

// profanityPattern matches masked words case-insensitively anywhere in the
// text, including inside longer words.
var profanityPattern = regexp.MustCompile(`(?i)fuck|shit|ass|damn|bitch|dick|crap|hell`)

// maskProfanity replaces each profane match with asterisks of equal length.
func maskProfanity(text string) string {
	return profanityPattern.ReplaceAllStringFunc(text, func(match string) string {
		return strings.Repeat("*", len(match))
	})
}

// CommentService handles episode comments and moderation.
type CommentService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewCommentService creates a new comment service.
func NewCommentService(store store.Store, validator *validation.Validator, logger *slog.Logger) *CommentService {
	return &CommentService{store: store, validator: validator, logger: logger}
}

// CreateCommentRequest is a new comment on an episode.
type CreateCommentRequest struct {
	EpisodeID string `json:"episode_id" validate:"required"`
	Content   string `json:"content" validate:"required,min=1,max=500"`
}

// Create posts a comment. Content is profanity-masked before it is stored;
// the raw text is never persisted.
func (s *CommentService) Create(ctx context.Context, userID string, req CreateCommentRequest) (*domain.Comment, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if _, err := s.store.GetEpisode(ctx, req.EpisodeID); err != nil {
		return nil, err
	}

	commentID, err := id.Generate("comment")
	if err != nil {
		return nil, fmt.Errorf("generate comment ID: %w", err)
	}

	comment := &domain.Comment{
		ID:         commentID,
		CreatedAt:  time.Now(),
		UserID:     userID,
		EpisodeID:  req.EpisodeID,
		Content:    maskProfanity(req.Content),
		IsApproved: true,
	}
	if err := s.store.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	// Re-read for the author display fields.
	return s.store.GetComment(ctx, comment.ID)
}

// CommentList is a paginated comment page.
type CommentList struct {
	Items      []*domain.Comment `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"totalPages"`
}

// ListForEpisode returns approved comments on an episode, newest first.
func (s *CommentService) ListForEpisode(ctx context.Context, episodeID string, page int) (*CommentList, error) {
	if page < 1 {
		page = 1
	}
	const limit = 10

	items, total, err := s.store.ListCommentsForEpisode(ctx, episodeID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	return &CommentList{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// Delete removes a comment. Only the author or an admin may delete it.
func (s *CommentService) Delete(ctx context.Context, commentID, userID string, isAdmin bool) error {
	comment, err := s.store.GetComment(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID && !isAdmin {
		return domainerrors.Forbidden("not authorized to delete this comment")
	}
	return s.store.DeleteComment(ctx, commentID)
}

// Flag marks a comment for admin review. The comment stays visible until
// an admin acts on it. Flagging an already-flagged comment is a no-op.
func (s *CommentService) Flag(ctx context.Context, commentID string) error {
	if _, err := s.store.GetComment(ctx, commentID); err != nil {
		return err
	}
	return s.store.SetCommentFlagged(ctx, commentID, true)
}

// Approve sets a comment's visibility and clears any flag.
func (s *CommentService) Approve(ctx context.Context, commentID string, approved bool) error {
	if _, err := s.store.GetComment(ctx, commentID); err != nil {
		return err
	}
	if err := s.store.SetCommentApproved(ctx, commentID, approved); err != nil {
		return err
	}
	return s.store.SetCommentFlagged(ctx, commentID, false)
}

// ListAll returns comments across all episodes for moderation, flagged
// first. When flaggedOnly is set only flagged comments are returned.
func (s *CommentService) ListAll(ctx context.Context, flaggedOnly bool, page, limit int) (*CommentList, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	items, total, err := s.store.ListAllComments(ctx, flaggedOnly, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	return &CommentList{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}
