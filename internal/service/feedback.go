package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/animexapp/animex-server/internal/domain"
	domainerrors "github.com/animexapp/animex-server/internal/errors"
	"github.com/animexapp/animex-server/internal/email"
	"github.com/animexapp/animex-server/internal/id"
	"github.com/animexapp/animex-server/internal/store"
	"github.com/animexapp/animex-server/internal/validation"
)

// FeedbackService handles feedback submission and admin triage.
type FeedbackService struct {
	store     store.Store
	mailer    email.Mailer
	validator *validation.Validator
	logger    *slog.Logger
}

// NewFeedbackService creates a new feedback service.
func NewFeedbackService(
	store store.Store,
	mailer email.Mailer,
	validator *validation.Validator,
	logger *slog.Logger,
) *FeedbackService {
	return &FeedbackService{
		store:     store,
		mailer:    mailer,
		validator: validator,
		logger:    logger,
	}
}

// SubmitFeedbackRequest is a feedback submission. Anonymous callers must
// supply a name; signed-in callers default to their profile.
type SubmitFeedbackRequest struct {
	Name          string `json:"name" validate:"max=100"`
	Email         string `json:"email" validate:"omitempty,email"`
	Subject       string `json:"subject" validate:"max=200"`
	Message       string `json:"message" validate:"required,min=3,max=5000"`
	Rating        int    `json:"rating" validate:"gte=0,lte=5"`
	Type          string `json:"type" validate:"omitempty,oneof=general bug feature compliment content other"`
	ScreenshotURL string `json:"screenshot_url" validate:"omitempty,url"`
}

// Submit records feedback. userID is empty for anonymous submissions.
func (s *FeedbackService) Submit(ctx context.Context, userID string, req SubmitFeedbackRequest) (*domain.Feedback, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	name := req.Name
	emailAddr := req.Email
	if userID != "" {
		user, err := s.store.GetUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		if name == "" {
			name = user.Username
		}
		if emailAddr == "" {
			emailAddr = user.Email
		}
	}
	if name == "" {
		name = "Anonymous"
	}

	feedbackType := domain.FeedbackType(req.Type)
	if feedbackType == "" {
		feedbackType = domain.FeedbackTypeGeneral
	}

	feedbackID, err := id.Generate("fb")
	if err != nil {
		return nil, fmt.Errorf("generate feedback ID: %w", err)
	}

	now := time.Now()
	feedback := &domain.Feedback{
		ID:            feedbackID,
		CreatedAt:     now,
		UpdatedAt:     now,
		UserID:        userID,
		Name:          name,
		Email:         emailAddr,
		Subject:       req.Subject,
		Message:       req.Message,
		Rating:        req.Rating,
		Type:          feedbackType,
		ScreenshotURL: req.ScreenshotURL,
		Status:        domain.FeedbackStatusNew,
	}

	if err := s.store.CreateFeedback(ctx, feedback); err != nil {
		return nil, err
	}
	s.logger.Info("feedback received", "feedback_id", feedback.ID, "type", feedback.Type)
	return feedback, nil
}

// FeedbackList is a paginated admin listing.
type FeedbackList struct {
	Items      []*domain.Feedback `json:"items"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"totalPages"`
}

// List returns feedback for admin triage, optionally filtered by status
// and type.
func (s *FeedbackService) List(ctx context.Context, status, feedbackType string, page, limit int) (*FeedbackList, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	items, total, err := s.store.ListFeedback(ctx, store.FeedbackFilter{
		Status: status,
		Type:   feedbackType,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}

	return &FeedbackList{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// UpdateStatus moves a feedback entry between triage states.
func (s *FeedbackService) UpdateStatus(ctx context.Context, feedbackID string, status domain.FeedbackStatus) (*domain.Feedback, error) {
	switch status {
	case domain.FeedbackStatusNew, domain.FeedbackStatusSeen, domain.FeedbackStatusResolved:
	default:
		return nil, domainerrors.Validationf("invalid status: %s", status)
	}

	feedback, err := s.store.GetFeedback(ctx, feedbackID)
	if err != nil {
		return nil, err
	}
	feedback.Status = status
	feedback.UpdatedAt = time.Now()
	if err := s.store.UpdateFeedback(ctx, feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

// Reply stores an admin reply, resolves the feedback, and emails the
// submitter if they left an address. Email delivery is best effort: a
// failed send is logged but the reply still succeeds.
func (s *FeedbackService) Reply(ctx context.Context, feedbackID, reply string) (*domain.Feedback, error) {
	if reply == "" {
		return nil, domainerrors.Validation("reply must not be empty")
	}

	feedback, err := s.store.GetFeedback(ctx, feedbackID)
	if err != nil {
		return nil, err
	}

	feedback.AdminReply = reply
	feedback.Status = domain.FeedbackStatusResolved
	feedback.UpdatedAt = time.Now()
	if err := s.store.UpdateFeedback(ctx, feedback); err != nil {
		return nil, err
	}

	if feedback.Email != "" {
		subject := "Re: Your AnimeX feedback"
		if feedback.Subject != "" {
			subject = "Re: " + feedback.Subject
		}
		body := email.FeedbackReplyHTML(feedback.Name, reply)
		if err := s.mailer.Send(ctx, feedback.Email, subject, body); err != nil {
			s.logger.Warn("failed to email feedback reply",
				"feedback_id", feedback.ID,
				"error", err,
			)
		}
	}

	s.logger.Info("feedback replied", "feedback_id", feedback.ID)
	return feedback, nil
}
