package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/animexapp/animex-server/internal/domain"
	domainerrors "github.com/animexapp/animex-server/internal/errors"
	"github.com/animexapp/animex-server/internal/store"
)

// AdminService exposes dashboard stats and user administration.
type AdminService struct {
	store  store.Store
	logger *slog.Logger
}

// NewAdminService creates a new admin service.
func NewAdminService(store store.Store, logger *slog.Logger) *AdminService {
	return &AdminService{store: store, logger: logger}
}

// DashboardStats summarizes the platform for the admin dashboard.
type DashboardStats struct {
	TotalUsers       int                           `json:"total_users"`
	NewUsersThisWeek int                           `json:"new_users_this_week"`
	TotalAnime       int                           `json:"total_anime"`
	TotalEpisodes    int                           `json:"total_episodes"`
	TopAnimeViews    int64                         `json:"top_anime_views"`
	FeedbackByStatus map[domain.FeedbackStatus]int `json:"feedback_by_status"`
}

// Stats assembles the dashboard numbers.
func (s *AdminService) Stats(ctx context.Context) (*DashboardStats, error) {
	totalUsers, err := s.store.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	newUsers, err := s.store.CountUsersCreatedSince(ctx, time.Now().AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}
	totalAnime, err := s.store.CountAnime(ctx)
	if err != nil {
		return nil, err
	}
	totalEpisodes, err := s.store.CountEpisodes(ctx)
	if err != nil {
		return nil, err
	}
	topViews, err := s.store.TopAnimeViewCount(ctx)
	if err != nil {
		return nil, err
	}
	feedback, err := s.store.CountFeedbackByStatus(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalUsers:       totalUsers,
		NewUsersThisWeek: newUsers,
		TotalAnime:       totalAnime,
		TotalEpisodes:    totalEpisodes,
		TopAnimeViews:    topViews,
		FeedbackByStatus: feedback,
	}, nil
}

// UserList is a paginated user listing.
type UserList struct {
	Items      []*domain.User `json:"items"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"totalPages"`
}

// ListUsers returns users for the admin panel, optionally filtered by a
// search over email and username.
func (s *AdminService) ListUsers(ctx context.Context, search string, page, limit int) (*UserList, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	users, total, err := s.store.ListUsers(ctx, search, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	return &UserList{
		Items:      users,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// SetBanned bans or unbans an account. Banning revokes every session so
// the account is locked out as soon as its access token expires. Admins
// cannot ban themselves.
func (s *AdminService) SetBanned(ctx context.Context, actorID, userID string, banned bool) (*domain.User, error) {
	if banned && actorID == userID {
		return nil, domainerrors.Validation("cannot ban your own account")
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if banned {
		user.Status = domain.UserStatusBanned
	} else {
		user.Status = domain.UserStatusActive
	}
	user.UpdatedAt = time.Now()
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	if banned {
		if err := s.store.DeleteAllUserSessions(ctx, userID); err != nil {
			s.logger.Warn("failed to revoke sessions for banned user", "user_id", userID, "error", err)
		}
	}

	s.logger.Info("user status changed", "user_id", userID, "banned", banned, "actor_id", actorID)
	return user, nil
}

// SetAdmin grants or revokes the admin flag. The change takes effect on the
// target's very next request: authorization re-reads the flag every time and
// never trusts token claims for it. Admins cannot demote themselves.
func (s *AdminService) SetAdmin(ctx context.Context, actorID, userID string, admin bool) (*domain.User, error) {
	if !admin && actorID == userID {
		return nil, domainerrors.Validation("cannot revoke your own admin access")
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.IsAdmin = admin
	user.UpdatedAt = time.Now()
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("admin flag changed", "user_id", userID, "admin", admin, "actor_id", actorID)
	return user, nil
}
