package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/animexapp/animex-server/internal/domain"
	"github.com/animexapp/animex-server/internal/id"
	"github.com/animexapp/animex-server/internal/store"
)

// defaultNotificationLimit caps a single inbox page.
const defaultNotificationLimit = 50

// NotificationService delivers in-app notifications.
type NotificationService struct {
	store  store.Store
	logger *slog.Logger
}

// NewNotificationService creates a new notification service.
func NewNotificationService(store store.Store, logger *slog.Logger) *NotificationService {
	return &NotificationService{store: store, logger: logger}
}

// FanoutNewEpisode creates one notification per watchlist subscriber of the
// anime. Rows are inserted independently: a failed row never blocks the
// rest, and there is no dedup — publishing the same episode twice notifies
// twice. The returned error, if any, covers only the rows that failed.
func (s *NotificationService) FanoutNewEpisode(ctx context.Context, anime *domain.Anime, episode *domain.Episode) error {
	userIDs, err := s.store.ListWatchlistUserIDs(ctx, anime.ID)
	if err != nil {
		return fmt.Errorf("list subscribers: %w", err)
	}
	if len(userIDs) == 0 {
		return nil
	}

	notifications := make([]*domain.Notification, 0, len(userIDs))
	now := time.Now()
	for _, userID := range userIDs {
		notificationID, err := id.Generate("notif")
		if err != nil {
			return fmt.Errorf("generate notification ID: %w", err)
		}
		notifications = append(notifications, &domain.Notification{
			ID:        notificationID,
			UserID:    userID,
			Title:     "New Episode",
			Message:   fmt.Sprintf("New episode of %s is available!", anime.TitleEN),
			Type:      domain.NotificationTypeNewEpisode,
			Link:      fmt.Sprintf("/watch/%s/%d", anime.Slug, episode.EpisodeNumber),
			CreatedAt: now,
		})
	}

	created, err := s.store.CreateNotifications(ctx, notifications)
	s.logger.Info("episode fanout",
		"anime_id", anime.ID,
		"episode_id", episode.ID,
		"subscribers", len(userIDs),
		"notified", created,
	)
	return err
}

// Broadcast sends a system notification to every registered user.
func (s *NotificationService) Broadcast(ctx context.Context, title, message, link string) (int, error) {
	userIDs, err := s.store.ListUserIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list users: %w", err)
	}
	if len(userIDs) == 0 {
		return 0, nil
	}

	notifications := make([]*domain.Notification, 0, len(userIDs))
	now := time.Now()
	for _, userID := range userIDs {
		notificationID, err := id.Generate("notif")
		if err != nil {
			return 0, fmt.Errorf("generate notification ID: %w", err)
		}
		notifications = append(notifications, &domain.Notification{
			ID:        notificationID,
			UserID:    userID,
			Title:     title,
			Message:   message,
			Type:      domain.NotificationTypeSystem,
			Link:      link,
			CreatedAt: now,
		})
	}

	created, err := s.store.CreateNotifications(ctx, notifications)
	s.logger.Info("broadcast sent", "recipients", len(userIDs), "created", created)
	return created, err
}

// List returns the caller's most recent notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID string, limit int) ([]*domain.Notification, error) {
	if limit < 1 || limit > defaultNotificationLimit {
		limit = defaultNotificationLimit
	}
	return s.store.ListNotificationsForUser(ctx, userID, limit)
}

// MarkRead marks one notification as read. Only the owner can mark it;
// a foreign or unknown ID is a not-found. Read is terminal: marking an
// already-read notification is a harmless no-op at the store level.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	return s.store.MarkNotificationRead(ctx, userID, notificationID)
}

// MarkAllRead marks every notification of the caller as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.store.MarkAllNotificationsRead(ctx, userID)
}
