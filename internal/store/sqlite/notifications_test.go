package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/animexapp/animex-server/internal/domain"
	"github.com/animexapp/animex-server/internal/store"
)

func makeTestNotification(id, userID string) *domain.Notification {
	return &domain.Notification{
		ID:        id,
		UserID:    userID,
		Title:     "New Episode",
		Message:   "New episode of Test Anime is available!",
		Type:      domain.NotificationTypeNewEpisode,
		Link:      "/watch/test-anime/1",
		CreatedAt: time.Now(),
	}
}

func TestCreateNotificationsBulk(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		u := makeTestUser("user-"+string(rune('1'+i)), email)
		if err := s.CreateUser(ctx, u); err != nil {
			t.Fatalf("CreateUser: %v", err)
		}
	}

	batch := []*domain.Notification{
		makeTestNotification("notif-1", "user-1"),
		makeTestNotification("notif-2", "user-2"),
		makeTestNotification("notif-3", "user-3"),
	}
	created, err := s.CreateNotifications(ctx, batch)
	if err != nil {
		t.Fatalf("CreateNotifications: %v", err)
	}
	if created != 3 {
		t.Errorf("created: got %d, want 3", created)
	}

	for _, userID := range []string{"user-1", "user-2", "user-3"} {
		notifications, err := s.ListNotificationsForUser(ctx, userID, 50)
		if err != nil {
			t.Fatalf("ListNotificationsForUser %s: %v", userID, err)
		}
		if len(notifications) != 1 {
			t.Errorf("%s: got %d notifications, want 1", userID, len(notifications))
			continue
		}
		if notifications[0].IsRead {
			t.Errorf("%s: new notification should be unread", userID)
		}
	}
}

func TestCreateNotificationsPartialFailure(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateUser(ctx, makeTestUser("user-1", "a@example.com")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	// The middle row references a user that does not exist; the other rows
	// must still land.
	batch := []*domain.Notification{
		makeTestNotification("notif-1", "user-1"),
		makeTestNotification("notif-2", "user-missing"),
		makeTestNotification("notif-3", "user-1"),
	}
	created, err := s.CreateNotifications(ctx, batch)
	if err == nil {
		t.Fatal("expected error from failed row")
	}
	if created != 2 {
		t.Errorf("created: got %d, want 2", created)
	}

	notifications, err := s.ListNotificationsForUser(ctx, "user-1", 50)
	if err != nil {
		t.Fatalf("ListNotificationsForUser: %v", err)
	}
	if len(notifications) != 2 {
		t.Errorf("got %d notifications, want 2", len(notifications))
	}
}

func TestMarkNotificationRead(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateUser(ctx, makeTestUser("user-1", "a@example.com")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if err := s.CreateUser(ctx, makeTestUser("user-2", "b@example.com")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if _, err := s.CreateNotifications(ctx, []*domain.Notification{
		makeTestNotification("notif-1", "user-1"),
	}); err != nil {
		t.Fatalf("CreateNotifications: %v", err)
	}

	// Another user cannot mark it.
	err := s.MarkNotificationRead(ctx, "user-2", "notif-1")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("cross-user mark: expected ErrNotFound, got %v", err)
	}

	if err := s.MarkNotificationRead(ctx, "user-1", "notif-1"); err != nil {
		t.Fatalf("MarkNotificationRead: %v", err)
	}

	notifications, err := s.ListNotificationsForUser(ctx, "user-1", 50)
	if err != nil {
		t.Fatalf("ListNotificationsForUser: %v", err)
	}
	if !notifications[0].IsRead {
		t.Error("expected notification to be read")
	}

	// Marking again is harmless; read is terminal.
	if err := s.MarkNotificationRead(ctx, "user-1", "notif-1"); err != nil {
		t.Fatalf("repeat MarkNotificationRead: %v", err)
	}
}

func TestMarkAllNotificationsRead(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateUser(ctx, makeTestUser("user-1", "a@example.com")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if _, err := s.CreateNotifications(ctx, []*domain.Notification{
		makeTestNotification("notif-1", "user-1"),
		makeTestNotification("notif-2", "user-1"),
	}); err != nil {
		t.Fatalf("CreateNotifications: %v", err)
	}

	if err := s.MarkAllNotificationsRead(ctx, "user-1"); err != nil {
		t.Fatalf("MarkAllNotificationsRead: %v", err)
	}

	notifications, err := s.ListNotificationsForUser(ctx, "user-1", 50)
	if err != nil {
		t.Fatalf("ListNotificationsForUser: %v", err)
	}
	for _, n := range notifications {
		if !n.IsRead {
			t.Errorf("notification %s still unread", n.ID)
		}
	}
}
