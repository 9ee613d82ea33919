package sqlite

import (
	"context"
	"errors"

	"github.com/animexapp/animex-server/internal/domain"
	"github.com/animexapp/animex-server/internal/store"
)

// CreateNotifications bulk-inserts notification rows. The insert is
// deliberately not transactional: fanout tolerates partial success, so each
// row is inserted independently and the count of created rows is returned
// along with any per-row errors joined together.
func (s *Store) CreateNotifications(ctx context.Context, notifications []*domain.Notification) (int, error) {
	created := 0
	var errs []error
	for _, n := range notifications {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO notifications (id, user_id, title, message, type, link, is_read, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			n.ID,
			n.UserID,
			n.Title,
			n.Message,
			string(n.Type),
			n.Link,
			boolToInt(n.IsRead),
			formatTime(n.CreatedAt),
		)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		created++
	}
	if len(errs) > 0 {
		return created, store.ErrInternal.WithCause(errors.Join(errs...))
	}
	return created, nil
}

// ListNotificationsForUser returns the user's newest notifications.
func (s *Store) ListNotificationsForUser(ctx context.Context, userID string, limit int) ([]*domain.Notification, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, title, message, type, link, is_read, created_at
		FROM notifications WHERE user_id = ?
		ORDER BY created_at DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, store.ErrInternal.WithCause(err)
	}
	defer rows.Close()

	var notifications []*domain.Notification
	for rows.Next() {
		var (
			n         domain.Notification
			ntype     string
			isRead    int
			createdAt string
		)
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &ntype, &n.Link, &isRead, &createdAt); err != nil {
			return nil, store.ErrInternal.WithCause(err)
		}
		n.Type = domain.NotificationType(ntype)
		n.IsRead = isRead != 0
		if n.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, store.ErrInternal.WithCause(err)
		}
		notifications = append(notifications, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, store.ErrInternal.WithCause(err)
	}
	return notifications, nil
}

// MarkNotificationRead flips a single notification to read. The user scoping
// means a notification can only be mutated by its owner; read is terminal,
// so repeating the call is harmless.
func (s *Store) MarkNotificationRead(ctx context.Context, userID, notificationID string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = 1 WHERE id = ? AND user_id = ?`,
		notificationID, userID)
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}
	if rows == 0 {
		return store.ErrNotFound.WithMessage("notification not found")
	}
	return nil
}

// MarkAllNotificationsRead flips every unread notification for the user.
func (s *Store) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = 1 WHERE user_id = ? AND is_read = 0`, userID)
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}
	return nil
}

// CountNotificationsForUser returns the total notification count for a user.
func (s *Store) CountNotificationsForUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = ?`, userID).Scan(&count)
	if err != nil {
		return 0, store.ErrInternal.WithCause(err)
	}
	return count, nil
}
