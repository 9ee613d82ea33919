package domain

import "time"

// NotificationType categorizes notifications for client rendering.
type NotificationType string

const (
	NotificationTypeNewEpisode NotificationType = "new_episode"
	NotificationTypeSystem     NotificationType = "system"
)

// Notification belongs to exactly one recipient. It is immutable once
// created except for IsRead, which moves unread -> read exactly once and
// never reverts. The system never deletes notifications.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Link      string           `json:"link,omitempty"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}
