package domain

import "time"

// Comment is a user comment on an episode. Comments are visible while
// approved; flagging marks them for admin moderation without hiding them.
type Comment struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UserID     string    `json:"user_id"`
	EpisodeID  string    `json:"episode_id"`
	Content    string    `json:"content"`
	IsApproved bool      `json:"is_approved"`
	IsFlagged  bool      `json:"is_flagged"`

	// Display fields populated from the author's profile on reads.
	Username  string `json:"username,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}
