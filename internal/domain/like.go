package domain

import "time"

// Like records that a user liked an episode. The (UserID, EpisodeID) pair is
// unique; existence of the row is the source of truth for "liked". The
// episode's cached like_count is an aggregate over these rows and must be
// recounted, never incremented, after any mutation.
type Like struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	EpisodeID string    `json:"episode_id"`
	CreatedAt time.Time `json:"created_at"`
}

// LikeStatus is the result of a toggle or status query.
type LikeStatus struct {
	Liked bool  `json:"liked"`
	Count int64 `json:"count"`
}
