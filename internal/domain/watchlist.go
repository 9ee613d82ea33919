package domain

import "time"

// WatchlistEntry subscribes a user to an anime. Entries drive notification
// fanout: each one produces a notification when a new episode of the anime
// is published. The (UserID, AnimeID) pair is unique.
type WatchlistEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	AnimeID   string    `json:"anime_id"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`

	// Anime is populated on reads for display; never persisted here.
	Anime *Anime `json:"anime,omitempty"`
}

// WatchProgress tracks playback position for a user on an episode.
// One row per (UserID, EpisodeID); later saves update in place.
type WatchProgress struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	EpisodeID       string    `json:"episode_id"`
	AnimeID         string    `json:"anime_id"`
	ProgressSeconds int       `json:"progress_seconds"`
	DurationSeconds int       `json:"duration_seconds"`
	Completed       bool      `json:"completed"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
