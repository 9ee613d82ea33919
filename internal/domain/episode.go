package domain

import "time"

// Episode is a single watchable entry under an anime.
// ViewCount is an approximate counter maintained read-modify-write (see
// service.EpisodeService.IncrementView for the documented race); LikeCount
// is a cached aggregate recomputed from like rows on every toggle.
type Episode struct {
	ID              string    `json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	AnimeID         string    `json:"anime_id"`
	EpisodeNumber   int       `json:"episode_number"`
	SeasonNumber    int       `json:"season_number"`
	Title           string    `json:"title,omitempty"`
	Description     string    `json:"description,omitempty"`
	VideoURL        string    `json:"video_url"`
	ThumbnailURL    string    `json:"thumbnail_url,omitempty"`
	DurationSeconds int       `json:"duration_seconds"`
	SubtitleENURL   string    `json:"subtitle_en_url,omitempty"`
	SubtitleSIURL   string    `json:"subtitle_si_url,omitempty"`
	SubtitleTAURL   string    `json:"subtitle_ta_url,omitempty"`
	IsFree          bool      `json:"is_free"`
	ViewCount       int64     `json:"view_count"`
	LikeCount       int64     `json:"like_count"`
}
