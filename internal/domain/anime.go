package domain

import "time"

// AnimeStatus describes whether a series is still airing.
type AnimeStatus string

const (
	AnimeStatusOngoing   AnimeStatus = "ongoing"
	AnimeStatusCompleted AnimeStatus = "completed"
)

// Valid checks if the status is a known value.
func (s AnimeStatus) Valid() bool {
	return s == AnimeStatusOngoing || s == AnimeStatusCompleted
}

// Anime is a series in the catalog. ViewCount and LikeCount are cached
// aggregates: view counts are approximate by product requirement, like
// counts are recomputed from like rows on every mutation.
type Anime struct {
	ID            string      `json:"id"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
	Slug          string      `json:"slug"`
	TitleEN       string      `json:"title_en"`
	TitleSI       string      `json:"title_si,omitempty"`
	TitleTA       string      `json:"title_ta,omitempty"`
	Description   string      `json:"description,omitempty"`
	PosterURL     string      `json:"poster_url,omitempty"`
	BannerURL     string      `json:"banner_url,omitempty"`
	TrailerURL    string      `json:"trailer_url,omitempty"`
	Genres        []string    `json:"genre"`
	Tags          []string    `json:"tags"`
	AgeRating     string      `json:"age_rating"`
	ReleaseYear   int         `json:"release_year,omitempty"`
	TotalEpisodes int         `json:"total_episodes"`
	Status        AnimeStatus `json:"status"`
	IsFeatured    bool        `json:"is_featured"`
	IsTrending    bool        `json:"is_trending"`
	ViewCount     int64       `json:"view_count"`
	LikeCount     int64       `json:"like_count"`
}

// AnimeSort is the ordering for catalog listings.
type AnimeSort string

const (
	AnimeSortNewest     AnimeSort = "newest"
	AnimeSortTrending   AnimeSort = "trending"
	AnimeSortMostViewed AnimeSort = "most_viewed"
	AnimeSortMostLiked  AnimeSort = "most_liked"
	AnimeSortAToZ       AnimeSort = "a_to_z"
	AnimeSortZToA       AnimeSort = "z_to_a"
)

// Valid checks if the sort is a known value.
func (s AnimeSort) Valid() bool {
	switch s {
	case AnimeSortNewest, AnimeSortTrending, AnimeSortMostViewed,
		AnimeSortMostLiked, AnimeSortAToZ, AnimeSortZToA:
		return true
	default:
		return false
	}
}
