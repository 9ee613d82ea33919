// Package store defines the persistence interface for the AnimeX server.
package store

import (
	"context"
	"time"

	"github.com/animexapp/animex-server/internal/domain"
)

// AnimeFilter narrows and orders catalog listings.
type AnimeFilter struct {
	Genres     []string
	Statuses   []string
	AgeRatings []string
	Search     string // substring match over titles and description
	Sort       domain.AnimeSort
	Limit      int
	Offset     int
}

// FeedbackFilter narrows admin feedback listings.
type FeedbackFilter struct {
	Status string
	Type   string
	Limit  int
	Offset int
}

// Store defines the interface for all persistence operations.
type Store interface {
	// Lifecycle
	Close() error
	SetSearchIndexer(indexer SearchIndexer)

	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	ListUsers(ctx context.Context, search string, limit, offset int) ([]*domain.User, int, error)
	ListUserIDs(ctx context.Context) ([]string, error)
	CountUsers(ctx context.Context) (int, error)
	CountUsersCreatedSince(ctx context.Context, since time.Time) (int, error)

	// Sessions
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSessionByRefreshToken(ctx context.Context, tokenHash string) (*domain.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteAllUserSessions(ctx context.Context, userID string) error
	DeleteExpiredSessions(ctx context.Context) (int, error)

	// Anime
	CreateAnime(ctx context.Context, anime *domain.Anime) error
	GetAnime(ctx context.Context, id string) (*domain.Anime, error)
	GetAnimeBySlug(ctx context.Context, slug string) (*domain.Anime, error)
	UpdateAnime(ctx context.Context, anime *domain.Anime) error
	DeleteAnime(ctx context.Context, id string) error
	ListAnime(ctx context.Context, filter AnimeFilter) ([]*domain.Anime, int, error)
	ListTrendingAnime(ctx context.Context, limit int) ([]*domain.Anime, error)
	ListFeaturedAnime(ctx context.Context, limit int) ([]*domain.Anime, error)
	CountAnime(ctx context.Context) (int, error)
	TopAnimeViewCount(ctx context.Context) (int64, error)
	SetAnimeViewCount(ctx context.Context, animeID string, count int64) error
	IncrementAnimeViews(ctx context.Context, animeID string) error
	SetAnimeLikeCount(ctx context.Context, animeID string, count int64) error
	SetAnimeTotalEpisodes(ctx context.Context, animeID string, count int) error

	// Episodes
	CreateEpisode(ctx context.Context, episode *domain.Episode) error
	GetEpisode(ctx context.Context, id string) (*domain.Episode, error)
	UpdateEpisode(ctx context.Context, episode *domain.Episode) error
	DeleteEpisode(ctx context.Context, id string) error
	ListEpisodesForAnime(ctx context.Context, animeID string) ([]*domain.Episode, error)
	CountEpisodes(ctx context.Context) (int, error)
	CountEpisodesForAnime(ctx context.Context, animeID string) (int, error)
	SetEpisodeViewCount(ctx context.Context, episodeID string, count int64) error
	SetEpisodeLikeCount(ctx context.Context, episodeID string, count int64) error

	// Likes
	CreateLike(ctx context.Context, like *domain.Like) error
	DeleteLike(ctx context.Context, userID, episodeID string) error
	HasLike(ctx context.Context, userID, episodeID string) (bool, error)
	CountLikesForEpisode(ctx context.Context, episodeID string) (int64, error)
	CountLikesForAnime(ctx context.Context, animeID string) (int64, error)

	// Watchlist
	CreateWatchlistEntry(ctx context.Context, entry *domain.WatchlistEntry) error
	DeleteWatchlistEntry(ctx context.Context, userID, animeID string) error
	ListWatchlist(ctx context.Context, userID string) ([]*domain.WatchlistEntry, error)
	ListWatchlistUserIDs(ctx context.Context, animeID string) ([]string, error)
	SetWatchlistOrder(ctx context.Context, userID, entryID string, sortOrder int) error

	// Watch history
	GetWatchProgress(ctx context.Context, userID, episodeID string) (*domain.WatchProgress, error)
	CreateWatchProgress(ctx context.Context, progress *domain.WatchProgress) error
	UpdateWatchProgress(ctx context.Context, progress *domain.WatchProgress) error
	ListWatchHistory(ctx context.Context, userID string) ([]*domain.WatchProgress, error)

	// Notifications
	CreateNotifications(ctx context.Context, notifications []*domain.Notification) (int, error)
	ListNotificationsForUser(ctx context.Context, userID string, limit int) ([]*domain.Notification, error)
	MarkNotificationRead(ctx context.Context, userID, notificationID string) error
	MarkAllNotificationsRead(ctx context.Context, userID string) error
	CountNotificationsForUser(ctx context.Context, userID string) (int, error)

	// Feedback
	CreateFeedback(ctx context.Context, feedback *domain.Feedback) error
	GetFeedback(ctx context.Context, id string) (*domain.Feedback, error)
	UpdateFeedback(ctx context.Context, feedback *domain.Feedback) error
	ListFeedback(ctx context.Context, filter FeedbackFilter) ([]*domain.Feedback, int, error)
	CountFeedbackByStatus(ctx context.Context) (map[domain.FeedbackStatus]int, error)

	// Comments
	CreateComment(ctx context.Context, comment *domain.Comment) error
	GetComment(ctx context.Context, id string) (*domain.Comment, error)
	DeleteComment(ctx context.Context, id string) error
	ListCommentsForEpisode(ctx context.Context, episodeID string, limit, offset int) ([]*domain.Comment, int, error)
	ListAllComments(ctx context.Context, flaggedOnly bool, limit, offset int) ([]*domain.Comment, int, error)
	SetCommentFlagged(ctx context.Context, id string, flagged bool) error
	SetCommentApproved(ctx context.Context, id string, approved bool) error
}

// SearchIndexer is the interface for updating the anime search index.
// Store uses this to keep search in sync without depending on the search
// implementation.
type SearchIndexer interface {
	IndexAnime(anime *domain.Anime) error
	DeleteAnime(animeID string) error
}

// NoopSearchIndexer is a no-op implementation for testing.
type NoopSearchIndexer struct{}

// IndexAnime is a no-op.
func (NoopSearchIndexer) IndexAnime(*domain.Anime) error { return nil }

// DeleteAnime is a no-op.
func (NoopSearchIndexer) DeleteAnime(string) error { return nil }

// NewNoopSearchIndexer creates a new no-op search indexer for testing.
func NewNoopSearchIndexer() SearchIndexer {
	return NoopSearchIndexer{}
}
