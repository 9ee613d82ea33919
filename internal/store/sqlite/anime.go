package sqlite

import (
	"context"
	"database/sql"
	"encoding/json/v2"
	"errors"
	"strings"
	"time"

	"github.com/animexapp/animex-server/internal/domain"
	"github.com/animexapp/animex-server/internal/store"
)

// animeColumns is the ordered list of columns selected in anime queries.
// Must match the scan order in scanAnime.
const animeColumns = `id, created_at, updated_at, slug, title_en, title_si, title_ta,
	description, poster_url, banner_url, trailer_url, genres, tags, age_rating,
	release_year, total_episodes, status, is_featured, is_trending, view_count, like_count`

// scanAnime scans a sql.Row (or sql.Rows via its Scan method) into a domain.Anime.
func scanAnime(scanner interface{ Scan(dest ...any) error }) (*domain.Anime, error) {
	var a domain.Anime

	var (
		createdAt   string
		updatedAt   string
		genresJSON  string
		tagsJSON    string
		releaseYear sql.NullInt64
		status      string
		isFeatured  int
		isTrending  int
	)

	err := scanner.Scan(
		&a.ID,
		&createdAt,
		&updatedAt,
		&a.Slug,
		&a.TitleEN,
		&a.TitleSI,
		&a.TitleTA,
		&a.Description,
		&a.PosterURL,
		&a.BannerURL,
		&a.TrailerURL,
		&genresJSON,
		&tagsJSON,
		&a.AgeRating,
		&releaseYear,
		&a.TotalEpisodes,
		&status,
		&isFeatured,
		&isTrending,
		&a.ViewCount,
		&a.LikeCount,
	)
	if err != nil {
		return nil, err
	}

	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if a.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(genresJSON), &a.Genres); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(tagsJSON), &a.Tags); err != nil {
		return nil, err
	}
	a.ReleaseYear = int(releaseYear.Int64)
	a.Status = domain.AnimeStatus(status)
	a.IsFeatured = isFeatured != 0
	a.IsTrending = isTrending != 0

	return &a, nil
}

// marshalStrings encodes a string slice as JSON, never nil.
func marshalStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// CreateAnime inserts a series and indexes it for search.
func (s *Store) CreateAnime(ctx context.Context, anime *domain.Anime) error {
	genres, err := marshalStrings(anime.Genres)
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}
	tags, err := marshalStrings(anime.Tags)
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}

	var releaseYear sql.NullInt64
	if anime.ReleaseYear != 0 {
		releaseYear = sql.NullInt64{Int64: int64(anime.ReleaseYear), Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO anime (id, created_at, updated_at, slug, title_en, title_si, title_ta,
			description, poster_url, banner_url, trailer_url, genres, tags, age_rating,
			release_year, total_episodes, status, is_featured, is_trending, view_count, like_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		anime.ID,
		formatTime(anime.CreatedAt),
		formatTime(anime.UpdatedAt),
		anime.Slug,
		anime.TitleEN,
		anime.TitleSI,
		anime.TitleTA,
		anime.Description,
		anime.PosterURL,
		anime.BannerURL,
		anime.TrailerURL,
		genres,
		tags,
		anime.AgeRating,
		releaseYear,
		anime.TotalEpisodes,
		string(anime.Status),
		boolToInt(anime.IsFeatured),
		boolToInt(anime.IsTrending),
		anime.ViewCount,
		anime.LikeCount,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists.WithMessage("anime slug already exists")
		}
		return store.ErrInternal.WithCause(err)
	}

	if err := s.searchIndexer.IndexAnime(anime); err != nil {
		s.logger.Warn("failed to index anime", "anime_id", anime.ID, "error", err)
	}
	return nil
}

// GetAnime fetches a series by ID.
func (s *Store) GetAnime(ctx context.Context, id string) (*domain.Anime, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+animeColumns+` FROM anime WHERE id = ?`, id)
	anime, err := scanAnime(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound.WithMessage("anime not found")
		}
		return nil, store.ErrInternal.WithCause(err)
	}
	return anime, nil
}

// GetAnimeBySlug fetches a series by its URL slug.
func (s *Store) GetAnimeBySlug(ctx context.Context, slug string) (*domain.Anime, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+animeColumns+` FROM anime WHERE slug = ?`, slug)
	anime, err := scanAnime(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound.WithMessage("anime not found")
		}
		return nil, store.ErrInternal.WithCause(err)
	}
	return anime, nil
}

// UpdateAnime writes all mutable fields and refreshes the search index.
func (s *Store) UpdateAnime(ctx context.Context, anime *domain.Anime) error {
	genres, err := marshalStrings(anime.Genres)
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}
	tags, err := marshalStrings(anime.Tags)
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}

	var releaseYear sql.NullInt64
	if anime.ReleaseYear != 0 {
		releaseYear = sql.NullInt64{Int64: int64(anime.ReleaseYear), Valid: true}
	}

	anime.UpdatedAt = time.Now()
	result, err := s.db.ExecContext(ctx, `
		UPDATE anime SET updated_at = ?, slug = ?, title_en = ?, title_si = ?, title_ta = ?,
			description = ?, poster_url = ?, banner_url = ?, trailer_url = ?, genres = ?,
			tags = ?, age_rating = ?, release_year = ?, total_episodes = ?, status = ?,
			is_featured = ?, is_trending = ?
		WHERE id = ?`,
		formatTime(anime.UpdatedAt),
		anime.Slug,
		anime.TitleEN,
		anime.TitleSI,
		anime.TitleTA,
		anime.Description,
		anime.PosterURL,
		anime.BannerURL,
		anime.TrailerURL,
		genres,
		tags,
		anime.AgeRating,
		releaseYear,
		anime.TotalEpisodes,
		string(anime.Status),
		boolToInt(anime.IsFeatured),
		boolToInt(anime.IsTrending),
		anime.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists.WithMessage("anime slug already exists")
		}
		return store.ErrInternal.WithCause(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}
	if rows == 0 {
		return store.ErrNotFound.WithMessage("anime not found")
	}

	if err := s.searchIndexer.IndexAnime(anime); err != nil {
		s.logger.Warn("failed to reindex anime", "anime_id", anime.ID, "error", err)
	}
	return nil
}

// DeleteAnime removes a series, its episodes (cascade), and its search entry.
func (s *Store) DeleteAnime(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM anime WHERE id = ?`, id)
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}
	if rows == 0 {
		return store.ErrNotFound.WithMessage("anime not found")
	}

	if err := s.searchIndexer.DeleteAnime(id); err != nil {
		s.logger.Warn("failed to remove anime from index", "anime_id", id, "error", err)
	}
	return nil
}

// sortClause maps a catalog sort to its ORDER BY.
func sortClause(sort domain.AnimeSort) string {
	switch sort {
	case domain.AnimeSortTrending, domain.AnimeSortMostViewed:
		return "view_count DESC"
	case domain.AnimeSortMostLiked:
		return "like_count DESC"
	case domain.AnimeSortAToZ:
		return "title_en COLLATE NOCASE ASC"
	case domain.AnimeSortZToA:
		return "title_en COLLATE NOCASE DESC"
	default:
		return "created_at DESC"
	}
}

// ListAnime returns catalog entries matching the filter plus the total match count.
func (s *Store) ListAnime(ctx context.Context, filter store.AnimeFilter) ([]*domain.Anime, int, error) {
	var conditions []string
	var args []any

	if len(filter.Genres) > 0 {
		// Genres are stored as a JSON array; an exact-element match is a
		// quoted substring of the serialized form.
		var genreConds []string
		for _, g := range filter.Genres {
			genreConds = append(genreConds, `genres LIKE ?`)
			args = append(args, `%"`+g+`"%`)
		}
		conditions = append(conditions, "("+strings.Join(genreConds, " OR ")+")")
	}
	if len(filter.Statuses) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(filter.Statuses)), ",")
		conditions = append(conditions, `status IN (`+placeholders+`)`)
		for _, st := range filter.Statuses {
			args = append(args, st)
		}
	}
	if len(filter.AgeRatings) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(filter.AgeRatings)), ",")
		conditions = append(conditions, `age_rating IN (`+placeholders+`)`)
		for _, r := range filter.AgeRatings {
			args = append(args, r)
		}
	}
	if filter.Search != "" {
		conditions = append(conditions,
			`(title_en LIKE ? OR title_si LIKE ? OR title_ta LIKE ? OR description LIKE ?)`)
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern, pattern, pattern)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM anime`+where, args...).Scan(&total); err != nil {
		return nil, 0, store.ErrInternal.WithCause(err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+animeColumns+` FROM anime`+where+` ORDER BY `+sortClause(filter.Sort)+` LIMIT ? OFFSET ?`,
		args...)
	if err != nil {
		return nil, 0, store.ErrInternal.WithCause(err)
	}
	defer rows.Close()

	items, err := collectAnime(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// collectAnime drains rows into a slice.
func collectAnime(rows *sql.Rows) ([]*domain.Anime, error) {
	var items []*domain.Anime
	for rows.Next() {
		anime, err := scanAnime(rows)
		if err != nil {
			return nil, store.ErrInternal.WithCause(err)
		}
		items = append(items, anime)
	}
	if err := rows.Err(); err != nil {
		return nil, store.ErrInternal.WithCause(err)
	}
	return items, nil
}

// ListTrendingAnime returns flagged-trending series, most viewed first.
func (s *Store) ListTrendingAnime(ctx context.Context, limit int) ([]*domain.Anime, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+animeColumns+` FROM anime WHERE is_trending = 1 ORDER BY view_count DESC LIMIT ?`, limit)
	if err != nil {
		return nil, store.ErrInternal.WithCause(err)
	}
	defer rows.Close()
	return collectAnime(rows)
}

// ListFeaturedAnime returns flagged-featured series.
func (s *Store) ListFeaturedAnime(ctx context.Context, limit int) ([]*domain.Anime, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+animeColumns+` FROM anime WHERE is_featured = 1 LIMIT ?`, limit)
	if err != nil {
		return nil, store.ErrInternal.WithCause(err)
	}
	defer rows.Close()
	return collectAnime(rows)
}

// CountAnime returns the total number of series.
func (s *Store) CountAnime(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM anime`).Scan(&count); err != nil {
		return 0, store.ErrInternal.WithCause(err)
	}
	return count, nil
}

// TopAnimeViewCount returns the highest view count in the catalog.
func (s *Store) TopAnimeViewCount(ctx context.Context) (int64, error) {
	var count sql.NullInt64
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(view_count) FROM anime`).Scan(&count); err != nil {
		return 0, store.ErrInternal.WithCause(err)
	}
	return count.Int64, nil
}

// SetAnimeViewCount overwrites the cached view counter.
func (s *Store) SetAnimeViewCount(ctx context.Context, animeID string, count int64) error {
	return s.setAnimeCounter(ctx, animeID, "view_count", count)
}

// IncrementAnimeViews bumps the view counter atomically in the database.
// Unlike the read-modify-write episode path this cannot lose updates.
func (s *Store) IncrementAnimeViews(ctx context.Context, animeID string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE anime SET view_count = view_count + 1 WHERE id = ?`, animeID)
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}
	if rows == 0 {
		return store.ErrNotFound.WithMessage("anime not found")
	}
	return nil
}

// SetAnimeLikeCount overwrites the cached like counter.
func (s *Store) SetAnimeLikeCount(ctx context.Context, animeID string, count int64) error {
	return s.setAnimeCounter(ctx, animeID, "like_count", count)
}

// SetAnimeTotalEpisodes overwrites the cached episode count.
func (s *Store) SetAnimeTotalEpisodes(ctx context.Context, animeID string, count int) error {
	return s.setAnimeCounter(ctx, animeID, "total_episodes", int64(count))
}

// setAnimeCounter writes a single cached counter column.
func (s *Store) setAnimeCounter(ctx context.Context, animeID, column string, value int64) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE anime SET `+column+` = ? WHERE id = ?`, value, animeID)
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}
	if rows == 0 {
		return store.ErrNotFound.WithMessage("anime not found")
	}
	return nil
}
