package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/animexapp/animex-server/internal/domain"
	"github.com/animexapp/animex-server/internal/store"
)

func scanComment(scanner interface{ Scan(dest ...any) error }) (*domain.Comment, error) {
	var (
		c          domain.Comment
		createdAt  string
		isApproved int
		isFlagged  int
		avatarURL  sql.NullString
	)
	err := scanner.Scan(
		&c.ID, &createdAt, &c.UserID, &c.EpisodeID, &c.Content,
		&isApproved, &isFlagged, &c.Username, &avatarURL,
	)
	if err != nil {
		return nil, err
	}
	c.IsApproved = isApproved != 0
	c.IsFlagged = isFlagged != 0
	c.AvatarURL = avatarURL.String
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// commentSelect joins the author's profile so reads carry display fields.
const commentSelect = `
	SELECT c.id, c.created_at, c.user_id, c.episode_id, c.content,
		c.is_approved, c.is_flagged, u.username, u.avatar_url
	FROM comments c
	JOIN users u ON u.id = c.user_id`

// CreateComment stores a new comment.
func (s *Store) CreateComment(ctx context.Context, c *domain.Comment) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO comments (id, created_at, user_id, episode_id, content, is_approved, is_flagged)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID,
		formatTime(c.CreatedAt),
		c.UserID,
		c.EpisodeID,
		c.Content,
		boolToInt(c.IsApproved),
		boolToInt(c.IsFlagged),
	)
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}
	return nil
}

// GetComment returns a single comment with author display fields.
func (s *Store) GetComment(ctx context.Context, id string) (*domain.Comment, error) {
	row := s.db.QueryRowContext(ctx, commentSelect+` WHERE c.id = ?`, id)
	c, err := scanComment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound.WithMessage("comment not found")
	}
	if err != nil {
		return nil, store.ErrInternal.WithCause(err)
	}
	return c, nil
}

// DeleteComment removes a comment.
func (s *Store) DeleteComment(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}
	if rows == 0 {
		return store.ErrNotFound.WithMessage("comment not found")
	}
	return nil
}

// ListCommentsForEpisode returns approved comments for an episode, newest
// first.
func (s *Store) ListCommentsForEpisode(ctx context.Context, episodeID string, limit, offset int) ([]*domain.Comment, int, error) {
	var total int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM comments WHERE episode_id = ? AND is_approved = 1`,
		episodeID).Scan(&total)
	if err != nil {
		return nil, 0, store.ErrInternal.WithCause(err)
	}

	rows, err := s.db.QueryContext(ctx, commentSelect+`
		WHERE c.episode_id = ? AND c.is_approved = 1
		ORDER BY c.created_at DESC LIMIT ? OFFSET ?`,
		episodeID, limit, offset)
	if err != nil {
		return nil, 0, store.ErrInternal.WithCause(err)
	}
	defer rows.Close()

	comments, err := collectComments(rows)
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// ListAllComments returns comments for admin moderation, flagged rows
// first, then newest. With flaggedOnly set only flagged rows are returned.
func (s *Store) ListAllComments(ctx context.Context, flaggedOnly bool, limit, offset int) ([]*domain.Comment, int, error) {
	where := ""
	if flaggedOnly {
		where = ` WHERE c.is_flagged = 1`
	}

	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM comments c`+where).Scan(&total); err != nil {
		return nil, 0, store.ErrInternal.WithCause(err)
	}

	rows, err := s.db.QueryContext(ctx, commentSelect+where+`
		ORDER BY c.is_flagged DESC, c.created_at DESC LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, 0, store.ErrInternal.WithCause(err)
	}
	defer rows.Close()

	comments, err := collectComments(rows)
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// SetCommentFlagged marks or clears the moderation flag.
func (s *Store) SetCommentFlagged(ctx context.Context, id string, flagged bool) error {
	return s.setCommentBit(ctx, id, "is_flagged", flagged)
}

// SetCommentApproved shows or hides a comment.
func (s *Store) SetCommentApproved(ctx context.Context, id string, approved bool) error {
	return s.setCommentBit(ctx, id, "is_approved", approved)
}

func (s *Store) setCommentBit(ctx context.Context, id, column string, value bool) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE comments SET `+column+` = ? WHERE id = ?`, boolToInt(value), id)
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}
	if rows == 0 {
		return store.ErrNotFound.WithMessage("comment not found")
	}
	return nil
}

func collectComments(rows *sql.Rows) ([]*domain.Comment, error) {
	var comments []*domain.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, store.ErrInternal.WithCause(err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, store.ErrInternal.WithCause(err)
	}
	return comments, nil
}
