package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/animexapp/animex-server/internal/domain"
	"github.com/animexapp/animex-server/internal/store"
)

const feedbackColumns = `id, created_at, updated_at, user_id, name, email, subject,
	message, rating, type, screenshot_url, status, admin_reply`

func scanFeedback(scanner interface{ Scan(dest ...any) error }) (*domain.Feedback, error) {
	var (
		f         domain.Feedback
		createdAt string
		updatedAt string
		userID    sql.NullString
		ftype     string
		status    string
	)
	err := scanner.Scan(
		&f.ID, &createdAt, &updatedAt, &userID, &f.Name, &f.Email, &f.Subject,
		&f.Message, &f.Rating, &ftype, &f.ScreenshotURL, &status, &f.AdminReply,
	)
	if err != nil {
		return nil, err
	}
	f.UserID = userID.String
	f.Type = domain.FeedbackType(ftype)
	f.Status = domain.FeedbackStatus(status)
	if f.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if f.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

// CreateFeedback stores a new feedback submission.
func (s *Store) CreateFeedback(ctx context.Context, f *domain.Feedback) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO feedback (`+feedbackColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID,
		formatTime(f.CreatedAt),
		formatTime(f.UpdatedAt),
		nullString(f.UserID),
		f.Name,
		f.Email,
		f.Subject,
		f.Message,
		f.Rating,
		string(f.Type),
		f.ScreenshotURL,
		string(f.Status),
		f.AdminReply,
	)
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}
	return nil
}

// GetFeedback returns a single feedback entry by ID.
func (s *Store) GetFeedback(ctx context.Context, id string) (*domain.Feedback, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+feedbackColumns+` FROM feedback WHERE id = ?`, id)
	f, err := scanFeedback(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound.WithMessage("feedback not found")
	}
	if err != nil {
		return nil, store.ErrInternal.WithCause(err)
	}
	return f, nil
}

// UpdateFeedback persists status, admin reply and updated_at changes.
func (s *Store) UpdateFeedback(ctx context.Context, f *domain.Feedback) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE feedback SET updated_at = ?, status = ?, admin_reply = ?
		WHERE id = ?`,
		formatTime(f.UpdatedAt),
		string(f.Status),
		f.AdminReply,
		f.ID,
	)
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}
	if rows == 0 {
		return store.ErrNotFound.WithMessage("feedback not found")
	}
	return nil
}

// ListFeedback returns feedback entries newest first, optionally narrowed by
// status and type, along with the total count for the same filter.
func (s *Store) ListFeedback(ctx context.Context, filter store.FeedbackFilter) ([]*domain.Feedback, int, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.Type != "" {
		conds = append(conds, "type = ?")
		args = append(args, filter.Type)
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM feedback"+where, args...).Scan(&total); err != nil {
		return nil, 0, store.ErrInternal.WithCause(err)
	}

	query := fmt.Sprintf(`SELECT %s FROM feedback%s ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		feedbackColumns, where)
	rows, err := s.db.QueryContext(ctx, query, append(args, filter.Limit, filter.Offset)...)
	if err != nil {
		return nil, 0, store.ErrInternal.WithCause(err)
	}
	defer rows.Close()

	var entries []*domain.Feedback
	for rows.Next() {
		f, err := scanFeedback(rows)
		if err != nil {
			return nil, 0, store.ErrInternal.WithCause(err)
		}
		entries = append(entries, f)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, store.ErrInternal.WithCause(err)
	}
	return entries, total, nil
}

// CountFeedbackByStatus returns per-status counts for the admin dashboard.
func (s *Store) CountFeedbackByStatus(ctx context.Context) (map[domain.FeedbackStatus]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM feedback GROUP BY status`)
	if err != nil {
		return nil, store.ErrInternal.WithCause(err)
	}
	defer rows.Close()

	counts := make(map[domain.FeedbackStatus]int)
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, store.ErrInternal.WithCause(err)
		}
		counts[domain.FeedbackStatus(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, store.ErrInternal.WithCause(err)
	}
	return counts, nil
}
