package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/animexapp/animex-server/internal/domain"
	"github.com/animexapp/animex-server/internal/store"
)

// userColumns is the ordered list of columns selected in user queries.
// Must match the scan order in scanUser.
const userColumns = `id, created_at, updated_at, email, username, avatar_url,
	bio, country, language, is_admin, status, password_hash, last_login_at`

// scanUser scans a sql.Row (or sql.Rows via its Scan method) into a domain.User.
func scanUser(scanner interface{ Scan(dest ...any) error }) (*domain.User, error) {
	var u domain.User

	var (
		createdAt   string
		updatedAt   string
		avatarURL   sql.NullString
		bio         sql.NullString
		country     sql.NullString
		language    sql.NullString
		isAdmin     int
		status      string
		lastLoginAt sql.NullString
	)

	err := scanner.Scan(
		&u.ID,
		&createdAt,
		&updatedAt,
		&u.Email,
		&u.Username,
		&avatarURL,
		&bio,
		&country,
		&language,
		&isAdmin,
		&status,
		&u.PasswordHash,
		&lastLoginAt,
	)
	if err != nil {
		return nil, err
	}

	u.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	u.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	u.AvatarURL = avatarURL.String
	u.Bio = bio.String
	u.Country = country.String
	u.Language = language.String
	u.IsAdmin = isAdmin != 0
	u.Status = domain.UserStatus(status)

	if lastLoginAt.Valid && lastLoginAt.String != "" {
		u.LastLoginAt, err = parseTime(lastLoginAt.String)
		if err != nil {
			return nil, err
		}
	}

	return &u, nil
}

// CreateUser inserts a new user row.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, created_at, updated_at, email, email_lower, username,
			avatar_url, bio, country, language, is_admin, status, password_hash, last_login_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		formatTime(user.CreatedAt),
		formatTime(user.UpdatedAt),
		user.Email,
		strings.ToLower(user.Email),
		user.Username,
		nullString(user.AvatarURL),
		nullString(user.Bio),
		nullString(user.Country),
		nullString(user.Language),
		boolToInt(user.IsAdmin),
		string(user.Status),
		user.PasswordHash,
		formatTime(user.LastLoginAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists.WithMessage("email already registered")
		}
		return store.ErrInternal.WithCause(err)
	}
	return nil
}

// GetUser fetches a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound.WithMessage("user not found")
		}
		return nil, store.ErrInternal.WithCause(err)
	}
	return user, nil
}

// GetUserByEmail fetches a user by email, case-insensitively.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email_lower = ?`, strings.ToLower(email))
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound.WithMessage("user not found")
		}
		return nil, store.ErrInternal.WithCause(err)
	}
	return user, nil
}

// UpdateUser writes all mutable user fields back to the row.
func (s *Store) UpdateUser(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now()
	result, err := s.db.ExecContext(ctx, `
		UPDATE users SET updated_at = ?, email = ?, email_lower = ?, username = ?,
			avatar_url = ?, bio = ?, country = ?, language = ?, is_admin = ?,
			status = ?, password_hash = ?, last_login_at = ?
		WHERE id = ?`,
		formatTime(user.UpdatedAt),
		user.Email,
		strings.ToLower(user.Email),
		user.Username,
		nullString(user.AvatarURL),
		nullString(user.Bio),
		nullString(user.Country),
		nullString(user.Language),
		boolToInt(user.IsAdmin),
		string(user.Status),
		user.PasswordHash,
		formatTime(user.LastLoginAt),
		user.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists.WithMessage("email already registered")
		}
		return store.ErrInternal.WithCause(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}
	if rows == 0 {
		return store.ErrNotFound.WithMessage("user not found")
	}
	return nil
}

// ListUsers returns users matching an optional username/email substring,
// newest first, with the total match count.
func (s *Store) ListUsers(ctx context.Context, search string, limit, offset int) ([]*domain.User, int, error) {
	where := ""
	args := []any{}
	if search != "" {
		where = ` WHERE username LIKE ? OR email_lower LIKE ?`
		pattern := "%" + strings.ToLower(search) + "%"
		args = append(args, pattern, pattern)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, store.ErrInternal.WithCause(err)
	}

	args = append(args, limit, offset)
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users`+where+` ORDER BY created_at DESC LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, 0, store.ErrInternal.WithCause(err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, store.ErrInternal.WithCause(err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, store.ErrInternal.WithCause(err)
	}
	return users, total, nil
}

// ListUserIDs returns the IDs of every user. Used by notification broadcast.
func (s *Store) ListUserIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM users`)
	if err != nil {
		return nil, store.ErrInternal.WithCause(err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, store.ErrInternal.WithCause(err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, store.ErrInternal.WithCause(err)
	}
	return ids, nil
}

// CountUsers returns the total number of users.
func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, store.ErrInternal.WithCause(err)
	}
	return count, nil
}

// CountUsersCreatedSince returns the number of users created at or after the given time.
func (s *Store) CountUsersCreatedSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE created_at >= ?`, formatTime(since)).Scan(&count)
	if err != nil {
		return 0, store.ErrInternal.WithCause(err)
	}
	return count, nil
}
