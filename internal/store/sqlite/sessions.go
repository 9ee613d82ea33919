package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/animexapp/animex-server/internal/domain"
	"github.com/animexapp/animex-server/internal/store"
)

// CreateSession inserts a refresh-token session.
func (s *Store) CreateSession(ctx context.Context, session *domain.Session) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, refresh_token_hash, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?)`,
		session.ID,
		session.UserID,
		session.RefreshTokenHash,
		formatTime(session.CreatedAt),
		formatTime(session.ExpiresAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists.WithMessage("session already exists")
		}
		return store.ErrInternal.WithCause(err)
	}
	return nil
}

// GetSessionByRefreshToken looks up a session by the hash of its refresh token.
func (s *Store) GetSessionByRefreshToken(ctx context.Context, tokenHash string) (*domain.Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, refresh_token_hash, created_at, expires_at
		FROM sessions WHERE refresh_token_hash = ?`, tokenHash)

	var (
		session   domain.Session
		createdAt string
		expiresAt string
	)
	err := row.Scan(&session.ID, &session.UserID, &session.RefreshTokenHash, &createdAt, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound.WithMessage("session not found")
		}
		return nil, store.ErrInternal.WithCause(err)
	}

	if session.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, store.ErrInternal.WithCause(err)
	}
	if session.ExpiresAt, err = parseTime(expiresAt); err != nil {
		return nil, store.ErrInternal.WithCause(err)
	}
	return &session, nil
}

// DeleteSession removes a single session.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}
	if rows == 0 {
		return store.ErrNotFound.WithMessage("session not found")
	}
	return nil
}

// DeleteAllUserSessions removes every session belonging to a user.
func (s *Store) DeleteAllUserSessions(ctx context.Context, userID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = ?`, userID); err != nil {
		return store.ErrInternal.WithCause(err)
	}
	return nil
}

// DeleteExpiredSessions removes sessions past their expiry and returns how many.
func (s *Store) DeleteExpiredSessions(ctx context.Context) (int, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at < ?`, formatTime(time.Now()))
	if err != nil {
		return 0, store.ErrInternal.WithCause(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, store.ErrInternal.WithCause(err)
	}
	return int(rows), nil
}
