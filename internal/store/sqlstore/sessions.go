package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/dvgamerr/payme/internal/core"
)

func (s *Store) CreateSession(ctx context.Context, id string, userID int64, expiresAt string) error {
	_, err := s.exec(ctx, s.db,
		"INSERT INTO sessions (id, user_id, expires_at, created_at) VALUES (?, ?, ?, ?)",
		id, userID, expiresAt, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// SessionUser resolves a session id to its user, treating expired
// sessions the same as missing ones. Timestamps are RFC 3339 UTC, so
// the string comparison is a time comparison.
func (s *Store) SessionUser(ctx context.Context, sessionID, now string) (core.User, error) {
	u, err := s.scanUser(s.queryRow(ctx, s.db, `
		SELECT u.id, u.username, u.password_hash, u.savings, u.retirement_savings
		FROM sessions se
		JOIN users u ON u.id = se.user_id
		WHERE se.id = ? AND se.expires_at > ?`,
		sessionID, now))
	if err != nil {
		return core.User{}, err
	}
	return u, nil
}

func (s *Store) DeleteSession(ctx context.Context, id string) error {
	_, err := s.exec(ctx, s.db, "DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *Store) DeleteExpiredSessions(ctx context.Context, now string) (int64, error) {
	res, err := s.exec(ctx, s.db, "DELETE FROM sessions WHERE expires_at <= ?", now)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
