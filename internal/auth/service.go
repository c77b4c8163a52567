// Package auth implements password accounts and cookie sessions.
// Passwords are stored as bcrypt hashes; sessions are random uuids
// with a server-side expiry.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dvgamerr/payme/internal/core"
	"github.com/dvgamerr/payme/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrUnauthorized       = errors.New("unauthorized")

	ErrUsernameTooShort = errors.New("username must be at least 3 characters")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
)

// Store is the slice of persistence auth needs.
type Store interface {
	CreateUser(ctx context.Context, username, passwordHash string) (core.User, error)
	UserByUsername(ctx context.Context, username string) (core.User, error)
	CreateSession(ctx context.Context, id string, userID int64, expiresAt string) error
	SessionUser(ctx context.Context, sessionID, now string) (core.User, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteExpiredSessions(ctx context.Context, now string) (int64, error)
}

// Session is a freshly minted login session.
type Session struct {
	ID        string
	ExpiresAt time.Time
}

type Service struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
}

func NewService(st Store, ttl time.Duration) *Service {
	return &Service{store: st, ttl: ttl, now: time.Now}
}

// Register creates the account and logs it in immediately.
func (s *Service) Register(ctx context.Context, username, password string) (core.User, Session, error) {
	username = strings.TrimSpace(username)
	if len(username) < 3 {
		return core.User{}, Session{}, ErrUsernameTooShort
	}
	if len(password) < 8 {
		return core.User{}, Session{}, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return core.User{}, Session{}, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.store.CreateUser(ctx, username, string(hash))
	if errors.Is(err, store.ErrAlreadyExists) {
		return core.User{}, Session{}, ErrUsernameTaken
	}
	if err != nil {
		return core.User{}, Session{}, fmt.Errorf("create user: %w", err)
	}

	sess, err := s.openSession(ctx, u.ID)
	if err != nil {
		return core.User{}, Session{}, err
	}
	return u, sess, nil
}

// Login verifies the password and opens a session. Unknown usernames
// and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (core.User, Session, error) {
	u, err := s.store.UserByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, store.ErrNotFound) {
		return core.User{}, Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return core.User{}, Session{}, fmt.Errorf("load user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return core.User{}, Session{}, ErrInvalidCredentials
	}

	sess, err := s.openSession(ctx, u.ID)
	if err != nil {
		return core.User{}, Session{}, err
	}
	return u, sess, nil
}

func (s *Service) openSession(ctx context.Context, userID int64) (Session, error) {
	sess := Session{
		ID:        uuid.NewString(),
		ExpiresAt: s.now().Add(s.ttl).UTC(),
	}
	if err := s.store.CreateSession(ctx, sess.ID, userID, sess.ExpiresAt.Format(time.RFC3339)); err != nil {
		return Session{}, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

// Authenticate resolves a session cookie value to its user.
func (s *Service) Authenticate(ctx context.Context, sessionID string) (core.User, error) {
	if sessionID == "" {
		return core.User{}, ErrUnauthorized
	}
	u, err := s.store.SessionUser(ctx, sessionID, s.now().UTC().Format(time.RFC3339))
	if errors.Is(err, store.ErrNotFound) {
		return core.User{}, ErrUnauthorized
	}
	if err != nil {
		return core.User{}, fmt.Errorf("resolve session: %w", err)
	}
	return u, nil
}

// Logout deletes the session; a missing session is not an error.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.store.DeleteSession(ctx, sessionID)
}
