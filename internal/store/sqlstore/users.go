package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dvgamerr/payme/internal/core"
	"github.com/dvgamerr/payme/internal/store"
)

func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) (core.User, error) {
	id, err := s.insertID(ctx, s.db,
		"INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)",
		username, passwordHash, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return core.User{}, s.wrapInsertErr(err)
	}
	return core.User{ID: id, Username: username, PasswordHash: passwordHash}, nil
}

func (s *Store) UserByUsername(ctx context.Context, username string) (core.User, error) {
	return s.scanUser(s.queryRow(ctx, s.db,
		"SELECT id, username, password_hash, savings, retirement_savings FROM users WHERE username = ?",
		username))
}

func (s *Store) UserByID(ctx context.Context, id int64) (core.User, error) {
	return s.scanUser(s.queryRow(ctx, s.db,
		"SELECT id, username, password_hash, savings, retirement_savings FROM users WHERE id = ?",
		id))
}

func (s *Store) scanUser(row *sql.Row) (core.User, error) {
	var u core.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Savings, &u.RetirementSavings)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, store.ErrNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}

func (s *Store) UpdateSavings(ctx context.Context, userID int64, savings float64) error {
	_, err := s.exec(ctx, s.db, "UPDATE users SET savings = ? WHERE id = ?", savings, userID)
	if err != nil {
		return fmt.Errorf("update savings: %w", err)
	}
	return nil
}

func (s *Store) UpdateRetirementSavings(ctx context.Context, userID int64, amount float64) error {
	_, err := s.exec(ctx, s.db, "UPDATE users SET retirement_savings = ? WHERE id = ?", amount, userID)
	if err != nil {
		return fmt.Errorf("update retirement savings: %w", err)
	}
	return nil
}

func (s *Store) Settings(ctx context.Context, userID int64) (core.Settings, bool, error) {
	var st core.Settings
	err := s.queryRow(ctx, s.db,
		"SELECT base_currency, currency_symbol FROM user_settings WHERE user_id = ?",
		userID).Scan(&st.BaseCurrency, &st.CurrencySymbol)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Settings{}, false, nil
	}
	if err != nil {
		return core.Settings{}, false, fmt.Errorf("load settings: %w", err)
	}
	return st, true, nil
}

func (s *Store) UpsertSettings(ctx context.Context, userID int64, st core.Settings) error {
	// Same syntax on both engines: sqlite and postgres both support
	// ON CONFLICT upserts over the primary key.
	_, err := s.exec(ctx, s.db, `
		INSERT INTO user_settings (user_id, base_currency, currency_symbol, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			base_currency = excluded.base_currency,
			currency_symbol = excluded.currency_symbol,
			updated_at = excluded.updated_at`,
		userID, st.BaseCurrency, st.CurrencySymbol, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}
