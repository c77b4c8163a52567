// Package sqlstore implements store.Store over database/sql. A single
// query surface serves both supported engines; the Dialect hook covers
// the few places sqlite and postgres genuinely differ (placeholders,
// generated keys, unique-violation detection, migrations).
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dvgamerr/payme/internal/store"
)

// Store is the sql-backed implementation of store.Store.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

var _ store.Store = (*Store)(nil)

// Open connects with the given dialect, runs pending migrations and
// verifies the connection.
func Open(dialect Dialect, dsn string) (*Store, error) {
	db, err := dialect.Open(dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", dialect.Name(), err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := dialect.Migrate(dsn); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	slog.Info("Database ready", "dialect", dialect.Name())
	return &Store{db: db, dialect: dialect}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) exec(ctx context.Context, q dbtx, query string, args ...any) (sql.Result, error) {
	return q.ExecContext(ctx, s.dialect.Rebind(query), args...)
}

func (s *Store) query(ctx context.Context, q dbtx, query string, args ...any) (*sql.Rows, error) {
	return q.QueryContext(ctx, s.dialect.Rebind(query), args...)
}

func (s *Store) queryRow(ctx context.Context, q dbtx, query string, args ...any) *sql.Row {
	return q.QueryRowContext(ctx, s.dialect.Rebind(query), args...)
}

// insertID runs an INSERT and reports the generated row id, using
// RETURNING where the engine has no last-insert-id notion.
func (s *Store) insertID(ctx context.Context, q dbtx, query string, args ...any) (int64, error) {
	if s.dialect.UseReturning() {
		var id int64
		err := q.QueryRowContext(ctx, s.dialect.Rebind(query+" RETURNING id"), args...).Scan(&id)
		return id, err
	}
	res, err := q.ExecContext(ctx, s.dialect.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// inTx runs fn inside a transaction with full rollback on any error,
// so multi-statement writes never leave partial state behind.
func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			slog.Error("Transaction rollback failed", "error", rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// wrapInsertErr translates engine unique violations into the portable
// sentinel, leaving everything else intact.
func (s *Store) wrapInsertErr(err error) error {
	if err == nil {
		return nil
	}
	if s.dialect.IsUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

var kindTables = map[store.Kind]string{
	store.KindMonth:        "months",
	store.KindCategory:     "budget_categories",
	store.KindFixedExpense: "fixed_expenses",
	store.KindFixedMonth:   "fixed_months",
}

// OwnerOf resolves the owning user of a resource row. Every handler
// funnels its ownership checks through this single lookup instead of
// repeating a per-table three-liner.
func (s *Store) OwnerOf(ctx context.Context, kind store.Kind, id int64) (int64, error) {
	table, ok := kindTables[kind]
	if !ok {
		return 0, fmt.Errorf("unknown resource kind %q", kind)
	}
	var owner int64
	err := s.queryRow(ctx, s.db, "SELECT user_id FROM "+table+" WHERE id = ?", id).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, store.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("resolve %s owner: %w", kind, err)
	}
	return owner, nil
}
