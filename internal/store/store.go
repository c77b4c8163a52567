// Package store defines the persistence capability consumed by the
// budgeting services. It is implemented once, over database/sql, in
// the sqlstore subpackage; the concrete dialect (sqlite or postgres)
// is selected at startup by configuration.
package store

import (
	"context"
	"errors"

	"github.com/dvgamerr/payme/internal/core"
)

var (
	// ErrNotFound covers both true absence and rows owned by another
	// user; callers must not be able to tell the two apart.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists reports a unique-constraint violation.
	ErrAlreadyExists = errors.New("already exists")
)

// Kind names an owned resource table for the generic ownership guard.
type Kind string

const (
	KindMonth        Kind = "month"
	KindCategory     Kind = "category"
	KindFixedExpense Kind = "fixed expense"
	KindFixedMonth   Kind = "fixed month"
)

// BudgetSeed is one allocation copied from a category default when a
// month is created.
type BudgetSeed struct {
	CategoryID int64
	Allocated  float64
}

// FixedMonthSeed is one normalized fixed-expense instance materialized
// into a new month.
type FixedMonthSeed struct {
	Name         string
	Amount       float64
	DisplayOrder int
}

// TrendRow carries the per-month grouped aggregates for the trend
// report, newest first.
type TrendRow struct {
	Year   int
	Month  int
	Income float64
	Spent  float64
	Fixed  float64
}

type UserStore interface {
	CreateUser(ctx context.Context, username, passwordHash string) (core.User, error)
	UserByUsername(ctx context.Context, username string) (core.User, error)
	UserByID(ctx context.Context, id int64) (core.User, error)
	UpdateSavings(ctx context.Context, userID int64, savings float64) error
	UpdateRetirementSavings(ctx context.Context, userID int64, amount float64) error
	Settings(ctx context.Context, userID int64) (core.Settings, bool, error)
	UpsertSettings(ctx context.Context, userID int64, s core.Settings) error
}

type SessionStore interface {
	CreateSession(ctx context.Context, id string, userID int64, expiresAt string) error
	SessionUser(ctx context.Context, sessionID, now string) (core.User, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteExpiredSessions(ctx context.Context, now string) (int64, error)
}

type OwnershipStore interface {
	// OwnerOf returns the owning user id of the given resource row, or
	// ErrNotFound when no such row exists.
	OwnerOf(ctx context.Context, kind Kind, id int64) (int64, error)
}

type FixedExpenseStore interface {
	FixedExpenses(ctx context.Context, userID int64) ([]core.FixedExpense, error)
	CreateFixedExpense(ctx context.Context, fe core.FixedExpense) (core.FixedExpense, error)
	UpdateFixedExpense(ctx context.Context, fe core.FixedExpense) error
	DeleteFixedExpense(ctx context.Context, id int64) error
	ReorderFixedExpenses(ctx context.Context, userID int64, orderedIDs []int64) error
}

type CategoryStore interface {
	Categories(ctx context.Context, userID int64) ([]core.BudgetCategory, error)
	CreateCategory(ctx context.Context, c core.BudgetCategory) (core.BudgetCategory, error)
	UpdateCategory(ctx context.Context, c core.BudgetCategory) error
	DeleteCategory(ctx context.Context, id int64) error
}

type MonthStore interface {
	Months(ctx context.Context, userID int64) ([]core.Month, error)
	Month(ctx context.Context, id, userID int64) (core.Month, error)
	FindMonth(ctx context.Context, userID int64, year, month int) (core.Month, error)
	// CreateMonth inserts the month row and seeds its budgets and fixed
	// instances in one transaction. It returns ErrAlreadyExists when the
	// (user, year, month) unique constraint fires.
	CreateMonth(ctx context.Context, userID int64, year, month int, budgets []BudgetSeed, fixed []FixedMonthSeed) (core.Month, error)
	CloseMonth(ctx context.Context, id int64, closedAt string) (core.Month, error)
}

type IncomeStore interface {
	IncomeEntries(ctx context.Context, monthID int64) ([]core.IncomeEntry, error)
	CreateIncomeEntry(ctx context.Context, e core.IncomeEntry) (core.IncomeEntry, error)
	CreateIncomeEntries(ctx context.Context, entries []core.IncomeEntry) error
	IncomeEntry(ctx context.Context, id, monthID int64) (core.IncomeEntry, error)
	UpdateIncomeEntry(ctx context.Context, e core.IncomeEntry) error
	DeleteIncomeEntry(ctx context.Context, id int64) error
	ReorderIncomeEntries(ctx context.Context, monthID int64, orderedIDs []int64) error
}

type BudgetStore interface {
	// Budgets joins category labels and computes spent_amount per
	// allocation; allocations with no items report zero, not absence.
	Budgets(ctx context.Context, monthID int64) ([]core.MonthlyBudget, error)
	CreateBudget(ctx context.Context, b core.MonthlyBudget) (core.MonthlyBudget, error)
	Budget(ctx context.Context, id, monthID int64) (core.MonthlyBudget, error)
	UpdateBudget(ctx context.Context, id int64, allocated float64) error
	DeleteBudget(ctx context.Context, id int64) error
}

type ItemStore interface {
	// Items joins category labels, ordered by spent_on descending with
	// item id descending as the same-day tie break.
	Items(ctx context.Context, monthID int64) ([]core.Item, error)
	CreateItem(ctx context.Context, it core.Item) (core.Item, error)
	Item(ctx context.Context, id, monthID int64) (core.Item, error)
	UpdateItem(ctx context.Context, it core.Item) error
	DeleteItem(ctx context.Context, id int64) error
	MoveItem(ctx context.Context, id, targetMonthID int64) error
}

type FixedMonthStore interface {
	FixedMonths(ctx context.Context, monthID int64) ([]core.FixedMonth, error)
	CreateFixedMonth(ctx context.Context, fm core.FixedMonth) (core.FixedMonth, error)
	UpdateFixedMonth(ctx context.Context, fm core.FixedMonth) error
	DeleteFixedMonth(ctx context.Context, id int64) error
	ReorderFixedMonths(ctx context.Context, monthID int64, orderedIDs []int64) error
}

type StatsStore interface {
	// SpentByCategory returns total item amounts grouped by category for
	// one calendar period, in a single query.
	SpentByCategory(ctx context.Context, userID int64, year, month int) (map[int64]float64, error)
	// TrendRows returns per-month income/spent/fixed aggregates for the
	// caller's most recent months, newest first, in a single grouped
	// query per child table.
	TrendRows(ctx context.Context, userID int64, limit int) ([]TrendRow, error)
}

type SnapshotStore interface {
	// ReplaceUserData destructively replaces every month, category and
	// fixed expense owned by the user with the snapshot contents, in one
	// transaction. Budgets and items naming a category label absent from
	// the snapshot's category list are dropped silently.
	ReplaceUserData(ctx context.Context, userID int64, snap core.Snapshot) error
}

type AuditStore interface {
	InsertAuditLog(ctx context.Context, entry core.AuditEntry) error
}

// Store is the full persistence surface.
type Store interface {
	UserStore
	SessionStore
	OwnershipStore
	FixedExpenseStore
	CategoryStore
	MonthStore
	IncomeStore
	BudgetStore
	ItemStore
	FixedMonthStore
	StatsStore
	SnapshotStore
	AuditStore

	Close() error
}
