package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dvgamerr/payme/internal/core"
	"github.com/dvgamerr/payme/internal/store"
)

func (s *Store) Months(ctx context.Context, userID int64) ([]core.Month, error) {
	rows, err := s.query(ctx, s.db, `
		SELECT id, user_id, year, month, is_closed, closed_at
		FROM months
		WHERE user_id = ?
		ORDER BY year DESC, month DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list months: %w", err)
	}
	defer rows.Close()

	out := []core.Month{}
	for rows.Next() {
		var m core.Month
		if err := rows.Scan(&m.ID, &m.UserID, &m.Year, &m.Month, &m.IsClosed, &m.ClosedAt); err != nil {
			return nil, fmt.Errorf("scan month: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) Month(ctx context.Context, id, userID int64) (core.Month, error) {
	return s.scanMonth(s.queryRow(ctx, s.db,
		"SELECT id, user_id, year, month, is_closed, closed_at FROM months WHERE id = ? AND user_id = ?",
		id, userID))
}

func (s *Store) FindMonth(ctx context.Context, userID int64, year, month int) (core.Month, error) {
	return s.scanMonth(s.queryRow(ctx, s.db,
		"SELECT id, user_id, year, month, is_closed, closed_at FROM months WHERE user_id = ? AND year = ? AND month = ?",
		userID, year, month))
}

func (s *Store) scanMonth(row *sql.Row) (core.Month, error) {
	var m core.Month
	err := row.Scan(&m.ID, &m.UserID, &m.Year, &m.Month, &m.IsClosed, &m.ClosedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Month{}, store.ErrNotFound
	}
	if err != nil {
		return core.Month{}, fmt.Errorf("scan month: %w", err)
	}
	return m, nil
}

// CreateMonth inserts the month row together with its seeded budget
// allocations and fixed instances. The whole seed is one transaction:
// a month never becomes visible half-populated. A concurrent create of
// the same period surfaces as ErrAlreadyExists through the
// (user, year, month) unique constraint.
func (s *Store) CreateMonth(ctx context.Context, userID int64, year, month int, budgets []store.BudgetSeed, fixed []store.FixedMonthSeed) (core.Month, error) {
	var created core.Month
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		id, err := s.insertID(ctx, tx,
			"INSERT INTO months (user_id, year, month) VALUES (?, ?, ?)",
			userID, year, month)
		if err != nil {
			return s.wrapInsertErr(err)
		}
		for _, b := range budgets {
			if _, err := s.exec(ctx, tx,
				"INSERT INTO monthly_budgets (month_id, category_id, allocated_amount) VALUES (?, ?, ?)",
				id, b.CategoryID, b.Allocated); err != nil {
				return fmt.Errorf("seed budget for category %d: %w", b.CategoryID, err)
			}
		}
		for _, f := range fixed {
			if _, err := s.exec(ctx, tx,
				"INSERT INTO fixed_months (user_id, month_id, name, amount, display_order) VALUES (?, ?, ?, ?, ?)",
				userID, id, f.Name, f.Amount, f.DisplayOrder); err != nil {
				return fmt.Errorf("seed fixed instance %q: %w", f.Name, err)
			}
		}
		created = core.Month{ID: id, UserID: userID, Year: year, Month: month}
		return nil
	})
	if err != nil {
		return core.Month{}, err
	}
	return created, nil
}

func (s *Store) CloseMonth(ctx context.Context, id int64, closedAt string) (core.Month, error) {
	res, err := s.exec(ctx, s.db,
		"UPDATE months SET is_closed = ?, closed_at = ? WHERE id = ?",
		true, closedAt, id)
	if err != nil {
		return core.Month{}, fmt.Errorf("close month: %w", err)
	}
	if err := requireRow(res); err != nil {
		return core.Month{}, err
	}
	var m core.Month
	err = s.queryRow(ctx, s.db,
		"SELECT id, user_id, year, month, is_closed, closed_at FROM months WHERE id = ?",
		id).Scan(&m.ID, &m.UserID, &m.Year, &m.Month, &m.IsClosed, &m.ClosedAt)
	if err != nil {
		return core.Month{}, fmt.Errorf("reload closed month: %w", err)
	}
	return m, nil
}
