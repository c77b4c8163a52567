package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dvgamerr/payme/internal/core"
	"github.com/dvgamerr/payme/internal/store"
)

func (s *Store) FixedExpenses(ctx context.Context, userID int64) ([]core.FixedExpense, error) {
	rows, err := s.query(ctx, s.db, `
		SELECT id, user_id, label, amount, frequency, currency, exchange_rate, display_order
		FROM fixed_expenses
		WHERE user_id = ?
		ORDER BY display_order, id`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list fixed expenses: %w", err)
	}
	defer rows.Close()

	out := []core.FixedExpense{}
	for rows.Next() {
		var fe core.FixedExpense
		if err := rows.Scan(&fe.ID, &fe.UserID, &fe.Label, &fe.Amount, &fe.Frequency,
			&fe.Currency, &fe.ExchangeRate, &fe.DisplayOrder); err != nil {
			return nil, fmt.Errorf("scan fixed expense: %w", err)
		}
		out = append(out, fe)
	}
	return out, rows.Err()
}

func (s *Store) CreateFixedExpense(ctx context.Context, fe core.FixedExpense) (core.FixedExpense, error) {
	id, err := s.insertID(ctx, s.db, `
		INSERT INTO fixed_expenses (user_id, label, amount, frequency, currency, exchange_rate, display_order)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		fe.UserID, fe.Label, fe.Amount, fe.Frequency, fe.Currency, fe.ExchangeRate, fe.DisplayOrder)
	if err != nil {
		return core.FixedExpense{}, fmt.Errorf("create fixed expense: %w", err)
	}
	fe.ID = id
	return fe, nil
}

func (s *Store) UpdateFixedExpense(ctx context.Context, fe core.FixedExpense) error {
	res, err := s.exec(ctx, s.db, `
		UPDATE fixed_expenses
		SET label = ?, amount = ?, frequency = ?, currency = ?, exchange_rate = ?, display_order = ?
		WHERE id = ?`,
		fe.Label, fe.Amount, fe.Frequency, fe.Currency, fe.ExchangeRate, fe.DisplayOrder, fe.ID)
	if err != nil {
		return fmt.Errorf("update fixed expense: %w", err)
	}
	return requireRow(res)
}

func (s *Store) DeleteFixedExpense(ctx context.Context, id int64) error {
	res, err := s.exec(ctx, s.db, "DELETE FROM fixed_expenses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete fixed expense: %w", err)
	}
	return requireRow(res)
}

// ReorderFixedExpenses rewrites display_order to match the given id
// sequence. Ids not owned by the user are skipped by the WHERE clause
// rather than reported.
func (s *Store) ReorderFixedExpenses(ctx context.Context, userID int64, orderedIDs []int64) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for i, id := range orderedIDs {
			if _, err := s.exec(ctx, tx,
				"UPDATE fixed_expenses SET display_order = ? WHERE id = ? AND user_id = ?",
				i, id, userID); err != nil {
				return fmt.Errorf("reorder fixed expense %d: %w", id, err)
			}
		}
		return nil
	})
}

func (s *Store) Categories(ctx context.Context, userID int64) ([]core.BudgetCategory, error) {
	rows, err := s.query(ctx, s.db, `
		SELECT id, user_id, label, default_amount
		FROM budget_categories
		WHERE user_id = ?
		ORDER BY label`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	out := []core.BudgetCategory{}
	for rows.Next() {
		var c core.BudgetCategory
		if err := rows.Scan(&c.ID, &c.UserID, &c.Label, &c.DefaultAmount); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) CreateCategory(ctx context.Context, c core.BudgetCategory) (core.BudgetCategory, error) {
	id, err := s.insertID(ctx, s.db,
		"INSERT INTO budget_categories (user_id, label, default_amount) VALUES (?, ?, ?)",
		c.UserID, c.Label, c.DefaultAmount)
	if err != nil {
		return core.BudgetCategory{}, fmt.Errorf("create category: %w", err)
	}
	c.ID = id
	return c, nil
}

func (s *Store) UpdateCategory(ctx context.Context, c core.BudgetCategory) error {
	res, err := s.exec(ctx, s.db,
		"UPDATE budget_categories SET label = ?, default_amount = ? WHERE id = ?",
		c.Label, c.DefaultAmount, c.ID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return requireRow(res)
}

func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	res, err := s.exec(ctx, s.db, "DELETE FROM budget_categories WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return requireRow(res)
}

// requireRow turns a zero-row UPDATE or DELETE into ErrNotFound so
// handlers report missing rows instead of silently succeeding.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
