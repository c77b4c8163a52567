package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dvgamerr/payme/internal/core"
	"github.com/dvgamerr/payme/internal/store"
)

// Budgets lists a month's allocations with labels joined in and spent
// totals computed in the same query. The LEFT JOIN keeps zero-spend
// allocations in the result with spent_amount 0.
func (s *Store) Budgets(ctx context.Context, monthID int64) ([]core.MonthlyBudget, error) {
	rows, err := s.query(ctx, s.db, `
		SELECT mb.id, mb.month_id, mb.category_id, bc.label, mb.allocated_amount,
		       COALESCE(SUM(i.amount), 0) AS spent_amount
		FROM monthly_budgets mb
		JOIN budget_categories bc ON bc.id = mb.category_id
		LEFT JOIN items i ON i.category_id = mb.category_id AND i.month_id = mb.month_id
		WHERE mb.month_id = ?
		GROUP BY mb.id, mb.month_id, mb.category_id, bc.label, mb.allocated_amount
		ORDER BY bc.label`,
		monthID)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	out := []core.MonthlyBudget{}
	for rows.Next() {
		var b core.MonthlyBudget
		if err := rows.Scan(&b.ID, &b.MonthID, &b.CategoryID, &b.CategoryLabel,
			&b.AllocatedAmount, &b.SpentAmount); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *Store) CreateBudget(ctx context.Context, b core.MonthlyBudget) (core.MonthlyBudget, error) {
	id, err := s.insertID(ctx, s.db,
		"INSERT INTO monthly_budgets (month_id, category_id, allocated_amount) VALUES (?, ?, ?)",
		b.MonthID, b.CategoryID, b.AllocatedAmount)
	if err != nil {
		return core.MonthlyBudget{}, s.wrapInsertErr(err)
	}
	b.ID = id
	return b, nil
}

func (s *Store) Budget(ctx context.Context, id, monthID int64) (core.MonthlyBudget, error) {
	var b core.MonthlyBudget
	err := s.queryRow(ctx, s.db, `
		SELECT mb.id, mb.month_id, mb.category_id, bc.label, mb.allocated_amount
		FROM monthly_budgets mb
		JOIN budget_categories bc ON bc.id = mb.category_id
		WHERE mb.id = ? AND mb.month_id = ?`,
		id, monthID).Scan(&b.ID, &b.MonthID, &b.CategoryID, &b.CategoryLabel, &b.AllocatedAmount)
	if errors.Is(err, sql.ErrNoRows) {
		return core.MonthlyBudget{}, store.ErrNotFound
	}
	if err != nil {
		return core.MonthlyBudget{}, fmt.Errorf("scan budget: %w", err)
	}
	return b, nil
}

func (s *Store) UpdateBudget(ctx context.Context, id int64, allocated float64) error {
	res, err := s.exec(ctx, s.db,
		"UPDATE monthly_budgets SET allocated_amount = ? WHERE id = ?",
		allocated, id)
	if err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	return requireRow(res)
}

func (s *Store) DeleteBudget(ctx context.Context, id int64) error {
	res, err := s.exec(ctx, s.db, "DELETE FROM monthly_budgets WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return requireRow(res)
}
