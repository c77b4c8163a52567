package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dvgamerr/payme/internal/core"
)

// ReplaceUserData wipes the user's months, categories and fixed
// expenses and rebuilds them from the snapshot, all inside one
// transaction. Category references travel by label; budgets and items
// naming a label the snapshot's category list does not define are
// dropped silently rather than failing the import.
func (s *Store) ReplaceUserData(ctx context.Context, userID int64, snap core.Snapshot) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := s.exec(ctx, tx,
			"UPDATE users SET savings = ?, retirement_savings = ? WHERE id = ?",
			snap.Savings, snap.RetirementSavings, userID); err != nil {
			return fmt.Errorf("replace savings: %w", err)
		}

		for _, q := range []string{
			"DELETE FROM items WHERE month_id IN (SELECT id FROM months WHERE user_id = ?)",
			"DELETE FROM monthly_budgets WHERE month_id IN (SELECT id FROM months WHERE user_id = ?)",
			"DELETE FROM income_entries WHERE month_id IN (SELECT id FROM months WHERE user_id = ?)",
			"DELETE FROM fixed_months WHERE user_id = ?",
			"DELETE FROM months WHERE user_id = ?",
			"DELETE FROM budget_categories WHERE user_id = ?",
			"DELETE FROM fixed_expenses WHERE user_id = ?",
		} {
			if _, err := s.exec(ctx, tx, q, userID); err != nil {
				return fmt.Errorf("clear existing data: %w", err)
			}
		}

		for i, fe := range snap.FixedExpenses {
			frequency := fe.Frequency
			if frequency == "" {
				frequency = core.Monthly
			}
			rate := fe.ExchangeRate
			if rate <= 0 {
				rate = 1
			}
			order := fe.DisplayOrder
			if order == 0 {
				order = i
			}
			if _, err := s.exec(ctx, tx, `
				INSERT INTO fixed_expenses (user_id, label, amount, frequency, currency, exchange_rate, display_order)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				userID, fe.Label, fe.Amount, frequency, fe.Currency, rate, order); err != nil {
				return fmt.Errorf("import fixed expense %q: %w", fe.Label, err)
			}
		}

		categoryIDs := make(map[string]int64, len(snap.Categories))
		for _, c := range snap.Categories {
			id, err := s.insertID(ctx, tx,
				"INSERT INTO budget_categories (user_id, label, default_amount) VALUES (?, ?, ?)",
				userID, c.Label, c.DefaultAmount)
			if err != nil {
				return fmt.Errorf("import category %q: %w", c.Label, err)
			}
			categoryIDs[c.Label] = id
		}

		for _, m := range snap.Months {
			monthID, err := s.insertID(ctx, tx,
				"INSERT INTO months (user_id, year, month, is_closed) VALUES (?, ?, ?, ?)",
				userID, m.Year, m.Month, m.IsClosed)
			if err != nil {
				return fmt.Errorf("import month %d-%02d: %w", m.Year, m.Month, s.wrapInsertErr(err))
			}
			for i, e := range m.IncomeEntries {
				order := e.DisplayOrder
				if order == 0 {
					order = i
				}
				if _, err := s.exec(ctx, tx,
					"INSERT INTO income_entries (month_id, label, amount, display_order) VALUES (?, ?, ?, ?)",
					monthID, e.Label, e.Amount, order); err != nil {
					return fmt.Errorf("import income entry %q: %w", e.Label, err)
				}
			}
			for _, b := range m.Budgets {
				categoryID, ok := categoryIDs[b.CategoryLabel]
				if !ok {
					continue
				}
				if _, err := s.exec(ctx, tx,
					"INSERT INTO monthly_budgets (month_id, category_id, allocated_amount) VALUES (?, ?, ?)",
					monthID, categoryID, b.AllocatedAmount); err != nil {
					return fmt.Errorf("import budget %q: %w", b.CategoryLabel, err)
				}
			}
			for _, it := range m.Items {
				categoryID, ok := categoryIDs[it.CategoryLabel]
				if !ok {
					continue
				}
				if _, err := s.exec(ctx, tx,
					"INSERT INTO items (month_id, category_id, description, amount, spent_on) VALUES (?, ?, ?, ?, ?)",
					monthID, categoryID, it.Description, it.Amount, it.SpentOn); err != nil {
					return fmt.Errorf("import item %q: %w", it.Description, err)
				}
			}
			for i, fm := range m.FixedMonths {
				order := fm.DisplayOrder
				if order == 0 {
					order = i
				}
				if _, err := s.exec(ctx, tx,
					"INSERT INTO fixed_months (user_id, month_id, name, amount, display_order) VALUES (?, ?, ?, ?, ?)",
					userID, monthID, fm.Name, fm.Amount, order); err != nil {
					return fmt.Errorf("import fixed instance %q: %w", fm.Name, err)
				}
			}
		}
		return nil
	})
}
