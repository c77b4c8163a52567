package sqlstore

import (
	"context"
	"fmt"

	"github.com/dvgamerr/payme/internal/store"
)

// SpentByCategory totals one calendar period's items per category in a
// single grouped query.
func (s *Store) SpentByCategory(ctx context.Context, userID int64, year, month int) (map[int64]float64, error) {
	rows, err := s.query(ctx, s.db, `
		SELECT i.category_id, COALESCE(SUM(i.amount), 0)
		FROM items i
		JOIN months m ON m.id = i.month_id
		WHERE m.user_id = ? AND m.year = ? AND m.month = ?
		GROUP BY i.category_id`,
		userID, year, month)
	if err != nil {
		return nil, fmt.Errorf("spent by category: %w", err)
	}
	defer rows.Close()

	out := map[int64]float64{}
	for rows.Next() {
		var categoryID int64
		var total float64
		if err := rows.Scan(&categoryID, &total); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		out[categoryID] = total
	}
	return out, rows.Err()
}

// TrendRows aggregates income, spending and fixed costs per month.
// Each child table is pre-grouped in its own derived table; joining
// the raw tables directly would multiply rows across joins and
// inflate every sum.
func (s *Store) TrendRows(ctx context.Context, userID int64, limit int) ([]store.TrendRow, error) {
	rows, err := s.query(ctx, s.db, `
		SELECT m.year, m.month,
		       COALESCE(inc.total, 0), COALESCE(sp.total, 0), COALESCE(fx.total, 0)
		FROM months m
		LEFT JOIN (SELECT month_id, SUM(amount) AS total FROM income_entries GROUP BY month_id) inc ON inc.month_id = m.id
		LEFT JOIN (SELECT month_id, SUM(amount) AS total FROM items GROUP BY month_id) sp ON sp.month_id = m.id
		LEFT JOIN (SELECT month_id, SUM(amount) AS total FROM fixed_months GROUP BY month_id) fx ON fx.month_id = m.id
		WHERE m.user_id = ?
		ORDER BY m.year DESC, m.month DESC
		LIMIT ?`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("trend rows: %w", err)
	}
	defer rows.Close()

	out := []store.TrendRow{}
	for rows.Next() {
		var tr store.TrendRow
		if err := rows.Scan(&tr.Year, &tr.Month, &tr.Income, &tr.Spent, &tr.Fixed); err != nil {
			return nil, fmt.Errorf("scan trend row: %w", err)
		}
		out = append(out, tr)
	}
	return out, rows.Err()
}
