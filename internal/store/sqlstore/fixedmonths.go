package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dvgamerr/payme/internal/core"
)

func (s *Store) FixedMonths(ctx context.Context, monthID int64) ([]core.FixedMonth, error) {
	rows, err := s.query(ctx, s.db, `
		SELECT id, user_id, month_id, name, amount, display_order
		FROM fixed_months
		WHERE month_id = ?
		ORDER BY display_order, id`,
		monthID)
	if err != nil {
		return nil, fmt.Errorf("list fixed instances: %w", err)
	}
	defer rows.Close()

	out := []core.FixedMonth{}
	for rows.Next() {
		var fm core.FixedMonth
		if err := rows.Scan(&fm.ID, &fm.UserID, &fm.MonthID, &fm.Name, &fm.Amount, &fm.DisplayOrder); err != nil {
			return nil, fmt.Errorf("scan fixed instance: %w", err)
		}
		out = append(out, fm)
	}
	return out, rows.Err()
}

func (s *Store) CreateFixedMonth(ctx context.Context, fm core.FixedMonth) (core.FixedMonth, error) {
	id, err := s.insertID(ctx, s.db,
		"INSERT INTO fixed_months (user_id, month_id, name, amount, display_order) VALUES (?, ?, ?, ?, ?)",
		fm.UserID, fm.MonthID, fm.Name, fm.Amount, fm.DisplayOrder)
	if err != nil {
		return core.FixedMonth{}, fmt.Errorf("create fixed instance: %w", err)
	}
	fm.ID = id
	return fm, nil
}

func (s *Store) UpdateFixedMonth(ctx context.Context, fm core.FixedMonth) error {
	res, err := s.exec(ctx, s.db,
		"UPDATE fixed_months SET name = ?, amount = ? WHERE id = ?",
		fm.Name, fm.Amount, fm.ID)
	if err != nil {
		return fmt.Errorf("update fixed instance: %w", err)
	}
	return requireRow(res)
}

func (s *Store) DeleteFixedMonth(ctx context.Context, id int64) error {
	res, err := s.exec(ctx, s.db, "DELETE FROM fixed_months WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete fixed instance: %w", err)
	}
	return requireRow(res)
}

func (s *Store) ReorderFixedMonths(ctx context.Context, monthID int64, orderedIDs []int64) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for i, id := range orderedIDs {
			if _, err := s.exec(ctx, tx,
				"UPDATE fixed_months SET display_order = ? WHERE id = ? AND month_id = ?",
				i, id, monthID); err != nil {
				return fmt.Errorf("reorder fixed instance %d: %w", id, err)
			}
		}
		return nil
	})
}
