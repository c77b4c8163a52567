package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dvgamerr/payme/internal/core"
	"github.com/dvgamerr/payme/internal/store"
)

func (s *Store) IncomeEntries(ctx context.Context, monthID int64) ([]core.IncomeEntry, error) {
	rows, err := s.query(ctx, s.db, `
		SELECT id, month_id, label, amount, display_order
		FROM income_entries
		WHERE month_id = ?
		ORDER BY display_order, id`,
		monthID)
	if err != nil {
		return nil, fmt.Errorf("list income entries: %w", err)
	}
	defer rows.Close()

	out := []core.IncomeEntry{}
	for rows.Next() {
		var e core.IncomeEntry
		if err := rows.Scan(&e.ID, &e.MonthID, &e.Label, &e.Amount, &e.DisplayOrder); err != nil {
			return nil, fmt.Errorf("scan income entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) CreateIncomeEntry(ctx context.Context, e core.IncomeEntry) (core.IncomeEntry, error) {
	id, err := s.insertID(ctx, s.db,
		"INSERT INTO income_entries (month_id, label, amount, display_order) VALUES (?, ?, ?, ?)",
		e.MonthID, e.Label, e.Amount, e.DisplayOrder)
	if err != nil {
		return core.IncomeEntry{}, fmt.Errorf("create income entry: %w", err)
	}
	e.ID = id
	return e, nil
}

// CreateIncomeEntries inserts a batch atomically; the copy-from-previous
// operation either lands whole or not at all.
func (s *Store) CreateIncomeEntries(ctx context.Context, entries []core.IncomeEntry) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, e := range entries {
			if _, err := s.exec(ctx, tx,
				"INSERT INTO income_entries (month_id, label, amount, display_order) VALUES (?, ?, ?, ?)",
				e.MonthID, e.Label, e.Amount, e.DisplayOrder); err != nil {
				return fmt.Errorf("insert income entry %q: %w", e.Label, err)
			}
		}
		return nil
	})
}

func (s *Store) IncomeEntry(ctx context.Context, id, monthID int64) (core.IncomeEntry, error) {
	var e core.IncomeEntry
	err := s.queryRow(ctx, s.db,
		"SELECT id, month_id, label, amount, display_order FROM income_entries WHERE id = ? AND month_id = ?",
		id, monthID).Scan(&e.ID, &e.MonthID, &e.Label, &e.Amount, &e.DisplayOrder)
	if errors.Is(err, sql.ErrNoRows) {
		return core.IncomeEntry{}, store.ErrNotFound
	}
	if err != nil {
		return core.IncomeEntry{}, fmt.Errorf("scan income entry: %w", err)
	}
	return e, nil
}

func (s *Store) UpdateIncomeEntry(ctx context.Context, e core.IncomeEntry) error {
	res, err := s.exec(ctx, s.db,
		"UPDATE income_entries SET label = ?, amount = ? WHERE id = ?",
		e.Label, e.Amount, e.ID)
	if err != nil {
		return fmt.Errorf("update income entry: %w", err)
	}
	return requireRow(res)
}

func (s *Store) DeleteIncomeEntry(ctx context.Context, id int64) error {
	res, err := s.exec(ctx, s.db, "DELETE FROM income_entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete income entry: %w", err)
	}
	return requireRow(res)
}

func (s *Store) ReorderIncomeEntries(ctx context.Context, monthID int64, orderedIDs []int64) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for i, id := range orderedIDs {
			if _, err := s.exec(ctx, tx,
				"UPDATE income_entries SET display_order = ? WHERE id = ? AND month_id = ?",
				i, id, monthID); err != nil {
				return fmt.Errorf("reorder income entry %d: %w", id, err)
			}
		}
		return nil
	})
}
