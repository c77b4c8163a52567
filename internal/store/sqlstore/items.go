package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dvgamerr/payme/internal/core"
	"github.com/dvgamerr/payme/internal/store"
)

const itemColumns = "i.id, i.month_id, i.category_id, bc.label, i.description, i.amount, i.spent_on"

// Items lists a month's spending newest first; the id tie break keeps
// same-day insertions in reverse insertion order.
func (s *Store) Items(ctx context.Context, monthID int64) ([]core.Item, error) {
	rows, err := s.query(ctx, s.db, `
		SELECT `+itemColumns+`
		FROM items i
		JOIN budget_categories bc ON bc.id = i.category_id
		WHERE i.month_id = ?
		ORDER BY i.spent_on DESC, i.id DESC`,
		monthID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	out := []core.Item{}
	for rows.Next() {
		var it core.Item
		if err := rows.Scan(&it.ID, &it.MonthID, &it.CategoryID, &it.CategoryLabel,
			&it.Description, &it.Amount, &it.SpentOn); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (s *Store) CreateItem(ctx context.Context, it core.Item) (core.Item, error) {
	id, err := s.insertID(ctx, s.db,
		"INSERT INTO items (month_id, category_id, description, amount, spent_on) VALUES (?, ?, ?, ?, ?)",
		it.MonthID, it.CategoryID, it.Description, it.Amount, it.SpentOn)
	if err != nil {
		return core.Item{}, fmt.Errorf("create item: %w", err)
	}
	return s.itemByID(ctx, id)
}

func (s *Store) Item(ctx context.Context, id, monthID int64) (core.Item, error) {
	var it core.Item
	err := s.queryRow(ctx, s.db, `
		SELECT `+itemColumns+`
		FROM items i
		JOIN budget_categories bc ON bc.id = i.category_id
		WHERE i.id = ? AND i.month_id = ?`,
		id, monthID).Scan(&it.ID, &it.MonthID, &it.CategoryID, &it.CategoryLabel,
		&it.Description, &it.Amount, &it.SpentOn)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Item{}, store.ErrNotFound
	}
	if err != nil {
		return core.Item{}, fmt.Errorf("scan item: %w", err)
	}
	return it, nil
}

func (s *Store) itemByID(ctx context.Context, id int64) (core.Item, error) {
	var it core.Item
	err := s.queryRow(ctx, s.db, `
		SELECT `+itemColumns+`
		FROM items i
		JOIN budget_categories bc ON bc.id = i.category_id
		WHERE i.id = ?`,
		id).Scan(&it.ID, &it.MonthID, &it.CategoryID, &it.CategoryLabel,
		&it.Description, &it.Amount, &it.SpentOn)
	if err != nil {
		return core.Item{}, fmt.Errorf("reload item: %w", err)
	}
	return it, nil
}

func (s *Store) UpdateItem(ctx context.Context, it core.Item) error {
	res, err := s.exec(ctx, s.db,
		"UPDATE items SET category_id = ?, description = ?, amount = ?, spent_on = ? WHERE id = ?",
		it.CategoryID, it.Description, it.Amount, it.SpentOn, it.ID)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return requireRow(res)
}

func (s *Store) DeleteItem(ctx context.Context, id int64) error {
	res, err := s.exec(ctx, s.db, "DELETE FROM items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return requireRow(res)
}

func (s *Store) MoveItem(ctx context.Context, id, targetMonthID int64) error {
	res, err := s.exec(ctx, s.db, "UPDATE items SET month_id = ? WHERE id = ?", targetMonthID, id)
	if err != nil {
		return fmt.Errorf("move item: %w", err)
	}
	return requireRow(res)
}
