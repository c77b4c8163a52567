package budget

import (
	"context"

	"github.com/dvgamerr/payme/internal/core"
)

func (s *Service) AddItem(ctx context.Context, userID int64, it core.Item) (core.Item, error) {
	if err := it.Validate(); err != nil {
		return core.Item{}, err
	}
	if _, err := s.ownedMonth(ctx, it.MonthID, userID); err != nil {
		return core.Item{}, err
	}
	if err := s.ownedCategory(ctx, it.CategoryID, userID); err != nil {
		return core.Item{}, err
	}
	return s.store.CreateItem(ctx, it)
}

func (s *Service) UpdateItem(ctx context.Context, userID int64, it core.Item) (core.Item, error) {
	if err := it.Validate(); err != nil {
		return core.Item{}, err
	}
	if _, err := s.ownedMonth(ctx, it.MonthID, userID); err != nil {
		return core.Item{}, err
	}
	if _, err := s.store.Item(ctx, it.ID, it.MonthID); err != nil {
		return core.Item{}, err
	}
	if err := s.ownedCategory(ctx, it.CategoryID, userID); err != nil {
		return core.Item{}, err
	}
	if err := s.store.UpdateItem(ctx, it); err != nil {
		return core.Item{}, err
	}
	return s.store.Item(ctx, it.ID, it.MonthID)
}

func (s *Service) DeleteItem(ctx context.Context, userID, monthID, itemID int64) error {
	if _, err := s.ownedMonth(ctx, monthID, userID); err != nil {
		return err
	}
	if _, err := s.store.Item(ctx, itemID, monthID); err != nil {
		return err
	}
	return s.store.DeleteItem(ctx, itemID)
}

// MoveItem relocates an item into another of the caller's months. Both
// ends are ownership checked; the item keeps its category and date.
func (s *Service) MoveItem(ctx context.Context, userID, monthID, itemID, targetMonthID int64) (core.Item, error) {
	if _, err := s.ownedMonth(ctx, monthID, userID); err != nil {
		return core.Item{}, err
	}
	if _, err := s.store.Item(ctx, itemID, monthID); err != nil {
		return core.Item{}, err
	}
	if _, err := s.ownedMonth(ctx, targetMonthID, userID); err != nil {
		return core.Item{}, err
	}
	if err := s.store.MoveItem(ctx, itemID, targetMonthID); err != nil {
		return core.Item{}, err
	}
	return s.store.Item(ctx, itemID, targetMonthID)
}
