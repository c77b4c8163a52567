package budget

import (
	"context"
	"strings"

	"github.com/dvgamerr/payme/internal/core"
	"github.com/dvgamerr/payme/internal/store"
)

// Fixed-expense templates. These never appear in a month summary
// directly; month creation materializes them into fixed instances.

func (s *Service) FixedExpenses(ctx context.Context, userID int64) ([]core.FixedExpense, error) {
	return s.store.FixedExpenses(ctx, userID)
}

func (s *Service) AddFixedExpense(ctx context.Context, fe core.FixedExpense) (core.FixedExpense, error) {
	if fe.Frequency == "" {
		fe.Frequency = core.Monthly
	}
	if fe.ExchangeRate == 0 {
		fe.ExchangeRate = 1
	}
	if err := fe.Validate(); err != nil {
		return core.FixedExpense{}, err
	}
	return s.store.CreateFixedExpense(ctx, fe)
}

func (s *Service) UpdateFixedExpense(ctx context.Context, fe core.FixedExpense) (core.FixedExpense, error) {
	if err := fe.Validate(); err != nil {
		return core.FixedExpense{}, err
	}
	if err := s.ownedResource(ctx, store.KindFixedExpense, fe.ID, fe.UserID); err != nil {
		return core.FixedExpense{}, err
	}
	if err := s.store.UpdateFixedExpense(ctx, fe); err != nil {
		return core.FixedExpense{}, err
	}
	return fe, nil
}

func (s *Service) DeleteFixedExpense(ctx context.Context, userID, id int64) error {
	if err := s.ownedResource(ctx, store.KindFixedExpense, id, userID); err != nil {
		return err
	}
	return s.store.DeleteFixedExpense(ctx, id)
}

func (s *Service) ReorderFixedExpenses(ctx context.Context, userID int64, orderedIDs []int64) error {
	return s.store.ReorderFixedExpenses(ctx, userID, orderedIDs)
}

// Per-month fixed instances.

func (s *Service) AddFixedMonth(ctx context.Context, userID int64, fm core.FixedMonth) (core.FixedMonth, error) {
	if strings.TrimSpace(fm.Name) == "" {
		return core.FixedMonth{}, core.ErrEmptyLabel
	}
	if _, err := s.ownedMonth(ctx, fm.MonthID, userID); err != nil {
		return core.FixedMonth{}, err
	}
	fm.UserID = userID
	return s.store.CreateFixedMonth(ctx, fm)
}

func (s *Service) UpdateFixedMonth(ctx context.Context, userID int64, fm core.FixedMonth) (core.FixedMonth, error) {
	if strings.TrimSpace(fm.Name) == "" {
		return core.FixedMonth{}, core.ErrEmptyLabel
	}
	if _, err := s.ownedMonth(ctx, fm.MonthID, userID); err != nil {
		return core.FixedMonth{}, err
	}
	if err := s.ownedResource(ctx, store.KindFixedMonth, fm.ID, userID); err != nil {
		return core.FixedMonth{}, err
	}
	if err := s.store.UpdateFixedMonth(ctx, fm); err != nil {
		return core.FixedMonth{}, err
	}
	return fm, nil
}

func (s *Service) DeleteFixedMonth(ctx context.Context, userID, monthID, id int64) error {
	if _, err := s.ownedMonth(ctx, monthID, userID); err != nil {
		return err
	}
	if err := s.ownedResource(ctx, store.KindFixedMonth, id, userID); err != nil {
		return err
	}
	return s.store.DeleteFixedMonth(ctx, id)
}

func (s *Service) ReorderFixedMonths(ctx context.Context, userID, monthID int64, orderedIDs []int64) error {
	if _, err := s.ownedMonth(ctx, monthID, userID); err != nil {
		return err
	}
	return s.store.ReorderFixedMonths(ctx, monthID, orderedIDs)
}

// Budget categories.

func (s *Service) Categories(ctx context.Context, userID int64) ([]core.BudgetCategory, error) {
	return s.store.Categories(ctx, userID)
}

func (s *Service) AddCategory(ctx context.Context, c core.BudgetCategory) (core.BudgetCategory, error) {
	if strings.TrimSpace(c.Label) == "" {
		return core.BudgetCategory{}, core.ErrEmptyLabel
	}
	return s.store.CreateCategory(ctx, c)
}

func (s *Service) UpdateCategory(ctx context.Context, c core.BudgetCategory) (core.BudgetCategory, error) {
	if strings.TrimSpace(c.Label) == "" {
		return core.BudgetCategory{}, core.ErrEmptyLabel
	}
	if err := s.ownedResource(ctx, store.KindCategory, c.ID, c.UserID); err != nil {
		return core.BudgetCategory{}, err
	}
	if err := s.store.UpdateCategory(ctx, c); err != nil {
		return core.BudgetCategory{}, err
	}
	return c, nil
}

func (s *Service) DeleteCategory(ctx context.Context, userID, id int64) error {
	if err := s.ownedResource(ctx, store.KindCategory, id, userID); err != nil {
		return err
	}
	return s.store.DeleteCategory(ctx, id)
}

// ownedResource is the generic ownership guard for non-month resources.
func (s *Service) ownedResource(ctx context.Context, kind store.Kind, id, userID int64) error {
	owner, err := s.store.OwnerOf(ctx, kind, id)
	if err != nil {
		return err
	}
	if owner != userID {
		return store.ErrNotFound
	}
	return nil
}
