package budget

import (
	"context"

	"github.com/dvgamerr/payme/internal/core"
)

// AddBudget creates one category allocation in a month. A duplicate
// (month, category) pair surfaces as store.ErrAlreadyExists.
func (s *Service) AddBudget(ctx context.Context, userID int64, b core.MonthlyBudget) (core.MonthlyBudget, error) {
	if _, err := s.ownedMonth(ctx, b.MonthID, userID); err != nil {
		return core.MonthlyBudget{}, err
	}
	if err := s.ownedCategory(ctx, b.CategoryID, userID); err != nil {
		return core.MonthlyBudget{}, err
	}
	created, err := s.store.CreateBudget(ctx, b)
	if err != nil {
		return core.MonthlyBudget{}, err
	}
	return s.store.Budget(ctx, created.ID, b.MonthID)
}

func (s *Service) UpdateBudget(ctx context.Context, userID, monthID, budgetID int64, allocated float64) (core.MonthlyBudget, error) {
	if _, err := s.ownedMonth(ctx, monthID, userID); err != nil {
		return core.MonthlyBudget{}, err
	}
	if _, err := s.store.Budget(ctx, budgetID, monthID); err != nil {
		return core.MonthlyBudget{}, err
	}
	if err := s.store.UpdateBudget(ctx, budgetID, allocated); err != nil {
		return core.MonthlyBudget{}, err
	}
	return s.store.Budget(ctx, budgetID, monthID)
}

func (s *Service) DeleteBudget(ctx context.Context, userID, monthID, budgetID int64) error {
	if _, err := s.ownedMonth(ctx, monthID, userID); err != nil {
		return err
	}
	if _, err := s.store.Budget(ctx, budgetID, monthID); err != nil {
		return err
	}
	return s.store.DeleteBudget(ctx, budgetID)
}
