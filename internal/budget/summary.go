package budget

import (
	"context"
	"fmt"

	"github.com/dvgamerr/payme/internal/core"
)

// Summary assembles the full aggregated view of one month: the month
// row, every child collection with labels joined in, and the derived
// totals. A month owned by another user is indistinguishable from a
// missing one.
func (s *Service) Summary(ctx context.Context, monthID, userID int64) (core.Summary, error) {
	m, err := s.ownedMonth(ctx, monthID, userID)
	if err != nil {
		return core.Summary{}, err
	}

	income, err := s.store.IncomeEntries(ctx, m.ID)
	if err != nil {
		return core.Summary{}, fmt.Errorf("load income entries: %w", err)
	}
	fixed, err := s.store.FixedMonths(ctx, m.ID)
	if err != nil {
		return core.Summary{}, fmt.Errorf("load fixed instances: %w", err)
	}
	budgets, err := s.store.Budgets(ctx, m.ID)
	if err != nil {
		return core.Summary{}, fmt.Errorf("load budgets: %w", err)
	}
	items, err := s.store.Items(ctx, m.ID)
	if err != nil {
		return core.Summary{}, fmt.Errorf("load items: %w", err)
	}

	sum := core.Summary{
		Month:         m,
		IncomeEntries: income,
		FixedMonths:   fixed,
		Budgets:       budgets,
		Items:         items,
	}
	sum.ComputeTotals()
	return sum, nil
}
