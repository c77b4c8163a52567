package budget

import (
	"context"
	"fmt"

	"github.com/dvgamerr/payme/internal/core"
)

// Export assembles the full-account snapshot. Surrogate ids never
// leave the database; categories travel by label so the snapshot can
// be imported into any account.
func (s *Service) Export(ctx context.Context, userID int64) (core.Snapshot, error) {
	u, err := s.store.UserByID(ctx, userID)
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("load user: %w", err)
	}

	templates, err := s.store.FixedExpenses(ctx, userID)
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("load fixed expenses: %w", err)
	}
	categories, err := s.store.Categories(ctx, userID)
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("load categories: %w", err)
	}
	months, err := s.store.Months(ctx, userID)
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("load months: %w", err)
	}

	snap := core.Snapshot{
		Version:           core.SnapshotVersion,
		Savings:           u.Savings,
		RetirementSavings: u.RetirementSavings,
		FixedExpenses:     make([]core.SnapshotFixedExpense, 0, len(templates)),
		Categories:        make([]core.SnapshotCategory, 0, len(categories)),
		Months:            make([]core.SnapshotMonth, 0, len(months)),
	}

	for _, fe := range templates {
		snap.FixedExpenses = append(snap.FixedExpenses, core.SnapshotFixedExpense{
			Label:        fe.Label,
			Amount:       fe.Amount,
			Frequency:    fe.Frequency,
			Currency:     fe.Currency,
			ExchangeRate: fe.ExchangeRate,
			DisplayOrder: fe.DisplayOrder,
		})
	}
	for _, c := range categories {
		snap.Categories = append(snap.Categories, core.SnapshotCategory{
			Label:         c.Label,
			DefaultAmount: c.DefaultAmount,
		})
	}

	for _, m := range months {
		sm := core.SnapshotMonth{
			Year:          m.Year,
			Month:         m.Month,
			IsClosed:      m.IsClosed,
			IncomeEntries: []core.SnapshotIncome{},
			Budgets:       []core.SnapshotBudget{},
			Items:         []core.SnapshotItem{},
		}

		income, err := s.store.IncomeEntries(ctx, m.ID)
		if err != nil {
			return core.Snapshot{}, fmt.Errorf("export income for %d-%02d: %w", m.Year, m.Month, err)
		}
		for _, e := range income {
			sm.IncomeEntries = append(sm.IncomeEntries, core.SnapshotIncome{
				Label:        e.Label,
				Amount:       e.Amount,
				DisplayOrder: e.DisplayOrder,
			})
		}

		budgets, err := s.store.Budgets(ctx, m.ID)
		if err != nil {
			return core.Snapshot{}, fmt.Errorf("export budgets for %d-%02d: %w", m.Year, m.Month, err)
		}
		for _, b := range budgets {
			sm.Budgets = append(sm.Budgets, core.SnapshotBudget{
				CategoryLabel:   b.CategoryLabel,
				AllocatedAmount: b.AllocatedAmount,
			})
		}

		items, err := s.store.Items(ctx, m.ID)
		if err != nil {
			return core.Snapshot{}, fmt.Errorf("export items for %d-%02d: %w", m.Year, m.Month, err)
		}
		for _, it := range items {
			sm.Items = append(sm.Items, core.SnapshotItem{
				CategoryLabel: it.CategoryLabel,
				Description:   it.Description,
				Amount:        it.Amount,
				SpentOn:       it.SpentOn,
			})
		}

		fixed, err := s.store.FixedMonths(ctx, m.ID)
		if err != nil {
			return core.Snapshot{}, fmt.Errorf("export fixed instances for %d-%02d: %w", m.Year, m.Month, err)
		}
		for _, fm := range fixed {
			sm.FixedMonths = append(sm.FixedMonths, core.SnapshotFixedMonth{
				Name:         fm.Name,
				Amount:       fm.Amount,
				DisplayOrder: fm.DisplayOrder,
			})
		}

		snap.Months = append(snap.Months, sm)
	}

	return snap, nil
}

// Import destructively replaces the account's data with the snapshot.
// The replacement is transactional: a snapshot that fails part way
// through leaves the existing data untouched.
func (s *Service) Import(ctx context.Context, userID int64, snap core.Snapshot) error {
	if !snap.Valid() {
		return ErrInvalidSnapshot
	}
	seen := make(map[[2]int]bool, len(snap.Months))
	for _, m := range snap.Months {
		if !core.ValidPeriod(m.Year, m.Month) {
			return ErrInvalidSnapshot
		}
		key := [2]int{m.Year, m.Month}
		if seen[key] {
			return ErrInvalidSnapshot
		}
		seen[key] = true
	}
	if err := s.store.ReplaceUserData(ctx, userID, snap); err != nil {
		return fmt.Errorf("replace user data: %w", err)
	}
	return nil
}
