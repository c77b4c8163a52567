package budget

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dvgamerr/payme/internal/core"
	"github.com/dvgamerr/payme/internal/store"
)

// Months lists the user's months, newest first.
func (s *Service) Months(ctx context.Context, userID int64) ([]core.Month, error) {
	return s.store.Months(ctx, userID)
}

// CurrentMonth returns the summary for the present calendar period,
// creating and seeding the month on first touch.
func (s *Service) CurrentMonth(ctx context.Context, userID int64) (core.Summary, error) {
	now := s.now().UTC()
	m, err := s.GetOrCreateMonth(ctx, userID, now.Year(), int(now.Month()))
	if err != nil {
		return core.Summary{}, err
	}
	return s.Summary(ctx, m.ID, userID)
}

// GetOrCreateMonth finds the (year, month) period or creates it seeded
// from the user's category defaults and fixed-expense templates. Two
// concurrent first touches race on the unique constraint; the loser
// re-fetches the winner's row, so both callers see the same month.
func (s *Service) GetOrCreateMonth(ctx context.Context, userID int64, year, month int) (core.Month, error) {
	if !core.ValidPeriod(year, month) {
		return core.Month{}, core.ErrInvalidPeriod
	}

	m, err := s.store.FindMonth(ctx, userID, year, month)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return core.Month{}, fmt.Errorf("find month: %w", err)
	}

	budgets, fixed, err := s.monthSeeds(ctx, userID)
	if err != nil {
		return core.Month{}, err
	}

	m, err = s.store.CreateMonth(ctx, userID, year, month, budgets, fixed)
	if errors.Is(err, store.ErrAlreadyExists) {
		return s.store.FindMonth(ctx, userID, year, month)
	}
	if err != nil {
		return core.Month{}, fmt.Errorf("create month: %w", err)
	}
	return m, nil
}

// monthSeeds builds the allocations and fixed instances a new month
// starts with. Fixed amounts are normalized here, at copy time: yearly
// templates are divided by twelve and foreign-currency ones multiplied
// by their exchange rate, so the stored instance is already monthly
// and in the base currency.
func (s *Service) monthSeeds(ctx context.Context, userID int64) ([]store.BudgetSeed, []store.FixedMonthSeed, error) {
	categories, err := s.store.Categories(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("load categories: %w", err)
	}
	budgets := make([]store.BudgetSeed, 0, len(categories))
	for _, c := range categories {
		budgets = append(budgets, store.BudgetSeed{CategoryID: c.ID, Allocated: c.DefaultAmount})
	}

	templates, err := s.store.FixedExpenses(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("load fixed expenses: %w", err)
	}
	fixed := make([]store.FixedMonthSeed, 0, len(templates))
	for _, fe := range templates {
		fixed = append(fixed, store.FixedMonthSeed{
			Name:         fe.Label,
			Amount:       core.MonthlyAmount(fe.Amount, fe.Frequency, fe.ExchangeRate),
			DisplayOrder: fe.DisplayOrder,
		})
	}
	return budgets, fixed, nil
}

// CloseMonth marks a month closed. Only the present calendar period
// can be closed, and only on its final day; a second close is a
// conflict, not a no-op, so clients learn their state is stale.
func (s *Service) CloseMonth(ctx context.Context, monthID, userID int64) (core.Month, error) {
	m, err := s.ownedMonth(ctx, monthID, userID)
	if err != nil {
		return core.Month{}, err
	}
	if m.IsClosed {
		return core.Month{}, ErrAlreadyClosed
	}

	now := s.now().UTC()
	if m.Year != now.Year() || m.Month != int(now.Month()) {
		return core.Month{}, ErrNotLastDay
	}
	if now.Day() != core.LastDayOfMonth(m.Year, m.Month) {
		return core.Month{}, ErrNotLastDay
	}

	return s.store.CloseMonth(ctx, monthID, now.Format(time.RFC3339))
}
