package budget

import (
	"context"
	"fmt"

	"github.com/dvgamerr/payme/internal/core"
)

// trendWindow is how many recent months the trend report covers.
const trendWindow = 12

// Stats builds the statistics report for the present calendar period:
// per-category spending compared against the previous month, the
// recent monthly trend, and the averages over that window. Each block
// comes from one grouped query, regardless of how many categories or
// months the user has.
func (s *Service) Stats(ctx context.Context, userID int64) (core.Stats, error) {
	now := s.now().UTC()
	year, month := now.Year(), int(now.Month())
	prevYear, prevMonth := core.PreviousPeriod(year, month)

	categories, err := s.store.Categories(ctx, userID)
	if err != nil {
		return core.Stats{}, fmt.Errorf("load categories: %w", err)
	}
	current, err := s.store.SpentByCategory(ctx, userID, year, month)
	if err != nil {
		return core.Stats{}, fmt.Errorf("current month totals: %w", err)
	}
	previous, err := s.store.SpentByCategory(ctx, userID, prevYear, prevMonth)
	if err != nil {
		return core.Stats{}, fmt.Errorf("previous month totals: %w", err)
	}

	comparisons := make([]core.CategoryComparison, 0, len(categories))
	for _, c := range categories {
		comparisons = append(comparisons,
			core.NewComparison(c.ID, c.Label, current[c.ID], previous[c.ID]))
	}

	rows, err := s.store.TrendRows(ctx, userID, trendWindow)
	if err != nil {
		return core.Stats{}, fmt.Errorf("trend rows: %w", err)
	}

	// Rows arrive newest first; the report reads left to right.
	trends := make([]core.MonthlyTrend, 0, len(rows))
	incomes := make([]float64, 0, len(rows))
	spendings := make([]float64, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		r := rows[i]
		trends = append(trends, core.NewTrend(r.Year, r.Month, r.Income, r.Spent, r.Fixed))
		incomes = append(incomes, r.Income)
		spendings = append(spendings, r.Spent)
	}

	return core.Stats{
		CategoryComparisons:    comparisons,
		MonthlyTrends:          trends,
		AverageMonthlySpending: core.Mean(spendings),
		AverageMonthlyIncome:   core.Mean(incomes),
	}, nil
}
