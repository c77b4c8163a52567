package core

import "github.com/shopspring/decimal"

// Summary is the consistent financial snapshot of one month.
type Summary struct {
	Month         Month           `json:"month"`
	IncomeEntries []IncomeEntry   `json:"income_entries"`
	FixedMonths   []FixedMonth    `json:"fixed_months"`
	Budgets       []MonthlyBudget `json:"budgets"`
	Items         []Item          `json:"items"`
	TotalIncome   float64         `json:"total_income"`
	TotalFixed    float64         `json:"total_fixed"`
	TotalBudgeted float64         `json:"total_budgeted"`
	TotalSpent    float64         `json:"total_spent"`
	Remaining     float64         `json:"remaining"`
}

// ComputeTotals fills the five derived figures from the already-loaded
// child slices. Remaining is income plus fixed minus spent; fixed-month
// amounts are already normalized, so they carry no frequency or
// currency information at this point.
func (s *Summary) ComputeTotals() {
	income := decimal.Zero
	for _, e := range s.IncomeEntries {
		income = income.Add(decimal.NewFromFloat(e.Amount))
	}
	fixed := decimal.Zero
	for _, f := range s.FixedMonths {
		fixed = fixed.Add(decimal.NewFromFloat(f.Amount))
	}
	budgeted := decimal.Zero
	for _, b := range s.Budgets {
		budgeted = budgeted.Add(decimal.NewFromFloat(b.AllocatedAmount))
	}
	spent := decimal.Zero
	for _, it := range s.Items {
		spent = spent.Add(decimal.NewFromFloat(it.Amount))
	}

	s.TotalIncome, _ = income.Float64()
	s.TotalFixed, _ = fixed.Float64()
	s.TotalBudgeted, _ = budgeted.Float64()
	s.TotalSpent, _ = spent.Float64()
	s.Remaining, _ = income.Add(fixed).Sub(spent).Float64()
}

// CategoryComparison is one row of the current-vs-previous month
// spending report. ChangePercent is null when the previous month had
// no spending in the category.
type CategoryComparison struct {
	CategoryID         int64    `json:"category_id"`
	CategoryLabel      string   `json:"category_label"`
	CurrentMonthSpent  float64  `json:"current_month_spent"`
	PreviousMonthSpent float64  `json:"previous_month_spent"`
	ChangeAmount       float64  `json:"change_amount"`
	ChangePercent      *float64 `json:"change_percent"`
}

// MonthlyTrend is one month of the rolling trend report.
type MonthlyTrend struct {
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	TotalIncome float64 `json:"total_income"`
	TotalSpent  float64 `json:"total_spent"`
	TotalFixed  float64 `json:"total_fixed"`
	Net         float64 `json:"net"`
}

// Stats is the full statistics response.
type Stats struct {
	CategoryComparisons    []CategoryComparison `json:"category_comparisons"`
	MonthlyTrends          []MonthlyTrend       `json:"monthly_trends"`
	AverageMonthlySpending float64              `json:"average_monthly_spending"`
	AverageMonthlyIncome   float64              `json:"average_monthly_income"`
}

// NewComparison builds one comparison row from the two monthly figures.
func NewComparison(categoryID int64, label string, current, previous float64) CategoryComparison {
	change, _ := decimal.NewFromFloat(current).Sub(decimal.NewFromFloat(previous)).Float64()
	return CategoryComparison{
		CategoryID:         categoryID,
		CategoryLabel:      label,
		CurrentMonthSpent:  current,
		PreviousMonthSpent: previous,
		ChangeAmount:       change,
		ChangePercent:      ChangePercent(current, previous),
	}
}

// NewTrend builds one trend row; net is income minus spent minus fixed.
func NewTrend(year, month int, income, spent, fixed float64) MonthlyTrend {
	net, _ := decimal.NewFromFloat(income).
		Sub(decimal.NewFromFloat(spent)).
		Sub(decimal.NewFromFloat(fixed)).
		Float64()
	return MonthlyTrend{
		Year:        year,
		Month:       month,
		TotalIncome: income,
		TotalSpent:  spent,
		TotalFixed:  fixed,
		Net:         net,
	}
}
