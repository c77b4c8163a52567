package core

import (
	"errors"
	"math"
	"strings"
	"time"
)

const (
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

// DateLayout is the textual format of spent_on dates. Lexicographic
// order on this layout equals chronological order.
const DateLayout = "2006-01-02"

type (
	// Frequency describes how often a fixed-expense template recurs.
	Frequency string

	User struct {
		ID                int64   `json:"id"`
		Username          string  `json:"username"`
		PasswordHash      string  `json:"-"`
		Savings           float64 `json:"savings"`
		RetirementSavings float64 `json:"retirement_savings"`
	}

	// FixedExpense is a recurring-cost template owned by a user. It is
	// never read by the month summary directly; month creation copies it
	// into a FixedMonth instance with normalization applied.
	FixedExpense struct {
		ID           int64     `json:"id"`
		UserID       int64     `json:"user_id"`
		Label        string    `json:"label"`
		Amount       float64   `json:"amount"`
		Frequency    Frequency `json:"frequency"`
		Currency     string    `json:"currency"`
		ExchangeRate float64   `json:"exchange_rate"`
		DisplayOrder int       `json:"display_order"`
	}

	// FixedMonth is the per-month materialized copy of a FixedExpense.
	// Its amount is already monthly and in the base currency.
	FixedMonth struct {
		ID           int64   `json:"id"`
		UserID       int64   `json:"user_id"`
		MonthID      int64   `json:"month_id"`
		Name         string  `json:"name"`
		Amount       float64 `json:"amount"`
		DisplayOrder int     `json:"display_order"`
	}

	// Month is the aggregation root for one (user, year, month) period.
	Month struct {
		ID       int64   `json:"id"`
		UserID   int64   `json:"user_id"`
		Year     int     `json:"year"`
		Month    int     `json:"month"`
		IsClosed bool    `json:"is_closed"`
		ClosedAt *string `json:"closed_at"`
	}

	IncomeEntry struct {
		ID           int64   `json:"id"`
		MonthID      int64   `json:"month_id"`
		Label        string  `json:"label"`
		Amount       float64 `json:"amount"`
		DisplayOrder int     `json:"display_order"`
	}

	BudgetCategory struct {
		ID            int64   `json:"id"`
		UserID        int64   `json:"user_id"`
		Label         string  `json:"label"`
		DefaultAmount float64 `json:"default_amount"`
	}

	// MonthlyBudget is one category allocation inside a month.
	// SpentAmount is never stored; it is recomputed from items on read.
	MonthlyBudget struct {
		ID              int64   `json:"id"`
		MonthID         int64   `json:"month_id"`
		CategoryID      int64   `json:"category_id"`
		CategoryLabel   string  `json:"category_label"`
		AllocatedAmount float64 `json:"allocated_amount"`
		SpentAmount     float64 `json:"spent_amount"`
	}

	// Item is a single spending record.
	Item struct {
		ID            int64   `json:"id"`
		MonthID       int64   `json:"month_id"`
		CategoryID    int64   `json:"category_id"`
		CategoryLabel string  `json:"category_label"`
		Description   string  `json:"description"`
		Amount        float64 `json:"amount"`
		SpentOn       string  `json:"spent_on"`
	}

	Settings struct {
		BaseCurrency   string `json:"base_currency"`
		CurrencySymbol string `json:"currency_symbol"`
	}
)

var (
	ErrEmptyLabel       = errors.New("label cannot be empty")
	ErrEmptyDescription = errors.New("description cannot be empty")
	ErrInvalidAmount    = errors.New("amount must be a finite number")
	ErrInvalidFrequency = errors.New("frequency must be monthly or yearly")
	ErrInvalidDate      = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidPeriod    = errors.New("month must be between 1 and 12")
)

func (f Frequency) Valid() bool {
	return f == Monthly || f == Yearly
}

func (fe FixedExpense) Validate() error {
	if strings.TrimSpace(fe.Label) == "" {
		return ErrEmptyLabel
	}
	if !fe.Frequency.Valid() {
		return ErrInvalidFrequency
	}
	if !finite(fe.Amount) || !finite(fe.ExchangeRate) {
		return ErrInvalidAmount
	}
	return nil
}

func (it Item) Validate() error {
	if strings.TrimSpace(it.Description) == "" {
		return ErrEmptyDescription
	}
	if !finite(it.Amount) {
		return ErrInvalidAmount
	}
	if _, err := time.Parse(DateLayout, it.SpentOn); err != nil {
		return ErrInvalidDate
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ValidPeriod reports whether (year, month) names a real calendar period.
func ValidPeriod(year, month int) bool {
	return year >= 1900 && year <= 9999 && month >= 1 && month <= 12
}

// PreviousPeriod rolls (year, month) back one calendar month, crossing
// the year boundary at January.
func PreviousPeriod(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}

// LastDayOfMonth computes the final calendar day of (year, month) as
// day zero of the following month.
func LastDayOfMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
