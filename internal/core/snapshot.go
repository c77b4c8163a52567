package core

// SnapshotVersion is the only export format version in existence.
const SnapshotVersion = 1

// Snapshot is the versioned full-account export. Surrogate ids are
// never exported; categories are referenced by label, and the import
// rebuilds the label-to-id mapping from the Categories list.
type Snapshot struct {
	Version           int                     `json:"version"`
	Savings           float64                 `json:"savings"`
	RetirementSavings float64                 `json:"retirement_savings"`
	FixedExpenses     []SnapshotFixedExpense  `json:"fixed_expenses"`
	Categories        []SnapshotCategory      `json:"categories"`
	Months            []SnapshotMonth         `json:"months"`
}

type SnapshotFixedExpense struct {
	Label        string    `json:"label"`
	Amount       float64   `json:"amount"`
	Frequency    Frequency `json:"frequency,omitempty"`
	Currency     string    `json:"currency,omitempty"`
	ExchangeRate float64   `json:"exchange_rate,omitempty"`
	DisplayOrder int       `json:"display_order,omitempty"`
}

type SnapshotCategory struct {
	Label         string  `json:"label"`
	DefaultAmount float64 `json:"default_amount"`
}

type SnapshotMonth struct {
	Year          int                  `json:"year"`
	Month         int                  `json:"month"`
	IsClosed      bool                 `json:"is_closed"`
	IncomeEntries []SnapshotIncome     `json:"income_entries"`
	Budgets       []SnapshotBudget     `json:"budgets"`
	Items         []SnapshotItem       `json:"items"`
	FixedMonths   []SnapshotFixedMonth `json:"fixed_months,omitempty"`
}

type SnapshotIncome struct {
	Label        string  `json:"label"`
	Amount       float64 `json:"amount"`
	DisplayOrder int     `json:"display_order,omitempty"`
}

type SnapshotBudget struct {
	CategoryLabel   string  `json:"category_label"`
	AllocatedAmount float64 `json:"allocated_amount"`
}

type SnapshotItem struct {
	CategoryLabel string  `json:"category_label"`
	Description   string  `json:"description"`
	Amount        float64 `json:"amount"`
	SpentOn       string  `json:"spent_on"`
}

type SnapshotFixedMonth struct {
	Name         string  `json:"name"`
	Amount       float64 `json:"amount"`
	DisplayOrder int     `json:"display_order,omitempty"`
}

// Valid reports whether the snapshot carries the required sections of
// a version-1 export.
func (s Snapshot) Valid() bool {
	return s.Version == SnapshotVersion &&
		s.FixedExpenses != nil && s.Categories != nil && s.Months != nil
}
