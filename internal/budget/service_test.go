package budget_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvgamerr/payme/internal/budget"
	"github.com/dvgamerr/payme/internal/core"
	"github.com/dvgamerr/payme/internal/store"
	"github.com/dvgamerr/payme/internal/store/sqlstore"
)

func newTestStore(t *testing.T) *sqlstore.Store {
	t.Helper()
	st, err := sqlstore.Open(sqlstore.SQLite(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func newTestUser(t *testing.T, st *sqlstore.Store, username string) int64 {
	t.Helper()
	u, err := st.CreateUser(context.Background(), username, "x")
	require.NoError(t, err)
	return u.ID
}

func fixedClock(year, month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC)
	}
}

func seedCatalog(t *testing.T, st *sqlstore.Store, userID int64) (food, transport core.BudgetCategory) {
	t.Helper()
	ctx := context.Background()
	var err error
	food, err = st.CreateCategory(ctx, core.BudgetCategory{UserID: userID, Label: "Food", DefaultAmount: 400})
	require.NoError(t, err)
	transport, err = st.CreateCategory(ctx, core.BudgetCategory{UserID: userID, Label: "Transport", DefaultAmount: 150})
	require.NoError(t, err)
	return food, transport
}

func TestGetOrCreateMonthSeedsFromCatalog(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	userID := newTestUser(t, st, "alice")
	svc := budget.NewService(st)

	seedCatalog(t, st, userID)
	_, err := st.CreateFixedExpense(ctx, core.FixedExpense{
		UserID: userID, Label: "Rent", Amount: 800, Frequency: core.Monthly, ExchangeRate: 1,
	})
	require.NoError(t, err)
	_, err = st.CreateFixedExpense(ctx, core.FixedExpense{
		UserID: userID, Label: "Insurance", Amount: 12000, Frequency: core.Yearly, ExchangeRate: 1, DisplayOrder: 1,
	})
	require.NoError(t, err)
	_, err = st.CreateFixedExpense(ctx, core.FixedExpense{
		UserID: userID, Label: "VPN", Amount: 100, Frequency: core.Monthly, Currency: "USD", ExchangeRate: 2, DisplayOrder: 2,
	})
	require.NoError(t, err)

	m, err := svc.GetOrCreateMonth(ctx, userID, 2024, 3)
	require.NoError(t, err)

	sum, err := svc.Summary(ctx, m.ID, userID)
	require.NoError(t, err)

	require.Len(t, sum.Budgets, 2)
	assert.Equal(t, "Food", sum.Budgets[0].CategoryLabel)
	assert.Equal(t, 400.0, sum.Budgets[0].AllocatedAmount)
	assert.Equal(t, 0.0, sum.Budgets[0].SpentAmount, "zero-spend allocations report zero, not absence")
	assert.Equal(t, "Transport", sum.Budgets[1].CategoryLabel)

	require.Len(t, sum.FixedMonths, 3)
	assert.Equal(t, "Rent", sum.FixedMonths[0].Name)
	assert.Equal(t, 800.0, sum.FixedMonths[0].Amount)
	assert.Equal(t, 1000.0, sum.FixedMonths[1].Amount, "yearly amount amortized to monthly")
	assert.Equal(t, 200.0, sum.FixedMonths[2].Amount, "exchange rate applied at copy time")

	assert.InDelta(t, 2000, sum.TotalFixed, 1e-9)
}

func TestGetOrCreateMonthIsIdempotent(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	userID := newTestUser(t, st, "alice")
	svc := budget.NewService(st)
	seedCatalog(t, st, userID)

	first, err := svc.GetOrCreateMonth(ctx, userID, 2024, 3)
	require.NoError(t, err)

	// A category added after the month exists must not retroactively
	// appear in it.
	_, err = st.CreateCategory(ctx, core.BudgetCategory{UserID: userID, Label: "Travel", DefaultAmount: 300})
	require.NoError(t, err)

	second, err := svc.GetOrCreateMonth(ctx, userID, 2024, 3)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	sum, err := svc.Summary(ctx, first.ID, userID)
	require.NoError(t, err)
	assert.Len(t, sum.Budgets, 2, "month keeps its creation-time snapshot")
}

func TestGetOrCreateMonthConcurrent(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	userID := newTestUser(t, st, "alice")
	svc := budget.NewService(st)
	seedCatalog(t, st, userID)

	// Racing callers both insert; the loser's unique-constraint hit
	// resolves by re-fetching the winner's row.
	const callers = 8
	ids := make([]int64, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m, err := svc.GetOrCreateMonth(ctx, userID, 2024, 3)
			ids[i], errs[i] = m.ID, err
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i], "every caller must see the same month")
	}

	months, err := svc.Months(ctx, userID)
	require.NoError(t, err)
	require.Len(t, months, 1)

	sum, err := svc.Summary(ctx, ids[0], userID)
	require.NoError(t, err)
	assert.Len(t, sum.Budgets, 2, "seeding ran exactly once")
}

func TestGetOrCreateMonthRejectsInvalidPeriod(t *testing.T) {
	st := newTestStore(t)
	userID := newTestUser(t, st, "alice")
	svc := budget.NewService(st)

	_, err := svc.GetOrCreateMonth(context.Background(), userID, 2024, 13)
	assert.ErrorIs(t, err, core.ErrInvalidPeriod)
	_, err = svc.GetOrCreateMonth(context.Background(), userID, 2024, 0)
	assert.ErrorIs(t, err, core.ErrInvalidPeriod)
}

func TestSummaryTotals(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	userID := newTestUser(t, st, "alice")
	svc := budget.NewService(st)
	food, _ := seedCatalog(t, st, userID)

	m, err := svc.GetOrCreateMonth(ctx, userID, 2024, 3)
	require.NoError(t, err)

	_, err = svc.AddIncome(ctx, userID, core.IncomeEntry{MonthID: m.ID, Label: "Salary", Amount: 2000})
	require.NoError(t, err)
	_, err = svc.AddFixedMonth(ctx, userID, core.FixedMonth{MonthID: m.ID, Name: "Rent", Amount: 850})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, userID, core.Item{
		MonthID: m.ID, CategoryID: food.ID, Description: "Groceries", Amount: 100, SpentOn: "2024-03-05",
	})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, userID, core.Item{
		MonthID: m.ID, CategoryID: food.ID, Description: "Restaurant", Amount: 50, SpentOn: "2024-03-10",
	})
	require.NoError(t, err)

	sum, err := svc.Summary(ctx, m.ID, userID)
	require.NoError(t, err)

	assert.Equal(t, 2000.0, sum.TotalIncome)
	assert.Equal(t, 850.0, sum.TotalFixed)
	assert.Equal(t, 150.0, sum.TotalSpent)
	assert.Equal(t, 2700.0, sum.Remaining)

	// Items are newest first.
	require.Len(t, sum.Items, 2)
	assert.Equal(t, "Restaurant", sum.Items[0].Description)
	assert.Equal(t, "Food", sum.Items[0].CategoryLabel)

	// Per-category spent is aggregated into the allocation row.
	assert.Equal(t, 150.0, sum.Budgets[0].SpentAmount)
	assert.Equal(t, 0.0, sum.Budgets[1].SpentAmount)
}

func TestSummaryHidesForeignMonths(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	alice := newTestUser(t, st, "alice")
	bob := newTestUser(t, st, "bob")
	svc := budget.NewService(st)

	m, err := svc.GetOrCreateMonth(ctx, alice, 2024, 3)
	require.NoError(t, err)

	_, err = svc.Summary(ctx, m.ID, bob)
	assert.ErrorIs(t, err, store.ErrNotFound, "foreign months look missing, not forbidden")
}

func TestCloseMonthDateRules(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	userID := newTestUser(t, st, "alice")
	svc := budget.NewService(st).WithClock(fixedClock(2024, 3, 15))

	m, err := svc.GetOrCreateMonth(ctx, userID, 2024, 3)
	require.NoError(t, err)

	_, err = svc.CloseMonth(ctx, m.ID, userID)
	assert.ErrorIs(t, err, budget.ErrNotLastDay, "mid-month close is rejected")

	svc.WithClock(fixedClock(2024, 3, 31))
	closed, err := svc.CloseMonth(ctx, m.ID, userID)
	require.NoError(t, err)
	assert.True(t, closed.IsClosed)
	require.NotNil(t, closed.ClosedAt)

	_, err = svc.CloseMonth(ctx, m.ID, userID)
	assert.ErrorIs(t, err, budget.ErrAlreadyClosed)
}

func TestCloseMonthRejectsOtherPeriods(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	userID := newTestUser(t, st, "alice")
	svc := budget.NewService(st).WithClock(fixedClock(2024, 3, 31))

	feb, err := svc.GetOrCreateMonth(ctx, userID, 2024, 2)
	require.NoError(t, err)

	_, err = svc.CloseMonth(ctx, feb.ID, userID)
	assert.ErrorIs(t, err, budget.ErrNotLastDay, "only the current period can be closed")
}

func TestClosedMonthStillAcceptsItems(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	userID := newTestUser(t, st, "alice")
	svc := budget.NewService(st).WithClock(fixedClock(2024, 3, 31))
	food, _ := seedCatalog(t, st, userID)

	m, err := svc.GetOrCreateMonth(ctx, userID, 2024, 3)
	require.NoError(t, err)
	_, err = svc.CloseMonth(ctx, m.ID, userID)
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, userID, core.Item{
		MonthID: m.ID, CategoryID: food.ID, Description: "Late receipt", Amount: 12, SpentOn: "2024-03-31",
	})
	assert.NoError(t, err, "closing marks the month, it does not freeze it")
}

func TestCopyIncomeFromPrevious(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	userID := newTestUser(t, st, "alice")
	svc := budget.NewService(st)

	feb, err := svc.GetOrCreateMonth(ctx, userID, 2024, 2)
	require.NoError(t, err)
	_, err = svc.AddIncome(ctx, userID, core.IncomeEntry{MonthID: feb.ID, Label: "Salary", Amount: 2000})
	require.NoError(t, err)
	_, err = svc.AddIncome(ctx, userID, core.IncomeEntry{MonthID: feb.ID, Label: "Freelance", Amount: 500})
	require.NoError(t, err)

	mar, err := svc.GetOrCreateMonth(ctx, userID, 2024, 3)
	require.NoError(t, err)

	n, err := svc.CopyIncomeFromPrevious(ctx, userID, mar.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	entries, err := st.IncomeEntries(ctx, mar.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Salary", entries[0].Label)
	assert.Equal(t, 2000.0, entries[0].Amount)
}

func TestCopyIncomeWithoutPreviousMonth(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	userID := newTestUser(t, st, "alice")
	svc := budget.NewService(st)

	jan, err := svc.GetOrCreateMonth(ctx, userID, 2024, 1)
	require.NoError(t, err)

	n, err := svc.CopyIncomeFromPrevious(ctx, userID, jan.ID)
	require.NoError(t, err)
	assert.Zero(t, n, "no previous month copies nothing")
}

func TestCopyIncomeCrossesYearBoundary(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	userID := newTestUser(t, st, "alice")
	svc := budget.NewService(st)

	dec, err := svc.GetOrCreateMonth(ctx, userID, 2023, 12)
	require.NoError(t, err)
	_, err = svc.AddIncome(ctx, userID, core.IncomeEntry{MonthID: dec.ID, Label: "Salary", Amount: 1800})
	require.NoError(t, err)

	jan, err := svc.GetOrCreateMonth(ctx, userID, 2024, 1)
	require.NoError(t, err)

	n, err := svc.CopyIncomeFromPrevious(ctx, userID, jan.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestAddBudgetRejectsDuplicateCategory(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	userID := newTestUser(t, st, "alice")
	svc := budget.NewService(st)
	food, _ := seedCatalog(t, st, userID)

	m, err := svc.GetOrCreateMonth(ctx, userID, 2024, 3)
	require.NoError(t, err)

	_, err = svc.AddBudget(ctx, userID, core.MonthlyBudget{
		MonthID: m.ID, CategoryID: food.ID, AllocatedAmount: 100,
	})
	assert.ErrorIs(t, err, store.ErrAlreadyExists, "seeding already allocated this category")
}

func TestMoveItemBetweenOwnMonths(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	alice := newTestUser(t, st, "alice")
	bob := newTestUser(t, st, "bob")
	svc := budget.NewService(st)
	food, _ := seedCatalog(t, st, alice)

	mar, err := svc.GetOrCreateMonth(ctx, alice, 2024, 3)
	require.NoError(t, err)
	apr, err := svc.GetOrCreateMonth(ctx, alice, 2024, 4)
	require.NoError(t, err)
	bobMonth, err := svc.GetOrCreateMonth(ctx, bob, 2024, 3)
	require.NoError(t, err)

	it, err := svc.AddItem(ctx, alice, core.Item{
		MonthID: mar.ID, CategoryID: food.ID, Description: "Groceries", Amount: 30, SpentOn: "2024-03-29",
	})
	require.NoError(t, err)

	_, err = svc.MoveItem(ctx, alice, mar.ID, it.ID, bobMonth.ID)
	assert.ErrorIs(t, err, store.ErrNotFound, "cannot move into a foreign month")

	moved, err := svc.MoveItem(ctx, alice, mar.ID, it.ID, apr.ID)
	require.NoError(t, err)
	assert.Equal(t, apr.ID, moved.MonthID)
	assert.Equal(t, "Groceries", moved.Description)

	marItems, err := st.Items(ctx, mar.ID)
	require.NoError(t, err)
	assert.Empty(t, marItems)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	userID := newTestUser(t, st, "alice")
	svc := budget.NewService(st).WithClock(fixedClock(2024, 3, 15))
	food, transport := seedCatalog(t, st, userID)

	feb, err := svc.GetOrCreateMonth(ctx, userID, 2024, 2)
	require.NoError(t, err)
	mar, err := svc.GetOrCreateMonth(ctx, userID, 2024, 3)
	require.NoError(t, err)

	_, err = svc.AddIncome(ctx, userID, core.IncomeEntry{MonthID: feb.ID, Label: "Salary", Amount: 2000})
	require.NoError(t, err)
	_, err = svc.AddIncome(ctx, userID, core.IncomeEntry{MonthID: mar.ID, Label: "Salary", Amount: 2200})
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, userID, core.Item{MonthID: feb.ID, CategoryID: food.ID, Description: "Groceries", Amount: 100, SpentOn: "2024-02-10"})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, userID, core.Item{MonthID: mar.ID, CategoryID: food.ID, Description: "Groceries", Amount: 150, SpentOn: "2024-03-10"})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, userID, core.Item{MonthID: mar.ID, CategoryID: transport.ID, Description: "Fuel", Amount: 60, SpentOn: "2024-03-12"})
	require.NoError(t, err)

	stats, err := svc.Stats(ctx, userID)
	require.NoError(t, err)

	require.Len(t, stats.CategoryComparisons, 2)
	foodCmp := stats.CategoryComparisons[0]
	assert.Equal(t, "Food", foodCmp.CategoryLabel)
	assert.Equal(t, 150.0, foodCmp.CurrentMonthSpent)
	assert.Equal(t, 100.0, foodCmp.PreviousMonthSpent)
	require.NotNil(t, foodCmp.ChangePercent)
	assert.InDelta(t, 50, *foodCmp.ChangePercent, 1e-6)

	transportCmp := stats.CategoryComparisons[1]
	assert.Equal(t, 60.0, transportCmp.CurrentMonthSpent)
	assert.Nil(t, transportCmp.ChangePercent, "no previous spending means undefined change")

	require.Len(t, stats.MonthlyTrends, 2)
	assert.Equal(t, 2, stats.MonthlyTrends[0].Month, "trends read oldest to newest")
	assert.Equal(t, 3, stats.MonthlyTrends[1].Month)
	assert.Equal(t, 2200.0, stats.MonthlyTrends[1].TotalIncome)
	assert.Equal(t, 210.0, stats.MonthlyTrends[1].TotalSpent)
	assert.Equal(t, 1990.0, stats.MonthlyTrends[1].Net)

	assert.InDelta(t, 2100, stats.AverageMonthlyIncome, 1e-9)
	assert.InDelta(t, 155, stats.AverageMonthlySpending, 1e-9)
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	alice := newTestUser(t, st, "alice")
	svc := budget.NewService(st)
	food, _ := seedCatalog(t, st, alice)

	require.NoError(t, svc.UpdateSavings(ctx, alice, 10000))
	require.NoError(t, svc.UpdateRetirementSavings(ctx, alice, 25000))
	_, err := st.CreateFixedExpense(ctx, core.FixedExpense{
		UserID: alice, Label: "Rent", Amount: 800, Frequency: core.Monthly, ExchangeRate: 1,
	})
	require.NoError(t, err)

	m, err := svc.GetOrCreateMonth(ctx, alice, 2024, 3)
	require.NoError(t, err)
	_, err = svc.AddIncome(ctx, alice, core.IncomeEntry{MonthID: m.ID, Label: "Salary", Amount: 2000})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, alice, core.Item{
		MonthID: m.ID, CategoryID: food.ID, Description: "Groceries", Amount: 75.5, SpentOn: "2024-03-08",
	})
	require.NoError(t, err)

	first, err := svc.Export(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, core.SnapshotVersion, first.Version)
	assert.Equal(t, 10000.0, first.Savings)
	require.Len(t, first.Months, 1)
	require.Len(t, first.Months[0].Items, 1)
	assert.Equal(t, "Food", first.Months[0].Items[0].CategoryLabel)

	bob := newTestUser(t, st, "bob")
	require.NoError(t, svc.Import(ctx, bob, first))

	second, err := svc.Export(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, first, second, "import then export reproduces the snapshot")
}

func TestImportReplacesExistingData(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	userID := newTestUser(t, st, "alice")
	svc := budget.NewService(st)
	seedCatalog(t, st, userID)

	_, err := svc.GetOrCreateMonth(ctx, userID, 2024, 1)
	require.NoError(t, err)
	_, err = svc.GetOrCreateMonth(ctx, userID, 2024, 2)
	require.NoError(t, err)

	snap := core.Snapshot{
		Version:       core.SnapshotVersion,
		Savings:       500,
		FixedExpenses: []core.SnapshotFixedExpense{},
		Categories:    []core.SnapshotCategory{{Label: "Everything", DefaultAmount: 100}},
		Months: []core.SnapshotMonth{{
			Year: 2025, Month: 1,
			IncomeEntries: []core.SnapshotIncome{{Label: "Salary", Amount: 3000}},
			Budgets:       []core.SnapshotBudget{{CategoryLabel: "Everything", AllocatedAmount: 100}},
			Items:         []core.SnapshotItem{},
		}},
	}
	require.NoError(t, svc.Import(ctx, userID, snap))

	months, err := svc.Months(ctx, userID)
	require.NoError(t, err)
	require.Len(t, months, 1, "old months are gone")
	assert.Equal(t, 2025, months[0].Year)

	cats, err := svc.Categories(ctx, userID)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Everything", cats[0].Label)
}

func TestImportDropsUnknownCategoryLabels(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	userID := newTestUser(t, st, "alice")
	svc := budget.NewService(st)

	snap := core.Snapshot{
		Version:       core.SnapshotVersion,
		FixedExpenses: []core.SnapshotFixedExpense{},
		Categories:    []core.SnapshotCategory{{Label: "Food"}},
		Months: []core.SnapshotMonth{{
			Year: 2024, Month: 3,
			IncomeEntries: []core.SnapshotIncome{},
			Budgets: []core.SnapshotBudget{
				{CategoryLabel: "Food", AllocatedAmount: 400},
				{CategoryLabel: "Ghost", AllocatedAmount: 100},
			},
			Items: []core.SnapshotItem{
				{CategoryLabel: "Ghost", Description: "Orphan", Amount: 10, SpentOn: "2024-03-01"},
			},
		}},
	}
	require.NoError(t, svc.Import(ctx, userID, snap))

	months, err := svc.Months(ctx, userID)
	require.NoError(t, err)
	require.Len(t, months, 1)

	budgets, err := st.Budgets(ctx, months[0].ID)
	require.NoError(t, err)
	require.Len(t, budgets, 1, "unknown labels are dropped silently")
	assert.Equal(t, "Food", budgets[0].CategoryLabel)

	items, err := st.Items(ctx, months[0].ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestImportRejectsInvalidSnapshots(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	userID := newTestUser(t, st, "alice")
	svc := budget.NewService(st)

	err := svc.Import(ctx, userID, core.Snapshot{Version: 2})
	assert.ErrorIs(t, err, budget.ErrInvalidSnapshot)

	dup := core.Snapshot{
		Version:       core.SnapshotVersion,
		FixedExpenses: []core.SnapshotFixedExpense{},
		Categories:    []core.SnapshotCategory{},
		Months: []core.SnapshotMonth{
			{Year: 2024, Month: 3},
			{Year: 2024, Month: 3},
		},
	}
	err = svc.Import(ctx, userID, dup)
	assert.ErrorIs(t, err, budget.ErrInvalidSnapshot, "duplicate periods are rejected up front")

	badPeriod := core.Snapshot{
		Version:       core.SnapshotVersion,
		FixedExpenses: []core.SnapshotFixedExpense{},
		Categories:    []core.SnapshotCategory{},
		Months:        []core.SnapshotMonth{{Year: 2024, Month: 13}},
	}
	err = svc.Import(ctx, userID, badPeriod)
	assert.ErrorIs(t, err, budget.ErrInvalidSnapshot)
}
