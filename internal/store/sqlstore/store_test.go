package sqlstore_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvgamerr/payme/internal/core"
	"github.com/dvgamerr/payme/internal/store"
	"github.com/dvgamerr/payme/internal/store/sqlstore"
)

func openStore(t *testing.T) *sqlstore.Store {
	t.Helper()
	st, err := sqlstore.Open(sqlstore.SQLite(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func rfc3339(tm time.Time) string {
	return tm.UTC().Format(time.RFC3339)
}

func TestCreateUserRejectsDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)

	u, err := st.CreateUser(ctx, "alice", "hash")
	require.NoError(t, err)
	assert.NotZero(t, u.ID)

	_, err = st.CreateUser(ctx, "alice", "other-hash")
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestUserLookups(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)

	created, err := st.CreateUser(ctx, "alice", "hash")
	require.NoError(t, err)

	byName, err := st.UserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)
	assert.Equal(t, "hash", byName.PasswordHash)

	_, err = st.UserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.UserByID(ctx, created.ID+1)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	u, err := st.CreateUser(ctx, "alice", "hash")
	require.NoError(t, err)

	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	require.NoError(t, st.CreateSession(ctx, "live", u.ID, rfc3339(now.Add(time.Hour))))
	require.NoError(t, st.CreateSession(ctx, "expired", u.ID, rfc3339(now.Add(-time.Hour))))

	got, err := st.SessionUser(ctx, "live", rfc3339(now))
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = st.SessionUser(ctx, "expired", rfc3339(now))
	assert.ErrorIs(t, err, store.ErrNotFound, "expired sessions look missing")

	_, err = st.SessionUser(ctx, "unknown", rfc3339(now))
	assert.ErrorIs(t, err, store.ErrNotFound)

	n, err := st.DeleteExpiredSessions(ctx, rfc3339(now))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, st.DeleteSession(ctx, "live"))
	_, err = st.SessionUser(ctx, "live", rfc3339(now))
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateMonthSeedsAndDuplicates(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	u, err := st.CreateUser(ctx, "alice", "hash")
	require.NoError(t, err)
	cat, err := st.CreateCategory(ctx, core.BudgetCategory{UserID: u.ID, Label: "Food", DefaultAmount: 400})
	require.NoError(t, err)

	m, err := st.CreateMonth(ctx, u.ID, 2024, 3,
		[]store.BudgetSeed{{CategoryID: cat.ID, Allocated: 400}},
		[]store.FixedMonthSeed{{Name: "Rent", Amount: 800}})
	require.NoError(t, err)
	assert.False(t, m.IsClosed)
	assert.Nil(t, m.ClosedAt)

	budgets, err := st.Budgets(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.Equal(t, 400.0, budgets[0].AllocatedAmount)

	fixed, err := st.FixedMonths(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, fixed, 1)
	assert.Equal(t, "Rent", fixed[0].Name)

	_, err = st.CreateMonth(ctx, u.ID, 2024, 3, nil, nil)
	assert.ErrorIs(t, err, store.ErrAlreadyExists)

	// The failed insert must not leave partial seed rows behind.
	budgets, err = st.Budgets(ctx, m.ID)
	require.NoError(t, err)
	assert.Len(t, budgets, 1)
}

func TestCloseMonth(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	u, err := st.CreateUser(ctx, "alice", "hash")
	require.NoError(t, err)
	m, err := st.CreateMonth(ctx, u.ID, 2024, 3, nil, nil)
	require.NoError(t, err)

	closedAt := "2024-03-31T23:59:00Z"
	closed, err := st.CloseMonth(ctx, m.ID, closedAt)
	require.NoError(t, err)
	assert.True(t, closed.IsClosed)
	require.NotNil(t, closed.ClosedAt)
	assert.Equal(t, closedAt, *closed.ClosedAt)

	_, err = st.CloseMonth(ctx, m.ID+1, closedAt)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestOwnerOf(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	u, err := st.CreateUser(ctx, "alice", "hash")
	require.NoError(t, err)
	m, err := st.CreateMonth(ctx, u.ID, 2024, 3, nil, nil)
	require.NoError(t, err)
	cat, err := st.CreateCategory(ctx, core.BudgetCategory{UserID: u.ID, Label: "Food"})
	require.NoError(t, err)

	owner, err := st.OwnerOf(ctx, store.KindMonth, m.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, owner)

	owner, err = st.OwnerOf(ctx, store.KindCategory, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, owner)

	_, err = st.OwnerOf(ctx, store.KindMonth, m.ID+999)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestBudgetsAggregateSpending(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	u, err := st.CreateUser(ctx, "alice", "hash")
	require.NoError(t, err)
	cat, err := st.CreateCategory(ctx, core.BudgetCategory{UserID: u.ID, Label: "Food", DefaultAmount: 400})
	require.NoError(t, err)
	m, err := st.CreateMonth(ctx, u.ID, 2024, 3,
		[]store.BudgetSeed{{CategoryID: cat.ID, Allocated: 400}}, nil)
	require.NoError(t, err)

	_, err = st.CreateItem(ctx, core.Item{MonthID: m.ID, CategoryID: cat.ID, Description: "Groceries", Amount: 60, SpentOn: "2024-03-02"})
	require.NoError(t, err)
	_, err = st.CreateItem(ctx, core.Item{MonthID: m.ID, CategoryID: cat.ID, Description: "Market", Amount: 25.5, SpentOn: "2024-03-09"})
	require.NoError(t, err)

	budgets, err := st.Budgets(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.Equal(t, "Food", budgets[0].CategoryLabel)
	assert.InDelta(t, 85.5, budgets[0].SpentAmount, 1e-9)
}

func TestCreateBudgetRejectsDuplicatePair(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	u, err := st.CreateUser(ctx, "alice", "hash")
	require.NoError(t, err)
	cat, err := st.CreateCategory(ctx, core.BudgetCategory{UserID: u.ID, Label: "Food"})
	require.NoError(t, err)
	m, err := st.CreateMonth(ctx, u.ID, 2024, 3, nil, nil)
	require.NoError(t, err)

	_, err = st.CreateBudget(ctx, core.MonthlyBudget{MonthID: m.ID, CategoryID: cat.ID, AllocatedAmount: 100})
	require.NoError(t, err)
	_, err = st.CreateBudget(ctx, core.MonthlyBudget{MonthID: m.ID, CategoryID: cat.ID, AllocatedAmount: 200})
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestReorderFixedExpenses(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	u, err := st.CreateUser(ctx, "alice", "hash")
	require.NoError(t, err)

	var ids []int64
	for i, label := range []string{"Rent", "Insurance", "VPN"} {
		fe, err := st.CreateFixedExpense(ctx, core.FixedExpense{
			UserID: u.ID, Label: label, Amount: 100, Frequency: core.Monthly, ExchangeRate: 1, DisplayOrder: i,
		})
		require.NoError(t, err)
		ids = append(ids, fe.ID)
	}

	require.NoError(t, st.ReorderFixedExpenses(ctx, u.ID, []int64{ids[2], ids[0], ids[1]}))

	got, err := st.FixedExpenses(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "VPN", got[0].Label)
	assert.Equal(t, "Rent", got[1].Label)
	assert.Equal(t, "Insurance", got[2].Label)
}

func TestUpdatesOnMissingRowsReturnNotFound(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)

	err := st.DeleteItem(ctx, 12345)
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = st.UpdateBudget(ctx, 12345, 100)
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = st.DeleteCategory(ctx, 12345)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpsertSettings(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	u, err := st.CreateUser(ctx, "alice", "hash")
	require.NoError(t, err)

	_, ok, err := st.Settings(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, ok, "no settings row until first save")

	require.NoError(t, st.UpsertSettings(ctx, u.ID, core.Settings{BaseCurrency: "USD", CurrencySymbol: "$"}))
	got, ok, err := st.Settings(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "USD", got.BaseCurrency)

	require.NoError(t, st.UpsertSettings(ctx, u.ID, core.Settings{BaseCurrency: "GBP", CurrencySymbol: "£"}))
	got, ok, err = st.Settings(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "GBP", got.BaseCurrency, "second save overwrites, not duplicates")
}

func TestDeletingUserCascades(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	u, err := st.CreateUser(ctx, "alice", "hash")
	require.NoError(t, err)
	cat, err := st.CreateCategory(ctx, core.BudgetCategory{UserID: u.ID, Label: "Food"})
	require.NoError(t, err)
	m, err := st.CreateMonth(ctx, u.ID, 2024, 3,
		[]store.BudgetSeed{{CategoryID: cat.ID, Allocated: 100}}, nil)
	require.NoError(t, err)

	// Deleting the category must cascade through its allocations.
	require.NoError(t, st.DeleteCategory(ctx, cat.ID))
	budgets, err := st.Budgets(ctx, m.ID)
	require.NoError(t, err)
	assert.Empty(t, budgets)
}
