//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mscaglia/finbook/internal/infra/postgres"
	"github.com/mscaglia/finbook/internal/platform/category"
	"github.com/mscaglia/finbook/internal/platform/transaction"
	"github.com/mscaglia/finbook/internal/platform/user"
	"github.com/mscaglia/finbook/testutil/testdb"
)

var testDB *testdb.TestDB

func TestMain(m *testing.M) {
	ctx := context.Background()

	var err error
	testDB, err = testdb.NewTestDB(ctx)
	if err != nil {
		panic("failed to create test database: " + err.Error())
	}

	code := m.Run()

	testDB.Close(ctx)
	if code != 0 {
		panic("tests failed")
	}
}

type repos struct {
	users        *postgres.UserRepository
	categories   *postgres.CategoryRepository
	transactions *postgres.TransactionRepository
}

func setupTest(t *testing.T) (context.Context, repos) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, testDB.Reset(ctx))

	return ctx, repos{
		users:        postgres.NewUserRepository(testDB.Pool),
		categories:   postgres.NewCategoryRepository(testDB.Pool),
		transactions: postgres.NewTransactionRepository(testDB.Pool),
	}
}

func createUser(t *testing.T, ctx context.Context, r repos, email string) *user.User {
	t.Helper()
	u := &user.User{ID: uuid.New(), Email: email, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, u.SetPassword("hunter2hunter2"))
	require.NoError(t, r.users.Create(ctx, u))
	return u
}

func createCategory(t *testing.T, ctx context.Context, r repos, name string, kind category.Kind) *category.Category {
	t.Helper()
	c := &category.Category{ID: uuid.New(), Name: name, Kind: kind, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, r.categories.Create(ctx, c))
	return c
}

func createTransaction(t *testing.T, ctx context.Context, r repos, ownerID, categoryID uuid.UUID, kind category.Kind, amount string, date time.Time) *transaction.Transaction {
	t.Helper()
	tx := &transaction.Transaction{
		ID:          uuid.New(),
		Description: "entry",
		Amount:      decimal.RequireFromString(amount),
		Date:        date,
		Kind:        kind,
		Nature:      transaction.NatureVariable,
		CategoryID:  categoryID,
		UserID:      ownerID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	require.NoError(t, r.transactions.Create(ctx, tx))
	return tx
}

func TestUserRepository(t *testing.T) {
	ctx, r := setupTest(t)

	t.Run("create and fetch round-trips", func(t *testing.T) {
		created := createUser(t, ctx, r, "ana@example.com")

		byEmail, err := r.users.GetByEmail(ctx, "ana@example.com")
		require.NoError(t, err)
		assert.Equal(t, created.ID, byEmail.ID)
		assert.NoError(t, byEmail.CheckPassword("hunter2hunter2"))

		byID, err := r.users.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.Email, byID.Email)
	})

	t.Run("duplicate email maps to the conflict error", func(t *testing.T) {
		dup := &user.User{ID: uuid.New(), Email: "ana@example.com"}
		require.NoError(t, dup.SetPassword("hunter2hunter2"))

		err := r.users.Create(ctx, dup)
		assert.ErrorIs(t, err, user.ErrEmailTaken)
	})

	t.Run("unknown email is not found", func(t *testing.T) {
		_, err := r.users.GetByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})
}

func TestCategoryRepository(t *testing.T) {
	ctx, r := setupTest(t)
	owner := createUser(t, ctx, r, "ana@example.com")
	rent := createCategory(t, ctx, r, "Rent", category.KindExpense)

	t.Run("name check is case-insensitive", func(t *testing.T) {
		exists, err := r.categories.ExistsByName(ctx, "rent", uuid.Nil)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = r.categories.ExistsByName(ctx, "RENT", rent.ID)
		require.NoError(t, err)
		assert.False(t, exists, "a category's own row must not count against it")
	})

	t.Run("in-use reflects referencing transactions", func(t *testing.T) {
		inUse, err := r.categories.InUse(ctx, rent.ID)
		require.NoError(t, err)
		assert.False(t, inUse)

		createTransaction(t, ctx, r, owner.ID, rent.ID, category.KindExpense, "50.00", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))

		inUse, err = r.categories.InUse(ctx, rent.ID)
		require.NoError(t, err)
		assert.True(t, inUse)
	})

	t.Run("update of a missing row is not found", func(t *testing.T) {
		ghost := &category.Category{ID: uuid.New(), Name: "Ghost", Kind: category.KindExpense}
		err := r.categories.Update(ctx, ghost)
		assert.ErrorIs(t, err, category.ErrCategoryNotFound)
	})
}

func TestTransactionRepository_ListByOwner(t *testing.T) {
	ctx, r := setupTest(t)
	ana := createUser(t, ctx, r, "ana@example.com")
	bob := createUser(t, ctx, r, "bob@example.com")
	rent := createCategory(t, ctx, r, "Rent", category.KindExpense)
	salary := createCategory(t, ctx, r, "Salary", category.KindIncome)

	createTransaction(t, ctx, r, ana.ID, rent.ID, category.KindExpense, "50.00", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	createTransaction(t, ctx, r, ana.ID, rent.ID, category.KindExpense, "75.00", time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC))
	createTransaction(t, ctx, r, ana.ID, salary.ID, category.KindIncome, "1000.00", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	createTransaction(t, ctx, r, bob.ID, rent.ID, category.KindExpense, "99.00", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))

	t.Run("scopes to owner and kind, newest first", func(t *testing.T) {
		txs, err := r.transactions.ListByOwner(ctx, ana.ID, category.KindExpense, transaction.ListFilter{Limit: 50})
		require.NoError(t, err)
		require.Len(t, txs, 2)
		assert.True(t, txs[0].Date.After(txs[1].Date))
		for _, tx := range txs {
			assert.Equal(t, ana.ID, tx.UserID)
			assert.Equal(t, category.KindExpense, tx.Kind)
		}
	})

	t.Run("date range filter", func(t *testing.T) {
		from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
		txs, err := r.transactions.ListByOwner(ctx, ana.ID, category.KindExpense, transaction.ListFilter{From: &from, To: &to, Limit: 50})
		require.NoError(t, err)
		require.Len(t, txs, 1)
		assert.True(t, txs[0].Amount.Equal(decimal.RequireFromString("50.00")))
	})

	t.Run("category filter", func(t *testing.T) {
		txs, err := r.transactions.ListByOwner(ctx, ana.ID, category.KindIncome, transaction.ListFilter{CategoryID: &salary.ID, Limit: 50})
		require.NoError(t, err)
		assert.Len(t, txs, 1)
	})
}

func TestTransactionRepository_Sums(t *testing.T) {
	ctx, r := setupTest(t)
	ana := createUser(t, ctx, r, "ana@example.com")
	bob := createUser(t, ctx, r, "bob@example.com")
	rent := createCategory(t, ctx, r, "Rent", category.KindExpense)
	food := createCategory(t, ctx, r, "Food", category.KindExpense)
	salary := createCategory(t, ctx, r, "Salary", category.KindIncome)

	createTransaction(t, ctx, r, ana.ID, salary.ID, category.KindIncome, "1000.00", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	createTransaction(t, ctx, r, ana.ID, rent.ID, category.KindExpense, "200.00", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	createTransaction(t, ctx, r, ana.ID, food.ID, category.KindExpense, "33.33", time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC))
	// Outside the month and owned by someone else, both invisible to the sums
	createTransaction(t, ctx, r, ana.ID, rent.ID, category.KindExpense, "500.00", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
	createTransaction(t, ctx, r, bob.ID, rent.ID, category.KindExpense, "900.00", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))

	t.Run("monthly totals are exact", func(t *testing.T) {
		income, err := r.transactions.SumByMonth(ctx, ana.ID, category.KindIncome, 3, 2024)
		require.NoError(t, err)
		assert.True(t, income.Equal(decimal.RequireFromString("1000.00")))

		expense, err := r.transactions.SumByMonth(ctx, ana.ID, category.KindExpense, 3, 2024)
		require.NoError(t, err)
		assert.True(t, expense.Equal(decimal.RequireFromString("233.33")))
	})

	t.Run("empty month sums to zero", func(t *testing.T) {
		total, err := r.transactions.SumByMonth(ctx, ana.ID, category.KindExpense, 1, 2020)
		require.NoError(t, err)
		assert.True(t, total.IsZero())
	})

	t.Run("grouping keys by category name", func(t *testing.T) {
		grouped, err := r.transactions.SumByMonthGroupedByCategory(ctx, ana.ID, category.KindExpense, 3, 2024)
		require.NoError(t, err)
		require.Len(t, grouped, 2)
		assert.True(t, grouped["Rent"].Equal(decimal.RequireFromString("200.00")))
		assert.True(t, grouped["Food"].Equal(decimal.RequireFromString("33.33")))
	})
}

func TestTransactionRepository_Update(t *testing.T) {
	ctx, r := setupTest(t)
	ana := createUser(t, ctx, r, "ana@example.com")
	rent := createCategory(t, ctx, r, "Rent", category.KindExpense)
	food := createCategory(t, ctx, r, "Food", category.KindExpense)

	tx := createTransaction(t, ctx, r, ana.ID, rent.ID, category.KindExpense, "50.00", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))

	tx.Description = "groceries"
	tx.Amount = decimal.RequireFromString("61.10")
	tx.CategoryID = food.ID
	require.NoError(t, r.transactions.Update(ctx, tx))

	got, err := r.transactions.GetByID(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, "groceries", got.Description)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("61.10")))
	assert.Equal(t, food.ID, got.CategoryID)
	assert.Equal(t, ana.ID, got.UserID)
}
