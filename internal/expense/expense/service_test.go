package expense_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/ledgerline/internal/expense/expense"
)

type fakeRepository struct {
	nextID  int64
	entries []*expense.Expense
}

func (repo *fakeRepository) Insert(_ context.Context, entry *expense.Expense) error {
	repo.nextID++
	entry.ID = repo.nextID
	entry.CreatedAt = time.Now()
	stored := *entry
	repo.entries = append(repo.entries, &stored)
	return nil
}

func (repo *fakeRepository) ListForMonth(_ context.Context, userID int64, year int, month time.Month) ([]*expense.Expense, error) {
	matched := make([]*expense.Expense, 0)
	for _, entry := range repo.entries {
		y, m, _ := entry.ExpenseDate.Date()
		if entry.UserID == userID && y == year && m == month {
			matched = append(matched, entry)
		}
	}
	return matched, nil
}

// fakeInvalidator records which user-months were dropped.
type fakeInvalidator struct {
	invalidated []string
	err         error
}

func (cache *fakeInvalidator) InvalidateMonth(_ context.Context, userID int64, year int, month time.Month) error {
	cache.invalidated = append(cache.invalidated, time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01"))
	return cache.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustDate(t *testing.T, value string) expense.DateOnly {
	t.Helper()
	d, err := expense.ParseDateOnly(value)
	require.NoError(t, err)
	return d
}

/*
TestService_AddExpense verifies the entry is persisted for the caller and
the cache for the entry's month is dropped.
*/
func TestService_AddExpense(t *testing.T) {
	repo := &fakeRepository{}
	cache := &fakeInvalidator{}
	service := expense.NewService(repo, cache, discardLogger())

	description := "weekly shop"
	entry, err := service.AddExpense(context.Background(), 42, expense.AddExpenseInput{
		CategoryID:  3,
		Amount:      57.20,
		Description: &description,
		ExpenseDate: mustDate(t, "2026-08-15"),
	})
	require.NoError(t, err)

	assert.NotZero(t, entry.ID)
	assert.Equal(t, int64(42), entry.UserID)
	require.Len(t, repo.entries, 1)
	assert.Equal(t, []string{"2026-08"}, cache.invalidated)
}

/*
TestService_AddExpense_CacheFailureTolerated checks that an invalidation
failure never fails the write — the entry is already committed.
*/
func TestService_AddExpense_CacheFailureTolerated(t *testing.T) {
	repo := &fakeRepository{}
	cache := &fakeInvalidator{err: assert.AnError}
	service := expense.NewService(repo, cache, discardLogger())

	_, err := service.AddExpense(context.Background(), 1, expense.AddExpenseInput{
		CategoryID:  1,
		Amount:      9.99,
		ExpenseDate: mustDate(t, "2026-08-01"),
	})
	require.NoError(t, err)
	assert.Len(t, repo.entries, 1)
}

/*
TestService_AddExpense_BackdatedEntry verifies invalidation targets the
entry's own month, not the current one.
*/
func TestService_AddExpense_BackdatedEntry(t *testing.T) {
	repo := &fakeRepository{}
	cache := &fakeInvalidator{}
	service := expense.NewService(repo, cache, discardLogger())

	_, err := service.AddExpense(context.Background(), 7, expense.AddExpenseInput{
		CategoryID:  2,
		Amount:      120,
		ExpenseDate: mustDate(t, "2025-12-31"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-12"}, cache.invalidated)
}

/*
TestService_Monthly lists only the caller's entries for the current month.
*/
func TestService_Monthly(t *testing.T) {
	repo := &fakeRepository{}
	cache := &fakeInvalidator{}
	service := expense.NewService(repo, cache, discardLogger())
	ctx := context.Background()

	today := expense.DateOnly{Time: time.Now()}
	lastYear := mustDate(t, time.Now().AddDate(-1, 0, 0).Format(time.DateOnly))

	_, err := service.AddExpense(ctx, 1, expense.AddExpenseInput{CategoryID: 1, Amount: 10, ExpenseDate: today})
	require.NoError(t, err)
	_, err = service.AddExpense(ctx, 1, expense.AddExpenseInput{CategoryID: 1, Amount: 20, ExpenseDate: lastYear})
	require.NoError(t, err)
	_, err = service.AddExpense(ctx, 2, expense.AddExpenseInput{CategoryID: 1, Amount: 30, ExpenseDate: today})
	require.NoError(t, err)

	entries, err := service.Monthly(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, float64(10), entries[0].Amount)
}
