package dashboard_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/ledgerline/internal/expense/dashboard"
)

type fakeRepository struct {
	totals []dashboard.CategoryTotal
	calls  int
}

func (repo *fakeRepository) TopCategories(_ context.Context, _ int64, _ int, _ time.Month, limit int) ([]dashboard.CategoryTotal, error) {
	repo.calls++
	if len(repo.totals) > limit {
		return repo.totals[:limit], nil
	}
	return repo.totals, nil
}

// fakeCache is a single-slot in-memory stand-in for the Redis cache.
type fakeCache struct {
	entry  []dashboard.CategoryTotal
	stored bool
	getErr error
	setErr error
}

func (cache *fakeCache) GetTopCategories(_ context.Context, _ int64, _ int, _ time.Month) ([]dashboard.CategoryTotal, bool, error) {
	if cache.getErr != nil {
		return nil, false, cache.getErr
	}
	return cache.entry, cache.stored, nil
}

func (cache *fakeCache) SetTopCategories(_ context.Context, _ int64, _ int, _ time.Month, totals []dashboard.CategoryTotal) error {
	if cache.setErr != nil {
		return cache.setErr
	}
	cache.entry = totals
	cache.stored = true
	return nil
}

func (cache *fakeCache) InvalidateMonth(_ context.Context, _ int64, _ int, _ time.Month) error {
	cache.entry = nil
	cache.stored = false
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/*
TestService_TopCategories_CacheMissThenHit verifies the cache-aside flow:
first call computes from the database and fills the cache, second call is
served without a database round trip.
*/
func TestService_TopCategories_CacheMissThenHit(t *testing.T) {
	repo := &fakeRepository{totals: []dashboard.CategoryTotal{
		{Category: "Groceries", Total: 412.50},
		{Category: "Transport", Total: 88.00},
	}}
	cache := &fakeCache{}
	service := dashboard.NewService(repo, cache, discardLogger())
	ctx := context.Background()

	first, err := service.TopCategories(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, repo.totals, first)
	assert.Equal(t, 1, repo.calls)
	assert.True(t, cache.stored)

	second, err := service.TopCategories(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.calls)
}

/*
TestService_TopCategories_CacheFailuresFallThrough checks that neither a
cache read nor a cache write failure surfaces to the caller.
*/
func TestService_TopCategories_CacheFailuresFallThrough(t *testing.T) {
	repo := &fakeRepository{totals: []dashboard.CategoryTotal{{Category: "Rent", Total: 900}}}
	cache := &fakeCache{getErr: assert.AnError, setErr: assert.AnError}
	service := dashboard.NewService(repo, cache, discardLogger())

	totals, err := service.TopCategories(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, repo.totals, totals)
	assert.Equal(t, 1, repo.calls)
}

/*
TestService_TopCategories_EmptyMonth confirms a month with no expenses
yields an empty (not nil-error) report.
*/
func TestService_TopCategories_EmptyMonth(t *testing.T) {
	repo := &fakeRepository{totals: []dashboard.CategoryTotal{}}
	cache := &fakeCache{}
	service := dashboard.NewService(repo, cache, discardLogger())

	totals, err := service.TopCategories(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, totals)
}
