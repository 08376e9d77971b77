package expense

import (
	"context"
	"time"
)

type Repository interface {
	Insert(context context.Context, expense *Expense) error
	ListForMonth(context context.Context, userID int64, year int, month time.Month) ([]*Expense, error)
}

// CacheInvalidator drops cached aggregates for a user's month after a write.
type CacheInvalidator interface {
	InvalidateMonth(context context.Context, userID int64, year int, month time.Month) error
}
