package dashboard

import (
	"context"
	"time"
)

type Repository interface {
	TopCategories(context context.Context, userID int64, year int, month time.Month, limit int) ([]CategoryTotal, error)
}

// Cache stores computed reports for a short window and supports dropping a
// user's month when new expenses land.
type Cache interface {
	GetTopCategories(context context.Context, userID int64, year int, month time.Month) ([]CategoryTotal, bool, error)
	SetTopCategories(context context.Context, userID int64, year int, month time.Month, totals []CategoryTotal) error
	InvalidateMonth(context context.Context, userID int64, year int, month time.Month) error
}
