package expense

import (
	"context"
	"log/slog"
	"time"
)

type Service struct {
	repo   Repository
	cache  CacheInvalidator
	logger *slog.Logger
}

func NewService(repo Repository, cache CacheInvalidator, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

type AddExpenseInput struct {
	CategoryID  int64
	Amount      float64
	Description *string
	ExpenseDate DateOnly
}

// AddExpense records a spending entry for the given user and drops any
// cached aggregates for the entry's month.
func (service *Service) AddExpense(context context.Context, userID int64, input AddExpenseInput) (*Expense, error) {
	entry := &Expense{
		UserID:      userID,
		CategoryID:  input.CategoryID,
		Amount:      input.Amount,
		Description: input.Description,
		ExpenseDate: input.ExpenseDate,
	}

	if err := service.repo.Insert(context, entry); err != nil {
		return nil, err
	}

	// Cache invalidation is best-effort; the write already committed.
	year, month, _ := entry.ExpenseDate.Date()
	if err := service.cache.InvalidateMonth(context, userID, year, month); err != nil {
		service.logger.WarnContext(context, "dashboard_cache_invalidate_failed",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	service.logger.InfoContext(context, "expense_added",
		slog.Int64("user_id", userID),
		slog.Int64("expense_id", entry.ID),
		slog.Float64("amount", entry.Amount),
	)

	return entry, nil
}

// Monthly lists the caller's expenses for the current calendar month, each
// with its category embedded.
func (service *Service) Monthly(context context.Context, userID int64) ([]*Expense, error) {
	now := time.Now()
	return service.repo.ListForMonth(context, userID, now.Year(), now.Month())
}
