package dashboard

import (
	"context"
	"log/slog"
	"time"
)

// topCategoriesLimit caps the report at the highest-spend categories.
const topCategoriesLimit = 5

type Service struct {
	repo   Repository
	cache  Cache
	logger *slog.Logger
}

func NewService(repo Repository, cache Cache, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// TopCategories returns the caller's five highest-spend categories for the
// current calendar month, cache-aside: a cache failure falls through to the
// database rather than failing the request.
func (service *Service) TopCategories(context context.Context, userID int64) ([]CategoryTotal, error) {
	now := time.Now()
	year, month := now.Year(), now.Month()

	cached, hit, err := service.cache.GetTopCategories(context, userID, year, month)
	if err != nil {
		service.logger.WarnContext(context, "dashboard_cache_read_failed",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()),
		)
	}
	if hit {
		return cached, nil
	}

	totals, err := service.repo.TopCategories(context, userID, year, month, topCategoriesLimit)
	if err != nil {
		return nil, err
	}

	if err := service.cache.SetTopCategories(context, userID, year, month, totals); err != nil {
		service.logger.WarnContext(context, "dashboard_cache_write_failed",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	return totals, nil
}
