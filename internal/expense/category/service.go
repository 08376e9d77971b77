package category

import (
	"context"
	"log/slog"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListCategories(context context.Context) ([]*Category, error) {
	return service.repo.List(context)
}

// CreateCategory persists a new spending classification. A duplicate name
// surfaces as a Conflict from the storage layer's unique constraint.
func (service *Service) CreateCategory(context context.Context, name string) (*Category, error) {
	created, err := service.repo.Create(context, name)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "category_created",
		slog.Int64("category_id", created.ID),
		slog.String("name", created.Name),
	)

	return created, nil
}
