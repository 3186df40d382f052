package usecases_port

import (
	"context"

	"listing-service/internal/core/domain"
)

// Списочные чтения каталога. Все три идут через кэш запросов.

type GetPropertiesUseCase interface {
	Execute(ctx context.Context) ([]domain.Property, error)
}

type GetFeaturedPropertiesUseCase interface {
	Execute(ctx context.Context) ([]domain.Property, error)
}

type GetPropertiesByCategoryUseCase interface {
	Execute(ctx context.Context, category domain.PropertyType) ([]domain.Property, error)
}
