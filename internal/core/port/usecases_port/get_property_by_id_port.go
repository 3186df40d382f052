package usecases_port

import (
	"context"

	"listing-service/internal/core/domain"
)

type GetPropertyByIDUseCase interface {
	Execute(ctx context.Context, propertyID string) (*domain.Property, error)
}
