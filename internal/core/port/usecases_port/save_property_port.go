package usecases_port

import (
	"context"

	"listing-service/internal/core/domain"
)

// SavePropertyUseCase — создание (пустой ID) или обновление объекта.
type SavePropertyUseCase interface {
	Execute(ctx context.Context, property domain.Property) (*domain.Property, error)
}

type DeletePropertyUseCase interface {
	Execute(ctx context.Context, propertyID string) error
}
