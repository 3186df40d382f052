package usecases_port

import (
	"context"

	"listing-service/internal/core/domain"
)

type GetLeadsUseCase interface {
	Execute(ctx context.Context, ownerID string, status domain.LeadStatus) ([]domain.Lead, error)
}
