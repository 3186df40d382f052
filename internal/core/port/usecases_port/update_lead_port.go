package usecases_port

import (
	"context"
	"time"

	"listing-service/internal/core/domain"
)

// UpdateLeadInput — частичное обновление: nil-поля не трогаются.
type UpdateLeadInput struct {
	Status      *domain.LeadStatus
	Notes       *string
	LastContact *time.Time
}

type UpdateLeadUseCase interface {
	Execute(ctx context.Context, leadID string, input UpdateLeadInput) (*domain.Lead, error)
}
