package usecases_port

import (
	"context"

	"listing-service/internal/core/domain"
)

// CreateLeadInput — данные контактной формы.
type CreateLeadInput struct {
	Name       string
	Email      string
	Phone      string
	Message    string
	PropertyID string
	UserID     string
	Source     domain.LeadSource
}

type CreateLeadUseCase interface {
	Execute(ctx context.Context, input CreateLeadInput) (*domain.Lead, error)
}
