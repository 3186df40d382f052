package usecases_port

import (
	"context"

	"listing-service/internal/core/domain"
)

type GetCompanyProfileUseCase interface {
	Execute(ctx context.Context) (*domain.CompanyProfile, error)
}

type UpdateCompanyProfileUseCase interface {
	Execute(ctx context.Context, profile domain.CompanyProfile) (*domain.CompanyProfile, error)
}
