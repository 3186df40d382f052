package usecase

import (
	"context"

	"listing-service/internal/constants"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

// Списочные чтения каталога: все доступные объекты, избранные и по
// категории. Все идут через кэш с суточным окном свежести.

type GetPropertiesUseCase struct {
	records port.RecordStorePort
	cache   port.QueryCachePort
}

func NewGetPropertiesUseCase(records port.RecordStorePort, cache port.QueryCachePort) *GetPropertiesUseCase {
	return &GetPropertiesUseCase{records: records, cache: cache}
}

func (uc *GetPropertiesUseCase) Execute(ctx context.Context) ([]domain.Property, error) {
	return fetchCachedPropertyList(ctx, uc.cache, uc.records,
		constants.PropertiesListKey(), constants.ListTTL,
		[]port.Filter{
			{Column: "publication_status", Op: port.OpEq, Value: string(domain.StatusAvailable)},
		})
}

type GetFeaturedPropertiesUseCase struct {
	records port.RecordStorePort
	cache   port.QueryCachePort
}

func NewGetFeaturedPropertiesUseCase(records port.RecordStorePort, cache port.QueryCachePort) *GetFeaturedPropertiesUseCase {
	return &GetFeaturedPropertiesUseCase{records: records, cache: cache}
}

func (uc *GetFeaturedPropertiesUseCase) Execute(ctx context.Context) ([]domain.Property, error) {
	return fetchCachedPropertyList(ctx, uc.cache, uc.records,
		constants.FeaturedPropertiesKey(), constants.ListTTL,
		[]port.Filter{
			{Column: "featured", Op: port.OpEq, Value: "true"},
			{Column: "publication_status", Op: port.OpEq, Value: string(domain.StatusAvailable)},
		})
}

type GetPropertiesByCategoryUseCase struct {
	records port.RecordStorePort
	cache   port.QueryCachePort
}

func NewGetPropertiesByCategoryUseCase(records port.RecordStorePort, cache port.QueryCachePort) *GetPropertiesByCategoryUseCase {
	return &GetPropertiesByCategoryUseCase{records: records, cache: cache}
}

func (uc *GetPropertiesByCategoryUseCase) Execute(ctx context.Context, category domain.PropertyType) ([]domain.Property, error) {
	return fetchCachedPropertyList(ctx, uc.cache, uc.records,
		constants.PropertiesByCategoryKey(string(category)), constants.ListTTL,
		[]port.Filter{
			{Column: "property_type", Op: port.OpEq, Value: string(category)},
			{Column: "publication_status", Op: port.OpEq, Value: string(domain.StatusAvailable)},
		})
}
