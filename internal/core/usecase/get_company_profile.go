package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"listing-service/internal/constants"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

type GetCompanyProfileUseCase struct {
	records port.RecordStorePort
	cache   port.QueryCachePort
}

func NewGetCompanyProfileUseCase(records port.RecordStorePort, cache port.QueryCachePort) *GetCompanyProfileUseCase {
	return &GetCompanyProfileUseCase{records: records, cache: cache}
}

// Execute отдает профиль компании из кэша. Профиль меняется редко,
// но показывается на каждой странице, поэтому окно свежести короче
// каталожного.
func (uc *GetCompanyProfileUseCase) Execute(ctx context.Context) (*domain.CompanyProfile, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "GetCompanyProfile"})

	raw, err := uc.cache.Fetch(ctx, constants.CompanyProfileKey(), constants.ProfileTTL, func(ctx context.Context) (json.RawMessage, error) {
		row, err := uc.records.SelectSingle(ctx, port.RecordQuery{
			Collection: constants.CollectionCompanyProfile,
			Limit:      1,
		})
		if err != nil {
			return nil, fmt.Errorf("company profile: %w", err)
		}
		return row, nil
	})
	if raw == nil {
		ucLogger.Error("Use case failed", err, nil)
		return nil, err
	}
	if err != nil {
		ucLogger.Warn("Serving stale company profile after refresh failure", port.Fields{"error": err.Error()})
	}

	var profile domain.CompanyProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("failed to decode company profile: %w", err)
	}

	ucLogger.Debug("Use case finished successfully", nil)
	return &profile, nil
}
