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

type GetPropertyByIDUseCase struct {
	records port.RecordStorePort
	cache   port.QueryCachePort
}

func NewGetPropertyByIDUseCase(records port.RecordStorePort, cache port.QueryCachePort) *GetPropertyByIDUseCase {
	return &GetPropertyByIDUseCase{records: records, cache: cache}
}

func (uc *GetPropertyByIDUseCase) Execute(ctx context.Context, propertyID string) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "GetPropertyByID",
		"property_id": propertyID,
	})

	raw, err := uc.cache.Fetch(ctx, constants.PropertyKey(propertyID), constants.ListTTL, func(ctx context.Context) (json.RawMessage, error) {
		row, err := uc.records.SelectSingle(ctx, port.RecordQuery{
			Collection: constants.CollectionProperties,
			Filters:    []port.Filter{{Column: "id", Op: port.OpEq, Value: propertyID}},
		})
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", propertyID, err)
		}

		var property domain.Property
		if err := json.Unmarshal(row, &property); err != nil {
			return nil, fmt.Errorf("failed to decode property %q: %w", propertyID, err)
		}

		properties := []domain.Property{property}
		attachImages(ctx, uc.records, properties)
		return json.Marshal(properties[0])
	})
	if raw == nil {
		ucLogger.Error("Use case failed", err, nil)
		return nil, err
	}
	if err != nil {
		ucLogger.Warn("Serving stale property after refresh failure", port.Fields{"error": err.Error()})
	}

	var property domain.Property
	if err := json.Unmarshal(raw, &property); err != nil {
		return nil, fmt.Errorf("failed to decode cached property %q: %w", propertyID, err)
	}

	ucLogger.Debug("Use case finished successfully", nil)
	return &property, nil
}
