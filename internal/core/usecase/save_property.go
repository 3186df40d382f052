package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"listing-service/internal/constants"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

type SavePropertyUseCase struct {
	records port.RecordStorePort
	cache   port.QueryCachePort
}

func NewSavePropertyUseCase(records port.RecordStorePort, cache port.QueryCachePort) *SavePropertyUseCase {
	return &SavePropertyUseCase{records: records, cache: cache}
}

// Execute создает объект (пустой ID) или обновляет существующий,
// затем помечает затронутые записи кэша устаревшими.
func (uc *SavePropertyUseCase) Execute(ctx context.Context, property domain.Property) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "SaveProperty",
		"property_id": property.ID,
	})

	if property.Title == "" {
		return nil, fmt.Errorf("property title is required: %w", domain.ErrValidation)
	}
	if property.PropertyType == "" {
		return nil, fmt.Errorf("property type is required: %w", domain.ErrValidation)
	}
	property.Normalize()

	row, err := propertyRow(property)
	if err != nil {
		return nil, err
	}

	var saved json.RawMessage
	if property.ID == "" {
		saved, err = uc.records.Insert(ctx, constants.CollectionProperties, []map[string]interface{}{row})
	} else {
		row["updated_at"] = time.Now().UTC().Format(time.RFC3339)
		saved, err = uc.records.Update(ctx, constants.CollectionProperties,
			[]port.Filter{{Column: "id", Op: port.OpEq, Value: property.ID}}, row)
	}
	if err != nil {
		ucLogger.Error("Failed to save property", err, nil)
		return nil, err
	}

	var properties []domain.Property
	if err := json.Unmarshal(saved, &properties); err != nil {
		return nil, fmt.Errorf("failed to decode saved property: %w", err)
	}
	if len(properties) == 0 {
		return nil, fmt.Errorf("property %q: %w", property.ID, domain.ErrNotFound)
	}
	result := properties[0]
	result.Normalize()

	// Инвалидация, не ожидая событий ленты: админка должна видеть
	// свое изменение сразу после записи.
	uc.cache.InvalidatePrefix(constants.PropertiesPrefix())
	uc.cache.Invalidate(constants.PropertyKey(result.ID))

	ucLogger.Info("Use case finished successfully", port.Fields{"property_id": result.ID})
	return &result, nil
}

// propertyRow превращает доменную структуру в строку платформы.
// Служебные и производные поля в запись не входят.
func propertyRow(property domain.Property) (map[string]interface{}, error) {
	encoded, err := json.Marshal(property)
	if err != nil {
		return nil, fmt.Errorf("failed to encode property: %w", err)
	}
	var row map[string]interface{}
	if err := json.Unmarshal(encoded, &row); err != nil {
		return nil, fmt.Errorf("failed to build property row: %w", err)
	}
	delete(row, "id")
	delete(row, "images") // изображения живут в своей коллекции
	delete(row, "created_at")
	delete(row, "updated_at")
	return row, nil
}
