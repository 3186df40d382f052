package usecase

import (
	"context"

	"listing-service/internal/constants"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/port"
)

type SetPrimaryImageUseCase struct {
	records port.RecordStorePort
	cache   port.QueryCachePort
}

func NewSetPrimaryImageUseCase(records port.RecordStorePort, cache port.QueryCachePort) *SetPrimaryImageUseCase {
	return &SetPrimaryImageUseCase{records: records, cache: cache}
}

// Execute делает изображение основным. Сначала снимается старый флаг,
// затем ставится новый: промежуточное состояние без основного
// изображения безопасно, карточка возьмет первое по порядку.
func (uc *SetPrimaryImageUseCase) Execute(ctx context.Context, propertyID, imageID string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "SetPrimaryImage",
		"property_id": propertyID,
		"image_id":    imageID,
	})

	if _, err := uc.records.Update(ctx, constants.CollectionPropertyImages,
		[]port.Filter{{Column: "property_id", Op: port.OpEq, Value: propertyID}},
		map[string]interface{}{"is_primary": false}); err != nil {
		ucLogger.Error("Failed to clear primary flags", err, nil)
		return err
	}

	if _, err := uc.records.Update(ctx, constants.CollectionPropertyImages,
		[]port.Filter{{Column: "id", Op: port.OpEq, Value: imageID}},
		map[string]interface{}{"is_primary": true}); err != nil {
		ucLogger.Error("Failed to set primary flag", err, nil)
		return err
	}

	uc.cache.Invalidate(constants.PropertyKey(propertyID))
	uc.cache.InvalidatePrefix(constants.PropertiesPrefix())

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
