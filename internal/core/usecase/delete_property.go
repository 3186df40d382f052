package usecase

import (
	"context"
	"encoding/json"

	"listing-service/internal/constants"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

type DeletePropertyUseCase struct {
	records port.RecordStorePort
	objects port.ObjectStoragePort
	cache   port.QueryCachePort
}

func NewDeletePropertyUseCase(records port.RecordStorePort, objects port.ObjectStoragePort, cache port.QueryCachePort) *DeletePropertyUseCase {
	return &DeletePropertyUseCase{records: records, objects: objects, cache: cache}
}

// Execute удаляет объект вместе с записями изображений. Файлы в бакете
// чистятся best-effort: осиротевший файл хуже, чем лишний запрос,
// но не повод провалить удаление.
func (uc *DeletePropertyUseCase) Execute(ctx context.Context, propertyID string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "DeleteProperty",
		"property_id": propertyID,
	})

	rows, err := uc.records.Select(ctx, port.RecordQuery{
		Collection: constants.CollectionPropertyImages,
		Columns:    []string{"id", "storage_path"},
		Filters:    []port.Filter{{Column: "property_id", Op: port.OpEq, Value: propertyID}},
	})
	if err != nil {
		ucLogger.Error("Failed to list property images", err, nil)
		return err
	}

	var images []domain.PropertyImage
	if err := json.Unmarshal(rows, &images); err == nil && len(images) > 0 {
		paths := make([]string, 0, len(images))
		for _, img := range images {
			if img.StoragePath != "" {
				paths = append(paths, img.StoragePath)
			}
		}
		if len(paths) > 0 {
			if err := uc.objects.RemoveObjects(ctx, constants.PropertyImagesBucket, paths); err != nil {
				ucLogger.Warn("Failed to remove image files from storage", port.Fields{"error": err.Error()})
			}
		}
		if err := uc.records.Delete(ctx, constants.CollectionPropertyImages,
			[]port.Filter{{Column: "property_id", Op: port.OpEq, Value: propertyID}}); err != nil {
			ucLogger.Error("Failed to delete image records", err, nil)
			return err
		}
	}

	if err := uc.records.Delete(ctx, constants.CollectionProperties,
		[]port.Filter{{Column: "id", Op: port.OpEq, Value: propertyID}}); err != nil {
		ucLogger.Error("Failed to delete property", err, nil)
		return err
	}

	uc.cache.InvalidatePrefix(constants.PropertiesPrefix())
	uc.cache.Invalidate(constants.PropertyKey(propertyID))

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
