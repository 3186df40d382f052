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

type DeletePropertyImageUseCase struct {
	records port.RecordStorePort
	objects port.ObjectStoragePort
	cache   port.QueryCachePort
}

func NewDeletePropertyImageUseCase(records port.RecordStorePort, objects port.ObjectStoragePort, cache port.QueryCachePort) *DeletePropertyImageUseCase {
	return &DeletePropertyImageUseCase{records: records, objects: objects, cache: cache}
}

func (uc *DeletePropertyImageUseCase) Execute(ctx context.Context, imageID string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "DeletePropertyImage",
		"image_id": imageID,
	})

	row, err := uc.records.SelectSingle(ctx, port.RecordQuery{
		Collection: constants.CollectionPropertyImages,
		Columns:    []string{"id", "property_id", "storage_path"},
		Filters:    []port.Filter{{Column: "id", Op: port.OpEq, Value: imageID}},
	})
	if err != nil {
		return fmt.Errorf("property image %q: %w", imageID, err)
	}

	var image domain.PropertyImage
	if err := json.Unmarshal(row, &image); err != nil {
		return fmt.Errorf("failed to decode image record %q: %w", imageID, err)
	}

	if err := uc.records.Delete(ctx, constants.CollectionPropertyImages,
		[]port.Filter{{Column: "id", Op: port.OpEq, Value: imageID}}); err != nil {
		ucLogger.Error("Failed to delete image record", err, nil)
		return err
	}

	if image.StoragePath != "" {
		if err := uc.objects.RemoveObjects(ctx, constants.PropertyImagesBucket, []string{image.StoragePath}); err != nil {
			ucLogger.Warn("Failed to remove image file from storage", port.Fields{"error": err.Error()})
		}
	}

	uc.cache.Invalidate(constants.PropertyKey(image.PropertyID))
	uc.cache.InvalidatePrefix(constants.PropertiesPrefix())

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
