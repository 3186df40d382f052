package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"listing-service/internal/constants"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/internal/core/port/usecases_port"
)

type UploadPropertyImageUseCase struct {
	records port.RecordStorePort
	objects port.ObjectStoragePort
	cache   port.QueryCachePort
}

func NewUploadPropertyImageUseCase(records port.RecordStorePort, objects port.ObjectStoragePort, cache port.QueryCachePort) *UploadPropertyImageUseCase {
	return &UploadPropertyImageUseCase{records: records, objects: objects, cache: cache}
}

// Execute загружает файл в бакет и регистрирует запись изображения.
// Если новое изображение помечено основным, прежнее основное снимается.
func (uc *UploadPropertyImageUseCase) Execute(ctx context.Context, input usecases_port.UploadPropertyImageInput) (*domain.PropertyImage, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "UploadPropertyImage",
		"property_id": input.PropertyID,
		"file_name":   input.FileName,
	})

	if input.PropertyID == "" {
		return nil, fmt.Errorf("property id is required: %w", domain.ErrValidation)
	}
	if len(input.Data) == 0 {
		return nil, fmt.Errorf("image payload is empty: %w", domain.ErrValidation)
	}

	pending := domain.NewPendingImage("", input.IsPrimary)
	storagePath := input.PropertyID + "/" + pending.TempID + strings.ToLower(path.Ext(input.FileName))

	publicURL, err := uc.objects.UploadObject(ctx, constants.PropertyImagesBucket, storagePath, input.ContentType, input.Data, false)
	if err != nil {
		ucLogger.Error("Failed to upload image file", err, nil)
		return nil, err
	}

	if input.IsPrimary {
		// снять флаг с прежнего основного изображения
		_, err := uc.records.Update(ctx, constants.CollectionPropertyImages,
			[]port.Filter{
				{Column: "property_id", Op: port.OpEq, Value: input.PropertyID},
				{Column: "is_primary", Op: port.OpEq, Value: "true"},
			},
			map[string]interface{}{"is_primary": false})
		if err != nil {
			ucLogger.Warn("Failed to clear previous primary image", port.Fields{"error": err.Error()})
		}
	}

	inserted, err := uc.records.Insert(ctx, constants.CollectionPropertyImages, []map[string]interface{}{{
		"property_id":  input.PropertyID,
		"url":          publicURL,
		"storage_path": storagePath,
		"is_primary":   input.IsPrimary,
	}})
	if err != nil {
		ucLogger.Error("Failed to insert image record", err, nil)
		// файл уже в бакете; убираем, чтобы не копить сирот
		if rmErr := uc.objects.RemoveObjects(ctx, constants.PropertyImagesBucket, []string{storagePath}); rmErr != nil {
			ucLogger.Warn("Failed to remove orphaned image file", port.Fields{"error": rmErr.Error()})
		}
		return nil, err
	}

	var images []domain.PropertyImage
	if err := json.Unmarshal(inserted, &images); err != nil || len(images) == 0 {
		return nil, fmt.Errorf("failed to decode inserted image record: %w", err)
	}
	image := images[0]
	image.State = domain.ImagePersisted

	uc.cache.Invalidate(constants.PropertyKey(input.PropertyID))
	uc.cache.InvalidatePrefix(constants.PropertiesPrefix())

	ucLogger.Info("Use case finished successfully", port.Fields{"image_id": image.ID})
	return &image, nil
}
