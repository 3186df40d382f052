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

// decodeProperties разбирает JSON-массив строк платформы в доменные записи.
func decodeProperties(raw json.RawMessage) ([]domain.Property, error) {
	properties := make([]domain.Property, 0)
	if err := json.Unmarshal(raw, &properties); err != nil {
		return nil, fmt.Errorf("failed to decode properties payload: %w", err)
	}
	return properties, nil
}

// attachImages подтягивает изображения одним запросом и раскладывает их
// по родительским записям. Ответы могут приходить в любом порядке,
// поэтому привязка всегда по property_id, а не по позиции.
//
// Инвариант: Images у каждой записи остается массивом даже если запрос
// изображений не удался — каталог важнее фотографий.
func attachImages(ctx context.Context, records port.RecordStorePort, properties []domain.Property) {
	logger := contextkeys.LoggerFromContext(ctx)

	for i := range properties {
		properties[i].Normalize()
	}
	if len(properties) == 0 {
		return
	}

	ids := make([]string, len(properties))
	for i, p := range properties {
		ids[i] = p.ID
	}

	raw, err := records.Select(ctx, port.RecordQuery{
		Collection: constants.CollectionPropertyImages,
		Filters: []port.Filter{
			{Column: "property_id", Op: port.OpIn, Values: ids},
		},
	})
	if err != nil {
		logger.Warn("Failed to fetch property images, serving records without them", port.Fields{
			"error": err.Error(), "properties_count": len(properties),
		})
		return
	}

	var images []domain.PropertyImage
	if err := json.Unmarshal(raw, &images); err != nil {
		logger.Warn("Failed to decode property images payload", port.Fields{"error": err.Error()})
		return
	}

	byProperty := make(map[string][]domain.PropertyImage, len(properties))
	for _, img := range images {
		img.State = domain.ImagePersisted
		byProperty[img.PropertyID] = append(byProperty[img.PropertyID], img)
	}
	for i := range properties {
		if imgs, found := byProperty[properties[i].ID]; found {
			properties[i].Images = imgs
		}
	}
}

// fetchCachedPropertyList — общий путь списочных чтений каталога:
// кэш -> платформа -> нормализация -> кэш.
func fetchCachedPropertyList(
	ctx context.Context,
	cache port.QueryCachePort,
	records port.RecordStorePort,
	key port.CacheKey,
	ttl time.Duration,
	filters []port.Filter,
) ([]domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	raw, err := cache.Fetch(ctx, key, ttl, func(ctx context.Context) (json.RawMessage, error) {
		rows, err := records.Select(ctx, port.RecordQuery{
			Collection: constants.CollectionProperties,
			Filters:    filters,
			Sort:       &port.Sort{Column: "created_at", Descending: true},
		})
		if err != nil {
			return nil, err
		}
		properties, err := decodeProperties(rows)
		if err != nil {
			return nil, err
		}
		attachImages(ctx, records, properties)
		return json.Marshal(properties)
	})
	if raw == nil {
		return nil, err
	}
	if err != nil {
		// stale-while-error: значение еще пригодно, но обновить не удалось
		logger.Warn("Serving stale catalog entry after refresh failure", port.Fields{
			"cache_key": key.String(), "error": err.Error(),
		})
	}

	return decodeProperties(raw)
}
