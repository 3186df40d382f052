package usecase

import (
	"context"
	"strconv"

	"listing-service/internal/constants"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

type SearchPropertiesUseCase struct {
	records port.RecordStorePort
}

func NewSearchPropertiesUseCase(records port.RecordStorePort) *SearchPropertiesUseCase {
	return &SearchPropertiesUseCase{records: records}
}

// Execute выполняет поиск по каталогу. Результаты поиска не кэшируются:
// пространство ключей фильтров неограничено.
func (uc *SearchPropertiesUseCase) Execute(ctx context.Context, filters domain.SearchFilters) ([]domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "SearchProperties",
		"filters":  filters,
	})

	ucLogger.Debug("Use case started", nil)

	query := buildSearchQuery(filters)
	rows, err := uc.records.Select(ctx, query)
	if err != nil {
		ucLogger.Error("Record store returned an error", err, nil)
		return nil, err
	}

	properties, err := decodeProperties(rows)
	if err != nil {
		ucLogger.Error("Failed to decode search results", err, nil)
		return nil, err
	}
	attachImages(ctx, uc.records, properties)

	ucLogger.Info("Use case finished successfully", port.Fields{"total_found": len(properties)})
	return properties, nil
}

// buildSearchQuery собирает запрос к платформе из составных предикатов.
// Каждый предикат добавляется только при заданном входе.
func buildSearchQuery(f domain.SearchFilters) port.RecordQuery {
	q := port.RecordQuery{
		Collection: constants.CollectionProperties,
		Filters: []port.Filter{
			{Column: "publication_status", Op: port.OpEq, Value: string(domain.StatusAvailable)},
		},
	}

	// Подстрока в городе ИЛИ адресе, без учета регистра.
	if f.Location != "" {
		pattern := "%" + f.Location + "%"
		q.AnyOf = []port.Filter{
			{Column: "city", Op: port.OpILike, Value: pattern},
			{Column: "address", Op: port.OpILike, Value: pattern},
		}
	}

	// Ценовые границы имеют смысл только в конкретной валюте:
	// minPrice без валюты не фильтрует ничего.
	if f.Currency != "" {
		q.Filters = append(q.Filters, port.Filter{Column: "currency", Op: port.OpEq, Value: f.Currency})
		if f.MinPrice != nil {
			q.Filters = append(q.Filters, port.Filter{
				Column: "price", Op: port.OpGte, Value: strconv.FormatFloat(*f.MinPrice, 'f', -1, 64),
			})
		}
		if f.MaxPrice != nil {
			q.Filters = append(q.Filters, port.Filter{
				Column: "price", Op: port.OpLte, Value: strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64),
			})
		}
	}

	if f.MinBedrooms != nil {
		q.Filters = append(q.Filters, port.Filter{
			Column: "bedrooms", Op: port.OpGte, Value: strconv.Itoa(*f.MinBedrooms),
		})
	}
	if f.MinBathrooms != nil {
		q.Filters = append(q.Filters, port.Filter{
			Column: "bathrooms", Op: port.OpGte, Value: strconv.Itoa(*f.MinBathrooms),
		})
	}

	switch f.SortBy {
	case domain.SortPriceAsc:
		q.Sort = &port.Sort{Column: "price"}
	case domain.SortPriceDesc:
		q.Sort = &port.Sort{Column: "price", Descending: true}
	default:
		q.Sort = &port.Sort{Column: "created_at", Descending: true}
	}

	return q
}
