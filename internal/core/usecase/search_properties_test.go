package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"listing-service/internal/constants"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"

	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestBuildSearchQuery_DefaultsToPublishedNewestFirst(t *testing.T) {
	q := buildSearchQuery(domain.SearchFilters{})

	require.Equal(t, constants.CollectionProperties, q.Collection)
	require.Equal(t, []port.Filter{
		{Column: "publication_status", Op: port.OpEq, Value: "available"},
	}, q.Filters)
	require.Empty(t, q.AnyOf)
	require.Equal(t, &port.Sort{Column: "created_at", Descending: true}, q.Sort)
}

func TestBuildSearchQuery_LocationMatchesCityOrAddress(t *testing.T) {
	q := buildSearchQuery(domain.SearchFilters{Location: "chapinero"})

	require.Equal(t, []port.Filter{
		{Column: "city", Op: port.OpILike, Value: "%chapinero%"},
		{Column: "address", Op: port.OpILike, Value: "%chapinero%"},
	}, q.AnyOf)
}

func TestBuildSearchQuery_PriceBoundsIgnoredWithoutCurrency(t *testing.T) {
	q := buildSearchQuery(domain.SearchFilters{
		MinPrice: floatPtr(100000),
		MaxPrice: floatPtr(500000),
	})

	for _, f := range q.Filters {
		require.NotEqual(t, "price", f.Column, "price bound without currency must not filter")
		require.NotEqual(t, "currency", f.Column)
	}
}

func TestBuildSearchQuery_PriceBoundsAppliedWithCurrency(t *testing.T) {
	q := buildSearchQuery(domain.SearchFilters{
		Currency: "USD",
		MinPrice: floatPtr(100000),
		MaxPrice: floatPtr(500000),
	})

	require.Contains(t, q.Filters, port.Filter{Column: "currency", Op: port.OpEq, Value: "USD"})
	require.Contains(t, q.Filters, port.Filter{Column: "price", Op: port.OpGte, Value: "100000"})
	require.Contains(t, q.Filters, port.Filter{Column: "price", Op: port.OpLte, Value: "500000"})
}

func TestBuildSearchQuery_RoomBounds(t *testing.T) {
	q := buildSearchQuery(domain.SearchFilters{
		MinBedrooms:  intPtr(3),
		MinBathrooms: intPtr(2),
	})

	require.Contains(t, q.Filters, port.Filter{Column: "bedrooms", Op: port.OpGte, Value: "3"})
	require.Contains(t, q.Filters, port.Filter{Column: "bathrooms", Op: port.OpGte, Value: "2"})
}

func TestBuildSearchQuery_PriceSort(t *testing.T) {
	asc := buildSearchQuery(domain.SearchFilters{SortBy: domain.SortPriceAsc})
	require.Equal(t, &port.Sort{Column: "price"}, asc.Sort)

	desc := buildSearchQuery(domain.SearchFilters{SortBy: domain.SortPriceDesc})
	require.Equal(t, &port.Sort{Column: "price", Descending: true}, desc.Sort)

	unknown := buildSearchQuery(domain.SearchFilters{SortBy: "garbage"})
	require.Equal(t, &port.Sort{Column: "created_at", Descending: true}, unknown.Sort)
}

func TestSearchProperties_AttachesImagesToResults(t *testing.T) {
	store := &fakeRecordStore{
		SelectFn: func(ctx context.Context, q port.RecordQuery) (json.RawMessage, error) {
			if q.Collection == constants.CollectionPropertyImages {
				return json.RawMessage(`[
					{"id":"IMG1","property_id":"P1","url":"https://cdn/p1.jpg","is_primary":true}
				]`), nil
			}
			return json.RawMessage(`[
				{"id":"P1","title":"Casa en el norte","price":250000,"currency":"USD"},
				{"id":"P2","title":"Oficina centro","price":120000,"currency":"USD"}
			]`), nil
		},
	}

	uc := NewSearchPropertiesUseCase(store)
	properties, err := uc.Execute(context.Background(), domain.SearchFilters{Location: "norte"})
	require.NoError(t, err)
	require.Len(t, properties, 2)

	require.Equal(t, "https://cdn/p1.jpg", properties[0].PrimaryImageURL())
	require.Equal(t, domain.FallbackImageURL, properties[1].PrimaryImageURL())
	require.NotNil(t, properties[1].Images, "images slice must never be nil")
}

func TestSearchProperties_ImageFailureDoesNotFailSearch(t *testing.T) {
	store := &fakeRecordStore{
		SelectFn: func(ctx context.Context, q port.RecordQuery) (json.RawMessage, error) {
			if q.Collection == constants.CollectionPropertyImages {
				return nil, domain.ErrNotFound
			}
			return json.RawMessage(`[{"id":"P1","title":"Casa"}]`), nil
		},
	}

	uc := NewSearchPropertiesUseCase(store)
	properties, err := uc.Execute(context.Background(), domain.SearchFilters{})
	require.NoError(t, err)
	require.Len(t, properties, 1)
	require.Empty(t, properties[0].Images)
}
