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

func TestSaveProperty_RejectsIncompleteRecord(t *testing.T) {
	uc := NewSavePropertyUseCase(&fakeRecordStore{}, &passthroughCache{})

	_, err := uc.Execute(context.Background(), domain.Property{PropertyType: domain.PropertyTypeCasa})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Execute(context.Background(), domain.Property{Title: "Casa"})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestSaveProperty_CreateInsertsAndInvalidates(t *testing.T) {
	store := &fakeRecordStore{
		InsertFn: func(ctx context.Context, collection string, rows []map[string]interface{}) (json.RawMessage, error) {
			return json.RawMessage(`[{"id":"P-NEW","title":"Casa nueva","property_type":"casa"}]`), nil
		},
	}
	cache := &passthroughCache{}

	uc := NewSavePropertyUseCase(store, cache)
	saved, err := uc.Execute(context.Background(), domain.Property{
		Title:        "Casa nueva",
		PropertyType: domain.PropertyTypeCasa,
		Price:        250000,
		Currency:     "USD",
	})
	require.NoError(t, err)
	require.Equal(t, "P-NEW", saved.ID)
	require.NotNil(t, saved.Images)

	row := store.insertedInto(constants.CollectionProperties)[0].Rows[0]
	require.NotContains(t, row, "id")
	require.NotContains(t, row, "images")
	require.NotContains(t, row, "created_at")

	require.Contains(t, cache.invalidatedPrefixes(), constants.PropertiesPrefix().String())
	require.Contains(t, cache.invalidatedKeys(), constants.PropertyKey("P-NEW").String())
}

func TestSaveProperty_UpdatePatchesByID(t *testing.T) {
	store := &fakeRecordStore{
		UpdateFn: func(ctx context.Context, collection string, filters []port.Filter, patch map[string]interface{}) (json.RawMessage, error) {
			require.Equal(t, constants.CollectionProperties, collection)
			require.Contains(t, filters, port.Filter{Column: "id", Op: port.OpEq, Value: "P1"})
			require.Contains(t, patch, "updated_at")
			return json.RawMessage(`[{"id":"P1","title":"Casa renovada","property_type":"casa"}]`), nil
		},
	}
	cache := &passthroughCache{}

	uc := NewSavePropertyUseCase(store, cache)
	saved, err := uc.Execute(context.Background(), domain.Property{
		ID:           "P1",
		Title:        "Casa renovada",
		PropertyType: domain.PropertyTypeCasa,
	})
	require.NoError(t, err)
	require.Equal(t, "Casa renovada", saved.Title)
	require.Contains(t, cache.invalidatedKeys(), constants.PropertyKey("P1").String())
}

func TestSaveProperty_UpdateOfMissingRecordIsNotFound(t *testing.T) {
	store := &fakeRecordStore{
		UpdateFn: func(ctx context.Context, collection string, filters []port.Filter, patch map[string]interface{}) (json.RawMessage, error) {
			return json.RawMessage(`[]`), nil
		},
	}

	uc := NewSavePropertyUseCase(store, &passthroughCache{})
	_, err := uc.Execute(context.Background(), domain.Property{
		ID:           "ghost",
		Title:        "Casa",
		PropertyType: domain.PropertyTypeCasa,
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}
