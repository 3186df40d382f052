package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrimaryImageURL_PrefersFlaggedImage(t *testing.T) {
	p := Property{Images: []PropertyImage{
		{ID: "IMG1", URL: "https://cdn/first.jpg"},
		{ID: "IMG2", URL: "https://cdn/primary.jpg", IsPrimary: true},
	}}
	require.Equal(t, "https://cdn/primary.jpg", p.PrimaryImageURL())
}

func TestPrimaryImageURL_FallsBackToFirstImage(t *testing.T) {
	p := Property{Images: []PropertyImage{
		{ID: "IMG1", URL: "https://cdn/first.jpg"},
		{ID: "IMG2", URL: "https://cdn/second.jpg"},
	}}
	require.Equal(t, "https://cdn/first.jpg", p.PrimaryImageURL())
}

func TestPrimaryImageURL_PlaceholderWithoutImages(t *testing.T) {
	require.Equal(t, FallbackImageURL, Property{}.PrimaryImageURL())
}

func TestNormalize_ImagesSliceIsNeverNil(t *testing.T) {
	p := Property{}
	p.Normalize()
	require.NotNil(t, p.Images)

	encoded, err := json.Marshal(p)
	require.NoError(t, err)
	require.Contains(t, string(encoded), `"images":[]`)
}

func TestNormalize_MarksStoredImagesPersisted(t *testing.T) {
	p := Property{Images: []PropertyImage{
		{ID: "IMG1", URL: "https://cdn/1.jpg"},
	}}
	p.Normalize()
	require.True(t, p.Images[0].Persisted())
}

func TestNormalize_DerivesGeohashFromCoordinates(t *testing.T) {
	lat, lng := 4.60971, -74.08175
	p := Property{Latitude: &lat, Longitude: &lng}
	p.Normalize()
	require.Len(t, p.Geohash, 8)

	// без координат геохеш не трогаем
	q := Property{Geohash: "existing"}
	q.Normalize()
	require.Equal(t, "existing", q.Geohash)
}

func TestNewPendingImage_CarriesTempID(t *testing.T) {
	img := NewPendingImage("blob:local", true)
	require.Equal(t, ImagePending, img.State)
	require.NotEmpty(t, img.TempID)
	require.Empty(t, img.ID)
	require.True(t, img.IsPrimary)
	require.False(t, img.Persisted())
}

func TestChangeEvent_FieldFallsBackToOldRecord(t *testing.T) {
	deleted := ChangeEvent{
		Collection: "properties",
		Action:     ChangeDelete,
		Old:        map[string]interface{}{"id": "P1"},
	}
	require.Equal(t, "P1", deleted.RecordID())

	updated := ChangeEvent{
		Collection: "properties",
		Action:     ChangeUpdate,
		Old:        map[string]interface{}{"id": "stale"},
		New:        map[string]interface{}{"id": "P2"},
	}
	require.Equal(t, "P2", updated.RecordID())

	require.Empty(t, ChangeEvent{}.RecordID())
}
