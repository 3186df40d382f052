package domain

import (
	"time"

	"github.com/mmcloughlin/geohash"
)

// PropertyType — фиксированный справочник типов объектов.
type PropertyType string

const (
	PropertyTypeCasa         PropertyType = "casa"
	PropertyTypeDepartamento PropertyType = "departamento"
	PropertyTypeOficina      PropertyType = "oficina"
	PropertyTypeLocal        PropertyType = "local"
	PropertyTypeTerreno      PropertyType = "terreno"
	PropertyTypeBodega       PropertyType = "bodega"
)

// PublicationStatus — статус публикации объекта.
type PublicationStatus string

const (
	StatusAvailable PublicationStatus = "available"
	StatusReserved  PublicationStatus = "reserved"
	StatusRented    PublicationStatus = "rented"
	StatusSold      PublicationStatus = "sold"
)

// OperationType — тип сделки.
type OperationType string

const (
	OperationSale  OperationType = "sale"
	OperationLease OperationType = "lease"
)

// FallbackImageURL используется карточками, когда у объекта нет ни одного фото.
const FallbackImageURL = "/images/property-placeholder.jpg"

// Property — объект недвижимости. JSON-теги совпадают с колонками
// платформы: строки ленты и REST-API платформы декодируются напрямую,
// без промежуточного DTO.
type Property struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Price         float64           `json:"price"`
	Currency      string            `json:"currency"`
	Address       string            `json:"address"`
	City          string            `json:"city"`
	Latitude      *float64          `json:"latitude,omitempty"`
	Longitude     *float64          `json:"longitude,omitempty"`
	Geohash       string            `json:"geohash,omitempty"`
	Bedrooms      int               `json:"bedrooms"`
	Bathrooms     int               `json:"bathrooms"`
	AreaM2        float64           `json:"area_m2"`
	PropertyType  PropertyType      `json:"property_type"`
	Status        PublicationStatus `json:"publication_status"`
	OperationType OperationType     `json:"operation_type"`
	Featured      bool              `json:"featured"`
	OwnerID       string            `json:"user_id"`

	// Images всегда не-nil: карточки и детали объекта рассчитывают
	// на пустой срез, а не на null.
	Images []PropertyImage `json:"images"`

	Analytics *NeighborhoodAnalytics `json:"neighborhood_analytics,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NeighborhoodAnalytics — вложенная аналитика по району (опциональная).
type NeighborhoodAnalytics struct {
	AveragePrice   float64  `json:"average_price"`
	PricePerM2     float64  `json:"price_per_m2"`
	DemandLevel    string   `json:"demand_level"`
	SafetyScore    float64  `json:"safety_score"`
	ServicesNearby []string `json:"services_nearby"`
}

// Normalize приводит запись к инвариантам ядра: не-nil срез изображений
// и геохеш, выведенный из координат (если они заданы).
func (p *Property) Normalize() {
	if p.Images == nil {
		p.Images = []PropertyImage{}
	}
	for i := range p.Images {
		if p.Images[i].ID != "" {
			p.Images[i].State = ImagePersisted
		}
	}
	if p.Latitude != nil && p.Longitude != nil {
		p.Geohash = geohash.EncodeWithPrecision(*p.Latitude, *p.Longitude, 8)
	}
}

// PrimaryImageURL выбирает изображение для карточки объекта:
// помеченное is_primary, иначе первое, иначе заглушка.
func (p Property) PrimaryImageURL() string {
	for _, img := range p.Images {
		if img.IsPrimary {
			return img.URL
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].URL
	}
	return FallbackImageURL
}
