package rest

import "listing-service/internal/core/domain"

// CreateLeadRequest — тело контактной формы.
type CreateLeadRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Message    string `json:"message"`
	PropertyID string `json:"property_id"`
	Source     string `json:"source"`
}

// UpdateLeadRequest — частичное обновление лида. Отсутствующее поле
// не трогается.
type UpdateLeadRequest struct {
	Status      *string `json:"status"`
	Notes       *string `json:"notes"`
	LastContact *string `json:"last_contact"`
}

type ReorderTeamMembersRequest struct {
	FirstID  string `json:"first_id"`
	SecondID string `json:"second_id"`
}

// PropertyCardResponse — карточка объекта в списках каталога.
type PropertyCardResponse struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Price         float64 `json:"price"`
	Currency      string  `json:"currency"`
	Address       string  `json:"address"`
	City          string  `json:"city"`
	Bedrooms      int     `json:"bedrooms"`
	Bathrooms     int     `json:"bathrooms"`
	AreaM2        float64 `json:"area_m2"`
	PropertyType  string  `json:"property_type"`
	OperationType string  `json:"operation_type"`
	Featured      bool    `json:"featured"`
	ImageURL      string  `json:"image_url"`
}

func toPropertyCard(p domain.Property) PropertyCardResponse {
	return PropertyCardResponse{
		ID:            p.ID,
		Title:         p.Title,
		Price:         p.Price,
		Currency:      p.Currency,
		Address:       p.Address,
		City:          p.City,
		Bedrooms:      p.Bedrooms,
		Bathrooms:     p.Bathrooms,
		AreaM2:        p.AreaM2,
		PropertyType:  string(p.PropertyType),
		OperationType: string(p.OperationType),
		Featured:      p.Featured,
		ImageURL:      p.PrimaryImageURL(),
	}
}

// PropertyListResponse — список карточек.
type PropertyListResponse struct {
	Data  []PropertyCardResponse `json:"data"`
	Total int                    `json:"total"`
}

func toPropertyList(properties []domain.Property) PropertyListResponse {
	cards := make([]PropertyCardResponse, len(properties))
	for i, p := range properties {
		cards[i] = toPropertyCard(p)
	}
	return PropertyListResponse{Data: cards, Total: len(cards)}
}

// DataResponse — обертка одиночного ответа.
type DataResponse struct {
	Data interface{} `json:"data"`
}
