package rest

import (
	"net/http"
	"strconv"

	"listing-service/internal/core/domain"
	"listing-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

// CatalogHandler обслуживает публичную витрину: каталог, поиск,
// профиль компании и команду.
type CatalogHandler struct {
	getProperties  usecases_port.GetPropertiesUseCase
	getFeatured    usecases_port.GetFeaturedPropertiesUseCase
	getByCategory  usecases_port.GetPropertiesByCategoryUseCase
	getByID        usecases_port.GetPropertyByIDUseCase
	search         usecases_port.SearchPropertiesUseCase
	companyProfile usecases_port.GetCompanyProfileUseCase
	teamMembers    usecases_port.GetTeamMembersUseCase
}

func NewCatalogHandler(
	getProperties usecases_port.GetPropertiesUseCase,
	getFeatured usecases_port.GetFeaturedPropertiesUseCase,
	getByCategory usecases_port.GetPropertiesByCategoryUseCase,
	getByID usecases_port.GetPropertyByIDUseCase,
	search usecases_port.SearchPropertiesUseCase,
	companyProfile usecases_port.GetCompanyProfileUseCase,
	teamMembers usecases_port.GetTeamMembersUseCase,
) *CatalogHandler {
	return &CatalogHandler{
		getProperties:  getProperties,
		getFeatured:    getFeatured,
		getByCategory:  getByCategory,
		getByID:        getByID,
		search:         search,
		companyProfile: companyProfile,
		teamMembers:    teamMembers,
	}
}

func (h *CatalogHandler) GetProperties(w http.ResponseWriter, r *http.Request) {
	properties, err := h.getProperties.Execute(r.Context())
	if err != nil {
		RespondWithDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toPropertyList(properties))
}

func (h *CatalogHandler) GetFeaturedProperties(w http.ResponseWriter, r *http.Request) {
	properties, err := h.getFeatured.Execute(r.Context())
	if err != nil {
		RespondWithDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toPropertyList(properties))
}

func (h *CatalogHandler) GetPropertiesByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	properties, err := h.getByCategory.Execute(r.Context(), domain.PropertyType(category))
	if err != nil {
		RespondWithDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toPropertyList(properties))
}

func (h *CatalogHandler) GetPropertyByID(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyID")

	property, err := h.getByID.Execute(r.Context(), propertyID)
	if err != nil {
		RespondWithDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, DataResponse{Data: property})
}

func (h *CatalogHandler) SearchProperties(w http.ResponseWriter, r *http.Request) {
	filters, err := parseSearchFilters(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	properties, err := h.search.Execute(r.Context(), filters)
	if err != nil {
		RespondWithDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toPropertyList(properties))
}

func (h *CatalogHandler) GetCompanyProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.companyProfile.Execute(r.Context())
	if err != nil {
		RespondWithDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, DataResponse{Data: profile})
}

func (h *CatalogHandler) GetTeamMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.teamMembers.Execute(r.Context())
	if err != nil {
		RespondWithDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, DataResponse{Data: members})
}

// parseSearchFilters читает параметры поиска из строки запроса.
// Числовые параметры с мусором — это ошибка клиента, а не пустой фильтр.
func parseSearchFilters(r *http.Request) (domain.SearchFilters, error) {
	query := r.URL.Query()
	filters := domain.SearchFilters{
		Location: query.Get("location"),
		Currency: query.Get("currency"),
		SortBy:   query.Get("sort_by"),
	}

	if raw := query.Get("min_price"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filters, err
		}
		filters.MinPrice = &value
	}
	if raw := query.Get("max_price"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filters, err
		}
		filters.MaxPrice = &value
	}
	if raw := query.Get("min_bedrooms"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return filters, err
		}
		filters.MinBedrooms = &value
	}
	if raw := query.Get("min_bathrooms"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return filters, err
		}
		filters.MinBathrooms = &value
	}

	return filters, nil
}
