package rest

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"listing-service/internal/contextkeys"
	"listing-service/internal/contracts"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

// LeadHandler обслуживает контактную форму и воронку лидов в админке.
type LeadHandler struct {
	createLead usecases_port.CreateLeadUseCase
	getLeads   usecases_port.GetLeadsUseCase
	updateLead usecases_port.UpdateLeadUseCase
}

func NewLeadHandler(
	createLead usecases_port.CreateLeadUseCase,
	getLeads usecases_port.GetLeadsUseCase,
	updateLead usecases_port.UpdateLeadUseCase,
) *LeadHandler {
	return &LeadHandler{
		createLead: createLead,
		getLeads:   getLeads,
		updateLead: updateLead,
	}
}

// CreateLead — публичная точка контактной формы.
func (h *LeadHandler) CreateLead(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	if err := contracts.ValidateRequest("LeadCreateRequest", "1.0.0", body); err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req CreateLeadRequest
	if err := json.Unmarshal(body, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	lead, err := h.createLead.Execute(r.Context(), usecases_port.CreateLeadInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Message:    req.Message,
		PropertyID: req.PropertyID,
		Source:     domain.LeadSource(req.Source),
	})
	if err != nil {
		RespondWithDomainError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusCreated, DataResponse{Data: lead})
}

// GetLeads — лиды владельца текущей сессии, опционально по статусу.
func (h *LeadHandler) GetLeads(w http.ResponseWriter, r *http.Request) {
	session := contextkeys.SessionFromContext(r.Context())
	if session == nil {
		WriteJSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	status := domain.LeadStatus(r.URL.Query().Get("status"))
	leads, err := h.getLeads.Execute(r.Context(), session.UserID, status)
	if err != nil {
		RespondWithDomainError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, DataResponse{Data: leads})
}

func (h *LeadHandler) UpdateLead(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "leadID")

	var req UpdateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	input := usecases_port.UpdateLeadInput{Notes: req.Notes}
	if req.Status != nil {
		status := domain.LeadStatus(*req.Status)
		input.Status = &status
	}
	if req.LastContact != nil {
		parsed, err := time.Parse(time.RFC3339, *req.LastContact)
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, "last_contact must be RFC3339")
			return
		}
		input.LastContact = &parsed
	}

	lead, err := h.updateLead.Execute(r.Context(), leadID, input)
	if err != nil {
		RespondWithDomainError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, DataResponse{Data: lead})
}
