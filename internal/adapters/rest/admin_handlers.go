package rest

import (
	"encoding/json"
	"io"
	"net/http"

	"listing-service/internal/contracts"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

// maxImageUploadSize ограничивает размер загружаемого фото.
const maxImageUploadSize = 10 << 20

// AdminHandler обслуживает бэк-офис: объекты, изображения, профиль
// компании и команду.
type AdminHandler struct {
	saveProperty    usecases_port.SavePropertyUseCase
	deleteProperty  usecases_port.DeletePropertyUseCase
	uploadImage     usecases_port.UploadPropertyImageUseCase
	setPrimaryImage usecases_port.SetPrimaryImageUseCase
	deleteImage     usecases_port.DeletePropertyImageUseCase
	updateProfile   usecases_port.UpdateCompanyProfileUseCase
	saveTeamMember  usecases_port.SaveTeamMemberUseCase
	reorderTeam     usecases_port.ReorderTeamMembersUseCase
}

func NewAdminHandler(
	saveProperty usecases_port.SavePropertyUseCase,
	deleteProperty usecases_port.DeletePropertyUseCase,
	uploadImage usecases_port.UploadPropertyImageUseCase,
	setPrimaryImage usecases_port.SetPrimaryImageUseCase,
	deleteImage usecases_port.DeletePropertyImageUseCase,
	updateProfile usecases_port.UpdateCompanyProfileUseCase,
	saveTeamMember usecases_port.SaveTeamMemberUseCase,
	reorderTeam usecases_port.ReorderTeamMembersUseCase,
) *AdminHandler {
	return &AdminHandler{
		saveProperty:    saveProperty,
		deleteProperty:  deleteProperty,
		uploadImage:     uploadImage,
		setPrimaryImage: setPrimaryImage,
		deleteImage:     deleteImage,
		updateProfile:   updateProfile,
		saveTeamMember:  saveTeamMember,
		reorderTeam:     reorderTeam,
	}
}

// SaveProperty принимает и создание, и обновление: id в теле решает.
func (h *AdminHandler) SaveProperty(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	if err := contracts.ValidateRequest("PropertySaveRequest", "1.0.0", body); err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	var property domain.Property
	if err := json.Unmarshal(body, &property); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	saved, err := h.saveProperty.Execute(r.Context(), property)
	if err != nil {
		RespondWithDomainError(w, err)
		return
	}

	status := http.StatusOK
	if property.ID == "" {
		status = http.StatusCreated
	}
	RespondWithJSON(w, status, DataResponse{Data: saved})
}

func (h *AdminHandler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyID")

	if err := h.deleteProperty.Execute(r.Context(), propertyID); err != nil {
		RespondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadImage принимает multipart-форму с полем "file".
func (h *AdminHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyID")

	if err := r.ParseMultipartForm(maxImageUploadSize); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageUploadSize))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	image, err := h.uploadImage.Execute(r.Context(), usecases_port.UploadPropertyImageInput{
		PropertyID:  propertyID,
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
		IsPrimary:   r.FormValue("is_primary") == "true",
	})
	if err != nil {
		RespondWithDomainError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusCreated, DataResponse{Data: image})
}

func (h *AdminHandler) SetPrimaryImage(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyID")
	imageID := chi.URLParam(r, "imageID")

	if err := h.setPrimaryImage.Execute(r.Context(), propertyID, imageID); err != nil {
		RespondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	imageID := chi.URLParam(r, "imageID")

	if err := h.deleteImage.Execute(r.Context(), imageID); err != nil {
		RespondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) UpdateCompanyProfile(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	if err := contracts.ValidateRequest("CompanyProfileSaveRequest", "1.0.0", body); err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	var profile domain.CompanyProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	saved, err := h.updateProfile.Execute(r.Context(), profile)
	if err != nil {
		RespondWithDomainError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, DataResponse{Data: saved})
}

func (h *AdminHandler) SaveTeamMember(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	if err := contracts.ValidateRequest("TeamMemberSaveRequest", "1.0.0", body); err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	var member domain.TeamMember
	if err := json.Unmarshal(body, &member); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	saved, err := h.saveTeamMember.Execute(r.Context(), member)
	if err != nil {
		RespondWithDomainError(w, err)
		return
	}

	status := http.StatusOK
	if member.ID == "" {
		status = http.StatusCreated
	}
	RespondWithJSON(w, status, DataResponse{Data: saved})
}

func (h *AdminHandler) ReorderTeamMembers(w http.ResponseWriter, r *http.Request) {
	var req ReorderTeamMembersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.FirstID == "" || req.SecondID == "" {
		WriteJSONError(w, http.StatusBadRequest, "first_id and second_id are required")
		return
	}

	if err := h.reorderTeam.Execute(r.Context(), req.FirstID, req.SecondID); err != nil {
		RespondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
