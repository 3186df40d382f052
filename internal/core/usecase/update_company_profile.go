package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"listing-service/internal/constants"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

type UpdateCompanyProfileUseCase struct {
	records  port.RecordStorePort
	sessions port.SessionPort
	cache    port.QueryCachePort
}

func NewUpdateCompanyProfileUseCase(records port.RecordStorePort, sessions port.SessionPort, cache port.QueryCachePort) *UpdateCompanyProfileUseCase {
	return &UpdateCompanyProfileUseCase{records: records, sessions: sessions, cache: cache}
}

// Execute обновляет профиль компании или создает его, если записи еще
// нет. Владельцем новой записи становится текущая сессия.
func (uc *UpdateCompanyProfileUseCase) Execute(ctx context.Context, profile domain.CompanyProfile) (*domain.CompanyProfile, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "UpdateCompanyProfile"})

	if profile.Name == "" {
		return nil, fmt.Errorf("company name is required: %w", domain.ErrValidation)
	}

	row, err := companyProfileRow(profile)
	if err != nil {
		return nil, err
	}
	row["updated_at"] = time.Now().UTC().Format(time.RFC3339)

	existing, err := uc.records.SelectSingle(ctx, port.RecordQuery{
		Collection: constants.CollectionCompanyProfile,
		Columns:    []string{"id"},
		Limit:      1,
	})

	var saved json.RawMessage
	switch {
	case err == nil:
		var current struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(existing, &current); err != nil {
			return nil, fmt.Errorf("failed to decode existing profile: %w", err)
		}
		saved, err = uc.records.Update(ctx, constants.CollectionCompanyProfile,
			[]port.Filter{{Column: "id", Op: port.OpEq, Value: current.ID}}, row)
		if err != nil {
			ucLogger.Error("Failed to update company profile", err, nil)
			return nil, err
		}
	case errors.Is(err, domain.ErrNotFound):
		session, err := uc.sessions.CurrentSession(ctx)
		if err != nil {
			return nil, err
		}
		row["user_id"] = session.UserID
		saved, err = uc.records.Insert(ctx, constants.CollectionCompanyProfile, []map[string]interface{}{row})
		if err != nil {
			ucLogger.Error("Failed to create company profile", err, nil)
			return nil, err
		}
	default:
		ucLogger.Error("Failed to look up company profile", err, nil)
		return nil, err
	}

	var profiles []domain.CompanyProfile
	if err := json.Unmarshal(saved, &profiles); err != nil || len(profiles) == 0 {
		return nil, fmt.Errorf("failed to decode saved company profile: %w", err)
	}

	uc.cache.Invalidate(constants.CompanyProfileKey())

	ucLogger.Info("Use case finished successfully", nil)
	return &profiles[0], nil
}

func companyProfileRow(profile domain.CompanyProfile) (map[string]interface{}, error) {
	encoded, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to encode company profile: %w", err)
	}
	var row map[string]interface{}
	if err := json.Unmarshal(encoded, &row); err != nil {
		return nil, fmt.Errorf("failed to build company profile row: %w", err)
	}
	delete(row, "id")
	delete(row, "user_id") // владелец не меняется через форму
	delete(row, "updated_at")
	return row, nil
}
