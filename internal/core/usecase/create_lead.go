package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"listing-service/internal/constants"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/internal/core/port/usecases_port"
)

type CreateLeadUseCase struct {
	records       port.RecordStorePort
	notifier      usecases_port.SendLeadNotificationUseCase
	autoResponder usecases_port.SendLeadAutoResponseUseCase
}

func NewCreateLeadUseCase(
	records port.RecordStorePort,
	notifier usecases_port.SendLeadNotificationUseCase,
	autoResponder usecases_port.SendLeadAutoResponseUseCase,
) *CreateLeadUseCase {
	return &CreateLeadUseCase{
		records:       records,
		notifier:      notifier,
		autoResponder: autoResponder,
	}
}

// Execute создает лид и запускает отправку писем в фоне.
// Создание лида — первичное действие: ни таймаут, ни отказ почтовой
// функции не должны его провалить.
func (uc *CreateLeadUseCase) Execute(ctx context.Context, input usecases_port.CreateLeadInput) (*domain.Lead, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "CreateLead",
		"property_id": input.PropertyID,
		"source":      input.Source,
	})

	ucLogger.Info("Use case started", nil)

	source := input.Source
	if source == "" {
		source = domain.LeadSourceWebsite
	}

	ownerID, err := uc.resolveOwner(ctx, input)
	if err != nil {
		ucLogger.Error("Failed to resolve lead owner", err, nil)
		return nil, err
	}

	row := map[string]interface{}{
		"name":    input.Name,
		"email":   input.Email,
		"phone":   input.Phone,
		"message": input.Message,
		"user_id": ownerID,
		"status":  string(domain.LeadStatusNew),
		"source":  string(source),
	}
	if input.PropertyID != "" {
		row["property_id"] = input.PropertyID
	}

	inserted, err := uc.records.Insert(ctx, constants.CollectionLeads, []map[string]interface{}{row})
	if err != nil {
		ucLogger.Error("Failed to insert lead", err, nil)
		return nil, err
	}

	var leads []domain.Lead
	if err := json.Unmarshal(inserted, &leads); err != nil || len(leads) == 0 {
		return nil, fmt.Errorf("failed to decode inserted lead: %w", err)
	}
	lead := leads[0]

	// Письма — best-effort и в отдельной горутине: ответ формы
	// не ждет почтовую функцию. Контекст отвязываем от запроса,
	// чтобы завершение HTTP-запроса не оборвало отправку.
	detached := contextkeys.ContextWithLogger(context.WithoutCancel(ctx), logger)
	go func() {
		uc.notifier.Execute(detached, lead, "")
		uc.autoResponder.Execute(detached, lead)
	}()

	ucLogger.Info("Use case finished successfully", port.Fields{"lead_id": lead.ID})
	return &lead, nil
}

// resolveOwner определяет владельца лида: явный user_id, иначе владелец
// объекта, иначе владелец профиля компании.
func (uc *CreateLeadUseCase) resolveOwner(ctx context.Context, input usecases_port.CreateLeadInput) (string, error) {
	if input.UserID != "" {
		return input.UserID, nil
	}

	if input.PropertyID != "" {
		row, err := uc.records.SelectSingle(ctx, port.RecordQuery{
			Collection: constants.CollectionProperties,
			Columns:    []string{"user_id"},
			Filters:    []port.Filter{{Column: "id", Op: port.OpEq, Value: input.PropertyID}},
		})
		if err != nil {
			return "", fmt.Errorf("property %q: %w", input.PropertyID, err)
		}
		var owner struct {
			UserID string `json:"user_id"`
		}
		if err := json.Unmarshal(row, &owner); err == nil && owner.UserID != "" {
			return owner.UserID, nil
		}
	}

	row, err := uc.records.SelectSingle(ctx, port.RecordQuery{
		Collection: constants.CollectionCompanyProfile,
		Columns:    []string{"user_id"},
		Limit:      1,
	})
	if err != nil {
		return "", fmt.Errorf("company profile owner: %w", err)
	}
	var owner struct {
		UserID string `json:"user_id"`
	}
	if err := json.Unmarshal(row, &owner); err != nil {
		return "", err
	}
	return owner.UserID, nil
}
