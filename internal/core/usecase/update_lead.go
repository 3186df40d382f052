package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"listing-service/internal/constants"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/internal/core/port/usecases_port"
)

type UpdateLeadUseCase struct {
	records port.RecordStorePort
}

func NewUpdateLeadUseCase(records port.RecordStorePort) *UpdateLeadUseCase {
	return &UpdateLeadUseCase{records: records}
}

func (uc *UpdateLeadUseCase) Execute(ctx context.Context, leadID string, input usecases_port.UpdateLeadInput) (*domain.Lead, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "UpdateLead",
		"lead_id":  leadID,
	})

	patch := map[string]interface{}{
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	}
	if input.Status != nil {
		patch["status"] = string(*input.Status)
		// смена статуса считается контактом
		patch["last_contact"] = time.Now().UTC().Format(time.RFC3339)
	}
	if input.Notes != nil {
		patch["notes"] = *input.Notes
	}
	if input.LastContact != nil {
		patch["last_contact"] = input.LastContact.UTC().Format(time.RFC3339)
	}

	updated, err := uc.records.Update(ctx, constants.CollectionLeads,
		[]port.Filter{{Column: "id", Op: port.OpEq, Value: leadID}}, patch)
	if err != nil {
		ucLogger.Error("Failed to update lead", err, nil)
		return nil, err
	}

	var leads []domain.Lead
	if err := json.Unmarshal(updated, &leads); err != nil {
		return nil, fmt.Errorf("failed to decode updated lead: %w", err)
	}
	if len(leads) == 0 {
		return nil, fmt.Errorf("lead %q: %w", leadID, domain.ErrNotFound)
	}

	ucLogger.Info("Use case finished successfully", nil)
	return &leads[0], nil
}
