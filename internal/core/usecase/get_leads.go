package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"listing-service/internal/constants"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

type GetLeadsUseCase struct {
	records port.RecordStorePort
}

func NewGetLeadsUseCase(records port.RecordStorePort) *GetLeadsUseCase {
	return &GetLeadsUseCase{records: records}
}

// Execute возвращает лиды владельца, новые сверху. Админка всегда
// хочет свежие данные, поэтому кэш здесь не используется.
func (uc *GetLeadsUseCase) Execute(ctx context.Context, ownerID string, status domain.LeadStatus) ([]domain.Lead, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetLeads",
		"owner_id": ownerID,
		"status":   status,
	})

	filters := []port.Filter{{Column: "user_id", Op: port.OpEq, Value: ownerID}}
	if status != "" {
		filters = append(filters, port.Filter{Column: "status", Op: port.OpEq, Value: string(status)})
	}

	rows, err := uc.records.Select(ctx, port.RecordQuery{
		Collection: constants.CollectionLeads,
		Filters:    filters,
		Sort:       &port.Sort{Column: "created_at", Descending: true},
	})
	if err != nil {
		ucLogger.Error("Record store returned an error", err, nil)
		return nil, err
	}

	leads := make([]domain.Lead, 0)
	if err := json.Unmarshal(rows, &leads); err != nil {
		return nil, fmt.Errorf("failed to decode leads payload: %w", err)
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"total_found": len(leads)})
	return leads, nil
}
