package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"listing-service/internal/constants"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/port"
)

type ReorderTeamMembersUseCase struct {
	records port.RecordStorePort
	cache   port.QueryCachePort
}

func NewReorderTeamMembersUseCase(records port.RecordStorePort, cache port.QueryCachePort) *ReorderTeamMembersUseCase {
	return &ReorderTeamMembersUseCase{records: records, cache: cache}
}

// Execute меняет местами порядковые номера двух сотрудников.
// Перестановка всегда парная, полного пересчета списка нет.
func (uc *ReorderTeamMembersUseCase) Execute(ctx context.Context, firstID, secondID string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":  "ReorderTeamMembers",
		"first_id":  firstID,
		"second_id": secondID,
	})

	first, err := uc.orderNumber(ctx, firstID)
	if err != nil {
		return err
	}
	second, err := uc.orderNumber(ctx, secondID)
	if err != nil {
		return err
	}

	if _, err := uc.records.Update(ctx, constants.CollectionTeamMembers,
		[]port.Filter{{Column: "id", Op: port.OpEq, Value: firstID}},
		map[string]interface{}{"order_number": second}); err != nil {
		ucLogger.Error("Failed to reorder team member", err, nil)
		return err
	}
	if _, err := uc.records.Update(ctx, constants.CollectionTeamMembers,
		[]port.Filter{{Column: "id", Op: port.OpEq, Value: secondID}},
		map[string]interface{}{"order_number": first}); err != nil {
		ucLogger.Error("Failed to reorder team member", err, nil)
		return err
	}

	uc.cache.Invalidate(constants.TeamMembersKey())

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}

func (uc *ReorderTeamMembersUseCase) orderNumber(ctx context.Context, memberID string) (int, error) {
	row, err := uc.records.SelectSingle(ctx, port.RecordQuery{
		Collection: constants.CollectionTeamMembers,
		Columns:    []string{"order_number"},
		Filters:    []port.Filter{{Column: "id", Op: port.OpEq, Value: memberID}},
	})
	if err != nil {
		return 0, fmt.Errorf("team member %q: %w", memberID, err)
	}
	var member struct {
		OrderNumber int `json:"order_number"`
	}
	if err := json.Unmarshal(row, &member); err != nil {
		return 0, err
	}
	return member.OrderNumber, nil
}
