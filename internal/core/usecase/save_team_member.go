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

type SaveTeamMemberUseCase struct {
	records  port.RecordStorePort
	sessions port.SessionPort
	cache    port.QueryCachePort
}

func NewSaveTeamMemberUseCase(records port.RecordStorePort, sessions port.SessionPort, cache port.QueryCachePort) *SaveTeamMemberUseCase {
	return &SaveTeamMemberUseCase{records: records, sessions: sessions, cache: cache}
}

// Execute создает сотрудника (пустой ID) или обновляет существующего.
// Новый сотрудник встает в конец списка.
func (uc *SaveTeamMemberUseCase) Execute(ctx context.Context, member domain.TeamMember) (*domain.TeamMember, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":  "SaveTeamMember",
		"member_id": member.ID,
	})

	if member.Name == "" {
		return nil, fmt.Errorf("team member name is required: %w", domain.ErrValidation)
	}

	row, err := teamMemberRow(member)
	if err != nil {
		return nil, err
	}

	var saved json.RawMessage
	if member.ID == "" {
		session, err := uc.sessions.CurrentSession(ctx)
		if err != nil {
			return nil, err
		}
		row["user_id"] = session.UserID
		row["order_number"], err = uc.nextOrderNumber(ctx)
		if err != nil {
			return nil, err
		}
		saved, err = uc.records.Insert(ctx, constants.CollectionTeamMembers, []map[string]interface{}{row})
		if err != nil {
			ucLogger.Error("Failed to create team member", err, nil)
			return nil, err
		}
	} else {
		row["updated_at"] = time.Now().UTC().Format(time.RFC3339)
		saved, err = uc.records.Update(ctx, constants.CollectionTeamMembers,
			[]port.Filter{{Column: "id", Op: port.OpEq, Value: member.ID}}, row)
		if err != nil {
			ucLogger.Error("Failed to update team member", err, nil)
			return nil, err
		}
	}

	var members []domain.TeamMember
	if err := json.Unmarshal(saved, &members); err != nil {
		return nil, fmt.Errorf("failed to decode saved team member: %w", err)
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("team member %q: %w", member.ID, domain.ErrNotFound)
	}

	uc.cache.Invalidate(constants.TeamMembersKey())

	ucLogger.Info("Use case finished successfully", port.Fields{"member_id": members[0].ID})
	return &members[0], nil
}

func (uc *SaveTeamMemberUseCase) nextOrderNumber(ctx context.Context) (int, error) {
	row, err := uc.records.SelectSingle(ctx, port.RecordQuery{
		Collection: constants.CollectionTeamMembers,
		Columns:    []string{"order_number"},
		Sort:       &port.Sort{Column: "order_number", Descending: true},
		Limit:      1,
	})
	if errors.Is(err, domain.ErrNotFound) {
		// пустая коллекция: первый сотрудник
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("last order number: %w", err)
	}
	var last struct {
		OrderNumber int `json:"order_number"`
	}
	if err := json.Unmarshal(row, &last); err != nil {
		return 0, err
	}
	return last.OrderNumber + 1, nil
}

func teamMemberRow(member domain.TeamMember) (map[string]interface{}, error) {
	encoded, err := json.Marshal(member)
	if err != nil {
		return nil, fmt.Errorf("failed to encode team member: %w", err)
	}
	var row map[string]interface{}
	if err := json.Unmarshal(encoded, &row); err != nil {
		return nil, fmt.Errorf("failed to build team member row: %w", err)
	}
	delete(row, "id")
	delete(row, "user_id")
	delete(row, "order_number") // порядок меняется только перестановкой
	delete(row, "updated_at")
	return row, nil
}
