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

type GetTeamMembersUseCase struct {
	records port.RecordStorePort
	cache   port.QueryCachePort
}

func NewGetTeamMembersUseCase(records port.RecordStorePort, cache port.QueryCachePort) *GetTeamMembersUseCase {
	return &GetTeamMembersUseCase{records: records, cache: cache}
}

// Execute отдает активных сотрудников в порядке показа.
func (uc *GetTeamMembersUseCase) Execute(ctx context.Context) ([]domain.TeamMember, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "GetTeamMembers"})

	raw, err := uc.cache.Fetch(ctx, constants.TeamMembersKey(), constants.ProfileTTL, func(ctx context.Context) (json.RawMessage, error) {
		return uc.records.Select(ctx, port.RecordQuery{
			Collection: constants.CollectionTeamMembers,
			Filters:    []port.Filter{{Column: "is_active", Op: port.OpEq, Value: "true"}},
			Sort:       &port.Sort{Column: "order_number"},
		})
	})
	if raw == nil {
		ucLogger.Error("Use case failed", err, nil)
		return nil, err
	}
	if err != nil {
		ucLogger.Warn("Serving stale team list after refresh failure", port.Fields{"error": err.Error()})
	}

	members := make([]domain.TeamMember, 0)
	if err := json.Unmarshal(raw, &members); err != nil {
		return nil, fmt.Errorf("failed to decode team members payload: %w", err)
	}

	ucLogger.Debug("Use case finished successfully", port.Fields{"total_found": len(members)})
	return members, nil
}
