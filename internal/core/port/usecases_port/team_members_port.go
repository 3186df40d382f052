package usecases_port

import (
	"context"

	"listing-service/internal/core/domain"
)

type GetTeamMembersUseCase interface {
	Execute(ctx context.Context) ([]domain.TeamMember, error)
}

type SaveTeamMemberUseCase interface {
	Execute(ctx context.Context, member domain.TeamMember) (*domain.TeamMember, error)
}

// ReorderTeamMembersUseCase меняет местами order_number двух сотрудников.
type ReorderTeamMembersUseCase interface {
	Execute(ctx context.Context, firstID, secondID string) error
}
