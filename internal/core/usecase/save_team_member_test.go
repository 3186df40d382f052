package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"listing-service/internal/constants"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"

	"github.com/stretchr/testify/require"
)

func TestSaveTeamMember_CreateAppendsToEndOfList(t *testing.T) {
	store := &fakeRecordStore{
		SelectSingleFn: func(ctx context.Context, q port.RecordQuery) (json.RawMessage, error) {
			require.Equal(t, constants.CollectionTeamMembers, q.Collection)
			return json.RawMessage(`{"order_number":4}`), nil
		},
		InsertFn: func(ctx context.Context, collection string, rows []map[string]interface{}) (json.RawMessage, error) {
			return json.RawMessage(`[{"id":"M5","name":"Sofia","order_number":5}]`), nil
		},
	}
	sessions := &fakeSessions{
		CurrentSessionFn: func(ctx context.Context) (*domain.Session, error) {
			return &domain.Session{UserID: "U1"}, nil
		},
	}
	cache := &passthroughCache{}

	uc := NewSaveTeamMemberUseCase(store, sessions, cache)
	member, err := uc.Execute(context.Background(), domain.TeamMember{Name: "Sofia", Position: "Agente"})
	require.NoError(t, err)
	require.Equal(t, "M5", member.ID)

	row := store.insertedInto(constants.CollectionTeamMembers)[0].Rows[0]
	require.Equal(t, "U1", row["user_id"])
	require.Equal(t, 5, row["order_number"])
	require.Contains(t, cache.invalidatedKeys(), constants.TeamMembersKey().String())
}

func TestSaveTeamMember_FirstMemberGetsOrderOne(t *testing.T) {
	store := &fakeRecordStore{
		SelectSingleFn: func(ctx context.Context, q port.RecordQuery) (json.RawMessage, error) {
			return nil, domain.ErrNotFound
		},
		InsertFn: func(ctx context.Context, collection string, rows []map[string]interface{}) (json.RawMessage, error) {
			return json.RawMessage(`[{"id":"M1","name":"Sofia","order_number":1}]`), nil
		},
	}
	sessions := &fakeSessions{
		CurrentSessionFn: func(ctx context.Context) (*domain.Session, error) {
			return &domain.Session{UserID: "U1"}, nil
		},
	}

	uc := NewSaveTeamMemberUseCase(store, sessions, &passthroughCache{})
	_, err := uc.Execute(context.Background(), domain.TeamMember{Name: "Sofia"})
	require.NoError(t, err)

	row := store.insertedInto(constants.CollectionTeamMembers)[0].Rows[0]
	require.Equal(t, 1, row["order_number"])
}

func TestSaveTeamMember_OrderLookupFailureAbortsCreate(t *testing.T) {
	lookupErr := errors.New("backend unavailable")
	store := &fakeRecordStore{
		SelectSingleFn: func(ctx context.Context, q port.RecordQuery) (json.RawMessage, error) {
			return nil, lookupErr
		},
	}
	sessions := &fakeSessions{
		CurrentSessionFn: func(ctx context.Context) (*domain.Session, error) {
			return &domain.Session{UserID: "U1"}, nil
		},
	}

	uc := NewSaveTeamMemberUseCase(store, sessions, &passthroughCache{})
	_, err := uc.Execute(context.Background(), domain.TeamMember{Name: "Sofia"})
	require.ErrorIs(t, err, lookupErr)
	require.Empty(t, store.insertedInto(constants.CollectionTeamMembers),
		"a transient failure must not hand out order number 1")
}

func TestSaveTeamMember_CreateRequiresSession(t *testing.T) {
	uc := NewSaveTeamMemberUseCase(&fakeRecordStore{}, &fakeSessions{}, &passthroughCache{})

	_, err := uc.Execute(context.Background(), domain.TeamMember{Name: "Sofia"})
	require.ErrorIs(t, err, domain.ErrNoSession)
}

func TestSaveTeamMember_UpdateDoesNotTouchOrder(t *testing.T) {
	store := &fakeRecordStore{
		UpdateFn: func(ctx context.Context, collection string, filters []port.Filter, patch map[string]interface{}) (json.RawMessage, error) {
			require.NotContains(t, patch, "order_number", "order changes only through reordering")
			require.NotContains(t, patch, "user_id")
			return json.RawMessage(`[{"id":"M2","name":"Sofia Vega"}]`), nil
		},
	}

	uc := NewSaveTeamMemberUseCase(store, &fakeSessions{}, &passthroughCache{})
	member, err := uc.Execute(context.Background(), domain.TeamMember{ID: "M2", Name: "Sofia Vega"})
	require.NoError(t, err)
	require.Equal(t, "Sofia Vega", member.Name)
}

func TestSaveTeamMember_RejectsEmptyName(t *testing.T) {
	uc := NewSaveTeamMemberUseCase(&fakeRecordStore{}, &fakeSessions{}, &passthroughCache{})

	_, err := uc.Execute(context.Background(), domain.TeamMember{Position: "Agente"})
	require.ErrorIs(t, err, domain.ErrValidation)
}
