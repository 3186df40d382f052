package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"listing-service/internal/constants"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/internal/core/port/usecases_port"

	"github.com/stretchr/testify/require"
)

func leadStatusPtr(s domain.LeadStatus) *domain.LeadStatus { return &s }
func stringPtr(s string) *string                           { return &s }

func TestUpdateLead_StatusChangeCountsAsContact(t *testing.T) {
	store := &fakeRecordStore{
		UpdateFn: func(ctx context.Context, collection string, filters []port.Filter, patch map[string]interface{}) (json.RawMessage, error) {
			require.Equal(t, constants.CollectionLeads, collection)
			require.Contains(t, filters, port.Filter{Column: "id", Op: port.OpEq, Value: "L1"})
			require.Equal(t, "contacted", patch["status"])
			require.Contains(t, patch, "last_contact")
			return json.RawMessage(`[{"id":"L1","status":"contacted"}]`), nil
		},
	}

	uc := NewUpdateLeadUseCase(store)
	lead, err := uc.Execute(context.Background(), "L1", usecases_port.UpdateLeadInput{
		Status: leadStatusPtr(domain.LeadStatusContacted),
	})
	require.NoError(t, err)
	require.Equal(t, domain.LeadStatusContacted, lead.Status)
}

func TestUpdateLead_NotesOnlyDoesNotTouchContact(t *testing.T) {
	store := &fakeRecordStore{
		UpdateFn: func(ctx context.Context, collection string, filters []port.Filter, patch map[string]interface{}) (json.RawMessage, error) {
			require.Equal(t, "llamar el lunes", patch["notes"])
			require.NotContains(t, patch, "status")
			require.NotContains(t, patch, "last_contact")
			return json.RawMessage(`[{"id":"L1","notes":"llamar el lunes"}]`), nil
		},
	}

	uc := NewUpdateLeadUseCase(store)
	_, err := uc.Execute(context.Background(), "L1", usecases_port.UpdateLeadInput{
		Notes: stringPtr("llamar el lunes"),
	})
	require.NoError(t, err)
}

func TestUpdateLead_EmptyResultIsNotFound(t *testing.T) {
	store := &fakeRecordStore{
		UpdateFn: func(ctx context.Context, collection string, filters []port.Filter, patch map[string]interface{}) (json.RawMessage, error) {
			return json.RawMessage(`[]`), nil
		},
	}

	uc := NewUpdateLeadUseCase(store)
	lead, err := uc.Execute(context.Background(), "ghost", usecases_port.UpdateLeadInput{
		Notes: stringPtr("nota"),
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.Nil(t, lead)
}

func TestReorderTeamMembers_SwapsOrderNumbers(t *testing.T) {
	orders := map[string]int{"M1": 1, "M2": 2}
	store := &fakeRecordStore{
		SelectSingleFn: func(ctx context.Context, q port.RecordQuery) (json.RawMessage, error) {
			id := q.Filters[0].Value
			return json.Marshal(map[string]int{"order_number": orders[id]})
		},
	}
	cache := &passthroughCache{}

	uc := NewReorderTeamMembersUseCase(store, cache)
	require.NoError(t, uc.Execute(context.Background(), "M1", "M2"))

	require.Len(t, store.updates, 2)
	require.Equal(t, 2, store.updates[0].Patch["order_number"])
	require.Equal(t, "M1", store.updates[0].Filters[0].Value)
	require.Equal(t, 1, store.updates[1].Patch["order_number"])
	require.Equal(t, "M2", store.updates[1].Filters[0].Value)

	require.Contains(t, cache.invalidatedKeys(), constants.TeamMembersKey().String())
}

func TestReorderTeamMembers_UnknownMemberFails(t *testing.T) {
	store := &fakeRecordStore{
		SelectSingleFn: func(ctx context.Context, q port.RecordQuery) (json.RawMessage, error) {
			return nil, domain.ErrNotFound
		},
	}

	uc := NewReorderTeamMembersUseCase(store, &passthroughCache{})
	err := uc.Execute(context.Background(), "ghost", "M2")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.Empty(t, store.updates)
}
