package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"listing-service/internal/constants"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/internal/core/port/usecases_port"

	"github.com/stretchr/testify/require"
)

func waitForLead(t *testing.T, ch chan domain.Lead) domain.Lead {
	t.Helper()
	select {
	case lead := <-ch:
		return lead
	case <-time.After(time.Second):
		t.Fatal("background mail dispatch did not happen")
		return domain.Lead{}
	}
}

func TestCreateLead_InsertsAndDispatchesMailInBackground(t *testing.T) {
	store := &fakeRecordStore{
		InsertFn: func(ctx context.Context, collection string, rows []map[string]interface{}) (json.RawMessage, error) {
			require.Equal(t, constants.CollectionLeads, collection)
			return json.RawMessage(`[{
				"id":"L1","name":"Ana","email":"ana@example.com",
				"status":"new","source":"website","user_id":"U1"
			}]`), nil
		},
	}
	notifier := newFakeNotifier()
	autoResponder := newFakeAutoResponder()

	uc := NewCreateLeadUseCase(store, notifier, autoResponder)
	lead, err := uc.Execute(context.Background(), usecases_port.CreateLeadInput{
		Name:    "Ana",
		Email:   "ana@example.com",
		Message: "Me interesa la casa",
		UserID:  "U1",
	})
	require.NoError(t, err)
	require.Equal(t, "L1", lead.ID)
	require.Equal(t, domain.LeadStatusNew, lead.Status)

	require.Equal(t, "L1", waitForLead(t, notifier.called).ID)
	require.Equal(t, "L1", waitForLead(t, autoResponder.called).ID)

	inserted := store.insertedInto(constants.CollectionLeads)
	require.Len(t, inserted, 1)
	row := inserted[0].Rows[0]
	require.Equal(t, "U1", row["user_id"])
	require.Equal(t, "new", row["status"])
	require.Equal(t, "website", row["source"], "empty source defaults to website")
	require.NotContains(t, row, "property_id", "unbound lead must not carry a property reference")
}

func TestCreateLead_OwnerResolvedFromProperty(t *testing.T) {
	store := &fakeRecordStore{
		SelectSingleFn: func(ctx context.Context, q port.RecordQuery) (json.RawMessage, error) {
			require.Equal(t, constants.CollectionProperties, q.Collection)
			return json.RawMessage(`{"user_id":"OWNER-7"}`), nil
		},
		InsertFn: func(ctx context.Context, collection string, rows []map[string]interface{}) (json.RawMessage, error) {
			return json.RawMessage(`[{"id":"L2","status":"new","source":"website","user_id":"OWNER-7"}]`), nil
		},
	}

	uc := NewCreateLeadUseCase(store, newFakeNotifier(), newFakeAutoResponder())
	_, err := uc.Execute(context.Background(), usecases_port.CreateLeadInput{
		Name:       "Ana",
		Email:      "ana@example.com",
		PropertyID: "P7",
	})
	require.NoError(t, err)

	row := store.insertedInto(constants.CollectionLeads)[0].Rows[0]
	require.Equal(t, "OWNER-7", row["user_id"])
	require.Equal(t, "P7", row["property_id"])
}

func TestCreateLead_OwnerFallsBackToCompanyProfile(t *testing.T) {
	store := &fakeRecordStore{
		SelectSingleFn: func(ctx context.Context, q port.RecordQuery) (json.RawMessage, error) {
			require.Equal(t, constants.CollectionCompanyProfile, q.Collection)
			return json.RawMessage(`{"user_id":"COMPANY-OWNER"}`), nil
		},
		InsertFn: func(ctx context.Context, collection string, rows []map[string]interface{}) (json.RawMessage, error) {
			return json.RawMessage(`[{"id":"L3","status":"new","source":"whatsapp","user_id":"COMPANY-OWNER"}]`), nil
		},
	}

	uc := NewCreateLeadUseCase(store, newFakeNotifier(), newFakeAutoResponder())
	lead, err := uc.Execute(context.Background(), usecases_port.CreateLeadInput{
		Name:   "Luis",
		Email:  "luis@example.com",
		Source: domain.LeadSourceWhatsApp,
	})
	require.NoError(t, err)
	require.Equal(t, domain.LeadSourceWhatsApp, lead.Source)

	row := store.insertedInto(constants.CollectionLeads)[0].Rows[0]
	require.Equal(t, "COMPANY-OWNER", row["user_id"])
	require.Equal(t, "whatsapp", row["source"])
}

func TestCreateLead_OwnerResolutionFailureFailsCreation(t *testing.T) {
	store := &fakeRecordStore{
		SelectSingleFn: func(ctx context.Context, q port.RecordQuery) (json.RawMessage, error) {
			return nil, domain.ErrNotFound
		},
	}

	uc := NewCreateLeadUseCase(store, newFakeNotifier(), newFakeAutoResponder())
	lead, err := uc.Execute(context.Background(), usecases_port.CreateLeadInput{
		Name:  "Ana",
		Email: "ana@example.com",
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.Nil(t, lead)
	require.Empty(t, store.insertedInto(constants.CollectionLeads))
}
