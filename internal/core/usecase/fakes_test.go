package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

// Фейки портов для тестов use case'ов. Поведение задается функциями,
// вызовы записываются для проверок.

type insertCall struct {
	Collection string
	Rows       []map[string]interface{}
}

type updateCall struct {
	Collection string
	Filters    []port.Filter
	Patch      map[string]interface{}
}

type fakeRecordStore struct {
	mu sync.Mutex

	SelectFn       func(ctx context.Context, q port.RecordQuery) (json.RawMessage, error)
	SelectSingleFn func(ctx context.Context, q port.RecordQuery) (json.RawMessage, error)
	InsertFn       func(ctx context.Context, collection string, rows []map[string]interface{}) (json.RawMessage, error)
	UpdateFn       func(ctx context.Context, collection string, filters []port.Filter, patch map[string]interface{}) (json.RawMessage, error)
	DeleteFn       func(ctx context.Context, collection string, filters []port.Filter) error

	selectCalls []port.RecordQuery
	inserts     []insertCall
	updates     []updateCall
}

func (s *fakeRecordStore) Select(ctx context.Context, q port.RecordQuery) (json.RawMessage, error) {
	s.mu.Lock()
	s.selectCalls = append(s.selectCalls, q)
	s.mu.Unlock()
	if s.SelectFn == nil {
		return json.RawMessage(`[]`), nil
	}
	return s.SelectFn(ctx, q)
}

func (s *fakeRecordStore) SelectSingle(ctx context.Context, q port.RecordQuery) (json.RawMessage, error) {
	if s.SelectSingleFn == nil {
		return nil, domain.ErrNotFound
	}
	return s.SelectSingleFn(ctx, q)
}

func (s *fakeRecordStore) Insert(ctx context.Context, collection string, rows []map[string]interface{}) (json.RawMessage, error) {
	s.mu.Lock()
	s.inserts = append(s.inserts, insertCall{Collection: collection, Rows: rows})
	s.mu.Unlock()
	if s.InsertFn == nil {
		return json.RawMessage(`[]`), nil
	}
	return s.InsertFn(ctx, collection, rows)
}

func (s *fakeRecordStore) Update(ctx context.Context, collection string, filters []port.Filter, patch map[string]interface{}) (json.RawMessage, error) {
	s.mu.Lock()
	s.updates = append(s.updates, updateCall{Collection: collection, Filters: filters, Patch: patch})
	s.mu.Unlock()
	if s.UpdateFn == nil {
		return json.RawMessage(`[]`), nil
	}
	return s.UpdateFn(ctx, collection, filters, patch)
}

func (s *fakeRecordStore) Delete(ctx context.Context, collection string, filters []port.Filter) error {
	if s.DeleteFn == nil {
		return nil
	}
	return s.DeleteFn(ctx, collection, filters)
}

func (s *fakeRecordStore) insertedInto(collection string) []insertCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	var calls []insertCall
	for _, c := range s.inserts {
		if c.Collection == collection {
			calls = append(calls, c)
		}
	}
	return calls
}

// passthroughCache не кэширует ничего: каждый Fetch идет в источник.
// Инвалидации записываются для проверок.
type passthroughCache struct {
	mu       sync.Mutex
	keys     []string
	prefixes []string
}

func (c *passthroughCache) Fetch(ctx context.Context, key port.CacheKey, ttl time.Duration, fetch port.FetchFunc) (json.RawMessage, error) {
	return fetch(ctx)
}

func (c *passthroughCache) Invalidate(key port.CacheKey) {
	c.mu.Lock()
	c.keys = append(c.keys, key.String())
	c.mu.Unlock()
}

func (c *passthroughCache) InvalidatePrefix(prefix port.CacheKey) {
	c.mu.Lock()
	c.prefixes = append(c.prefixes, prefix.String())
	c.mu.Unlock()
}

func (c *passthroughCache) Close() error { return nil }

func (c *passthroughCache) invalidatedKeys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.keys...)
}

func (c *passthroughCache) invalidatedPrefixes() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.prefixes...)
}

type fakeFunctions struct {
	mu      sync.Mutex
	InvokeFn func(ctx context.Context, name string, payload interface{}) (json.RawMessage, error)
	calls   []string
}

func (f *fakeFunctions) Invoke(ctx context.Context, name string, payload interface{}) (json.RawMessage, error) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
	if f.InvokeFn == nil {
		return json.RawMessage(`{"status":"sent"}`), nil
	}
	return f.InvokeFn(ctx, name, payload)
}

func (f *fakeFunctions) invoked() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type fakeSessions struct {
	CurrentSessionFn func(ctx context.Context) (*domain.Session, error)
}

func (s *fakeSessions) CurrentSession(ctx context.Context) (*domain.Session, error) {
	if s.CurrentSessionFn == nil {
		return nil, domain.ErrNoSession
	}
	return s.CurrentSessionFn(ctx)
}

// fakeNotifier и fakeAutoResponder сигналят о вызове через канал,
// чтобы тесты могли дождаться фоновую горутину.
type fakeNotifier struct {
	called chan domain.Lead
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{called: make(chan domain.Lead, 1)}
}

func (n *fakeNotifier) Execute(ctx context.Context, lead domain.Lead, recipient string) *domain.NotificationResult {
	n.called <- lead
	return nil
}

type fakeAutoResponder struct {
	called chan domain.Lead
}

func newFakeAutoResponder() *fakeAutoResponder {
	return &fakeAutoResponder{called: make(chan domain.Lead, 1)}
}

func (a *fakeAutoResponder) Execute(ctx context.Context, lead domain.Lead) *domain.NotificationResult {
	a.called <- lead
	return nil
}
