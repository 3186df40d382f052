package cache

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	logger_adapter "listing-service/internal/adapters/logger"
	"listing-service/internal/core/port"

	"github.com/stretchr/testify/require"
)

func testLogger() port.LoggerPort {
	return logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{Writer: io.Discard})
}

func TestFetch_FreshEntryServedWithoutRefetch(t *testing.T) {
	c := NewQueryCache("", 0, testLogger())
	key := port.CacheKey{"properties", "list"}

	calls := 0
	fetch := func(ctx context.Context) (json.RawMessage, error) {
		calls++
		return json.RawMessage(`[{"id":"P1"}]`), nil
	}

	first, err := c.Fetch(context.Background(), key, time.Minute, fetch)
	require.NoError(t, err)
	require.JSONEq(t, `[{"id":"P1"}]`, string(first))

	second, err := c.Fetch(context.Background(), key, time.Minute, fetch)
	require.NoError(t, err)
	require.JSONEq(t, `[{"id":"P1"}]`, string(second))

	require.Equal(t, 1, calls, "fresh entry must be served from memory")
}

func TestFetch_ExpiredEntryIsRefetched(t *testing.T) {
	c := NewQueryCache("", 0, testLogger())
	key := port.CacheKey{"properties", "list"}

	calls := 0
	fetch := func(ctx context.Context) (json.RawMessage, error) {
		calls++
		return json.RawMessage(`[]`), nil
	}

	_, err := c.Fetch(context.Background(), key, time.Nanosecond, fetch)
	require.NoError(t, err)

	time.Sleep(time.Millisecond)

	_, err = c.Fetch(context.Background(), key, time.Nanosecond, fetch)
	require.NoError(t, err)
	require.Equal(t, 2, calls)
}

func TestInvalidate_MarksStaleButKeepsValue(t *testing.T) {
	c := NewQueryCache("", 0, testLogger())
	key := port.CacheKey{"property", "P1"}

	_, err := c.Fetch(context.Background(), key, time.Hour, func(ctx context.Context) (json.RawMessage, error) {
		return json.RawMessage(`{"id":"P1","title":"old"}`), nil
	})
	require.NoError(t, err)

	c.Invalidate(key)

	// Обновление падает: должны получить И старое значение, И ошибку.
	refreshErr := errors.New("backend is down")
	calls := 0
	value, err := c.Fetch(context.Background(), key, time.Hour, func(ctx context.Context) (json.RawMessage, error) {
		calls++
		return nil, refreshErr
	})
	require.ErrorIs(t, err, refreshErr)
	require.JSONEq(t, `{"id":"P1","title":"old"}`, string(value))
	require.Equal(t, 2, calls, "failed refresh retries exactly once")
}

func TestFetch_RetriesOnceThenSucceeds(t *testing.T) {
	c := NewQueryCache("", 0, testLogger())
	key := port.CacheKey{"team_members"}

	calls := 0
	value, err := c.Fetch(context.Background(), key, time.Minute, func(ctx context.Context) (json.RawMessage, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("transient failure")
		}
		return json.RawMessage(`[]`), nil
	})
	require.NoError(t, err)
	require.JSONEq(t, `[]`, string(value))
	require.Equal(t, 2, calls)
}

func TestFetch_MissAndFailureReturnsError(t *testing.T) {
	c := NewQueryCache("", 0, testLogger())

	fetchErr := errors.New("no backend")
	value, err := c.Fetch(context.Background(), port.CacheKey{"company_profile"}, time.Minute,
		func(ctx context.Context) (json.RawMessage, error) {
			return nil, fetchErr
		})
	require.ErrorIs(t, err, fetchErr)
	require.Nil(t, value)
}

func TestInvalidatePrefix_CoversAllListKeys(t *testing.T) {
	c := NewQueryCache("", 0, testLogger())

	seed := func(key port.CacheKey) {
		_, err := c.Fetch(context.Background(), key, time.Hour, func(ctx context.Context) (json.RawMessage, error) {
			return json.RawMessage(`[]`), nil
		})
		require.NoError(t, err)
	}
	seed(port.CacheKey{"properties", "list"})
	seed(port.CacheKey{"properties", "casa"})
	seed(port.CacheKey{"property", "P1"})

	c.InvalidatePrefix(port.CacheKey{"properties"})

	counts := make(map[string]int)
	refetch := func(key port.CacheKey) {
		c.Fetch(context.Background(), key, time.Hour, func(ctx context.Context) (json.RawMessage, error) {
			counts[key.String()]++
			return json.RawMessage(`[]`), nil
		})
	}
	refetch(port.CacheKey{"properties", "list"})
	refetch(port.CacheKey{"properties", "casa"})
	refetch(port.CacheKey{"property", "P1"})

	require.Equal(t, 1, counts["properties/list"])
	require.Equal(t, 1, counts["properties/casa"])
	require.Zero(t, counts["property/P1"], "record key must survive list prefix invalidation")
}

func TestSnapshot_RoundTrip(t *testing.T) {
	snapshotPath := filepath.Join(t.TempDir(), "cache.json")

	first := NewQueryCache(snapshotPath, time.Hour, testLogger())
	_, err := first.Fetch(context.Background(), port.CacheKey{"property", "P1"}, time.Hour,
		func(ctx context.Context) (json.RawMessage, error) {
			return json.RawMessage(`{"id":"P1"}`), nil
		})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	// Новый процесс: значение должно подняться из снимка без сети.
	second := NewQueryCache(snapshotPath, time.Hour, testLogger())
	value, err := second.Fetch(context.Background(), port.CacheKey{"property", "P1"}, time.Hour,
		func(ctx context.Context) (json.RawMessage, error) {
			t.Fatal("fetch must not be called for a warm entry")
			return nil, nil
		})
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"P1"}`, string(value))
}

func TestRetention_EvictsUnusedEntriesWithoutSnapshot(t *testing.T) {
	c := NewQueryCache("", time.Minute, testLogger())

	_, err := c.Fetch(context.Background(), port.CacheKey{"property", "old"}, time.Hour,
		func(ctx context.Context) (json.RawMessage, error) {
			return json.RawMessage(`{"id":"old"}`), nil
		})
	require.NoError(t, err)

	// состарить запись вручную
	c.mu.Lock()
	c.entries["property/old"].LastAccess = time.Now().Add(-time.Hour)
	c.mu.Unlock()

	// любое успешное обновление запускает вычистку
	_, err = c.Fetch(context.Background(), port.CacheKey{"property", "fresh"}, time.Hour,
		func(ctx context.Context) (json.RawMessage, error) {
			return json.RawMessage(`{"id":"fresh"}`), nil
		})
	require.NoError(t, err)

	c.mu.RLock()
	_, oldFound := c.entries["property/old"]
	_, freshFound := c.entries["property/fresh"]
	c.mu.RUnlock()
	require.False(t, oldFound, "unused entry must be evicted even without persistence")
	require.True(t, freshFound)
}

func TestCacheKey_HasPrefix(t *testing.T) {
	key := port.CacheKey{"properties", "casa"}

	require.True(t, key.HasPrefix(port.CacheKey{"properties"}))
	require.True(t, key.HasPrefix(port.CacheKey{"properties", "casa"}))
	require.False(t, key.HasPrefix(port.CacheKey{"property"}))
	require.False(t, key.HasPrefix(port.CacheKey{"properties", "casa", "extra"}))
}
