package port

import (
	"context"
	"encoding/json"
	"strings"
	"time"
)

// CacheKey — семантический ключ кэша, например {"property", "P1"}.
type CacheKey []string

// String — каноническая строковая форма ключа.
func (k CacheKey) String() string {
	return strings.Join(k, "/")
}

// HasPrefix проверяет посегментное совпадение префикса.
func (k CacheKey) HasPrefix(prefix CacheKey) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i := range prefix {
		if k[i] != prefix[i] {
			return false
		}
	}
	return true
}

// FetchFunc выполняет сетевой запрос при промахе или протухании.
type FetchFunc func(ctx context.Context) (json.RawMessage, error)

// QueryCachePort — кэш результатов запросов с ручной инвалидацией.
//
// Fetch возвращает закэшированное значение, если оно свежее; иначе
// вызывает fetch (с одним повтором при ошибке). Если обновление
// не удалось, а старое значение еще есть, возвращаются И значение,
// И ошибка — stale-while-error: читатель сам решает, что важнее.
type QueryCachePort interface {
	Fetch(ctx context.Context, key CacheKey, ttl time.Duration, fetch FetchFunc) (json.RawMessage, error)

	// Invalidate помечает запись протухшей (значение не стирается).
	Invalidate(key CacheKey)

	// InvalidatePrefix помечает протухшими все записи с данным префиксом.
	InvalidatePrefix(prefix CacheKey)

	// Close сбрасывает финальный снимок на диск.
	Close() error
}
