package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"listing-service/internal/core/port"
)

// entry — одна запись кэша. Поля экспортированы ради снимка на диске.
type entry struct {
	Key        port.CacheKey   `json:"key"`
	Value      json.RawMessage `json:"value"`
	FetchedAt  time.Time       `json:"fetched_at"`
	LastAccess time.Time       `json:"last_access"`
	Stale      bool            `json:"stale"`
}

// QueryCache — кэш результатов запросов в памяти со снимком на диске.
// Инвалидация не стирает значение, а только помечает его протухшим:
// при недоступной платформе старое значение лучше, чем ничего.
type QueryCache struct {
	mu      sync.RWMutex
	entries map[string]*entry

	snapshotPath string // пустой путь отключает персистентность
	retention    time.Duration
	logger       port.LoggerPort
}

// NewQueryCache создает кэш и поднимает прошлый снимок, если он есть.
// Записи, к которым не обращались дольше retention, вычищаются при
// каждом успешном обновлении.
func NewQueryCache(snapshotPath string, retention time.Duration, baseLogger port.LoggerPort) *QueryCache {
	c := &QueryCache{
		entries:      make(map[string]*entry),
		snapshotPath: snapshotPath,
		retention:    retention,
		logger:       baseLogger.WithFields(port.Fields{"component": "QueryCache"}),
	}
	c.loadSnapshot()
	return c
}

// Fetch возвращает свежее значение из кэша либо обновляет его через
// fetch. Повтор при ошибке ровно один. Если обновление не удалось,
// а старое значение есть, возвращаются и значение, и ошибка.
func (c *QueryCache) Fetch(ctx context.Context, key port.CacheKey, ttl time.Duration, fetch port.FetchFunc) (json.RawMessage, error) {
	keyStr := key.String()

	c.mu.Lock()
	cached, found := c.entries[keyStr]
	var staleValue json.RawMessage
	if found {
		cached.LastAccess = time.Now()
		if !cached.Stale && time.Since(cached.FetchedAt) < ttl {
			value := cached.Value
			c.mu.Unlock()
			return value, nil
		}
		staleValue = cached.Value
	}
	c.mu.Unlock()

	// Сетевой вызов вне блокировки. Конкурентные обновления одного
	// ключа допустимы, победит последний записавший.
	value, err := fetch(ctx)
	if err != nil {
		value, err = fetch(ctx)
	}
	if err != nil {
		if staleValue != nil {
			c.logger.Warn("Refresh failed, keeping stale entry", port.Fields{
				"cache_key": keyStr, "error": err.Error(),
			})
			return staleValue, err
		}
		return nil, err
	}

	c.mu.Lock()
	c.entries[keyStr] = &entry{
		Key:        key,
		Value:      value,
		FetchedAt:  time.Now(),
		LastAccess: time.Now(),
	}
	c.mu.Unlock()

	c.evictExpired()
	c.writeSnapshot()
	return value, nil
}

// evictExpired вычищает записи, к которым давно не обращались.
// Работает и без персистентности.
func (c *QueryCache) evictExpired() {
	if c.retention <= 0 {
		return
	}
	c.mu.Lock()
	for keyStr, e := range c.entries {
		if time.Since(e.LastAccess) > c.retention {
			delete(c.entries, keyStr)
		}
	}
	c.mu.Unlock()
}

// Invalidate помечает запись протухшей. Значение остается на месте
// для stale-while-error.
func (c *QueryCache) Invalidate(key port.CacheKey) {
	c.mu.Lock()
	if cached, found := c.entries[key.String()]; found {
		cached.Stale = true
	}
	c.mu.Unlock()
}

// InvalidatePrefix помечает протухшими все записи с данным префиксом.
func (c *QueryCache) InvalidatePrefix(prefix port.CacheKey) {
	c.mu.Lock()
	for _, cached := range c.entries {
		if cached.Key.HasPrefix(prefix) {
			cached.Stale = true
		}
	}
	c.mu.Unlock()
}

// Close сбрасывает финальный снимок на диск.
func (c *QueryCache) Close() error {
	c.evictExpired()
	return c.writeSnapshot()
}

func (c *QueryCache) loadSnapshot() {
	if c.snapshotPath == "" {
		return
	}

	data, err := os.ReadFile(c.snapshotPath)
	if err != nil {
		if !os.IsNotExist(err) {
			c.logger.Warn("Failed to read cache snapshot, starting cold", port.Fields{"error": err.Error()})
		}
		return
	}

	var entries []*entry
	if err := json.Unmarshal(data, &entries); err != nil {
		c.logger.Warn("Failed to decode cache snapshot, starting cold", port.Fields{"error": err.Error()})
		return
	}

	c.mu.Lock()
	for _, e := range entries {
		c.entries[e.Key.String()] = e
	}
	c.mu.Unlock()

	c.logger.Info("Cache snapshot loaded", port.Fields{"entries": len(entries)})
}

// writeSnapshot пишет снимок синхронно.
func (c *QueryCache) writeSnapshot() error {
	if c.snapshotPath == "" {
		return nil
	}

	c.mu.Lock()
	entries := make([]*entry, 0, len(c.entries))
	for _, e := range c.entries {
		entries = append(entries, e)
	}
	c.mu.Unlock()

	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}

	// запись через временный файл, чтобы не оставить полузаписанный снимок
	tmp := c.snapshotPath + ".tmp"
	if err := os.MkdirAll(filepath.Dir(c.snapshotPath), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, c.snapshotPath)
}
