package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"farmweather.app/models"
)

// Store defines generic byte-blob cache operations. Implementations must
// never surface backend errors: failed reads report a miss, failed writes
// report false.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) bool
	Delete(ctx context.Context, key string) bool
	Exists(ctx context.Context, key string) bool
}

// RecordStore defines the interface for cached forecast record operations
type RecordStore interface {
	Get(key string) (*models.WeatherRecord, bool)
	Set(key string, record *models.WeatherRecord, ttl time.Duration) bool
	Delete(key string) bool
	Exists(key string) bool
}

type cacheEntry struct {
	Data      []byte
	ExpiresAt time.Time
}

type MemoryStore struct {
	data   map[string]cacheEntry
	mutex  sync.RWMutex
	ticker *time.Ticker
	stopCh chan struct{}
}

func NewMemoryStore() *MemoryStore {
	store := &MemoryStore{
		data:   make(map[string]cacheEntry),
		ticker: time.NewTicker(5 * time.Minute),
		stopCh: make(chan struct{}),
	}

	go store.cleanup()
	return store
}

func (c *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, exists := c.data[key]
	if !exists {
		return nil, false
	}

	if time.Now().After(entry.ExpiresAt) {
		return nil, false
	}

	return entry.Data, true
}

func (c *MemoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) bool {
	if value == nil {
		return false
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = cacheEntry{
		Data:      value,
		ExpiresAt: time.Now().Add(ttl),
	}
	return true
}

func (c *MemoryStore) Delete(ctx context.Context, key string) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return true
}

func (c *MemoryStore) Exists(ctx context.Context, key string) bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, exists := c.data[key]
	if !exists {
		return false
	}
	return !time.Now().After(entry.ExpiresAt)
}

// Stop terminates the background cleanup goroutine
func (c *MemoryStore) Stop() {
	close(c.stopCh)
}

func (c *MemoryStore) cleanup() {
	for {
		select {
		case <-c.ticker.C:
			c.removeExpiredEntries()
		case <-c.stopCh:
			c.ticker.Stop()
			return
		}
	}
}

func (c *MemoryStore) removeExpiredEntries() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	for key, entry := range c.data {
		if now.After(entry.ExpiresAt) {
			delete(c.data, key)
		}
	}
}

// RecordCache wraps a generic store with forecast-record serialization
type RecordCache struct {
	store Store
}

func NewRecordCache(store Store) *RecordCache {
	return &RecordCache{
		store: store,
	}
}

func (w *RecordCache) Get(key string) (*models.WeatherRecord, bool) {
	data, found := w.store.Get(context.Background(), key)
	if !found {
		return nil, false
	}

	var record models.WeatherRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, false
	}

	return &record, true
}

func (w *RecordCache) Set(key string, record *models.WeatherRecord, ttl time.Duration) bool {
	if record == nil {
		return false
	}

	data, err := json.Marshal(record)
	if err != nil {
		return false
	}

	return w.store.Set(context.Background(), key, data, ttl)
}

func (w *RecordCache) Delete(key string) bool {
	return w.store.Delete(context.Background(), key)
}

func (w *RecordCache) Exists(key string) bool {
	return w.store.Exists(context.Background(), key)
}
