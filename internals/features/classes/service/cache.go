package service

import (
	"sync"
	"time"

	"clubfit_backend/internals/features/classes/dto"
)

// Cache guarda a semana agregada por chave de segunda-feira. A interface
// existe para os testes injetarem um cache fake/sem TTL.
type Cache interface {
	Get(key string) (*dto.WeeklyClassesResponse, bool)
	Set(key string, value *dto.WeeklyClassesResponse)
}

type cacheEntry struct {
	value     *dto.WeeklyClassesResponse
	expiresAt time.Time
}

type memoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cacheEntry
}

func NewMemoryCache(ttl time.Duration) Cache {
	return &memoryCache{ttl: ttl, entries: make(map[string]cacheEntry)}
}

func (c *memoryCache) Get(key string) (*dto.WeeklyClassesResponse, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.value, true
}

func (c *memoryCache) Set(key string, value *dto.WeeklyClassesResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	// Limpeza oportunista: entradas vencidas saem junto com cada escrita.
	now := time.Now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = cacheEntry{value: value, expiresAt: now.Add(c.ttl)}
}
