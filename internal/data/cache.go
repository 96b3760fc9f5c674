package data

import (
	"sync"
	"time"

	"solar-finance/internal/model"
)

// cacheEntry is one cached simulation run.
type cacheEntry struct {
	run       *model.SimulationRun
	expiresAt time.Time
}

// RunCache keeps recent simulation runs in memory so the API can serve follow-up
// requests (cashflow CSV, portfolio recalculation by run ID).
//
// It is not a persistence layer: entries expire after the TTL and are lost on restart.
type RunCache struct {
	mu    sync.RWMutex
	store map[string]cacheEntry
	ttl   time.Duration
	now   func() time.Time
	stop  chan struct{}
	once  sync.Once
}

// NewRunCache creates a cache and starts its cleanup loop. Call Close to stop it.
func NewRunCache(ttl time.Duration) *RunCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	c := &RunCache{
		store: make(map[string]cacheEntry),
		ttl:   ttl,
		now:   time.Now,
		stop:  make(chan struct{}),
	}
	go c.cleanup(5 * time.Minute)
	return c
}

// Get retrieves a run if present and not expired.
func (c *RunCache) Get(id string) (*model.SimulationRun, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.store[id]
	if !ok || c.now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.run, true
}

// Put stores a run under its ID.
func (c *RunCache) Put(run *model.SimulationRun) {
	if c == nil || run == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[run.ID] = cacheEntry{run: run, expiresAt: c.now().Add(c.ttl)}
}

// Len counts live entries.
func (c *RunCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	now := c.now()
	for _, e := range c.store {
		if !now.After(e.expiresAt) {
			n++
		}
	}
	return n
}

func (c *RunCache) Close() {
	if c == nil {
		return
	}
	c.once.Do(func() { close(c.stop) })
}

// cleanup periodically removes expired entries.
func (c *RunCache) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.evictExpired()
		}
	}
}

func (c *RunCache) evictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for id, e := range c.store {
		if now.After(e.expiresAt) {
			delete(c.store, id)
		}
	}
}
