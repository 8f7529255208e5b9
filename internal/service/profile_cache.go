// Package service wires the confidence engine to storage and feeds.
package service

import (
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/bet-insight/internal/analysis"
)

// profileSetKey is the single cache entry for the corpus-wide profile set.
// Profiles are rebuilt from the full corpus, so one entry is enough; the
// TTL bounds how stale scoring patterns can get after new results land.
const profileSetKey = "profile_set"

// ProfileCache caches built scoring-profile sets between analysis batches
type ProfileCache struct {
	cache     *cache.Cache
	ttl       time.Duration
	mu        sync.RWMutex
	hitCount  uint64
	missCount uint64
}

// NewProfileCache creates a new profile cache with the given TTL
func NewProfileCache(ttl time.Duration) *ProfileCache {
	return &ProfileCache{
		cache: cache.New(ttl, ttl*2),
		ttl:   ttl,
	}
}

// Get returns the cached profile set, or nil when expired or absent
func (pc *ProfileCache) Get() *analysis.ProfileSet {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if entry, found := pc.cache.Get(profileSetKey); found {
		pc.hitCount++
		if set, ok := entry.(*analysis.ProfileSet); ok {
			return set
		}
	}

	pc.missCount++
	return nil
}

// Set stores a freshly built profile set
func (pc *ProfileCache) Set(set *analysis.ProfileSet) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	pc.cache.Set(profileSetKey, set, pc.ttl)
}

// Invalidate drops the cached profile set, forcing a rebuild on next use.
// Called when new settled results arrive.
func (pc *ProfileCache) Invalidate() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	pc.cache.Delete(profileSetKey)
}

// Stats returns cache hit statistics
func (pc *ProfileCache) Stats() (hits, misses uint64, ratio float64) {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	hits = pc.hitCount
	misses = pc.missCount
	total := hits + misses
	if total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}
