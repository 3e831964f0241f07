package llm

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/Veraticus/timetable/internal/model"
)

// imageKey identifies an image by content, so re-uploads of the same
// picture hit the cache.
func imageKey(image model.Image) string {
	sum := sha256.Sum256(image.Data)
	return hex.EncodeToString(sum[:])
}

type cacheEntry struct {
	expiry     time.Time
	extraction model.Extraction
}

// extractionCache provides thread-safe caching of extractions by image hash.
type extractionCache struct {
	now     func() time.Time
	entries map[string]cacheEntry
	ttl     time.Duration
	mu      sync.RWMutex
}

func newExtractionCache(ttl time.Duration) *extractionCache {
	if ttl == 0 {
		ttl = time.Hour
	}
	return &extractionCache{
		now:     time.Now,
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

// get returns a cached extraction that hasn't expired.
func (c *extractionCache) get(key string) (model.Extraction, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[key]
	if !exists || c.now().After(entry.expiry) {
		return model.Extraction{}, false
	}
	return entry.extraction, true
}

// set stores an extraction and drops expired entries.
func (c *extractionCache) set(key string, extraction model.Extraction) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, entry := range c.entries {
		if now.After(entry.expiry) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = cacheEntry{
		extraction: extraction,
		expiry:     now.Add(c.ttl),
	}
}

func (c *extractionCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
