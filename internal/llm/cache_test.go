package llm

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/timetable/internal/model"
)

func TestImageKey(t *testing.T) {
	a := model.Image{Data: []byte("png-bytes"), MIMEType: "image/png"}
	b := model.Image{Data: []byte("png-bytes"), MIMEType: "image/jpeg"}
	c := model.Image{Data: []byte("other"), MIMEType: "image/png"}

	assert.Equal(t, imageKey(a), imageKey(b), "key depends on content only")
	assert.NotEqual(t, imageKey(a), imageKey(c))
	assert.Len(t, imageKey(a), 64)
}

func TestExtractionCache(t *testing.T) {
	t.Run("basic operations", func(t *testing.T) {
		cache := newExtractionCache(5 * time.Minute)

		_, found := cache.get("non-existent")
		assert.False(t, found)

		extraction := model.Extraction{
			RawText: `{"classes":[]}`,
			Payload: &model.ExtractionPayload{},
		}
		cache.set("key1", extraction)

		retrieved, found := cache.get("key1")
		assert.True(t, found)
		assert.Equal(t, extraction, retrieved)
		assert.Equal(t, 1, cache.size())
	})

	t.Run("expiration", func(t *testing.T) {
		now := time.Date(2024, 3, 17, 8, 0, 0, 0, time.UTC)
		cache := newExtractionCache(time.Minute)
		cache.now = func() time.Time { return now }

		cache.set("key2", model.Extraction{RawText: "text"})
		_, found := cache.get("key2")
		assert.True(t, found)

		now = now.Add(2 * time.Minute)
		_, found = cache.get("key2")
		assert.False(t, found)

		// Expired entries are dropped on the next write
		cache.set("key3", model.Extraction{RawText: "text"})
		assert.Equal(t, 1, cache.size())
	})

	t.Run("concurrent access", func(t *testing.T) {
		cache := newExtractionCache(5 * time.Minute)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				cache.set("concurrent", model.Extraction{RawText: "x"})
			}()
			go func() {
				defer wg.Done()
				_, _ = cache.get("concurrent")
			}()
		}
		wg.Wait()

		_, found := cache.get("concurrent")
		assert.True(t, found)
	})
}
