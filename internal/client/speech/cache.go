package speech

import (
	"sync/atomic"

	"github.com/patrickmn/go-cache"

	"github.com/dmitrijs2005/fieldkeeper/internal/client/models"
)

// URLBuilder derives the audio locator for an utterance. It must be
// deterministic.
type URLBuilder func(text string, lang models.Language) string

// CacheStats counts URLCache activity.
type CacheStats struct {
	Hits        int64
	Misses      int64
	Constructed int64
	Entries     int
}

// URLCache memoizes (language, text) to locator. Entries never expire and
// are written once; the instruction vocabulary is small and fixed.
type URLCache struct {
	c     *cache.Cache
	build URLBuilder

	hits        atomic.Int64
	misses      atomic.Int64
	constructed atomic.Int64
}

func NewURLCache(build URLBuilder) *URLCache {
	return &URLCache{
		c:     cache.New(cache.NoExpiration, 0),
		build: build,
	}
}

func cacheKey(lang models.Language, text string) string {
	return string(lang) + ":" + text
}

// Resolve returns the cached locator, building and storing it on a miss.
func (u *URLCache) Resolve(text string, lang models.Language) string {
	key := cacheKey(lang, text)
	if v, ok := u.c.Get(key); ok {
		u.hits.Add(1)
		return v.(string)
	}
	u.misses.Add(1)

	url := u.build(text, lang)
	u.constructed.Add(1)
	if err := u.c.Add(key, url, cache.NoExpiration); err != nil {
		// lost a race with another miss; keep the first entry
		if v, ok := u.c.Get(key); ok {
			return v.(string)
		}
	}
	return url
}

func (u *URLCache) Stats() CacheStats {
	return CacheStats{
		Hits:        u.hits.Load(),
		Misses:      u.misses.Load(),
		Constructed: u.constructed.Load(),
		Entries:     u.c.ItemCount(),
	}
}
