package glob

import (
	"sync"
	"time"

	"github.com/IvanShishkin/pathhound/internal/cache"
	"github.com/IvanShishkin/pathhound/internal/fsmeta"
)

const (
	cacheCapacity = 1024
	cacheTTL      = 5 * time.Minute
)

type matcherKey struct {
	kind          matcherKind
	source        string
	caseSensitive bool
}

// The two caches are process-wide singletons, created lazily. Only the
// cache structures themselves are serialized; compilation and stat calls
// happen outside their critical sections.
var (
	cachesOnce   sync.Once
	matcherCache *cache.Cache[matcherKey, *matcher]
	metaStatter  *fsmeta.Statter
)

func initCaches() {
	cachesOnce.Do(func() {
		matcherCache = cache.New[matcherKey, *matcher](cacheCapacity, cacheTTL)
		metaStatter = fsmeta.NewStatter(cacheCapacity, cacheTTL)
	})
}

// cachedCompile serves a matcher from the cache, compiling and inserting
// on miss. Failed compilations are never cached.
func cachedCompile(kind matcherKind, source string, caseSensitive bool, compile func() (*matcher, error)) (*matcher, error) {
	initCaches()
	key := matcherKey{kind: kind, source: source, caseSensitive: caseSensitive}
	if m, ok := matcherCache.Get(key); ok {
		return m, nil
	}
	m, err := compile()
	if err != nil {
		return nil, err
	}
	matcherCache.Put(key, m)
	return m, nil
}

// statter returns the shared metadata statter.
func statter() *fsmeta.Statter {
	initCaches()
	return metaStatter
}

// CacheStats is a snapshot of one cache's counters. All counters are
// monotone for the process lifetime.
type CacheStats struct {
	Hits        uint64 `json:"hits"`
	Misses      uint64 `json:"misses"`
	Evictions   uint64 `json:"evictions"`
	Expirations uint64 `json:"expirations"`
	Size        int    `json:"size"`
}

// CacheMetrics reports the counters of both process-wide caches.
type CacheMetrics struct {
	Matcher  CacheStats `json:"matcher"`
	Metadata CacheStats `json:"metadata"`
}

// Metrics returns a snapshot of the matcher and metadata cache counters.
// ResetCaches drops entries but preserves the counters.
func Metrics() CacheMetrics {
	initCaches()
	return CacheMetrics{
		Matcher:  stats(matcherCache.Metrics()),
		Metadata: stats(metaStatter.Metrics()),
	}
}

func stats(m cache.Metrics) CacheStats {
	return CacheStats{
		Hits:        m.Hits,
		Misses:      m.Misses,
		Evictions:   m.Evictions,
		Expirations: m.Expirations,
		Size:        m.Size,
	}
}

// ResetCaches empties both caches. Intended for tests and for callers
// that mutate the filesystem and need fresh metadata.
func ResetCaches() {
	initCaches()
	matcherCache.Purge()
	metaStatter.Purge()
}
