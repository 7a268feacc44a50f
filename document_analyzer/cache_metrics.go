package document_analyzer

import (
	"sync"
	"time"
)

// cacheMetrics tracks hit-rate figures for one process lifetime.
type cacheMetrics struct {
	mutex         sync.Mutex
	totalRequests int64
	hits          int64
	misses        int64
	since         time.Time
}

func newCacheMetrics() *cacheMetrics {
	return &cacheMetrics{since: time.Now()}
}

func (metrics *cacheMetrics) recordHit() {
	metrics.mutex.Lock()
	defer metrics.mutex.Unlock()
	metrics.totalRequests++
	metrics.hits++
}

func (metrics *cacheMetrics) recordMiss() {
	metrics.mutex.Lock()
	defer metrics.mutex.Unlock()
	metrics.totalRequests++
	metrics.misses++
}

func (metrics *cacheMetrics) snapshot() map[string]interface{} {
	metrics.mutex.Lock()
	defer metrics.mutex.Unlock()

	hitRate := 0.0
	if metrics.totalRequests > 0 {
		hitRate = float64(metrics.hits) / float64(metrics.totalRequests) * 100
	}
	return map[string]interface{}{
		"total_requests": metrics.totalRequests,
		"cache_hits":     metrics.hits,
		"cache_misses":   metrics.misses,
		"hit_rate":       hitRate,
		"tracking_since": metrics.since.Format(time.RFC3339),
	}
}
