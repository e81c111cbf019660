// Package metrics tracks recompute and catalog reload counters of a running host.
package metrics

import (
	"fmt"
	"sync"
	"time"
)

// SessionMetrics tracks performance data of the search host. It is safe for
// concurrent use.
type SessionMetrics struct {
	mu sync.Mutex

	StartTime time.Time

	// Recompute timing
	Recomputes        int
	LastRecompute     time.Duration
	TotalRecompute    time.Duration
	LastResultCount   int
	SuggestionQueries int

	// Snapshot cache
	CacheHits   int
	CacheMisses int

	// Catalog
	Reloads      int
	ReloadErrors int
	Listings     int
	Checksum     string
	LastReload   time.Time
}

// Snapshot is a copy of the counters safe to read without locking.
type Snapshot struct {
	Uptime            time.Duration `json:"uptime"`
	Recomputes        int           `json:"recomputes"`
	LastRecompute     time.Duration `json:"last_recompute"`
	AvgRecompute      time.Duration `json:"avg_recompute"`
	LastResultCount   int           `json:"last_result_count"`
	SuggestionQueries int           `json:"suggestion_queries"`
	CacheHits         int           `json:"cache_hits"`
	CacheMisses       int           `json:"cache_misses"`
	CacheHitRate      float64       `json:"cache_hit_rate"`
	Reloads           int           `json:"reloads"`
	ReloadErrors      int           `json:"reload_errors"`
	Listings          int           `json:"listings"`
	Checksum          string        `json:"checksum"`
	LastReload        time.Time     `json:"last_reload"`
}

// NewSessionMetrics creates a new metrics instance.
func NewSessionMetrics() *SessionMetrics {
	return &SessionMetrics{
		StartTime: time.Now(),
	}
}

// RecordRecompute records one recompute and its result count.
func (m *SessionMetrics) RecordRecompute(d time.Duration, results int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Recomputes++
	m.LastRecompute = d
	m.TotalRecompute += d
	m.LastResultCount = results
}

// IncrementSuggestions counts one suggestion query.
func (m *SessionMetrics) IncrementSuggestions() {
	m.mu.Lock()
	m.SuggestionQueries++
	m.mu.Unlock()
}

// IncrementCacheHit increments the cache hit counter.
func (m *SessionMetrics) IncrementCacheHit() {
	m.mu.Lock()
	m.CacheHits++
	m.mu.Unlock()
}

// IncrementCacheMiss increments the cache miss counter.
func (m *SessionMetrics) IncrementCacheMiss() {
	m.mu.Lock()
	m.CacheMisses++
	m.mu.Unlock()
}

// RecordReload records a successful catalog (re)load.
func (m *SessionMetrics) RecordReload(listings int, checksum string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reloads++
	m.Listings = listings
	m.Checksum = checksum
	m.LastReload = time.Now()
}

// RecordReloadError counts a failed reload.
func (m *SessionMetrics) RecordReloadError() {
	m.mu.Lock()
	m.ReloadErrors++
	m.mu.Unlock()
}

// CacheHitRate returns the cache hit percentage.
func (m *SessionMetrics) CacheHitRate() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cacheHitRate()
}

func (m *SessionMetrics) cacheHitRate() float64 {
	total := m.CacheHits + m.CacheMisses
	if total == 0 {
		return 0
	}
	return float64(m.CacheHits) / float64(total) * 100
}

// Snapshot returns a consistent copy of the counters.
func (m *SessionMetrics) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	var avg time.Duration
	if m.Recomputes > 0 {
		avg = m.TotalRecompute / time.Duration(m.Recomputes)
	}
	return Snapshot{
		Uptime:            time.Since(m.StartTime),
		Recomputes:        m.Recomputes,
		LastRecompute:     m.LastRecompute,
		AvgRecompute:      avg,
		LastResultCount:   m.LastResultCount,
		SuggestionQueries: m.SuggestionQueries,
		CacheHits:         m.CacheHits,
		CacheMisses:       m.CacheMisses,
		CacheHitRate:      m.cacheHitRate(),
		Reloads:           m.Reloads,
		ReloadErrors:      m.ReloadErrors,
		Listings:          m.Listings,
		Checksum:          m.Checksum,
		LastReload:        m.LastReload,
	}
}

// String returns a one-line summary.
func (m *SessionMetrics) String() string {
	s := m.Snapshot()
	return fmt.Sprintf("📊 %d listings, %d recomputes (avg %v, last %d results), cache: %d/%d hits (%.0f%%), %d reloads",
		s.Listings,
		s.Recomputes,
		s.AvgRecompute,
		s.LastResultCount,
		s.CacheHits,
		s.CacheHits+s.CacheMisses,
		s.CacheHitRate,
		s.Reloads,
	)
}

// Print outputs the metrics to stdout.
func (m *SessionMetrics) Print() {
	fmt.Println(m.String())
}
