package metrics

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestNewSessionMetrics(t *testing.T) {
	m := NewSessionMetrics()

	if m.StartTime.IsZero() {
		t.Error("StartTime should be set")
	}
	if m.Recomputes != 0 {
		t.Errorf("Recomputes should be 0, got %d", m.Recomputes)
	}
	if m.CacheHitRate() != 0 {
		t.Errorf("CacheHitRate should be 0 without lookups, got %v", m.CacheHitRate())
	}
}

func TestRecordRecompute(t *testing.T) {
	m := NewSessionMetrics()
	m.RecordRecompute(2*time.Millisecond, 10)
	m.RecordRecompute(4*time.Millisecond, 3)

	s := m.Snapshot()
	if s.Recomputes != 2 {
		t.Errorf("Recomputes = %d, want 2", s.Recomputes)
	}
	if s.AvgRecompute != 3*time.Millisecond {
		t.Errorf("AvgRecompute = %v, want 3ms", s.AvgRecompute)
	}
	if s.LastRecompute != 4*time.Millisecond || s.LastResultCount != 3 {
		t.Errorf("last = %v/%d", s.LastRecompute, s.LastResultCount)
	}
}

func TestCacheHitRate(t *testing.T) {
	tests := []struct {
		name     string
		hits     int
		misses   int
		expected float64
	}{
		{"no lookups", 0, 0, 0},
		{"all hits", 4, 0, 100},
		{"half", 2, 2, 50},
		{"all misses", 0, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewSessionMetrics()
			for i := 0; i < tt.hits; i++ {
				m.IncrementCacheHit()
			}
			for i := 0; i < tt.misses; i++ {
				m.IncrementCacheMiss()
			}
			if got := m.CacheHitRate(); got != tt.expected {
				t.Errorf("CacheHitRate() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRecordReload(t *testing.T) {
	m := NewSessionMetrics()
	m.RecordReload(42, "abc")
	m.RecordReloadError()

	s := m.Snapshot()
	if s.Reloads != 1 || s.ReloadErrors != 1 || s.Listings != 42 || s.Checksum != "abc" {
		t.Errorf("Snapshot = %+v", s)
	}
	if s.LastReload.IsZero() {
		t.Error("LastReload should be set")
	}
}

func TestConcurrentUpdates(t *testing.T) {
	m := NewSessionMetrics()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordRecompute(time.Microsecond, 1)
			m.IncrementSuggestions()
		}()
	}
	wg.Wait()

	s := m.Snapshot()
	if s.Recomputes != 50 || s.SuggestionQueries != 50 {
		t.Errorf("lost updates: %+v", s)
	}
}

func TestString(t *testing.T) {
	m := NewSessionMetrics()
	m.RecordReload(5, "abc")
	m.IncrementCacheHit()

	out := m.String()
	for _, want := range []string{"5 listings", "1/1 hits", "1 reloads"} {
		if !strings.Contains(out, want) {
			t.Errorf("String() = %q, missing %q", out, want)
		}
	}
}
