// Package run owns the live catalog of a host process: it loads the catalog,
// builds the search session through the snapshot cache and swaps it on reload.
package run

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/afero"

	"github.com/Kush-Singh-26/immo/catalog/cache"
	"github.com/Kush-Singh-26/immo/catalog/config"
	"github.com/Kush-Singh-26/immo/catalog/loader"
	"github.com/Kush-Singh-26/immo/catalog/metrics"
	"github.com/Kush-Singh-26/immo/catalog/models"
	"github.com/Kush-Singh-26/immo/catalog/session"
)

// ErrNotLoaded is returned before the first successful Reload.
var ErrNotLoaded = errors.New("catalog not loaded")

// Host maintains the state shared by the CLI and the HTTP server.
type Host struct {
	cfg     *config.Config
	loader  *loader.Loader
	cache   *cache.Manager
	metrics *metrics.SessionMetrics
	logger  *slog.Logger

	mu       sync.Mutex // serializes reloads
	current  atomic.Pointer[session.Session]
	checksum atomic.Value // string
}

// NewHost creates a host. Without a usable cache directory the host still
// works; every load then derives its state from scratch.
func NewHost(cfg *config.Config, fs afero.Fs, logger *slog.Logger) *Host {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Host{
		cfg:     cfg,
		loader:  loader.New(fs, logger, cfg.Fetch.Retries, cfg.Fetch.Timeout),
		metrics: metrics.NewSessionMetrics(),
		logger:  logger,
	}

	if cfg.CacheDir != "" {
		cm, err := cache.Open(cfg.CacheDir, cfg.CacheDBTimeout)
		if err != nil {
			logger.Warn("Snapshot cache disabled", "dir", cfg.CacheDir, "error", err)
		} else {
			h.cache = cm
		}
	}
	return h
}

// Config returns the host configuration.
func (h *Host) Config() *config.Config { return h.cfg }

// Metrics returns the host counters.
func (h *Host) Metrics() *metrics.SessionMetrics { return h.metrics }

// Cache returns the snapshot cache, or nil when it is disabled.
func (h *Host) Cache() *cache.Manager { return h.cache }

// Session returns the live session, or nil before the first load.
func (h *Host) Session() *session.Session { return h.current.Load() }

// Checksum returns the checksum of the live catalog.
func (h *Host) Checksum() string {
	s, _ := h.checksum.Load().(string)
	return s
}

// Reload reads the configured catalog and swaps the live session. It reports
// whether the session changed; an unchanged checksum keeps the live one.
func (h *Host) Reload(ctx context.Context) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	start := time.Now()
	res, err := h.loader.Load(ctx, h.cfg.Catalog)
	if err != nil {
		h.metrics.RecordReloadError()
		return false, err
	}
	if h.current.Load() != nil && res.Checksum == h.Checksum() {
		h.logger.Debug("Catalog unchanged", "source", res.Source)
		return false, nil
	}

	var store session.SnapshotStore
	if h.cache != nil {
		store = h.cache
	}
	s, hit, err := session.Build(res.Listings, res.Checksum, store, h.cfg.SessionOptions())
	if err != nil {
		// the session is still usable, only the snapshot write or read failed
		h.logger.Warn("Snapshot cache error", "error", err)
	}
	if store != nil {
		if hit {
			h.metrics.IncrementCacheHit()
		} else {
			h.metrics.IncrementCacheMiss()
		}
	}

	h.current.Store(s)
	h.checksum.Store(res.Checksum)
	h.metrics.RecordReload(s.Len(), res.Checksum)

	h.logger.Info("Catalog loaded",
		"source", res.Source,
		"listings", s.Len(),
		"duplicates", len(res.Duplicates),
		"snapshot_hit", hit,
		"duration", time.Since(start))
	return true, nil
}

// Recompute derives the view of state on the live session and records it.
func (h *Host) Recompute(state models.FilterState) (session.View, error) {
	s := h.Session()
	if s == nil {
		return session.View{}, ErrNotLoaded
	}
	start := time.Now()
	v := s.Recompute(state)
	h.metrics.RecordRecompute(time.Since(start), v.Count)
	return v, nil
}

// Suggest ranks suggestions on the live session.
func (h *Host) Suggest(query string, limit int) ([]models.Suggestion, error) {
	s := h.Session()
	if s == nil {
		return nil, ErrNotLoaded
	}
	h.metrics.IncrementSuggestions()
	return s.Suggest(query, limit), nil
}

// Close releases the snapshot cache.
func (h *Host) Close() error {
	if h.cache == nil {
		return nil
	}
	return h.cache.Close()
}
