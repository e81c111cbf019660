// Package server exposes the live search session over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/sync/errgroup"

	"github.com/Kush-Singh-26/immo/catalog/loader"
	"github.com/Kush-Singh-26/immo/catalog/run"
	"github.com/Kush-Singh-26/immo/internal/watch"
)

// Server is the HTTP host of one catalog.
type Server struct {
	host      *run.Host
	logger    *slog.Logger
	policy    *bluemonday.Policy
	formatter *Formatter
	hub       *hub
	handler   http.Handler
}

// New builds the router around host.
func New(host *run.Host, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		host:      host,
		logger:    logger,
		policy:    bluemonday.StrictPolicy(),
		formatter: NewFormatter(),
		hub:       newHub(),
	}
	s.handler = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.handler }

func (s *Server) routes() http.Handler {
	cfg := s.host.Config()

	r := chi.NewRouter()
	r.Use(LoggerMiddleware(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Trace-ID"},
		ExposedHeaders: []string{"X-Trace-ID"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Use(gzipMiddleware)

		r.Get("/listings", s.handleListings)
		r.Get("/suggest", s.handleSuggest)
		r.Get("/price-range", s.handlePriceRange)
		r.Post("/filters/price", s.handlePriceFilter)
		r.Post("/filters/suggestion", s.handleSuggestionFilter)
		r.Get("/stats", s.handleStats)
	})
	r.Get("/events", s.hub.ServeHTTP)
	return r
}

// Run serves until ctx is done. With watching enabled and a local catalog,
// file changes reload the catalog and notify /events subscribers.
func (s *Server) Run(ctx context.Context) error {
	cfg := s.host.Config()
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("🌐 Serving", "addr", "http://"+srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("could not start server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("🛑 Shutting down server")
		s.hub.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if cfg.Server.Watch && !loader.IsRemote(cfg.Catalog) {
		w, err := watch.New(cfg.Catalog, cfg.Server.DebounceDuration, s.logger, func(watch.Event) {
			s.Reload(ctx)
		})
		if err != nil {
			s.logger.Warn("Catalog watch disabled", "error", err)
		} else {
			g.Go(func() error { return w.Run(ctx) })
		}
	}

	return g.Wait()
}

// Reload reloads the catalog and notifies subscribers when it changed.
func (s *Server) Reload(ctx context.Context) {
	changed, err := s.host.Reload(ctx)
	if err != nil {
		s.logger.Error("Catalog reload failed", "error", err)
		return
	}
	if changed {
		s.hub.Broadcast()
	}
}
