// Package api serves the planning pipeline over HTTP.
//
// Every request carries its own project snapshot; the server keeps no
// network state between requests apart from the cache and the plan store.
//
//	GET    /healthz
//	GET    /metrics
//	POST   /v1/routes
//	POST   /v1/evaluate
//	POST   /v1/plans
//	GET    /v1/plans
//	GET    /v1/plans/{id}
//	DELETE /v1/plans/{id}
package api

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/netplan/pkg/pipeline"
	"github.com/matzehuels/netplan/pkg/store"
)

// MaxBodyBytes limits request bodies.
const MaxBodyBytes = 8 << 20

const shutdownTimeout = 10 * time.Second

// Config wires a Server.
type Config struct {
	Runner *pipeline.Runner
	Store  store.Store

	// Defaults are the planning options requests start from.
	Defaults pipeline.Options

	// Metrics serves /metrics when set.
	Metrics http.Handler

	Logger *log.Logger
}

// Server is the planning HTTP API.
type Server struct {
	runner   *pipeline.Runner
	store    store.Store
	defaults pipeline.Options
	metrics  http.Handler
	logger   *log.Logger
	router   chi.Router
}

// New creates a server and builds its routes.
func New(cfg Config) *Server {
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	s := &Server{
		runner:   cfg.Runner,
		store:    cfg.Store,
		defaults: cfg.Defaults,
		metrics:  cfg.Metrics,
		logger:   cfg.Logger,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(observeRequests)

	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Post("/routes", s.handleRoutes)
		r.Post("/evaluate", s.handleEvaluate)
		r.Route("/plans", func(r chi.Router) {
			r.Post("/", s.handleCreatePlan)
			r.Get("/", s.handleListPlans)
			r.Get("/{id}", s.handleGetPlan)
			r.Delete("/{id}", s.handleDeletePlan)
		})
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout, writeTimeout time.Duration) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  2 * writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}
