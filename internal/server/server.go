// Package server exposes assessments and building editing over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tomaszchojnowski/heatcalc/internal/history"
	"github.com/tomaszchojnowski/heatcalc/pkg/assess"
)

// Server is the HTTP API server.
type Server struct {
	assessor   *assess.Assessor
	store      history.Store
	metrics    *Metrics
	logger     *slog.Logger
	router     chi.Router
	httpServer *http.Server

	// edits serialises read-modify-write of sessions.
	edits sync.Mutex
}

// New creates a server listening on port.
func New(a *assess.Assessor, store history.Store, logger *slog.Logger, port int) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		assessor: a,
		store:    store,
		metrics:  NewMetrics(),
		logger:   logger,
	}
	s.router = s.routes()
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.Middleware)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/templates", s.handleTemplates)
		r.Get("/templates/{id}", s.handleTemplate)
		r.Post("/templates/validate", s.handleValidateTemplate)
		r.Get("/regions", s.handleRegions)
		r.Get("/climate/{postcode}", s.handleClimate)
		r.Post("/assessments", s.handleAssess)

		r.Route("/buildings/{id}", func(r chi.Router) {
			r.Get("/", s.handleBuilding)
			r.Patch("/spaces/{spaceID}", s.handleResizeSpace)
			r.Post("/undo", s.handleUndo)
			r.Post("/redo", s.handleRedo)
			r.Post("/upgrades", s.handleUpgrades)
			r.Get("/export.xlsx", s.handleExport)
		})
	})
	return r
}

// Handler returns the server's router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Stop is called.
func (s *Server) Start() error {
	s.logger.Info("heatcalc server starting", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
