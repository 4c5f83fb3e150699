// Package api exposes the planning pipeline over HTTP.
//
// The server arranges equipment lists into rack plans and answers
// catalog spec lookups. Every response is JSON, including errors,
// which use a stable envelope:
//
//	{"error": {"code": "INVALID_CAPACITY", "message": "..."}}
//
// Proposal CSV ingestion stays in the CLI; callers of the API send
// equipment items directly.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/racklabs/rackplan/pkg/buildinfo"
	apperrors "github.com/racklabs/rackplan/pkg/errors"
	"github.com/racklabs/rackplan/pkg/pipeline"
)

// shutdownTimeout bounds the drain of in-flight requests once the
// serve context is canceled.
const shutdownTimeout = 10 * time.Second

// Server handles HTTP requests for rack planning.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// NewServer creates a server around an existing pipeline runner. The
// runner's sources and cache are shared across requests. If logger is
// nil, the default logger is used.
func NewServer(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(s.recoverPanics)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, apperrors.ErrCodeNotFound, "no such endpoint: "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, apperrors.ErrCodeUnsupported, r.Method+" is not supported here")
	})

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/plans", s.handleCreatePlan)
		r.Get("/catalog/specs", s.handleSpecLookup)
	})
	return r
}

// Serve listens on addr until ctx is canceled, then drains in-flight
// requests before returning. A nil return means a clean shutdown.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	s.logger.Info("serving", "addr", addr, "version", buildinfo.Version)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Version})
}
