// Package server exposes the year grid, layout and gesture operations over
// HTTP.
//
// Routes:
//
//	GET  /healthz
//	GET  /api/years/{year}/months
//	GET  /api/years/{year}/pages/{page}   (zero-based page index)
//	POST /api/layout
//	POST /api/gestures/drag
//	POST /api/gestures/resize
//	POST /api/gestures/drop
//
// The server holds no gesture state between requests: each gesture request
// carries the whole gesture (start geometry and final pixel delta) and is
// replayed through a fresh interaction manager. Errors are JSON objects with
// a code and a message; CONFIGURATION and INVALID_INPUT map to 400,
// INDEX_OUT_OF_RANGE and NOT_FOUND to 404, INVALID_STATE to 409.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/yeargrid/internal/config"
	"github.com/matzehuels/yeargrid/pkg/pipeline"
)

// Server serves the HTTP API.
type Server struct {
	runner *pipeline.Runner
	cfg    *config.Config
	logger *log.Logger
	now    func() time.Time
}

// Option configures a [Server].
type Option func(*Server)

// WithClock overrides the time source used to classify months.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New creates a server. A nil cfg uses [config.Default].
func New(runner *pipeline.Runner, cfg *config.Config, logger *log.Logger, opts ...Option) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	s := &Server{runner: runner, cfg: cfg, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router returns the HTTP handler with all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/years/{year}/months", s.handleMonths)
		r.Get("/years/{year}/pages/{page}", s.handlePage)
		r.Post("/layout", s.handleLayout)

		r.Route("/gestures", func(r chi.Router) {
			r.Post("/drag", s.handleDrag)
			r.Post("/resize", s.handleResize)
			r.Post("/drop", s.handleDrop)
		})
	})

	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// logRequests logs one line per request at debug level.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
