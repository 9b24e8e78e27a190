// Package server exposes attribute checking over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/propcheck/internal/watch"
	"github.com/leapstack-labs/propcheck/pkg/lint"
	"github.com/leapstack-labs/propcheck/pkg/lint/rules/props"
	"github.com/leapstack-labs/propcheck/pkg/propcheck"
)

// ConfigLoader produces the lint configuration; it is called again whenever
// the watched configuration file changes.
type ConfigLoader func() (*lint.Config, error)

// Config holds configuration for the server.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	MaxBodyBytes int64
	Logger       *slog.Logger
	Load         ConfigLoader
	// WatchFile is reloaded through Load on change; empty disables watching.
	WatchFile string
}

// Server is the check server.
type Server struct {
	cfg    Config
	logger *slog.Logger
	router chi.Router

	mu       sync.RWMutex
	analyzer *lint.Analyzer
	lintCfg  *lint.Config
	loadedAt time.Time
}

// New creates a server and performs the initial configuration load.
func New(cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Load == nil {
		cfg.Load = func() (*lint.Config, error) { return lint.NewConfig(), nil }
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 1 << 20
	}
	s := &Server{cfg: cfg, logger: cfg.Logger}
	if err := s.reload(); err != nil {
		return nil, err
	}
	s.router = s.routes()
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewMux()
	r.Use(
		requestID,
		middleware.Recoverer,
		s.requestLogger,
	)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/check", s.handleCheck)
		r.Get("/rules", s.handleRules)
		r.Get("/lookup/{name}", s.handleLookup)
	})
	return r
}

// requestLogger logs requests through the server's slog logger.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// reload rebuilds the analyzer from the configuration loader. On failure the
// previous analyzer stays in place.
func (s *Server) reload() error {
	lintCfg, err := s.cfg.Load()
	if err != nil {
		return fmt.Errorf("failed to load lint config: %w", err)
	}
	analyzer := lint.NewAnalyzer(lintCfg, lint.WithLogger(s.logger))

	s.mu.Lock()
	s.analyzer = analyzer
	s.lintCfg = lintCfg
	s.loadedAt = time.Now()
	s.mu.Unlock()
	return nil
}

func (s *Server) current() (*lint.Analyzer, *lint.Config) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.analyzer, s.lintCfg
}

// engine builds a decision engine honoring the configured ignore list.
func (s *Server) engine() *propcheck.Engine {
	_, lintCfg := s.current()
	ignore := lint.GetStringSliceOption(lintCfg.GetRuleOptions(props.NoUnknownProperty.ID), props.OptionIgnore, nil)
	return propcheck.New(nil, propcheck.Config{Ignore: ignore})
}

// Serve starts the server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener serves on ln until the context is cancelled.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	s.logger.Info("starting check server", slog.String("addr", ln.Addr().String()))

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: s.router,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: s.cfg.ReadTimeout,
		ReadTimeout:       s.cfg.ReadTimeout,
	}

	// Reload configuration when its file changes
	if s.cfg.WatchFile != "" {
		eg.Go(func() error {
			return watch.Run(egctx, watch.Config{
				Files:  []string{s.cfg.WatchFile},
				Logger: s.logger,
				OnChange: func(context.Context, []string) {
					if err := s.reload(); err != nil {
						s.logger.Error("config reload failed, keeping previous config", slog.Any("error", err))
						return
					}
					s.logger.Info("config reloaded", slog.String("file", s.cfg.WatchFile))
				},
			})
		})
	}

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down check server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-Id"

// requestID reuses the caller's X-Request-Id or assigns a UUID, echoes it on
// the response, and stores it where middleware.GetReqID finds it.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
