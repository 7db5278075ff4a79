// Package server provides the HTTP JSON API over the CV toolkit.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/cvgen/internal/config"
	"github.com/jonathan/cvgen/internal/jobs"
	"github.com/jonathan/cvgen/internal/profiles"
	"github.com/jonathan/cvgen/internal/server/middleware"
	"github.com/jonathan/cvgen/internal/server/ratelimit"
	"github.com/jonathan/cvgen/internal/templates"
)

// maxBodyBytes bounds every request body
const maxBodyBytes = 1 << 20

// Deps are the services the handlers call. Templates and Jobs are created
// with defaults when nil; without Profiles the /profiles read routes are
// not registered.
type Deps struct {
	Templates *templates.Provider
	Jobs      *jobs.Analyzer
	Profiles  *profiles.Service
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	logger      *zap.Logger
	templates   *templates.Provider
	jobs        *jobs.Analyzer
	profiles    *profiles.Service
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	origins     map[string]bool
}

// New creates a new server instance. Setting cfg.JWTSecret turns on bearer
// token auth for every route except /health.
func New(cfg config.ServerConfig, deps Deps, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.Templates == nil {
		deps.Templates = templates.NewProvider()
	}
	if deps.Jobs == nil {
		deps.Jobs = jobs.NewAnalyzer(nil, logger)
	}

	s := &Server{
		logger:      logger,
		templates:   deps.Templates,
		jobs:        deps.Jobs,
		profiles:    deps.Profiles,
		rateLimiter: ratelimit.NewLimiter(ratelimit.NewConfig(cfg.RateLimit, cfg.Burst, cfg.RateLimitExempt...)),
		origins:     make(map[string]bool, len(cfg.AllowedOrigins)),
	}
	for _, o := range cfg.AllowedOrigins {
		s.origins[o] = true
	}

	jwtConfig, err := cfg.JWT()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	if jwtConfig != nil {
		s.jwtService = NewJWTService(jwtConfig)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /templates", s.handleListTemplates)
	mux.HandleFunc("POST /render/html", s.handleRenderHTML)
	mux.HandleFunc("POST /ats/analyze", s.handleATSAnalyze)
	mux.HandleFunc("POST /jobs/analyze", s.handleJobsAnalyze)
	mux.HandleFunc("POST /profiles/parse", s.handleParseProfile)
	if s.profiles != nil {
		mux.HandleFunc("GET /profiles", s.handleListProfiles)
		mux.HandleFunc("GET /profiles/{id}", s.handleGetProfile)
	}

	var h http.Handler = mux
	if s.jwtService != nil {
		h = middleware.AuthMiddleware(s.jwtService.AsTokenValidator(), "/health")(h)
	}
	s.handler = s.withRateLimit(s.withLogging(s.withCORS(h)))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // batch job analysis fetches many pages
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// Handler returns the fully wrapped handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start serves until ctx is cancelled or the process receives SIGINT or
// SIGTERM, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr), zap.Bool("auth", s.jwtService != nil))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		s.rateLimiter.Stop()
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.rateLimiter.Stop()
	s.logger.Info("server stopped")
	return nil
}
