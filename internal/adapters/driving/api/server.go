package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/custodia-labs/sercha-hub/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-hub/internal/logger"
)

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("api: search service is required")

// Ports aggregates the driving ports served over HTTP.
type Ports struct {
	Search driving.SearchService

	// Similarity is optional; without it the similarity routes return 503.
	Similarity driving.SimilarityService

	// TrustProxy keys rate limits on X-Forwarded-For / X-Real-IP. Enable it
	// only behind a proxy that sets those headers.
	TrustProxy bool
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}

// Per-client request budgets, per route.
const (
	SearchPerMinute     = 30
	SimilarityPerMinute = 20
	RequestTimeout      = 60 * time.Second
)

// Server routes HTTP requests to the search services.
type Server struct {
	ports  *Ports
	router chi.Router
}

// NewServer builds the router for ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, err
	}

	s := &Server{ports: ports}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	if ports.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(requestLogger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(RequestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Use(chimw.AllowContentType("application/json"))
		r.With(perClientLimit(SearchPerMinute)).Post("/search", s.handleSearch)
		r.With(perClientLimit(SimilarityPerMinute)).Post("/similarity-search", s.handleSimilaritySearch)
		r.With(perClientLimit(SimilarityPerMinute)).Post("/similar-urls", s.handleSimilarURLs)
	})

	s.router = r
	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("api: listening on %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
