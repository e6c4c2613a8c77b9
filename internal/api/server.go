// Package api provides the HTTP API server and handlers for the Medwrite service.
package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/feliperussi/medwrite-server/internal/config"
	"github.com/feliperussi/medwrite-server/internal/glossary"
	"github.com/feliperussi/medwrite-server/internal/logger"
	"github.com/feliperussi/medwrite-server/internal/ratelimit"
	"github.com/feliperussi/medwrite-server/internal/search"
	"github.com/feliperussi/medwrite-server/internal/service"
	"github.com/feliperussi/medwrite-server/internal/store"
	"github.com/feliperussi/medwrite-server/internal/tools"
)

// apiVersion is reported in the OpenAPI document.
const apiVersion = "1.0.0"

// Services groups the domain services the handlers depend on.
type Services struct {
	Glossary   *glossary.Service
	Search     *search.GlossaryIndex
	Analysis   *service.AnalysisService
	Evaluation *service.EvaluationService
	Summary    *service.SummaryService
	Tools      *tools.Registry
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store       *store.Store
	services    *Services
	router      *chi.Mux
	api         huma.API
	logger      *logger.Logger
	rateLimiter *ratelimit.KeyedRateLimiter
	analyzerURL string
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st *store.Store, services *Services, cfg *config.Config, log *logger.Logger) *Server {
	s := &Server{
		store:       st,
		services:    services,
		router:      chi.NewRouter(),
		logger:      log,
		analyzerURL: cfg.Analyzer.BaseURL,
	}

	if cfg.Server.RateLimitRPS > 0 {
		s.rateLimiter = ratelimit.New(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig(cfg.Server.Name, apiVersion)
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	if s.rateLimiter != nil {
		s.router.Use(s.rateLimitAnalysis)
	}
}

// registerRoutes registers all huma operations.
func (s *Server) registerRoutes() {
	s.registerHealthRoutes()
	s.registerToolRoutes()
	s.registerGlossaryRoutes()
	s.registerAnalysisRoutes()
	s.registerEvaluationRoutes()
	s.registerSummaryRoutes()
}
