package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns server health status with component checks",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

// ComponentHealth describes the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status" doc:"Component status: healthy, degraded, or unhealthy"`
	Latency string `json:"latency,omitempty" doc:"Response time for this component"`
	Message string `json:"message,omitempty" doc:"Additional status information"`
}

// HealthResponse contains health check data in API responses.
type HealthResponse struct {
	Status     string                     `json:"status" doc:"Overall status: healthy, degraded, or unhealthy"`
	Components map[string]ComponentHealth `json:"components" doc:"Individual component statuses"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealthCheck(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	components := make(map[string]ComponentHealth)
	overall := "healthy"

	downgrade := func(status string) {
		if status == "unhealthy" {
			overall = "unhealthy"
		} else if status == "degraded" && overall == "healthy" {
			overall = "degraded"
		}
	}

	dbHealth := s.checkDatabase(ctx)
	components["database"] = dbHealth
	downgrade(dbHealth.Status)

	glossaryHealth := s.checkGlossary()
	components["glossary"] = glossaryHealth
	downgrade(glossaryHealth.Status)

	searchHealth := s.checkSearchIndex()
	components["search"] = searchHealth
	downgrade(searchHealth.Status)

	analyzerHealth := s.checkAnalyzer()
	components["analyzer"] = analyzerHealth
	downgrade(analyzerHealth.Status)

	return &HealthOutput{
		Body: HealthResponse{
			Status:     overall,
			Components: components,
		},
	}, nil
}

// checkDatabase verifies BadgerDB is accessible.
func (s *Server) checkDatabase(ctx context.Context) ComponentHealth {
	if s.store == nil {
		return ComponentHealth{
			Status:  "degraded",
			Message: "database not configured",
		}
	}

	start := time.Now()
	// Quick read to verify the DB is accessible.
	_, err := s.store.ListSummaries(ctx)
	latency := time.Since(start)

	if err != nil {
		return ComponentHealth{
			Status:  "unhealthy",
			Latency: latency.String(),
			Message: "database read failed",
		}
	}

	return ComponentHealth{
		Status:  "healthy",
		Latency: latency.String(),
	}
}

// checkGlossary verifies the phrase index is loaded.
func (s *Server) checkGlossary() ComponentHealth {
	if s.services == nil || s.services.Glossary == nil {
		return ComponentHealth{
			Status:  "degraded",
			Message: "glossary not configured",
		}
	}

	if !s.services.Glossary.Ready() {
		return ComponentHealth{
			Status:  "unhealthy",
			Message: "glossary index not loaded",
		}
	}

	return ComponentHealth{Status: "healthy"}
}

// checkSearchIndex verifies the Bleve index is accessible.
func (s *Server) checkSearchIndex() ComponentHealth {
	if s.services == nil || s.services.Search == nil {
		return ComponentHealth{
			Status:  "degraded",
			Message: "search index not configured",
		}
	}

	start := time.Now()
	docCount, err := s.services.Search.DocumentCount()
	latency := time.Since(start)

	if err != nil {
		return ComponentHealth{
			Status:  "unhealthy",
			Latency: latency.String(),
			Message: "search index unreachable",
		}
	}

	// Accessible but empty, likely mid-rebuild.
	if docCount == 0 {
		return ComponentHealth{
			Status:  "degraded",
			Latency: latency.String(),
			Message: "search index empty",
		}
	}

	return ComponentHealth{
		Status:  "healthy",
		Latency: latency.String(),
	}
}

// checkAnalyzer reports whether the feature-extraction service is configured.
// Liveness of the remote service is not probed here to keep health cheap.
func (s *Server) checkAnalyzer() ComponentHealth {
	if s.analyzerURL == "" {
		return ComponentHealth{
			Status:  "degraded",
			Message: "analyzer not configured",
		}
	}

	return ComponentHealth{Status: "healthy"}
}
