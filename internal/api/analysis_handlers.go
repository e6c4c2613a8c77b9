package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/feliperussi/medwrite-server/internal/service"
)

func (s *Server) registerAnalysisRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "analyzeText",
		Method:      http.MethodPost,
		Path:        "/api/v1/tools/linguistic-analysis",
		Summary:     "Analyze text",
		Description: "Extracts linguistic features from a single text",
		Tags:        []string{"Analysis"},
	}, s.handleAnalyzeText)

	huma.Register(s.api, huma.Operation{
		OperationID: "analyzeBatch",
		Method:      http.MethodPost,
		Path:        "/api/v1/tools/linguistic-analysis/batch",
		Summary:     "Analyze texts",
		Description: "Extracts linguistic features from multiple texts in one call",
		Tags:        []string{"Analysis"},
	}, s.handleAnalyzeBatch)
}

// === DTOs ===

// AnalyzeTextInput contains a single text to analyze.
type AnalyzeTextInput struct {
	Body struct {
		Text string `json:"text" minLength:"1" doc:"Text to analyze"`
	}
}

// AnalyzeTextResponse contains the extracted feature values.
type AnalyzeTextResponse struct {
	Features map[string]float64 `json:"features" doc:"Feature name to value"`
}

// AnalyzeTextOutput wraps the analysis response for Huma.
type AnalyzeTextOutput struct {
	Body AnalyzeTextResponse
}

// AnalyzeBatchInput contains multiple texts to analyze.
type AnalyzeBatchInput struct {
	Body struct {
		Texts   []string `json:"texts" minItems:"1" doc:"Texts to analyze"`
		TextIDs []string `json:"text_ids,omitempty" doc:"Optional identifiers, positionally matched to texts"`
	}
}

// AnalyzeBatchOutput wraps the batch result for Huma.
type AnalyzeBatchOutput struct {
	Body service.BatchResult
}

// === Handlers ===

func (s *Server) handleAnalyzeText(ctx context.Context, input *AnalyzeTextInput) (*AnalyzeTextOutput, error) {
	features, err := s.services.Analysis.Analyze(ctx, input.Body.Text)
	if err != nil {
		return nil, err
	}

	return &AnalyzeTextOutput{
		Body: AnalyzeTextResponse{Features: features},
	}, nil
}

func (s *Server) handleAnalyzeBatch(ctx context.Context, input *AnalyzeBatchInput) (*AnalyzeBatchOutput, error) {
	result, err := s.services.Analysis.AnalyzeBatch(ctx, input.Body.Texts, input.Body.TextIDs)
	if err != nil {
		return nil, err
	}

	return &AnalyzeBatchOutput{Body: *result}, nil
}
