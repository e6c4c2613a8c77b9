package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/feliperussi/medwrite-server/internal/domain"
)

func (s *Server) registerEvaluationRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "evaluateText",
		Method:      http.MethodPost,
		Path:        "/api/v1/tools/pls-evaluation",
		Summary:     "Evaluate text",
		Description: "Rates a text against PLS percentile thresholds and returns a structured evaluation",
		Tags:        []string{"Evaluation"},
	}, s.handleEvaluateText)

	huma.Register(s.api, huma.Operation{
		OperationID: "evaluateTextReport",
		Method:      http.MethodPost,
		Path:        "/api/v1/tools/pls-evaluation/text",
		Summary:     "Evaluate text as report",
		Description: "Rates a text and returns a human-readable conformity report",
		Tags:        []string{"Evaluation"},
	}, s.handleEvaluateTextReport)
}

// === DTOs ===

// EvaluateTextInput contains a text to evaluate.
type EvaluateTextInput struct {
	Body struct {
		Text string `json:"text" minLength:"1" doc:"Text to evaluate"`
	}
}

// EvaluateTextOutput wraps the structured evaluation for Huma.
type EvaluateTextOutput struct {
	Body domain.Evaluation
}

// EvaluateReportResponse contains the formatted conformity report.
type EvaluateReportResponse struct {
	Report string `json:"report" doc:"Human-readable evaluation report"`
}

// EvaluateReportOutput wraps the report response for Huma.
type EvaluateReportOutput struct {
	Body EvaluateReportResponse
}

// === Handlers ===

func (s *Server) handleEvaluateText(ctx context.Context, input *EvaluateTextInput) (*EvaluateTextOutput, error) {
	evaluation, err := s.services.Evaluation.Evaluate(ctx, input.Body.Text)
	if err != nil {
		return nil, err
	}

	return &EvaluateTextOutput{Body: evaluation}, nil
}

func (s *Server) handleEvaluateTextReport(ctx context.Context, input *EvaluateTextInput) (*EvaluateReportOutput, error) {
	report, err := s.services.Evaluation.EvaluateReport(ctx, input.Body.Text)
	if err != nil {
		return nil, err
	}

	return &EvaluateReportOutput{
		Body: EvaluateReportResponse{Report: report},
	}, nil
}
