package tools

import (
	"context"

	"github.com/feliperussi/medwrite-server/internal/domain"
	domainerrors "github.com/feliperussi/medwrite-server/internal/errors"
	"github.com/feliperussi/medwrite-server/internal/service"
)

// PLSEvaluationTool rates a text against the PLS reference thresholds.
// The "format" parameter selects structured JSON or the plain text
// report.
type PLSEvaluationTool struct {
	svc *service.EvaluationService
}

func NewPLSEvaluationTool(svc *service.EvaluationService) *PLSEvaluationTool {
	return &PLSEvaluationTool{svc: svc}
}

func (t *PLSEvaluationTool) Info() domain.ToolInfo {
	return domain.ToolInfo{
		Name:        "pls_evaluation",
		Description: "Evaluate text against Plain Language Summary thresholds and provide improvement recommendations",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"text": map[string]any{
					"type":        "string",
					"description": "Text to evaluate for PLS compliance",
				},
				"format": map[string]any{
					"type":        "string",
					"enum":        []string{"json", "text"},
					"description": "Output format: 'json' for structured data or 'text' for human-readable format",
					"default":     "json",
				},
			},
			"required": []string{"text"},
		},
		Version: "1.0.0",
	}
}

func (t *PLSEvaluationTool) Execute(ctx context.Context, params map[string]any) (any, error) {
	text, ok := stringParam(params, "text")
	if !ok {
		return nil, domainerrors.Validation("missing required parameter: text")
	}

	format, _ := stringParam(params, "format")
	switch format {
	case "", "json":
		return t.svc.Evaluate(ctx, text)
	case "text":
		return t.svc.EvaluateReport(ctx, text)
	default:
		return nil, domainerrors.Validationf("unknown format %q", format)
	}
}
