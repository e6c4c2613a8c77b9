package tools

import (
	"context"

	"github.com/feliperussi/medwrite-server/internal/domain"
	domainerrors "github.com/feliperussi/medwrite-server/internal/errors"
	"github.com/feliperussi/medwrite-server/internal/service"
)

// LinguisticAnalysisTool exposes raw feature extraction for one or many
// texts.
type LinguisticAnalysisTool struct {
	svc *service.AnalysisService
}

func NewLinguisticAnalysisTool(svc *service.AnalysisService) *LinguisticAnalysisTool {
	return &LinguisticAnalysisTool{svc: svc}
}

func (t *LinguisticAnalysisTool) Info() domain.ToolInfo {
	return domain.ToolInfo{
		Name:        "linguistic_analysis",
		Description: "Comprehensive linguistic analysis of text including readability scores, POS distributions, and stylistic metrics",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"text": map[string]any{
					"type":        "string",
					"description": "Text to analyze",
				},
				"texts": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "Array of texts to analyze (alternative to single text)",
				},
				"text_ids": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "Optional IDs for each text when analyzing multiple texts",
				},
			},
			"oneOf": []any{
				map[string]any{"required": []string{"text"}},
				map[string]any{"required": []string{"texts"}},
			},
		},
		Version: "1.0.0",
	}
}

func (t *LinguisticAnalysisTool) Execute(ctx context.Context, params map[string]any) (any, error) {
	if text, ok := stringParam(params, "text"); ok {
		return t.svc.Analyze(ctx, text)
	}

	texts, ok := stringSliceParam(params, "texts")
	if !ok || len(texts) == 0 {
		return nil, domainerrors.Validation("either 'text' or 'texts' parameter is required")
	}
	textIDs, _ := stringSliceParam(params, "text_ids")
	return t.svc.AnalyzeBatch(ctx, texts, textIDs)
}
