package tools

import (
	"context"

	"github.com/feliperussi/medwrite-server/internal/domain"
	domainerrors "github.com/feliperussi/medwrite-server/internal/errors"
	"github.com/feliperussi/medwrite-server/internal/glossary"
)

// GlossaryTool finds and defines medical phrases in a text, with the
// exact location of every match.
type GlossaryTool struct {
	svc *glossary.Service
}

func NewGlossaryTool(svc *glossary.Service) *GlossaryTool {
	return &GlossaryTool{svc: svc}
}

func (t *GlossaryTool) Info() domain.ToolInfo {
	return domain.ToolInfo{
		Name:        "glossary",
		Description: "Find and define complex medical phrases within a body of text with location information",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"text": map[string]any{
					"type":        "string",
					"description": "The text to analyze for medical terms",
				},
			},
			"required": []string{"text"},
		},
		Version: "2.0.0",
	}
}

func (t *GlossaryTool) Execute(ctx context.Context, params map[string]any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text, ok := stringParam(params, "text")
	if !ok {
		return nil, domainerrors.Validation("missing required parameter: text")
	}
	return t.svc.FindMatches(text)
}
