// Package service holds the application services that tie the analysis
// engines, the glossary, and the store together behind the API surface.
package service

import (
	"context"

	"github.com/feliperussi/medwrite-server/internal/analyzer"
	"github.com/feliperussi/medwrite-server/internal/domain"
	"github.com/feliperussi/medwrite-server/internal/logger"
	"github.com/feliperussi/medwrite-server/internal/rating"
)

// EvaluationService runs the full PLS compliance pipeline: linguistic
// analysis through the feature provider, then percentile rating.
type EvaluationService struct {
	provider analyzer.FeatureProvider
	engine   *rating.Engine
	logger   *logger.Logger
}

func NewEvaluationService(provider analyzer.FeatureProvider, engine *rating.Engine, log *logger.Logger) *EvaluationService {
	return &EvaluationService{provider: provider, engine: engine, logger: log}
}

// Evaluate analyzes a text and rates every recommended feature.
func (s *EvaluationService) Evaluate(ctx context.Context, text string) (domain.Evaluation, error) {
	features, err := s.provider.Analyze(ctx, text)
	if err != nil {
		return domain.Evaluation{}, err
	}

	evaluation := s.engine.Evaluate(features)
	s.logger.Debug("text evaluated",
		"words", evaluation.Words,
		"total_evaluated", evaluation.Summary.TotalEvaluated,
		"assessment", evaluation.Summary.OverallAssessment,
	)
	return evaluation, nil
}

// EvaluateReport runs Evaluate and renders the human-readable report.
func (s *EvaluationService) EvaluateReport(ctx context.Context, text string) (string, error) {
	evaluation, err := s.Evaluate(ctx, text)
	if err != nil {
		return "", err
	}
	return rating.FormatTextReport(evaluation), nil
}

// WordCountLimit exposes the engine's word budget for draft selection.
func (s *EvaluationService) WordCountLimit() int {
	return s.engine.WordCountLimit()
}
