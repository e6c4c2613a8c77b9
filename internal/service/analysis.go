package service

import (
	"context"

	"github.com/feliperussi/medwrite-server/internal/analyzer"
	domainerrors "github.com/feliperussi/medwrite-server/internal/errors"
	"github.com/feliperussi/medwrite-server/internal/logger"
)

// AnalysisService exposes raw linguistic analysis, single and batch.
type AnalysisService struct {
	provider analyzer.FeatureProvider
	logger   *logger.Logger
}

func NewAnalysisService(provider analyzer.FeatureProvider, log *logger.Logger) *AnalysisService {
	return &AnalysisService{provider: provider, logger: log}
}

// Analyze returns the feature map for one text.
func (s *AnalysisService) Analyze(ctx context.Context, text string) (map[string]float64, error) {
	if text == "" {
		return nil, domainerrors.Validation("text is required")
	}
	return s.provider.Analyze(ctx, text)
}

// BatchResult is the batch analysis envelope.
type BatchResult struct {
	Analyses []analyzer.Analysis `json:"analyses"`
	Summary  BatchSummary        `json:"summary"`
}

// BatchSummary carries batch-level counts.
type BatchSummary struct {
	TotalTexts int `json:"total_texts"`
}

// AnalyzeBatch analyzes several texts in one call. textIDs is optional
// but must match texts in length when given.
func (s *AnalysisService) AnalyzeBatch(ctx context.Context, texts []string, textIDs []string) (*BatchResult, error) {
	if len(texts) == 0 {
		return nil, domainerrors.Validation("texts is required")
	}

	analyses, err := s.provider.AnalyzeBatch(ctx, texts, textIDs)
	if err != nil {
		return nil, err
	}

	return &BatchResult{
		Analyses: analyses,
		Summary:  BatchSummary{TotalTexts: len(analyses)},
	}, nil
}
