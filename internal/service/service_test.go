package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feliperussi/medwrite-server/internal/analyzer"
	"github.com/feliperussi/medwrite-server/internal/domain"
	domainerrors "github.com/feliperussi/medwrite-server/internal/errors"
	"github.com/feliperussi/medwrite-server/internal/logger"
	"github.com/feliperussi/medwrite-server/internal/rating"
	"github.com/feliperussi/medwrite-server/internal/store"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Writer: io.Discard, Environment: "test", Level: slog.LevelError})
}

type fakeProvider struct {
	features map[string]float64
	err      error
}

func (f *fakeProvider) Analyze(context.Context, string) (map[string]float64, error) {
	return f.features, f.err
}

func (f *fakeProvider) AnalyzeBatch(_ context.Context, texts []string, textIDs []string) ([]analyzer.Analysis, error) {
	if f.err != nil {
		return nil, f.err
	}
	analyses := make([]analyzer.Analysis, len(texts))
	for i := range texts {
		id := ""
		if i < len(textIDs) {
			id = textIDs[i]
		}
		analyses[i] = analyzer.Analysis{TextID: id, Features: f.features}
	}
	return analyses, nil
}

func testEngine() *rating.Engine {
	return rating.NewEngine(map[string]domain.ThresholdEntry{
		"words_per_sentence": {Excellent: 12, Good: 15, Acceptable: 18, Poor: 22, Direction: domain.LowerBetter},
		"active_voice":       {Excellent: 70, Good: 50, Acceptable: 30, Poor: 10, Direction: domain.HigherBetter},
	}, 850)
}

func TestEvaluationService(t *testing.T) {
	provider := &fakeProvider{features: map[string]float64{
		"words":              400,
		"sentences":          25,
		"words_per_sentence": 16,
		"active_voice":       72,
	}}
	svc := NewEvaluationService(provider, testEngine(), testLogger())

	eval, err := svc.Evaluate(t.Context(), "some text")
	require.NoError(t, err)

	assert.Equal(t, 400, eval.Words)
	assert.Equal(t, 2, eval.Summary.TotalEvaluated)
	assert.Equal(t, domain.RatingP75, eval.LinguisticEvaluation["active_voice"].Rating)
	assert.Equal(t, domain.RatingP75, eval.LinguisticEvaluation["words_per_sentence"].Rating)

	report, err := svc.EvaluateReport(t.Context(), "some text")
	require.NoError(t, err)
	assert.Contains(t, report, "METRIC EVALUATION:")
}

func TestEvaluationServicePropagatesProviderError(t *testing.T) {
	provider := &fakeProvider{err: domainerrors.Unavailable("analyzer down")}
	svc := NewEvaluationService(provider, testEngine(), testLogger())

	_, err := svc.Evaluate(t.Context(), "text")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUnavailable)
}

func TestAnalysisServiceValidation(t *testing.T) {
	svc := NewAnalysisService(&fakeProvider{features: map[string]float64{"words": 3}}, testLogger())

	_, err := svc.Analyze(t.Context(), "")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = svc.AnalyzeBatch(t.Context(), nil, nil)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestAnalysisServiceBatch(t *testing.T) {
	svc := NewAnalysisService(&fakeProvider{features: map[string]float64{"words": 3}}, testLogger())

	result, err := svc.AnalyzeBatch(t.Context(), []string{"a", "b"}, []string{"t1", "t2"})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Summary.TotalTexts)
	assert.Equal(t, "t1", result.Analyses[0].TextID)
}

func TestSummaryServiceDraftFlow(t *testing.T) {
	st, err := store.New(t.TempDir(), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	svc := NewSummaryService(st, 850, testLogger())

	summary := &domain.Summary{
		Model:      "gpt-4",
		ID:         "CD000259.PUB4",
		PlainTitle: "Title",
	}
	require.NoError(t, svc.Save(t.Context(), summary))

	draft := &domain.Draft{
		Model:     "gpt-4",
		SummaryID: "CD000259.PUB4",
		Text:      "Draft text.",
		Metrics: []map[string]any{{
			"summary":           map[string]any{"best_quartile_rate": 55.0},
			"word_count_status": map[string]any{"word_count": 500.0},
		}},
	}
	require.NoError(t, svc.SaveDraft(t.Context(), draft))
	assert.Equal(t, 1, draft.DraftNumber)
	assert.NotEmpty(t, draft.DraftID)

	last, err := svc.LastDraft(t.Context(), "gpt-4", "CD000259.PUB4")
	require.NoError(t, err)
	assert.Equal(t, draft.DraftID, last.DraftID)

	best, err := svc.BestDraft(t.Context(), "gpt-4", "CD000259.PUB4")
	require.NoError(t, err)
	assert.Equal(t, 55.0, best.BestQuartileRate)

	require.NoError(t, svc.Delete(t.Context(), "gpt-4", "CD000259.PUB4"))
	_, err = svc.Get(t.Context(), "gpt-4", "CD000259.PUB4")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestSummaryServiceValidation(t *testing.T) {
	st, err := store.New(t.TempDir(), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	svc := NewSummaryService(st, 850, testLogger())

	err = svc.Save(t.Context(), &domain.Summary{Model: "gpt-4"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	err = svc.SaveDraft(t.Context(), &domain.Draft{Model: "gpt-4", SummaryID: "CD000259.PUB4"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}
