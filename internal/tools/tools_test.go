package tools

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feliperussi/medwrite-server/internal/analyzer"
	"github.com/feliperussi/medwrite-server/internal/domain"
	domainerrors "github.com/feliperussi/medwrite-server/internal/errors"
	"github.com/feliperussi/medwrite-server/internal/glossary"
	"github.com/feliperussi/medwrite-server/internal/logger"
	"github.com/feliperussi/medwrite-server/internal/rating"
	"github.com/feliperussi/medwrite-server/internal/service"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Writer: io.Discard, Environment: "test", Level: slog.LevelError})
}

type staticProvider struct {
	features map[string]float64
}

func (p staticProvider) Analyze(context.Context, string) (map[string]float64, error) {
	return p.features, nil
}

func (p staticProvider) AnalyzeBatch(_ context.Context, texts []string, textIDs []string) ([]analyzer.Analysis, error) {
	analyses := make([]analyzer.Analysis, len(texts))
	for i := range texts {
		id := ""
		if i < len(textIDs) {
			id = textIDs[i]
		}
		analyses[i] = analyzer.Analysis{TextID: id, Features: p.features}
	}
	return analyses, nil
}

func testGlossaryService(t *testing.T) *glossary.Service {
	t.Helper()
	dir := t.TempDir()
	content := `[{"term":"Hypertension (High Blood Pressure)","plain_alternative":"high blood pressure"}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "terms.json"), []byte(content), 0o644))

	svc := glossary.NewService(dir, testLogger())
	require.NoError(t, svc.Rebuild(t.Context()))
	return svc
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	tool := NewGlossaryTool(testGlossaryService(t))

	require.NoError(t, reg.Register(tool))

	err := reg.Register(tool)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrConflict)

	got, err := reg.Get("glossary")
	require.NoError(t, err)
	assert.Equal(t, "glossary", got.Info().Name)

	_, err = reg.Get("missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	infos := reg.List()
	require.Len(t, infos, 1)
	assert.Equal(t, "2.0.0", infos[0].Version)
}

func TestGlossaryToolExecute(t *testing.T) {
	tool := NewGlossaryTool(testGlossaryService(t))

	result, err := tool.Execute(t.Context(), map[string]any{
		"text": "Patients with hypertension were treated.",
	})
	require.NoError(t, err)

	report, ok := result.(domain.MatchReport)
	require.True(t, ok)
	require.Len(t, report.FoundTerms, 1)
	assert.Equal(t, "Hypertension (High Blood Pressure)", report.FoundTerms[0].MainTerm)

	_, err = tool.Execute(t.Context(), map[string]any{})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestLinguisticAnalysisTool(t *testing.T) {
	svc := service.NewAnalysisService(staticProvider{features: map[string]float64{"words": 5}}, testLogger())
	tool := NewLinguisticAnalysisTool(svc)

	result, err := tool.Execute(t.Context(), map[string]any{"text": "Five words are in here."})
	require.NoError(t, err)
	features, ok := result.(map[string]float64)
	require.True(t, ok)
	assert.Equal(t, 5.0, features["words"])

	// Batch with JSON-decoded parameter shapes.
	result, err = tool.Execute(t.Context(), map[string]any{
		"texts":    []any{"a", "b"},
		"text_ids": []any{"t1", "t2"},
	})
	require.NoError(t, err)
	batch, ok := result.(*service.BatchResult)
	require.True(t, ok)
	assert.Equal(t, 2, batch.Summary.TotalTexts)

	_, err = tool.Execute(t.Context(), map[string]any{})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestPLSEvaluationTool(t *testing.T) {
	engine := rating.NewEngine(map[string]domain.ThresholdEntry{
		"words_per_sentence": {Excellent: 12, Good: 15, Acceptable: 18, Poor: 22, Direction: domain.LowerBetter},
	}, 850)
	svc := service.NewEvaluationService(staticProvider{features: map[string]float64{
		"words":              100,
		"sentences":          8,
		"words_per_sentence": 12.5,
	}}, engine, testLogger())
	tool := NewPLSEvaluationTool(svc)

	result, err := tool.Execute(t.Context(), map[string]any{"text": "some text"})
	require.NoError(t, err)
	eval, ok := result.(domain.Evaluation)
	require.True(t, ok)
	assert.Equal(t, domain.RatingP50, eval.LinguisticEvaluation["words_per_sentence"].Rating)

	result, err = tool.Execute(t.Context(), map[string]any{"text": "some text", "format": "text"})
	require.NoError(t, err)
	report, ok := result.(string)
	require.True(t, ok)
	assert.Contains(t, report, "STATISTICAL CONFORMITY SUMMARY:")

	_, err = tool.Execute(t.Context(), map[string]any{"text": "x", "format": "xml"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}
