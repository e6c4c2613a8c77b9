package store_test

import (
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feliperussi/medwrite-server/internal/domain"
	domainerrors "github.com/feliperussi/medwrite-server/internal/errors"
	"github.com/feliperussi/medwrite-server/internal/logger"
	"github.com/feliperussi/medwrite-server/internal/store"
)

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()

	log := logger.New(logger.Config{Writer: io.Discard, Environment: "test", Level: slog.LevelError})
	s, err := store.New(t.TempDir(), log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testSummary(model, id string) *domain.Summary {
	return &domain.Summary{
		Model:       model,
		ID:          id,
		PlainTitle:  "What did this review study?",
		KeyMessages: []string{"Treatment A worked better than placebo."},
		Background: []domain.SummarySection{
			{Subheading: "Why we did this review", Content: "Condition X affects many people."},
		},
		Methods: []domain.SummarySection{
			{Subheading: "What did we do?", Content: "We searched for studies."},
		},
		Results: []domain.SummarySection{
			{Subheading: "What did we find?", Content: "Twelve studies were included."},
		},
		Limitations: "Evidence was limited by small sample sizes.",
		Currency:    "Evidence is current to January 2026.",
	}
}

func TestSaveAndGetSummary(t *testing.T) {
	s := setupTestStore(t)

	summary := testSummary("gpt-4", "CD000259.PUB4")
	require.NoError(t, s.SaveSummary(t.Context(), summary))
	assert.False(t, summary.CreatedAt.IsZero())

	got, err := s.GetSummary(t.Context(), "gpt-4", "CD000259.PUB4")
	require.NoError(t, err)
	assert.Equal(t, summary.PlainTitle, got.PlainTitle)
	assert.Equal(t, summary.KeyMessages, got.KeyMessages)
	assert.Equal(t, summary.Background, got.Background)
}

func TestSaveSummaryUpsert(t *testing.T) {
	s := setupTestStore(t)

	first := testSummary("gpt-4", "CD000259.PUB4")
	require.NoError(t, s.SaveSummary(t.Context(), first))
	created := first.CreatedAt

	updated := testSummary("gpt-4", "CD000259.PUB4")
	updated.PlainTitle = "A clearer title"
	require.NoError(t, s.SaveSummary(t.Context(), updated))

	got, err := s.GetSummary(t.Context(), "gpt-4", "CD000259.PUB4")
	require.NoError(t, err)
	assert.Equal(t, "A clearer title", got.PlainTitle)
	assert.Equal(t, created, got.CreatedAt)
	assert.False(t, got.UpdatedAt.Before(created))
}

func TestGetSummaryNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetSummary(t.Context(), "gpt-4", "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestListSummaries(t *testing.T) {
	s := setupTestStore(t)

	require.NoError(t, s.SaveSummary(t.Context(), testSummary("gpt-4", "CD000002")))
	require.NoError(t, s.SaveSummary(t.Context(), testSummary("claude", "CD000001")))

	refs, err := s.ListSummaries(t.Context())
	require.NoError(t, err)
	require.Len(t, refs, 2)

	// Key order: model first, then id.
	assert.Equal(t, store.SummaryRef{Model: "claude", ID: "CD000001"}, refs[0])
	assert.Equal(t, store.SummaryRef{Model: "gpt-4", ID: "CD000002"}, refs[1])
}

func draftWithMetrics(model, summaryID, draftID string, rate float64, wordCount int) *domain.Draft {
	return &domain.Draft{
		DraftID:   draftID,
		Model:     model,
		SummaryID: summaryID,
		Text:      "Draft text.",
		Metrics: []map[string]any{{
			"summary":           map[string]any{"best_quartile_rate": rate},
			"word_count_status": map[string]any{"word_count": float64(wordCount)},
		}},
	}
}

func TestSaveDraftSequentialNumbering(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.SaveSummary(t.Context(), testSummary("gpt-4", "CD1")))

	for i := 1; i <= 3; i++ {
		draft := draftWithMetrics("gpt-4", "CD1", fmt.Sprintf("d%d", i), 50, 400)
		require.NoError(t, s.SaveDraft(t.Context(), draft))
		assert.Equal(t, i, draft.DraftNumber)
	}

	drafts, err := s.ListDrafts(t.Context(), "gpt-4", "CD1")
	require.NoError(t, err)
	require.Len(t, drafts, 3)
	assert.Equal(t, 1, drafts[0].DraftNumber)
	assert.Equal(t, 3, drafts[2].DraftNumber)
}

func TestSaveDraftRequiresSummary(t *testing.T) {
	s := setupTestStore(t)

	err := s.SaveDraft(t.Context(), draftWithMetrics("gpt-4", "missing", "d1", 50, 400))
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestGetLastDraft(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.SaveSummary(t.Context(), testSummary("gpt-4", "CD1")))

	require.NoError(t, s.SaveDraft(t.Context(), draftWithMetrics("gpt-4", "CD1", "d1", 40, 500)))
	require.NoError(t, s.SaveDraft(t.Context(), draftWithMetrics("gpt-4", "CD1", "d2", 55, 600)))

	last, err := s.GetLastDraft(t.Context(), "gpt-4", "CD1")
	require.NoError(t, err)
	assert.Equal(t, 2, last.DraftNumber)
	assert.Equal(t, "d2", last.DraftID)
}

func TestGetLastDraftNoDrafts(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.SaveSummary(t.Context(), testSummary("gpt-4", "CD1")))

	_, err := s.GetLastDraft(t.Context(), "gpt-4", "CD1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestGetBestDraft(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.SaveSummary(t.Context(), testSummary("gpt-4", "CD1")))

	// Highest rate is over the limit; the best within-limit draft wins.
	require.NoError(t, s.SaveDraft(t.Context(), draftWithMetrics("gpt-4", "CD1", "d1", 80, 900)))
	require.NoError(t, s.SaveDraft(t.Context(), draftWithMetrics("gpt-4", "CD1", "d2", 60, 700)))
	require.NoError(t, s.SaveDraft(t.Context(), draftWithMetrics("gpt-4", "CD1", "d3", 40, 300)))

	best, err := s.GetBestDraft(t.Context(), "gpt-4", "CD1", 850)
	require.NoError(t, err)
	assert.Equal(t, "d2", best.Draft.DraftID)
	assert.Equal(t, 60.0, best.BestQuartileRate)
	require.NotNil(t, best.WordCount)
	assert.Equal(t, 700, *best.WordCount)
}

func TestGetBestDraftFallsBackWhenAllOverLimit(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.SaveSummary(t.Context(), testSummary("gpt-4", "CD1")))

	require.NoError(t, s.SaveDraft(t.Context(), draftWithMetrics("gpt-4", "CD1", "d1", 30, 1000)))
	require.NoError(t, s.SaveDraft(t.Context(), draftWithMetrics("gpt-4", "CD1", "d2", 70, 1200)))

	best, err := s.GetBestDraft(t.Context(), "gpt-4", "CD1", 850)
	require.NoError(t, err)
	assert.Equal(t, "d2", best.Draft.DraftID)
}

func TestGetBestDraftSkipsDraftsWithoutMetrics(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.SaveSummary(t.Context(), testSummary("gpt-4", "CD1")))

	bare := &domain.Draft{DraftID: "d1", Model: "gpt-4", SummaryID: "CD1", Text: "no metrics"}
	require.NoError(t, s.SaveDraft(t.Context(), bare))

	_, err := s.GetBestDraft(t.Context(), "gpt-4", "CD1", 850)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestGetDraftByID(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.SaveSummary(t.Context(), testSummary("gpt-4", "CD1")))
	require.NoError(t, s.SaveDraft(t.Context(), draftWithMetrics("gpt-4", "CD1", "draft_abc123", 50, 400)))

	draft, err := s.GetDraftByID(t.Context(), "draft_abc123")
	require.NoError(t, err)
	assert.Equal(t, 1, draft.DraftNumber)

	_, err = s.GetDraftByID(t.Context(), "draft_missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestDeleteSummaryCascadesDrafts(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.SaveSummary(t.Context(), testSummary("gpt-4", "CD1")))
	require.NoError(t, s.SaveDraft(t.Context(), draftWithMetrics("gpt-4", "CD1", "d1", 50, 400)))

	require.NoError(t, s.DeleteSummary(t.Context(), "gpt-4", "CD1"))

	_, err := s.GetSummary(t.Context(), "gpt-4", "CD1")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	drafts, err := s.ListDrafts(t.Context(), "gpt-4", "CD1")
	require.NoError(t, err)
	assert.Empty(t, drafts)

	_, err = s.GetDraftByID(t.Context(), "d1")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestDeleteSummaryNotFound(t *testing.T) {
	s := setupTestStore(t)

	err := s.DeleteSummary(t.Context(), "gpt-4", "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
