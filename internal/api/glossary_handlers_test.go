package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feliperussi/medwrite-server/internal/domain"
	"github.com/feliperussi/medwrite-server/internal/search"
)

func TestMatchGlossary(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/tools/glossary", map[string]any{
		"text": "Patients with hypertension may develop a heart attack.",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	report := decodeBody[domain.MatchReport](t, resp)
	require.Len(t, report.FoundTerms, 2)
	assert.Equal(t, 2, report.AnalysisSummary.TotalUniquePhrasesFound)

	terms := make([]string, 0, len(report.FoundTerms))
	for _, ft := range report.FoundTerms {
		terms = append(terms, ft.MainTerm)
	}
	assert.Contains(t, terms, "Hypertension")
	assert.Contains(t, terms, "Myocardial Infarction (heart attack)")
}

func TestMatchGlossarySpans(t *testing.T) {
	ts := setupTestServer(t)

	text := "Signs of pertussis were found."
	resp := ts.api.Post("/api/v1/tools/glossary", map[string]any{"text": text})
	require.Equal(t, http.StatusOK, resp.Code)

	report := decodeBody[domain.MatchReport](t, resp)
	require.Len(t, report.FoundTerms, 1)
	require.Len(t, report.FoundTerms[0].MatchesInText, 1)

	span := report.FoundTerms[0].MatchesInText[0]
	assert.Equal(t, "pertussis", span.AliasFound)
	assert.Equal(t, 9, span.LocationStart)
	assert.Equal(t, 18, span.LocationEnd)
}

func TestMatchGlossaryRejectsEmptyText(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/tools/glossary", map[string]any{"text": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestFindPhrases(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/tools/glossary/phrases", map[string]any{
		"text": "Whooping cough is dangerous for infants.",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	body := decodeBody[FindPhrasesResponse](t, resp)
	assert.Equal(t, 1, body.Count)
	assert.Contains(t, body.PhrasesFound, "Pertussis (whooping cough)")
}

func TestSearchGlossary(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/tools/glossary/search?q=heart+attack")
	require.Equal(t, http.StatusOK, resp.Code)

	result := decodeBody[search.SearchResult](t, resp)
	require.NotEmpty(t, result.Hits)
	assert.Equal(t, "Myocardial Infarction (heart attack)", result.Hits[0].MainTerm)
}

func TestSearchGlossaryRequiresQuery(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/tools/glossary/search")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestRebuildGlossary(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/tools/glossary/rebuild", map[string]any{})
	require.Equal(t, http.StatusOK, resp.Code)

	body := decodeBody[RebuildGlossaryResponse](t, resp)
	// Three records, two of them parenthesized with three aliases each.
	assert.Equal(t, 7, body.PhraseCount)
}
