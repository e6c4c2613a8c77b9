package glossary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feliperussi/medwrite-server/internal/domain"
)

func buildTestIndex(records ...Record) *Index {
	return BuildIndex([]SourceCollection{{Name: "test_glossary", Records: records}})
}

func TestFindMatchesLongestWins(t *testing.T) {
	ix := buildTestIndex(
		Record{Term: "Disease", PlainAlternative: "illness"},
		Record{Term: "Chronic Disease", PlainAlternative: "long-lasting illness"},
	)

	text := "This chronic disease is not just any disease."
	report := ix.FindMatches(text)

	require.Len(t, report.FoundTerms, 2)
	assert.Equal(t, 2, report.AnalysisSummary.TotalUniquePhrasesFound)
	assert.Equal(t, len(text), report.AnalysisSummary.TextCharacterLength)

	// "chronic disease" claims [5,20) first; the standalone "disease"
	// inside it is discarded, but the later one still matches.
	chronic := report.FoundTerms[0]
	assert.Equal(t, "Chronic Disease", chronic.MainTerm)
	require.Len(t, chronic.MatchesInText, 1)
	assert.Equal(t, domain.MatchSpan{
		AliasFound:    "chronic disease",
		LocationStart: 5,
		LocationEnd:   20,
	}, chronic.MatchesInText[0])

	disease := report.FoundTerms[1]
	assert.Equal(t, "Disease", disease.MainTerm)
	require.Len(t, disease.MatchesInText, 1)
	assert.Equal(t, domain.MatchSpan{
		AliasFound:    "disease",
		LocationStart: 37,
		LocationEnd:   44,
	}, disease.MatchesInText[0])
}

func TestFindMatchesPreservesCasing(t *testing.T) {
	ix := buildTestIndex(
		Record{Term: "Myocardial Infarction", PlainAlternative: "heart attack"},
	)

	text := "Diagnosis: MYOCARDIAL INFARCTION confirmed."
	report := ix.FindMatches(text)

	require.Len(t, report.FoundTerms, 1)
	match := report.FoundTerms[0].MatchesInText[0]
	assert.Equal(t, "MYOCARDIAL INFARCTION", match.AliasFound)
	assert.Equal(t, match.AliasFound, text[match.LocationStart:match.LocationEnd])
}

func TestFindMatchesWordBoundary(t *testing.T) {
	ix := buildTestIndex(Record{Term: "Disease", PlainAlternative: "illness"})

	report := ix.FindMatches("The diseased tissue was removed.")
	assert.Empty(t, report.FoundTerms)

	report = ix.FindMatches("Disease, disease; DISEASE.")
	require.Len(t, report.FoundTerms, 1)
	assert.Len(t, report.FoundTerms[0].MatchesInText, 3)
}

func TestFindMatchesSpanInvariants(t *testing.T) {
	ix := buildTestIndex(
		Record{Term: "Pertussis (Whooping Cough)", PlainAlternative: "a severe cough"},
		Record{Term: "Cough", PlainAlternative: "cough"},
	)

	text := "Pertussis, also called whooping cough, causes a violent cough."
	report := ix.FindMatches(text)

	var spans []domain.MatchSpan
	for _, term := range report.FoundTerms {
		spans = append(spans, term.MatchesInText...)
	}
	require.NotEmpty(t, spans)

	for _, s := range spans {
		assert.Less(t, s.LocationStart, s.LocationEnd)
		assert.Equal(t,
			strings.ToLower(s.AliasFound),
			strings.ToLower(text[s.LocationStart:s.LocationEnd]))
	}

	// No two accepted spans overlap.
	for i := range spans {
		for j := i + 1; j < len(spans); j++ {
			a, b := spans[i], spans[j]
			assert.False(t,
				a.LocationStart < b.LocationEnd && a.LocationEnd > b.LocationStart,
				"spans %v and %v overlap", a, b)
		}
	}

	// "whooping cough" [23,37) is claimed by the Pertussis aliases, so the
	// plain "cough" only matches the final occurrence.
	var coughTerm *domain.FoundTerm
	for i := range report.FoundTerms {
		if report.FoundTerms[i].MainTerm == "Cough" {
			coughTerm = &report.FoundTerms[i]
		}
	}
	require.NotNil(t, coughTerm)
	require.Len(t, coughTerm.MatchesInText, 1)
	assert.Equal(t, 56, coughTerm.MatchesInText[0].LocationStart)
}

func TestFindMatchesDeduplicatesDefinitions(t *testing.T) {
	ix := BuildIndex([]SourceCollection{
		{Name: "a", Records: []Record{{Term: "Sepsis", PlainAlternative: "blood infection"}}},
		{Name: "b", Records: []Record{{Term: "Sepsis", PlainAlternative: "blood infection"}}},
		{Name: "c", Records: []Record{{Term: "Sepsis", PlainAlternative: "body-wide infection response"}}},
	})

	report := ix.FindMatches("Sepsis is a medical emergency.")
	require.Len(t, report.FoundTerms, 1)

	term := report.FoundTerms[0]
	require.Len(t, term.Definitions, 3)
	assert.Equal(t, domain.Definition{PlainAlternative: "blood infection", Source: "a"}, term.Definitions[0])
	assert.Equal(t, domain.Definition{PlainAlternative: "blood infection", Source: "b"}, term.Definitions[1])
	assert.Equal(t, domain.Definition{PlainAlternative: "body-wide infection response", Source: "c"}, term.Definitions[2])
	assert.Len(t, term.MatchesInText, 1)
}

func TestFindMatchesEmptyText(t *testing.T) {
	ix := buildTestIndex(Record{Term: "Disease"})

	report := ix.FindMatches("")
	assert.Empty(t, report.FoundTerms)
	assert.Equal(t, 0, report.AnalysisSummary.TotalUniquePhrasesFound)
	assert.Equal(t, 0, report.AnalysisSummary.TextCharacterLength)
}

func TestFindPresentPhrases(t *testing.T) {
	ix := buildTestIndex(
		Record{Term: "Chronic Disease", PlainAlternative: "long-lasting illness"},
		Record{Term: "Disease", PlainAlternative: "illness"},
	)

	found := ix.FindPresentPhrases("A chronic disease diagnosis.")
	require.Contains(t, found, "chronic disease")

	// The matched stretch is elided, so the bare alias never fires here.
	assert.NotContains(t, found, "disease")

	found = ix.FindPresentPhrases("A chronic disease and another disease.")
	assert.Contains(t, found, "chronic disease")
	assert.Contains(t, found, "disease")
}
