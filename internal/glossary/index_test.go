package glossary

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feliperussi/medwrite-server/internal/domain"
	"github.com/feliperussi/medwrite-server/internal/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Writer: io.Discard, Environment: "test", Level: slog.LevelError})
}

func TestBuildIndex(t *testing.T) {
	collections := []SourceCollection{
		{
			Name: "cardiology",
			Records: []Record{
				{Term: "Myocardial Infarction (Heart Attack)", PlainAlternative: "heart attack"},
				{Term: "", PlainAlternative: "ignored"},
			},
		},
		{
			Name: "general",
			Records: []Record{
				{Term: "Heart Attack", PlainAlternative: "when blood flow to the heart stops"},
			},
		},
	}

	ix := BuildIndex(collections)

	// myocardial infarction (heart attack), myocardial infarction,
	// heart attack
	assert.Equal(t, 3, ix.Size())
	assert.Len(t, ix.AllEntries(), 2)

	entries := ix.Entries("heart attack")
	require.Len(t, entries, 2)
	assert.Equal(t, "cardiology", entries[0].Source)
	assert.Equal(t, "general", entries[1].Source)

	assert.Nil(t, ix.Entries("no such alias"))
}

func TestBuildIndexPhraseOrder(t *testing.T) {
	ix := BuildIndex([]SourceCollection{{
		Name: "t",
		Records: []Record{
			{Term: "bb"},
			{Term: "aa"},
			{Term: "ccc"},
		},
	}})

	// Longest first, lexicographic within a length.
	assert.Equal(t, []string{"ccc", "aa", "bb"}, ix.Phrases())
}

func TestBuildIndexDeterministic(t *testing.T) {
	collections := []SourceCollection{{
		Name: "t",
		Records: []Record{
			{Term: "Pertussis (Whooping Cough)", PlainAlternative: "whooping cough"},
			{Term: "Chronic Disease", PlainAlternative: "long-lasting illness"},
		},
	}}

	a := BuildIndex(collections)
	b := BuildIndex(collections)

	assert.Equal(t, a.Phrases(), b.Phrases())
	for _, phrase := range a.Phrases() {
		assert.Equal(t, a.Entries(phrase), b.Entries(phrase))
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()

	writeFile := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	writeFile("b_terms.json", `[{"term":"Sepsis","plain_alternative":"blood infection"}]`)
	writeFile("a_terms.json", `[{"term":"Anemia","plain_alternative":"low red blood cells"}]`)
	writeFile("broken.json", `{"not": "a list"`)
	writeFile("notes.txt", "ignored")

	collections, err := LoadDir(dir, testLogger())
	require.NoError(t, err)

	// Sorted filename order, malformed file skipped, non-JSON ignored.
	require.Len(t, collections, 2)
	assert.Equal(t, "a_terms", collections[0].Name)
	assert.Equal(t, "b_terms", collections[1].Name)

	ix := BuildIndex(collections)
	assert.Equal(t, []domain.GlossaryEntry{
		{MainTerm: "Sepsis", PlainAlternative: "blood infection", Source: "b_terms"},
	}, ix.Entries("sepsis"))
}

func TestLoadDirEmpty(t *testing.T) {
	collections, err := LoadDir(t.TempDir(), testLogger())
	require.NoError(t, err)
	assert.Empty(t, collections)

	ix := BuildIndex(collections)
	assert.Equal(t, 0, ix.Size())
	report := ix.FindMatches("any text at all")
	assert.Empty(t, report.FoundTerms)
}
