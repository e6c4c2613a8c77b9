package glossary

import (
	"cmp"
	"encoding/json/v2"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/feliperussi/medwrite-server/internal/domain"
	domainerrors "github.com/feliperussi/medwrite-server/internal/errors"
	"github.com/feliperussi/medwrite-server/internal/logger"
)

// Record is a single glossary row as it appears in a source JSON file.
type Record struct {
	Term             string `json:"term"`
	PlainAlternative string `json:"plain_alternative"`
}

// SourceCollection is one named glossary file worth of records. The name
// is the source attribution carried on every entry built from it.
type SourceCollection struct {
	Name    string
	Records []Record
}

// Index is an immutable alias lookup table built once from a set of
// source collections. Lookups and matching never mutate it, so a single
// Index is safe for concurrent use.
type Index struct {
	phraseIndex map[string][]domain.GlossaryEntry
	entries     []domain.GlossaryEntry

	// phrases holds every alias sorted longest first, ties broken
	// lexicographically, with the compiled word-boundary pattern for each.
	phrases  []string
	patterns []*regexp.Regexp
}

// LoadDir reads every *.json file in dir, in sorted filename order, into
// source collections. The collection name is the filename without its
// extension. Files that fail to parse are skipped with a warning so one
// malformed collection cannot take the whole glossary down.
func LoadDir(dir string, log *logger.Logger) ([]SourceCollection, error) {
	names, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, domainerrors.Wrapf(err, domainerrors.CodeInternal, "listing glossary dir %q", dir)
	}
	slices.Sort(names)

	collections := make([]SourceCollection, 0, len(names))
	for _, path := range names {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, domainerrors.Wrapf(err, domainerrors.CodeInternal, "reading glossary file %q", path)
		}

		var records []Record
		if err := json.Unmarshal(data, &records); err != nil {
			if log != nil {
				log.Warn("skipping malformed glossary file",
					"path", path,
					"error", err,
				)
			}
			continue
		}

		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		collections = append(collections, SourceCollection{Name: name, Records: records})
	}

	return collections, nil
}

// BuildIndex constructs the alias index from the given collections.
// Records with an empty term are skipped. Entries sharing an alias
// accumulate in collection order, so building from the same input always
// produces the same index.
func BuildIndex(collections []SourceCollection) *Index {
	ix := &Index{phraseIndex: make(map[string][]domain.GlossaryEntry)}

	for _, col := range collections {
		for _, rec := range col.Records {
			if rec.Term == "" {
				continue
			}
			entry := domain.GlossaryEntry{
				MainTerm:         rec.Term,
				PlainAlternative: rec.PlainAlternative,
				Source:           col.Name,
			}
			ix.entries = append(ix.entries, entry)
			for _, alias := range GenerateAliases(rec.Term) {
				ix.phraseIndex[alias] = append(ix.phraseIndex[alias], entry)
			}
		}
	}

	ix.phrases = make([]string, 0, len(ix.phraseIndex))
	for alias := range ix.phraseIndex {
		ix.phrases = append(ix.phrases, alias)
	}
	slices.SortFunc(ix.phrases, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	ix.patterns = make([]*regexp.Regexp, len(ix.phrases))
	for i, phrase := range ix.phrases {
		ix.patterns[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(phrase) + `\b`)
	}

	return ix
}

// Entries returns the glossary entries registered under an exact alias.
func (ix *Index) Entries(alias string) []domain.GlossaryEntry {
	return ix.phraseIndex[alias]
}

// AllEntries returns every entry in load order, one per source record.
func (ix *Index) AllEntries() []domain.GlossaryEntry {
	return ix.entries
}

// Phrases returns all aliases, longest first.
func (ix *Index) Phrases() []string {
	return ix.phrases
}

// Size is the number of distinct aliases in the index.
func (ix *Index) Size() int {
	return len(ix.phraseIndex)
}

func (ix *Index) entriesOrPanic(phrase string) []domain.GlossaryEntry {
	entries, ok := ix.phraseIndex[phrase]
	if !ok {
		// The phrase list and the index are built from the same map, so a
		// miss here means the index has been corrupted.
		panic(fmt.Sprintf("glossary: phrase %q present in phrase list but missing from index", phrase))
	}
	return entries
}
