// Package search provides full-text search over glossary definitions,
// backed by Bleve. Unlike the exact-alias phrase matcher, this index
// answers free-form queries ("heart problems") against terms and their
// plain language alternatives.
package search

import (
	"fmt"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/feliperussi/medwrite-server/internal/domain"
	"github.com/feliperussi/medwrite-server/internal/logger"
)

// GlossaryIndex wraps an in-memory Bleve index over glossary entries.
// The glossary is small and rebuilt from disk on every change, so the
// index is memory-only and replaced wholesale on rebuild.
//
// All public methods are safe for concurrent use; the mutex guards the
// index swap during Rebuild.
type GlossaryIndex struct {
	index  bleve.Index
	logger *logger.Logger
	mu     sync.RWMutex
}

func NewGlossaryIndex(log *logger.Logger) (*GlossaryIndex, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create glossary search index: %w", err)
	}
	return &GlossaryIndex{index: index, logger: log}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	// Term is the primary search target.
	termFieldMapping := bleve.NewTextFieldMapping()
	termFieldMapping.Analyzer = en.AnalyzerName
	termFieldMapping.Store = true
	termFieldMapping.IncludeTermVectors = true // for highlighting
	docMapping.AddFieldMappingsAt("main_term", termFieldMapping)

	// The plain alternative carries the lay vocabulary, so a query like
	// "heart attack" should reach "Myocardial Infarction" through it.
	altFieldMapping := bleve.NewTextFieldMapping()
	altFieldMapping.Analyzer = en.AnalyzerName
	altFieldMapping.Store = true
	altFieldMapping.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("plain_alternative", altFieldMapping)

	// Source is an exact-match filter and facet field.
	sourceFieldMapping := bleve.NewTextFieldMapping()
	sourceFieldMapping.Analyzer = keyword.Name
	sourceFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("source", sourceFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)
	return indexMapping
}

func entryToDoc(entry domain.GlossaryEntry) map[string]any {
	return map[string]any{
		"main_term":         entry.MainTerm,
		"plain_alternative": entry.PlainAlternative,
		"source":            entry.Source,
	}
}

// Rebuild replaces the index contents with the given entries. Entries
// are indexed in batches; document IDs are positional since the entry
// list is regenerated on every glossary reload.
func (g *GlossaryIndex) Rebuild(entries []domain.GlossaryEntry) error {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return fmt.Errorf("create glossary search index: %w", err)
	}

	const batchSize = 500
	for i := 0; i < len(entries); i += batchSize {
		end := min(i+batchSize, len(entries))

		batch := index.NewBatch()
		for j, entry := range entries[i:end] {
			id := fmt.Sprintf("%s/%d", entry.Source, i+j)
			if err := batch.Index(id, entryToDoc(entry)); err != nil {
				return fmt.Errorf("batch index %s: %w", id, err)
			}
		}
		if err := index.Batch(batch); err != nil {
			return fmt.Errorf("commit batch %d-%d: %w", i, end, err)
		}
	}

	g.mu.Lock()
	old := g.index
	g.index = index
	g.mu.Unlock()

	if old != nil {
		if err := old.Close(); err != nil {
			g.logger.Warn("closing previous glossary search index", "error", err)
		}
	}

	g.logger.Info("glossary search index rebuilt", "entries", len(entries))
	return nil
}

// DocumentCount returns the number of indexed entries.
func (g *GlossaryIndex) DocumentCount() (uint64, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.index.DocCount()
}

// Close releases index resources.
func (g *GlossaryIndex) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.index.Close()
}
