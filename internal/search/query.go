package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// SearchParams configures a glossary definition search.
type SearchParams struct {
	Query  string
	Source string // restrict to one source collection (empty = all)

	Limit     int
	Offset    int
	Highlight bool
}

// DefaultSearchParams returns sensible defaults.
func DefaultSearchParams() SearchParams {
	return SearchParams{
		Limit:     20,
		Offset:    0,
		Highlight: true,
	}
}

// SearchResult represents the search results.
type SearchResult struct {
	Query  string      `json:"query"`
	Total  uint64      `json:"total"`
	TookMs int64       `json:"took_ms"`
	Hits   []SearchHit `json:"hits"`
}

// SearchHit is a single matching glossary entry.
type SearchHit struct {
	ID               string            `json:"id"`
	Score            float64           `json:"score"`
	MainTerm         string            `json:"main_term"`
	PlainAlternative string            `json:"plain_alternative,omitempty"`
	Source           string            `json:"source,omitempty"`
	Highlights       map[string]string `json:"highlights,omitempty"`
}

// Search executes a free-form query over the glossary.
func (g *GlossaryIndex) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if params.Limit <= 0 {
		params.Limit = 20
	}

	searchQuery := buildSearchQuery(params)
	searchRequest := bleve.NewSearchRequestOptions(searchQuery, params.Limit, params.Offset, false)
	searchRequest.SortBy([]string{"-_score"})
	searchRequest.Fields = []string{"main_term", "plain_alternative", "source"}

	if params.Highlight {
		searchRequest.Highlight = bleve.NewHighlight()
		searchRequest.Highlight.AddField("main_term")
		searchRequest.Highlight.AddField("plain_alternative")
	}

	searchResult, err := g.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute glossary search: %w", err)
	}

	result := &SearchResult{
		Query:  params.Query,
		Total:  searchResult.Total,
		TookMs: searchResult.Took.Milliseconds(),
		Hits:   make([]SearchHit, 0, len(searchResult.Hits)),
	}

	for _, hit := range searchResult.Hits {
		searchHit := SearchHit{
			ID:    hit.ID,
			Score: hit.Score,
		}
		if t, ok := hit.Fields["main_term"].(string); ok {
			searchHit.MainTerm = t
		}
		if a, ok := hit.Fields["plain_alternative"].(string); ok {
			searchHit.PlainAlternative = a
		}
		if s, ok := hit.Fields["source"].(string); ok {
			searchHit.Source = s
		}
		if len(hit.Fragments) > 0 {
			searchHit.Highlights = make(map[string]string)
			for field, fragments := range hit.Fragments {
				if len(fragments) > 0 {
					searchHit.Highlights[field] = fragments[0]
				}
			}
		}
		result.Hits = append(result.Hits, searchHit)
	}

	return result, nil
}

func buildSearchQuery(params SearchParams) query.Query {
	var queries []query.Query

	if params.Query != "" {
		textQueries := []query.Query{}

		termMatch := bleve.NewMatchQuery(params.Query)
		termMatch.SetField("main_term")
		termMatch.SetBoost(3.0)
		textQueries = append(textQueries, termMatch)

		altMatch := bleve.NewMatchQuery(params.Query)
		altMatch.SetField("plain_alternative")
		altMatch.SetBoost(1.5)
		textQueries = append(textQueries, altMatch)

		// Fuzzy matching for typo tolerance on the term itself.
		fuzzyQuery := bleve.NewFuzzyQuery(params.Query)
		fuzzyQuery.SetFuzziness(1)
		fuzzyQuery.SetField("main_term")
		fuzzyQuery.SetBoost(0.8)
		textQueries = append(textQueries, fuzzyQuery)

		// Prefix query for autocomplete (minimum 2 chars).
		if len(params.Query) >= 2 {
			prefixQuery := bleve.NewPrefixQuery(strings.ToLower(params.Query))
			prefixQuery.SetField("main_term")
			prefixQuery.SetBoost(0.5)
			textQueries = append(textQueries, prefixQuery)
		}

		queries = append(queries, bleve.NewDisjunctionQuery(textQueries...))
	}

	if params.Source != "" {
		sourceQuery := bleve.NewTermQuery(params.Source)
		sourceQuery.SetField("source")
		queries = append(queries, sourceQuery)
	}

	if len(queries) == 0 {
		return bleve.NewMatchAllQuery()
	}
	if len(queries) == 1 {
		return queries[0]
	}
	return bleve.NewConjunctionQuery(queries...)
}
