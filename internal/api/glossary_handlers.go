package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/feliperussi/medwrite-server/internal/domain"
	"github.com/feliperussi/medwrite-server/internal/search"
)

func (s *Server) registerGlossaryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "matchGlossary",
		Method:      http.MethodPost,
		Path:        "/api/v1/tools/glossary",
		Summary:     "Match glossary terms",
		Description: "Finds medical glossary terms in a text with exact character spans",
		Tags:        []string{"Glossary"},
	}, s.handleMatchGlossary)

	huma.Register(s.api, huma.Operation{
		OperationID: "findGlossaryPhrases",
		Method:      http.MethodPost,
		Path:        "/api/v1/tools/glossary/phrases",
		Summary:     "Find present phrases",
		Description: "Returns glossary phrases present in a text without span information",
		Tags:        []string{"Glossary"},
	}, s.handleFindPhrases)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchGlossary",
		Method:      http.MethodGet,
		Path:        "/api/v1/tools/glossary/search",
		Summary:     "Search glossary",
		Description: "Full-text search over glossary terms and plain alternatives",
		Tags:        []string{"Glossary"},
	}, s.handleSearchGlossary)

	huma.Register(s.api, huma.Operation{
		OperationID: "rebuildGlossary",
		Method:      http.MethodPost,
		Path:        "/api/v1/tools/glossary/rebuild",
		Summary:     "Rebuild glossary index",
		Description: "Reloads the glossary source files and rebuilds the phrase index",
		Tags:        []string{"Glossary"},
	}, s.handleRebuildGlossary)
}

// === DTOs ===

// GlossaryTextInput contains a text to analyze.
type GlossaryTextInput struct {
	Body struct {
		Text string `json:"text" minLength:"1" doc:"Text to analyze"`
	}
}

// MatchGlossaryOutput wraps the match report for Huma.
type MatchGlossaryOutput struct {
	Body domain.MatchReport
}

// FindPhrasesResponse contains phrases found grouped by main term.
type FindPhrasesResponse struct {
	PhrasesFound map[string][]domain.GlossaryEntry `json:"phrases_found" doc:"Entries grouped by main term"`
	Count        int                               `json:"count" doc:"Number of distinct main terms found"`
}

// FindPhrasesOutput wraps the phrase presence response for Huma.
type FindPhrasesOutput struct {
	Body FindPhrasesResponse
}

// SearchGlossaryInput contains the search query parameters.
type SearchGlossaryInput struct {
	Query  string `query:"q" minLength:"1" doc:"Search query"`
	Source string `query:"source" doc:"Restrict results to one source collection"`
	Limit  int    `query:"limit" minimum:"1" maximum:"100" default:"20" doc:"Maximum number of hits"`
	Offset int    `query:"offset" minimum:"0" default:"0" doc:"Number of hits to skip"`
}

// SearchGlossaryOutput wraps the search result for Huma.
type SearchGlossaryOutput struct {
	Body search.SearchResult
}

// RebuildGlossaryResponse reports the rebuilt index size.
type RebuildGlossaryResponse struct {
	PhraseCount int `json:"phrase_count" doc:"Number of indexed phrases after rebuild"`
}

// RebuildGlossaryOutput wraps the rebuild response for Huma.
type RebuildGlossaryOutput struct {
	Body RebuildGlossaryResponse
}

// === Handlers ===

func (s *Server) handleMatchGlossary(_ context.Context, input *GlossaryTextInput) (*MatchGlossaryOutput, error) {
	report, err := s.services.Glossary.FindMatches(input.Body.Text)
	if err != nil {
		return nil, err
	}

	return &MatchGlossaryOutput{Body: report}, nil
}

func (s *Server) handleFindPhrases(_ context.Context, input *GlossaryTextInput) (*FindPhrasesOutput, error) {
	found, err := s.services.Glossary.FindPresentPhrases(input.Body.Text)
	if err != nil {
		return nil, err
	}

	return &FindPhrasesOutput{
		Body: FindPhrasesResponse{
			PhrasesFound: found,
			Count:        len(found),
		},
	}, nil
}

func (s *Server) handleSearchGlossary(ctx context.Context, input *SearchGlossaryInput) (*SearchGlossaryOutput, error) {
	params := search.DefaultSearchParams()
	params.Query = input.Query
	params.Source = input.Source
	if input.Limit > 0 {
		params.Limit = input.Limit
	}
	params.Offset = input.Offset

	result, err := s.services.Search.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	return &SearchGlossaryOutput{Body: *result}, nil
}

func (s *Server) handleRebuildGlossary(ctx context.Context, _ *struct{}) (*RebuildGlossaryOutput, error) {
	if err := s.services.Glossary.Rebuild(ctx); err != nil {
		return nil, err
	}

	idx, err := s.services.Glossary.Index()
	if err != nil {
		return nil, err
	}

	return &RebuildGlossaryOutput{
		Body: RebuildGlossaryResponse{PhraseCount: idx.Size()},
	}, nil
}
