package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/feliperussi/medwrite-server/internal/domain"
	"github.com/feliperussi/medwrite-server/internal/store"
)

func (s *Server) registerSummaryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "saveSummary",
		Method:      http.MethodPost,
		Path:        "/api/v1/summaries",
		Summary:     "Save summary",
		Description: "Creates or replaces a plain language summary",
		Tags:        []string{"Summaries"},
	}, s.handleSaveSummary)

	huma.Register(s.api, huma.Operation{
		OperationID: "listSummaries",
		Method:      http.MethodGet,
		Path:        "/api/v1/summaries",
		Summary:     "List summaries",
		Description: "Returns references to all stored summaries",
		Tags:        []string{"Summaries"},
	}, s.handleListSummaries)

	huma.Register(s.api, huma.Operation{
		OperationID: "getSummary",
		Method:      http.MethodGet,
		Path:        "/api/v1/summaries/{model}/{summary_id}",
		Summary:     "Get summary",
		Description: "Returns a summary by model and identifier",
		Tags:        []string{"Summaries"},
	}, s.handleGetSummary)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteSummary",
		Method:      http.MethodDelete,
		Path:        "/api/v1/summaries/{model}/{summary_id}",
		Summary:     "Delete summary",
		Description: "Deletes a summary and all of its drafts",
		Tags:        []string{"Summaries"},
	}, s.handleDeleteSummary)

	huma.Register(s.api, huma.Operation{
		OperationID: "saveDraft",
		Method:      http.MethodPost,
		Path:        "/api/v1/summaries/{model}/{summary_id}/drafts",
		Summary:     "Save draft",
		Description: "Appends a new draft to a summary with sequential numbering",
		Tags:        []string{"Drafts"},
	}, s.handleSaveDraft)

	huma.Register(s.api, huma.Operation{
		OperationID: "getLastDraft",
		Method:      http.MethodGet,
		Path:        "/api/v1/summaries/{model}/{summary_id}/drafts/last",
		Summary:     "Get last draft",
		Description: "Returns the most recently submitted draft",
		Tags:        []string{"Drafts"},
	}, s.handleGetLastDraft)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBestDraft",
		Method:      http.MethodGet,
		Path:        "/api/v1/summaries/{model}/{summary_id}/drafts/best",
		Summary:     "Get best draft",
		Description: "Returns the draft with the highest conformity rate within the word budget",
		Tags:        []string{"Drafts"},
	}, s.handleGetBestDraft)
}

// === DTOs ===

// SummaryKeyInput identifies a summary by model and identifier.
type SummaryKeyInput struct {
	Model     string `path:"model" doc:"Generating model name"`
	SummaryID string `path:"summary_id" doc:"Review identifier"`
}

// SaveSummaryRequest contains the summary fields accepted on save.
// Only the identifying pair is mandatory so partial summaries can be
// stored while a model is still drafting sections.
type SaveSummaryRequest struct {
	Model       string                  `json:"model" minLength:"1" doc:"Generating model name"`
	ID          string                  `json:"id" minLength:"1" doc:"Review identifier"`
	PlainTitle  string                  `json:"plain_title,omitempty" doc:"Plain language title"`
	KeyMessages []string                `json:"key_messages,omitempty" doc:"Key messages"`
	Background  []domain.SummarySection `json:"background,omitempty" doc:"Background sections"`
	Methods     []domain.SummarySection `json:"methods,omitempty" doc:"Methods sections"`
	Results     []domain.SummarySection `json:"results,omitempty" doc:"Results sections"`
	Limitations string                  `json:"limitations,omitempty" doc:"Limitations of the evidence"`
	Currency    string                  `json:"currency,omitempty" doc:"How up to date the evidence is"`
}

// SaveSummaryInput contains the summary to store.
type SaveSummaryInput struct {
	Body SaveSummaryRequest
}

// SummaryOutput wraps a summary for Huma.
type SummaryOutput struct {
	Body domain.Summary
}

// ListSummariesResponse contains references to stored summaries.
type ListSummariesResponse struct {
	Summaries []store.SummaryRef `json:"summaries" doc:"Stored summary references"`
	Count     int                `json:"count" doc:"Number of stored summaries"`
}

// ListSummariesOutput wraps the summary list for Huma.
type ListSummariesOutput struct {
	Body ListSummariesResponse
}

// DeleteSummaryOutput is an empty response for a successful delete.
type DeleteSummaryOutput struct{}

// SaveDraftInput contains a draft submission.
type SaveDraftInput struct {
	SummaryKeyInput
	Body struct {
		Text       string                 `json:"text" minLength:"1" doc:"Draft text"`
		Metrics    []map[string]any       `json:"metrics,omitempty" doc:"Evaluation metrics recorded at submission time"`
		Evaluation domain.DraftEvaluation `json:"evaluation,omitempty" doc:"Reviewer verdict"`
	}
}

// SaveDraftResponse identifies the stored draft.
type SaveDraftResponse struct {
	DraftID     string `json:"draft_id" doc:"Generated draft identifier"`
	DraftNumber int    `json:"draft_number" doc:"Sequential number within the summary"`
}

// SaveDraftOutput wraps the draft submission response for Huma.
type SaveDraftOutput struct {
	Body SaveDraftResponse
}

// DraftOutput wraps a draft for Huma.
type DraftOutput struct {
	Body domain.Draft
}

// BestDraftOutput wraps the best draft selection for Huma.
type BestDraftOutput struct {
	Body store.BestDraft
}

// === Handlers ===

func (s *Server) handleSaveSummary(ctx context.Context, input *SaveSummaryInput) (*SummaryOutput, error) {
	summary := domain.Summary{
		Model:       input.Body.Model,
		ID:          input.Body.ID,
		PlainTitle:  input.Body.PlainTitle,
		KeyMessages: input.Body.KeyMessages,
		Background:  input.Body.Background,
		Methods:     input.Body.Methods,
		Results:     input.Body.Results,
		Limitations: input.Body.Limitations,
		Currency:    input.Body.Currency,
	}

	if err := s.services.Summary.Save(ctx, &summary); err != nil {
		return nil, err
	}

	return &SummaryOutput{Body: summary}, nil
}

func (s *Server) handleListSummaries(ctx context.Context, _ *struct{}) (*ListSummariesOutput, error) {
	refs, err := s.services.Summary.List(ctx)
	if err != nil {
		return nil, err
	}

	return &ListSummariesOutput{
		Body: ListSummariesResponse{
			Summaries: refs,
			Count:     len(refs),
		},
	}, nil
}

func (s *Server) handleGetSummary(ctx context.Context, input *SummaryKeyInput) (*SummaryOutput, error) {
	summary, err := s.services.Summary.Get(ctx, input.Model, input.SummaryID)
	if err != nil {
		return nil, err
	}

	return &SummaryOutput{Body: *summary}, nil
}

func (s *Server) handleDeleteSummary(ctx context.Context, input *SummaryKeyInput) (*DeleteSummaryOutput, error) {
	if err := s.services.Summary.Delete(ctx, input.Model, input.SummaryID); err != nil {
		return nil, err
	}

	return &DeleteSummaryOutput{}, nil
}

func (s *Server) handleSaveDraft(ctx context.Context, input *SaveDraftInput) (*SaveDraftOutput, error) {
	draft := &domain.Draft{
		Model:      input.Model,
		SummaryID:  input.SummaryID,
		Text:       input.Body.Text,
		Metrics:    input.Body.Metrics,
		Evaluation: input.Body.Evaluation,
	}

	if err := s.services.Summary.SaveDraft(ctx, draft); err != nil {
		return nil, err
	}

	return &SaveDraftOutput{
		Body: SaveDraftResponse{
			DraftID:     draft.DraftID,
			DraftNumber: draft.DraftNumber,
		},
	}, nil
}

func (s *Server) handleGetLastDraft(ctx context.Context, input *SummaryKeyInput) (*DraftOutput, error) {
	draft, err := s.services.Summary.LastDraft(ctx, input.Model, input.SummaryID)
	if err != nil {
		return nil, err
	}

	return &DraftOutput{Body: *draft}, nil
}

func (s *Server) handleGetBestDraft(ctx context.Context, input *SummaryKeyInput) (*BestDraftOutput, error) {
	best, err := s.services.Summary.BestDraft(ctx, input.Model, input.SummaryID)
	if err != nil {
		return nil, err
	}

	return &BestDraftOutput{Body: *best}, nil
}
