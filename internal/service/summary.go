package service

import (
	"context"

	"github.com/feliperussi/medwrite-server/internal/domain"
	"github.com/feliperussi/medwrite-server/internal/id"
	"github.com/feliperussi/medwrite-server/internal/logger"
	"github.com/feliperussi/medwrite-server/internal/store"
	"github.com/feliperussi/medwrite-server/internal/validation"
)

// SummaryService manages stored summaries and their drafts.
type SummaryService struct {
	store     *store.Store
	wordLimit int
	validator *validation.Validator
	logger    *logger.Logger
}

func NewSummaryService(s *store.Store, wordLimit int, log *logger.Logger) *SummaryService {
	return &SummaryService{
		store:     s,
		wordLimit: wordLimit,
		validator: validation.New(),
		logger:    log,
	}
}

// Save upserts a summary.
func (s *SummaryService) Save(ctx context.Context, summary *domain.Summary) error {
	if err := s.validator.Validate(summary); err != nil {
		return err
	}
	if err := s.store.SaveSummary(ctx, summary); err != nil {
		return err
	}
	s.logger.Info("summary saved", "model", summary.Model, "id", summary.ID)
	return nil
}

// Get fetches a summary by model and id.
func (s *SummaryService) Get(ctx context.Context, model, summaryID string) (*domain.Summary, error) {
	return s.store.GetSummary(ctx, model, summaryID)
}

// List returns references to all stored summaries.
func (s *SummaryService) List(ctx context.Context) ([]store.SummaryRef, error) {
	return s.store.ListSummaries(ctx)
}

// Delete removes a summary and its drafts.
func (s *SummaryService) Delete(ctx context.Context, model, summaryID string) error {
	if err := s.store.DeleteSummary(ctx, model, summaryID); err != nil {
		return err
	}
	s.logger.Info("summary deleted", "model", model, "id", summaryID)
	return nil
}

// SaveDraft stores a new draft under the summary, assigning a draft id
// and the next sequential number.
func (s *SummaryService) SaveDraft(ctx context.Context, draft *domain.Draft) error {
	if err := s.validator.Validate(draft); err != nil {
		return err
	}

	draftID, err := id.Generate("draft")
	if err != nil {
		return err
	}
	draft.DraftID = draftID

	if err := s.store.SaveDraft(ctx, draft); err != nil {
		return err
	}
	s.logger.Info("draft saved",
		"model", draft.Model,
		"summary_id", draft.SummaryID,
		"draft_number", draft.DraftNumber,
	)
	return nil
}

// LastDraft returns the most recent draft of a summary.
func (s *SummaryService) LastDraft(ctx context.Context, model, summaryID string) (*domain.Draft, error) {
	return s.store.GetLastDraft(ctx, model, summaryID)
}

// BestDraft returns the highest-rated draft within the word budget,
// falling back to the highest-rated draft overall.
func (s *SummaryService) BestDraft(ctx context.Context, model, summaryID string) (*store.BestDraft, error) {
	return s.store.GetBestDraft(ctx, model, summaryID, s.wordLimit)
}
