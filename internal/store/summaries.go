package store

import (
	"context"
	"errors"
	"time"

	"github.com/feliperussi/medwrite-server/internal/domain"
	domainerrors "github.com/feliperussi/medwrite-server/internal/errors"
)

func summaryKey(model, id string) string {
	return model + ":" + id
}

// SaveSummary upserts a summary. Re-saving an existing model/id pair
// replaces the sections and bumps UpdatedAt; CreatedAt survives.
func (s *Store) SaveSummary(ctx context.Context, summary *domain.Summary) error {
	key := summary.Key()
	now := time.Now().UTC()

	existing, err := s.Summaries.Get(ctx, key)
	switch {
	case err == nil:
		summary.CreatedAt = existing.CreatedAt
		summary.UpdatedAt = now
		return s.Summaries.Update(ctx, key, summary)
	case errors.Is(err, domainerrors.ErrNotFound):
		summary.CreatedAt = now
		summary.UpdatedAt = now
		return s.Summaries.Create(ctx, key, summary)
	default:
		return err
	}
}

// GetSummary retrieves a summary by model and id.
func (s *Store) GetSummary(ctx context.Context, model, id string) (*domain.Summary, error) {
	summary, err := s.Summaries.Get(ctx, summaryKey(model, id))
	if errors.Is(err, domainerrors.ErrNotFound) {
		return nil, domainerrors.NotFoundf("summary with model %q and id %q not found", model, id)
	}
	return summary, err
}

// SummaryRef identifies one stored summary.
type SummaryRef struct {
	Model string `json:"model"`
	ID    string `json:"id"`
}

// ListSummaries returns references to every stored summary, in key order.
func (s *Store) ListSummaries(ctx context.Context) ([]SummaryRef, error) {
	var refs []SummaryRef
	for summary, err := range s.Summaries.List(ctx) {
		if err != nil {
			return nil, err
		}
		refs = append(refs, SummaryRef{Model: summary.Model, ID: summary.ID})
	}
	return refs, nil
}

// DeleteSummary removes a summary and every draft attached to it.
func (s *Store) DeleteSummary(ctx context.Context, model, id string) error {
	exists, err := s.Summaries.Exists(ctx, summaryKey(model, id))
	if err != nil {
		return err
	}
	if !exists {
		return domainerrors.NotFoundf("summary with model %q and id %q not found", model, id)
	}

	drafts, err := s.ListDrafts(ctx, model, id)
	if err != nil {
		return err
	}
	for _, draft := range drafts {
		if err := s.Drafts.Delete(ctx, draftKey(model, id, draft.DraftNumber)); err != nil {
			return err
		}
	}

	return s.Summaries.Delete(ctx, summaryKey(model, id))
}
