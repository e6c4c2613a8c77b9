package store

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/feliperussi/medwrite-server/internal/domain"
	domainerrors "github.com/feliperussi/medwrite-server/internal/errors"
)

// draftKey embeds the zero-padded draft number so prefix scans return
// drafts in submission order.
func draftKey(model, summaryID string, number int) string {
	return fmt.Sprintf("%s:%s:%06d", model, summaryID, number)
}

func draftScanPrefix(model, summaryID string) string {
	return model + ":" + summaryID + ":"
}

// SaveDraft stores a new draft for an existing summary, assigning the
// next sequential draft number. The summary must already exist.
func (s *Store) SaveDraft(ctx context.Context, draft *domain.Draft) error {
	exists, err := s.Summaries.Exists(ctx, summaryKey(draft.Model, draft.SummaryID))
	if err != nil {
		return err
	}
	if !exists {
		return domainerrors.NotFoundf(
			"summary with model %q and id %q not found, create the summary first",
			draft.Model, draft.SummaryID)
	}

	s.draftMu.Lock()
	defer s.draftMu.Unlock()

	last := 0
	for existing, err := range s.Drafts.ListPrefix(ctx, draftScanPrefix(draft.Model, draft.SummaryID)) {
		if err != nil {
			return err
		}
		if existing.DraftNumber > last {
			last = existing.DraftNumber
		}
	}

	draft.DraftNumber = last + 1
	draft.CreatedAt = time.Now().UTC()
	return s.Drafts.Create(ctx, draftKey(draft.Model, draft.SummaryID, draft.DraftNumber), draft)
}

// ListDrafts returns every draft of a summary in submission order.
func (s *Store) ListDrafts(ctx context.Context, model, summaryID string) ([]*domain.Draft, error) {
	var drafts []*domain.Draft
	for draft, err := range s.Drafts.ListPrefix(ctx, draftScanPrefix(model, summaryID)) {
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, draft)
	}
	return drafts, nil
}

// GetLastDraft returns the most recently numbered draft of a summary.
func (s *Store) GetLastDraft(ctx context.Context, model, summaryID string) (*domain.Draft, error) {
	exists, err := s.Summaries.Exists(ctx, summaryKey(model, summaryID))
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domainerrors.NotFoundf("summary with model %q and id %q not found", model, summaryID)
	}

	drafts, err := s.ListDrafts(ctx, model, summaryID)
	if err != nil {
		return nil, err
	}
	if len(drafts) == 0 {
		return nil, domainerrors.NotFoundf("no drafts found for model %q and summary %q", model, summaryID)
	}
	return drafts[len(drafts)-1], nil
}

// GetDraftByID fetches a draft by its generated draft id.
func (s *Store) GetDraftByID(ctx context.Context, draftID string) (*domain.Draft, error) {
	return s.Drafts.GetByIndex(ctx, "draft_id", draftID)
}

// BestDraft is the selection result of GetBestDraft.
type BestDraft struct {
	Draft            *domain.Draft `json:"draft"`
	BestQuartileRate float64       `json:"best_quartile_rate"`
	WordCount        *int          `json:"word_count"`
}

// GetBestDraft selects the draft with the highest best_quartile_rate
// whose word count is within wordLimit. When no draft fits the limit the
// highest-rated draft wins regardless. Drafts without a recorded rate
// are ignored.
func (s *Store) GetBestDraft(ctx context.Context, model, summaryID string, wordLimit int) (*BestDraft, error) {
	exists, err := s.Summaries.Exists(ctx, summaryKey(model, summaryID))
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domainerrors.NotFoundf("summary with model %q and id %q not found", model, summaryID)
	}

	drafts, err := s.ListDrafts(ctx, model, summaryID)
	if err != nil {
		return nil, err
	}
	if len(drafts) == 0 {
		return nil, domainerrors.NotFoundf("no drafts found for model %q and summary %q", model, summaryID)
	}

	var candidates []BestDraft
	for _, draft := range drafts {
		rate, ok := draftQuartileRate(draft)
		if !ok {
			continue
		}
		candidates = append(candidates, BestDraft{
			Draft:            draft,
			BestQuartileRate: rate,
			WordCount:        draftWordCount(draft),
		})
	}
	if len(candidates) == 0 {
		return nil, domainerrors.NotFoundf("no drafts with valid metrics found for model %q and summary %q", model, summaryID)
	}

	slices.SortStableFunc(candidates, func(a, b BestDraft) int {
		switch {
		case a.BestQuartileRate > b.BestQuartileRate:
			return -1
		case a.BestQuartileRate < b.BestQuartileRate:
			return 1
		default:
			return 0
		}
	})

	for i := range candidates {
		if candidates[i].WordCount != nil && *candidates[i].WordCount <= wordLimit {
			return &candidates[i], nil
		}
	}
	return &candidates[0], nil
}

func draftMetrics(draft *domain.Draft) map[string]any {
	if len(draft.Metrics) == 0 {
		return nil
	}
	return draft.Metrics[0]
}

func draftQuartileRate(draft *domain.Draft) (float64, bool) {
	metrics := draftMetrics(draft)
	if metrics == nil {
		return 0, false
	}
	summary, ok := metrics["summary"].(map[string]any)
	if !ok {
		return 0, false
	}
	rate, ok := summary["best_quartile_rate"].(float64)
	return rate, ok
}

func draftWordCount(draft *domain.Draft) *int {
	metrics := draftMetrics(draft)
	if metrics == nil {
		return nil
	}
	status, ok := metrics["word_count_status"].(map[string]any)
	if !ok {
		return nil
	}
	count, ok := status["word_count"].(float64)
	if !ok {
		return nil
	}
	n := int(count)
	return &n
}
