package domain

import "time"

// SummarySection is a subheading/content pair inside a PLS summary.
type SummarySection struct {
	Subheading string `json:"subheading"`
	Content    string `json:"content"`
}

// Summary is a complete plain language summary, keyed by the generating
// model and the review identifier (e.g. "CD000259.PUB4").
type Summary struct {
	Model       string           `json:"model" validate:"required"`
	ID          string           `json:"id" validate:"required"`
	PlainTitle  string           `json:"plain_title"`
	KeyMessages []string         `json:"key_messages"`
	Background  []SummarySection `json:"background"`
	Methods     []SummarySection `json:"methods"`
	Results     []SummarySection `json:"results"`
	Limitations string           `json:"limitations"`
	Currency    string           `json:"currency"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// Key returns the storage key for this summary.
func (s *Summary) Key() string {
	return s.Model + ":" + s.ID
}

// Draft is one submitted draft of a summary, with the metrics and
// evaluation it was graded against at submission time.
type Draft struct {
	DraftID     string           `json:"draft_id"`
	Model       string           `json:"model" validate:"required"`
	SummaryID   string           `json:"summary_id" validate:"required"`
	DraftNumber int              `json:"draft_number"`
	Text        string           `json:"text" validate:"required"`
	Metrics     []map[string]any `json:"metrics"`
	Evaluation  DraftEvaluation  `json:"evaluation"`
	CreatedAt   time.Time        `json:"created_at"`
}

// DraftEvaluation is the reviewer verdict attached to a draft.
type DraftEvaluation struct {
	Grade                string `json:"grade"`
	Feedback             string `json:"feedback"`
	PLSEvaluationSummary string `json:"pls_evaluation_summary"`
}

// ToolInfo describes a registered analysis tool.
type ToolInfo struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
	Version     string         `json:"version"`
}
