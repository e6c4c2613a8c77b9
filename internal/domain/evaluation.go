package domain

// Direction states whether larger or smaller metric values are better.
type Direction string

// Metric directions.
const (
	HigherBetter Direction = "higher_better"
	LowerBetter  Direction = "lower_better"
)

// Rating is the percentile bucket a metric value lands in relative to the
// reference PLS corpus. higher_better metrics rate P75..BELOW_P10,
// lower_better metrics rate P25..BEYOND_P90; the best quartile is P75 for
// the former and P25 for the latter.
type Rating string

// Percentile buckets.
const (
	RatingP75       Rating = "P75"
	RatingP50       Rating = "P50"
	RatingP25       Rating = "P25"
	RatingP10       Rating = "P10"
	RatingBelowP10  Rating = "BELOW_P10"
	RatingP90       Rating = "P90"
	RatingBeyondP90 Rating = "BEYOND_P90"
)

// ThresholdEntry holds the percentile cut points for one feature.
// higher_better entries are monotonic non-increasing
// (excellent >= good >= acceptable >= poor);
// lower_better entries are monotonic non-decreasing.
type ThresholdEntry struct {
	Excellent  float64   `json:"excellent"`
	Good       float64   `json:"good"`
	Acceptable float64   `json:"acceptable"`
	Poor       float64   `json:"poor"`
	Direction  Direction `json:"direction"`
}

// MetricEvaluation is the rating of a single feature value.
// Feedback is set only when the value deviates from the median-or-better
// range for its direction.
type MetricEvaluation struct {
	Value     float64   `json:"value"`
	Rating    Rating    `json:"rating"`
	Direction Direction `json:"direction"`
	Feedback  *string   `json:"feedback,omitempty"`
}

// WordCountStatus is the binary word-budget check, independent of the
// percentile machinery.
type WordCountStatus struct {
	WordCount int    `json:"word_count"`
	Limit     int    `json:"limit"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

// Word count statuses.
const (
	WordCountWithinLimit = "within_limit"
	WordCountOverLimit   = "over_limit"
)

// EvaluationSummary aggregates the per-feature ratings into conformity
// statistics against the reference corpus.
type EvaluationSummary struct {
	P25Count            int     `json:"P25_count"`
	P50Count            int     `json:"P50_count"`
	P75Count            int     `json:"P75_count"`
	P90Count            int     `json:"P90_count"`
	P10Count            int     `json:"P10_count"`
	BeyondP90Count      int     `json:"BEYOND_P90_count"`
	BelowP10Count       int     `json:"BELOW_P10_count"`
	TotalEvaluated      int     `json:"total_evaluated"`
	P25Percentage       float64 `json:"P25_percentage"`
	P50Percentage       float64 `json:"P50_percentage"`
	P75Percentage       float64 `json:"P75_percentage"`
	P90Percentage       float64 `json:"P90_percentage"`
	P10Percentage       float64 `json:"P10_percentage"`
	BeyondP90Percentage float64 `json:"BEYOND_P90_percentage"`
	BelowP10Percentage  float64 `json:"BELOW_P10_percentage"`
	BestQuartileRate    float64 `json:"best_quartile_rate"`
	OverallAssessment   string  `json:"overall_assessment"`
}

// Conformity tiers for EvaluationSummary.OverallAssessment.
const (
	AssessmentHighlyConforms = "HIGHLY CONFORMS TO TYPICAL PLS PATTERNS"
	AssessmentGood           = "GOOD CONFORMITY WITH PLS PATTERNS"
	AssessmentModerate       = "MODERATE CONFORMITY WITH PLS PATTERNS"
	AssessmentDeviates       = "DEVIATES FROM TYPICAL PLS PATTERNS"
	AssessmentNone           = "NO EVALUATION POSSIBLE"
)

// Evaluation is the full PLS compliance evaluation of one text.
type Evaluation struct {
	LinguisticEvaluation map[string]MetricEvaluation `json:"linguistic_evaluation"`
	WordCountStatus      WordCountStatus             `json:"word_count_status"`
	Summary              EvaluationSummary           `json:"summary"`
	Words                int                         `json:"words"`
	Sentences            int                         `json:"sentences"`
}
