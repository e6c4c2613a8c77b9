package rating

import (
	"fmt"

	"github.com/feliperussi/medwrite-server/internal/domain"
)

const (
	// RatingInfo marks contextual entries that carry no percentile bucket.
	RatingInfo domain.Rating = "info"

	// DefaultWordCountLimit is the recommended PLS word budget.
	DefaultWordCountLimit = 850
)

// Engine rates feature values against a fixed threshold table. An Engine
// is immutable and safe for concurrent use.
type Engine struct {
	thresholds map[string]domain.ThresholdEntry
	wordLimit  int
}

func NewEngine(thresholds map[string]domain.ThresholdEntry, wordLimit int) *Engine {
	if wordLimit <= 0 {
		wordLimit = DefaultWordCountLimit
	}
	return &Engine{thresholds: thresholds, wordLimit: wordLimit}
}

// WordCountLimit returns the configured word budget.
func (e *Engine) WordCountLimit() int {
	return e.wordLimit
}

// Thresholds returns the threshold entry for a feature, if present.
func (e *Engine) Thresholds(feature string) (domain.ThresholdEntry, bool) {
	entry, ok := e.thresholds[feature]
	return entry, ok
}

// Rate buckets one value against a threshold entry. For higher_better
// metrics the best bucket is P75, descending to BELOW_P10; for
// lower_better metrics it is P25, ascending to BEYOND_P90. Feedback is
// attached only in the two worst buckets of either direction and points
// at the corpus median.
func Rate(value float64, entry domain.ThresholdEntry) domain.MetricEvaluation {
	eval := domain.MetricEvaluation{Value: value, Direction: entry.Direction}

	if entry.Direction == domain.HigherBetter {
		switch {
		case value >= entry.Excellent:
			eval.Rating = domain.RatingP75
		case value >= entry.Good:
			eval.Rating = domain.RatingP50
		case value >= entry.Acceptable:
			eval.Rating = domain.RatingP25
		case value >= entry.Poor:
			eval.Rating = domain.RatingP10
		default:
			eval.Rating = domain.RatingBelowP10
		}
		if eval.Rating == domain.RatingP10 || eval.Rating == domain.RatingBelowP10 {
			fb := fmt.Sprintf("Deviates from typical PLS patterns. Consider increasing from %.1f to >%.1f (median)", value, entry.Good)
			eval.Feedback = &fb
		}
		return eval
	}

	switch {
	case value <= entry.Excellent:
		eval.Rating = domain.RatingP25
	case value <= entry.Good:
		eval.Rating = domain.RatingP50
	case value <= entry.Acceptable:
		eval.Rating = domain.RatingP75
	case value <= entry.Poor:
		eval.Rating = domain.RatingP90
	default:
		eval.Rating = domain.RatingBeyondP90
	}
	if eval.Rating == domain.RatingP90 || eval.Rating == domain.RatingBeyondP90 {
		fb := fmt.Sprintf("Deviates from typical PLS patterns. Consider reducing from %.1f to <%.1f (median)", value, entry.Good)
		eval.Feedback = &fb
	}
	return eval
}

// CheckWordCount performs the binary word-budget check.
func (e *Engine) CheckWordCount(wordCount int) domain.WordCountStatus {
	status := domain.WordCountWithinLimit
	symbol, label := "✓", "WITHIN LIMIT"
	if wordCount > e.wordLimit {
		status = domain.WordCountOverLimit
		symbol, label = "✗", "OVER LIMIT"
	}
	return domain.WordCountStatus{
		WordCount: wordCount,
		Limit:     e.wordLimit,
		Status:    status,
		Message:   fmt.Sprintf("Word count: %d %s %s (≤%d words)", wordCount, symbol, label, e.wordLimit),
	}
}

// Evaluate rates every recommended feature present in the analysis
// output and aggregates the buckets into a conformity summary. Features
// absent from the input or from the threshold table are skipped rather
// than treated as deviations.
func (e *Engine) Evaluate(features map[string]float64) domain.Evaluation {
	wordCount := int(features["words"])
	sentenceCount := int(features["sentences"])

	evaluation := domain.Evaluation{
		LinguisticEvaluation: make(map[string]domain.MetricEvaluation),
		WordCountStatus:      e.CheckWordCount(wordCount),
		Words:                wordCount,
		Sentences:            sentenceCount,
	}

	wordRating := domain.Rating(domain.WordCountWithinLimit)
	if wordCount > e.wordLimit {
		wordRating = domain.Rating(domain.WordCountOverLimit)
	}
	evaluation.LinguisticEvaluation["words"] = domain.MetricEvaluation{
		Value:  float64(wordCount),
		Rating: wordRating,
	}
	evaluation.LinguisticEvaluation["sentences"] = domain.MetricEvaluation{
		Value:  float64(sentenceCount),
		Rating: RatingInfo,
	}

	counts := make(map[domain.Rating]int)
	for _, feature := range RecommendedFeatures {
		if feature == "words" || feature == "sentences" {
			continue
		}
		value, ok := features[feature]
		if !ok {
			continue
		}
		entry, ok := e.thresholds[feature]
		if !ok {
			continue
		}

		metricEval := Rate(value, entry)
		evaluation.LinguisticEvaluation[feature] = metricEval
		counts[metricEval.Rating]++
	}

	evaluation.Summary = summarize(counts)
	return evaluation
}

func summarize(counts map[domain.Rating]int) domain.EvaluationSummary {
	total := 0
	for _, n := range counts {
		total += n
	}

	summary := domain.EvaluationSummary{
		P25Count:       counts[domain.RatingP25],
		P50Count:       counts[domain.RatingP50],
		P75Count:       counts[domain.RatingP75],
		P90Count:       counts[domain.RatingP90],
		P10Count:       counts[domain.RatingP10],
		BeyondP90Count: counts[domain.RatingBeyondP90],
		BelowP10Count:  counts[domain.RatingBelowP10],
		TotalEvaluated: total,
	}

	if total == 0 {
		summary.OverallAssessment = domain.AssessmentNone
		return summary
	}

	pct := func(n int) float64 { return float64(n) / float64(total) * 100 }
	summary.P25Percentage = pct(summary.P25Count)
	summary.P50Percentage = pct(summary.P50Count)
	summary.P75Percentage = pct(summary.P75Count)
	summary.P90Percentage = pct(summary.P90Count)
	summary.P10Percentage = pct(summary.P10Count)
	summary.BeyondP90Percentage = pct(summary.BeyondP90Count)
	summary.BelowP10Percentage = pct(summary.BelowP10Count)

	bestQuartile := summary.P25Count + summary.P75Count
	medianRange := summary.P50Count
	summary.BestQuartileRate = pct(bestQuartile)

	switch {
	case summary.BestQuartileRate >= 60:
		summary.OverallAssessment = domain.AssessmentHighlyConforms
	case float64(bestQuartile+medianRange) >= float64(total)*0.7:
		summary.OverallAssessment = domain.AssessmentGood
	case float64(bestQuartile+medianRange) >= float64(total)*0.5:
		summary.OverallAssessment = domain.AssessmentModerate
	default:
		summary.OverallAssessment = domain.AssessmentDeviates
	}
	return summary
}
