package rating

import (
	"fmt"
	"strings"

	"github.com/feliperussi/medwrite-server/internal/domain"
)

// reportRatingOrder lists the percentile buckets from best to worst
// across both directions, for display grouping.
var reportRatingOrder = []domain.Rating{
	domain.RatingP25,
	domain.RatingP75,
	domain.RatingP50,
	domain.RatingP90,
	domain.RatingP10,
	domain.RatingBeyondP90,
	domain.RatingBelowP10,
}

// FormatTextReport renders an evaluation as the human-readable report
// used by the text output format and the CLI. Metrics are grouped best
// bucket first; features keep their recommended order within a bucket.
func FormatTextReport(eval domain.Evaluation) string {
	var b strings.Builder

	b.WriteString(eval.WordCountStatus.Message + "\n")
	fmt.Fprintf(&b, "Sentences: %d\n\n", eval.Sentences)

	b.WriteString("METRIC EVALUATION:\n")

	byRating := make(map[domain.Rating][]string)
	for _, feature := range RecommendedFeatures {
		if feature == "words" || feature == "sentences" {
			continue
		}
		data, ok := eval.LinguisticEvaluation[feature]
		if !ok {
			continue
		}

		symbol := "↓"
		if data.Direction == domain.HigherBetter {
			symbol = "↑"
		}
		byRating[data.Rating] = append(byRating[data.Rating],
			fmt.Sprintf("%-30s %s = %8.2f → %s", feature, symbol, data.Value, data.Rating))
	}
	for _, rating := range reportRatingOrder {
		for _, line := range byRating[rating] {
			b.WriteString(line + "\n")
		}
	}
	b.WriteString("\n")

	s := eval.Summary
	b.WriteString("STATISTICAL CONFORMITY SUMMARY:\n\n")
	b.WriteString("Percentile ranges (proportion of corpus):\n")
	fmt.Fprintf(&b, "  Best quartile (P25/P75): %3d features (%.1f%%)\n",
		s.P25Count+s.P75Count, s.P25Percentage+s.P75Percentage)
	fmt.Fprintf(&b, "  Median (P50):            %3d features (%.1f%%)\n", s.P50Count, s.P50Percentage)
	if s.P90Count > 0 {
		fmt.Fprintf(&b, "  P90 range:               %3d features (%.1f%%)\n", s.P90Count, s.P90Percentage)
	}
	if s.P10Count > 0 {
		fmt.Fprintf(&b, "  P10 range:               %3d features (%.1f%%)\n", s.P10Count, s.P10Percentage)
	}
	if s.BeyondP90Count > 0 {
		fmt.Fprintf(&b, "  Beyond P90:              %3d features (%.1f%%)\n", s.BeyondP90Count, s.BeyondP90Percentage)
	}
	if s.BelowP10Count > 0 {
		fmt.Fprintf(&b, "  Below P10:               %3d features (%.1f%%)\n", s.BelowP10Count, s.BelowP10Percentage)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Overall Pattern Conformity: %s\n", s.OverallAssessment)
	fmt.Fprintf(&b, "Best Quartile Rate: %.1f%%\n\n", s.BestQuartileRate)

	var recommendations []string
	for _, feature := range RecommendedFeatures {
		data, ok := eval.LinguisticEvaluation[feature]
		if !ok || data.Feedback == nil {
			continue
		}
		recommendations = append(recommendations,
			fmt.Sprintf("   %d. %s: %s", len(recommendations)+1, feature, *data.Feedback))
	}
	if len(recommendations) > 0 {
		b.WriteString("PATTERN DEVIATION ANALYSIS\n")
		fmt.Fprintf(&b, "Features deviating from typical PLS patterns (%d features):\n", len(recommendations))
		b.WriteString(strings.Join(recommendations, "\n"))
	} else {
		b.WriteString("All metrics conform to typical PLS statistical patterns.")
	}

	return b.String()
}
