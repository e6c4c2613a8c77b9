// Package rating evaluates linguistic feature values against percentile
// thresholds derived from a reference corpus of plain language summaries,
// and aggregates the per-feature ratings into an overall conformity
// assessment.
package rating

import (
	"encoding/json/v2"
	"os"

	"github.com/feliperussi/medwrite-server/internal/domain"
	domainerrors "github.com/feliperussi/medwrite-server/internal/errors"
)

// RecommendedFeatures is the feature set evaluated for PLS compliance, in
// report order. "words" and "sentences" are contextual only and never
// enter the percentile counts.
var RecommendedFeatures = []string{
	// critical features
	"words_per_sentence",
	"passive_voice",
	"active_voice",
	"sentences_per_paragraph",
	"pronouns",
	"nominalization",
	"verbs",
	"nouns",
	"numbers",

	// readability
	"flesch_reading_ease",
	"flesch_kincaid_grade",
	"automated_readability_index",
	"coleman_liau_index",
	"gunning_fog_index",
	"lix",
	"rix",
	"smog_index",
	"dale_chall_readability",

	// vocabulary complexity
	"complex_words_dc",
	"complex_words",
	"long_words",
	"syllables_per_word",
	"polysyllables",

	// secondary indicators
	"tobeverb",
	"auxverb",
	"subordinating_conjunctions",

	// basic context
	"words",
	"sentences",
	"paragraphs",
}

// LoadThresholds reads a threshold table from a JSON file keyed by feature
// name and validates every entry before returning it.
func LoadThresholds(path string) (map[string]domain.ThresholdEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domainerrors.Wrapf(err, domainerrors.CodeInternal, "reading thresholds file %q", path)
	}

	var thresholds map[string]domain.ThresholdEntry
	if err := json.Unmarshal(data, &thresholds); err != nil {
		return nil, domainerrors.Wrapf(err, domainerrors.CodeValidation, "parsing thresholds file %q", path)
	}

	for feature, entry := range thresholds {
		if err := validateEntry(entry); err != nil {
			return nil, domainerrors.Wrapf(err, domainerrors.CodeValidation, "threshold entry %q", feature)
		}
	}
	return thresholds, nil
}

func validateEntry(entry domain.ThresholdEntry) error {
	switch entry.Direction {
	case domain.HigherBetter:
		if entry.Excellent < entry.Good || entry.Good < entry.Acceptable || entry.Acceptable < entry.Poor {
			return domainerrors.Validation("higher_better thresholds must be non-increasing from excellent to poor")
		}
	case domain.LowerBetter:
		if entry.Excellent > entry.Good || entry.Good > entry.Acceptable || entry.Acceptable > entry.Poor {
			return domainerrors.Validation("lower_better thresholds must be non-decreasing from excellent to poor")
		}
	default:
		return domainerrors.Validationf("unknown direction %q", entry.Direction)
	}
	return nil
}
