package glossary

import (
	"slices"
	"strings"

	"github.com/feliperussi/medwrite-server/internal/domain"
)

type span struct {
	start, end int
}

func overlaps(s span, taken []span) bool {
	for _, t := range taken {
		if s.start < t.end && s.end > t.start {
			return true
		}
	}
	return false
}

// FindMatches scans text for glossary aliases and reports every match
// with its exact character span in the original text.
//
// Matching is case-insensitive and anchored on word boundaries, so
// "disease" never fires inside "diseased". Aliases are tried longest
// first and a shorter alias is discarded when its span overlaps one
// already claimed, which is how "chronic disease" wins over "disease"
// on the same stretch of text. Results are grouped by main term in the
// order each term first matched.
func (ix *Index) FindMatches(text string) domain.MatchReport {
	lower := strings.ToLower(text)

	var taken []span
	found := make(map[string]*domain.FoundTerm)
	var order []string

	for i, phrase := range ix.phrases {
		for _, loc := range ix.patterns[i].FindAllStringIndex(lower, -1) {
			s := span{start: loc[0], end: loc[1]}
			if overlaps(s, taken) {
				continue
			}
			taken = append(taken, s)

			match := domain.MatchSpan{
				AliasFound:    text[s.start:s.end],
				LocationStart: s.start,
				LocationEnd:   s.end,
			}

			for _, entry := range ix.entriesOrPanic(phrase) {
				term, ok := found[entry.MainTerm]
				if !ok {
					term = &domain.FoundTerm{MainTerm: entry.MainTerm}
					found[entry.MainTerm] = term
					order = append(order, entry.MainTerm)
				}

				def := domain.Definition{
					PlainAlternative: entry.PlainAlternative,
					Source:           entry.Source,
				}
				if !slices.Contains(term.Definitions, def) {
					term.Definitions = append(term.Definitions, def)
				}
				if !slices.Contains(term.MatchesInText, match) {
					term.MatchesInText = append(term.MatchesInText, match)
				}
			}
		}
	}

	report := domain.MatchReport{
		FoundTerms: make([]domain.FoundTerm, 0, len(order)),
		AnalysisSummary: domain.AnalysisSummary{
			TotalUniquePhrasesFound: len(order),
			TextCharacterLength:     len(text),
		},
	}
	for _, mainTerm := range order {
		report.FoundTerms = append(report.FoundTerms, *found[mainTerm])
	}
	return report
}

// FindPresentPhrases is the presence-only matcher: it reports which
// aliases occur in the text, without spans. Matched stretches are elided
// from the working copy of the text so shorter aliases cannot re-match
// inside a longer alias that already fired.
func (ix *Index) FindPresentPhrases(text string) map[string][]domain.GlossaryEntry {
	scan := strings.ToLower(text)

	result := make(map[string][]domain.GlossaryEntry)
	for i, phrase := range ix.phrases {
		if ix.patterns[i].MatchString(scan) {
			result[phrase] = ix.entriesOrPanic(phrase)
			scan = strings.ReplaceAll(scan, phrase, "")
		}
	}
	return result
}
