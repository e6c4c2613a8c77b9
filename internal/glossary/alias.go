// Package glossary implements the phrase-matching engine: alias generation,
// index construction from JSON source collections, and longest-match-first
// phrase matching with exact character spans.
package glossary

import (
	"maps"
	"regexp"
	"slices"
	"strings"
)

// parenPattern extracts "Term (Alias)" shaped terms. The first group is
// greedy, so for nested shapes like "a (b) (c)" the main part is "a (b)"
// and the alias part is "c". The alias part is never decomposed further.
var parenPattern = regexp.MustCompile(`(.+)\s\((.+)\)`)

// GenerateAliases derives the set of lowercase search aliases for a term.
//
// The full lowercased term is always included. If the term has the shape
// "Main (Alt)", the trimmed main and alt parts are added as separate
// aliases. The result is sorted so repeated builds see aliases in the
// same order.
//
//	GenerateAliases("Pertussis (Whooping Cough)")
//	  => ["pertussis", "pertussis (whooping cough)", "whooping cough"]
func GenerateAliases(term string) []string {
	lower := strings.ToLower(term)

	set := map[string]struct{}{lower: {}}
	if m := parenPattern.FindStringSubmatch(lower); m != nil {
		set[strings.TrimSpace(m[1])] = struct{}{}
		set[strings.TrimSpace(m[2])] = struct{}{}
	}

	return slices.Sorted(maps.Keys(set))
}
