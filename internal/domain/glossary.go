// Package domain defines the core types shared across the medwrite server.
package domain

// GlossaryEntry is one term/definition record contributed by a source
// collection. Entries are immutable once loaded.
type GlossaryEntry struct {
	MainTerm         string `json:"main_term"`
	PlainAlternative string `json:"plain_alternative"`
	Source           string `json:"source"`
}

// Definition is the caller-facing slice of a GlossaryEntry, without the term.
type Definition struct {
	PlainAlternative string `json:"plain_alternative"`
	Source           string `json:"source"`
}

// MatchSpan locates one alias occurrence in the original-cased input text.
// Offsets are half-open [start, end) byte positions. Invariants:
// LocationStart < LocationEnd and lower(text[start:end]) == lower(alias).
type MatchSpan struct {
	AliasFound    string `json:"alias_found"`
	LocationStart int    `json:"location_start"`
	LocationEnd   int    `json:"location_end"`
}

// FoundTerm groups every accepted match of one main term, with its
// deduplicated definitions and spans.
type FoundTerm struct {
	MainTerm      string       `json:"main_term"`
	Definitions   []Definition `json:"definitions"`
	MatchesInText []MatchSpan  `json:"matches_in_text"`
}

// AnalysisSummary carries aggregate match counts for one request.
type AnalysisSummary struct {
	TotalUniquePhrasesFound int `json:"total_unique_phrases_found"`
	TextCharacterLength     int `json:"text_character_length"`
}

// MatchReport is the result of the span-reporting matcher. FoundTerms are
// ordered by first insertion (the order the longest-match sweep saw them).
type MatchReport struct {
	AnalysisSummary AnalysisSummary `json:"analysis_summary"`
	FoundTerms      []FoundTerm     `json:"found_terms"`
}
