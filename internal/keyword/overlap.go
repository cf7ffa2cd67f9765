package keyword

import "strings"

// Tokenize splits s on whitespace into lower-case tokens, dropping empty ones.
func Tokenize(s string) []string {
	return strings.Fields(strings.ToLower(s))
}

// WordOverlap returns the fraction of query tokens that fuzzy-match some token of text.
// A query token matches when its best score against a text token beats OverlapThreshold.
func (r FuzzyRules) WordOverlap(query, text string) float64 {
	queryTokens := Tokenize(query)
	textTokens := Tokenize(text)
	if len(queryTokens) == 0 || len(textTokens) == 0 {
		return 0
	}

	matched := 0
	for _, qt := range queryTokens {
		for _, tt := range textTokens {
			if r.Score(qt, tt) > r.OverlapThreshold {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(queryTokens))
}

// WordOverlap scores word overlap with the default rules.
func WordOverlap(query, text string) float64 {
	return DefaultFuzzyRules().WordOverlap(query, text)
}
