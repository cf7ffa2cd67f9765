package keyword

import "strings"

// DefaultCorrectionThreshold is the score a vocabulary entry must beat to replace a token.
const DefaultCorrectionThreshold = 0.95

// SuggestCorrection returns a corrected query using the default rules and threshold.
// ok is false when no token was replaced.
func SuggestCorrection(query string, vocabulary []string) (string, bool) {
	return DefaultFuzzyRules().SuggestCorrection(query, vocabulary, DefaultCorrectionThreshold)
}

// SuggestCorrection replaces each lower-case query token with its best-scoring vocabulary
// entry when that score beats threshold. The first entry wins on ties. Tokens without a
// confident replacement are kept verbatim. An entry textually equal to the token is not
// counted as a correction.
func (r FuzzyRules) SuggestCorrection(query string, vocabulary []string, threshold float64) (string, bool) {
	tokens := Tokenize(query)
	if len(tokens) == 0 || len(vocabulary) == 0 {
		return "", false
	}

	corrected := make([]string, len(tokens))
	changed := false
	for i, token := range tokens {
		corrected[i] = token
		if containsExact(vocabulary, token) {
			continue
		}
		best, bestScore := "", 0.0
		for _, entry := range vocabulary {
			if score := r.Score(token, entry); score > bestScore {
				best, bestScore = entry, score
			}
		}
		if bestScore > threshold && best != token {
			corrected[i] = best
			changed = true
		}
	}

	if !changed {
		return "", false
	}
	return strings.Join(corrected, " "), true
}

func containsExact(vocabulary []string, token string) bool {
	for _, entry := range vocabulary {
		if entry == token {
			return true
		}
	}
	return false
}
