package keyword

import (
	"strings"
	"unicode/utf8"
)

// MatchKind identifies which fuzzy rule produced a similarity.
type MatchKind int

const (
	// MatchNone indicates no rule matched.
	MatchNone MatchKind = iota
	// MatchSimilar indicates an edit-distance match above the similarity threshold.
	MatchSimilar
	// MatchWordPrefix indicates a whitespace token of the text starts with the query.
	MatchWordPrefix
	// MatchSubstring indicates the text contains the query.
	MatchSubstring
	// MatchPrefix indicates the text starts with the query.
	MatchPrefix
	// MatchExact indicates case-folded equality.
	MatchExact
)

// String returns a string representation of the match kind.
func (m MatchKind) String() string {
	switch m {
	case MatchNone:
		return "none"
	case MatchSimilar:
		return "similar"
	case MatchWordPrefix:
		return "word_prefix"
	case MatchSubstring:
		return "substring"
	case MatchPrefix:
		return "prefix"
	case MatchExact:
		return "exact"
	default:
		return "unknown"
	}
}

// FuzzyRules holds the constants of the fuzzy similarity rule chain.
type FuzzyRules struct {
	ExactScore      float64 `yaml:"exact_score"`       // default: 1.0
	PrefixScore     float64 `yaml:"prefix_score"`      // default: 0.95
	SubstringScore  float64 `yaml:"substring_score"`   // default: 0.85
	WordPrefixScore float64 `yaml:"word_prefix_score"` // default: 0.80

	// Edit-distance fallback: similarity must exceed the threshold and is then discounted.
	SimilarityThreshold float64 `yaml:"similarity_threshold"` // default: 0.6
	SimilarityDiscount  float64 `yaml:"similarity_discount"`  // default: 0.7

	// OverlapThreshold is the per-token score a word must beat to count as overlapping.
	OverlapThreshold float64 `yaml:"overlap_threshold"` // default: 0.8
}

// DefaultFuzzyRules returns the default rule constants.
func DefaultFuzzyRules() FuzzyRules {
	return FuzzyRules{
		ExactScore:          1.0,
		PrefixScore:         0.95,
		SubstringScore:      0.85,
		WordPrefixScore:     0.80,
		SimilarityThreshold: 0.6,
		SimilarityDiscount:  0.7,
		OverlapThreshold:    0.8,
	}
}

// ApplyDefaults fills in zero values with defaults.
func (r *FuzzyRules) ApplyDefaults() {
	d := DefaultFuzzyRules()
	if r.ExactScore == 0 {
		r.ExactScore = d.ExactScore
	}
	if r.PrefixScore == 0 {
		r.PrefixScore = d.PrefixScore
	}
	if r.SubstringScore == 0 {
		r.SubstringScore = d.SubstringScore
	}
	if r.WordPrefixScore == 0 {
		r.WordPrefixScore = d.WordPrefixScore
	}
	if r.SimilarityThreshold == 0 {
		r.SimilarityThreshold = d.SimilarityThreshold
	}
	if r.SimilarityDiscount == 0 {
		r.SimilarityDiscount = d.SimilarityDiscount
	}
	if r.OverlapThreshold == 0 {
		r.OverlapThreshold = d.OverlapThreshold
	}
}

// structuralRule is one step of the rule chain. Inputs are already folded and trimmed.
type structuralRule struct {
	kind    MatchKind
	matches func(query, text string) bool
	score   func(r FuzzyRules) float64
}

// structuralRules are tried in order; the first that matches wins.
// Rules other than exact need a non-empty query, so a blank query never matches a non-blank text.
var structuralRules = []structuralRule{
	{
		kind:    MatchExact,
		matches: func(q, t string) bool { return q == t },
		score:   func(r FuzzyRules) float64 { return r.ExactScore },
	},
	{
		kind:    MatchPrefix,
		matches: func(q, t string) bool { return q != "" && strings.HasPrefix(t, q) },
		score:   func(r FuzzyRules) float64 { return r.PrefixScore },
	},
	{
		kind:    MatchSubstring,
		matches: func(q, t string) bool { return q != "" && strings.Contains(t, q) },
		score:   func(r FuzzyRules) float64 { return r.SubstringScore },
	},
	{
		kind:    MatchWordPrefix,
		matches: wordPrefixMatch,
		score:   func(r FuzzyRules) float64 { return r.WordPrefixScore },
	},
}

func wordPrefixMatch(query, text string) bool {
	if query == "" {
		return false
	}
	for _, word := range strings.Fields(text) {
		if strings.HasPrefix(word, query) {
			return true
		}
	}
	return false
}

// normalize folds case and trims surrounding whitespace.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Match returns the similarity of query to text in [0,1] and the rule that produced it.
func (r FuzzyRules) Match(query, text string) (MatchKind, float64) {
	q := normalize(query)
	t := normalize(text)

	for _, rule := range structuralRules {
		if rule.matches(q, t) {
			return rule.kind, rule.score(r)
		}
	}

	longest := max(utf8.RuneCountInString(q), utf8.RuneCountInString(t))
	if longest == 0 {
		return MatchNone, 0
	}
	similarity := 1 - float64(LevenshteinDistance(q, t))/float64(longest)
	if similarity > r.SimilarityThreshold {
		return MatchSimilar, similarity * r.SimilarityDiscount
	}
	return MatchNone, 0
}

// Score returns the similarity of query to text in [0,1].
func (r FuzzyRules) Score(query, text string) float64 {
	_, score := r.Match(query, text)
	return score
}

// FuzzyScore scores query against text with the default rules.
func FuzzyScore(query, text string) float64 {
	return DefaultFuzzyRules().Score(query, text)
}
