package keyword

import (
	"strings"
	"sync"
)

// SpellCheckResult contains the result of spell checking a query.
type SpellCheckResult struct {
	OriginalQuery   string   // The original query
	CorrectedQuery  string   // The suggested corrected query; empty without corrections
	HasCorrections  bool     // True if any corrections were made
	MisspelledTerms []string // Query tokens that were replaced
}

// SpellChecker corrects queries against the terms of a TermDictionary.
type SpellChecker struct {
	dictionary TermDictionary
	rules      FuzzyRules
	threshold  float64

	// Cached terms for faster lookup
	termsCache []string
	cacheMu    sync.RWMutex
	cacheValid bool
}

// SpellCheckerOption is a functional option for configuring SpellChecker.
type SpellCheckerOption func(*SpellChecker)

// WithThreshold sets the confidence a vocabulary term must beat to replace a token.
func WithThreshold(t float64) SpellCheckerOption {
	return func(s *SpellChecker) {
		if t > 0 {
			s.threshold = t
		}
	}
}

// WithRules sets the fuzzy rules used to compare tokens with terms.
func WithRules(r FuzzyRules) SpellCheckerOption {
	return func(s *SpellChecker) {
		r.ApplyDefaults()
		s.rules = r
	}
}

// NewSpellChecker creates a new SpellChecker with the given dictionary.
func NewSpellChecker(dict TermDictionary, opts ...SpellCheckerOption) *SpellChecker {
	s := &SpellChecker{
		dictionary: dict,
		rules:      DefaultFuzzyRules(),
		threshold:  DefaultCorrectionThreshold,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// RefreshCache updates the internal term cache from the dictionary.
// This should be called whenever the catalog changes.
func (s *SpellChecker) RefreshCache() error {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	terms, err := s.dictionary.GetAllTerms()
	if err != nil {
		return err
	}
	s.termsCache = terms
	s.cacheValid = true

	return nil
}

// SetDictionary switches the checker to dict and marks the cache stale. Pass the same
// dictionary again after its terms change. Once it returns the previous dictionary is
// no longer read and may be closed.
func (s *SpellChecker) SetDictionary(dict TermDictionary) {
	s.cacheMu.Lock()
	s.dictionary = dict
	s.termsCache = nil
	s.cacheValid = false
	s.cacheMu.Unlock()
}

func (s *SpellChecker) ensureCache() error {
	s.cacheMu.RLock()
	valid := s.cacheValid
	s.cacheMu.RUnlock()
	if valid {
		return nil
	}
	return s.RefreshCache()
}

// Check checks a query for spelling errors and returns the corrected query.
func (s *SpellChecker) Check(query string) (*SpellCheckResult, error) {
	if err := s.ensureCache(); err != nil {
		return nil, err
	}

	s.cacheMu.RLock()
	terms := s.termsCache
	s.cacheMu.RUnlock()

	result := &SpellCheckResult{
		OriginalQuery:   query,
		MisspelledTerms: make([]string, 0),
	}

	corrected, ok := s.rules.SuggestCorrection(query, terms, s.threshold)
	if !ok {
		return result, nil
	}
	result.HasCorrections = true
	result.CorrectedQuery = corrected

	original := Tokenize(query)
	replaced := strings.Fields(corrected)
	for i := range original {
		if i < len(replaced) && original[i] != replaced[i] {
			result.MisspelledTerms = append(result.MisspelledTerms, original[i])
		}
	}
	return result, nil
}

// GetSuggestedQuery returns the corrected query, or "" when no correction applies.
func (s *SpellChecker) GetSuggestedQuery(query string) string {
	result, err := s.Check(query)
	if err != nil || !result.HasCorrections {
		return ""
	}
	return result.CorrectedQuery
}
