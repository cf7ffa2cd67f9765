package ranking

import (
	"sort"
	"strings"

	"github.com/hyperjump/catalogrank/internal/models"
)

// Ranker orders catalog items by relevance to a query.
type Ranker struct {
	config ScoringConfig
	scorer Scorer
}

// NewRanker creates a new Ranker with the given configuration.
// A nil config uses the defaults.
func NewRanker(config *ScoringConfig) *Ranker {
	cfg := DefaultScoringConfig()
	if config != nil {
		cfg = *config
		cfg.ApplyDefaults()
	}

	return &Ranker{
		config: cfg,
		scorer: NewRelevanceScorer(cfg),
	}
}

// WithScorer replaces the relevance scorer.
func (r *Ranker) WithScorer(s Scorer) *Ranker {
	r.scorer = s
	return r
}

// Score scores a single item.
func (r *Ranker) Score(query string, item models.SearchableItem, price models.PriceRange) models.SearchMatch {
	return r.scorer.Score(query, item, price)
}

// Rank scores every item and returns them ordered.
//
// A blank query keeps every item and orders by featured first, then rating and review
// count descending. Otherwise items scoring zero are dropped and the rest are sorted by
// score descending. Both orderings are stable. Items are never modified.
func (r *Ranker) Rank(items []models.SearchableItem, query string, price models.PriceRange) []*models.RankedResult {
	results := make([]*models.RankedResult, 0, len(items))

	if strings.TrimSpace(query) == "" {
		for _, item := range items {
			results = append(results, &models.RankedResult{
				Item:  item,
				Match: r.scorer.Score(query, item, price),
			})
		}
		sort.SliceStable(results, func(i, j int) bool {
			return popularityLess(results[i].Item, results[j].Item)
		})
		return results
	}

	for _, item := range items {
		match := r.scorer.Score(query, item, price)
		if match.Score > 0 {
			results = append(results, &models.RankedResult{
				Item:  item,
				Match: match,
			})
		}
	}

	// Sort by score descending
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Match.Score > results[j].Match.Score
	})

	return results
}

// popularityLess orders featured items first, then by rating, then by review count.
func popularityLess(a, b models.SearchableItem) bool {
	if a.Featured != b.Featured {
		return a.Featured
	}
	if ra, rb := a.RatingValue(), b.RatingValue(); ra != rb {
		return ra > rb
	}
	return a.ReviewCountValue() > b.ReviewCountValue()
}

// GetConfig returns the scoring configuration.
func (r *Ranker) GetConfig() ScoringConfig {
	return r.config
}

// FilterByMinScore filters results below a minimum score.
func FilterByMinScore(results []*models.RankedResult, minScore float64) []*models.RankedResult {
	filtered := make([]*models.RankedResult, 0, len(results))
	for _, r := range results {
		if r.Match.Score >= minScore {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// TopN returns the top N results. A negative n is treated as 0.
func TopN(results []*models.RankedResult, n int) []*models.RankedResult {
	if n < 0 {
		n = 0
	}
	if n >= len(results) {
		return results
	}
	return results[:n]
}

// Paginate returns a page of results. Negative offset and limit are clamped to 0.
func Paginate(results []*models.RankedResult, offset, limit int) []*models.RankedResult {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(results) {
		return nil
	}
	return TopN(results[offset:], limit)
}
