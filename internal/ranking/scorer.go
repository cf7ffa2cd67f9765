package ranking

import (
	"math"
	"strings"

	"github.com/hyperjump/catalogrank/internal/keyword"
	"github.com/hyperjump/catalogrank/internal/models"
)

// RelevanceScorer combines text matches, boosts and price fit into one weighted score.
type RelevanceScorer struct {
	config ScoringConfig
}

// NewRelevanceScorer creates a scorer with a copy of config. Zero fields take defaults.
func NewRelevanceScorer(config ScoringConfig) *RelevanceScorer {
	config.ApplyDefaults()
	return &RelevanceScorer{config: config}
}

// Config returns the scorer's configuration.
func (s *RelevanceScorer) Config() ScoringConfig {
	return s.config
}

// textMatch is the better of the structural fuzzy score and the discounted word overlap.
// A blank query carries no text relevance.
func (s *RelevanceScorer) textMatch(query, text string) float64 {
	if strings.TrimSpace(query) == "" {
		return 0
	}
	fuzzy := s.config.Fuzzy.Score(query, text)
	overlap := s.config.Fuzzy.WordOverlap(query, text) * s.config.OverlapFactor
	return math.Max(fuzzy, overlap)
}

// Score calculates the relevance of item to query. Missing optional fields contribute
// nothing; the total is floored at zero. Factors report each contribution divided by
// its own weight and are not guaranteed to add up to the total.
func (s *RelevanceScorer) Score(query string, item models.SearchableItem, price models.PriceRange) models.SearchMatch {
	cfg := s.config
	factors := models.NewScoreFactors()
	total := 0.0

	name := s.textMatch(query, item.Name)
	factors[models.FactorNameMatch] = name
	total += name * cfg.NameWeight

	if item.HasDescription() {
		desc := s.textMatch(query, item.Description) * cfg.DescriptionScale
		factors[models.FactorDescriptionMatch] = desc
		total += desc * cfg.DescriptionWeight
	}

	if item.HasCategory() {
		category := cfg.Fuzzy.Score(query, item.Category)
		factors[models.FactorCategoryMatch] = category
		total += category * cfg.CategoryWeight

		// Granted for any categorized item, matched or not.
		if tokens := len(keyword.Tokenize(query)); tokens > 0 {
			boost := math.Min(cfg.CategoryBoostCap, float64(tokens))
			factors[models.FactorCategoryBoost] = boost / cfg.CategoryBoostCap
			total += boost
		}
	}

	if item.IsInStock() {
		total += cfg.InStockBoost
	}

	ratingTerm := item.RatingValue() / cfg.MaxRating
	reviewTerm := math.Min(float64(item.ReviewCountValue())/cfg.ReviewSaturation, 1)
	popularity := (reviewTerm*cfg.ReviewShare + ratingTerm*cfg.RatingShare) * cfg.PopularityWeight
	factors[models.FactorPopularityBoost] = popularity / cfg.PopularityWeight
	factors[models.FactorRatingBoost] = ratingTerm
	total += popularity

	if item.Featured {
		total += cfg.FeaturedBoost
	}

	if price.IsSet() {
		if price.Contains(item.PriceValue()) {
			factors[models.FactorPriceRelevance] = 1
			total += cfg.PriceMatchBoost
		} else {
			// Out-of-range items are pushed down hard rather than merely not boosted.
			factors[models.FactorPriceRelevance] = -cfg.PriceMissPenalty / cfg.PriceMatchBoost
			total -= cfg.PriceMissPenalty
		}
	}

	return models.SearchMatch{
		Score:   math.Max(0, total),
		Factors: factors,
	}
}
