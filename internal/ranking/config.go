package ranking

import "github.com/hyperjump/catalogrank/internal/keyword"

// ScoringConfig holds every weight, cap and threshold of the relevance formula.
// Scorers copy it on construction, so later changes by the caller have no effect.
type ScoringConfig struct {
	// Text match weights
	NameWeight        float64 `yaml:"name_weight"`        // default: 40
	DescriptionWeight float64 `yaml:"description_weight"` // default: 20
	DescriptionScale  float64 `yaml:"description_scale"`  // default: 0.8
	CategoryWeight    float64 `yaml:"category_weight"`    // default: 15
	OverlapFactor     float64 `yaml:"overlap_factor"`     // default: 0.9

	// Category boost: one point per query token, capped
	CategoryBoostCap float64 `yaml:"category_boost_cap"` // default: 10

	// Flat boosts
	InStockBoost  float64 `yaml:"in_stock_boost"` // default: 5
	FeaturedBoost float64 `yaml:"featured_boost"` // default: 8

	// Popularity blend of review volume and rating
	PopularityWeight float64 `yaml:"popularity_weight"` // default: 10
	ReviewSaturation float64 `yaml:"review_saturation"` // default: 500
	MaxRating        float64 `yaml:"max_rating"`        // default: 5
	ReviewShare      float64 `yaml:"review_share"`      // default: 0.5
	RatingShare      float64 `yaml:"rating_share"`      // default: 0.5

	// Price range fit
	PriceMatchBoost  float64 `yaml:"price_match_boost"`  // default: 10
	PriceMissPenalty float64 `yaml:"price_miss_penalty"` // default: 20 (subtracted)

	// Fuzzy holds the similarity rule constants.
	Fuzzy keyword.FuzzyRules `yaml:"fuzzy"`
}

// DefaultScoringConfig returns the default scoring configuration.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		NameWeight:        40,
		DescriptionWeight: 20,
		DescriptionScale:  0.8,
		CategoryWeight:    15,
		OverlapFactor:     0.9,

		CategoryBoostCap: 10,

		InStockBoost:  5,
		FeaturedBoost: 8,

		PopularityWeight: 10,
		ReviewSaturation: 500,
		MaxRating:        5,
		ReviewShare:      0.5,
		RatingShare:      0.5,

		PriceMatchBoost:  10,
		PriceMissPenalty: 20,

		Fuzzy: keyword.DefaultFuzzyRules(),
	}
}

// ApplyDefaults fills in zero values with defaults.
func (c *ScoringConfig) ApplyDefaults() {
	defaults := DefaultScoringConfig()

	if c.NameWeight == 0 {
		c.NameWeight = defaults.NameWeight
	}
	if c.DescriptionWeight == 0 {
		c.DescriptionWeight = defaults.DescriptionWeight
	}
	if c.DescriptionScale == 0 {
		c.DescriptionScale = defaults.DescriptionScale
	}
	if c.CategoryWeight == 0 {
		c.CategoryWeight = defaults.CategoryWeight
	}
	if c.OverlapFactor == 0 {
		c.OverlapFactor = defaults.OverlapFactor
	}
	if c.CategoryBoostCap == 0 {
		c.CategoryBoostCap = defaults.CategoryBoostCap
	}
	if c.InStockBoost == 0 {
		c.InStockBoost = defaults.InStockBoost
	}
	if c.FeaturedBoost == 0 {
		c.FeaturedBoost = defaults.FeaturedBoost
	}
	if c.PopularityWeight == 0 {
		c.PopularityWeight = defaults.PopularityWeight
	}
	if c.ReviewSaturation == 0 {
		c.ReviewSaturation = defaults.ReviewSaturation
	}
	if c.MaxRating == 0 {
		c.MaxRating = defaults.MaxRating
	}
	if c.ReviewShare == 0 {
		c.ReviewShare = defaults.ReviewShare
	}
	if c.RatingShare == 0 {
		c.RatingShare = defaults.RatingShare
	}
	if c.PriceMatchBoost == 0 {
		c.PriceMatchBoost = defaults.PriceMatchBoost
	}
	if c.PriceMissPenalty == 0 {
		c.PriceMissPenalty = defaults.PriceMissPenalty
	}

	c.Fuzzy.ApplyDefaults()
}
