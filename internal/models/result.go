package models

// Factor names one component of the relevance breakdown.
type Factor string

const (
	// FactorNameMatch is the fuzzy match of the query against the item name.
	FactorNameMatch Factor = "nameMatch"
	// FactorDescriptionMatch is the fuzzy match against the description.
	FactorDescriptionMatch Factor = "descriptionMatch"
	// FactorCategoryMatch is the fuzzy match against the category.
	FactorCategoryMatch Factor = "categoryMatch"
	// FactorCategoryBoost grows with the query token count for categorized items.
	FactorCategoryBoost Factor = "categoryBoost"
	// FactorPopularityBoost blends review count and rating.
	FactorPopularityBoost Factor = "popularityBoost"
	// FactorRatingBoost is the rating over the rating scale.
	FactorRatingBoost Factor = "ratingBoost"
	// FactorPriceRelevance is the price range bonus or penalty.
	FactorPriceRelevance Factor = "priceRelevance"
)

// FactorKeys returns every factor in canonical order. Tie-breaks that depend on
// key order use it. Each call returns a new slice.
func FactorKeys() []Factor {
	return []Factor{
		FactorNameMatch,
		FactorDescriptionMatch,
		FactorCategoryMatch,
		FactorCategoryBoost,
		FactorPopularityBoost,
		FactorRatingBoost,
		FactorPriceRelevance,
	}
}

// ScoreFactors maps each factor to its contribution normalized by its own weight.
// Boosts can exceed 1 and penalties go negative; values are diagnostic and do not
// have to add up to SearchMatch.Score.
type ScoreFactors map[Factor]float64

// NewScoreFactors returns a ScoreFactors with every key present and zero.
func NewScoreFactors() ScoreFactors {
	keys := FactorKeys()
	f := make(ScoreFactors, len(keys))
	for _, k := range keys {
		f[k] = 0
	}
	return f
}

// SearchMatch is the score of one (query, item) pair.
type SearchMatch struct {
	Score   float64      `json:"score"`
	Factors ScoreFactors `json:"factors"`
}

// RankedResult pairs an item with its match.
type RankedResult struct {
	Item  SearchableItem `json:"item"`
	Match SearchMatch    `json:"match"`
}

// SearchSummary describes a ranked result set.
type SearchSummary struct {
	TotalResults       int      `json:"totalResults"`
	AverageScore       float64  `json:"averageScore"`
	TopFactors         []Factor `json:"topFactors"`
	RecommendedFilters []string `json:"recommendedFilters"`
}

// SearchResponse is the response for a search request.
type SearchResponse struct {
	Query       string          `json:"query"`
	Results     []*RankedResult `json:"results"`
	Total       int             `json:"total"` // matches before pagination
	Summary     SearchSummary   `json:"summary"`
	Keywords    []string        `json:"keywords"`             // informative query terms, stop words removed
	Suggestion  string          `json:"suggestion,omitempty"` // "did you mean" query, empty when no correction applies
	Prefiltered bool            `json:"prefiltered,omitempty"`
	QueryTime   int64           `json:"query_time_ms"`
}
