package ranking

import (
	"sort"
	"strings"

	"github.com/hyperjump/catalogrank/internal/models"
)

const (
	maxTopFactors         = 3
	maxRecommendedFilters = 5
)

// Summarize describes a ranked result set: mean score, the factors that contributed
// most on average, and the categories worth offering as filters.
func Summarize(results []*models.RankedResult) models.SearchSummary {
	summary := models.SearchSummary{
		TopFactors:         []models.Factor{},
		RecommendedFilters: []string{},
	}
	if len(results) == 0 {
		return summary
	}

	total := 0.0
	keys := models.FactorKeys()
	sums := make(map[models.Factor]float64, len(keys))
	for _, r := range results {
		total += r.Match.Score
		for _, key := range keys {
			sums[key] += r.Match.Factors[key]
		}
	}
	n := float64(len(results))
	summary.TotalResults = len(results)
	summary.AverageScore = total / n

	// Equal averages keep canonical key order.
	sort.SliceStable(keys, func(i, j int) bool {
		return sums[keys[i]]/n > sums[keys[j]]/n
	})
	summary.TopFactors = keys[:maxTopFactors]

	seen := make(map[string]struct{})
	for _, r := range results {
		category := strings.TrimSpace(r.Item.Category)
		if category == "" {
			continue
		}
		if _, ok := seen[category]; ok {
			continue
		}
		seen[category] = struct{}{}
		summary.RecommendedFilters = append(summary.RecommendedFilters, category)
		if len(summary.RecommendedFilters) == maxRecommendedFilters {
			break
		}
	}

	return summary
}
