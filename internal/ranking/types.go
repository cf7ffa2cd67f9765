// Package ranking scores catalog items against a query and orders them by relevance.
package ranking

import "github.com/hyperjump/catalogrank/internal/models"

// Scorer computes the match of one item against a query.
type Scorer interface {
	// Score calculates the match for an item given the query and optional price bounds.
	Score(query string, item models.SearchableItem, price models.PriceRange) models.SearchMatch
}
