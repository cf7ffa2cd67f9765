package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPriceRange is returned when the minimum price exceeds the maximum.
	ErrInvalidPriceRange = errors.New("min price exceeds max price")
	// ErrInvalidOffset is returned for a negative offset.
	ErrInvalidOffset = errors.New("offset cannot be negative")
	// ErrInvalidMinScore is returned for a negative minimum score.
	ErrInvalidMinScore = errors.New("min score cannot be negative")
)

// SearchRequest is a ranking request with optional filters.
type SearchRequest struct {
	Query    string   `json:"query"`
	MinPrice *float64 `json:"minPrice,omitempty"`
	MaxPrice *float64 `json:"maxPrice,omitempty"`
	Category string   `json:"category,omitempty"` // case-insensitive exact match
	Limit    int      `json:"limit,omitempty"`
	Offset   int      `json:"offset,omitempty"`
	MinScore float64  `json:"minScore,omitempty"` // drops results scoring below it before paging
}

// PriceRange returns the request's price bounds.
func (q *SearchRequest) PriceRange() PriceRange {
	return PriceRange{Min: q.MinPrice, Max: q.MaxPrice}
}

// Validate checks the request and normalizes paging against defaultLimit and maxLimit.
// An empty query is valid: it selects the popularity ordering.
func (q *SearchRequest) Validate(defaultLimit, maxLimit int) error {
	if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
		return fmt.Errorf("%w: %.2f > %.2f", ErrInvalidPriceRange, *q.MinPrice, *q.MaxPrice)
	}
	if q.Offset < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidOffset, q.Offset)
	}
	if q.MinScore < 0 {
		return fmt.Errorf("%w: %.2f", ErrInvalidMinScore, q.MinScore)
	}
	if q.Limit <= 0 {
		q.Limit = defaultLimit
	}
	if maxLimit > 0 && q.Limit > maxLimit {
		q.Limit = maxLimit
	}
	return nil
}
