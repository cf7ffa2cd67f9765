// Package models defines core data structures for catalog items, search requests, and ranked results.
package models

import "strings"

// SearchableItem is a read-only view of a catalog entry.
// Optional numeric fields are pointers; nil means the source did not provide them.
type SearchableItem struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description"`
	Category    string   `json:"category,omitempty" yaml:"category"`
	Price       *float64 `json:"price,omitempty" yaml:"price"`
	Rating      *float64 `json:"rating,omitempty" yaml:"rating"`
	ReviewCount *int     `json:"reviewCount,omitempty" yaml:"review_count"`
	InStock     *bool    `json:"inStock,omitempty" yaml:"in_stock"` // unset counts as in stock
	Featured    bool     `json:"featured,omitempty" yaml:"featured"`
}

// PriceValue returns the price, or 0 when absent.
func (i SearchableItem) PriceValue() float64 {
	if i.Price == nil {
		return 0
	}
	return *i.Price
}

// RatingValue returns the rating, or 0 when absent.
func (i SearchableItem) RatingValue() float64 {
	if i.Rating == nil {
		return 0
	}
	return *i.Rating
}

// ReviewCountValue returns the review count, or 0 when absent.
func (i SearchableItem) ReviewCountValue() int {
	if i.ReviewCount == nil {
		return 0
	}
	return *i.ReviewCount
}

// IsInStock reports whether the item is in stock; unset counts as in stock.
func (i SearchableItem) IsInStock() bool {
	return i.InStock == nil || *i.InStock
}

// HasDescription reports whether the item carries a non-blank description.
func (i SearchableItem) HasDescription() bool {
	return strings.TrimSpace(i.Description) != ""
}

// HasCategory reports whether the item carries a non-blank category.
func (i SearchableItem) HasCategory() bool {
	return strings.TrimSpace(i.Category) != ""
}

// PriceRange holds optional inclusive price bounds. Either side may be nil.
type PriceRange struct {
	Min *float64 `json:"minPrice,omitempty"`
	Max *float64 `json:"maxPrice,omitempty"`
}

// IsSet reports whether at least one bound is given.
func (p PriceRange) IsSet() bool {
	return p.Min != nil || p.Max != nil
}

// Contains reports whether price lies within the range. Missing bounds are open.
func (p PriceRange) Contains(price float64) bool {
	if p.Min != nil && price < *p.Min {
		return false
	}
	if p.Max != nil && price > *p.Max {
		return false
	}
	return true
}

// Float64 returns a pointer to v. Handy for building items and ranges in code.
func Float64(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }
