package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hyperjump/catalogrank/internal/models"
)

// Column names recognised in tabular sources. Headers are matched case-insensitively
// with spaces, dashes and underscores removed.
const (
	colID          = "id"
	colName        = "name"
	colDescription = "description"
	colCategory    = "category"
	colPrice       = "price"
	colRating      = "rating"
	colReviewCount = "reviewcount"
	colInStock     = "instock"
	colFeatured    = "featured"
)

var columnAliases = map[string]string{
	"sku":     colID,
	"title":   colName,
	"reviews": colReviewCount,
	"stock":   colInStock,
}

func normalizeColumn(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	h = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(h)
	if alias, ok := columnAliases[h]; ok {
		return alias
	}
	return h
}

// itemFromRecord builds an item from column name to raw cell text. Blank cells leave the
// optional fields unset.
func itemFromRecord(record map[string]string) (models.SearchableItem, error) {
	item := models.SearchableItem{
		ID:          strings.TrimSpace(record[colID]),
		Name:        strings.TrimSpace(record[colName]),
		Description: strings.TrimSpace(record[colDescription]),
		Category:    strings.TrimSpace(record[colCategory]),
	}

	var err error
	if item.Price, err = parseFloat(record[colPrice]); err != nil {
		return item, fmt.Errorf("invalid price: %w", err)
	}
	if item.Rating, err = parseFloat(record[colRating]); err != nil {
		return item, fmt.Errorf("invalid rating: %w", err)
	}
	if item.ReviewCount, err = parseInt(record[colReviewCount]); err != nil {
		return item, fmt.Errorf("invalid review count: %w", err)
	}
	if item.InStock, err = parseBool(record[colInStock]); err != nil {
		return item, fmt.Errorf("invalid in stock flag: %w", err)
	}
	featured, err := parseBool(record[colFeatured])
	if err != nil {
		return item, fmt.Errorf("invalid featured flag: %w", err)
	}
	item.Featured = featured != nil && *featured

	return item, nil
}

func parseFloat(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.TrimPrefix(s, "$"), 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func parseInt(s string) (*int, error) {
	f, err := parseFloat(s)
	if err != nil || f == nil {
		return nil, err
	}
	v := int(*f)
	return &v, nil
}

func parseBool(s string) (*bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return nil, nil
	case "1", "true", "yes", "y", "t":
		return models.Bool(true), nil
	case "0", "false", "no", "n", "f":
		return models.Bool(false), nil
	default:
		return nil, fmt.Errorf("unrecognised boolean %q", s)
	}
}
