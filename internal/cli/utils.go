// Package cli provides output helpers for the catalogrank command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hyperjump/catalogrank/internal/models"
	"github.com/hyperjump/catalogrank/internal/search"
	"github.com/hyperjump/catalogrank/pkg/utils"
)

// SearchOutputFormat is the format for search result output.
type SearchOutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText SearchOutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON SearchOutputFormat = "json"
)

const descriptionWords = 24

// WriteSearchResults writes a ranked response to w in the given format.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format SearchOutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, response)
	}
	writeSearchResultsText(w, response)
	return nil
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v interface{}) error {
	return writeJSON(w, v)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSearchResultsText(w io.Writer, response *models.SearchResponse) {
	fmt.Fprintf(w, "\nFound %d results in %dms", response.Total, response.QueryTime)
	if response.Prefiltered {
		fmt.Fprint(w, " (prefiltered)")
	}
	fmt.Fprintln(w)
	if response.Suggestion != "" {
		fmt.Fprintf(w, "Did you mean: %s\n", response.Suggestion)
	}
	fmt.Fprintln(w)

	for i, result := range response.Results {
		writeOneResult(w, i+1, result, response.Keywords)
	}

	s := response.Summary
	if s.TotalResults > 0 {
		fmt.Fprintf(w, "Average score: %.2f\n", s.AverageScore)
		fmt.Fprintf(w, "Top factors: %s\n", joinFactors(s.TopFactors))
		if len(s.RecommendedFilters) > 0 {
			fmt.Fprintf(w, "Filters: %s\n", strings.Join(s.RecommendedFilters, ", "))
		}
	}
}

func writeOneResult(w io.Writer, rank int, result *models.RankedResult, keywords []string) {
	item := result.Item
	fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
	fmt.Fprintf(w, "Rank: %d | Score: %.2f | ID: %s\n", rank, result.Match.Score, item.ID)
	fmt.Fprintf(w, "%s\n", search.Highlight(item.Name, keywords, "[", "]", 0))
	var details []string
	if item.HasCategory() {
		details = append(details, item.Category)
	}
	if item.Price != nil {
		details = append(details, fmt.Sprintf("$%.2f", *item.Price))
	}
	if item.Rating != nil {
		details = append(details, fmt.Sprintf("%.1f★ (%d reviews)", *item.Rating, item.ReviewCountValue()))
	}
	if !item.IsInStock() {
		details = append(details, "out of stock")
	}
	if len(details) > 0 {
		fmt.Fprintln(w, strings.Join(details, " | "))
	}
	if item.HasDescription() {
		fmt.Fprintf(w, "\n%s\n", utils.TruncateWords(item.Description, descriptionWords))
	}
	fmt.Fprintln(w)
}

func joinFactors(factors []models.Factor) string {
	names := make([]string, len(factors))
	for i, f := range factors {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
