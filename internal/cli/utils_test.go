package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hyperjump/catalogrank/internal/models"
)

func sampleResponse() *models.SearchResponse {
	return &models.SearchResponse{
		Query:     "leather sofa",
		QueryTime: 7,
		Total:     1,
		Keywords:  []string{"leather", "sofa"},
		Results: []*models.RankedResult{
			{
				Item: models.SearchableItem{
					ID:          "sku-1",
					Name:        "Modern Leather Sofa",
					Description: "Three seat sofa in full grain leather",
					Category:    "Furniture",
					Price:       models.Float64(1299),
					Rating:      models.Float64(4.8),
					ReviewCount: models.Int(324),
					InStock:     models.Bool(false),
				},
				Match: models.SearchMatch{Score: 61.5, Factors: models.NewScoreFactors()},
			},
		},
		Summary: models.SearchSummary{
			TotalResults:       1,
			AverageScore:       61.5,
			TopFactors:         []models.Factor{models.FactorNameMatch, models.FactorRatingBoost, models.FactorPopularityBoost},
			RecommendedFilters: []string{"Furniture"},
		},
		Suggestion: "leather sofa",
	}
}

func TestWriteSearchResults_JSON(t *testing.T) {
	response := sampleResponse()
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, response, OutputJSON); err != nil {
		t.Fatalf("WriteSearchResults(json): %v", err)
	}
	var decoded models.SearchResponse
	if err := json.NewDecoder(&buf).Decode(&decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Query != response.Query || decoded.QueryTime != response.QueryTime {
		t.Errorf("decoded query=%q query_time=%d", decoded.Query, decoded.QueryTime)
	}
	if len(decoded.Results) != 1 || decoded.Results[0].Item.ID != "sku-1" {
		t.Errorf("decoded results: want one result with id sku-1, got %+v", decoded.Results)
	}
}

func TestWriteSearchResults_text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, sampleResponse(), OutputText); err != nil {
		t.Fatalf("WriteSearchResults(text): %v", err)
	}
	out := buf.String()
	for _, sub := range []string{
		"Found 1 results in 7ms",
		"Did you mean: leather sofa",
		"Rank: 1 | Score: 61.50 | ID: sku-1",
		"Modern [Leather] [Sofa]",
		"Furniture | $1299.00 | 4.8★ (324 reviews) | out of stock",
		"Three seat sofa",
		"Top factors: nameMatch, ratingBoost, popularityBoost",
		"Filters: Furniture",
	} {
		if !strings.Contains(out, sub) {
			t.Errorf("text output missing %q:\n%s", sub, out)
		}
	}
}

func TestWriteSearchResults_textEmpty(t *testing.T) {
	var buf bytes.Buffer
	response := &models.SearchResponse{Query: "x", Results: []*models.RankedResult{}}
	if err := WriteSearchResults(&buf, response, SearchOutputFormat("unknown")); err != nil {
		t.Fatalf("WriteSearchResults(unknown): %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Found 0 results") {
		t.Errorf("unknown format should fall back to text; got %q", out)
	}
	if strings.Contains(out, "Top factors") {
		t.Errorf("empty response should not print a summary; got %q", out)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, map[string]int{"items": 3}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"items": 3`) {
		t.Errorf("unexpected JSON: %s", buf.String())
	}
}
