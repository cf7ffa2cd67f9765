// Package e2e provides end-to-end tests with a generated catalog and multiple queries.
package e2e

import (
	"fmt"
	"strings"

	"github.com/hyperjump/catalogrank/internal/models"
)

// QueryTestCase defines a request and the item ID that must rank first.
type QueryTestCase struct {
	Request     models.SearchRequest
	ExpectedID  string
	Description string
}

// Corpus holds catalog items and query test cases for E2E tests.
type Corpus struct {
	Items        []models.SearchableItem
	TestCases    []QueryTestCase
	TotalItems   int
	TotalQueries int
}

var materials = []string{"Walnut", "Oak", "Marble", "Linen", "Velvet", "Brass"}

var products = []struct {
	noun     string
	category string
	room     string
}{
	{"Bookshelf", "Furniture", "study"},
	{"Desk", "Furniture", "study"},
	{"Armchair", "Furniture", "living room"},
	{"Stool", "Furniture", "kitchen"},
	{"Wardrobe", "Furniture", "bedroom"},
	{"Sideboard", "Furniture", "dining room"},
	{"Pendant", "Lighting", "dining room"},
	{"Sconce", "Lighting", "hallway"},
	{"Chandelier", "Lighting", "living room"},
	{"Runner", "Rugs", "hallway"},
	{"Throw", "Textiles", "bedroom"},
	{"Cushion", "Textiles", "living room"},
	{"Vase", "Decor", "living room"},
	{"Mirror", "Decor", "bedroom"},
	{"Planter", "Decor", "patio"},
	{"Clock", "Decor", "kitchen"},
	{"Tray", "Kitchen", "kitchen"},
	{"Canister", "Kitchen", "kitchen"},
	{"Hamper", "Bath", "bathroom"},
	{"Towel Rail", "Bath", "bathroom"},
}

// BuildCorpus returns a catalog of one item per material and product pair, all with the
// same popularity so text relevance decides the order, plus query test cases.
func BuildCorpus() *Corpus {
	items := buildItems()
	cases := buildQueryTestCases(items)
	return &Corpus{
		Items:        items,
		TestCases:    cases,
		TotalItems:   len(items),
		TotalQueries: len(cases),
	}
}

func buildItems() []models.SearchableItem {
	items := make([]models.SearchableItem, 0, len(materials)*len(products))
	for _, p := range products {
		for _, m := range materials {
			n := len(items)
			items = append(items, models.SearchableItem{
				ID:          fmt.Sprintf("sku-%03d", n+1),
				Name:        m + " " + p.noun,
				Description: fmt.Sprintf("Handmade %s %s for the %s", strings.ToLower(m), strings.ToLower(p.noun), p.room),
				Category:    p.category,
				Price:       models.Float64(float64(40 + n*10)),
				Rating:      models.Float64(4),
				ReviewCount: models.Int(100),
			})
		}
	}
	return items
}

func buildQueryTestCases(items []models.SearchableItem) []QueryTestCase {
	var cases []QueryTestCase
	for i := 0; i < len(items); i += 7 {
		item := items[i]
		cases = append(cases, QueryTestCase{
			Request:     models.SearchRequest{Query: strings.ToLower(item.Name)},
			ExpectedID:  item.ID,
			Description: "exact name " + item.Name,
		})
	}

	// Ties on text relevance are broken by the price bonus.
	target := items[len(items)-1]
	minPrice := target.PriceValue() - 5
	cases = append(cases, QueryTestCase{
		Request:     models.SearchRequest{Query: "brass", MinPrice: &minPrice},
		ExpectedID:  target.ID,
		Description: "price window selects the last brass item",
	})

	cases = append(cases, QueryTestCase{
		Request:     models.SearchRequest{Query: "marble sconse"},
		ExpectedID:  itemID(items, "Marble Sconce"),
		Description: "typo in the noun still finds the item",
	})
	return cases
}

func itemID(items []models.SearchableItem, name string) string {
	for _, item := range items {
		if item.Name == name {
			return item.ID
		}
	}
	return ""
}
