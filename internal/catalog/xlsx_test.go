package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if sheet != "Sheet1" {
		if _, err := f.NewSheet(sheet); err != nil {
			t.Fatal(err)
		}
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestXLSXSource_Items(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]interface{}{
		{"SKU", "Name", "Description", "Category", "Price", "Rating", "Review Count", "In Stock", "Featured"},
		{"s-1", "Modern Leather Sofa", "Three seats", "Furniture", 1299, 4.8, 324, "yes", "true"},
		{"", "", "", "", "", "", "", "", ""},
		{"s-2", "Brass Lamp", "", "Lighting", "", "", "", "no", ""},
	})

	items, err := NewXLSXSource(path, "").Items(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d: %+v", len(items), items)
	}
	sofa := items[0]
	if sofa.ID != "s-1" || sofa.Category != "Furniture" || sofa.PriceValue() != 1299 {
		t.Errorf("unexpected sofa: %+v", sofa)
	}
	if sofa.RatingValue() != 4.8 || sofa.ReviewCountValue() != 324 || !sofa.IsInStock() || !sofa.Featured {
		t.Errorf("unexpected sofa numbers: %+v", sofa)
	}
	lamp := items[1]
	if lamp.Price != nil || lamp.IsInStock() || lamp.Featured {
		t.Errorf("unexpected lamp: %+v", lamp)
	}
}

func TestXLSXSource_NamedSheet(t *testing.T) {
	path := writeWorkbook(t, "Products", [][]interface{}{
		{"name"},
		{"Rug"},
	})

	items, err := NewXLSXSource(path, "Products").Items(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Name != "Rug" {
		t.Errorf("unexpected items: %+v", items)
	}

	if _, err := NewXLSXSource(path, "Missing").Items(context.Background()); err == nil {
		t.Error("expected error for missing sheet")
	}
}

func TestXLSXSource_InvalidCell(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]interface{}{
		{"name", "price"},
		{"Rug", "cheap"},
	})

	if _, err := NewXLSXSource(path, "").Items(context.Background()); err == nil {
		t.Error("expected error for non-numeric price")
	}
}

func TestItemFromRecord(t *testing.T) {
	item, err := itemFromRecord(map[string]string{
		colName:        " Oak Desk ",
		colPrice:       "$250",
		colReviewCount: "7",
		colInStock:     "0",
	})
	if err != nil {
		t.Fatal(err)
	}
	if item.Name != "Oak Desk" || item.PriceValue() != 250 || item.ReviewCountValue() != 7 || item.IsInStock() {
		t.Errorf("unexpected item: %+v", item)
	}

	if _, err := itemFromRecord(map[string]string{colFeatured: "maybe"}); err == nil {
		t.Error("expected error for unrecognised boolean")
	}
}

func TestNormalizeColumn(t *testing.T) {
	tests := map[string]string{
		"Review Count": colReviewCount,
		"review_count": colReviewCount,
		"Reviews":      colReviewCount,
		"IN-STOCK":     colInStock,
		"Title":        colName,
		"sku":          colID,
	}
	for in, want := range tests {
		if got := normalizeColumn(in); got != want {
			t.Errorf("normalizeColumn(%q) = %q, want %q", in, got, want)
		}
	}
}
