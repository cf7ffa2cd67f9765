package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/hyperjump/catalogrank/internal/models"
)

func TestSQLiteSource_SaveAndItems(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "catalog.db")
	src, err := NewSQLiteSource(dbPath, "")
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	ctx := context.Background()
	items := []models.SearchableItem{
		{
			ID:          "1",
			Name:        "Modern Leather Sofa",
			Description: "Three seats",
			Category:    "Furniture",
			Price:       models.Float64(1299),
			Rating:      models.Float64(4.8),
			ReviewCount: models.Int(324),
			InStock:     models.Bool(true),
			Featured:    true,
		},
		{ID: "2", Name: "Brass Lamp"},
	}
	if err := src.SaveItems(ctx, items); err != nil {
		t.Fatal(err)
	}

	got, err := src.Items(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	sofa := got[0]
	if sofa.Name != "Modern Leather Sofa" || sofa.Category != "Furniture" || sofa.PriceValue() != 1299 {
		t.Errorf("unexpected sofa: %+v", sofa)
	}
	if sofa.ReviewCountValue() != 324 || sofa.InStock == nil || !*sofa.InStock || !sofa.Featured {
		t.Errorf("unexpected sofa flags: %+v", sofa)
	}
	lamp := got[1]
	if lamp.Price != nil || lamp.Rating != nil || lamp.ReviewCount != nil || lamp.InStock != nil || lamp.Featured {
		t.Errorf("NULL columns should stay unset: %+v", lamp)
	}
	if lamp.Description != "" || lamp.Category != "" {
		t.Errorf("unexpected lamp text: %+v", lamp)
	}
}

func TestSQLiteSource_Replace(t *testing.T) {
	src, err := NewSQLiteSource(filepath.Join(t.TempDir(), "catalog.db"), "items")
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	ctx := context.Background()
	if err := src.SaveItems(ctx, []models.SearchableItem{{ID: "1", Name: "Rug"}}); err != nil {
		t.Fatal(err)
	}
	if err := src.SaveItems(ctx, []models.SearchableItem{{ID: "1", Name: "Wool Rug"}}); err != nil {
		t.Fatal(err)
	}

	got, err := src.Items(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Name != "Wool Rug" {
		t.Errorf("expected replaced row, got %+v", got)
	}
}

func TestSQLiteSource_InvalidTable(t *testing.T) {
	_, err := NewSQLiteSource(filepath.Join(t.TempDir(), "catalog.db"), "products; DROP TABLE x")
	if !errors.Is(err, ErrUnsupportedSource) {
		t.Errorf("expected ErrUnsupportedSource, got %v", err)
	}
}
