package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/hyperjump/catalogrank/internal/catalog"
	"github.com/hyperjump/catalogrank/internal/models"
)

// SupportedFormats lists the catalog formats WriteCatalog can produce.
var SupportedFormats = []string{
	catalog.FormatJSON,
	catalog.FormatYAML,
	catalog.FormatXLSX,
	catalog.FormatSQLite,
}

var formatExt = map[string]string{
	catalog.FormatJSON:   ".json",
	catalog.FormatYAML:   ".yaml",
	catalog.FormatXLSX:   ".xlsx",
	catalog.FormatSQLite: ".db",
}

// FixtureTable is the SQLite table WriteCatalog fills.
const FixtureTable = "products"

// WriteCatalog writes items to dir in the given format and returns the file path.
func WriteCatalog(ctx context.Context, dir, format string, items []models.SearchableItem) (string, error) {
	ext, ok := formatExt[format]
	if !ok {
		return "", fmt.Errorf("unknown format %q", format)
	}
	path := filepath.Join(dir, "catalog"+ext)

	switch format {
	case catalog.FormatJSON:
		data, err := json.MarshalIndent(map[string]interface{}{"items": items}, "", "  ")
		if err != nil {
			return "", err
		}
		return path, os.WriteFile(path, data, 0600)
	case catalog.FormatYAML:
		data, err := yaml.Marshal(items)
		if err != nil {
			return "", err
		}
		return path, os.WriteFile(path, data, 0600)
	case catalog.FormatXLSX:
		return path, writeWorkbook(path, items)
	default:
		src, err := catalog.NewSQLiteSource(path, FixtureTable)
		if err != nil {
			return "", err
		}
		defer src.Close()
		return path, src.SaveItems(ctx, items)
	}
}

func writeWorkbook(path string, items []models.SearchableItem) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	header := []interface{}{"SKU", "Name", "Description", "Category", "Price", "Rating", "Reviews", "In Stock", "Featured"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, item := range items {
		row := []interface{}{
			item.ID, item.Name, item.Description, item.Category,
			optional(item.Price), optional(item.Rating), optional(item.ReviewCount),
			optional(item.InStock), item.Featured,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

// optional renders a nil pointer as a blank cell.
func optional[T any](v *T) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
