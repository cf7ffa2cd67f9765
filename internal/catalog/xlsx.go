package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/hyperjump/catalogrank/internal/models"
)

// XLSXSource reads items from a spreadsheet. The first row is the header; every later
// non-empty row is one item.
type XLSXSource struct {
	path  string
	sheet string
}

// NewXLSXSource creates a source for the workbook at path. An empty sheet uses the first sheet.
func NewXLSXSource(path, sheet string) *XLSXSource {
	return &XLSXSource{path: path, sheet: sheet}
}

// Path returns the workbook path.
func (s *XLSXSource) Path() string {
	return s.path
}

// Items reads every item row of the sheet.
func (s *XLSXSource) Items(ctx context.Context) ([]models.SearchableItem, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := s.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows for sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = normalizeColumn(h)
	}

	items := make([]models.SearchableItem, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if blankRow(row) {
			continue
		}
		record := make(map[string]string, len(header))
		for col, cell := range row {
			if col < len(header) {
				record[header[col]] = cell
			}
		}
		item, err := itemFromRecord(record)
		if err != nil {
			// Row numbers are 1-based and include the header.
			return nil, fmt.Errorf("sheet %q row %d: %w", sheet, i+2, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
