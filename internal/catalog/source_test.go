package catalog

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/hyperjump/catalogrank/internal/config"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"catalog.json", FormatJSON, false},
		{"catalog.YAML", FormatYAML, false},
		{"catalog.yml", FormatYAML, false},
		{"products.xlsx", FormatXLSX, false},
		{"products.db", FormatSQLite, false},
		{"products.sqlite3", FormatSQLite, false},
		{"catalog.csv", "", true},
		{"catalog", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedSource) {
					t.Errorf("DetectFormat(%q) error = %v, want ErrUnsupportedSource", tt.path, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("DetectFormat(%q) = %q, %v, want %q", tt.path, got, err, tt.want)
			}
		})
	}
}

func TestNewSource(t *testing.T) {
	dir := t.TempDir()

	src, err := NewSource(config.CatalogConfig{Path: filepath.Join(dir, "c.json")})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := src.(*FileSource); !ok {
		t.Errorf("expected *FileSource, got %T", src)
	}

	src, err = NewSource(config.CatalogConfig{Path: filepath.Join(dir, "c.bin"), Format: "xlsx", Sheet: "Items"})
	if err != nil {
		t.Fatal(err)
	}
	if x, ok := src.(*XLSXSource); !ok || x.sheet != "Items" {
		t.Errorf("expected *XLSXSource for sheet Items, got %#v", src)
	}

	src, err = NewSource(config.CatalogConfig{Path: filepath.Join(dir, "c.db"), Table: "items"})
	if err != nil {
		t.Fatal(err)
	}
	sq, ok := src.(*SQLiteSource)
	if !ok {
		t.Fatalf("expected *SQLiteSource, got %T", src)
	}
	_ = sq.Close()

	if _, err := NewSource(config.CatalogConfig{Path: "c.json", Format: "parquet"}); !errors.Is(err, ErrUnsupportedSource) {
		t.Errorf("expected ErrUnsupportedSource, got %v", err)
	}
}
