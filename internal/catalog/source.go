// Package catalog loads catalog items from files and databases and holds the current snapshot.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hyperjump/catalogrank/internal/config"
	"github.com/hyperjump/catalogrank/internal/models"
)

// ErrUnsupportedSource is returned for catalog formats no Source can read.
var ErrUnsupportedSource = errors.New("unsupported catalog source")

// Supported catalog formats.
const (
	FormatJSON   = "json"
	FormatYAML   = "yaml"
	FormatXLSX   = "xlsx"
	FormatSQLite = "sqlite"
)

// Source reads the full list of catalog items.
type Source interface {
	Items(ctx context.Context) ([]models.SearchableItem, error)
	// Path returns the file backing the source.
	Path() string
}

// DetectFormat infers the catalog format from the file extension.
func DetectFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedSource, path)
	}
}

// NewSource returns the Source for cfg. An empty format is inferred from the path.
func NewSource(cfg config.CatalogConfig) (Source, error) {
	format := strings.ToLower(cfg.Format)
	if format == "" {
		detected, err := DetectFormat(cfg.Path)
		if err != nil {
			return nil, err
		}
		format = detected
	}

	switch format {
	case FormatJSON, FormatYAML, "yml":
		return NewFileSource(cfg.Path), nil
	case FormatXLSX:
		return NewXLSXSource(cfg.Path, cfg.Sheet), nil
	case FormatSQLite:
		return NewSQLiteSource(cfg.Path, cfg.Table)
	default:
		return nil, fmt.Errorf("%w: format %q", ErrUnsupportedSource, cfg.Format)
	}
}
