package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hyperjump/catalogrank/internal/models"
)

// FileSource reads items from a JSON or YAML document. The document is either a list of
// items or an object with an "items" list.
type FileSource struct {
	path string
}

// NewFileSource creates a source for the JSON or YAML file at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Path returns the catalog file path.
func (s *FileSource) Path() string {
	return s.path
}

type itemsDocument struct {
	Items []models.SearchableItem `json:"items" yaml:"items"`
}

// Items reads and decodes the file.
func (s *FileSource) Items(ctx context.Context) ([]models.SearchableItem, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".yaml", ".yml":
		return decodeYAML(data)
	default:
		return decodeJSON(data)
	}
}

func decodeJSON(data []byte) ([]models.SearchableItem, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		var doc itemsDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse catalog: %w", err)
		}
		return doc.Items, nil
	}
	var items []models.SearchableItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return items, nil
}

func decodeYAML(data []byte) ([]models.SearchableItem, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}
	if node.Content[0].Kind == yaml.MappingNode {
		var doc itemsDocument
		if err := node.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to parse catalog: %w", err)
		}
		return doc.Items, nil
	}
	var items []models.SearchableItem
	if err := node.Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return items, nil
}
