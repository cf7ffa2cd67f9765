package keyword

import (
	"context"
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	blevequery "github.com/blevesearch/bleve/v2/search/query"
	"github.com/hyperjump/catalogrank/internal/models"
)

const defaultFuzziness = 2

// indexedFields are the item fields the candidate index covers.
var indexedFields = []string{"name", "category", "description"}

// BleveIndex narrows a catalog to candidate items with an in-memory Bleve index. It also
// serves as a TermDictionary over every indexed field.
type BleveIndex struct {
	index     bleve.Index
	fuzziness int
}

// BleveOption configures a BleveIndex.
type BleveOption func(*BleveIndex)

// WithFuzziness sets the edit distance used by candidate queries (1 or 2).
func WithFuzziness(f int) BleveOption {
	return func(b *BleveIndex) {
		if f > 0 && f <= 2 {
			b.fuzziness = f
		}
	}
}

// NewBleveIndex creates an empty memory-only index.
func NewBleveIndex(opts ...BleveOption) (*BleveIndex, error) {
	im := bleve.NewIndexMapping()

	docMapping := bleve.NewDocumentMapping()
	textFieldMapping := bleve.NewTextFieldMapping()
	// Standard analyzer (lowercase + tokenize, no stemming) keeps index terms close to what
	// the fuzzy scorer compares, and gives the spell checker real words.
	textFieldMapping.Analyzer = standard.Name
	for _, field := range indexedFields {
		docMapping.AddFieldMappingsAt(field, textFieldMapping)
	}
	im.AddDocumentMapping("item", docMapping)
	im.DefaultType = "item"
	im.DefaultMapping = docMapping

	index, err := bleve.NewMemOnly(im)
	if err != nil {
		return nil, fmt.Errorf("failed to create Bleve index: %w", err)
	}
	b := &BleveIndex{index: index, fuzziness: defaultFuzziness}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

func itemDocument(item models.SearchableItem) map[string]interface{} {
	return map[string]interface{}{
		"name":        item.Name,
		"category":    item.Category,
		"description": item.Description,
	}
}

// IndexItems indexes items in one batch, keyed by item ID. Items without an ID are skipped.
func (b *BleveIndex) IndexItems(ctx context.Context, items []models.SearchableItem) error {
	batch := b.index.NewBatch()
	for _, item := range items {
		if item.ID == "" {
			continue
		}
		if err := batch.Index(item.ID, itemDocument(item)); err != nil {
			return fmt.Errorf("failed to batch item %s: %w", item.ID, err)
		}
	}
	if err := b.index.Batch(batch); err != nil {
		return fmt.Errorf("failed to index items: %w", err)
	}
	return nil
}

// Candidates returns up to limit item IDs loosely matching query. Every term is tried
// as a fuzzy term and as a prefix so partial words still reach the scorer.
func (b *BleveIndex) Candidates(ctx context.Context, query string, limit int) ([]*KeywordResult, error) {
	q := b.buildCandidateQuery(query)
	if q == nil {
		return nil, nil
	}
	req := bleve.NewSearchRequest(q)
	req.Size = limit
	results, err := b.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("Bleve search failed: %w", err)
	}
	out := make([]*KeywordResult, len(results.Hits))
	for i, hit := range results.Hits {
		out[i] = &KeywordResult{ID: hit.ID, Score: hit.Score}
	}
	return out, nil
}

// buildCandidateQuery creates a disjunction of fuzzy and prefix queries per term.
// Returns nil for a blank query.
func (b *BleveIndex) buildCandidateQuery(queryStr string) blevequery.Query {
	terms := Tokenize(queryStr)
	if len(terms) == 0 {
		return nil
	}
	queries := make([]blevequery.Query, 0, len(terms)*2)
	for _, term := range terms {
		fq := bleve.NewFuzzyQuery(term)
		fq.SetFuzziness(b.fuzziness)
		queries = append(queries, fq)
		queries = append(queries, bleve.NewPrefixQuery(term))
	}
	return bleve.NewDisjunctionQuery(queries...)
}

// Close closes the Bleve index.
func (b *BleveIndex) Close() error {
	return b.index.Close()
}

// DocCount returns the total number of items in the index.
func (b *BleveIndex) DocCount() (uint64, error) {
	return b.index.DocCount()
}

// GetAllTerms returns all unique terms from the name, category and description dictionaries.
// This is used as the spell checking vocabulary.
func (b *BleveIndex) GetAllTerms() ([]string, error) {
	terms := make([]string, 0)
	seen := make(map[string]struct{})

	for _, field := range indexedFields {
		dict, err := b.index.FieldDict(field)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s dictionary: %w", field, err)
		}
		for {
			entry, err := dict.Next()
			if err != nil || entry == nil {
				break
			}
			if _, ok := seen[entry.Term]; !ok {
				terms = append(terms, entry.Term)
				seen[entry.Term] = struct{}{}
			}
		}
		_ = dict.Close()
	}

	return terms, nil
}
