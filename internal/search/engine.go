// Package search runs ranked catalog searches over the current catalog snapshot.
package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/catalogrank/internal/catalog"
	"github.com/hyperjump/catalogrank/internal/config"
	"github.com/hyperjump/catalogrank/internal/keyword"
	"github.com/hyperjump/catalogrank/internal/models"
	"github.com/hyperjump/catalogrank/internal/ranking"
)

// Engine ranks catalog items for search requests. Large catalogs are narrowed to keyword
// candidates before ranking.
type Engine struct {
	store   *catalog.Store
	ranker  *ranking.Ranker
	checker *keyword.SpellChecker
	config  *config.SearchConfig
	logger  *zap.Logger

	mu       sync.RWMutex
	snapshot []models.SearchableItem
	position map[string]int
	index    *keyword.BleveIndex
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l *zap.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine creates a search engine over store. Call Rebuild (or Reload) before searching
// so the engine picks up the store's snapshot.
func NewEngine(store *catalog.Store, cfg *config.SearchConfig, scoring ranking.ScoringConfig, opts ...EngineOption) *Engine {
	ranker := ranking.NewRanker(&scoring)
	e := &Engine{
		store:  store,
		ranker: ranker,
		checker: keyword.NewSpellChecker(store,
			keyword.WithRules(ranker.GetConfig().Fuzzy),
			keyword.WithThreshold(cfg.SuggestionThreshold),
		),
		config: cfg,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Reload re-reads the store's source and rebuilds the engine state.
func (e *Engine) Reload(ctx context.Context) (int, error) {
	n, err := e.store.Reload(ctx)
	if err != nil {
		return 0, err
	}
	if err := e.Rebuild(ctx); err != nil {
		return 0, err
	}
	return n, nil
}

// Replace installs items as the catalog and rebuilds the engine state.
func (e *Engine) Replace(ctx context.Context, items []models.SearchableItem) error {
	e.store.Replace(items)
	return e.Rebuild(ctx)
}

// Rebuild takes the store's current snapshot. Catalogs above the prefilter threshold
// get a fresh keyword index; smaller ones are ranked in full.
func (e *Engine) Rebuild(ctx context.Context) error {
	items := e.store.Items()
	position := make(map[string]int, len(items))
	for i, item := range items {
		position[item.ID] = i
	}

	var index *keyword.BleveIndex
	if len(items) > e.config.PrefilterThreshold {
		idx, err := keyword.NewBleveIndex(keyword.WithFuzziness(e.config.Fuzziness))
		if err != nil {
			return err
		}
		if err := idx.IndexItems(ctx, items); err != nil {
			_ = idx.Close()
			return err
		}
		index = idx
	}

	e.mu.Lock()
	old := e.index
	e.snapshot = items
	e.position = position
	e.index = index
	e.mu.Unlock()

	// The prefilter index also holds description terms, so did-you-mean uses it when present.
	var dict keyword.TermDictionary = e.store
	if index != nil {
		dict = index
	}
	e.checker.SetDictionary(dict)
	if old != nil {
		_ = old.Close()
	}

	e.logger.Debug("search engine rebuilt", zap.Int("items", len(items)), zap.Bool("prefilter", index != nil))
	return nil
}

// Search ranks the catalog for req. req is validated and its paging normalized in place.
func (e *Engine) Search(ctx context.Context, req *models.SearchRequest) (*models.SearchResponse, error) {
	startTime := time.Now()
	if err := req.Validate(e.config.DefaultLimit, e.config.MaxLimit); err != nil {
		return nil, err
	}
	e.logger.Debug("search", zap.String("query", req.Query), zap.String("category", req.Category))

	items, prefiltered, err := e.candidates(ctx, req.Query)
	if err != nil {
		return nil, fmt.Errorf("failed to select candidates: %w", err)
	}
	items = filterCategory(items, req.Category)

	ranked := e.ranker.Rank(items, req.Query, req.PriceRange())
	if req.MinScore > 0 {
		ranked = ranking.FilterByMinScore(ranked, req.MinScore)
	}
	page := ranking.Paginate(ranked, req.Offset, req.Limit)
	if page == nil {
		page = []*models.RankedResult{}
	}

	response := &models.SearchResponse{
		Query:       req.Query,
		Results:     page,
		Total:       len(ranked),
		Summary:     ranking.Summarize(ranked),
		Keywords:    keyword.ExtractKeywords(req.Query),
		Prefiltered: prefiltered,
	}
	if e.config.SuggestionsOrDefault() {
		response.Suggestion = e.Suggest(req.Query)
	}
	response.QueryTime = time.Since(startTime).Milliseconds()
	return response, nil
}

// candidates returns the items worth ranking for query, in catalog order.
func (e *Engine) candidates(ctx context.Context, query string) ([]models.SearchableItem, bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.index == nil || strings.TrimSpace(query) == "" {
		return e.snapshot, false, nil
	}

	hits, err := e.index.Candidates(ctx, query, e.config.PrefilterCandidates)
	if err != nil {
		return nil, false, err
	}
	positions := make([]int, 0, len(hits))
	for _, hit := range hits {
		if pos, ok := e.position[hit.ID]; ok {
			positions = append(positions, pos)
		}
	}
	// Catalog order keeps equal scores in a stable, source-defined order.
	sort.Ints(positions)
	items := make([]models.SearchableItem, len(positions))
	for i, pos := range positions {
		items[i] = e.snapshot[pos]
	}
	return items, true, nil
}

func filterCategory(items []models.SearchableItem, category string) []models.SearchableItem {
	category = strings.TrimSpace(category)
	if category == "" {
		return items
	}
	filtered := make([]models.SearchableItem, 0, len(items))
	for _, item := range items {
		if strings.EqualFold(strings.TrimSpace(item.Category), category) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// Suggest returns a did-you-mean query built from the catalog vocabulary, or "".
func (e *Engine) Suggest(query string) string {
	return e.checker.GetSuggestedQuery(query)
}

// SpellCheck returns the full correction result for query.
func (e *Engine) SpellCheck(query string) (*keyword.SpellCheckResult, error) {
	return e.checker.Check(query)
}

// Complete returns up to limit item names fuzzily matching prefix.
func (e *Engine) Complete(prefix string, limit int) []string {
	if limit <= 0 {
		limit = e.config.DefaultLimit
	}
	if e.config.MaxLimit > 0 {
		limit = min(limit, e.config.MaxLimit)
	}
	return keyword.Complete(prefix, e.store.Names(), limit)
}

// Status describes the engine's current catalog.
type Status struct {
	Items     int       `json:"items"`
	Source    string    `json:"source,omitempty"`
	LoadedAt  time.Time `json:"loaded_at"`
	Prefilter bool      `json:"prefilter"`
	IndexDocs uint64    `json:"index_docs,omitempty"`
}

// Status returns the engine's current catalog status.
func (e *Engine) Status() Status {
	e.mu.RLock()
	defer e.mu.RUnlock()

	status := Status{
		Items:     len(e.snapshot),
		LoadedAt:  e.store.LoadedAt(),
		Prefilter: e.index != nil,
	}
	if src := e.store.Source(); src != nil {
		status.Source = src.Path()
	}
	if e.index != nil {
		if n, err := e.index.DocCount(); err == nil {
			status.IndexDocs = n
		}
	}
	return status
}

// Close releases the keyword index.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.index == nil {
		return nil
	}
	err := e.index.Close()
	e.index = nil
	return err
}
