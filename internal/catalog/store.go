package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/catalogrank/internal/keyword"
	"github.com/hyperjump/catalogrank/internal/models"
)

// Store holds the current catalog snapshot. Reloads replace the snapshot as a whole;
// a published slice is never modified, so readers may keep using it after a swap.
type Store struct {
	source Source
	logger *zap.Logger

	mu         sync.RWMutex
	items      []models.SearchableItem
	names      []string
	vocabulary []string
	loadedAt   time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger for reload events.
func WithLogger(l *zap.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore creates an empty store reading from source. A nil source is allowed for
// stores filled only through Replace.
func NewStore(source Source, opts ...StoreOption) *Store {
	s := &Store{
		source: source,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Source returns the store's source, or nil.
func (s *Store) Source() Source {
	return s.source
}

// Reload reads the source and swaps in the new snapshot. On error the previous snapshot is kept.
func (s *Store) Reload(ctx context.Context) (int, error) {
	if s.source == nil {
		return 0, fmt.Errorf("%w: no source configured", ErrUnsupportedSource)
	}
	items, err := s.source.Items(ctx)
	if err != nil {
		s.logger.Warn("catalog reload failed", zap.String("path", s.source.Path()), zap.Error(err))
		return 0, fmt.Errorf("failed to load catalog: %w", err)
	}
	n := s.Replace(items)
	s.logger.Info("catalog loaded", zap.String("path", s.source.Path()), zap.Int("items", n))
	return n, nil
}

// Replace installs a copy of items as the new snapshot and returns its size.
// Items without an ID, or repeating an earlier ID, are given one derived from their
// position and name, so reloading an unchanged catalog keeps the same IDs.
func (s *Store) Replace(items []models.SearchableItem) int {
	snapshot := make([]models.SearchableItem, len(items))
	copy(snapshot, items)

	seen := make(map[string]struct{}, len(snapshot))
	for i := range snapshot {
		id := strings.TrimSpace(snapshot[i].ID)
		if _, dup := seen[id]; id == "" || dup {
			id = derivedID(i, snapshot[i].Name)
		}
		snapshot[i].ID = id
		seen[id] = struct{}{}
	}

	names, vocabulary := buildVocabulary(snapshot)

	s.mu.Lock()
	s.items = snapshot
	s.names = names
	s.vocabulary = vocabulary
	s.loadedAt = time.Now()
	s.mu.Unlock()

	return len(snapshot)
}

// Items returns the current snapshot. Callers must not modify it.
func (s *Store) Items() []models.SearchableItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items
}

// Len returns the number of items in the snapshot.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// LoadedAt returns when the current snapshot was installed; zero before the first load.
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Names returns the distinct item names in catalog order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.names
}

// Vocabulary returns the sorted distinct lower-case words of item names and categories,
// excluding stop words. It is the dictionary for did-you-mean corrections.
func (s *Store) Vocabulary() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vocabulary
}

// GetAllTerms implements keyword.TermDictionary over the vocabulary.
func (s *Store) GetAllTerms() ([]string, error) {
	return s.Vocabulary(), nil
}

func derivedID(position int, name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("catalogrank:%d:%s", position, name))).String()
}

func buildVocabulary(items []models.SearchableItem) (names, vocabulary []string) {
	seenNames := make(map[string]struct{})
	seenWords := make(map[string]struct{})
	for _, item := range items {
		name := strings.TrimSpace(item.Name)
		if _, ok := seenNames[name]; name != "" && !ok {
			seenNames[name] = struct{}{}
			names = append(names, name)
		}
		for _, word := range keyword.Tokenize(item.Name + " " + item.Category) {
			word = strings.Trim(word, ".,;:!?()\"'")
			if word == "" || keyword.IsStopWord(word) {
				continue
			}
			if _, ok := seenWords[word]; !ok {
				seenWords[word] = struct{}{}
				vocabulary = append(vocabulary, word)
			}
		}
	}
	sort.Strings(vocabulary)
	return names, vocabulary
}
