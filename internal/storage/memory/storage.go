package memory

import (
	"context"
	"sync"

	"github.com/mcoot/wordgrid/internal/model"
	"github.com/mcoot/wordgrid/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Grids and results are copied on the way in and out so callers never share
// state with the store.
type Storage struct {
	mu sync.RWMutex

	grids        map[model.GridID]*model.Grid
	scanResults  map[model.GridID]*model.ScanResult
	definitions  map[string]model.CachedDefinition
	lexiconWords []string
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		grids:       make(map[model.GridID]*model.Grid),
		scanResults: make(map[model.GridID]*model.ScanResult),
		definitions: make(map[string]model.CachedDefinition),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Grid operations

func (s *Storage) SaveGrid(ctx context.Context, grid *model.Grid) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grids[grid.ID] = grid.Clone()
	return nil
}

func (s *Storage) GetGrid(ctx context.Context, id model.GridID) (*model.Grid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	grid, ok := s.grids[id]
	if !ok {
		return nil, model.ErrGridNotFound
	}
	return grid.Clone(), nil
}

func (s *Storage) DeleteGrid(ctx context.Context, id model.GridID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.grids, id)
	delete(s.scanResults, id)
	return nil
}

// Scan result operations

func (s *Storage) SaveScanResult(ctx context.Context, result *model.ScanResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scanResults[result.GridID] = copyScanResult(result)
	return nil
}

func (s *Storage) GetScanResult(ctx context.Context, gridID model.GridID) (*model.ScanResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.scanResults[gridID]
	if !ok {
		return nil, model.ErrScanResultNotFound
	}
	return copyScanResult(result), nil
}

// Lexicon operations

func (s *Storage) GetLexiconWords(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lexiconWords == nil {
		return nil, model.ErrLexiconNotLoaded
	}
	result := make([]string, len(s.lexiconWords))
	copy(result, s.lexiconWords)
	return result, nil
}

func (s *Storage) SaveLexiconWords(ctx context.Context, words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(words) == 0 {
		s.lexiconWords = nil
		return nil
	}
	s.lexiconWords = make([]string, len(words))
	copy(s.lexiconWords, words)
	return nil
}

// Definition cache operations

func (s *Storage) GetDefinition(ctx context.Context, word string) (*model.CachedDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	def, ok := s.definitions[word]
	if !ok {
		return nil, model.ErrDefinitionNotCached
	}
	return &def, nil
}

func (s *Storage) SaveDefinition(ctx context.Context, def *model.CachedDefinition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.definitions[def.Word] = *def
	return nil
}

func copyScanResult(r *model.ScanResult) *model.ScanResult {
	out := *r
	out.Matches = append([]model.Match(nil), r.Matches...)
	out.Highlights = make([][]bool, len(r.Highlights))
	for i, row := range r.Highlights {
		out.Highlights[i] = append([]bool(nil), row...)
	}
	return &out
}
