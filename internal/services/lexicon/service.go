package lexicon

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/mcoot/wordgrid/internal/model"
	"github.com/mcoot/wordgrid/internal/services/definition"
	"github.com/mcoot/wordgrid/internal/storage"
)

// MinWordLength is the shortest word kept in the lexicon
const MinWordLength = 3

// Service is the in-memory word set used for membership tests, plus the
// definition lookup used to confirm that a member is a real word
type Service struct {
	storage storage.Storage
	lookup  definition.LookupFunc
	logger  *slog.Logger

	mu     sync.RWMutex
	trie   *patricia.Trie
	count  int
	loaded bool
}

// New creates a new lexicon Service. lookup backs IsDefinedWord.
func New(storage storage.Storage, lookup definition.LookupFunc, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		storage: storage,
		lookup:  lookup,
		logger:  logger,
		trie:    patricia.NewTrie(),
	}
}

// LoadFromStorage loads lexicon words from storage
func (s *Service) LoadFromStorage(ctx context.Context) error {
	words, err := s.storage.GetLexiconWords(ctx)
	if err != nil {
		return err
	}
	s.loadWords(words, "storage")
	return nil
}

// LoadFromFile loads lexicon words from a file (one word per line) and
// saves the normalised list to storage for future use
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	words, err := readWords(file)
	if err != nil {
		return fmt.Errorf("read lexicon %s: %w", path, err)
	}

	if err := s.storage.SaveLexiconWords(ctx, words); err != nil {
		return err
	}

	s.loadWords(words, path)
	return nil
}

// LoadWords directly loads a slice of words (useful for testing)
func (s *Service) LoadWords(words []string) error {
	s.loadWords(words, "memory")
	return nil
}

func (s *Service) loadWords(words []string, source string) {
	trie := patricia.NewTrie()
	count := 0
	for _, word := range words {
		normalized, ok := Normalize(word)
		if !ok {
			continue
		}
		if trie.Insert(patricia.Prefix(normalized), struct{}{}) {
			count++
		}
	}

	s.mu.Lock()
	s.trie = trie
	s.count = count
	s.loaded = true
	s.mu.Unlock()

	s.logger.Info("lexicon loaded",
		slog.String("source", source),
		slog.Int("words", count),
	)
}

// readWords reads one normalised word per line, dropping unusable entries
func readWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if word, ok := Normalize(scanner.Text()); ok {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// Normalize lower-cases a wordlist entry and reports whether it is usable:
// at least MinWordLength letters, all a-z
func Normalize(word string) (string, bool) {
	word = strings.ToLower(strings.TrimSpace(word))
	if len(word) < MinWordLength {
		return "", false
	}
	for i := 0; i < len(word); i++ {
		if word[i] < 'a' || word[i] > 'z' {
			return "", false
		}
	}
	return word, true
}

// Contains reports whether the word is in the lexicon. Case-insensitive,
// exact match only.
func (s *Service) Contains(word string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return false
	}
	return s.trie.Match(patricia.Prefix(strings.ToLower(word)))
}

// HasPrefix reports whether any lexicon word starts with prefix
func (s *Service) HasPrefix(prefix string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return false
	}
	return s.trie.MatchSubtree(patricia.Prefix(strings.ToLower(prefix)))
}

// IsDefinedWord asks the definition source whether word is a real word.
// Lookup failures are reported as "not a real word".
func (s *Service) IsDefinedWord(ctx context.Context, word string) (bool, string) {
	if s.lookup == nil {
		return false, ""
	}
	return model.IsRealWord(s.lookup(ctx, strings.ToLower(word)))
}

// IsLoaded returns whether the lexicon has been loaded
func (s *Service) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// WordCount returns the number of words in the lexicon
func (s *Service) WordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}

// Interface check
type ServiceInterface interface {
	Contains(word string) bool
	HasPrefix(prefix string) bool
	IsDefinedWord(ctx context.Context, word string) (bool, string)
	IsLoaded() bool
	WordCount() int
	LoadFromStorage(ctx context.Context) error
	LoadFromFile(ctx context.Context, path string) error
	LoadWords(words []string) error
}

var _ ServiceInterface = (*Service)(nil)

// ErrLexiconNotLoaded is returned when operations are attempted before loading
var ErrLexiconNotLoaded = model.ErrLexiconNotLoaded
