// Package scanner enumerates the straight-line letter runs of a grid and
// tests every prefix of every run against a lexicon.
package scanner

import (
	"context"
	"log/slog"
	"unicode"

	"github.com/mcoot/wordgrid/internal/model"
)

// MinWordLength is the shortest word the scanner reports
const MinWordLength = 3

// Lexicon is the word source consulted while scanning
type Lexicon interface {
	Contains(word string) bool
	IsDefinedWord(ctx context.Context, word string) (bool, string)
}

// prefixMatcher is implemented by lexicons that can tell whether any word
// starts with a prefix. Runs are abandoned as soon as no word can match.
type prefixMatcher interface {
	HasPrefix(prefix string) bool
}

// Grid is the read-only view of a letter grid the scanner needs
type Grid interface {
	Dimensions() (rows, cols int)
	LetterAt(pos model.Position) rune
}

// Stats counts the work done by one scan
type Stats struct {
	Runs       int // Non-empty letter runs walked
	Candidates int // Lexicon-confirmed candidates sent to the definition check
	Confirmed  int // Candidates that passed the definition check
}

// Scanner walks grids in a fixed order: row-major origin, then direction
// (right, down, left, up), then increasing length
type Scanner struct {
	lexicon Lexicon
	prefix  prefixMatcher
	logger  *slog.Logger
}

// New creates a Scanner over the given lexicon
func New(lexicon Lexicon, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Scanner{
		lexicon: lexicon,
		logger:  logger,
	}
	if pm, ok := lexicon.(prefixMatcher); ok {
		s.prefix = pm
	}
	return s
}

// Candidates returns every lexicon-confirmed candidate in discovery order
// without consulting the definition source
func (s *Scanner) Candidates(grid Grid) []model.Candidate {
	var out []model.Candidate
	s.walk(grid, func(c model.Candidate) {
		out = append(out, c)
	})
	return out
}

// Scan emits a Match for every candidate that is in the lexicon and passes the
// definition check, in discovery order. The definition check only runs for
// lexicon-confirmed words; failures drop the candidate.
func (s *Scanner) Scan(ctx context.Context, grid Grid, emit func(model.Match)) Stats {
	var stats Stats
	stats.Runs = s.walk(grid, func(c model.Candidate) {
		stats.Candidates++

		ok, def := s.lexicon.IsDefinedWord(ctx, c.Word)
		if !ok {
			s.logger.Debug("candidate rejected", slog.String("word", c.Word), slog.String("span", c.Span.String()))
			return
		}

		stats.Confirmed++
		emit(model.Match{
			Span:       c.Span,
			Word:       c.Word,
			Direction:  c.Direction,
			Definition: def,
		})
	})
	return stats
}

// walk visits every run and calls found for each prefix the lexicon contains.
// It returns the number of runs walked.
func (s *Scanner) walk(grid Grid, found func(model.Candidate)) int {
	rows, cols := grid.Dimensions()
	runs := 0

	letters := make([]rune, 0, max(rows, cols))
	cells := make([]model.Position, 0, max(rows, cols))

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			origin := model.Position{Row: row, Col: col}
			if grid.LetterAt(origin) == 0 {
				continue
			}

			for _, dir := range model.Directions {
				letters, cells = collectRun(grid, origin, dir, letters[:0], cells[:0])
				runs++
				s.testPrefixes(letters, cells, dir, found)
			}
		}
	}
	return runs
}

// collectRun walks from origin in dir until an empty cell or the edge
func collectRun(grid Grid, origin model.Position, dir model.Direction, letters []rune, cells []model.Position) ([]rune, []model.Position) {
	dRow, dCol := dir.Delta()
	pos := origin
	for {
		letter := grid.LetterAt(pos)
		if letter == 0 {
			return letters, cells
		}
		letters = append(letters, unicode.ToLower(letter))
		cells = append(cells, pos)
		pos = model.Position{Row: pos.Row + dRow, Col: pos.Col + dCol}
	}
}

func (s *Scanner) testPrefixes(letters []rune, cells []model.Position, dir model.Direction, found func(model.Candidate)) {
	for n := 1; n <= len(letters); n++ {
		word := string(letters[:n])

		if s.prefix != nil && !s.prefix.HasPrefix(word) {
			return
		}
		if n < MinWordLength {
			continue
		}
		if !s.lexicon.Contains(word) {
			continue
		}

		found(model.Candidate{
			Span:      model.Span{Start: cells[0], End: cells[n-1]},
			Word:      word,
			Direction: dir,
		})
	}
}
