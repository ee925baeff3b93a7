package scanner

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordgrid/internal/model"
	"github.com/mcoot/wordgrid/internal/testutil"
)

// stubLexicon records every call it receives
type stubLexicon struct {
	words         map[string]bool
	definitions   map[string]string
	containsCalls []string
	lookupCalls   []string
}

func newStubLexicon(words []string, definitions map[string]string) *stubLexicon {
	l := &stubLexicon{words: make(map[string]bool), definitions: definitions}
	for _, w := range words {
		l.words[w] = true
	}
	return l
}

func (l *stubLexicon) Contains(word string) bool {
	l.containsCalls = append(l.containsCalls, word)
	return l.words[word]
}

func (l *stubLexicon) IsDefinedWord(_ context.Context, word string) (bool, string) {
	l.lookupCalls = append(l.lookupCalls, word)
	def, ok := l.definitions[word]
	return ok, def
}

// prefixLexicon adds prefix pruning to stubLexicon
type prefixLexicon struct {
	*stubLexicon
}

func (l prefixLexicon) HasPrefix(prefix string) bool {
	for w := range l.words {
		if strings.HasPrefix(w, prefix) {
			return true
		}
	}
	return false
}

type ScannerSuite struct {
	suite.Suite
	ctx context.Context
}

func TestScannerSuite(t *testing.T) {
	suite.Run(t, new(ScannerSuite))
}

func (s *ScannerSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *ScannerSuite) grid(rows ...string) *model.Grid {
	g, err := model.ParseGrid("grid-1", rows)
	s.Require().NoError(err)
	return g
}

func (s *ScannerSuite) scan(lex Lexicon, g *model.Grid) ([]model.Match, Stats) {
	var matches []model.Match
	stats := New(lex, testutil.NopLogger()).Scan(s.ctx, g, func(m model.Match) {
		matches = append(matches, m)
	})
	return matches, stats
}

func span(r1, c1, r2, c2 int) model.Span {
	return model.Span{Start: model.Position{Row: r1, Col: c1}, End: model.Position{Row: r2, Col: c2}}
}

func (s *ScannerSuite) TestSingleWordInRow() {
	lex := newStubLexicon([]string{"he", "help"}, map[string]string{"help": "to assist"})

	matches, stats := s.scan(lex, s.grid("HELP--"))

	s.Require().Len(matches, 1)
	s.Equal(span(0, 0, 0, 3), matches[0].Span)
	s.Equal("help", matches[0].Word)
	s.Equal(model.DirectionRight, matches[0].Direction)
	s.Equal("to assist", matches[0].Definition)
	s.Equal(1, stats.Candidates)
	s.Equal(1, stats.Confirmed)

	s.NotContains(lex.containsCalls, "he")
	s.Equal([]string{"help"}, lex.lookupCalls)
}

func (s *ScannerSuite) TestEmptyGridMakesNoCalls() {
	lex := newStubLexicon([]string{"help"}, map[string]string{"help": ""})

	matches, stats := s.scan(lex, s.grid("...", "...", "..."))

	s.Empty(matches)
	s.Zero(stats.Runs)
	s.Empty(lex.containsCalls)
	s.Empty(lex.lookupCalls)
}

func (s *ScannerSuite) TestTwoLetterWordsAreNeverReported() {
	lex := newStubLexicon([]string{"he", "eh"}, map[string]string{"he": "", "eh": ""})

	matches, _ := s.scan(lex, s.grid("HE"))

	s.Empty(matches)
	s.Empty(lex.containsCalls)
	s.Empty(lex.lookupCalls)
}

func (s *ScannerSuite) TestEveryPrefixIsTested() {
	lex := newStubLexicon([]string{"help"}, map[string]string{"help": ""})

	matches, _ := s.scan(lex, s.grid("HELPFUL"))

	s.Require().Len(matches, 1)
	s.Equal(span(0, 0, 0, 3), matches[0].Span)
	s.Subset(lex.containsCalls, []string{"hel", "help", "helpf", "helpfu", "helpful"})
}

func (s *ScannerSuite) TestDirectionsAreIndependent() {
	lex := newStubLexicon([]string{"stop", "pots"}, map[string]string{"stop": "", "pots": ""})

	matches, _ := s.scan(lex, s.grid("STOP"))

	s.Require().Len(matches, 2)
	s.Equal("stop", matches[0].Word)
	s.Equal(span(0, 0, 0, 3), matches[0].Span)
	s.Equal(model.DirectionRight, matches[0].Direction)
	s.Equal("pots", matches[1].Word)
	s.Equal(span(0, 3, 0, 0), matches[1].Span)
	s.Equal(model.DirectionLeft, matches[1].Direction)
}

func (s *ScannerSuite) TestOverlappingWordsAreBothReported() {
	lex := newStubLexicon([]string{"help", "ham"}, map[string]string{"help": "", "ham": ""})

	matches, _ := s.scan(lex, s.grid("HELP", "A...", "M..."))

	s.Require().Len(matches, 2)
	s.Equal(span(0, 0, 0, 3), matches[0].Span)
	s.Equal(span(0, 0, 2, 0), matches[1].Span)
	s.Equal(model.DirectionDown, matches[1].Direction)
}

func (s *ScannerSuite) TestDiscoveryOrder() {
	lex := newStubLexicon([]string{"tab", "bat"}, map[string]string{"tab": "", "bat": ""})

	matches, _ := s.scan(lex, s.grid("TAB", "A..", "B.."))

	s.Require().Len(matches, 4)
	s.Equal(span(0, 0, 0, 2), matches[0].Span)
	s.Equal(model.DirectionRight, matches[0].Direction)
	s.Equal(span(0, 0, 2, 0), matches[1].Span)
	s.Equal(model.DirectionDown, matches[1].Direction)
	s.Equal(span(0, 2, 0, 0), matches[2].Span)
	s.Equal(model.DirectionLeft, matches[2].Direction)
	s.Equal(span(2, 0, 0, 0), matches[3].Span)
	s.Equal(model.DirectionUp, matches[3].Direction)
}

func (s *ScannerSuite) TestRunsStopAtEmptyCells() {
	lex := newStubLexicon([]string{"cat", "cats"}, map[string]string{"cat": "", "cats": ""})

	matches, _ := s.scan(lex, s.grid("CAT.S"))

	s.Require().Len(matches, 1)
	s.Equal("cat", matches[0].Word)
	s.NotContains(lex.containsCalls, "cats")
}

func (s *ScannerSuite) TestFailedDefinitionDropsCandidate() {
	lex := newStubLexicon([]string{"aah"}, map[string]string{})

	matches, stats := s.scan(lex, s.grid("AAH"))

	s.Empty(matches)
	s.Equal(1, stats.Candidates)
	s.Zero(stats.Confirmed)
	s.Equal([]string{"aah"}, lex.lookupCalls)
}

func (s *ScannerSuite) TestNoLookupWithoutLexiconMembership() {
	lex := newStubLexicon(nil, map[string]string{"zzz": ""})

	matches, _ := s.scan(lex, s.grid("ZZZ", "ZZZ", "ZZZ"))

	s.Empty(matches)
	s.NotEmpty(lex.containsCalls)
	s.Empty(lex.lookupCalls)
}

func (s *ScannerSuite) TestScanIsDeterministic() {
	lex := newStubLexicon([]string{"tab", "bat", "abba"}, map[string]string{"tab": "", "bat": "", "abba": ""})
	g := s.grid("TAB", "ABB", "BBA")

	first, _ := s.scan(lex, g)
	second, _ := s.scan(lex, g)

	s.NotEmpty(first)
	s.Equal(first, second)
}

func (s *ScannerSuite) TestScanDoesNotMutateGrid() {
	lex := newStubLexicon([]string{"help"}, map[string]string{"help": ""})
	g := s.grid("HELP")
	before := g.Lines()

	_, _ = s.scan(lex, g)

	s.Equal(before, g.Lines())
}

func (s *ScannerSuite) TestPrefixPruning() {
	plain := newStubLexicon([]string{"help"}, map[string]string{"help": ""})
	pruned := prefixLexicon{newStubLexicon([]string{"help"}, map[string]string{"help": ""})}
	g := s.grid("QZHELP")

	plainMatches, _ := s.scan(plain, g)
	prunedMatches, _ := s.scan(pruned, g)

	s.Equal(plainMatches, prunedMatches)
	s.Contains(plain.containsCalls, "qzh")
	s.NotContains(pruned.containsCalls, "qzh")
	s.Less(len(pruned.containsCalls), len(plain.containsCalls))
}

func (s *ScannerSuite) TestCandidatesSkipDefinitionCheck() {
	lex := newStubLexicon([]string{"stop", "pots"}, nil)

	candidates := New(lex, nil).Candidates(s.grid("STOP"))

	s.Require().Len(candidates, 2)
	s.Equal("stop", candidates[0].Word)
	s.Equal("pots", candidates[1].Word)
	s.Empty(lex.lookupCalls)
}
