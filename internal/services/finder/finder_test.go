package finder

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordgrid/internal/dependencies/mocks"
	"github.com/mcoot/wordgrid/internal/model"
	"github.com/mcoot/wordgrid/internal/services/definition"
	"github.com/mcoot/wordgrid/internal/services/grid"
	"github.com/mcoot/wordgrid/internal/services/lexicon"
	"github.com/mcoot/wordgrid/internal/storage/memory"
	"github.com/mcoot/wordgrid/internal/testutil"
)

type FinderSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	lexicon *lexicon.Service
	grids   *grid.Service
	engine  *Engine
	service *Service
	ctx     context.Context
}

func TestFinderSuite(t *testing.T) {
	suite.Run(t, new(FinderSuite))
}

func (s *FinderSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	logger := testutil.NopLogger()

	lookup := definition.Static(map[string]string{
		"help": "to assist",
		"ham":  "cured pork",
		"stop": "to halt",
		"pots": "containers",
	})
	s.lexicon = lexicon.New(s.storage, lookup, logger)
	s.Require().NoError(s.lexicon.LoadWords([]string{"he", "help", "ham", "aah", "stop", "pots"}))

	s.grids = grid.New(s.storage, mocks.NewMockIDs(), s.clock, logger)
	s.engine = NewEngine(s.lexicon, s.clock, logger)
	s.service = New(s.engine, s.grids, s.storage, logger)
	s.ctx = context.Background()
}

func (s *FinderSuite) parse(rows ...string) *model.Grid {
	g, err := model.ParseGrid("grid-1", rows)
	s.Require().NoError(err)
	return g
}

// Engine tests

func (s *FinderSuite) TestEngineSingleWord() {
	result := s.engine.Scan(s.ctx, s.parse("HELP--"))

	s.Require().Len(result.Matches, 1)
	m := result.Matches[0]
	s.Equal("help", m.Word)
	s.Equal("to assist", m.Definition)
	s.Equal(model.Span{Start: model.Position{Row: 0, Col: 0}, End: model.Position{Row: 0, Col: 3}}, m.Span)
	s.Equal(model.GridID("grid-1"), result.GridID)
	s.Equal(1, result.Rows)
	s.Equal(6, result.Cols)
}

func (s *FinderSuite) TestEngineHighlights() {
	result := s.engine.Scan(s.ctx, s.parse("HELP", "A...", "M..."))

	s.Equal([]string{"help", "ham"}, result.Words())
	s.Equal([][]bool{
		{true, true, true, true},
		{true, false, false, false},
		{true, false, false, false},
	}, result.Highlights)
}

func (s *FinderSuite) TestEngineFreshHighlightsEachScan() {
	g := s.parse("HELP", "A...", "M...")
	first := s.engine.Scan(s.ctx, g)
	s.True(first.IsHighlighted(model.Position{Row: 0, Col: 3}))

	s.Require().NoError(g.Fill([]string{"HEL.", "A...", "M..."}))
	second := s.engine.Scan(s.ctx, g)

	s.False(second.IsHighlighted(model.Position{Row: 0, Col: 3}))
	s.False(second.IsHighlighted(model.Position{Row: 0, Col: 1}))
	s.True(second.IsHighlighted(model.Position{Row: 2, Col: 0}))
	s.True(first.IsHighlighted(model.Position{Row: 0, Col: 3}))
}

func (s *FinderSuite) TestEngineUndefinedWordIsDropped() {
	result := s.engine.Scan(s.ctx, s.parse("AAH"))

	s.Empty(result.Matches)
	s.Equal(1, result.Candidates)
}

func (s *FinderSuite) TestEngineEmptyLexicon() {
	engine := NewEngine(lexicon.New(s.storage, definition.Permissive(), nil), s.clock, nil)

	result := engine.Scan(s.ctx, s.parse("HELP"))

	s.Empty(result.Matches)
	s.Zero(result.Candidates)
}

func (s *FinderSuite) TestEngineIsDeterministic() {
	g := s.parse("STOP", "H...", "A...", "M...")

	s.Equal(s.engine.Scan(s.ctx, g), s.engine.Scan(s.ctx, g))
}

func (s *FinderSuite) TestEngineTimestamps() {
	result := s.engine.Scan(s.ctx, s.parse("HELP"))

	s.Equal(s.clock.Now(), result.StartedAt)
	s.Equal(s.clock.Now(), result.FinishedAt)
}

// Service tests

func (s *FinderSuite) TestScanGridStoresResult() {
	g, err := s.grids.CreateGrid(s.ctx, 2, 4)
	s.Require().NoError(err)
	_, err = s.grids.Fill(s.ctx, g.ID, []string{"STOP"})
	s.Require().NoError(err)

	result, err := s.service.ScanGrid(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal([]string{"stop", "pots"}, result.Words())

	last, err := s.service.LastResult(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(result.Words(), last.Words())
	s.Equal(result.Highlights, last.Highlights)
}

func (s *FinderSuite) TestScanGridNotFound() {
	_, err := s.service.ScanGrid(s.ctx, "missing")
	s.ErrorIs(err, model.ErrGridNotFound)
}

func (s *FinderSuite) TestLastResultBeforeScan() {
	g, err := s.grids.CreateGrid(s.ctx, 2, 2)
	s.Require().NoError(err)

	_, err = s.service.LastResult(s.ctx, g.ID)
	s.ErrorIs(err, model.ErrScanResultNotFound)
}

func (s *FinderSuite) TestLastResultReplacedByRescan() {
	g, _ := s.grids.CreateGrid(s.ctx, 1, 4)
	_, _ = s.grids.Fill(s.ctx, g.ID, []string{"HELP"})
	_, err := s.service.ScanGrid(s.ctx, g.ID)
	s.Require().NoError(err)

	_, _ = s.grids.Fill(s.ctx, g.ID, []string{"STOP"})
	_, err = s.service.ScanGrid(s.ctx, g.ID)
	s.Require().NoError(err)

	last, err := s.service.LastResult(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal([]string{"stop", "pots"}, last.Words())
}

func (s *FinderSuite) TestScanLogsSummary() {
	logger, buf := testutil.BufferLogger()
	engine := NewEngine(s.lexicon, s.clock, logger)

	engine.Scan(s.ctx, s.parse("HELP", "A...", "M..."))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	s.Require().Len(lines, 2)

	var entry map[string]any
	s.Require().NoError(json.Unmarshal([]byte(lines[1]), &entry))
	s.Equal("scan finished", entry["msg"])
	s.Equal("grid-1", entry["grid_id"])
	s.EqualValues(2, entry["candidates"])
	s.EqualValues(2, entry["matches"])
}
