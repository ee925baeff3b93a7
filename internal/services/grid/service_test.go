package grid

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordgrid/internal/dependencies/mocks"
	"github.com/mcoot/wordgrid/internal/model"
	"github.com/mcoot/wordgrid/internal/storage/memory"
	"github.com/mcoot/wordgrid/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	ids     *mocks.MockIDs
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.ids = mocks.NewMockIDs()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.ids, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) createGrid(rows, cols int) *model.Grid {
	g, err := s.service.CreateGrid(s.ctx, rows, cols)
	s.Require().NoError(err)
	return g
}

// CreateGrid tests

func (s *ServiceSuite) TestCreateGridSucceeds() {
	s.ids.Queue("grid-1")

	g, err := s.service.CreateGrid(s.ctx, 5, 5)
	s.Require().NoError(err)

	s.Equal(model.GridID("grid-1"), g.ID)
	s.Equal(5, g.Rows)
	s.Equal(5, g.Cols)
	s.Equal(25, g.EmptyCount())
	s.Equal(s.clock.Now(), g.CreatedAt)
}

func (s *ServiceSuite) TestCreateGridIsPersisted() {
	g := s.createGrid(3, 4)

	retrieved, err := s.service.GetGrid(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(3, retrieved.Rows)
	s.Equal(4, retrieved.Cols)
}

func (s *ServiceSuite) TestCreateGridInvalidSize() {
	for _, size := range [][2]int{{0, 5}, {5, 0}, {27, 5}, {-1, -1}} {
		_, err := s.service.CreateGrid(s.ctx, size[0], size[1])
		s.ErrorIs(err, model.ErrInvalidGridSize)
	}
}

// GetGrid tests

func (s *ServiceSuite) TestGetGridNotFound() {
	_, err := s.service.GetGrid(s.ctx, "missing")
	s.ErrorIs(err, model.ErrGridNotFound)
}

// SetCell tests

func (s *ServiceSuite) TestSetCellStoresUppercaseLetter() {
	g := s.createGrid(3, 3)

	letter, err := s.service.SetCell(s.ctx, g.ID, model.Position{Row: 1, Col: 2}, "q")
	s.Require().NoError(err)
	s.Equal('Q', letter)

	retrieved, _ := s.service.GetGrid(s.ctx, g.ID)
	s.Equal('Q', retrieved.LetterAt(model.Position{Row: 1, Col: 2}))
}

func (s *ServiceSuite) TestSetCellUsesFirstCharacter() {
	g := s.createGrid(3, 3)

	letter, err := s.service.SetCell(s.ctx, g.ID, model.Position{Row: 0, Col: 0}, "help")
	s.Require().NoError(err)
	s.Equal('H', letter)
}

func (s *ServiceSuite) TestSetCellNonLetterClearsCell() {
	g := s.createGrid(3, 3)
	pos := model.Position{Row: 0, Col: 0}
	_, _ = s.service.SetCell(s.ctx, g.ID, pos, "A")

	for _, input := range []string{"1", "?", "", " ", "é"} {
		_, _ = s.service.SetCell(s.ctx, g.ID, pos, "A")

		letter, err := s.service.SetCell(s.ctx, g.ID, pos, input)
		s.Require().NoError(err)
		s.Zero(letter, input)

		retrieved, _ := s.service.GetGrid(s.ctx, g.ID)
		s.True(retrieved.IsEmpty(pos), input)
	}
}

func (s *ServiceSuite) TestSetCellInvalidPosition() {
	g := s.createGrid(3, 3)

	_, err := s.service.SetCell(s.ctx, g.ID, model.Position{Row: 3, Col: 0}, "A")
	s.ErrorIs(err, model.ErrInvalidPosition)
}

func (s *ServiceSuite) TestSetCellUpdatesTimestamp() {
	g := s.createGrid(3, 3)
	s.clock.Advance(time.Minute)

	_, err := s.service.SetCell(s.ctx, g.ID, model.Position{Row: 0, Col: 0}, "A")
	s.Require().NoError(err)

	retrieved, _ := s.service.GetGrid(s.ctx, g.ID)
	s.Equal(g.CreatedAt.Add(time.Minute), retrieved.UpdatedAt)
	s.Equal(g.CreatedAt, retrieved.CreatedAt)
}

func (s *ServiceSuite) TestSetCellGridNotFound() {
	_, err := s.service.SetCell(s.ctx, "missing", model.Position{}, "A")
	s.ErrorIs(err, model.ErrGridNotFound)
}

// ClearCell tests

func (s *ServiceSuite) TestClearCell() {
	g := s.createGrid(3, 3)
	pos := model.Position{Row: 2, Col: 2}
	_, _ = s.service.SetCell(s.ctx, g.ID, pos, "Z")

	s.Require().NoError(s.service.ClearCell(s.ctx, g.ID, pos))

	retrieved, _ := s.service.GetGrid(s.ctx, g.ID)
	s.True(retrieved.IsEmpty(pos))
}

func (s *ServiceSuite) TestClearCellInvalidPosition() {
	g := s.createGrid(3, 3)
	s.ErrorIs(s.service.ClearCell(s.ctx, g.ID, model.Position{Row: -1, Col: 0}), model.ErrInvalidPosition)
}

// Fill tests

func (s *ServiceSuite) TestFill() {
	g := s.createGrid(3, 4)

	filled, err := s.service.Fill(s.ctx, g.ID, []string{"help", "a...", "m"})
	s.Require().NoError(err)
	s.Equal([]string{"HELP", "A...", "M..."}, filled.Lines())

	retrieved, _ := s.service.GetGrid(s.ctx, g.ID)
	s.Equal(filled.Lines(), retrieved.Lines())
}

func (s *ServiceSuite) TestFillReplacesExistingLetters() {
	g := s.createGrid(2, 2)
	_, _ = s.service.Fill(s.ctx, g.ID, []string{"ab", "cd"})

	filled, err := s.service.Fill(s.ctx, g.ID, []string{"x"})
	s.Require().NoError(err)
	s.Equal([]string{"X.", ".."}, filled.Lines())
}

func (s *ServiceSuite) TestFillRejectsInvalidInput() {
	g := s.createGrid(2, 2)
	_, _ = s.service.Fill(s.ctx, g.ID, []string{"ab", "cd"})

	_, err := s.service.Fill(s.ctx, g.ID, []string{"a1"})
	s.ErrorIs(err, model.ErrInvalidLetter)

	_, err = s.service.Fill(s.ctx, g.ID, []string{"abc"})
	s.ErrorIs(err, model.ErrInvalidGridSize)

	retrieved, _ := s.service.GetGrid(s.ctx, g.ID)
	s.Equal([]string{"AB", "CD"}, retrieved.Lines())
}

// Resize tests

func (s *ServiceSuite) TestResizeKeepsOverlap() {
	g := s.createGrid(3, 3)
	_, _ = s.service.Fill(s.ctx, g.ID, []string{"abc", "def", "ghi"})

	resized, err := s.service.Resize(s.ctx, g.ID, 2, 4)
	s.Require().NoError(err)
	s.Equal([]string{"ABC.", "DEF."}, resized.Lines())
}

func (s *ServiceSuite) TestResizeInvalidSize() {
	g := s.createGrid(3, 3)

	_, err := s.service.Resize(s.ctx, g.ID, 0, 3)
	s.ErrorIs(err, model.ErrInvalidGridSize)
}

// DeleteGrid tests

func (s *ServiceSuite) TestDeleteGrid() {
	g := s.createGrid(3, 3)

	s.Require().NoError(s.service.DeleteGrid(s.ctx, g.ID))

	_, err := s.service.GetGrid(s.ctx, g.ID)
	s.ErrorIs(err, model.ErrGridNotFound)
}

func (s *ServiceSuite) TestDeleteGridNotFound() {
	s.ErrorIs(s.service.DeleteGrid(s.ctx, "missing"), model.ErrGridNotFound)
}

// View tests

func (s *ServiceSuite) TestViewPassesStoredGrid() {
	g := s.createGrid(2, 2)
	_, _ = s.service.Fill(s.ctx, g.ID, []string{"ab"})

	var seen []string
	err := s.service.View(s.ctx, g.ID, func(grid *model.Grid) error {
		seen = grid.Lines()
		return nil
	})
	s.Require().NoError(err)
	s.Equal([]string{"AB", ".."}, seen)
}

func (s *ServiceSuite) TestViewBlocksEdits() {
	g := s.createGrid(2, 2)
	pos := model.Position{Row: 0, Col: 0}

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		_ = s.service.View(s.ctx, g.ID, func(*model.Grid) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = s.service.SetCell(s.ctx, g.ID, pos, "A")
		close(done)
	}()

	select {
	case <-done:
		s.Fail("edit completed while the grid was being viewed")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	wg.Wait()

	retrieved, _ := s.service.GetGrid(s.ctx, g.ID)
	s.Equal('A', retrieved.LetterAt(pos))
}

// Lock tests

func (s *ServiceSuite) TestLocksReleasedForUnknownGrids() {
	pos := model.Position{Row: 0, Col: 0}
	for i := 0; i < 100; i++ {
		id := model.GridID("missing-" + strconv.Itoa(i))
		_, err := s.service.SetCell(s.ctx, id, pos, "A")
		s.ErrorIs(err, model.ErrGridNotFound)
		s.ErrorIs(s.service.View(s.ctx, id, func(*model.Grid) error { return nil }), model.ErrGridNotFound)
		s.ErrorIs(s.service.DeleteGrid(s.ctx, id), model.ErrGridNotFound)
	}

	s.Zero(s.service.lockCount())
}

func (s *ServiceSuite) TestLocksReleasedAfterEdits() {
	g := s.createGrid(2, 2)
	_, err := s.service.SetCell(s.ctx, g.ID, model.Position{Row: 1, Col: 1}, "z")
	s.Require().NoError(err)
	s.Require().NoError(s.service.View(s.ctx, g.ID, func(*model.Grid) error { return nil }))

	s.Zero(s.service.lockCount())
}

func (s *ServiceSuite) TestLockHeldWhileViewing() {
	g := s.createGrid(2, 2)

	err := s.service.View(s.ctx, g.ID, func(*model.Grid) error {
		s.Equal(1, s.service.lockCount())
		return nil
	})
	s.Require().NoError(err)
	s.Zero(s.service.lockCount())
}

// NormalizeInput tests

func (s *ServiceSuite) TestNormalizeInput() {
	s.Equal('A', NormalizeInput("a"))
	s.Equal('B', NormalizeInput("Bc"))
	s.Zero(NormalizeInput(""))
	s.Zero(NormalizeInput("-"))
	s.Zero(NormalizeInput("ß"))
}
