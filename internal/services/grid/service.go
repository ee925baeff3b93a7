package grid

import (
	"context"
	"log/slog"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/mcoot/wordgrid/internal/dependencies/clock"
	"github.com/mcoot/wordgrid/internal/dependencies/ids"
	"github.com/mcoot/wordgrid/internal/model"
	"github.com/mcoot/wordgrid/internal/storage"
)

// Service provides grid editing operations. All operations on one grid are
// serialised by a per-grid lock, which View shares with scans.
type Service struct {
	storage storage.Storage
	ids     ids.Generator
	clock   clock.Clock
	logger  *slog.Logger

	mu    sync.Mutex
	locks map[model.GridID]*gridLock
}

// gridLock is a per-grid mutex counted by its holders and waiters. The entry
// is dropped when the count reaches zero.
type gridLock struct {
	mu   sync.Mutex
	refs int
}

// New creates a new grid Service
func New(storage storage.Storage, ids ids.Generator, clock clock.Clock, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		storage: storage,
		ids:     ids,
		clock:   clock,
		logger:  logger,
		locks:   make(map[model.GridID]*gridLock),
	}
}

// lock acquires the lock for a grid and returns its release func
func (s *Service) lock(id model.GridID) func() {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &gridLock{}
		s.locks[id] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, id)
		}
		s.mu.Unlock()
	}
}

// lockCount returns the number of grids with a live lock entry
func (s *Service) lockCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.locks)
}

// CreateGrid creates and stores an empty grid
func (s *Service) CreateGrid(ctx context.Context, rows, cols int) (*model.Grid, error) {
	if err := model.ValidateSize(rows, cols); err != nil {
		return nil, err
	}

	grid := model.NewGrid(model.GridID(s.ids.NewID()), rows, cols)
	grid.CreatedAt = s.clock.Now()
	grid.UpdatedAt = grid.CreatedAt

	if err := s.storage.SaveGrid(ctx, grid); err != nil {
		return nil, err
	}

	s.logger.Info("grid created",
		slog.String("grid_id", string(grid.ID)),
		slog.Int("rows", rows),
		slog.Int("cols", cols),
	)
	return grid, nil
}

// GetGrid retrieves a grid
func (s *Service) GetGrid(ctx context.Context, id model.GridID) (*model.Grid, error) {
	return s.storage.GetGrid(ctx, id)
}

// View loads a grid and calls fn while holding the grid's lock. Edits to the
// same grid wait until fn returns.
func (s *Service) View(ctx context.Context, id model.GridID, fn func(*model.Grid) error) error {
	unlock := s.lock(id)
	defer unlock()

	grid, err := s.storage.GetGrid(ctx, id)
	if err != nil {
		return err
	}
	return fn(grid)
}

// update loads a grid under its lock, applies fn and saves the result
func (s *Service) update(ctx context.Context, id model.GridID, fn func(*model.Grid) (*model.Grid, error)) (*model.Grid, error) {
	unlock := s.lock(id)
	defer unlock()

	grid, err := s.storage.GetGrid(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := fn(grid)
	if err != nil {
		return nil, err
	}
	next.UpdatedAt = s.clock.Now()

	if err := s.storage.SaveGrid(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// NormalizeInput applies the cell input rule: the first character of input,
// upper-cased, if it is A-Z; otherwise 0, meaning the cell is cleared
func NormalizeInput(input string) rune {
	r, _ := utf8.DecodeRuneInString(input)
	if r == utf8.RuneError {
		return 0
	}
	upper := unicode.ToUpper(r)
	if !model.IsLetter(upper) {
		return 0
	}
	return upper
}

// SetCell stores normalised input at pos and returns the stored letter, or 0
// when the input was rejected and the cell cleared
func (s *Service) SetCell(ctx context.Context, id model.GridID, pos model.Position, input string) (rune, error) {
	letter := NormalizeInput(input)
	_, err := s.update(ctx, id, func(g *model.Grid) (*model.Grid, error) {
		if !g.IsValidPosition(pos) {
			return nil, model.ErrInvalidPosition
		}
		g.Set(pos, letter)
		return g, nil
	})
	if err != nil {
		return 0, err
	}
	return letter, nil
}

// ClearCell empties the cell at pos
func (s *Service) ClearCell(ctx context.Context, id model.GridID, pos model.Position) error {
	_, err := s.update(ctx, id, func(g *model.Grid) (*model.Grid, error) {
		if !g.IsValidPosition(pos) {
			return nil, model.ErrInvalidPosition
		}
		g.Clear(pos)
		return g, nil
	})
	return err
}

// Fill replaces the whole grid contents from row strings
func (s *Service) Fill(ctx context.Context, id model.GridID, rows []string) (*model.Grid, error) {
	return s.update(ctx, id, func(g *model.Grid) (*model.Grid, error) {
		if err := g.Fill(rows); err != nil {
			return nil, err
		}
		return g, nil
	})
}

// Resize rebuilds the grid at a new size, keeping letters that still fit
func (s *Service) Resize(ctx context.Context, id model.GridID, rows, cols int) (*model.Grid, error) {
	if err := model.ValidateSize(rows, cols); err != nil {
		return nil, err
	}
	grid, err := s.update(ctx, id, func(g *model.Grid) (*model.Grid, error) {
		return g.Resized(rows, cols), nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("grid resized",
		slog.String("grid_id", string(id)),
		slog.Int("rows", rows),
		slog.Int("cols", cols),
	)
	return grid, nil
}

// DeleteGrid removes a grid and its last scan result
func (s *Service) DeleteGrid(ctx context.Context, id model.GridID) error {
	unlock := s.lock(id)
	defer unlock()

	if _, err := s.storage.GetGrid(ctx, id); err != nil {
		return err
	}
	if err := s.storage.DeleteGrid(ctx, id); err != nil {
		return err
	}

	s.logger.Info("grid deleted", slog.String("grid_id", string(id)))
	return nil
}

// Interface for dependency injection
type ServiceInterface interface {
	CreateGrid(ctx context.Context, rows, cols int) (*model.Grid, error)
	GetGrid(ctx context.Context, id model.GridID) (*model.Grid, error)
	View(ctx context.Context, id model.GridID, fn func(*model.Grid) error) error
	SetCell(ctx context.Context, id model.GridID, pos model.Position, input string) (rune, error)
	ClearCell(ctx context.Context, id model.GridID, pos model.Position) error
	Fill(ctx context.Context, id model.GridID, rows []string) (*model.Grid, error)
	Resize(ctx context.Context, id model.GridID, rows, cols int) (*model.Grid, error)
	DeleteGrid(ctx context.Context, id model.GridID) error
}

var _ ServiceInterface = (*Service)(nil)
