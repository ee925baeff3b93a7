package finder

import (
	"context"
	"log/slog"

	"github.com/mcoot/wordgrid/internal/model"
	"github.com/mcoot/wordgrid/internal/storage"
)

// GridViewer gives exclusive read access to a stored grid
type GridViewer interface {
	View(ctx context.Context, id model.GridID, fn func(*model.Grid) error) error
}

// Service scans stored grids and keeps each grid's last result
type Service struct {
	engine  *Engine
	grids   GridViewer
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new finder Service
func New(engine *Engine, grids GridViewer, storage storage.Storage, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		engine:  engine,
		grids:   grids,
		storage: storage,
		logger:  logger,
	}
}

// ScanGrid scans the grid while holding its lock, so no edit can interleave
// with the scan, then stores the result as the grid's latest
func (s *Service) ScanGrid(ctx context.Context, id model.GridID) (*model.ScanResult, error) {
	var result *model.ScanResult
	err := s.grids.View(ctx, id, func(grid *model.Grid) error {
		result = s.engine.Scan(ctx, grid)
		return s.storage.SaveScanResult(ctx, result)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// LastResult returns the most recent stored scan of a grid
func (s *Service) LastResult(ctx context.Context, id model.GridID) (*model.ScanResult, error) {
	return s.storage.GetScanResult(ctx, id)
}

// Interface for dependency injection
type ServiceInterface interface {
	ScanGrid(ctx context.Context, id model.GridID) (*model.ScanResult, error)
	LastResult(ctx context.Context, id model.GridID) (*model.ScanResult, error)
}

var _ ServiceInterface = (*Service)(nil)
