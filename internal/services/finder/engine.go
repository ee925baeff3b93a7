// Package finder runs word discovery over grids: scanning, collecting and
// packaging the outcome as an immutable ScanResult.
package finder

import (
	"context"
	"log/slog"

	"github.com/mcoot/wordgrid/internal/dependencies/clock"
	"github.com/mcoot/wordgrid/internal/model"
	"github.com/mcoot/wordgrid/internal/services/collector"
	"github.com/mcoot/wordgrid/internal/services/scanner"
)

// Engine scans a grid synchronously and returns a fresh result every time.
// It only reads the grid.
type Engine struct {
	scanner *scanner.Scanner
	clock   clock.Clock
	logger  *slog.Logger
}

// NewEngine creates an Engine backed by the given lexicon
func NewEngine(lexicon scanner.Lexicon, clk clock.Clock, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		scanner: scanner.New(lexicon, logger),
		clock:   clk,
		logger:  logger,
	}
}

// Scan finds every confirmed word in grid. Definition failures only remove
// words from the result; no error is returned.
func (e *Engine) Scan(ctx context.Context, grid *model.Grid) *model.ScanResult {
	rows, cols := grid.Dimensions()
	result := &model.ScanResult{
		GridID:    grid.ID,
		Rows:      rows,
		Cols:      cols,
		StartedAt: e.clock.Now(),
	}

	e.logger.Debug("scan started", slog.String("grid_id", string(grid.ID)))

	c := collector.New()
	stats := e.scanner.Scan(ctx, grid, c.Add)

	result.Matches = c.Matches()
	result.Highlights = c.Highlights(rows, cols)
	result.Candidates = stats.Candidates
	result.FinishedAt = e.clock.Now()

	e.logger.Info("scan finished",
		slog.String("grid_id", string(grid.ID)),
		slog.Int("runs", stats.Runs),
		slog.Int("candidates", stats.Candidates),
		slog.Int("matches", len(result.Matches)),
		slog.Duration("duration", result.FinishedAt.Sub(result.StartedAt)),
	)

	return result
}
