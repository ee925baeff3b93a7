package storage

import (
	"context"

	"github.com/mcoot/wordgrid/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Grid operations
	SaveGrid(ctx context.Context, grid *model.Grid) error
	GetGrid(ctx context.Context, id model.GridID) (*model.Grid, error)
	DeleteGrid(ctx context.Context, id model.GridID) error

	// Scan result operations (last result per grid)
	SaveScanResult(ctx context.Context, result *model.ScanResult) error
	GetScanResult(ctx context.Context, gridID model.GridID) (*model.ScanResult, error)

	// Lexicon operations. Saving an empty list clears the stored lexicon.
	GetLexiconWords(ctx context.Context) ([]string, error)
	SaveLexiconWords(ctx context.Context, words []string) error

	// Definition cache operations
	GetDefinition(ctx context.Context, word string) (*model.CachedDefinition, error)
	SaveDefinition(ctx context.Context, def *model.CachedDefinition) error
}
