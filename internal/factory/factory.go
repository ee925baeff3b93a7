package factory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mcoot/wordgrid/internal/config"
	"github.com/mcoot/wordgrid/internal/dependencies/clock"
	"github.com/mcoot/wordgrid/internal/dependencies/ids"
	"github.com/mcoot/wordgrid/internal/services/definition"
	"github.com/mcoot/wordgrid/internal/services/finder"
	"github.com/mcoot/wordgrid/internal/services/grid"
	"github.com/mcoot/wordgrid/internal/services/lexicon"
	"github.com/mcoot/wordgrid/internal/storage"
	"github.com/mcoot/wordgrid/internal/storage/memory"
	redisstorage "github.com/mcoot/wordgrid/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = config.StorageMemory
	StorageTypeRedis  = config.StorageRedis
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock
	IDs   ids.Generator

	// Lookup is the definition capability behind the lexicon
	Lookup definition.LookupFunc

	// Services
	LexiconService *lexicon.Service
	GridService    *grid.Service
	Engine         *finder.Engine
	FinderService  *finder.Service

	Logger *slog.Logger

	lexiconPath   string
	lexiconURL    string
	lexiconClient *http.Client
}

// DefinitionConfig selects the definition source
type DefinitionConfig struct {
	// Remote enables the HTTP dictionary client. When false every lexicon
	// word is accepted.
	Remote bool
	Client definition.Config
	// Cache stores remote answers in Storage
	Cache bool
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// LexiconPath is the wordlist read by LoadLexicon (optional)
	LexiconPath string
	// LexiconURL is downloaded to LexiconPath when the file is missing (optional)
	LexiconURL string
	// LexiconDownloadTimeout bounds the LexiconURL download. Zero means
	// lexicon.DefaultDownloadTimeout.
	LexiconDownloadTimeout time.Duration
	// Definition configures the definition source
	Definition DefinitionConfig
	// Lookup overrides Definition when set
	Lookup definition.LookupFunc
}

// FromConfig maps the server configuration onto a factory Config
func FromConfig(c *config.Config, logger *slog.Logger) Config {
	cfg := Config{
		Logger:      logger,
		StorageType: c.Storage.Type,
		LexiconPath: c.Lexicon.Path,
		Definition: DefinitionConfig{
			Remote: c.Definition.Enabled,
			Client: definition.Config{
				BaseURL: c.Definition.URL,
				Delay:   c.Definition.Delay.Duration,
				Timeout: c.Definition.Timeout.Duration,
			},
			Cache: c.Definition.Cache,
		},
	}
	if c.Lexicon.Download {
		cfg.LexiconURL = c.Lexicon.URL
		cfg.LexiconDownloadTimeout = c.Lexicon.DownloadTimeout.Duration
	}
	if c.Storage.Type == StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = c.Storage.RedisURL
		redisCfg.GridTTL = c.Storage.GridTTL.Duration
		redisCfg.ScanResultTTL = c.Storage.ScanResultTTL.Duration
		redisCfg.DefinitionTTL = c.Storage.DefinitionTTL.Duration
		redisCfg.MissingDefinitionTTL = c.Storage.MissingDefinitionTTL.Duration
		cfg.RedisConfig = &redisCfg
	}
	return cfg
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	gen := ids.New()

	lookup := cfg.Lookup
	if lookup == nil {
		lookup = newLookup(cfg.Definition, store, clk, logger)
	}

	app := newWithDependencies(store, clk, gen, lookup, logger)
	app.lexiconPath = cfg.LexiconPath
	app.lexiconURL = cfg.LexiconURL

	timeout := cfg.LexiconDownloadTimeout
	if timeout <= 0 {
		timeout = lexicon.DefaultDownloadTimeout
	}
	app.lexiconClient = &http.Client{Timeout: timeout}
	return app, nil
}

// newLookup builds the definition capability from its config
func newLookup(cfg DefinitionConfig, store storage.Storage, clk clock.Clock, logger *slog.Logger) definition.LookupFunc {
	if !cfg.Remote {
		return definition.Permissive()
	}
	lookup := definition.NewClient(cfg.Client, clk, logger).LookupFunc()
	if cfg.Cache {
		lookup = definition.Cached(lookup, store, clk, logger)
	}
	return lookup
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, gen ids.Generator, lookup definition.LookupFunc, logger *slog.Logger) *App {
	// Create services
	lexiconService := lexicon.New(store, lookup, logger)
	gridService := grid.New(store, gen, clk, logger)
	engine := finder.NewEngine(lexiconService, clk, logger)
	finderService := finder.New(engine, gridService, store, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		IDs:            gen,
		Lookup:         lookup,
		LexiconService: lexiconService,
		GridService:    gridService,
		Engine:         engine,
		FinderService:  finderService,
		Logger:         logger,
	}
}

// LoadLexicon loads the configured wordlist, downloading it first when a URL
// is configured and the file is missing. Without a path the wordlist saved in
// storage by an earlier run is used.
func (a *App) LoadLexicon(ctx context.Context) error {
	if a.lexiconPath == "" {
		return a.LexiconService.LoadFromStorage(ctx)
	}

	if a.lexiconURL != "" {
		downloaded, err := lexicon.EnsureFile(ctx, a.lexiconClient, a.lexiconURL, a.lexiconPath)
		if err != nil {
			return fmt.Errorf("fetch lexicon: %w", err)
		}
		if downloaded {
			a.Logger.Info("lexicon downloaded",
				slog.String("url", a.lexiconURL),
				slog.String("path", a.lexiconPath),
			)
		}
	}

	return a.LexiconService.LoadFromFile(ctx, a.lexiconPath)
}

// Close releases storage connections
func (a *App) Close() error {
	if closer, ok := a.Storage.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
