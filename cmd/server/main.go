package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/mcoot/wordgrid/internal/api"
	"github.com/mcoot/wordgrid/internal/config"
	"github.com/mcoot/wordgrid/internal/factory"
	"github.com/mcoot/wordgrid/internal/logging"
	"github.com/mcoot/wordgrid/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", os.Getenv("WORDGRID_CONFIG"), "Path to a TOML config file")
	flag.Parse()

	// Defaults, then the config file, then the environment
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger, closeLog, err := logging.New(os.Stdout, logging.Options{
		Level: level,
		Dir:   cfg.Log.Dir,
		Start: time.Now(),
	})
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := factory.New(factory.FromConfig(cfg, logger))
	if err != nil {
		return fmt.Errorf("create application: %w", err)
	}
	defer func() { _ = app.Close() }()

	// Without a lexicon the server still starts; /api/v1/lexicon reports it unloaded
	if err := app.LoadLexicon(ctx); err != nil {
		logger.Warn("could not load lexicon", slog.String("error", err.Error()))
	}

	router := mux.NewRouter()
	api.Routes(router, api.RouterConfig{
		Logger:         logger,
		GridService:    app.GridService,
		FinderService:  app.FinderService,
		LexiconService: app.LexiconService,
	})
	web.Routes(router, web.RouterConfig{
		Logger:        logger,
		GridService:   app.GridService,
		FinderService: app.FinderService,
	})

	server := api.NewServer(router, api.ServerConfig{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout.Duration,
		WriteTimeout:    cfg.Server.WriteTimeout.Duration,
		ShutdownTimeout: cfg.Server.ShutdownTimeout.Duration,
	}, logger)

	if err := server.Run(ctx); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}
