// Package main provides the REST API server for the card filter engine.
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

	"github.com/ramonehamilton/mtg-cardfilter/internal/api"
	"github.com/ramonehamilton/mtg-cardfilter/internal/config"
	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/cards/catalog"
	"github.com/ramonehamilton/mtg-cardfilter/internal/storage"
	"github.com/ramonehamilton/mtg-cardfilter/internal/storage/repository"
	"github.com/ramonehamilton/mtg-cardfilter/internal/version"
)

var (
	configPath = flag.String("config", "", "Path to config.toml (default: ~/.mtga-cardfilter/config.toml)")
	cardsPath  = flag.String("cards", "", "Scryfall bulk card file (overrides catalog.path)")
	port       = flag.Int("port", 0, "API server port (overrides api.port)")
	dbPath     = flag.String("db-path", "", "Database path (default: ~/.mtga-cardfilter/filters.db)")
	noDB       = flag.Bool("no-db", false, "Run without saved filter storage")
	debugMode  = flag.Bool("debug-mode", false, "Enable verbose debug logging")
	showVer    = flag.Bool("version", false, "Print the version and exit")
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Println("mtg-cardfilter apiserver", version.GetVersion())
		return
	}

	if err := run(); err != nil {
		slog.Error("API server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	var cfg *config.Config
	var err error
	if *configPath == "" {
		cfg, err = config.Load()
	} else {
		cfg, err = config.LoadFrom(*configPath)
	}
	if err != nil {
		return err
	}

	if *cardsPath != "" {
		cfg.Catalog.Path = *cardsPath
	}
	if *port != 0 {
		cfg.API.Port = *port
	}
	if *dbPath != "" {
		cfg.Storage.DBPath = *dbPath
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Catalog.Path == "" {
		return fmt.Errorf("no card file: pass -cards or set catalog.path")
	}

	level := slog.LevelInfo
	if *debugMode || cfg.App.DebugMode {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cat, err := catalog.Load(cfg.Catalog.Path, catalog.Config{
		Workers: cfg.Catalog.Workers,
		Strict:  cfg.Catalog.Strict,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	logger.Info("Catalog loaded", "path", cfg.Catalog.Path, "cards", cat.Count())

	deps := api.Dependencies{Catalog: cat, Logger: logger}
	if !*noDB {
		finalDBPath, err := cfg.GetDBPath()
		if err != nil {
			return err
		}
		dbConfig := storage.DefaultConfig(finalDBPath)
		dbConfig.AutoMigrate = cfg.Storage.AutoMigrate
		db, err := storage.Open(dbConfig)
		if err != nil {
			return err
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Error("Error closing database", "error", err)
			}
		}()
		logger.Info("Database opened", "path", finalDBPath)
		deps.Filters = repository.NewFilterRepository(db.Conn())
	}

	server := api.NewServer(&api.Config{
		Port:           cfg.API.Port,
		RatePerSecond:  cfg.API.RatePerSecond,
		Burst:          cfg.API.Burst,
		MaxResults:     cfg.API.MaxResults,
		AllowedOrigins: cfg.API.AllowedOrigins,
		DecodeOptions:  cfg.DecodeOptions(),
	}, deps)

	if err := server.Start(); err != nil {
		return err
	}

	// Wait for interrupt signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("API server stopped")
	return nil
}
