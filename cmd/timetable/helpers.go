package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/viper"

	"github.com/Veraticus/timetable/internal/config"
	"github.com/Veraticus/timetable/internal/engine"
	"github.com/Veraticus/timetable/internal/llm"
	"github.com/Veraticus/timetable/internal/service"
	"github.com/Veraticus/timetable/internal/storage"
)

// app bundles what a command needs to work on one user's schedule.
type app struct {
	cfg       *config.Config
	store     *storage.SQLiteStorage
	extractor *llm.Extractor
	engine    *engine.Engine
}

// openApp loads configuration, opens and migrates the database and, when
// withExtractor is set, connects to the configured vision model.
func openApp(ctx context.Context, withExtractor bool) (*app, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}

	store, err := initStorage(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, store: store}
	var extractor service.Extractor
	if withExtractor {
		if err := cfg.RequireAPIKey(os.Getenv); err != nil {
			a.Close()
			return nil, err
		}
		a.extractor, err = llm.NewExtractor(ctx, cfg.LLM, slog.Default())
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to create extractor: %w", err)
		}
		extractor = a.extractor
	}

	a.engine = engine.New(store, extractor)
	return a, nil
}

// Close releases the database and model connections.
func (a *app) Close() {
	if a.extractor != nil {
		if err := a.extractor.Close(); err != nil {
			slog.Warn("Failed to close extractor", "error", err)
		}
	}
	if err := a.store.Close(); err != nil {
		slog.Warn("Failed to close database", "error", err)
	}
}

// initStorage opens the database and brings its schema up to date.
func initStorage(ctx context.Context, dbPath string) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}
