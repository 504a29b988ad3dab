// Command initdb creates the users table (or local document) and inserts the
// sample users. Safe to run repeatedly.
package main

import (
	"context"
	"log"

	"userdirectory/config"
	"userdirectory/internal/infrastructure"
	"userdirectory/internal/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zl.Sync()

	store, err := infrastructure.NewStore(cfg, zl)
	if err != nil {
		zl.Fatal("Failed to open store", zap.Error(err))
	}

	ctx := context.Background()
	var count int64
	initErr := store.Initialize(ctx, true)
	if initErr == nil {
		count, initErr = store.Count(ctx)
	}
	if err := store.Close(); err != nil {
		zl.Error("Failed to close store", zap.Error(err))
	}
	if initErr != nil {
		zl.Fatal("Failed to initialize store", zap.Error(initErr))
	}

	zl.Info("Database initialized",
		zap.String("backend", store.Name()),
		zap.String("location", location(cfg)),
		zap.Int64("users", count))
}

func location(cfg config.Config) string {
	if cfg.StoreDriver == config.StoreLocal {
		return cfg.LocalStorePath
	}
	if cfg.DBDriver == "sqlite" {
		return cfg.DBPath
	}
	return cfg.DBHost + "/" + cfg.DBName
}
