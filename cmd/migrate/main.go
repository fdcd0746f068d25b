package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"gopherblog/internal/config"
	"gopherblog/internal/logging"
	"gopherblog/internal/platform/database"
)

// Runs the schema migration without starting the server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("load config failed: %v", err)
	}
	logger := logging.New(cfg.Log)

	db, err := database.New(context.Background(), cfg.Database.URL)
	if err != nil {
		logger.WithError(err).Fatal("connect database failed")
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := database.Migrate(db); err != nil {
		logger.WithError(err).Fatal("migrate failed")
	}
	logger.Info("migration complete")
}
