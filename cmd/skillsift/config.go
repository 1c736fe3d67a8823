package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skillsift/internal/config"
	"skillsift/internal/database"
	dbpostgres "skillsift/internal/database/postgres"
)

// loadConfig reads the environment and falls back to defaults when the
// server settings are absent, so offline commands work without a .env.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.Default()
	}
	return cfg
}

func openDB(ctx context.Context) (database.DB, error) {
	cfg := loadConfig()
	if !cfg.Database.Enabled() {
		return nil, errors.New("database is not configured (set DB_HOST and DB_NAME)")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}
