// Package db opens the contracts register database and keeps its schema
// current.
package db

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/handyzentrum/shopdocs/internal/config"
)

// New opens (creating if needed) the SQLite register at cfg.DB.Path and runs
// the idempotent migrations.
func New(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.DB.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	database, err := gorm.Open(sqlite.Open(cfg.DB.Path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", cfg.DB.Path, err)
	}

	if err := runMigrations(database); err != nil {
		return nil, err
	}

	log.Info().Str("path", cfg.DB.Path).Msg("database ready")
	return database, nil
}
