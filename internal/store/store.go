// Package store persists the tracked cases, sync metadata and the
// communications cache in a local SQLite database, and writes the dated
// JSON backups and run reports next to it.
package store

import (
	"fmt"

	"github.com/brasslaw/vigia/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store wraps the database handle and the directory where backups and
// reports are written.
type Store struct {
	db        *gorm.DB
	reportDir string
}

// Open opens (creating if needed) the SQLite database at path. reportDir
// receives backup and report files; empty means the current directory.
func Open(path, reportDir string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	if reportDir == "" {
		reportDir = "."
	}
	return &Store{db: db, reportDir: reportDir}, nil
}

// AllModels returns the GORM models for migration.
func AllModels() []interface{} {
	return []interface{}{
		&models.Case{},
		&models.StoreMeta{},
		&models.CommEntry{},
		&models.Communication{},
	}
}

// Migrate creates or updates all tables.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("store: auto-migrate: %w", err)
	}
	return nil
}
