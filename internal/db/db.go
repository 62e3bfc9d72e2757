// Package db is the SQLite implementation of the repository ports,
// built on gorm.
package db

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the SQLite database at path, creating the parent
// directory if needed, and runs auto-migrations.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // quiet by default
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := migrate(gdb); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: gdb}, nil
}

// OpenMemory opens a throwaway in-memory database. Test helper.
func OpenMemory() (*Store, error) {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := migrate(gdb); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: gdb}, nil
}

// migrate creates/updates the database schema.
func migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&userRow{},
		&technologyRow{},
		&taskCardRow{},
		&sessionRow{},
		&reviewRow{},
		&resultRow{},
		&questionRow{},
		&statusUpdateRow{},
		&statusFeedbackRow{},
	)
}

// Close closes the database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
