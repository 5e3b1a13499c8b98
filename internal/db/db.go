package db

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Brottuetchen/TimeTrack/internal/models"
)

var DB *gorm.DB

// Initialize sets up the database connection and runs migrations. An
// empty path selects the default location under ~/.timetrack.
func Initialize(path string) error {
	if path == "" {
		defaultPath, err := defaultDatabasePath()
		if err != nil {
			return fmt.Errorf("failed to get database path: %w", err)
		}
		path = defaultPath
	}

	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create timetrack directory: %w", err)
	}

	// Open database connection
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Quiet by default
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	DB = db

	// Run auto-migrations
	if err := runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// defaultDatabasePath returns the path to the SQLite database file
func defaultDatabasePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".timetrack", "timetrack.db"), nil
}

// runMigrations creates/updates the database schema
func runMigrations() error {
	return DB.AutoMigrate(
		&models.Event{},
		&models.Session{},
		&models.Project{},
		&models.Milestone{},
		&models.AssignmentRule{},
		&models.Assignment{},
	)
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		sqlDB, err := DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
