// Package store persists lesson sessions and the similarity collection in
// a local sqlite database.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/minho-jung/kidlearn/internal/logger"
)

// Store owns the sqlite handle and hands out repositories.
type Store struct {
	db  *gorm.DB
	log *logger.Logger
}

// Open opens (creating if needed) the sqlite database at path and runs
// migrations. Pass ":memory:" for an in-memory database.
func Open(path string, log *logger.Logger) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db, path != ":memory:"); err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&Document{}, &LessonSession{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db, log: log}, nil
}

// Documents returns the similarity document repository.
func (s *Store) Documents() *DocumentRepo {
	return &DocumentRepo{db: s.db, log: s.log}
}

// Sessions returns the lesson session repository.
func (s *Store) Sessions() *SessionRepo {
	return &SessionRepo{db: s.db, log: s.log}
}

// applyPragmas configures SQLite for a single writer with concurrent
// readers.
func applyPragmas(db *gorm.DB, durable bool) error {
	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	if durable {
		// WAL keeps the CLI responsive when the HTTP server is writing.
		pragmas = append([]string{"PRAGMA journal_mode = WAL"}, pragmas...)
	}
	for _, p := range pragmas {
		if err := db.Exec(p).Error; err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. KIDLEARN_DB environment variable
// 2. $XDG_DATA_HOME/kidlearn/kidlearn.db
// 3. ~/.local/share/kidlearn/kidlearn.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("KIDLEARN_DB"); p != "" {
		return p, nil
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "kidlearn", "kidlearn.db"), nil
}

// Close checkpoints and closes the underlying database.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
