// filepath: internal/repository/repository.go
package repository

import (
	"database/sql"
	"time"

	"woodbank/internal/config"

	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

// Repository provides access to the embedded SQLite store backing the
// firewood bank records.
type Repository struct {
	DB      *sql.DB
	Cache   *cache.Cache
	Builder squirrel.StatementBuilderType // SQL Query Builder
	Logger  *logrus.Logger
}

// NewRepository opens the database file and prepares the repository.
// It does not run migrations; callers run RunMigrations before using any
// other method.
func NewRepository(cfg *config.Config, logger *logrus.Logger) (*Repository, error) {
	if logger == nil {
		logger = logrus.New()
	}

	db, err := sql.Open("sqlite3", cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	// Enforce referential integrity for the whole session.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, err
	}

	return &Repository{
		DB:      db,
		Cache:   cache.New(5*time.Minute, 10*time.Minute),
		Builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		Logger:  logger,
	}, nil
}

// Close closes the underlying database connection.
func (s *Repository) Close() error {
	return s.DB.Close()
}
