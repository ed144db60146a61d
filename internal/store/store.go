package store

import (
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // The database driver
	"github.com/pkg/errors"
)

// Store is the data-access layer for shows, episodes and analytics. It wraps
// an injected sqlx handle so callers (and tests) control the connection.
type Store struct {
	db *sqlx.DB
}

// New connects to Postgres and verifies the connection.
func New(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to database")
	}
	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "pinging database")
	}
	return &Store{db: db}, nil
}

// NewWithDB wraps an existing handle. Used by tests with sqlmock.
func NewWithDB(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}
