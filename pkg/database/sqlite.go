package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"studereg/pkg/config"
	apperrors "studereg/pkg/errors"
)

const schema = `CREATE TABLE IF NOT EXISTS students (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	age INTEGER,
	course TEXT,
	score REAL,
	registration_date DATE DEFAULT CURRENT_DATE
)`

// Store owns the single SQLite connection handle for the process.
// The schema is created lazily on first connect.
type Store struct {
	path string
	db   *sqlx.DB
}

// NewStore captures the datastore path without touching the file.
func NewStore(cfg config.DatabaseConfig) *Store {
	return &Store{path: cfg.Path}
}

// Connect opens the datastore file, creating it and the students table when
// absent. Calling it again while connected returns the existing handle.
func (s *Store) Connect() (*sqlx.DB, error) {
	if s.db != nil {
		return s.db, nil
	}

	db, err := sqlx.Open("sqlite", s.path)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrPersistence.Code, "open datastore")
	}

	// One interactive user, one writer. SQLite's own locking covers the rest.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, apperrors.Wrap(err, apperrors.ErrPersistence.Code, "connect datastore")
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, apperrors.Wrap(err, apperrors.ErrPersistence.Code, "create schema")
	}

	s.db = db
	return s.db, nil
}

// DB returns the live handle, connecting implicitly when needed.
func (s *Store) DB() (*sqlx.DB, error) {
	if s.db != nil {
		return s.db, nil
	}
	return s.Connect()
}

// Close releases the connection. Safe to call when already closed; a later
// DB call reconnects.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		return fmt.Errorf("close datastore: %w", err)
	}
	return nil
}
