package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// Storage owns the database file lifecycle: schema creation, seeding,
// wiping and teardown. Repositories share its Connection pool.
type Storage struct {
	Connection *sql.DB

	logger  logrus.FieldLogger
	path    string
	created bool
}

// New opens the database at path, creating the file and the schema when
// missing. Table creation is idempotent, so reopening an existing database
// is a safe NOP.
func New(logger logrus.FieldLogger, path string) (*Storage, error) {

	logger.Println("initialising SQLite DB")

	// the file comes into existence on first use; record whether this is it
	_, statErr := os.Stat(path)
	created := errors.Is(statErr, os.ErrNotExist)

	connection, err := sql.Open("sqlite3", getConnectionString(path))
	if err != nil {
		return nil, fmt.Errorf("opening database %q: %w", path, err)
	}

	if _, err = connection.Exec(schema); err != nil {
		return nil, fmt.Errorf("building database schema: %w", err)
	}

	// opening the DB will fail silently when the package is compiled without CGO_ENABLED
	if err = connection.Ping(); err != nil {
		return nil, err
	}

	return &Storage{Connection: connection, logger: logger, path: path, created: created}, nil
}

// Created reports whether New built the database file from scratch, letting
// callers seed it exactly once rather than on every reopen.
func (s *Storage) Created() bool {
	return s.created
}

// getConnectionString provides a configuration string that enables foreign keys constraints
// for every connection the pool hands out.
func getConnectionString(path string) string {
	return path + "?_fk=on"
}

// Populate executes a batch of seed statements, used for test and demo
// bootstrapping. The batch runs in a single transaction; any failure rolls
// back the whole of it.
func (s *Storage) Populate(seed string) error {
	tx, err := s.Connection.Begin()
	if err != nil {
		return err
	}

	// rolling back after a transaction commit results in a safe NOP
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.Exec(seed); err != nil {
		return fmt.Errorf("populating database: %w", err)
	}

	return tx.Commit()
}

// Wipe removes all rows from the users and exercise tables, while keeping the
// schema intact. Cascading deletes clear the friends table.
func (s *Storage) Wipe() error {
	_, err := s.Connection.Exec(`DELETE FROM exercise; DELETE FROM users;`)
	return err
}

// Destroy closes the connection pool and removes the underlying database
// file. Irreversible; meant for full teardowns in test suites.
func (s *Storage) Destroy() error {
	if err := s.Connection.Close(); err != nil {
		return err
	}
	if _, err := os.Stat(s.path); err == nil {
		return os.Remove(s.path)
	}
	return nil
}

func (s *Storage) Close() {
	s.logger.Debug("database stopping")
	if err := s.Connection.Close(); err != nil {
		s.logger.WithError(err).Warning("error closing database connection")
	}
}
