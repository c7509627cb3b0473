package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// Table names of the bundled dataset.
const (
	TableRecipes      = "recipes"
	TableIngredients  = "ingredients"
	TableInstructions = "instructions"
)

// requiredTables must all exist for a dataset to be usable.
var requiredTables = []string{TableRecipes, TableIngredients, TableInstructions}

// ErrStorageUnavailable reports that the bundled dataset cannot be opened
// or is not a recipe dataset. It is fatal for the session.
var ErrStorageUnavailable = errors.New("recipe dataset unavailable")

// Store is a read-only handle on a recipe dataset.
type Store struct {
	db *sql.DB
}

// Open opens the dataset at path read-only.
//
// The handle is configured with:
//   - mode=ro on the connection URI
//   - query_only so a stray write fails at the engine
//   - a single connection (the dataset is read serially)
//
// Open never creates a file. A missing file, a file that is not SQLite, or
// a database without the recipe tables all return ErrStorageUnavailable.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("%w: open database: %v", ErrStorageUnavailable, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: connect to database: %v", ErrStorageUnavailable, err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	if err := verifySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return &Store{db: db}, nil
}

// uriPath escapes the characters SQLite gives meaning to in a file: URI.
var uriPath = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

// dsn builds a read-only SQLite URI for path.
func dsn(path string) string {
	return "file:" + uriPath.Replace(path) + "?mode=ro"
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// applyPragmas sets read-side SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA query_only = ON",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// verifySchema checks that every recipe table is present.
// A non-SQLite file fails here with "file is not a database".
func verifySchema(db *sql.DB) error {
	for _, table := range requiredTables {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?",
			table,
		).Scan(&name)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("missing table %q", table)
		}
		if err != nil {
			return fmt.Errorf("inspect schema: %w", err)
		}
	}
	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *Store) verifyPragma(ctx context.Context, name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRowContext(ctx, query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
