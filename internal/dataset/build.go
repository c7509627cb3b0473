package dataset

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/natefinch/atomic"
)

//go:embed schema.sql
var schemaSQL string

// ErrExists reports that the build target is already present.
var ErrExists = errors.New("dataset already exists")

// Build validates f and packages it into a new SQLite file at path.
//
// Rows are inserted in fixture order, which is the order the read side
// returns ingredients in. Build refuses to overwrite an existing file.
func Build(ctx context.Context, f *Fixture, path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrExists, path)
	}

	if err := Validate(f); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".recipes-*.db")
	if err != nil {
		return fmt.Errorf("create temp dataset: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := write(ctx, f, tmpPath); err != nil {
		return err
	}

	if err := atomic.ReplaceFile(tmpPath, path); err != nil {
		return fmt.Errorf("move dataset into place: %w", err)
	}
	return nil
}

// uriPath escapes the characters SQLite gives meaning to in a file: URI.
var uriPath = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

// write creates the schema and inserts every fixture row in one transaction.
func write(ctx context.Context, f *Fixture, path string) error {
	db, err := sql.Open("sqlite3", "file:"+uriPath.Replace(path))
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, r := range f.Recipes {
		if err := insertRecipe(ctx, tx, r); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit dataset: %w", err)
	}
	return nil
}

func insertRecipe(ctx context.Context, tx *sql.Tx, r Recipe) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO recipes (id, title, description, photo, prep_time)
		VALUES (?, ?, ?, ?, ?)
	`, r.ID, r.Title, r.Description, r.Photo, r.PrepTime)
	if err != nil {
		return fmt.Errorf("insert recipe %q: %w", r.ID, err)
	}

	for _, ing := range r.Ingredients {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO ingredients (recipe_id, amount, description)
			VALUES (?, ?, ?)
		`, r.ID, ing.Amount, ing.Description)
		if err != nil {
			return fmt.Errorf("insert ingredient for %q: %w", r.ID, err)
		}
	}

	for i, step := range r.Instructions {
		num := step.StepNumber
		if num == 0 {
			num = i + 1
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO instructions (recipe_id, step_number, description, photo)
			VALUES (?, ?, ?, ?)
		`, r.ID, num, step.Description, nullable(step.Photo))
		if err != nil {
			return fmt.Errorf("insert step %d for %q: %w", num, r.ID, err)
		}
	}

	return nil
}

// nullable stores an empty optional photo as NULL.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
