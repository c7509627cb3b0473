package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Table is a tabular result set: column names plus rows of nullable text.
// Integer columns (step_number) are returned in their decimal text form.
type Table struct {
	Columns []string
	Rows    [][]sql.NullString
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Column sets returned by the read methods.
var (
	RecipeColumns      = []string{"id", "title", "description", "photo", "prep_time"}
	IngredientColumns  = []string{"amount", "description"}
	InstructionColumns = []string{"step_number", "description", "photo"}
)

const (
	selectRecipe = `
		SELECT id, title, description, photo, prep_time
		FROM recipes
		WHERE id = ?
	`

	selectRecipes = `
		SELECT id, title, description, photo, prep_time
		FROM recipes
		ORDER BY id COLLATE BINARY ASC
	`

	// AR-3/AR-4: joined through recipes, ordered by packaging order.
	// amount and description are never NULL in the result.
	selectIngredients = `
		SELECT COALESCE(i.amount, '') AS amount, COALESCE(i.description, '') AS description
		FROM recipes r
		JOIN ingredients i ON i.recipe_id = r.id
		WHERE r.id = ?
		ORDER BY i.rowid ASC
	`

	selectInstructions = `
		SELECT n.step_number AS step_number, COALESCE(n.description, '') AS description, n.photo AS photo
		FROM recipes r
		JOIN instructions n ON n.recipe_id = r.id
		WHERE r.id = ?
		ORDER BY n.step_number ASC, n.rowid ASC
	`
)

// ReadRecipe returns the scalar columns of one recipe.
// An unknown id yields an empty table, not an error.
func (s *Store) ReadRecipe(ctx context.Context, id string) (*Table, error) {
	return s.readTable(ctx, "recipe", selectRecipe, id)
}

// ReadRecipes returns the scalar columns of every recipe, ordered by id.
func (s *Store) ReadRecipes(ctx context.Context) (*Table, error) {
	return s.readTable(ctx, "recipes", selectRecipes)
}

// ReadIngredients returns the ingredients of one recipe in packaging order.
func (s *Store) ReadIngredients(ctx context.Context, recipeID string) (*Table, error) {
	return s.readTable(ctx, "ingredients", selectIngredients, recipeID)
}

// ReadInstructions returns the steps of one recipe ordered by step number.
func (s *Store) ReadInstructions(ctx context.Context, recipeID string) (*Table, error) {
	return s.readTable(ctx, "instructions", selectInstructions, recipeID)
}

// readTable runs stmt and collects every row as nullable text.
// Returns an empty Rows slice (not nil) when nothing matches.
func (s *Store) readTable(ctx context.Context, what, stmt string, args ...any) (*Table, error) {
	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", what, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns %s: %w", what, err)
	}

	table := &Table{Columns: columns, Rows: [][]sql.NullString{}}
	for rows.Next() {
		row := make([]sql.NullString, len(columns))
		dest := make([]any, len(columns))
		for i := range row {
			dest[i] = &row[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", what, err)
		}
		table.Rows = append(table.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", what, err)
	}

	return table, nil
}
