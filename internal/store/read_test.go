package store

import (
	"context"
	"database/sql"
	"reflect"
	"testing"

	"github.com/roach88/applink/internal/testutil"
)

func TestReadRecipe_Found(t *testing.T) {
	s := openSample(t)

	table, err := s.ReadRecipe(context.Background(), "7")
	if err != nil {
		t.Fatalf("ReadRecipe() failed: %v", err)
	}

	if !reflect.DeepEqual(table.Columns, RecipeColumns) {
		t.Errorf("Columns = %v, want %v", table.Columns, RecipeColumns)
	}
	if table.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", table.Len())
	}
	if got := column(t, table, 0, "id"); got != "7" {
		t.Errorf("id = %q, want %q", got, "7")
	}
	if got := column(t, table, 0, "title"); got != "Pancakes" {
		t.Errorf("title = %q, want %q", got, "Pancakes")
	}
	if got := column(t, table, 0, "prep_time"); got != "20 min" {
		t.Errorf("prep_time = %q, want %q", got, "20 min")
	}
}

func TestReadRecipe_NotFound(t *testing.T) {
	s := openSample(t)

	table, err := s.ReadRecipe(context.Background(), "999")
	if err != nil {
		t.Fatalf("ReadRecipe() failed: %v", err)
	}
	if table.Rows == nil {
		t.Error("expected empty slice, got nil")
	}
	if table.Len() != 0 {
		t.Errorf("Len() = %d, want 0", table.Len())
	}
}

func TestReadRecipe_NoInjection(t *testing.T) {
	s := openSample(t)

	for _, id := range []string{"7' OR '1'='1", "7'; DROP TABLE recipes; --", "%", "7%"} {
		table, err := s.ReadRecipe(context.Background(), id)
		if err != nil {
			t.Fatalf("ReadRecipe(%q) failed: %v", id, err)
		}
		if table.Len() != 0 {
			t.Errorf("ReadRecipe(%q) returned %d rows, want exact-match only", id, table.Len())
		}
	}

	all, err := s.ReadRecipes(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if all.Len() != 4 {
		t.Errorf("recipes = %d, want 4", all.Len())
	}
}

func TestReadRecipes_OrderedByID(t *testing.T) {
	s := openSample(t)

	table, err := s.ReadRecipes(context.Background())
	if err != nil {
		t.Fatalf("ReadRecipes() failed: %v", err)
	}

	var ids []string
	for i := range table.Rows {
		ids = append(ids, column(t, table, i, "id"))
	}
	want := []string{"12", "21", "3", "7"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v, want %v", ids, want)
	}
}

func TestReadIngredients(t *testing.T) {
	s := openSample(t)

	table, err := s.ReadIngredients(context.Background(), "7")
	if err != nil {
		t.Fatalf("ReadIngredients() failed: %v", err)
	}

	if !reflect.DeepEqual(table.Columns, IngredientColumns) {
		t.Errorf("Columns = %v, want %v", table.Columns, IngredientColumns)
	}
	if table.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", table.Len())
	}

	wantAmounts := []string{"2 cups", "1 1/2 cups", "2"}
	for i, want := range wantAmounts {
		if got := column(t, table, i, "amount"); got != want {
			t.Errorf("row %d amount = %q, want %q", i, got, want)
		}
	}
}

func TestReadIngredients_NeverNull(t *testing.T) {
	s := openSample(t)

	// Guacamole has an ingredient with an empty amount
	table, err := s.ReadIngredients(context.Background(), "3")
	if err != nil {
		t.Fatalf("ReadIngredients() failed: %v", err)
	}
	if table.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", table.Len())
	}
	for i, row := range table.Rows {
		for j, cell := range row {
			if !cell.Valid {
				t.Errorf("row %d column %s is NULL", i, table.Columns[j])
			}
		}
	}
}

func TestReadIngredients_UnknownRecipe(t *testing.T) {
	s := openSample(t)

	table, err := s.ReadIngredients(context.Background(), "999")
	if err != nil {
		t.Fatalf("ReadIngredients() failed: %v", err)
	}
	if table.Len() != 0 {
		t.Errorf("Len() = %d, want 0", table.Len())
	}
}

// AR-3: child rows surface only through their owning recipe.
func TestRead_OrphanRowsHidden(t *testing.T) {
	path := testutil.SampleDataset(t)

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatal(err)
	}
	stmts := []string{
		"INSERT INTO ingredients (recipe_id, amount, description) VALUES ('999', '1', 'orphan')",
		"INSERT INTO instructions (recipe_id, step_number, description) VALUES ('999', 1, 'orphan step')",
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			t.Fatalf("%s: %v", stmt, err)
		}
	}
	db.Close()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()
	ctx := context.Background()

	ingredients, err := s.ReadIngredients(ctx, "999")
	if err != nil {
		t.Fatalf("ReadIngredients() failed: %v", err)
	}
	if ingredients.Len() != 0 {
		t.Errorf("ReadIngredients(999) rows = %d, want 0", ingredients.Len())
	}

	steps, err := s.ReadInstructions(ctx, "999")
	if err != nil {
		t.Fatalf("ReadInstructions() failed: %v", err)
	}
	if steps.Len() != 0 {
		t.Errorf("ReadInstructions(999) rows = %d, want 0", steps.Len())
	}

	// Owned rows are unaffected
	owned, err := s.ReadIngredients(ctx, "7")
	if err != nil {
		t.Fatalf("ReadIngredients() failed: %v", err)
	}
	if owned.Len() != 3 {
		t.Errorf("ReadIngredients(7) rows = %d, want 3", owned.Len())
	}
}

func TestReadInstructions(t *testing.T) {
	s := openSample(t)

	table, err := s.ReadInstructions(context.Background(), "7")
	if err != nil {
		t.Fatalf("ReadInstructions() failed: %v", err)
	}

	if !reflect.DeepEqual(table.Columns, InstructionColumns) {
		t.Errorf("Columns = %v, want %v", table.Columns, InstructionColumns)
	}
	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}
	if got := column(t, table, 0, "step_number"); got != "1" {
		t.Errorf("step_number = %q, want %q", got, "1")
	}
	if got := column(t, table, 1, "step_number"); got != "2" {
		t.Errorf("step_number = %q, want %q", got, "2")
	}

	// Step 2 has no photo
	if table.Rows[1][2].Valid {
		t.Errorf("step 2 photo = %q, want NULL", table.Rows[1][2].String)
	}
}

func TestReadInstructions_NoSteps(t *testing.T) {
	s := openSample(t)

	table, err := s.ReadInstructions(context.Background(), "21")
	if err != nil {
		t.Fatalf("ReadInstructions() failed: %v", err)
	}
	if table.Len() != 0 {
		t.Errorf("Len() = %d, want 0", table.Len())
	}
}

func TestTable_LenNil(t *testing.T) {
	var table *Table
	if table.Len() != 0 {
		t.Error("nil table should have length 0")
	}
}
