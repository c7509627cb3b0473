package recipe

import (
	"database/sql"
	"strconv"
)

// absent marks a known column missing from a result.
const absent = -1

// indexOf maps column names to positions once per result.
// Columns not in names are ignored.
func indexOf(columns []string, names ...string) []int {
	idx := make([]int, len(names))
	for i := range idx {
		idx[i] = absent
	}
	for pos, col := range columns {
		for i, name := range names {
			if col == name && idx[i] == absent {
				idx[i] = pos
			}
		}
	}
	return idx
}

// text returns the cell at i, or "" when the column is absent or NULL.
func text(row []sql.NullString, i int) string {
	if i == absent || i >= len(row) {
		return ""
	}
	return row[i].String
}

type recipeColumns struct {
	id, title, description, photo, prepTime int
}

func bindRecipeColumns(columns []string) recipeColumns {
	idx := indexOf(columns, "id", "title", "description", "photo", "prep_time")
	return recipeColumns{idx[0], idx[1], idx[2], idx[3], idx[4]}
}

func (c recipeColumns) scan(row []sql.NullString) Recipe {
	return Recipe{
		ID:          text(row, c.id),
		Title:       text(row, c.title),
		Description: text(row, c.description),
		Photo:       text(row, c.photo),
		PrepTime:    text(row, c.prepTime),
	}
}

type ingredientColumns struct {
	amount, description int
}

func bindIngredientColumns(columns []string) ingredientColumns {
	idx := indexOf(columns, "amount", "description")
	return ingredientColumns{idx[0], idx[1]}
}

func (c ingredientColumns) scan(row []sql.NullString) Ingredient {
	return Ingredient{
		Amount:      text(row, c.amount),
		Description: text(row, c.description),
	}
}

type stepColumns struct {
	number, description, photo int
}

func bindStepColumns(columns []string) stepColumns {
	idx := indexOf(columns, "step_number", "description", "photo")
	return stepColumns{idx[0], idx[1], idx[2]}
}

func (c stepColumns) scan(row []sql.NullString) Step {
	// A non-numeric step number reads as 0.
	n, _ := strconv.Atoi(text(row, c.number))
	return Step{
		Number:      n,
		Description: text(row, c.description),
		Photo:       text(row, c.photo),
	}
}
