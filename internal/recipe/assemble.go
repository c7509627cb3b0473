package recipe

import (
	"context"
	"fmt"

	"github.com/roach88/applink/internal/query"
)

// Querier executes parsed recipe requests. *query.Service satisfies it.
type Querier interface {
	Do(ctx context.Context, req query.Request) (*query.Result, error)
}

// Assemble builds a Recipe from the three query results.
//
// Only the first row of rec is used. An empty rec means the recipe does not
// exist and yields ErrNotFound without looking at the child results.
// Ingredients and steps keep result order; nil child results are treated
// as empty.
func Assemble(rec, ingredients, steps *query.Result) (*Recipe, error) {
	if rec == nil || rec.Empty() {
		return nil, ErrNotFound
	}

	r := bindRecipeColumns(rec.Columns).scan(rec.Rows[0])
	r.Ingredients = []Ingredient{}
	r.Steps = []Step{}

	if ingredients != nil {
		cols := bindIngredientColumns(ingredients.Columns)
		for _, row := range ingredients.Rows {
			r.Ingredients = append(r.Ingredients, cols.scan(row))
		}
	}

	if steps != nil {
		cols := bindStepColumns(steps.Columns)
		for _, row := range steps.Rows {
			r.Steps = append(r.Steps, cols.scan(row))
		}
	}

	return &r, nil
}

// Load fetches and assembles the recipe with the given id.
//
// Returns an error wrapping ErrNotFound when the id matches no recipe; the
// child queries are not issued in that case. Any other error comes from the
// query layer unchanged.
func Load(ctx context.Context, q Querier, id string) (*Recipe, error) {
	rec, err := q.Do(ctx, query.NewRequest(query.KindRecipe, id))
	if err != nil {
		return nil, err
	}
	if rec.Empty() {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	// Child queries use the id as stored, not as requested.
	storedID := text(rec.Rows[0], bindRecipeColumns(rec.Columns).id)
	if storedID == "" {
		storedID = id
	}

	ingredients, err := q.Do(ctx, query.NewRequest(query.KindIngredients, storedID))
	if err != nil {
		return nil, err
	}

	steps, err := q.Do(ctx, query.NewRequest(query.KindInstructions, storedID))
	if err != nil {
		return nil, err
	}

	return Assemble(rec, ingredients, steps)
}

// List returns the scalar attributes of every recipe, ordered by id.
// Ingredients and steps are left empty.
func List(ctx context.Context, q Querier) ([]Recipe, error) {
	res, err := q.Do(ctx, query.NewRequest(query.KindList, ""))
	if err != nil {
		return nil, err
	}

	cols := bindRecipeColumns(res.Columns)
	recipes := make([]Recipe, 0, res.Len())
	for _, row := range res.Rows {
		recipes = append(recipes, cols.scan(row))
	}
	return recipes, nil
}
