package dataset

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaCUE string

// Validate checks f against the embedded CUE schema and the cross-record
// rules CUE cannot express (unique recipe ids).
func Validate(f *Fixture) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile fixture schema: %w", err)
	}

	data := ctx.Encode(f)
	if err := data.Err(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidFixture, errors.Details(err, nil))
	}

	unified := schema.LookupPath(cue.ParsePath("#Fixture")).Unify(data)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidFixture, errors.Details(err, nil))
	}

	seen := make(map[string]bool, len(f.Recipes))
	for _, r := range f.Recipes {
		if seen[r.ID] {
			return fmt.Errorf("%w: duplicate recipe id %q", ErrInvalidFixture, r.ID)
		}
		seen[r.ID] = true
	}

	return nil
}
