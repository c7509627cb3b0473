package harness

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/applink/internal/recipe"
)

// recipeFields are the keys a recipe assertion may check.
var recipeFields = map[string]bool{
	"title":       true,
	"description": true,
	"photo":       true,
	"prep_time":   true,
	"ingredients": true,
	"steps":       true,
}

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, event := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s %s rows=%d", event.Seq, event.Kind, event.Path, event.Rows)
			if event.Error != "" {
				fmt.Fprintf(&buf, " error=%s", event.Error)
			}
			buf.WriteByte('\n')
		}
	}

	return buf.String()
}

// evaluateAssertion dispatches to the check for a.Type.
func evaluateAssertion(ctx context.Context, q recipe.Querier, trace []TraceEvent, a Assertion) error {
	switch a.Type {
	case AssertRecipe:
		return assertRecipe(ctx, q, a)
	case AssertNotFound:
		return assertNotFound(ctx, q, a)
	case AssertListOrder:
		return assertListOrder(ctx, q, a)
	case AssertTraceCount:
		return assertTraceCount(trace, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

// assertRecipe loads a recipe and compares the requested fields.
// Values are compared by their printed form, so YAML ints and strings both work.
func assertRecipe(ctx context.Context, q recipe.Querier, a Assertion) error {
	r, err := recipe.Load(ctx, q, a.ID)
	if err != nil {
		return &AssertionError{
			Type:     AssertRecipe,
			Expected: fmt.Sprintf("recipe %q", a.ID),
			Actual:   err.Error(),
		}
	}

	actual := map[string]string{
		"title":       r.Title,
		"description": r.Description,
		"photo":       r.Photo,
		"prep_time":   r.PrepTime,
		"ingredients": fmt.Sprint(len(r.Ingredients)),
		"steps":       fmt.Sprint(len(r.Steps)),
	}

	var mismatches []string
	for _, key := range sortedKeys(a.Expect) {
		want := fmt.Sprint(a.Expect[key])
		if got := actual[key]; got != want {
			mismatches = append(mismatches, fmt.Sprintf("%s=%q (want %q)", key, got, want))
		}
	}
	if len(mismatches) > 0 {
		return &AssertionError{
			Type:     AssertRecipe,
			Expected: fmt.Sprintf("recipe %q matches %v", a.ID, a.Expect),
			Actual:   strings.Join(mismatches, ", "),
		}
	}
	return nil
}

func assertNotFound(ctx context.Context, q recipe.Querier, a Assertion) error {
	r, err := recipe.Load(ctx, q, a.ID)
	if errors.Is(err, recipe.ErrNotFound) {
		return nil
	}
	actual := "error: " + fmt.Sprint(err)
	if err == nil {
		actual = fmt.Sprintf("found %q", r.Title)
	}
	return &AssertionError{
		Type:     AssertNotFound,
		Expected: fmt.Sprintf("no recipe %q", a.ID),
		Actual:   actual,
	}
}

func assertListOrder(ctx context.Context, q recipe.Querier, a Assertion) error {
	recipes, err := recipe.List(ctx, q)
	if err != nil {
		return fmt.Errorf("list recipes: %w", err)
	}

	ids := make([]string, len(recipes))
	for i, r := range recipes {
		ids[i] = r.ID
	}
	if !slices.Equal(ids, a.IDs) {
		return &AssertionError{
			Type:     AssertListOrder,
			Expected: fmt.Sprintf("%v", a.IDs),
			Actual:   fmt.Sprintf("%v", ids),
		}
	}
	return nil
}

func assertTraceCount(trace []TraceEvent, a Assertion) error {
	count := 0
	for _, event := range trace {
		if event.Kind == a.Kind {
			count++
		}
	}
	if count != a.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d %s requests", a.Count, a.Kind),
			Actual:   fmt.Sprintf("%d %s requests", count, a.Kind),
			Trace:    trace,
		}
	}
	return nil
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
