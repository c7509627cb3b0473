// Package testutil builds throwaway recipe datasets for tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/applink/internal/dataset"
)

// SampleDataset packages the bundled sample fixture into t.TempDir() and
// returns the dataset path.
//
// The sample contains:
//   - "7"  Pancakes: 3 ingredients, 2 steps (step 2 has no photo)
//   - "3"  Guacamole: 4 ingredients, 3 steps
//   - "12" Tomato Soup: 2 ingredients, 2 unnumbered steps
//   - "21" Iced Tea: 2 ingredients, no steps
func SampleDataset(t testing.TB) string {
	t.Helper()
	return Dataset(t, dataset.Sample())
}

// Dataset packages f into t.TempDir() and returns the dataset path.
func Dataset(t testing.TB, f *dataset.Fixture) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipes.db")
	if err := dataset.Build(context.Background(), f, path); err != nil {
		t.Fatalf("dataset.Build() failed: %v", err)
	}
	return path
}
