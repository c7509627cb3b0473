package store

import (
	"testing"

	"github.com/roach88/applink/internal/testutil"
)

// openSample opens the bundled sample dataset for testing.
func openSample(t *testing.T) *Store {
	t.Helper()
	s, err := Open(testutil.SampleDataset(t))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// column returns the text of column name in row, failing if absent.
func column(t *testing.T, table *Table, row int, name string) string {
	t.Helper()
	for i, c := range table.Columns {
		if c == name {
			return table.Rows[row][i].String
		}
	}
	t.Fatalf("column %q not in %v", name, table.Columns)
	return ""
}
