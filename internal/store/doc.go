// Package store provides read-only SQLite access to the bundled recipe dataset.
//
// The dataset is produced at packaging time (see internal/dataset) and shipped
// with the application. This package never writes to it:
//   - Recipes: scalar attributes keyed by id
//   - Ingredients: amount/description rows owned by a recipe
//   - Instructions: numbered steps owned by a recipe
//
// # Access Rules
//
// AR-1: Read-Only Handle
//   - Opened with mode=ro and PRAGMA query_only = ON
//   - No insert/update/delete method exists on Store
//
// AR-2: Parameter Binding
//   - Recipe ids are always bound with ?, never interpolated into SQL
//
// AR-3: Ownership by Join
//   - Child rows are only returned through a join on recipes.id, so an
//     ingredient or step never surfaces without an owning recipe
//
// AR-4: Reproducible Order
//   - Ingredients: ORDER BY rowid (packaging order)
//   - Instructions: ORDER BY step_number, rowid
//
// AR-5: Scoped Cursors
//   - Every *sql.Rows is closed via defer, including empty results
//
// A dataset that is missing, unreadable, or lacks one of the required tables
// reports ErrStorageUnavailable. There is no retry or fallback source.
package store
