package store

import (
	"context"
	"sync"
)

// Lazy defers opening the dataset until the first read.
//
// The outcome of the first open is kept for the life of the handle: a failed
// open is not retried, every later call returns the same error.
// Lazy is safe for concurrent use.
type Lazy struct {
	path string

	mu    sync.Mutex
	tried bool
	store *Store
	err   error
}

// NewLazy returns a handle on the dataset at path without touching the file.
func NewLazy(path string) *Lazy {
	return &Lazy{path: path}
}

// Get opens the dataset on first call and returns the shared store.
func (l *Lazy) Get() (*Store, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.tried {
		l.tried = true
		l.store, l.err = Open(l.path)
	}
	return l.store, l.err
}

// Close closes the store if it was opened. Closing an unopened handle is a no-op.
func (l *Lazy) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.store == nil {
		return nil
	}
	return l.store.Close()
}

// ReadRecipe opens the dataset if needed and reads one recipe.
func (l *Lazy) ReadRecipe(ctx context.Context, id string) (*Table, error) {
	st, err := l.Get()
	if err != nil {
		return nil, err
	}
	return st.ReadRecipe(ctx, id)
}

// ReadRecipes opens the dataset if needed and reads every recipe.
func (l *Lazy) ReadRecipes(ctx context.Context) (*Table, error) {
	st, err := l.Get()
	if err != nil {
		return nil, err
	}
	return st.ReadRecipes(ctx)
}

// ReadIngredients opens the dataset if needed and reads a recipe's ingredients.
func (l *Lazy) ReadIngredients(ctx context.Context, recipeID string) (*Table, error) {
	st, err := l.Get()
	if err != nil {
		return nil, err
	}
	return st.ReadIngredients(ctx, recipeID)
}

// ReadInstructions opens the dataset if needed and reads a recipe's steps.
func (l *Lazy) ReadInstructions(ctx context.Context, recipeID string) (*Table, error) {
	st, err := l.Get()
	if err != nil {
		return nil, err
	}
	return st.ReadInstructions(ctx, recipeID)
}
