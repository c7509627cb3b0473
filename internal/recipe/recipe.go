// Package recipe assembles query results into Recipe values.
package recipe

import (
	"errors"
	"net/url"
)

// URLBase is the app-link prefix a recipe is published under.
const URLBase = "http://recipe-app.com/recipe/"

// ErrNotFound reports a recipe id with no row in the dataset.
// It is a user-facing notice, not a failure of the system.
var ErrNotFound = errors.New("recipe not found")

// Recipe is a dish with its ingredients and preparation steps.
type Recipe struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Photo       string       `json:"photo,omitempty"`
	PrepTime    string       `json:"prep_time,omitempty"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []Step       `json:"steps"`
}

// Ingredient is a quantity and what it measures.
type Ingredient struct {
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

// Step is one preparation instruction.
type Step struct {
	Number      int    `json:"step_number"`
	Description string `json:"description"`
	Photo       string `json:"photo,omitempty"`
}

// URL returns the app link for the recipe.
func (r *Recipe) URL() string {
	return URLBase + url.PathEscape(r.ID)
}

// StepPhoto returns the photo to show for step i (0-based), falling back to
// the recipe photo when the step has none.
func (r *Recipe) StepPhoto(i int) string {
	if i >= 0 && i < len(r.Steps) && r.Steps[i].Photo != "" {
		return r.Steps[i].Photo
	}
	return r.Photo
}
