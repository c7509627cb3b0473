package cli

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/roach88/applink/internal/recipe"
)

// renderRecipe writes the text view of r: header, ingredients table, then one
// block per step. A step without a photo shows the recipe photo.
func renderRecipe(w io.Writer, r *recipe.Recipe) {
	fmt.Fprintln(w, r.Title)
	if r.Description != "" {
		fmt.Fprintln(w, r.Description)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Prep time: %s\n", r.PrepTime)
	fmt.Fprintf(w, "Link:      %s\n", r.URL())
	if r.Photo != "" {
		fmt.Fprintf(w, "Photo:     %s\n", r.Photo)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Ingredients (%d)\n", len(r.Ingredients))
	width := 0
	for _, ing := range r.Ingredients {
		if n := utf8.RuneCountInString(ing.Amount); n > width {
			width = n
		}
	}
	for _, ing := range r.Ingredients {
		fmt.Fprintf(w, "  %-*s  %s\n", width, ing.Amount, ing.Description)
	}

	for i, step := range r.Steps {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Step %d\n", i+1)
		fmt.Fprintf(w, "  %s\n", step.Description)
		if photo := r.StepPhoto(i); photo != "" {
			fmt.Fprintf(w, "  Photo: %s\n", photo)
		}
	}
}
