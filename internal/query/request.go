package query

import (
	"strings"
)

const (
	// Authority is the content-provider authority of the recipe dataset.
	Authority = "com.sopan.app_link"

	// BasePath is the first segment of every request path.
	BasePath = "recipe"

	// ContentURIPrefix is the content URI of the recipe collection.
	ContentURIPrefix = "content://" + Authority + "/" + BasePath

	segmentIngredients  = "ingredients"
	segmentInstructions = "instructions"
)

// Kind identifies one of the known request shapes.
type Kind int

const (
	KindUnknown Kind = iota
	KindList
	KindIngredients
	KindInstructions
	KindRecipe
)

// String returns the label used in logs and metrics.
func (k Kind) String() string {
	switch k {
	case KindList:
		return "list"
	case KindIngredients:
		return "ingredients"
	case KindInstructions:
		return "instructions"
	case KindRecipe:
		return "recipe"
	default:
		return "unknown"
	}
}

// Request is a parsed request path.
type Request struct {
	Kind Kind

	// RecipeID is the path segment taken verbatim. Empty for KindList.
	RecipeID string

	// Path is the normalised request path (no scheme or authority).
	Path string
}

// NewRequest builds a request of the given kind without going through Parse.
// Use it when the recipe id comes from data rather than a path, so an id
// such as "ingredients" cannot be mistaken for a route segment.
func NewRequest(kind Kind, recipeID string) Request {
	return Request{Kind: kind, RecipeID: recipeID, Path: buildPath(kind, recipeID)}
}

// Type returns the MIME-ish type name of every recipe request.
func (r Request) Type() string {
	return BasePath
}

// ContentURI returns the request as a content URI.
func (r Request) ContentURI() string {
	return "content://" + Authority + "/" + r.Path
}

func buildPath(kind Kind, recipeID string) string {
	switch kind {
	case KindList:
		return BasePath
	case KindIngredients:
		return BasePath + "/" + segmentIngredients + "/" + recipeID
	case KindInstructions:
		return BasePath + "/" + segmentInstructions + "/" + recipeID
	case KindRecipe:
		return BasePath + "/" + recipeID
	default:
		return ""
	}
}

// Parse maps a request path to a Request.
//
// Matching is ordered and first match wins, so "recipe/ingredients" (two
// segments) is a KindRecipe request for the id "ingredients". Empty segments
// are dropped before matching and anything after '?' or '#' is ignored, so
// "recipe/7/" and "recipe//7?x=1" both name recipe 7.
func Parse(path string) (Request, error) {
	p := path
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	p = strings.TrimPrefix(p, "content://"+Authority)

	var segments []string
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	if len(segments) == 0 || segments[0] != BasePath {
		return Request{}, unrecognized(path)
	}

	switch len(segments) {
	case 1:
		return NewRequest(KindList, ""), nil
	case 2:
		return NewRequest(KindRecipe, segments[1]), nil
	case 3:
		switch segments[1] {
		case segmentIngredients:
			return NewRequest(KindIngredients, segments[2]), nil
		case segmentInstructions:
			return NewRequest(KindInstructions, segments[2]), nil
		}
	}

	return Request{}, unrecognized(path)
}
