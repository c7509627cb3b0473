// Package deeplink extracts recipe ids from incoming app links.
package deeplink

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrNoRecipeID reports a link whose path has no usable last segment.
var ErrNoRecipeID = errors.New("link has no recipe id")

// IsLink reports whether s looks like a link rather than a bare recipe id.
func IsLink(s string) bool {
	return strings.Contains(s, "://")
}

// Resolve returns the recipe id named by link: the last non-empty path
// segment, percent-decoded and NFC-normalised. The host is not checked;
// any link that reached the app is trusted.
//
//	http://recipe-app.com/recipe/7   -> "7"
//	http://recipe-app.com/recipe/7/  -> "7"
func Resolve(link string) (string, error) {
	u, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("parse link: %w", err)
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	id := segments[len(segments)-1]
	if id == "" {
		return "", fmt.Errorf("%w: %s", ErrNoRecipeID, link)
	}

	return Normalize(id), nil
}

// Normalize puts an id into Unicode NFC so that visually identical ids
// typed or linked with different compositions match the dataset.
func Normalize(id string) string {
	return norm.NFC.String(id)
}
