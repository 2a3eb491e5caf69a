// internal/app/system/normalize/normalize.go
//
// Package normalize centralizes the small string canonicalizations used
// before persisting or comparing user input. Keeping them in one place
// means the store backends and the handlers cannot drift apart on what
// "the same email" means.
package normalize

import (
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
)

// Email trims whitespace and lowercases. Email comparison anywhere in
// the app happens on this form.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Fold lowercases and strips diacritics for the *_ci index fields.
func Fold(s string) string {
	return text.Fold(s)
}
