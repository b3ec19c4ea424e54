package core

import (
	"strings"
	"unicode"
)

// SlugSeparator joins the words of a slug.
const SlugSeparator = '-'

// Slug derives the directory name of a node from its title.
// The title is lowercased and every run of whitespace becomes one separator;
// surrounding whitespace is dropped. Distinct titles may share a slug.
func Slug(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	pending := false
	for _, r := range strings.TrimSpace(title) {
		if unicode.IsSpace(r) {
			pending = true
			continue
		}
		if pending {
			b.WriteRune(SlugSeparator)
			pending = false
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
