package components

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// PlainText strips any markup from s and returns unescaped text, ready to be
// escaped once by whatever writes it.
func PlainText(s string) string {
	return html.UnescapeString(strict.Sanitize(s))
}

// Text returns s stripped of markup and escaped for an HTML text node.
func Text(s string) string {
	return html.EscapeString(PlainText(s))
}

// Attr escapes s for a double-quoted attribute value.
func Attr(s string) string {
	return html.EscapeString(s)
}
