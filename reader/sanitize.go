package reader

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var stripPolicy = bluemonday.StrictPolicy()

// StripHTML removes markup from item descriptions and decodes HTML entities
func StripHTML(items []Item) {
	for i := range items {
		items[i].Description = stripHTML(items[i].Description)
	}
}

func stripHTML(s string) string {
	if s == "" {
		return s
	}
	cleaned := stripPolicy.Sanitize(s)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}
