package types

import "context"

// Tag is a category attached to a channel or an entry
type Tag struct {
	Term string
}

// Fields holds the values a feed parser produced for a channel or an entry.
// A key is present only when the source document carried the field.
// Values are either string or []Tag.
type Fields map[string]any

// Get returns the raw value stored under name
func (f Fields) Get(name string) (any, bool) {
	v, ok := f[name]
	return v, ok
}

// String returns the string stored under name, or def when the field is missing.
// A present empty string is returned as is.
func (f Fields) String(name, def string) string {
	v, ok := f.Get(name)
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		return def
	}
	return s
}

// Tags returns the tags stored under name, or an empty slice when missing
func (f Fields) Tags(name string) []Tag {
	v, _ := f.Get(name)
	tags, ok := v.([]Tag)
	if !ok || tags == nil {
		return []Tag{}
	}
	return tags
}

// Document is a parsed feed: channel level fields and ordered entries
type Document struct {
	Channel Fields
	Entries []Fields
}

// FeedFetcher retrieves and parses a feed from a source
type FeedFetcher interface {
	Fetch(ctx context.Context, source string) (Document, error)
}
