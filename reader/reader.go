// Package reader maps a parsed feed document onto the fixed channel and item
// schema rendered by the command line tool.
package reader

import (
	"github.com/scipunch/rssreader/fetcher/types"
)

// Defaults for entries missing a field
const (
	DefaultItemTitle   = "Some Other Title"
	DefaultItemPubDate = "Sun, 20 Oct 2019 04:21:44 +0300"
	DefaultItemLink    = "https://www.example.com"
)

// Source field names. Channel LastBuildDate reads "date" and PubDate reads
// "published" because that is how the parser folds <lastBuildDate>/<updated>
// and <pubDate>.
const (
	fieldTitle          = "title"
	fieldLink           = "link"
	fieldDescription    = "description"
	fieldDate           = "date"
	fieldPublished      = "published"
	fieldLanguage       = "language"
	fieldTags           = "tags"
	fieldManagingEditor = "managingEditor"
	fieldAuthor         = "author"
	fieldSummary        = "summary"
)

// Category is a single term of a channel or item category list
type Category struct {
	Term string
}

// ChannelInfo holds feed level metadata
type ChannelInfo struct {
	Title          string
	Link           string
	Description    string
	LastBuildDate  string
	PubDate        string
	Language       string
	Categories     []Category
	ManagingEditor string
}

// Item is one feed entry
type Item struct {
	Title       string
	Author      string
	PubDate     string
	Link        string
	Category    []Category
	Description string
}

// Normalize extracts channel info and at most limit items from doc.
// A nil limit keeps every entry, a limit below one keeps none.
func Normalize(doc types.Document, limit *int) (ChannelInfo, []Item) {
	ch := doc.Channel
	channel := ChannelInfo{
		Title:          ch.String(fieldTitle, ""),
		Link:           ch.String(fieldLink, ""),
		Description:    ch.String(fieldDescription, ""),
		LastBuildDate:  ch.String(fieldDate, ""),
		PubDate:        ch.String(fieldPublished, ""),
		Language:       ch.String(fieldLanguage, ""),
		Categories:     categories(ch.Tags(fieldTags)),
		ManagingEditor: ch.String(fieldManagingEditor, ""),
	}

	entries := truncate(doc.Entries, limit)
	items := make([]Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, Item{
			Title:       e.String(fieldTitle, DefaultItemTitle),
			Author:      e.String(fieldAuthor, ""),
			PubDate:     e.String(fieldPublished, DefaultItemPubDate),
			Link:        e.String(fieldLink, DefaultItemLink),
			Category:    categories(e.Tags(fieldTags)),
			Description: e.String(fieldSummary, ""),
		})
	}

	return channel, items
}

func truncate(entries []types.Fields, limit *int) []types.Fields {
	if limit == nil {
		return entries
	}
	n := *limit
	if n <= 0 {
		return nil
	}
	if n > len(entries) {
		n = len(entries)
	}
	return entries[:n]
}

func categories(tags []types.Tag) []Category {
	out := make([]Category, 0, len(tags))
	for _, t := range tags {
		out = append(out, Category{Term: t.Term})
	}
	return out
}

// Terms returns the category terms in order
func Terms(cats []Category) []string {
	terms := make([]string, 0, len(cats))
	for _, c := range cats {
		terms = append(terms, c.Term)
	}
	return terms
}
