package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/atom"
	"github.com/mmcdole/gofeed/rss"

	"github.com/scipunch/rssreader/fetcher/types"
)

// Custom keys under which the translators keep raw elements
const (
	managingEditorKey = "managingEditor"
	publishedKey      = "rssreader.published"
)

// Options configures the underlying HTTP client
type Options struct {
	UserAgent string
	Timeout   time.Duration
}

// RSSFetcher fetches RSS, Atom and JSON feeds using gofeed
type RSSFetcher struct {
	parser *gofeed.Parser
}

// NewRSSFetcher creates a new RSS fetcher
func NewRSSFetcher(opts Options) *RSSFetcher {
	p := gofeed.NewParser()
	p.RSSTranslator = &rssTranslator{}
	p.AtomTranslator = &atomTranslator{}
	p.UserAgent = opts.UserAgent
	p.Client = &http.Client{Timeout: opts.Timeout}
	return &RSSFetcher{
		parser: p,
	}
}

// Fetch retrieves and parses a feed from the given URL
func (f *RSSFetcher) Fetch(ctx context.Context, url string) (types.Document, error) {
	slog.Debug("fetching feed", "url", url)
	feed, err := f.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return types.Document{}, fmt.Errorf("failed to parse feed at '%s' with %w", url, err)
	}
	return fromGofeed(feed), nil
}

// FileFetcher parses feeds stored on the local filesystem
type FileFetcher struct {
	parser *gofeed.Parser
}

// NewFileFetcher creates a new file fetcher
func NewFileFetcher() *FileFetcher {
	p := gofeed.NewParser()
	p.RSSTranslator = &rssTranslator{}
	p.AtomTranslator = &atomTranslator{}
	return &FileFetcher{parser: p}
}

// Fetch reads and parses the feed file at path
func (f *FileFetcher) Fetch(ctx context.Context, path string) (types.Document, error) {
	if err := ctx.Err(); err != nil {
		return types.Document{}, err
	}
	slog.Debug("reading feed file", "path", path)
	file, err := os.Open(path)
	if err != nil {
		return types.Document{}, fmt.Errorf("failed to open feed file with %w", err)
	}
	defer file.Close()

	feed, err := f.parser.Parse(file)
	if err != nil {
		return types.Document{}, fmt.Errorf("failed to parse feed at '%s' with %w", path, err)
	}
	return fromGofeed(feed), nil
}

// rssTranslator keeps <managingEditor> which the default translator folds
// into the feed authors, and <pubDate> which it replaces with <dc:date>
// when missing
type rssTranslator struct {
	gofeed.DefaultRSSTranslator
}

func (t *rssTranslator) Translate(feed interface{}) (*gofeed.Feed, error) {
	result, err := t.DefaultRSSTranslator.Translate(feed)
	if err != nil {
		return nil, err
	}
	rf, ok := feed.(*rss.Feed)
	if !ok {
		return result, nil
	}
	setCustom(&result.Custom, managingEditorKey, rf.ManagingEditor)
	setCustom(&result.Custom, publishedKey, rf.PubDate)
	if len(rf.Items) == len(result.Items) {
		for i, item := range rf.Items {
			if item != nil && result.Items[i] != nil {
				setCustom(&result.Items[i].Custom, publishedKey, item.PubDate)
			}
		}
	}
	return result, nil
}

// atomTranslator keeps <published>, which the default translator replaces
// with <updated> when missing
type atomTranslator struct {
	gofeed.DefaultAtomTranslator
}

func (t *atomTranslator) Translate(feed interface{}) (*gofeed.Feed, error) {
	result, err := t.DefaultAtomTranslator.Translate(feed)
	if err != nil {
		return nil, err
	}
	af, ok := feed.(*atom.Feed)
	if !ok || len(af.Entries) != len(result.Items) {
		return result, nil
	}
	for i, entry := range af.Entries {
		if entry != nil && result.Items[i] != nil {
			setCustom(&result.Items[i].Custom, publishedKey, entry.Published)
		}
	}
	return result, nil
}

func setCustom(custom *map[string]string, key, value string) {
	if value == "" {
		return
	}
	if *custom == nil {
		*custom = make(map[string]string)
	}
	(*custom)[key] = value
}

// published returns the date the document itself declared as publication date.
// JSON feeds only fill Published from date_published.
func published(feedType string, value string, custom map[string]string) string {
	if feedType == "json" {
		return value
	}
	return custom[publishedKey]
}

// fromGofeed converts gofeed.Feed to the field mapping consumed by the reader.
// gofeed reports missing elements as empty values, so empty values are left out.
func fromGofeed(feed *gofeed.Feed) types.Document {
	channel := types.Fields{}
	setString(channel, "title", feed.Title)
	setString(channel, "link", feed.Link)
	setString(channel, "description", feed.Description)
	setString(channel, "date", feed.Updated)
	setString(channel, "published", published(feed.FeedType, feed.Published, feed.Custom))
	setString(channel, "language", feed.Language)
	setTags(channel, "tags", feed.Categories)
	setString(channel, "managingEditor", feed.Custom[managingEditorKey])

	entries := make([]types.Fields, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		entry := types.Fields{}
		setString(entry, "title", item.Title)
		setString(entry, "author", authorName(item))
		setString(entry, "published", published(feed.FeedType, item.Published, item.Custom))
		setString(entry, "link", item.Link)
		setTags(entry, "tags", item.Categories)

		summary := item.Description
		if summary == "" {
			summary = item.Content
		}
		setString(entry, "summary", summary)

		entries = append(entries, entry)
	}

	return types.Document{Channel: channel, Entries: entries}
}

func authorName(item *gofeed.Item) string {
	author := item.Author
	if author == nil && len(item.Authors) > 0 {
		author = item.Authors[0]
	}
	if author == nil {
		return ""
	}
	if author.Name != "" {
		return author.Name
	}
	return author.Email
}

func setString(f types.Fields, name, value string) {
	if value != "" {
		f[name] = value
	}
}

func setTags(f types.Fields, name string, categories []string) {
	if len(categories) == 0 {
		return
	}
	tags := make([]types.Tag, 0, len(categories))
	for _, c := range categories {
		tags = append(tags, types.Tag{Term: c})
	}
	f[name] = tags
}
