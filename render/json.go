package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/scipunch/rssreader/reader"
)

// Feed is the JSON projection of a channel. Author and categories are not part of it.
type Feed struct {
	Title       string     `json:"title"`
	Link        string     `json:"link"`
	Description string     `json:"description"`
	Items       []FeedItem `json:"items"`
}

// FeedItem is the JSON projection of an item
type FeedItem struct {
	Title       string `json:"title"`
	PubDate     string `json:"pubDate"`
	Link        string `json:"link"`
	Description string `json:"description"`
}

// NewFeed projects the normalized feed onto its JSON shape
func NewFeed(channel reader.ChannelInfo, items []reader.Item) Feed {
	feed := Feed{
		Title:       channel.Title,
		Link:        channel.Link,
		Description: channel.Description,
		Items:       make([]FeedItem, 0, len(items)),
	}
	for _, item := range items {
		feed.Items = append(feed.Items, FeedItem{
			Title:       item.Title,
			PubDate:     item.PubDate,
			Link:        item.Link,
			Description: item.Description,
		})
	}
	return feed
}

// JSON returns the feed as a JSON document indented by two spaces
func JSON(channel reader.ChannelInfo, items []reader.Item) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewFeed(channel, items)); err != nil {
		return "", fmt.Errorf("failed to encode feed with %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func writeJSON(w io.Writer, channel reader.ChannelInfo, items []reader.Item) error {
	out, err := JSON(channel, items)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, out); err != nil {
		return fmt.Errorf("failed to write json output with %w", err)
	}
	return nil
}
