package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/scipunch/rssreader/reader"
)

const separator = "------------------------------"

// Text writes the channel header followed by every item as plain lines
func Text(w io.Writer, channel reader.ChannelInfo, items []reader.Item) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Feed: %s\n", channel.Title)
	fmt.Fprintf(bw, "Link: %s\n", channel.Link)
	fmt.Fprintf(bw, "Description: %s\n", channel.Description)
	fmt.Fprintf(bw, "Last Build Date: %s\n", channel.LastBuildDate)
	fmt.Fprintf(bw, "Publish Date: %s\n", channel.PubDate)
	fmt.Fprintf(bw, "Language: %s\n", channel.Language)
	if len(channel.Categories) > 0 {
		fmt.Fprintf(bw, "Categories: %s\n", strings.Join(reader.Terms(channel.Categories), ", "))
	}
	if channel.ManagingEditor != "" {
		fmt.Fprintf(bw, "Managing Editor: %s\n", channel.ManagingEditor)
	}

	for _, item := range items {
		fmt.Fprintf(bw, "\nTitle: %s\n", item.Title)
		fmt.Fprintf(bw, "Published: %s\n", item.PubDate)
		fmt.Fprintf(bw, "Link: %s\n", item.Link)
		if len(item.Category) > 0 {
			fmt.Fprintf(bw, "Categories: %s\n", strings.Join(reader.Terms(item.Category), ", "))
		}
		for _, line := range strings.Split(item.Description, "\n") {
			fmt.Fprintf(bw, "Description: %s\n", line)
		}
		fmt.Fprintln(bw, separator)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write text output with %w", err)
	}
	return nil
}
