package fetcher

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/scipunch/rssreader/fetcher/types"
)

type SourceType = string

var (
	Remote = SourceType("remote")
	File   = SourceType("file")
)

// resolve returns the source type and the location the fetcher reads
func resolve(source string) (SourceType, string, error) {
	if strings.TrimSpace(source) == "" {
		return "", "", fmt.Errorf("empty feed source")
	}
	u, err := url.Parse(source)
	if err != nil {
		return File, source, nil
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return Remote, source, nil
	case "file":
		if u.Host != "" && u.Host != "localhost" {
			return "", "", fmt.Errorf("unsupported file URL host '%s'", u.Host)
		}
		return File, u.Path, nil
	}
	return File, source, nil
}

// GetFetcher creates the fetcher able to read the given source and returns
// the location to pass to it
func GetFetcher(source string, opts Options) (types.FeedFetcher, string, error) {
	st, location, err := resolve(source)
	if err != nil {
		return nil, "", err
	}

	switch st {
	case Remote:
		return NewRSSFetcher(opts), location, nil
	case File:
		return NewFileFetcher(), location, nil
	default:
		return nil, "", fmt.Errorf("unknown source type: %s", st)
	}
}
