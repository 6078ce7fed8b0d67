package render

import (
	"fmt"
	"io"

	"github.com/scipunch/rssreader/reader"
)

type Format = string

var (
	TextFormat = Format("text")
	JSONFormat = Format("json")
)

// Renderer writes a normalized feed to w
type Renderer interface {
	Render(w io.Writer, channel reader.ChannelInfo, items []reader.Item) error
}

// RendererFunc adapts a function to the Renderer interface
type RendererFunc func(w io.Writer, channel reader.ChannelInfo, items []reader.Item) error

func (f RendererFunc) Render(w io.Writer, channel reader.ChannelInfo, items []reader.Item) error {
	return f(w, channel, items)
}

// Get returns the renderer for the given format
func Get(format Format) (Renderer, error) {
	switch format {
	case TextFormat:
		return RendererFunc(Text), nil
	case JSONFormat:
		return RendererFunc(writeJSON), nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
}
