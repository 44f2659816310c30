package ffmpeg

import (
	"strconv"
	"strings"
)

// VideoFilterChain builds video filter chains.
type VideoFilterChain struct {
	filters []string
}

// NewVideoFilterChain creates a new empty filter chain.
func NewVideoFilterChain() *VideoFilterChain {
	return &VideoFilterChain{}
}

// AddSceneSelect keeps only frames whose scene score exceeds threshold.
func (c *VideoFilterChain) AddSceneSelect(threshold float64) *VideoFilterChain {
	return c.AddFilter("select='gt(scene," + strconv.FormatFloat(threshold, 'g', -1, 64) + ")'")
}

// AddMetadataPrint writes the metadata of every frame reaching it to path.
func (c *VideoFilterChain) AddMetadataPrint(path string) *VideoFilterChain {
	return c.AddFilter("metadata=print:file=" + EscapeFilterValue(path))
}

// AddFilter adds a custom filter to the chain.
func (c *VideoFilterChain) AddFilter(filter string) *VideoFilterChain {
	if filter != "" {
		c.filters = append(c.filters, filter)
	}
	return c
}

// Build builds the filter chain into a single filter string.
// Returns empty string if no filters are present.
func (c *VideoFilterChain) Build() string {
	if len(c.filters) == 0 {
		return ""
	}
	return strings.Join(c.filters, ",")
}

var (
	optionEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, `:`, `\:`)
	graphEscaper  = strings.NewReplacer(`\`, `\\`, `'`, `\'`, `[`, `\[`, `]`, `\]`, `,`, `\,`, `;`, `\;`)
)

// EscapeFilterValue escapes an option value for use inside a -vf argument.
// FFmpeg unescapes filter graphs twice, once when splitting the graph into
// filters and once when splitting a filter's options.
func EscapeFilterValue(v string) string {
	return graphEscaper.Replace(optionEscaper.Replace(v))
}
