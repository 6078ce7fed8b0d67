package filter

import (
	"log/slog"
	"regexp"
	"strings"
	"unicode"

	"github.com/scipunch/rssreader/config"
	"github.com/scipunch/rssreader/fetcher/types"
)

// FilterPipeline applies a series of named filters to feed entries
type FilterPipeline struct {
	filters map[string]*CompiledFilter
}

// CompiledFilter contains compiled regex patterns for efficient matching
type CompiledFilter struct {
	config          config.Filter
	excludePatterns []*regexp.Regexp
}

// NewFilterPipeline creates a new filter pipeline from config.
// Invalid patterns are logged and dropped.
func NewFilterPipeline(filtersConfig map[string]config.Filter) (*FilterPipeline, error) {
	compiled := make(map[string]*CompiledFilter, len(filtersConfig))

	for name, filterCfg := range filtersConfig {
		cf := &CompiledFilter{
			config:          filterCfg,
			excludePatterns: make([]*regexp.Regexp, 0, len(filterCfg.ExcludePatterns)),
		}
		for _, pattern := range filterCfg.ExcludePatterns {
			re, err := regexp.Compile(pattern)
			if err != nil {
				slog.Warn("invalid regex pattern in filter", "filter", name, "pattern", pattern, "error", err)
				continue
			}
			cf.excludePatterns = append(cf.excludePatterns, re)
		}
		compiled[name] = cf
	}

	return &FilterPipeline{filters: compiled}, nil
}

// Has reports whether a filter with the given name is configured
func (fp *FilterPipeline) Has(name string) bool {
	_, ok := fp.filters[name]
	return ok
}

// Apply keeps the entries passing every named filter, preserving order
func (fp *FilterPipeline) Apply(entries []types.Fields, filterNames []string) []types.Fields {
	if len(filterNames) == 0 {
		return entries
	}

	kept := make([]types.Fields, 0, len(entries))
	for _, entry := range entries {
		if ok, reason := fp.ShouldInclude(entry, filterNames); !ok {
			slog.Debug("entry filtered out", "title", entry.String("title", ""), "reason", reason)
			continue
		}
		kept = append(kept, entry)
	}
	return kept
}

// ShouldInclude returns true if the entry passes all filters in the pipeline.
// Filters run in the given order; the reason names the first one failing.
func (fp *FilterPipeline) ShouldInclude(entry types.Fields, filterNames []string) (bool, string) {
	text := entry.String("title", "") + " " + entry.String("summary", "")

	for _, name := range filterNames {
		filter, exists := fp.filters[name]
		if !exists {
			slog.Warn("filter not found, skipping", "filter_name", name)
			continue
		}
		if rule := filter.reject(text); rule != "" {
			return false, name + ":" + rule
		}
	}

	return true, ""
}

// reject returns the rule text violates, or an empty string
func (cf *CompiledFilter) reject(text string) string {
	if cf.config.MinLength > 0 && len(text) < cf.config.MinLength {
		return "min_length"
	}
	if cf.config.MinWords > 0 && countWords(text) < cf.config.MinWords {
		return "min_words"
	}
	for _, re := range cf.excludePatterns {
		if re.MatchString(text) {
			return "exclude_pattern[" + re.String() + "]"
		}
	}
	if cf.config.RequireParagraphs && !hasMultipleParagraphs(text) {
		return "require_paragraphs"
	}
	return ""
}

// countWords counts runs of letters and digits
func countWords(text string) int {
	words := 0
	inWord := false

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			if !inWord {
				words++
				inWord = true
			}
		} else {
			inWord = false
		}
	}

	return words
}

func hasMultipleParagraphs(text string) bool {
	nonEmptyLines := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			nonEmptyLines++
		}
	}
	return nonEmptyLines >= 2
}
