package search

import (
	"regexp"
)

// Highlighter wraps query occurrences in display text so the UI can
// emphasize them. Matching is case-insensitive and the query is escaped
// before being compiled, so metacharacters in user input are literal.
type Highlighter struct {
	pattern *regexp.Regexp
	open    string
	close   string
}

// NewHighlighter builds a Highlighter wrapping matches in <mark> tags.
func NewHighlighter(query string) *Highlighter {
	return NewHighlighterTags(query, "<mark>", "</mark>")
}

// NewHighlighterTags builds a Highlighter with custom wrapping tags.
func NewHighlighterTags(query, open, close string) *Highlighter {
	h := &Highlighter{open: open, close: close}
	if query != "" {
		h.pattern = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(query))
	}
	return h
}

// Wrap returns text with every query occurrence wrapped.
func (h *Highlighter) Wrap(text string) string {
	if h.pattern == nil {
		return text
	}
	return h.pattern.ReplaceAllStringFunc(text, func(matched string) string {
		return h.open + matched + h.close
	})
}
