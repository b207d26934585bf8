// Package search ranks dictionary entries against free-text queries,
// tolerating minor misspellings through edit distance.
package search

import (
	"sort"
	"strings"

	"github.com/jfortier/talkingdict/internal/dictionary"
)

// MatchKind orders results from strongest to weakest.
type MatchKind int

const (
	MatchExact MatchKind = iota
	MatchPrefix
	MatchSubstring
	MatchFuzzy
)

// Match is one entry that satisfied the query.
type Match struct {
	Entry    dictionary.Entry
	Kind     MatchKind
	Distance int
	// Word and Definition carry the display text with matched
	// substrings wrapped for highlighting.
	Word       string
	Definition string
}

// Matcher filters and ranks entries for a query.
type Matcher struct {
	normalizer *Normalizer
	// maxDistance bounds the edit distance accepted for fuzzy matches;
	// the effective bound never exceeds the query length minus one, so
	// short queries do not match arbitrary words.
	maxDistance int
}

// DefaultMaxDistance accepts headwords within two edits of the query.
const DefaultMaxDistance = 2

// NewMatcher creates a Matcher for a loaded site configuration.
func NewMatcher(siteConfig dictionary.SiteConfig, maxDistance int) *Matcher {
	if maxDistance < 0 {
		maxDistance = DefaultMaxDistance
	}
	return &Matcher{
		normalizer:  NewNormalizer(siteConfig),
		maxDistance: maxDistance,
	}
}

// Search returns the entries matching the query, strongest first.
// Exact and substring matches on word or definition are strong matches;
// otherwise the headword is accepted when its edit distance from the
// query is within the configured bound.
func (m *Matcher) Search(query string, entries []dictionary.Entry) []Match {
	folded := m.normalizer.Normalize(query)
	if folded == "" {
		return nil
	}
	highlighter := NewHighlighter(query)

	threshold := m.maxDistance
	if limit := len([]rune(folded)) - 1; threshold > limit {
		threshold = limit
	}

	var matches []Match
	for _, entry := range entries {
		word := m.normalizer.Normalize(entry.Word)
		definition := m.normalizer.Normalize(entry.Definition)

		match := Match{
			Entry:      entry,
			Word:       highlighter.Wrap(entry.Word),
			Definition: highlighter.Wrap(entry.Definition),
		}
		switch {
		case word == folded || definition == folded:
			match.Kind = MatchExact
		case strings.HasPrefix(word, folded) || strings.HasPrefix(definition, folded):
			match.Kind = MatchPrefix
		case strings.Contains(word, folded) || strings.Contains(definition, folded):
			match.Kind = MatchSubstring
		default:
			distance := Levenshtein(folded, word)
			if distance > threshold {
				continue
			}
			match.Kind = MatchFuzzy
			match.Distance = distance
		}
		matches = append(matches, match)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Kind != matches[j].Kind {
			return matches[i].Kind < matches[j].Kind
		}
		return matches[i].Distance < matches[j].Distance
	})
	return matches
}
