package index

import (
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/jfortier/talkingdict/internal/dictionary"
)

// AudioCategory is the pseudo-category collecting entries with audio.
const AudioCategory = "audio"

// SortedEntries returns the snapshot's entries ordered by sorting form,
// compared element-wise as integer sequences. The sort is stable so
// entries with equal keys keep their original relative order.
func (index *Index) SortedEntries() []dictionary.Entry {
	snapshot := index.Snapshot()
	return sortByForm(snapshot.Entries)
}

func sortByForm(entries []dictionary.Entry) []dictionary.Entry {
	sorted := make([]dictionary.Entry, len(entries))
	copy(sorted, entries)
	slices.SortStableFunc(sorted, func(a, b dictionary.Entry) int {
		return slices.Compare(a.SortingForm, b.SortingForm)
	})
	return sorted
}

// Categories partitions the entries into browsing facets: one per distinct
// source, one per distinct lowercase theme, and conditionally an "audio"
// facet. The audio facet appears only when audio coverage is partial
// (below the configured threshold) or forced by configuration, since it is
// redundant when nearly every entry has audio.
func (index *Index) Categories() map[string][]dictionary.Entry {
	snapshot := index.Snapshot()

	categories := make(map[string][]dictionary.Entry)
	var withAudio []dictionary.Entry
	for _, entry := range snapshot.Entries {
		if entry.Source != "" {
			categories[entry.Source] = append(categories[entry.Source], entry)
		}
		if entry.Theme != "" {
			theme := strings.ToLower(entry.Theme)
			categories[theme] = append(categories[theme], entry)
		}
		if entry.HasAudio() {
			withAudio = append(withAudio, entry)
		}
	}

	if len(withAudio) == 0 || len(snapshot.Entries) == 0 {
		return categories
	}
	fraction := float64(len(withAudio)) / float64(len(snapshot.Entries))
	if index.options.ForceAudioCategory || fraction < index.options.AudioCategoryThreshold {
		categories[AudioCategory] = withAudio
	}
	return categories
}

// LetterAnchor marks the first entry in a collection whose sorting form
// begins with a given alphabet letter, for scroll-to-letter anchoring.
type LetterAnchor struct {
	Letter   string
	Position int
	EntryID  string
}

// LetterIndex returns, in alphabet order, the letters that occur as the
// leading sorting index of at least one entry in the given collection.
// Only the first occurrence per letter is anchored.
func (index *Index) LetterIndex(entries []dictionary.Entry) []LetterAnchor {
	alphabet := index.Snapshot().SiteConfig.L1.LettersInLanguage

	first := make(map[int]int, len(alphabet))
	for position, entry := range entries {
		if len(entry.SortingForm) == 0 {
			continue
		}
		letter := entry.SortingForm[0]
		if letter < 0 || letter >= len(alphabet) {
			continue
		}
		if _, seen := first[letter]; !seen {
			first[letter] = position
		}
	}

	var anchors []LetterAnchor
	for letter, text := range alphabet {
		position, ok := first[letter]
		if !ok {
			continue
		}
		anchors = append(anchors, LetterAnchor{
			Letter:   text,
			Position: position,
			EntryID:  entries[position].ID,
		})
	}
	return anchors
}

// RandomSample returns n entries drawn uniformly without replacement,
// using a fresh Fisher-Yates shuffle per call.
func (index *Index) RandomSample(n int) []dictionary.Entry {
	snapshot := index.Snapshot()
	shuffled := make([]dictionary.Entry, len(snapshot.Entries))
	copy(shuffled, snapshot.Entries)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n < 0 {
		n = 0
	}
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

// WindowSlice returns a contiguous window of the given collection.
// Out-of-range navigation is redirected to the nearest valid boundary
// rather than rejected: start is clamped into [0, len-1], or 0 when the
// collection is empty.
func WindowSlice(entries []dictionary.Entry, start, count int) []dictionary.Entry {
	if len(entries) == 0 {
		return nil
	}
	if start < 0 {
		start = 0
	}
	if start > len(entries)-1 {
		start = len(entries) - 1
	}
	if count < 1 {
		count = 1
	}
	end := start + count
	if end > len(entries) {
		end = len(entries)
	}
	return entries[start:end]
}
