// Package index holds the current dictionary snapshot and derives the
// browsable views over it: sorted order, category partitions, letter
// anchors, random samples and paginated windows.
package index

import (
	"sync"

	"github.com/jfortier/talkingdict/internal/dictionary"
)

// Snapshot is one immutable entry collection + site configuration pair.
// Views never mutate a snapshot; a reload replaces the whole reference.
type Snapshot struct {
	Entries    []dictionary.Entry
	SiteConfig dictionary.SiteConfig
	Version    int
}

// Options tune view derivation.
type Options struct {
	// AudioCategoryThreshold is the audio-entry fraction at or above
	// which the "audio" pseudo-category is suppressed as redundant.
	AudioCategoryThreshold float64
	// ForceAudioCategory includes the "audio" pseudo-category regardless
	// of coverage, as long as at least one entry has audio.
	ForceAudioCategory bool
}

// DefaultAudioCategoryThreshold suppresses the audio category once three
// quarters of the entries carry audio.
const DefaultAudioCategoryThreshold = 0.75

// Index owns the current snapshot and notifies subscribers when it is
// replaced. All derived views are pure functions over the snapshot.
type Index struct {
	options Options

	mu          sync.RWMutex
	snapshot    *Snapshot
	subscribers []func(*Snapshot)
}

// New creates an Index seeded with the given snapshot data.
func New(entries []dictionary.Entry, siteConfig dictionary.SiteConfig, options Options) *Index {
	if options.AudioCategoryThreshold <= 0 {
		options.AudioCategoryThreshold = DefaultAudioCategoryThreshold
	}
	return &Index{
		options: options,
		snapshot: &Snapshot{
			Entries:    entries,
			SiteConfig: siteConfig,
			Version:    1,
		},
	}
}

// Snapshot returns the current snapshot reference.
func (index *Index) Snapshot() *Snapshot {
	index.mu.RLock()
	defer index.mu.RUnlock()
	return index.snapshot
}

// Replace installs a new snapshot and notifies subscribers. Readers that
// hold the previous snapshot keep a consistent view; there is no in-place
// mutation to coordinate.
func (index *Index) Replace(entries []dictionary.Entry, siteConfig dictionary.SiteConfig) *Snapshot {
	index.mu.Lock()
	next := &Snapshot{
		Entries:    entries,
		SiteConfig: siteConfig,
		Version:    index.snapshot.Version + 1,
	}
	index.snapshot = next
	subscribers := make([]func(*Snapshot), len(index.subscribers))
	copy(subscribers, index.subscribers)
	index.mu.Unlock()

	for _, notify := range subscribers {
		notify(next)
	}
	return next
}

// Subscribe registers a callback invoked with each new snapshot.
func (index *Index) Subscribe(notify func(*Snapshot)) {
	index.mu.Lock()
	defer index.mu.Unlock()
	index.subscribers = append(index.subscribers, notify)
}
