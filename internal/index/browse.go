package index

import (
	"github.com/jfortier/talkingdict/internal/dictionary"
)

// Browse tracks one browsing session over the index: the selected
// category (empty means the full sorted list), the pagination cursor and
// the letter anchors for the current selection. Selecting a category
// resets the cursor and recomputes the anchors over the subset.
type Browse struct {
	index *Index

	category string
	selected []dictionary.Entry
	anchors  []LetterAnchor
	cursor   int
	pageSize int
}

// NewBrowse starts a browsing session showing the full sorted list.
func NewBrowse(index *Index, pageSize int) *Browse {
	if pageSize < 1 {
		pageSize = 1
	}
	browse := &Browse{index: index, pageSize: pageSize}
	browse.SelectCategory("")
	return browse
}

// SelectCategory switches the selection. An empty name or an unknown
// category falls back to the full sorted list.
func (b *Browse) SelectCategory(name string) {
	if name == "" {
		b.selected = b.index.SortedEntries()
	} else if entries, ok := b.index.Categories()[name]; ok {
		b.selected = sortByForm(entries)
	} else {
		b.selected = b.index.SortedEntries()
		name = ""
	}
	b.category = name
	b.cursor = 0
	b.anchors = b.index.LetterIndex(b.selected)
}

// Category returns the selected category name, empty for the full list.
func (b *Browse) Category() string { return b.category }

// Cursor returns the current pagination cursor.
func (b *Browse) Cursor() int { return b.cursor }

// Selected returns the currently selected collection in sorted order.
func (b *Browse) Selected() []dictionary.Entry { return b.selected }

// Anchors returns the letter anchors for the current selection.
func (b *Browse) Anchors() []LetterAnchor { return b.anchors }

// Page returns the window at the current cursor.
func (b *Browse) Page() []dictionary.Entry {
	return WindowSlice(b.selected, b.cursor, b.pageSize)
}

// Seek moves the cursor, clamped into the valid range, and returns the
// window there.
func (b *Browse) Seek(start int) []dictionary.Entry {
	if len(b.selected) == 0 {
		b.cursor = 0
		return nil
	}
	if start < 0 {
		start = 0
	}
	if start > len(b.selected)-1 {
		start = len(b.selected) - 1
	}
	b.cursor = start
	return b.Page()
}

// SeekLetter jumps the cursor to the anchor for the given letter, if the
// letter occurs in the current selection.
func (b *Browse) SeekLetter(letter string) []dictionary.Entry {
	for _, anchor := range b.anchors {
		if anchor.Letter == letter {
			return b.Seek(anchor.Position)
		}
	}
	return b.Page()
}
