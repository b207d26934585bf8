// Package cli renders dictionary entries and search results for the
// terminal.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/jfortier/talkingdict/internal/dictionary"
	"github.com/jfortier/talkingdict/internal/index"
	"github.com/jfortier/talkingdict/internal/search"
)

// Display writes formatted entries to an output stream.
type Display struct {
	out       io.Writer
	bold      *color.Color
	italic    *color.Color
	highlight *color.Color
}

// NewDisplay creates a Display writing to out.
func NewDisplay(out io.Writer) *Display {
	return &Display{
		out:       out,
		bold:      color.New(color.Bold),
		italic:    color.New(color.Italic),
		highlight: color.New(color.FgYellow, color.Bold),
	}
}

// Entry prints one entry with its definition, examples and audio.
func (d *Display) Entry(entry dictionary.Entry, bookmarked bool) {
	marker := " "
	if bookmarked {
		marker = "*"
	}
	fmt.Fprintf(d.out, "%s %s\t%s\n", marker, d.bold.Sprint(entry.Word), entry.Definition)
	if entry.Theme != "" || entry.Source != "" {
		fmt.Fprintf(d.out, "    %s\n", d.italic.Sprintf("%s", strings.TrimSpace(entry.Theme+" "+entry.Source)))
	}
	for i, sentence := range entry.ExampleSentence {
		fmt.Fprintf(d.out, "    > %s\n", sentence)
		if i < len(entry.ExampleSentenceDefinition) {
			fmt.Fprintf(d.out, "      %s\n", strings.Join(entry.ExampleSentenceDefinition[i], " "))
		}
	}
	for _, clip := range entry.Audio {
		if clip.Filename == "" {
			continue
		}
		speaker := clip.Speaker
		if speaker == "" {
			speaker = "unknown speaker"
		}
		fmt.Fprintf(d.out, "    audio: %s (%s)\n", clip.Filename, speaker)
	}
}

// Matches prints search results, highlighting the query occurrences.
func (d *Display) Matches(query string, matches []search.Match) {
	if len(matches) == 0 {
		fmt.Fprintf(d.out, "no matches for %q\n", query)
		return
	}

	highlighter := search.NewHighlighterTags(query, "\x00", "\x01")
	for _, match := range matches {
		word := d.colorize(highlighter.Wrap(match.Entry.Word))
		definition := d.colorize(highlighter.Wrap(match.Entry.Definition))
		if match.Kind == search.MatchFuzzy {
			fmt.Fprintf(d.out, "  %s\t%s\t(~%d)\n", word, definition, match.Distance)
			continue
		}
		fmt.Fprintf(d.out, "  %s\t%s\n", word, definition)
	}
}

// colorize converts the sentinel-wrapped spans into terminal colors.
func (d *Display) colorize(text string) string {
	var b strings.Builder
	for {
		before, rest, ok := strings.Cut(text, "\x00")
		b.WriteString(before)
		if !ok {
			return b.String()
		}
		span, after, _ := strings.Cut(rest, "\x01")
		b.WriteString(d.highlight.Sprint(span))
		text = after
	}
}

// Letters prints the letter anchors of a collection.
func (d *Display) Letters(anchors []index.LetterAnchor) {
	for _, anchor := range anchors {
		fmt.Fprintf(d.out, "%s\t#%d\t%s\n", d.bold.Sprint(anchor.Letter), anchor.Position, anchor.EntryID)
	}
}

// Categories prints category names with entry counts.
func (d *Display) Categories(categories map[string][]dictionary.Entry, order []string) {
	for _, name := range order {
		fmt.Fprintf(d.out, "%s\t%d\n", d.bold.Sprint(name), len(categories[name]))
	}
}
